/*
	Timelinize
	Copyright (c) 2013 Matthew Holt

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package history

import (
	"cmp"
	"slices"
)

// MergedActivities combines all of the record's observations into one.
// Activities are often duplicated across observations taken moments
// apart, so confidences are summed per activity type across all of
// them, giving one entry per type. The result is sorted by descending
// confidence and carries the record's timestamp.
func (l LocationRecord) MergedActivities() ActivityObservation {
	var sums confidenceSums
	for _, obs := range l.Activities {
		sums.add(obs.Activities)
	}
	return ActivityObservation{
		Timestamp:  l.Timestamp,
		Activities: sums.ranked(),
	}
}

// TopActivities returns a flat list of every observation's ranked
// activities, sorted by descending confidence. The same type may
// appear more than once (once per observation). It is not safe to
// assume only the first element has the highest confidence; ties
// are frequent.
func (l LocationRecord) TopActivities() []Activity {
	var result []Activity
	for _, obs := range l.Activities {
		result = append(result, obs.TopActivities()...)
	}
	sortByConfidence(result)
	return result
}

// TopActivity returns the highest-ranked activity of the record, or an
// UNKNOWN activity with zero confidence if there are none.
func (l LocationRecord) TopActivity() Activity {
	return first(l.TopActivities())
}

// TopActivities returns the observation's activities with duplicate
// types summed, sorted by descending confidence. Ties may occur.
func (o ActivityObservation) TopActivities() []Activity {
	var sums confidenceSums
	sums.add(o.Activities)
	return sums.ranked()
}

// TopActivity returns the first of TopActivities, or an UNKNOWN
// activity with zero confidence if there are none.
func (o ActivityObservation) TopActivity() Activity {
	return first(o.TopActivities())
}

// TopActivityType returns the type of the top activity.
func (o ActivityObservation) TopActivityType() ActivityType {
	return ParseActivityType(o.TopActivity().Type)
}

// SecondsDelta returns the signed number of seconds from other to o.
func (o ActivityObservation) SecondsDelta(other ActivityObservation) int64 {
	return o.Timestamp.Unix() - other.Timestamp.Unix()
}

// IsSimilarType returns true if o's top activity is among the top
// three activities of other. Confidence values and the time between
// the two observations are ignored.
func (o ActivityObservation) IsSimilarType(other ActivityObservation) bool {
	const window = 3
	top := o.TopActivity()
	others := other.TopActivities()
	for _, act := range others[:min(window, len(others))] {
		if act.Type == top.Type {
			return true
		}
	}
	return false
}

// confidenceSums accumulates confidence per activity type.
type confidenceSums struct {
	seen [len(activityTypeNames)]bool
	sum  [len(activityTypeNames)]int
}

func (cs *confidenceSums) add(acts []Activity) {
	for _, act := range acts {
		t := ParseActivityType(act.Type)
		cs.seen[t] = true
		cs.sum[t] += act.Confidence
	}
}

// ranked returns one activity per seen type, sorted by descending
// confidence. Ties keep the ActivityType order.
func (cs *confidenceSums) ranked() []Activity {
	var result []Activity
	for t, ok := range cs.seen {
		if ok {
			result = append(result, Activity{
				Type:       ActivityType(t).String(),
				Confidence: cs.sum[t],
			})
		}
	}
	sortByConfidence(result)
	return result
}

func sortByConfidence(acts []Activity) {
	slices.SortStableFunc(acts, func(a, b Activity) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
}

func first(acts []Activity) Activity {
	if len(acts) == 0 {
		return Activity{Type: Unknown.String()}
	}
	return acts[0]
}
