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
	"slices"

	"github.com/paulmach/orb"
	"github.com/sourcegraph/conc/iter"
)

// FilterByActivity keeps records where the highest-confidence activity of
// any one of its observations matches pattern (see Glob for the syntax).
// Within an observation, ties for highest confidence go to the activity
// listed first. The raw label is matched, not the normalized type. The
// result is sorted chronologically.
func (locs Locations) FilterByActivity(pattern string) (Locations, error) {
	glob, err := CompileGlob(pattern)
	if err != nil {
		return nil, err
	}

	var out Locations
	for _, l := range locs {
		if l.hasTopActivityMatching(glob) {
			out = append(out, l)
		}
	}
	out.SortChronological()
	return out, nil
}

func (l LocationRecord) hasTopActivityMatching(glob Glob) bool {
	for _, obs := range l.Activities {
		if len(obs.Activities) == 0 {
			continue
		}
		best := obs.Activities[0]
		for _, act := range obs.Activities[1:] {
			if act.Confidence > best.Confidence {
				best = act
			}
		}
		if glob.Match(best.Type) {
			return true
		}
	}
	return false
}

// FilterByDistance keeps the records whose haversine distance from center
// is strictly less than radiusMeters. Order is preserved.
func (locs Locations) FilterByDistance(center orb.Point, radiusMeters float64) Locations {
	within := func(l *LocationRecord) bool {
		return haversineMeters(center.Lat(), center.Lon(), l.Latitude, l.Longitude) < radiusMeters
	}

	var keep []bool
	if len(locs) >= parallelThreshold {
		keep = iter.Map(locs, within)
	} else {
		keep = make([]bool, len(locs))
		for i := range locs {
			keep[i] = within(&locs[i])
		}
	}

	var out Locations
	for i, ok := range keep {
		if ok {
			out = append(out, locs[i])
		}
	}
	return out
}

// ListActivities returns each distinct raw activity label found in any
// observation of any record, sorted. Labels are reported as they appear
// in the data, before any merging or normalization.
func (locs Locations) ListActivities() []string {
	set := make(map[string]struct{})
	for _, l := range locs {
		for _, obs := range l.Activities {
			for _, act := range obs.Activities {
				set[act.Type] = struct{}{}
			}
		}
	}
	labels := make([]string, 0, len(set))
	for label := range set {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}

// collections at least this big have their distances computed concurrently
const parallelThreshold = 50_000
