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

import "time"

// TimezoneLocator finds the time zone in effect at a coordinate.
// It may return nil if the zone is not known.
type TimezoneLocator interface {
	Location(lat, lon float64) *time.Location
}

// DaySummary is the sequence of movement in one calendar day.
type DaySummary struct {
	// Midnight at the start of the day, in the zone of the day's first record.
	Date time.Time

	// Number of records that fell on this day.
	Records int

	// Changes of top activity type through the day, in order. Consecutive
	// records with the same type are collapsed, and types that do not
	// describe movement are left out, so this reads like a strip of
	// "what was I doing" (e.g. WALKING, IN_VEHICLE, WALKING).
	Sequence []ActivityType
}

// DailySummaries groups a chronologically sorted collection by calendar
// day and summarizes each day's activity. Days are local to tzl if set;
// otherwise each record's own offset decides what day it is on.
func (locs Locations) DailySummaries(tzl TimezoneLocator) []DaySummary {
	var days []DaySummary
	var current *DaySummary
	var lastType ActivityType

	for _, l := range locs {
		ts := l.Timestamp
		if tzl != nil {
			if zone := tzl.Location(l.Latitude, l.Longitude); zone != nil {
				ts = ts.In(zone)
			}
		}
		y, m, d := ts.Date()
		midnight := time.Date(y, m, d, 0, 0, 0, 0, ts.Location())

		if current == nil || !sameDay(current.Date, midnight) {
			days = append(days, DaySummary{Date: midnight})
			current = &days[len(days)-1]
			lastType = Unknown
		}
		current.Records++

		// only note when the activity changes
		topType := l.MergedActivities().TopActivityType()
		if topType == lastType {
			continue
		}
		lastType = topType
		if topType.Moving() {
			current.Sequence = append(current.Sequence, topType)
		}
	}

	return days
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
