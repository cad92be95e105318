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
	"time"
)

// Locations is an ordered collection of location records. Most
// operations expect it to be in chronological order; records
// arrive from a decoder in file order, which may not be, so call
// SortChronological after collecting them.
//
// Filters return a new collection and leave the receiver alone.
type Locations []LocationRecord

// SortChronological sorts the records by ascending timestamp.
// Records with equal timestamps keep their relative order.
func (locs Locations) SortChronological() {
	slices.SortStableFunc(locs, compareByTime)
}

// FindClosest looks up the record for time t with a binary search,
// so the collection must be sorted. An exact match is returned if
// there is one. Otherwise the record immediately after t is returned,
// but only if t falls strictly between the first and last records;
// queries at or beyond either end of the collection find nothing.
func (locs Locations) FindClosest(t time.Time) (LocationRecord, bool) {
	i, found := slices.BinarySearchFunc(locs, t, func(l LocationRecord, t time.Time) int {
		return l.Timestamp.Compare(t)
	})
	if found || (i > 0 && i < len(locs)) {
		return locs[i], true
	}
	return LocationRecord{}, false
}

// AverageTime returns the mean time between chronologically adjacent
// records, computed as later minus earlier. For a sorted collection
// it is never negative. It returns 0 if there are fewer than two records.
func (locs Locations) AverageTime() time.Duration {
	if len(locs) < 2 { //nolint:mnd
		return 0
	}
	var total time.Duration
	for i := 1; i < len(locs); i++ {
		total += locs[i].Timestamp.Sub(locs[i-1].Timestamp)
	}
	return total / time.Duration(len(locs)-1)
}

// FilterByTimeframe returns the records that fall within tf.
func (locs Locations) FilterByTimeframe(tf Timeframe) Locations {
	if tf.IsEmpty() {
		return slices.Clone(locs)
	}
	var out Locations
	for _, l := range locs {
		if tf.Contains(l.Timestamp) {
			out = append(out, l)
		}
	}
	return out
}

func compareByTime(a, b LocationRecord) int {
	return a.Timestamp.Compare(b.Timestamp)
}
