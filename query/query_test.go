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

package query

import (
	"testing"
	"time"

	"github.com/timelinize/lochist/history"
)

func TestWhere(t *testing.T) {
	acc := func(v int32) *int32 { return &v }
	base := time.Date(2021, time.July, 5, 21, 30, 0, 0, time.UTC) // a Monday
	locs := history.Locations{
		{Timestamp: base, Latitude: 10, Longitude: 20, Accuracy: acc(5)},
		{Timestamp: base.Add(time.Hour), Latitude: 11, Longitude: 20, Accuracy: acc(500)},
		{Timestamp: base.Add(2 * time.Hour), Latitude: 12, Longitude: 20, Activities: []history.ActivityObservation{
			{Activities: []history.Activity{{Type: "ON_BICYCLE", Confidence: 75}}},
		}},
	}

	for i, tc := range []struct {
		source string
		expect int
	}{
		{source: "accuracy >= 0 && accuracy < 50", expect: 1},
		{source: "accuracy == -1", expect: 1},
		{source: "hour >= 22", expect: 2},
		{source: "weekday == 'Monday'", expect: 3},
		{source: "weekday == 'Sunday'", expect: 0},
		{source: "lat > 10.5", expect: 2},
		{source: "activity == 'ON_BICYCLE' && confidence > 50", expect: 1},
		{source: "activity startsWith 'ON_'", expect: 1},
		{source: "true", expect: 3},
	} {
		w, err := Compile(tc.source)
		if err != nil {
			t.Errorf("Test %d: Unexpected error compiling %q: %v", i, tc.source, err)
			continue
		}
		out, err := w.Filter(locs)
		if err != nil {
			t.Errorf("Test %d: Unexpected error: %v", i, err)
			continue
		}
		if len(out) != tc.expect {
			t.Errorf("Test %d (%s): Expected %d records, got %d", i, tc.source, tc.expect, len(out))
		}
	}
}

func TestCompileErrors(t *testing.T) {
	for i, source := range []string{
		"accuracy +",
		"speed > 10",
		"lat + lon",
	} {
		if _, err := Compile(source); err == nil {
			t.Errorf("Test %d: Expected error compiling %q", i, source)
		}
	}
}
