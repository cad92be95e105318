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
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/paulmach/orb"
)

func TestFilterByActivity(t *testing.T) {
	locs := Locations{
		at(50, 0, 0, observe("ON_BICYCLE", 70, "STILL", 30)),
		at(10, 0, 0, observe("ON_FOOT", 60, "STILL", 40)),
		at(20, 0, 0, observe("STILL", 100)),
		at(30, 0, 0),
		// tie for highest confidence goes to the first listed
		at(40, 0, 0, observe("STILL", 50, "ON_FOOT", 50)),
		// any one observation is enough
		at(60, 0, 0, observe("TILTING", 100), observe("STILL", 10, "ON_FOOT", 90)),
		// a runner-up never counts, however high
		at(70, 0, 0, observe("IN_VEHICLE", 51, "ON_BICYCLE", 49)),
	}

	for i, tc := range []struct {
		pattern string
		expect  []int
	}{
		{pattern: "ON_*", expect: []int{10, 50, 60}},
		{pattern: "STILL", expect: []int{20, 40}},
		{pattern: "{STILL,TILTING}", expect: []int{20, 40, 60}},
		{pattern: "*", expect: []int{10, 20, 40, 50, 60, 70}},
		{pattern: "RUNNING", expect: nil},
	} {
		out, err := locs.FilterByActivity(tc.pattern)
		if err != nil {
			t.Errorf("Test %d: Unexpected error: %v", i, err)
			continue
		}
		if actual := seconds(out); !slices.Equal(actual, tc.expect) {
			t.Errorf("Test %d (%s): Expected %v, got %v", i, tc.pattern, tc.expect, actual)
		}
	}

	var patErr *PatternError
	if _, err := locs.FilterByActivity("{ON_*"); !errors.As(err, &patErr) {
		t.Errorf("Expected PatternError, got %v", err)
	}
}

func TestFilterByDistance(t *testing.T) {
	center := orb.Point{0, 0}
	locs := Locations{
		at(0, northOf(1001), 0),
		at(1, northOf(999), 0),
		at(2, 0, 0),
		at(3, -northOf(500), 0),
		at(4, 0, northOf(5000)),
	}

	actual := seconds(locs.FilterByDistance(center, 1000))
	expect := []int{1, 2, 3}
	if !slices.Equal(actual, expect) {
		t.Errorf("Expected %v, got %v", expect, actual)
	}
}

func TestFilterByDistanceLarge(t *testing.T) {
	// big enough to be checked concurrently; order must not change
	locs := make(Locations, parallelThreshold+10)
	for i := range locs {
		lat := northOf(2000)
		if i%3 == 0 {
			lat = northOf(10)
		}
		locs[i] = at(i, lat, 0)
	}

	out := locs.FilterByDistance(orb.Point{0, 0}, 1000)
	if len(out) != (len(locs)+2)/3 {
		t.Fatalf("Expected %d records, got %d", (len(locs)+2)/3, len(out))
	}
	for i, l := range out {
		if expect := t0.Add(time.Duration(i*3) * time.Second); !l.Timestamp.Equal(expect) {
			t.Fatalf("Record %d: Expected %s, got %s", i, expect, l.Timestamp)
		}
	}
}

func TestListActivities(t *testing.T) {
	var locs Locations
	for i := range 100 {
		locs = append(locs, at(i, 0, 0, observe("STILL", i)))
	}
	locs = append(locs,
		at(100, 0, 0, observe("WALKING", 10, "STILL", 90)),
		at(101, 0, 0, observe("IN_RAIL_VEHICLE", 80)),
		at(102, 0, 0),
	)

	expect := []string{"IN_RAIL_VEHICLE", "STILL", "WALKING"}
	if actual := locs.ListActivities(); !slices.Equal(actual, expect) {
		t.Errorf("Expected %v, got %v", expect, actual)
	}

	if actual := (Locations{}).ListActivities(); len(actual) != 0 {
		t.Errorf("Expected no activities, got %v", actual)
	}
}

func TestLocationRecordString(t *testing.T) {
	rec := at(0, 52.5, 13.25, observe("STILL", 100))
	expect := fmt.Sprintf("{%s (52.5000000, 13.2500000) activities:1}", "2020-03-01T08:00:00Z")
	if actual := rec.String(); actual != expect {
		t.Errorf("Expected %s, got %s", expect, actual)
	}
	if p := rec.Point(); p.Lon() != 13.25 || p.Lat() != 52.5 {
		t.Errorf("Expected point (13.25, 52.5), got %v", p)
	}
}
