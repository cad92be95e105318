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
	"math"
	"testing"
	"time"
)

func TestFilterOutliersImpliedSpeed(t *testing.T) {
	// B is 500 km/h from A; C is 50 km/h from B, and 275 km/h from A
	latB := northOf(500.0 / 3.6 * 60)
	latC := latB + northOf(50.0/3.6*60)
	a, b, c := at(0, 0, 0), at(60, latB, 0), at(120, latC, 0)

	kept, err := FilterOutliers(Locations{a, b, c})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	actual := seconds(kept)
	if len(actual) != 2 || actual[0] != 0 || actual[1] != 120 {
		t.Errorf("Expected records at t=0 and t=120, got %v", actual)
	}
}

func TestFilterOutliersGaps(t *testing.T) {
	far := northOf(1_000_000) // 1000 km

	for i, tc := range []struct {
		locs   Locations
		expect []int
	}{
		{
			// more than 10 minutes apart: speed is unknowable
			locs:   Locations{at(0, 0, 0), at(601, far, 0)},
			expect: []int{0, 601},
		},
		{
			// exactly 10 minutes apart is still judged by speed
			locs:   Locations{at(0, 0, 0), at(600, far, 0)},
			expect: []int{0},
		},
		{
			// no time elapsed
			locs:   Locations{at(0, 0, 0), at(0, far, 0)},
			expect: []int{0, 0},
		},
		{
			// arrival order is not time order: t=50 arrives after t=100,
			// so it is kept, and t=110 is then judged against it
			locs:   Locations{at(100, 0, 0), at(50, far, 0), at(110, 0, 0)},
			expect: []int{50, 100},
		},
		{
			// a discarded record is never compared against
			locs:   Locations{at(0, 0, 0), at(10, far, 0), at(20, far, 0), at(30, northOf(10), 0)},
			expect: []int{0, 30},
		},
		{
			locs:   Locations{at(0, 0, 0)},
			expect: []int{0},
		},
	} {
		kept, err := FilterOutliers(tc.locs)
		if err != nil {
			t.Errorf("Test %d: Unexpected error: %v", i, err)
			continue
		}
		actual := seconds(kept)
		if len(actual) != len(tc.expect) {
			t.Errorf("Test %d: Expected %v, got %v", i, tc.expect, actual)
			continue
		}
		for j := range actual {
			if actual[j] != tc.expect[j] {
				t.Errorf("Test %d: Expected %v, got %v", i, tc.expect, actual)
				break
			}
		}
	}
}

func TestFilterOutliersThreshold(t *testing.T) {
	for i, tc := range []struct {
		kmh        float64
		expectKept int
	}{
		{kmh: 299.99, expectKept: 2},
		{kmh: 300.01, expectKept: 1},
		{kmh: 1200, expectKept: 1},
	} {
		kept, err := FilterOutliers(Locations{at(0, 0, 0), at(60, northOf(tc.kmh/3.6*60), 0)})
		if err != nil {
			t.Fatal(err)
		}
		if len(kept) != tc.expectKept {
			t.Errorf("Test %d (%.2f km/h): Expected %d records, got %d", i, tc.kmh, tc.expectKept, len(kept))
		}
	}
}

func TestFilterOutliersWithOptions(t *testing.T) {
	bike := northOf(40.0 / 3.6 * 60) // 40 km/h for a minute
	locs := Locations{at(0, 0, 0), at(60, bike, 0), at(60+3600, 0, 0)}

	kept, err := FilterOutliersWithOptions(locs, OutlierOptions{MaxSpeedKMH: 30, MaxGap: 2 * time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	// the last one comes back slowly, within the longer gap
	actual := seconds(kept)
	if len(actual) != 2 || actual[0] != 0 || actual[1] != 3660 {
		t.Errorf("Expected records at t=0 and t=3660, got %v", actual)
	}

	// zero values fall back to the defaults
	kept, err = FilterOutliersWithOptions(locs, OutlierOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(kept) != 3 {
		t.Errorf("Expected defaults to keep all 3 records, got %d", len(kept))
	}
}

func TestFilterOutliersEmpty(t *testing.T) {
	for i, locs := range []Locations{nil, {}} {
		_, err := FilterOutliers(locs)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Test %d: Expected ErrEmptyInput, got %v", i, err)
		}
	}
}

func TestDistance(t *testing.T) {
	// one degree along the equator
	expect := meanEarthRadiusMeters * math.Pi / 180
	if actual := at(0, 0, 0).DistanceTo(at(0, 0, 1)); math.Abs(actual-expect) > 1e-3 {
		t.Errorf("Expected %f m, got %f m", expect, actual)
	}

	// antipodes
	expect = meanEarthRadiusMeters * math.Pi
	if actual := haversineMeters(0, 0, 0, 180); math.Abs(actual-expect) > 1e-3 {
		t.Errorf("Expected %f m, got %f m", expect, actual)
	}

	// latitude and longitude are not interchangeable away from the equator
	ns := haversineMeters(60, 10, 61, 10)
	ew := haversineMeters(60, 10, 60, 11)
	if ew >= ns {
		t.Errorf("Expected a degree of longitude at 60°N (%f m) to be shorter than a degree of latitude (%f m)", ew, ns)
	}

	if d := E7ToDegrees(-338688000); d != -33.8688 {
		t.Errorf("Expected -33.8688, got %f", d)
	}
}
