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
	"testing"
)

func TestMergedActivities(t *testing.T) {
	rec := at(0, 0, 0,
		observe("STILL", 80, "TILTING", 10),
		observe("STILL", 80, "ON_FOOT", 15),
	)

	merged := rec.MergedActivities()
	expect := []Activity{
		{Type: "STILL", Confidence: 160},
		{Type: "ON_FOOT", Confidence: 15},
		{Type: "TILTING", Confidence: 10},
	}
	if !slices.Equal(merged.Activities, expect) {
		t.Errorf("Expected %v, got %v", expect, merged.Activities)
	}
	if !merged.Timestamp.Equal(rec.Timestamp) {
		t.Errorf("Expected merged observation to carry the record's timestamp, got %s", merged.Timestamp)
	}
}

func TestMergedActivitiesTiesAndUnknowns(t *testing.T) {
	rec := at(0, 0, 0,
		observe("WALKING", 50, "FLYING", 5),
		observe("IN_VEHICLE", 50, "walking", 5),
	)

	// unrecognized labels (matching is case-sensitive) count as UNKNOWN,
	// and ties are broken by type order
	expect := []Activity{
		{Type: "IN_VEHICLE", Confidence: 50},
		{Type: "WALKING", Confidence: 50},
		{Type: "UNKNOWN", Confidence: 10},
	}
	if actual := rec.MergedActivities().Activities; !slices.Equal(actual, expect) {
		t.Errorf("Expected %v, got %v", expect, actual)
	}
}

func TestTopActivity(t *testing.T) {
	for i, tc := range []struct {
		rec    LocationRecord
		expect Activity
	}{
		{
			rec:    at(0, 0, 0),
			expect: Activity{Type: "UNKNOWN"},
		},
		{
			rec:    at(0, 0, 0, observe()),
			expect: Activity{Type: "UNKNOWN"},
		},
		{
			rec:    at(0, 0, 0, observe("STILL", 30, "ON_FOOT", 70)),
			expect: Activity{Type: "ON_FOOT", Confidence: 70},
		},
		{
			// not merged across observations
			rec:    at(0, 0, 0, observe("STILL", 40), observe("STILL", 40), observe("RUNNING", 60)),
			expect: Activity{Type: "RUNNING", Confidence: 60},
		},
	} {
		if actual := tc.rec.TopActivity(); actual != tc.expect {
			t.Errorf("Test %d: Expected %v, got %v", i, tc.expect, actual)
		}
	}
}

func TestTopActivities(t *testing.T) {
	rec := at(0, 0, 0, observe("STILL", 40, "TILTING", 5), observe("STILL", 60))
	expect := []Activity{
		{Type: "STILL", Confidence: 60},
		{Type: "STILL", Confidence: 40},
		{Type: "TILTING", Confidence: 5},
	}
	if actual := rec.TopActivities(); !slices.Equal(actual, expect) {
		t.Errorf("Expected %v, got %v", expect, actual)
	}
}

func TestIsSimilarType(t *testing.T) {
	walking := observe("WALKING", 90)
	for i, tc := range []struct {
		other  ActivityObservation
		expect bool
	}{
		{other: observe("WALKING", 5), expect: true},
		{other: observe("STILL", 50, "ON_FOOT", 30, "WALKING", 10), expect: true},
		{other: observe("STILL", 50, "ON_FOOT", 30, "TILTING", 20, "WALKING", 10), expect: false},
		{other: observe(), expect: false},
	} {
		if actual := walking.IsSimilarType(tc.other); actual != tc.expect {
			t.Errorf("Test %d: Expected %t, got %t", i, tc.expect, actual)
		}
	}
}

func TestSecondsDelta(t *testing.T) {
	a := at(100, 0, 0).MergedActivities()
	b := at(40, 0, 0).MergedActivities()
	if d := a.SecondsDelta(b); d != 60 {
		t.Errorf("Expected 60, got %d", d)
	}
	if d := b.SecondsDelta(a); d != -60 {
		t.Errorf("Expected -60, got %d", d)
	}
}

func TestActivityType(t *testing.T) {
	for i, tc := range []struct {
		label        string
		expect       ActivityType
		expectMoving bool
	}{
		{label: "IN_VEHICLE", expect: InVehicle, expectMoving: true},
		{label: "EXITING_VEHICLE", expect: ExitingVehicle, expectMoving: true},
		{label: "ON_BICYCLE", expect: OnBicycle, expectMoving: true},
		{label: "ON_FOOT", expect: OnFoot, expectMoving: true},
		{label: "RUNNING", expect: Running, expectMoving: true},
		{label: "WALKING", expect: Walking, expectMoving: true},
		{label: "STILL", expect: Still},
		{label: "TILTING", expect: Tilting},
		{label: "UNKNOWN", expect: Unknown},
		{label: "IN_RAIL_VEHICLE", expect: Unknown},
		{label: "still", expect: Unknown},
		{label: "", expect: Unknown},
	} {
		actual := ParseActivityType(tc.label)
		if actual != tc.expect {
			t.Errorf("Test %d: Expected %s, got %s", i, tc.expect, actual)
		}
		if actual.Moving() != tc.expectMoving {
			t.Errorf("Test %d: Expected Moving()=%t for %s", i, tc.expectMoving, actual)
		}
		if actual != Unknown && actual.String() != tc.label {
			t.Errorf("Test %d: Expected String() to return the label %s, got %s", i, tc.label, actual)
		}
	}
}
