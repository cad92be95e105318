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

// Package history implements the in-memory model of a personal location
// history export and the filters and aggregations that run over it:
// outlier rejection, activity merging and ranking, nearest-time lookup,
// and geographic, time and activity filtering.
package history

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"
)

// LocationRecord is a single location sample from the history.
type LocationRecord struct {
	// When the sample was taken. The offset from the source
	// document is preserved.
	Timestamp time.Time

	// Coordinates in degrees, decoded from integers scaled by 1e7.
	Latitude  float64
	Longitude float64

	// Accuracy radius in meters; higher values are less accurate.
	Accuracy *int32

	// Altitude in meters, if known.
	Altitude *int32

	// Motion-state inferences recorded near this sample.
	Activities []ActivityObservation
}

// Point returns the record's coordinates as an orb.Point,
// which is ordered (longitude, latitude).
func (l LocationRecord) Point() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

// DistanceTo returns the haversine distance in meters between
// this record and other.
func (l LocationRecord) DistanceTo(other LocationRecord) float64 {
	return haversineMeters(l.Latitude, l.Longitude, other.Latitude, other.Longitude)
}

// SpeedKMH returns the speed in km/h needed to travel from other to l.
// The second return value is false if the time between the two
// records is not positive or is longer than maxGap, since the speed
// cannot be known across such gaps.
func (l LocationRecord) SpeedKMH(other LocationRecord, maxGap time.Duration) (float64, bool) {
	elapsed := l.Timestamp.Sub(other.Timestamp)
	if elapsed <= 0 || elapsed > maxGap {
		return 0, false
	}
	metersPerSecond := l.DistanceTo(other) / elapsed.Seconds()
	return metersPerSecond * msToKMH, true
}

func (l LocationRecord) String() string {
	return fmt.Sprintf("{%s (%.7f, %.7f) activities:%d}",
		l.Timestamp.Format(time.RFC3339), l.Latitude, l.Longitude, len(l.Activities))
}

// ActivityObservation is a timestamped set of activity guesses
// that describe the motion state around one instant.
type ActivityObservation struct {
	Timestamp  time.Time
	Activities []Activity
}

// Activity is one (label, confidence) guess. Type is the raw
// label as it appeared in the source.
type Activity struct {
	Type       string `json:"type"`
	Confidence int    `json:"confidence"`
}

func (a Activity) String() string {
	return fmt.Sprintf("%-16s(%3d%%)", a.Type, a.Confidence)
}

// ActivityType is the closed set of known activity labels.
type ActivityType int

// The known activity types. The order here is the order
// used when ranking ties, so it must not change.
const (
	Unknown ActivityType = iota
	InVehicle
	ExitingVehicle
	OnBicycle
	OnFoot
	Running
	Still
	Tilting
	Walking
)

var activityTypeNames = [...]string{
	Unknown:        "UNKNOWN",
	InVehicle:      "IN_VEHICLE",
	ExitingVehicle: "EXITING_VEHICLE",
	OnBicycle:      "ON_BICYCLE",
	OnFoot:         "ON_FOOT",
	Running:        "RUNNING",
	Still:          "STILL",
	Tilting:        "TILTING",
	Walking:        "WALKING",
}

// ParseActivityType returns the ActivityType for the raw label.
// It never fails: unrecognized labels are Unknown.
func ParseActivityType(label string) ActivityType {
	for t, name := range activityTypeNames {
		if name == label {
			return ActivityType(t)
		}
	}
	return Unknown
}

func (t ActivityType) String() string {
	if t < 0 || int(t) >= len(activityTypeNames) {
		return activityTypeNames[Unknown]
	}
	return activityTypeNames[t]
}

// Moving returns true for activity types that describe the
// person going somewhere. UNKNOWN, STILL and TILTING (a sudden
// accelerometer change, like the phone being set down) do not.
func (t ActivityType) Moving() bool {
	switch t {
	case Unknown, Still, Tilting:
		return false
	}
	return true
}

const msToKMH = 3.6
