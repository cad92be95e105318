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

package googlelocation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/timelinize/lochist/history"
)

// Awesome unofficial documentation: https://locationhistoryformat.com/
//
// Only the fields we use are decoded; Records.json has many more
// (deviceTag, velocity, heading, wifi scans, etc.) that are skipped.
//
// Required fields are kept raw so that a missing value can be told
// apart from an unparseable one.
type location struct {
	Timestamp   json.RawMessage `json:"timestamp"`   // RFC 3339; old exports used to call this timestampMs, in milliseconds
	LatitudeE7  json.RawMessage `json:"latitudeE7"`  // latitude times 1e7
	LongitudeE7 json.RawMessage `json:"longitudeE7"` // longitude times 1e7
	Accuracy    *int32          `json:"accuracy"`    // meters; higher values are less accurate (should probably be called "error" instead)
	Altitude    *int32          `json:"altitude"`    // meters
	Activity    []struct {
		Activity  []history.Activity `json:"activity"`
		Timestamp json.RawMessage    `json:"timestamp"`
	} `json:"activity"`
}

// toRecord validates and converts the decoded element at position
// idx of the locations array. The offset is used for error messages.
func (l location) toRecord(idx int, offset int64) (history.LocationRecord, error) {
	missing := func(field string) error {
		return &history.DecodeError{
			Index:  idx,
			Offset: offset,
			Reason: "missing required field " + strconv.Quote(field),
		}
	}

	if isAbsent(l.Timestamp) {
		return history.LocationRecord{}, missing("timestamp")
	}
	if isAbsent(l.LatitudeE7) {
		return history.LocationRecord{}, missing("latitudeE7")
	}
	if isAbsent(l.LongitudeE7) {
		return history.LocationRecord{}, missing("longitudeE7")
	}

	ts, err := parseTimestamp(idx, "timestamp", l.Timestamp)
	if err != nil {
		return history.LocationRecord{}, err
	}
	latE7, err := parseE7(idx, "latitudeE7", l.LatitudeE7)
	if err != nil {
		return history.LocationRecord{}, err
	}
	lonE7, err := parseE7(idx, "longitudeE7", l.LongitudeE7)
	if err != nil {
		return history.LocationRecord{}, err
	}

	rec := history.LocationRecord{
		Timestamp: ts,
		Latitude:  history.E7ToDegrees(latE7),
		Longitude: history.E7ToDegrees(lonE7),
		Accuracy:  l.Accuracy,
		Altitude:  l.Altitude,
	}

	if len(l.Activity) > 0 {
		rec.Activities = make([]history.ActivityObservation, 0, len(l.Activity))
	}
	for _, obs := range l.Activity {
		var obsTime time.Time
		if !isAbsent(obs.Timestamp) {
			obsTime, err = parseTimestamp(idx, "activity.timestamp", obs.Timestamp)
			if err != nil {
				return history.LocationRecord{}, err
			}
		}
		rec.Activities = append(rec.Activities, history.ActivityObservation{
			Timestamp:  obsTime,
			Activities: obs.Activity,
		})
	}

	return rec, nil
}

func parseTimestamp(idx int, field string, raw json.RawMessage) (time.Time, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, &history.FieldParseError{
			Index: idx,
			Field: field,
			Value: string(raw),
			Err:   errors.New("timestamp must be a string"),
		}
	}
	// RFC3339Nano also accepts timestamps without fractional seconds
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, &history.FieldParseError{Index: idx, Field: field, Value: s, Err: err}
	}
	return ts, nil
}

func parseE7(idx int, field string, raw json.RawMessage) (int64, error) {
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, &history.FieldParseError{Index: idx, Field: field, Value: string(raw), Err: err}
	}
	return v, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
