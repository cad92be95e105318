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
)

var (
	// ErrEmptyInput is returned by filters that need at least one record.
	ErrEmptyInput = errors.New("empty input: no location records")

	// ErrDisconnected means a producer stopped early because its consumer
	// went away. It marks a normal termination, not a failure.
	ErrDisconnected = errors.New("consumer disconnected")
)

// DecodeError is returned when the input document does not have the
// expected structure or a record is missing a required field.
type DecodeError struct {
	Index  int   // index of the record in the locations array, or -1 if outside of it
	Offset int64 // input offset near where the problem was found
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := "decoding location history"
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s: record %d", msg, e.Index)
	}
	msg = fmt.Sprintf("%s (offset %d): %s", msg, e.Offset, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FieldParseError is returned when a field is present but its value
// cannot be parsed, such as a timestamp that is not RFC 3339 or a
// coordinate that is not an integer.
type FieldParseError struct {
	Index int // index of the record in the locations array
	Field string
	Value string
	Err   error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("record %d: parsing field %s=%s: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *FieldParseError) Unwrap() error { return e.Err }

// PatternError describes a malformed activity glob pattern.
type PatternError struct {
	Pattern string
	Pos     int
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid activity pattern %q at position %d: %s", e.Pattern, e.Pos, e.Reason)
}
