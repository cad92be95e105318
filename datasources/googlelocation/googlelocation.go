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

// Package googlelocation decodes the Google Location History
// (aka Google Maps Timeline) Takeout export, Records.json.
//
// The file is one JSON object with a "locations" array that can be
// gigabytes long, so it is decoded one element at a time and never
// held in memory as a whole.
//
// I found this website very helpful as documentation of the Takeout format:
// https://locationhistoryformat.com/
package googlelocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/timelinize/lochist/history"
)

// LocationSource is a type that can get the next location to process.
type LocationSource interface {
	// NextLocation returns the next location to process.
	// When there are no more locations, it should return
	// (nil, nil).
	//
	// Implementations must honor context cancellation.
	NextLocation(ctx context.Context) (*history.LocationRecord, error)
}

// Decoder reads location records from a Records.json document.
// A Decoder is not safe for concurrent use; it should be owned
// by the one goroutine that reads the input.
type Decoder struct {
	*json.Decoder

	state decoderState
	index int // index of the next element in the locations array
}

type decoderState int

const (
	stateStart decoderState = iota
	stateInArray
	stateDone
)

// NewDecoder returns a decoder that reads from r. The reader
// should be buffered if it is not already (os.File is not).
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{Decoder: json.NewDecoder(r)}
}

// Decoded returns how many records have been decoded so far.
func (dec *Decoder) Decoded() int { return dec.index }

// NextLocation decodes the next record of the locations array.
// It returns nil, nil after the last one. Any error is fatal:
// the input cannot be resumed after it.
func (dec *Decoder) NextLocation(ctx context.Context) (*history.LocationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch dec.state {
	case stateDone:
		return nil, nil
	case stateStart:
		if err := dec.seekLocations(); err != nil {
			dec.state = stateDone
			return nil, err
		}
		dec.state = stateInArray
	}

	if !dec.More() {
		// consume the closing ']' (or find out why there isn't one)
		dec.state = stateDone
		if _, err := dec.Token(); err != nil {
			return nil, dec.structuralError(dec.index, "reading end of locations array", err)
		}
		return nil, nil
	}

	offset := dec.InputOffset()
	var elem location
	if err := dec.Decode(&elem); err != nil {
		dec.state = stateDone
		return nil, &history.DecodeError{
			Index:  dec.index,
			Offset: offset,
			Reason: "decoding location element",
			Err:    err,
		}
	}

	rec, err := elem.toRecord(dec.index, offset)
	if err != nil {
		dec.state = stateDone
		return nil, err
	}
	dec.index++

	return &rec, nil
}

// Stream decodes every record and sends it on out as soon as it is
// decoded, so the consumer can work while the rest of the input is
// still being read. Stream does not close out.
//
// If ctx is canceled, Stream stops at its next send (or next record)
// and returns history.ErrDisconnected; this is how a consumer that
// has seen enough tells the producer to stop reading.
func (dec *Decoder) Stream(ctx context.Context, out chan<- history.LocationRecord) error {
	for {
		rec, err := dec.NextLocation(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return history.ErrDisconnected
			}
			return err
		}
		if rec == nil {
			return nil
		}

		select {
		case out <- *rec:
		case <-ctx.Done():
			return history.ErrDisconnected
		}
	}
}

// seekLocations reads up to and including the opening bracket of the
// root object's "locations" array. Any fields before it are skipped
// token by token, without decoding their values.
func (dec *Decoder) seekLocations() error {
	token, err := dec.Token()
	if err != nil {
		return dec.structuralError(-1, "reading start of document", err)
	}
	if tkn, ok := token.(json.Delim); !ok || tkn != '{' {
		return dec.structuralError(-1, fmt.Sprintf("unexpected opening token: %v (want '{')", token), nil)
	}

	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return dec.structuralError(-1, "reading field name", err)
		}
		key, _ := token.(string)

		if key == locationsKey {
			token, err := dec.Token()
			if err != nil {
				return dec.structuralError(-1, "reading locations array", err)
			}
			if tkn, ok := token.(json.Delim); !ok || tkn != '[' {
				return dec.structuralError(-1, fmt.Sprintf("%q is not an array: %v", locationsKey, token), nil)
			}
			return nil
		}

		if err := skipValue(dec.Decoder); err != nil {
			return dec.structuralError(-1, fmt.Sprintf("skipping field %q", key), err)
		}
	}

	return dec.structuralError(-1, fmt.Sprintf("missing required field %q", locationsKey), nil)
}

func (dec *Decoder) structuralError(idx int, reason string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &history.DecodeError{
		Index:  idx,
		Offset: dec.InputOffset(),
		Reason: reason,
		Err:    err,
	}
}

// skipValue consumes the next value, however deeply nested.
func skipValue(dec *json.Decoder) error {
	var depth int
	for {
		token, err := dec.Token()
		if err != nil {
			return err
		}
		if delim, ok := token.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}

const locationsKey = "locations"
