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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/timelinize/lochist/history"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
)

// IngestOptions configures Ingest.
type IngestOptions struct {
	// Only records within this timeframe are kept.
	Timeframe history.Timeframe

	// Stop once this many records have been kept. Zero means no limit.
	Limit int

	// Capacity of the channel between the decoding goroutine and
	// the collecting one. Defaults to DefaultBufferSize.
	BufferSize int

	// Defaults to a logger named "ingest".
	Logger *zap.Logger
}

// DefaultBufferSize is the default capacity of the record channel.
const DefaultBufferSize = 1024

// Status describes how an ingestion ended.
type Status struct {
	RunID uuid.UUID

	Decoded int // records received from the decoder
	Kept    int // records that passed the timeframe and limit

	// Bytes read from the input.
	BytesRead int64

	// Complete is true if the whole locations array was decoded.
	Complete bool

	// Disconnected is true if collection stopped early because
	// the limit was reached; the decoder was told to stop and
	// the rest of the input was not read.
	Disconnected bool

	// BLAKE3 sum of the entire input; only set if Complete.
	Digest []byte

	Duration time.Duration
}

func (s Status) String() string {
	state := "failed"
	switch {
	case s.Complete:
		state = "complete"
	case s.Disconnected:
		state = "stopped early"
	}
	return fmt.Sprintf("%s: %d decoded, %d kept, %d bytes in %s", state, s.Decoded, s.Kept, s.BytesRead, s.Duration)
}

// Ingest decodes location records from r and collects them.
//
// Decoding happens in its own goroutine, which owns r, and records are
// handed over a bounded channel to the calling goroutine, which owns the
// collection. This lets reading and parsing overlap with collecting. The
// decoding goroutine reports how it ended on a separate channel, so the
// end of input, an early stop and a failure are never confused.
//
// The collection is in the order records appeared in the input, which is
// not necessarily chronological; call SortChronological on it.
//
// If decoding fails, the error is returned along with the status so far.
func Ingest(ctx context.Context, r io.Reader, opt IngestOptions) (history.Locations, Status, error) {
	status := Status{RunID: uuid.New()}
	start := time.Now()

	logger := opt.Logger
	if logger == nil {
		logger = history.Log.Named("ingest")
	}
	logger = logger.With(zap.String("run_id", status.RunID.String()))
	progress := logger.Named("status")

	bufSize := opt.BufferSize
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}

	hasher := blake3.New()
	input := &countingReader{r: io.TeeReader(r, hasher)}
	dec := NewDecoder(bufio.NewReader(input))

	producerCtx, stopProducer := context.WithCancel(ctx)
	defer stopProducer()

	records := make(chan history.LocationRecord, bufSize)
	done := make(chan error, 1)

	go func() {
		defer close(records)
		done <- dec.Stream(producerCtx, records)
	}()

	var locs history.Locations
	for rec := range records {
		status.Decoded++
		if status.Decoded%progressInterval == 0 {
			progress.Info("loading",
				zap.Int("parsed", status.Decoded),
				zap.Int("loaded", len(locs)))
		}

		if !opt.Timeframe.Contains(rec.Timestamp) {
			continue
		}
		locs = append(locs, rec)

		if opt.Limit > 0 && len(locs) >= opt.Limit {
			// tell the decoder we're done; it will notice at its next send
			stopProducer()
			break
		}
	}

	// wait for the decoder to finish; if we stopped early, records
	// may still be in flight, so drain them to let it exit
	var streamErr error
	for waiting := true; waiting; {
		select {
		case streamErr = <-done:
			waiting = false
		case _, ok := <-records:
			if !ok {
				records = nil
			}
		}
	}

	status.Kept = len(locs)
	status.BytesRead = input.n
	status.Duration = time.Since(start)

	switch {
	case streamErr == nil:
		status.Complete = true
		// hash whatever is after the locations array, too
		if _, err := io.Copy(io.Discard, input); err != nil {
			logger.Warn("reading remainder of input", zap.Error(err))
		} else {
			status.Digest = hasher.Sum(nil)
		}
		status.BytesRead = input.n

	case errors.Is(streamErr, history.ErrDisconnected):
		if err := ctx.Err(); err != nil {
			return nil, status, err
		}
		status.Disconnected = true

	default:
		logger.Error("ingestion failed",
			zap.Int("decoded", status.Decoded),
			zap.Int64("bytes_read", status.BytesRead),
			zap.Error(streamErr))
		return nil, status, fmt.Errorf("ingesting location history: %w", streamErr)
	}

	logger.Info("finished loading",
		zap.Int("parsed", status.Decoded),
		zap.Int("loaded", status.Kept),
		zap.Bool("complete", status.Complete),
		zap.Bool("stopped_early", status.Disconnected),
		zap.Duration("duration", status.Duration))

	return locs, status, nil
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

const progressInterval = 100_000
