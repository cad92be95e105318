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
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the main process log. All named logs should be derivatives of
// this logger. Its level can be changed at runtime through LogLevel.
var Log = newLogger()

// LogLevel controls the minimum level emitted by Log.
var LogLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// newLogger returns a logger that writes to stderr with a console
// encoder. It is intended for setting up the main process logger
// during the program's init phase.
func newLogger() *zap.Logger {
	consoleOut := zapcore.Lock(os.Stderr)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(ts time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(ts.UTC().Format("2006/01/02 15:04:05.000"))
	}
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(encCfg)

	core := zapcore.NewCore(consoleEncoder, consoleOut, LogLevel)

	// avoid a firehose of logs
	const firstNMsgs, everyNthMsg = 10, 100
	core = zapcore.NewSamplerWithOptions(core, time.Second, firstNMsgs, everyNthMsg)

	return zap.New(&customCore{core})
}

// customCore wraps another zapcore.Core and prevents sampling based on logger name.
type customCore struct {
	zapcore.Core
}

func (c *customCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.LoggerName == "ingest.status" {
		// progress lines are rare and the user is waiting on them
		if c.Enabled(ent.Level) {
			return ce.AddCore(ent, c)
		}
		return ce
	}
	return c.Core.Check(ent, ce)
}

func (c *customCore) With(fields []zapcore.Field) zapcore.Core {
	return &customCore{c.Core.With(fields)}
}
