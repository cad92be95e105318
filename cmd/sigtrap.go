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

package lhcmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/timelinize/lochist/history"
)

// trapSignals cancels the run on the first interrupt, which stops
// loading at the next record. A second interrupt exits immediately.
func trapSignals(cancel context.CancelFunc) {
	trapSignalsCrossPlatform(cancel)
	trapSignalsPosix(cancel)
}

func trapSignalsCrossPlatform(cancel context.CancelFunc) {
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)

		for i := 0; true; i++ {
			<-sig

			if i > 0 {
				history.Log.Fatal("SIGINT: force quit")
			}

			history.Log.Warn("SIGINT: stopping")
			cancel()
		}
	}()
}
