//go:build !windows && !plan9 && !nacl

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
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// trapSignalsPosix captures POSIX-only signals.
func trapSignalsPosix(cancel context.CancelFunc) {
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, unix.SIGTERM, unix.SIGHUP, unix.SIGQUIT)

		for sig := range sigchan {
			switch sig {
			case unix.SIGQUIT:
				history.Log.Warn("SIGQUIT: quitting process immediately")
				os.Exit(2) //nolint:mnd

			case unix.SIGTERM, unix.SIGHUP:
				history.Log.Warn("stopping", zap.Stringer("signal", sig))
				cancel()
			}
		}
	}()
}
