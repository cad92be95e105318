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

// Package lhcmd facilitates the command line interface (CLI)
// and implements the main().
package lhcmd

import (
	"context"
	"os"

	"github.com/timelinize/lochist/history"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func Main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	trapSignals(cancel)

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		history.Log.Fatal("command failed", zap.Error(err))
	}
	_ = history.Log.Sync()
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "lochist",
		Usage:       "explore a Google Location History export",
		Description: "Loads Records.json from a Google Takeout export and summarizes where you went and how.",
		Commands: []*cli.Command{
			loadCommand(),
		},
	}
}
