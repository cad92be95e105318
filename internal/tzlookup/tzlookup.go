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

// Package tzlookup finds the time zone in effect at a coordinate.
package tzlookup

import (
	"sync"
	"time"
	_ "time/tzdata" // zone names from the finder must load on any system

	"github.com/ringsaturn/tzf"
	"github.com/timelinize/lochist/history"
	"go.uber.org/zap"
)

// Finder maps coordinates to time zones. It is safe for concurrent use.
type Finder struct {
	finder tzf.F
	logger *zap.Logger

	mu    sync.Mutex
	zones map[string]*time.Location // nil value means the name could not be loaded
}

// New returns a Finder backed by tzf's bundled zone boundaries.
func New(logger *zap.Logger) (*Finder, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = history.Log.Named("tzlookup")
	}
	return &Finder{
		finder: finder,
		logger: logger,
		zones:  make(map[string]*time.Location),
	}, nil
}

// Location returns the time zone at the coordinate, or nil if
// it is not known.
func (f *Finder) Location(lat, lon float64) *time.Location {
	name := f.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if loc, ok := f.zones[name]; ok {
		return loc
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		f.logger.Warn("unable to load time zone",
			zap.String("name", name),
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err))
		loc = nil
	}
	f.zones[name] = loc
	return loc
}

var _ history.TimezoneLocator = (*Finder)(nil)
