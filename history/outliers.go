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
	"fmt"
	"time"
)

// OutlierOptions configures the velocity-based outlier filter.
type OutlierOptions struct {
	// Records implying a speed at or above this many km/h
	// from the previously kept record are discarded.
	MaxSpeedKMH float64 `json:"max_speed_kmh,omitempty" yaml:"max_speed_kmh,omitempty" validate:"gte=0"`

	// Across gaps longer than this the speed is unknowable,
	// so the record is kept regardless of distance.
	MaxGap time.Duration `json:"max_gap,omitempty" yaml:"max_gap,omitempty" validate:"gte=0"`
}

// DefaultOutlierOptions are the thresholds used by FilterOutliers.
var DefaultOutlierOptions = OutlierOptions{
	MaxSpeedKMH: 300,
	MaxGap:      10 * time.Minute,
}

func (o OutlierOptions) withDefaults() OutlierOptions {
	if o.MaxSpeedKMH == 0 {
		o.MaxSpeedKMH = DefaultOutlierOptions.MaxSpeedKMH
	}
	if o.MaxGap == 0 {
		o.MaxGap = DefaultOutlierOptions.MaxGap
	}
	return o
}

// FilterOutliers removes records that imply implausible travel speed
// from the record kept before them, using DefaultOutlierOptions.
func FilterOutliers(locs Locations) (Locations, error) {
	return FilterOutliersWithOptions(locs, DefaultOutlierOptions)
}

// FilterOutliersWithOptions is like FilterOutliers with custom thresholds.
//
// It makes one pass over locs in the order given, which is the order the
// records arrived in and need not be chronological. The first record is
// always kept; every other record is compared with the last kept one.
// Afterwards the kept records are sorted chronologically.
func FilterOutliersWithOptions(locs Locations, opt OutlierOptions) (Locations, error) {
	if len(locs) == 0 {
		return nil, fmt.Errorf("filtering outliers: %w", ErrEmptyInput)
	}
	opt = opt.withDefaults()

	kept := make(Locations, 1, len(locs))
	kept[0] = locs[0]

	for _, candidate := range locs[1:] {
		speed, known := candidate.SpeedKMH(kept[len(kept)-1], opt.MaxGap)
		if known && speed >= opt.MaxSpeedKMH {
			continue
		}
		kept = append(kept, candidate)
	}

	kept.SortChronological()
	return kept, nil
}
