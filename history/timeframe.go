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

// Timeframe represents a start and end time, where either
// value could be nil which means unbounded in that direction.
//
// Since is inclusive and Until is exclusive, so consecutive
// day-long timeframes never overlap.
type Timeframe struct {
	Since *time.Time `json:"since,omitempty" yaml:"since,omitempty"`
	Until *time.Time `json:"until,omitempty" yaml:"until,omitempty"`
}

// IsEmpty returns true if the timeframe is not set in any way.
func (tf Timeframe) IsEmpty() bool {
	return tf.Since == nil && tf.Until == nil
}

func (tf Timeframe) String() string {
	return fmt.Sprintf("{Since:%s Until:%s}", tf.Since, tf.Until)
}

// Contains returns true if the given time ts is inside the timeframe tf.
//
// If both Since and Until are set, then the time must be between those
// two times. If only Since is set, the time must not be before Since. If
// only Until is set, the time must be before Until. If neither are set,
// true is always returned.
func (tf Timeframe) Contains(ts time.Time) bool {
	afterSince := tf.Since == nil || !ts.Before(*tf.Since)
	beforeUntil := tf.Until == nil || ts.Before(*tf.Until)
	return afterSince && beforeUntil
}

// Valid returns an error if Until is not after Since.
func (tf Timeframe) Valid() error {
	if tf.Since != nil && tf.Until != nil && !tf.Until.After(*tf.Since) {
		return fmt.Errorf("timeframe ends (%s) before it starts (%s)", tf.Until, tf.Since)
	}
	return nil
}
