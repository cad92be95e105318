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

// Package query filters location records with boolean expressions,
// for the questions that the built-in filters don't cover, such as
// "accuracy < 50 && hour >= 22".
//
// The variables available to an expression are the fields of Env.
package query

import (
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/timelinize/lochist/history"
)

// Env is what an expression can see of a record. Unknown accuracy and
// altitude are -1.
type Env struct {
	Time       time.Time `expr:"time"`
	Lat        float64   `expr:"lat"`
	Lon        float64   `expr:"lon"`
	Accuracy   int       `expr:"accuracy"`
	Altitude   int       `expr:"altitude"`
	Activity   string    `expr:"activity"`   // top merged activity, or UNKNOWN
	Confidence int       `expr:"confidence"` // of the top merged activity
	Hour       int       `expr:"hour"`
	Weekday    string    `expr:"weekday"` // e.g. "Monday"
}

// NewEnv returns the expression environment for l.
func NewEnv(l history.LocationRecord) Env {
	top := l.MergedActivities().TopActivity()
	env := Env{
		Time:       l.Timestamp,
		Lat:        l.Latitude,
		Lon:        l.Longitude,
		Accuracy:   -1,
		Altitude:   -1,
		Activity:   top.Type,
		Confidence: top.Confidence,
		Hour:       l.Timestamp.Hour(),
		Weekday:    l.Timestamp.Weekday().String(),
	}
	if l.Accuracy != nil {
		env.Accuracy = int(*l.Accuracy)
	}
	if l.Altitude != nil {
		env.Altitude = int(*l.Altitude)
	}
	return env
}

// Where is a compiled filter expression.
type Where struct {
	source  string
	program *vm.Program
}

// Compile type-checks source against Env; it must evaluate to a bool.
func Compile(source string) (*Where, error) {
	program, err := expr.Compile(source, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter expression %q: %w", source, err)
	}
	return &Where{source: source, program: program}, nil
}

// Match returns true if the expression holds for l.
func (w *Where) Match(l history.LocationRecord) (bool, error) {
	out, err := expr.Run(w.program, NewEnv(l))
	if err != nil {
		return false, fmt.Errorf("evaluating %q at %s: %w", w.source, l.Timestamp.Format(time.RFC3339), err)
	}
	match, _ := out.(bool)
	return match, nil
}

// Filter returns the records for which the expression holds.
// Order is preserved.
func (w *Where) Filter(locs history.Locations) (history.Locations, error) {
	var out history.Locations
	for _, l := range locs {
		ok, err := w.Match(l)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (w *Where) String() string { return w.source }
