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

// Package config holds the settings of a load run, which can come from
// a YAML file and be overridden by command line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/timelinize/lochist/history"
	"gopkg.in/yaml.v3"
)

// DateLayout is the layout of start and end dates: yy_mm_dd.
const DateLayout = "06_01_02"

// Config is the configuration of one load run.
type Config struct {
	// Path to Records.json, a Takeout archive, or a folder.
	Input string `yaml:"input"`

	// Dates in DateLayout. The start day is included, the end day is not.
	Start string `yaml:"start" validate:"omitempty,yymmdd"`
	End   string `yaml:"end" validate:"omitempty,yymmdd"`

	// Stop loading after this many records are kept; 0 is no limit.
	Limit int `yaml:"limit" validate:"gte=0"`

	// Capacity of the channel between decoding and collecting.
	BufferSize int `yaml:"buffer_size" validate:"gte=0"`

	// Activity label pattern, see history.Glob.
	Activity string `yaml:"activity" validate:"omitempty,glob"`

	// Keep only records near this point.
	Center *Center `yaml:"center"`

	// Expression filter, see package query.
	Where string `yaml:"where"`

	Outliers history.OutlierOptions `yaml:"outliers"`

	// Group days in the time zone of where each record was taken,
	// instead of the offset it was recorded with.
	LocalTime bool `yaml:"local_time"`

	GeoJSON GeoJSON `yaml:"geojson"`

	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Center is a circle to filter records by.
type Center struct {
	Lat    float64 `yaml:"lat" validate:"gte=-90,lte=90"`
	Lon    float64 `yaml:"lon" validate:"gte=-180,lte=180"`
	Radius float64 `yaml:"radius" validate:"gt=0"` // meters
}

// GeoJSON configures the GeoJSON export. Nothing is written without a path.
type GeoJSON struct {
	Path     string  `yaml:"path"`
	Tracks   bool    `yaml:"tracks"`
	Simplify float64 `yaml:"simplify" validate:"gte=0"` // degrees
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{
		BufferSize: 1024,
		Outliers:   history.DefaultOutlierOptions,
		LogLevel:   "info",
	}
}

// Load reads the YAML file at path on top of the defaults and validates
// the result. Unknown fields are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse is like Load but takes the file contents.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values of the configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	tf, err := c.Timeframe(time.Local)
	if err != nil {
		return err
	}
	if err := tf.Valid(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Timeframe returns the start and end dates as a timeframe bounded by
// midnight in loc.
func (c Config) Timeframe(loc *time.Location) (history.Timeframe, error) {
	var tf history.Timeframe
	if c.Start != "" {
		since, err := time.ParseInLocation(DateLayout, c.Start, loc)
		if err != nil {
			return tf, fmt.Errorf("parsing start date: %w", err)
		}
		tf.Since = &since
	}
	if c.End != "" {
		until, err := time.ParseInLocation(DateLayout, c.End, loc)
		if err != nil {
			return tf, fmt.Errorf("parsing end date: %w", err)
		}
		tf.Until = &until
	}
	return tf, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("yymmdd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		_, err := history.CompileGlob(fl.Field().String())
		return err == nil
	})
	return v
}
