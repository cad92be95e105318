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
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/timelinize/lochist/config"
	"github.com/timelinize/lochist/datasources/googlelocation"
	"github.com/timelinize/lochist/history"
	"github.com/timelinize/lochist/internal/tzlookup"
	"github.com/timelinize/lochist/query"
	"github.com/timelinize/lochist/report"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func loadCommand() *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "load a location history, filter it, and summarize it",
		ArgsUsage: "<Records.json|takeout.zip|folder>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML config `file`; flags override its values"},
			&cli.StringFlag{Name: "s", Aliases: []string{"start"}, Usage: "first day to load, as yy_mm_dd, local time"},
			&cli.StringFlag{Name: "e", Aliases: []string{"end"}, Usage: "day to stop loading at (excluded), as yy_mm_dd, local time"},
			&cli.StringFlag{Name: "a", Aliases: []string{"activity"}, Usage: "keep records whose top activity matches this `pattern`, like ON_* or {WALKING,RUNNING}"},
			&cli.Float64SliceFlag{Name: "c", Aliases: []string{"center"}, Usage: "keep records within radius meters of a point: `lat,lon,radius`"},
			&cli.IntFlag{Name: "n", Aliases: []string{"limit"}, Usage: "stop loading after this many records"},
			&cli.StringFlag{Name: "where", Usage: "keep records for which this expression is true, like 'accuracy < 50'"},
			&cli.StringFlag{Name: "geojson", Usage: "write the resulting records to this GeoJSON `file`"},
			&cli.BoolFlag{Name: "tracks", Usage: "include tracks in the GeoJSON output"},
			&cli.Float64Flag{Name: "simplify", Usage: "simplify GeoJSON tracks with this tolerance in degrees"},
			&cli.BoolFlag{Name: "tz", Usage: "group days in the time zone where each record was taken"},
			&cli.Float64Flag{Name: "max-speed", Usage: "discard records implying at least this speed in km/h"},
			&cli.DurationFlag{Name: "max-gap", Usage: "do not judge speed across gaps longer than this"},
			&cli.IntFlag{Name: "buffer", Usage: "records buffered between decoding and collecting"},
			&cli.BoolFlag{Name: "v", Aliases: []string{"verbose"}, Usage: "log debug messages"},
		},
		Action: runLoad,
	}
}

func runLoad(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	history.LogLevel.SetLevel(level)
	logger := history.Log.Named("load")

	if cfg.Input == "" {
		return errors.New("no input: specify a Records.json file, Takeout archive, or folder")
	}
	tf, err := cfg.Timeframe(time.Local)
	if err != nil {
		return err
	}
	var where *query.Where
	if cfg.Where != "" {
		if where, err = query.Compile(cfg.Where); err != nil {
			return err
		}
	}

	input, err := googlelocation.Open(c.Context, cfg.Input)
	if err != nil {
		return err
	}
	defer input.Close()

	locs, status, err := googlelocation.Ingest(c.Context, input, googlelocation.IngestOptions{
		Timeframe:  tf,
		Limit:      cfg.Limit,
		BufferSize: cfg.BufferSize,
		Logger:     history.Log.Named("ingest"),
	})
	if err != nil {
		return err
	}
	if status.Digest != nil {
		logger.Debug("input digest", zap.String("blake3", fmt.Sprintf("%x", status.Digest)))
	}
	locs.SortChronological()

	out := c.App.Writer

	var zones history.TimezoneLocator
	if cfg.LocalTime {
		finder, err := tzlookup.New(history.Log.Named("tzlookup"))
		if err != nil {
			return fmt.Errorf("loading time zone boundaries: %w", err)
		}
		zones = finder
	}
	if err := report.WriteCalendar(out, locs.DailySummaries(zones)); err != nil {
		return err
	}

	if len(locs) == 0 {
		logger.Warn("no records loaded", zap.Stringer("timeframe", tf))
		return nil
	}

	filtered, err := filterLocations(cfg, locs, where, out, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d of %d records remain; %s between records on average\n",
		len(filtered), len(locs), filtered.AverageTime().Round(time.Second))

	if cfg.GeoJSON.Path != "" {
		if err := writeGeoJSON(cfg.GeoJSON, filtered); err != nil {
			return err
		}
		logger.Info("wrote GeoJSON", zap.String("path", cfg.GeoJSON.Path), zap.Int("records", len(filtered)))
	}

	return nil
}

// filterLocations applies the filters in order: outliers, distance,
// then (after writing the legend of what is left) activity and the
// where expression.
func filterLocations(cfg config.Config, locs history.Locations, where *query.Where, out io.Writer, logger *zap.Logger) (history.Locations, error) {
	filtered, err := history.FilterOutliersWithOptions(locs, cfg.Outliers)
	if err != nil {
		return nil, err
	}
	logger.Debug("removed outliers by velocity", zap.Int("count", len(locs)-len(filtered)))

	if cfg.Center != nil {
		before := len(filtered)
		filtered = filtered.FilterByDistance(orb.Point{cfg.Center.Lon, cfg.Center.Lat}, cfg.Center.Radius)
		logger.Debug("removed locations by distance", zap.Int("count", before-len(filtered)))
	}

	fmt.Fprintln(out)
	if err := report.WriteLegend(out, filtered.ListActivities()); err != nil {
		return nil, err
	}

	if cfg.Activity != "" {
		before := len(filtered)
		if filtered, err = filtered.FilterByActivity(cfg.Activity); err != nil {
			return nil, err
		}
		logger.Info("removed locations by activity type",
			zap.String("pattern", cfg.Activity),
			zap.Int("count", before-len(filtered)))
	}

	if where != nil {
		before := len(filtered)
		if filtered, err = where.Filter(filtered); err != nil {
			return nil, err
		}
		logger.Info("removed locations by expression",
			zap.Stringer("where", where),
			zap.Int("count", before-len(filtered)))
	}

	return filtered, nil
}

func writeGeoJSON(opt config.GeoJSON, locs history.Locations) error {
	f, err := os.Create(opt.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = report.WriteGeoJSON(f, locs, report.GeoJSONOptions{
		Tracks:            opt.Tracks,
		SimplifyTolerance: opt.Simplify,
	})
	if err != nil {
		return fmt.Errorf("writing GeoJSON: %w", err)
	}
	return f.Close()
}

// loadConfig reads the config file, if any, and applies the flags on top.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if c.Args().Present() {
		cfg.Input = c.Args().First()
	}
	if c.IsSet("s") {
		cfg.Start = c.String("s")
	}
	if c.IsSet("e") {
		cfg.End = c.String("e")
	}
	if c.IsSet("a") {
		cfg.Activity = c.String("a")
	}
	if c.IsSet("c") {
		vals := c.Float64Slice("c")
		if len(vals) != 3 { //nolint:mnd
			return cfg, fmt.Errorf("-c takes lat,lon,radius; got %v", vals)
		}
		cfg.Center = &config.Center{Lat: vals[0], Lon: vals[1], Radius: vals[2]}
	}
	if c.IsSet("n") {
		cfg.Limit = c.Int("n")
	}
	if c.IsSet("where") {
		cfg.Where = c.String("where")
	}
	if c.IsSet("geojson") {
		cfg.GeoJSON.Path = c.String("geojson")
	}
	if c.IsSet("tracks") {
		cfg.GeoJSON.Tracks = c.Bool("tracks")
	}
	if c.IsSet("simplify") {
		cfg.GeoJSON.Simplify = c.Float64("simplify")
	}
	if c.IsSet("tz") {
		cfg.LocalTime = c.Bool("tz")
	}
	if c.IsSet("max-speed") {
		cfg.Outliers.MaxSpeedKMH = c.Float64("max-speed")
	}
	if c.IsSet("max-gap") {
		cfg.Outliers.MaxGap = c.Duration("max-gap")
	}
	if c.IsSet("buffer") {
		cfg.BufferSize = c.Int("buffer")
	}
	if c.Bool("v") {
		cfg.LogLevel = zapcore.DebugLevel.String()
	}

	return cfg, cfg.Validate()
}
