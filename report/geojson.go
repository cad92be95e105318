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

// Package report renders a location history for people and for
// other tools: a calendar strip of daily activity, a legend of
// activity labels, and a GeoJSON export.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"
	"github.com/timelinize/lochist/history"
)

// GeoJSONOptions configures the GeoJSON export.
type GeoJSONOptions struct {
	// Also export tracks: LineStrings connecting consecutive records.
	Tracks bool

	// A track is split where two records are further apart in time than
	// this. Defaults to history.DefaultOutlierOptions.MaxGap.
	TrackGap time.Duration

	// Douglas-Peucker tolerance in degrees for simplifying tracks.
	// Zero leaves them as they are.
	SimplifyTolerance float64
}

// FeatureCollection returns one Point feature per record and, if enabled,
// one LineString feature per track. The collection should be sorted.
func FeatureCollection(locs history.Locations, opt GeoJSONOptions) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, l := range locs {
		fc.Append(pointFeature(l))
	}

	if opt.Tracks {
		for _, track := range splitTracks(locs, opt.trackGap()) {
			fc.Append(trackFeature(track, opt.SimplifyTolerance))
		}
	}

	return fc
}

// WriteGeoJSON writes the FeatureCollection of locs to w.
func WriteGeoJSON(w io.Writer, locs history.Locations, opt GeoJSONOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(FeatureCollection(locs, opt))
}

func pointFeature(l history.LocationRecord) *geojson.Feature {
	f := geojson.NewFeature(l.Point())
	f.Properties["kind"] = "location"
	f.Properties["timestamp"] = l.Timestamp.Format(time.RFC3339Nano)
	if l.Accuracy != nil {
		f.Properties["accuracy"] = *l.Accuracy
	}
	if l.Altitude != nil {
		f.Properties["altitude"] = *l.Altitude
	}

	merged := l.MergedActivities()
	if len(merged.Activities) > 0 {
		top := merged.TopActivity()
		f.Properties["activity"] = top.Type
		f.Properties["confidence"] = top.Confidence
		f.Properties["activities"] = merged.Activities
	}

	return f
}

func trackFeature(track history.Locations, tolerance float64) *geojson.Feature {
	line := make(orb.LineString, len(track))
	for i, l := range track {
		line[i] = l.Point()
	}
	if tolerance > 0 {
		if simplified, ok := simplify.DouglasPeucker(tolerance).Simplify(line.Clone()).(orb.LineString); ok && len(simplified) >= 2 {
			line = simplified
		}
	}

	f := geojson.NewFeature(line)
	f.Properties["kind"] = "track"
	f.Properties["start"] = track[0].Timestamp.Format(time.RFC3339Nano)
	f.Properties["end"] = track[len(track)-1].Timestamp.Format(time.RFC3339Nano)
	f.Properties["records"] = len(track)
	return f
}

// splitTracks cuts locs wherever the time between neighbors exceeds gap.
// Tracks of a single record are dropped; a line needs two points.
func splitTracks(locs history.Locations, gap time.Duration) []history.Locations {
	var tracks []history.Locations
	start := 0
	for i := 1; i <= len(locs); i++ {
		if i < len(locs) && locs[i].Timestamp.Sub(locs[i-1].Timestamp) <= gap {
			continue
		}
		if i-start >= 2 {
			tracks = append(tracks, locs[start:i])
		}
		start = i
	}
	return tracks
}

func (opt GeoJSONOptions) trackGap() time.Duration {
	if opt.TrackGap > 0 {
		return opt.TrackGap
	}
	return history.DefaultOutlierOptions.MaxGap
}
