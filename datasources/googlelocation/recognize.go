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

package googlelocation

import (
	"encoding/json"
	"io"
	"path"
	"strings"
)

const (
	filenameFromLegacyTakeout     = "Records.json"
	filenameFromiOSDeviceContains = "location-history"
	filenameFromAndroidDevice     = "Timeline.json"
)

// format is a flavor of location history export.
type format int

const (
	formatUnknown format = iota
	formatLegacyTakeout
	formatOnDeviceiOS
	formatOnDeviceAndroid
)

func (f format) String() string {
	switch f {
	case formatLegacyTakeout:
		return "Takeout Records.json"
	case formatOnDeviceiOS:
		return "on-device iOS export"
	case formatOnDeviceAndroid:
		return "on-device Android export"
	}
	return "unknown"
}

// recognizeByName guesses the export format from a filename alone,
// to avoid opening every JSON file (can be slow esp. in archives).
func recognizeByName(filename string) format {
	base := path.Base(filename)
	switch {
	case base == filenameFromLegacyTakeout:
		return formatLegacyTakeout
	case base == filenameFromAndroidDevice:
		return formatOnDeviceAndroid
	case filenameLooksLikeiOSOnDeviceFile(base):
		return formatOnDeviceiOS
	}
	return formatUnknown
}

// recognizeContent peeks at the first tokens of a JSON document to
// tell the formats apart: Records.json is an object with a "locations"
// array, the Android export is an object with "semanticSegments", and
// the iOS export is a bare array.
func recognizeContent(r io.Reader) format {
	dec := json.NewDecoder(r)

	token, err := dec.Token()
	if err != nil {
		return formatUnknown
	}
	delim, ok := token.(json.Delim)
	if !ok {
		return formatUnknown
	}
	if delim == '[' {
		return formatOnDeviceiOS
	}

	// only look at the first key; these files have one field at the top
	token, err = dec.Token()
	if err != nil {
		return formatUnknown
	}
	switch key, _ := token.(string); key {
	case locationsKey:
		return formatLegacyTakeout
	case "semanticSegments":
		return formatOnDeviceAndroid
	}
	return formatUnknown
}

// I could see people renaming this file to be more descriptive (like I did, heh),
// so we presume that the filename still has "location-history" in it, but it
// doesn't have to be exactly "location-history.json".
func filenameLooksLikeiOSOnDeviceFile(filename string) bool {
	return strings.Contains(filename, filenameFromiOSDeviceContains) && path.Ext(filename) == ".json"
}

func (f format) onDevice() bool {
	return f == formatOnDeviceiOS || f == formatOnDeviceAndroid
}
