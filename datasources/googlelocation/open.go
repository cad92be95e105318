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
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/mholt/archives"
)

// ErrUnsupportedFormat is returned by Open when the input is a location
// history export other than Takeout's Records.json, such as the newer
// on-device Timeline exports.
var ErrUnsupportedFormat = errors.New("unsupported location history format")

// Open opens a Records.json for reading. The filename may be the JSON
// file itself (optionally compressed, e.g. Records.json.gz), a directory,
// or an archive such as a Takeout zip; in the latter two cases the file
// is looked for where Takeout puts it.
func Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	fsys, err := archives.FileSystem(ctx, filename, nil)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}

	var f fs.File
	if _, ok := fsys.(archives.FileFS); ok {
		if kind := recognizeByName(filename); kind.onDevice() {
			return nil, unsupported(filename, kind)
		}
		f, err = fsys.Open(".")
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", filename, err)
		}
	} else {
		f, err = openInTree(fsys)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}

	// sniff the first bytes to fail fast on the wrong kind of JSON
	br := bufio.NewReaderSize(f, sniffLen)
	peek, _ := br.Peek(sniffLen)
	if kind := recognizeContent(bytes.NewReader(peek)); kind.onDevice() {
		f.Close()
		return nil, unsupported(filename, kind)
	}

	return readCloser{Reader: br, Closer: f}, nil
}

// openInTree finds Records.json in a directory or archive.
func openInTree(fsys fs.FS) (fs.File, error) {
	var firstErr error
	for _, dir := range takeoutDirs {
		// TopDirOpen also tries without the first path component
		f, err := archives.TopDirOpen(fsys, path.Join(dir, filenameFromLegacyTakeout))
		if err == nil {
			return f, nil
		}
		if firstErr == nil && !errors.Is(err, fs.ErrNotExist) {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, fmt.Errorf("%s not found: %w", filenameFromLegacyTakeout, fs.ErrNotExist)
}

func unsupported(filename string, f format) error {
	return fmt.Errorf("%s looks like an %s: %w (only %s is supported)",
		filename, f, ErrUnsupportedFormat, formatLegacyTakeout)
}

type readCloser struct {
	io.Reader
	io.Closer
}

// places Takeout has put the location history folder over the years
var takeoutDirs = []string{
	".",
	"Location History",
	"Location History (Timeline)",
	"Takeout/Location History",
	"Takeout/Location History (Timeline)",
}

const sniffLen = 512
