// Package gridfile reads and writes the on-disk grid format: a plain
// text file where every line is one row of glyphs and all rows must
// share the same width, forming a rectangle.
package gridfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/orcarun/orca/engine"
)

// ErrorKind enumerates the distinct ways a grid file can fail to load,
// mirroring the original engine's Field_load_error enum one for one.
type ErrorKind int

const (
	// ErrNone indicates no error occurred.
	ErrNone ErrorKind = iota
	// ErrCantOpenFile means the path couldn't be opened for reading.
	ErrCantOpenFile
	// ErrTooManyColumns means a row exceeded MaxWidth glyphs.
	ErrTooManyColumns
	// ErrTooManyRows means the file had more than MaxHeight rows.
	ErrTooManyRows
	// ErrNoRowsRead means the file was empty.
	ErrNoRowsRead
	// ErrNotARectangle means rows had inconsistent widths.
	ErrNotARectangle
)

// MaxHeight and MaxWidth bound how large a grid file this loader will
// accept, guarding against pathological input.
const (
	MaxHeight = 4096
	MaxWidth  = 4096
)

// LoadError reports which ErrorKind a Load call failed with, along with
// the underlying cause when there is one (e.g. the os.Open error).
type LoadError struct {
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case ErrCantOpenFile:
		return fmt.Sprintf("gridfile: can't open file: %v", e.Err)
	case ErrTooManyColumns:
		return "gridfile: a row exceeds the maximum column count"
	case ErrTooManyRows:
		return "gridfile: file exceeds the maximum row count"
	case ErrNoRowsRead:
		return "gridfile: file contains no rows"
	case ErrNotARectangle:
		return "gridfile: rows have inconsistent widths"
	default:
		return "gridfile: ok"
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads a grid file from path into a new engine.Grid. Trailing
// whitespace on each line is trimmed before the row's width is measured;
// every byte is normalized to a valid glyph via engine.Normalize.
func Load(path string) (*engine.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Kind: ErrCantOpenFile, Err: err}
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader reads a grid in the same format as Load, but from an
// already-open reader, so callers that already hold a file (or an
// in-memory buffer, for tests) don't need a path on disk.
func LoadReader(r io.Reader) (*engine.Grid, error) {
	var rows []string
	width := -1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxWidth+1)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r\n")
		if len(line) == 0 {
			continue
		}
		if len(line) > MaxWidth {
			return nil, &LoadError{Kind: ErrTooManyColumns}
		}
		if width == -1 {
			width = len(line)
		} else if len(line) != width {
			return nil, &LoadError{Kind: ErrNotARectangle}
		}
		rows = append(rows, line)
		if len(rows) > MaxHeight {
			return nil, &LoadError{Kind: ErrTooManyRows}
		}
	}
	if err := scanner.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return nil, &LoadError{Kind: ErrTooManyColumns}
		}
		return nil, &LoadError{Kind: ErrCantOpenFile, Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Kind: ErrNoRowsRead}
	}

	g := engine.NewGrid(len(rows), width)
	for y, row := range rows {
		for x := 0; x < width; x++ {
			normalized := engine.Normalize(row[x])
			if normalized != row[x] {
				glog.Infof("gridfile: row %d col %d: invalid byte 0x%02x normalized to inert\n", y, x, row[x])
			}
			g.Poke(y, x, normalized)
		}
	}
	return g, nil
}

// Save writes grid to path in the same row-per-line format Load reads.
func Save(path string, grid *engine.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for y := 0; y < grid.Height; y++ {
		row := make([]byte, grid.Width)
		for x := 0; x < grid.Width; x++ {
			row[x] = grid.Peek(y, x)
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
