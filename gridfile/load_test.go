package gridfile

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadReaderRectangle(t *testing.T) {
	g, err := LoadReader(strings.NewReader("ABC\nD.F\n...\n"))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if g.Height != 3 || g.Width != 3 {
		t.Fatalf("dims = %dx%d, want 3x3", g.Height, g.Width)
	}
	if got := g.Peek(1, 1); got != '.' {
		t.Errorf("Peek(1,1) = %q, want '.'", got)
	}
}

func TestLoadReaderNotARectangle(t *testing.T) {
	_, err := LoadReader(strings.NewReader("ABC\nDE\n"))
	var le *LoadError
	if !errors.As(err, &le) || le.Kind != ErrNotARectangle {
		t.Fatalf("err = %v, want ErrNotARectangle", err)
	}
}

func TestLoadReaderNoRowsRead(t *testing.T) {
	_, err := LoadReader(strings.NewReader(""))
	var le *LoadError
	if !errors.As(err, &le) || le.Kind != ErrNoRowsRead {
		t.Fatalf("err = %v, want ErrNoRowsRead", err)
	}
}

func TestLoadReaderTrimsTrailingWhitespace(t *testing.T) {
	g, err := LoadReader(strings.NewReader("AB \nCD \n"))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if g.Width != 2 {
		t.Errorf("Width = %d, want 2 (trailing space trimmed)", g.Width)
	}
}

func TestLoadReaderSkipsBlankLines(t *testing.T) {
	g, err := LoadReader(strings.NewReader("AB\n\nCD\n\n"))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if g.Height != 2 || g.Width != 2 {
		t.Fatalf("dims = %dx%d, want 2x2 (blank lines skipped, not counted as rows)", g.Height, g.Width)
	}
	if got := g.Peek(1, 0); got != 'C' {
		t.Errorf("Peek(1,0) = %q, want 'C'", got)
	}
}

func TestLoadReaderNormalizesInvalidBytes(t *testing.T) {
	g, err := LoadReader(strings.NewReader("A\x01B\n"))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if got := g.Peek(0, 1); got != '.' {
		t.Errorf("Peek(0,1) = %q, want inert (invalid byte normalized)", got)
	}
}

func TestLoadCantOpenFile(t *testing.T) {
	_, err := Load("/nonexistent/path/to/a/grid.orca")
	var le *LoadError
	if !errors.As(err, &le) || le.Kind != ErrCantOpenFile {
		t.Fatalf("err = %v, want ErrCantOpenFile", err)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/grid.orca"

	g, err := LoadReader(strings.NewReader("A.B\n.C.\n"))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if err := Save(path, g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Height != g.Height || reloaded.Width != g.Width {
		t.Fatalf("round-tripped dims = %dx%d, want %dx%d", reloaded.Height, reloaded.Width, g.Height, g.Width)
	}
	if reloaded.Peek(1, 1) != 'C' {
		t.Errorf("round-tripped Peek(1,1) = %q, want 'C'", reloaded.Peek(1, 1))
	}
}
