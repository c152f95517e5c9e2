package engine

import (
	"testing"
)

func gridFromRows(rows []string) *Grid {
	height := len(rows)
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	g := NewGrid(height, width)
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			g.Poke(y, x, Glyph(r[x]))
		}
	}
	return g
}

func gridRows(g *Grid) []string {
	rows := make([]string, g.Height)
	for y := 0; y < g.Height; y++ {
		b := make([]byte, g.Width)
		for x := 0; x < g.Width; x++ {
			b[x] = g.Peek(y, x)
		}
		rows[y] = string(b)
	}
	return rows
}

func assertRows(t *testing.T, got *Grid, want []string) {
	t.Helper()
	gotRows := gridRows(got)
	if len(gotRows) != len(want) {
		t.Fatalf("row count = %d, want %d", len(gotRows), len(want))
	}
	for y := range want {
		if gotRows[y] != want[y] {
			t.Errorf("row %d = %q, want %q", y, gotRows[y], want[y])
		}
	}
}

func newFixture(rows []string) (*Grid, *MarkPlane, *Bank, *VarSlots, *EventQueue) {
	g := gridFromRows(rows)
	return g, NewMarkPlane(g.Height, g.Width), NewBank(), &VarSlots{}, NewEventQueue()
}

func TestOperatorAdd(t *testing.T) {
	g, m, b, v, e := newFixture([]string{
		"A12",
		"...",
	})
	Tick(g, m, b, v, e, NoPianoBits, 0)
	assertRows(t, g, []string{
		"A12",
		"3..",
	})
}

func TestOperatorSubtract(t *testing.T) {
	g, m, b, v, e := newFixture([]string{
		"B52",
		"...",
	})
	Tick(g, m, b, v, e, NoPianoBits, 0)
	assertRows(t, g, []string{
		"B52",
		"3..",
	})
}

func TestOperatorClock(t *testing.T) {
	g, m, b, v, e := newFixture([]string{
		".C3",
		"...",
	})
	var lastTick int
	for tick := 0; tick < 4; tick++ {
		Tick(g, m, b, v, e, NoPianoBits, tick)
		lastTick = tick
	}
	rate := IndexOf('.') + 1
	mod := IndexOf('3') + 1
	got := g.Peek(1, 1)
	want := GlyphOf((lastTick / rate) % mod)
	if got != want {
		t.Errorf("clock output after 4 ticks = %q, want %q", got, want)
	}
}

func TestOperatorIf(t *testing.T) {
	g, m, b, v, e := newFixture([]string{
		"F11",
		"...",
	})
	Tick(g, m, b, v, e, NoPianoBits, 0)
	if got := g.Peek(1, 0); got != Bang {
		t.Errorf("if with equal operands = %q, want bang", got)
	}

	g2, m2, b2, v2, e2 := newFixture([]string{
		"F12",
		"...",
	})
	Tick(g2, m2, b2, v2, e2, NoPianoBits, 0)
	if got := g2.Peek(1, 0); got != Inert {
		t.Errorf("if with unequal operands = %q, want inert", got)
	}
}

func TestOperatorBangAndMovement(t *testing.T) {
	// The bang sits south of the mover so it is still visible when the
	// mover is dispatched: row-major order visits all of row 0 before
	// row 1, so a bang dispatched later in the sweep (and erasing itself
	// when its own turn comes) hasn't run yet.
	g, m, b, v, e := newFixture([]string{
		"e..",
		"*..",
	})
	Tick(g, m, b, v, e, NoPianoBits, 0)
	assertRows(t, g, []string{
		".e.",
		"...",
	})
}

func TestMovementUppercaseAlwaysMoves(t *testing.T) {
	g, m, b, v, e := newFixture([]string{
		"E..",
	})
	Tick(g, m, b, v, e, NoPianoBits, 0)
	assertRows(t, g, []string{
		".E.",
	})
}

func TestMovementBlockedTurnsBang(t *testing.T) {
	g, m, b, v, e := newFixture([]string{
		"E1",
	})
	Tick(g, m, b, v, e, NoPianoBits, 0)
	if got := g.Peek(0, 0); got != Bang {
		t.Errorf("blocked movement = %q, want bang", got)
	}
}

func TestMovementOutOfRangeTurnsBang(t *testing.T) {
	g, m, b, v, e := newFixture([]string{
		"E",
	})
	Tick(g, m, b, v, e, NoPianoBits, 0)
	if got := g.Peek(0, 0); got != Bang {
		t.Errorf("out-of-range movement = %q, want bang", got)
	}
}

func TestOperatorVariableStoreAndLoad(t *testing.T) {
	g, m, b, v, e := newFixture([]string{
		"aV5",
		"...",
		".Va",
		"...",
	})
	Tick(g, m, b, v, e, NoPianoBits, 0)
	if got := g.Peek(3, 1); got != '5' {
		t.Errorf("variable read-back at (3,1) = %q, want '5'", got)
	}
}

func TestOperatorKill(t *testing.T) {
	g, m, b, v, e := newFixture([]string{
		"K",
		"1",
	})
	Tick(g, m, b, v, e, NoPianoBits, 0)
	if got := g.Peek(1, 0); got != Inert {
		t.Errorf("kill target = %q, want inert", got)
	}
}

func TestOperatorLoopRotates(t *testing.T) {
	// length selector '3' sits west of L (requesting a window of 4, but
	// only 3 cells lie east of L so the window clamps to the grid edge).
	g, m, b, v, e := newFixture([]string{
		"3L123",
	})
	Tick(g, m, b, v, e, NoPianoBits, 0)
	assertRows(t, g, []string{
		"3L231",
	})
}

func TestOperatorUturnReflectsDirection(t *testing.T) {
	// Dispatched directly (bypassing Tick's row-major sweep) so the
	// assertion isolates uturn's own rewrite from the cascading
	// self-dispatch its rewritten neighbors would otherwise receive
	// later in the same sweep.
	g, m, b, v, e := newFixture([]string{
		".N.",
		"WUE",
		".S.",
	})
	ctx := Ctx{Grid: g, Marks: m, Bank: b, Vars: v, Events: e, Y: 1, X: 1, Glyph: 'U'}
	Dispatch(&ctx)
	assertRows(t, g, []string{
		".S.",
		"EUW",
		".N.",
	})
}

func TestOperatorKeys(t *testing.T) {
	g, m, b, v, e := newFixture([]string{
		"!1",
		"..",
	})
	Tick(g, m, b, v, e, PianoBitsOf('1'), 0)
	if got := g.Peek(1, 0); got != Bang {
		t.Errorf("keys with key held = %q, want bang", got)
	}

	g2, m2, b2, v2, e2 := newFixture([]string{
		"!1",
		"..",
	})
	Tick(g2, m2, b2, v2, e2, NoPianoBits, 0)
	if got := g2.Peek(1, 0); got != Inert {
		t.Errorf("keys with key not held = %q, want inert", got)
	}
}

func TestOperatorMidiNoteEmission(t *testing.T) {
	// ":" + channel '1', octave '5', note 'C', velocity '9', bar 'z', with
	// the triggering bang placed south of ':' rather than west of it: a
	// bang west would be dispatched first in row-major order and would
	// have already cleared itself (execBang) by the time ':' runs, so
	// hasNeighboringBang() would see nothing.
	g, m, b, v, e := newFixture([]string{
		":15C9z",
		"*.....",
	})
	Tick(g, m, b, v, e, NoPianoBits, 0)
	if e.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", e.Len())
	}
	ev := e.Events()[0]
	if ev.Kind != EventMIDINote {
		t.Fatalf("Kind = %v, want EventMIDINote", ev.Kind)
	}
	if ev.Note.Channel != 1 {
		t.Errorf("Channel = %d, want 1", ev.Note.Channel)
	}
	if ev.Note.Octave != 5 {
		t.Errorf("Octave = %d, want 5", ev.Note.Octave)
	}
	if ev.Note.Note != 0 {
		t.Errorf("Note = %d, want 0 (C)", ev.Note.Note)
	}
	if ev.Note.Velocity != midiVelocityOf('9') {
		t.Errorf("Velocity = %d, want %d", ev.Note.Velocity, midiVelocityOf('9'))
	}
}

func TestOperatorOSCEmission(t *testing.T) {
	// '=' reads its address two west ('A'), its count selector one west
	// ('1' -> length 2), and that many payload ints east ('1','2'). The
	// bang south of '=' satisfies its banged-execution requirement.
	g, m, b, v, e := newFixture([]string{
		"A1=12",
		"..*..",
	})
	Tick(g, m, b, v, e, NoPianoBits, 0)
	if e.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", e.Len())
	}
	ev := e.Events()[0]
	if ev.Kind != EventOSCInts {
		t.Fatalf("Kind = %v, want EventOSCInts", ev.Kind)
	}
	if ev.OSC.Glyph != 'A' {
		t.Errorf("Glyph = %q, want 'A'", ev.OSC.Glyph)
	}
	if ev.OSC.Count != 2 {
		t.Errorf("Count = %d, want 2", ev.OSC.Count)
	}
	if ev.OSC.Numbers[0] != 1 || ev.OSC.Numbers[1] != 2 {
		t.Errorf("Numbers = %v, want [1 2 ...]", ev.OSC.Numbers)
	}
}
