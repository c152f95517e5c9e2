package engine

// Bank is a per-tick, cell-indexed scratch store. Operators that need a
// coordinate or small value computed during their port-declaration phase
// to be available again, unchanged, during their execution phase persist
// it here: entries are appended in the same row-major order operators are
// visited, and are read back by scanning forward from a cursor that only
// ever advances within a tick. Because dispatch is row-major, an
// operator's own entry is always the first one reachable from wherever
// the cursor currently sits.
//
// The backing storage is reused across ticks (Reset truncates rather than
// reallocates), matching the original engine's append-only byte arena.
type Bank struct {
	entries []bankEntry
	cursor  int
}

type bankEntry struct {
	index  uint32
	values []int32
}

// NewBank returns an empty bank ready for use.
func NewBank() *Bank {
	return &Bank{}
}

// Reset clears the bank for a new tick: the entry count and cursor both
// return to zero, but the backing array is kept.
func (b *Bank) Reset() {
	b.entries = b.entries[:0]
	b.cursor = 0
}

// Append stores values under the given cell index (y*width+x), in the
// port-declaration phase of whichever operator owns that cell this tick.
func (b *Bank) Append(index uint32, values []int32) {
	cp := make([]int32, len(values))
	copy(cp, values)
	b.entries = append(b.entries, bankEntry{index: index, values: cp})
}

// Read advances the bank's cursor forward until it finds an entry for
// index, copies up to len(out) of its values into out, and returns the
// number of values copied. It returns 0 if the cursor reaches the end of
// the bank without finding a match. The cursor is left just past
// whichever entry it stopped at (match or not), and is never rewound
// within a tick.
func (b *Bank) Read(index uint32, out []int32) int {
	for b.cursor < len(b.entries) {
		e := b.entries[b.cursor]
		b.cursor++
		if e.index == index {
			return copy(out, e.values)
		}
	}
	return 0
}

// Len reports how many entries have been appended so far this tick.
func (b *Bank) Len() int {
	return len(b.entries)
}
