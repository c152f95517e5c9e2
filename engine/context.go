package engine

// Ctx is the per-cell context an operator runs with: the cell's
// coordinates and glyph, and handles onto the shared per-tick state. It
// is constructed fresh by the tick driver for every dispatched cell.
type Ctx struct {
	Grid   *Grid
	Marks  *MarkPlane
	Bank   *Bank
	Vars   *VarSlots
	Events *EventQueue
	Piano  PianoBits
	Tick   int

	Y, X  int
	Glyph Glyph
}

func (c *Ctx) peek(dy, dx int) Glyph {
	return c.Grid.PeekRelative(c.Y, c.X, dy, dx)
}

func (c *Ctx) poke(dy, dx int, g Glyph) {
	c.Grid.PokeRelative(c.Y, c.X, dy, dx, g)
}

// pokeStunned writes g at the relative offset and puts it to sleep for
// the remainder of this tick, matching the original engine's
// poke-and-stun discipline for operators that write outside their own
// row-major-upcoming neighborhood.
func (c *Ctx) pokeStunned(dy, dx int, g Glyph) {
	y, x := c.Y+dy, c.X+dx
	if !c.Grid.InBounds(y, x) {
		return
	}
	c.Grid.Poke(y, x, g)
	c.Marks.OrFlags(y, x, FlagSleep)
}

// portHint ors tooling-hint flags (input/output/haste) onto a relative
// cell without locking it.
func (c *Ctx) portHint(dy, dx int, hints MarkFlag) {
	c.Marks.OrFlagsRelative(c.Y, c.X, dy, dx, hints)
}

// portLocked declares a port and locks it for the remainder of the
// tick, preventing any other operator dispatched later this tick from
// running on it. Halt uses it for its output port; loop, push and track
// lock their windows with lock instead (see DESIGN.md's port-locking
// note).
func (c *Ctx) portLocked(dy, dx int, hints MarkFlag) {
	c.Marks.OrFlagsRelative(c.Y, c.X, dy, dx, hints|FlagLock)
}

func (c *Ctx) lock(dy, dx int) {
	c.Marks.OrFlagsRelative(c.Y, c.X, dy, dx, FlagLock)
}

func (c *Ctx) hasNeighboringBang() bool {
	return c.peek(-1, 0) == Bang || c.peek(1, 0) == Bang ||
		c.peek(0, -1) == Bang || c.peek(0, 1) == Bang
}

// active reports whether a case-dual operator fires this tick: uppercase
// operators always fire; lowercase operators fire only when banged by a
// cardinal neighbor.
func (c *Ctx) active() bool {
	return IsUppercase(c.Glyph) || c.hasNeighboringBang()
}

func (c *Ctx) cellIndex() uint32 {
	return uint32(c.Y*c.Grid.Width + c.X)
}

func (c *Ctx) storeBank(values ...int32) {
	c.Bank.Append(c.cellIndex(), values)
}

// loadBank reads this cell's own bank entry back, returning the number
// of values copied into out. It returns 0 if this cell didn't store an
// entry during its port-declaration phase (e.g. it wasn't active).
func (c *Ctx) loadBank(out []int32) int {
	return c.Bank.Read(c.cellIndex(), out)
}
