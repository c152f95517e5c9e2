package engine

// Tick evaluates one full generation of the grid in place: it zeros the
// mark plane, clears the event queue, resets the variable slots and bank
// cursor, then visits every cell in row-major order, skipping the inert
// glyph and any cell whose lock or sleep flag is set at the moment it is
// reached. tickNumber is the caller-maintained generation counter fed to
// the clock and delay operators and to the deterministic random seed.
func Tick(grid *Grid, marks *MarkPlane, bank *Bank, vars *VarSlots, events *EventQueue, piano PianoBits, tickNumber int) {
	marks.Clear()
	events.Clear()
	vars.Reset()
	bank.Reset()

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			g := grid.Peek(y, x)
			if g == Inert {
				continue
			}
			if !IsAwake(marks.DispatchFlags(y, x)) {
				continue
			}
			ctx := Ctx{
				Grid:   grid,
				Marks:  marks,
				Bank:   bank,
				Vars:   vars,
				Events: events,
				Piano:  piano,
				Tick:   tickNumber,
				Y:      y,
				X:      x,
				Glyph:  g,
			}
			Dispatch(&ctx)
		}
	}
}
