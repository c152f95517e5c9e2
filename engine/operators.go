package engine

// Operator is a dispatch table entry. DeclarePorts runs first and marks
// the mark plane with input/output/haste hints, for most operators
// regardless of whether the operator is active this tick, so that
// external tooling can draw dataflow edges even for dormant lowercase
// operators. Locks (halt's output, and the windows of loop, push and
// track) are only placed when the operator is active; halt declares no
// port at all while dormant. Execute runs second and performs the
// actual grid/bank/variable/event mutation, and is responsible for its
// own activity gating (case-dual operators check active(); bang-gated
// operators check hasNeighboringBang()).
type Operator struct {
	DeclarePorts func(c *Ctx)
	Execute      func(c *Ctx)
}

// alphaOps is keyed by the uppercase form of the glyph: case only
// selects whether the operator requires a neighboring bang to fire.
var alphaOps map[Glyph]Operator

// uniqueOps is keyed by the exact glyph: these operators have no
// lowercase variant.
var uniqueOps map[Glyph]Operator

func init() {
	movement := Operator{Execute: execMovement}
	alphaOps = map[Glyph]Operator{
		'N': movement,
		'E': movement,
		'S': movement,
		'W': movement,
		'A': {DeclarePorts: portsBinaryOutSouth, Execute: execAdd},
		'B': {DeclarePorts: portsBinaryOutSouth, Execute: execSubtract},
		'C': {DeclarePorts: portsClock, Execute: execClock},
		'D': {DeclarePorts: portsDelay, Execute: execDelay},
		'F': {DeclarePorts: portsBinaryOutSouth, Execute: execIf},
		'G': {DeclarePorts: portsGenerator, Execute: execGenerator},
		'H': {DeclarePorts: portsHalt},
		'I': {DeclarePorts: portsIncrement, Execute: execIncrement},
		'J': {DeclarePorts: portsJump, Execute: execJump},
		'K': {DeclarePorts: portsKill, Execute: execKill},
		'L': {DeclarePorts: portsLoop, Execute: execLoop},
		'M': {DeclarePorts: portsBinaryOutSouth, Execute: execMultiply},
		'O': {DeclarePorts: portsOffset, Execute: execOffset},
		'P': {DeclarePorts: portsPush, Execute: execPush},
		'Q': {DeclarePorts: portsQuery, Execute: execQuery},
		'R': {DeclarePorts: portsBinaryOutSouth, Execute: execRandom},
		'T': {DeclarePorts: portsTrack, Execute: execTrack},
		'U': {DeclarePorts: portsUturn, Execute: execUturn},
		'V': {DeclarePorts: portsVariable, Execute: execVariable},
		'X': {DeclarePorts: portsTeleport, Execute: execTeleport},
		'Y': {DeclarePorts: portsJymper, Execute: execJymper},
		'Z': {Execute: execZig},
	}
	uniqueOps = map[Glyph]Operator{
		'*': {Execute: execBang},
		'#': {Execute: execComment},
		'!': {DeclarePorts: portsKeys, Execute: execKeys},
		':': {DeclarePorts: portsMidiNote, Execute: execMidiNote},
		'%': {DeclarePorts: portsMidiMono, Execute: execMidiMono},
		'?': {DeclarePorts: portsMidiBend, Execute: execMidiBend},
		'@': {DeclarePorts: portsMidiCC, Execute: execMidiCC},
		'=': {DeclarePorts: portsOSC, Execute: execOSC},
		';': {DeclarePorts: portsUDP, Execute: execUDP},
	}
}

// Dispatch runs the operator, if any, bound to c.Glyph: its
// port-declaration phase unconditionally, then its execution phase. A
// glyph with no bound operator (including the inert glyph) is a no-op.
func Dispatch(c *Ctx) {
	var op Operator
	var ok bool
	if IsAlpha(c.Glyph) {
		op, ok = alphaOps[Uppered(c.Glyph)]
	} else {
		op, ok = uniqueOps[c.Glyph]
	}
	if !ok {
		return
	}
	if op.DeclarePorts != nil {
		op.DeclarePorts(c)
	}
	if op.Execute != nil {
		op.Execute(c)
	}
}

// ---- movement (N, E, S, W and lowercase variants) ----

func directionOf(upper Glyph) (dy, dx int) {
	switch upper {
	case 'N':
		return -1, 0
	case 'E':
		return 0, 1
	case 'S':
		return 1, 0
	case 'W':
		return 0, -1
	}
	return 0, 0
}

func execMovement(c *Ctx) {
	if IsLowercase(c.Glyph) && !c.hasNeighboringBang() {
		return
	}
	dy, dx := directionOf(Uppered(c.Glyph))
	y0, x0 := c.Y+dy, c.X+dx
	if !c.Grid.InBounds(y0, x0) {
		c.Grid.Poke(c.Y, c.X, Bang)
		return
	}
	if c.Grid.Peek(y0, x0) == Inert {
		c.Grid.Poke(y0, x0, c.Glyph)
		c.Grid.Poke(c.Y, c.X, Inert)
		c.Marks.OrFlags(y0, x0, FlagSleep)
	} else {
		c.Grid.Poke(c.Y, c.X, Bang)
	}
}

func isMovementGlyph(g Glyph) bool {
	if !IsAlpha(g) {
		return false
	}
	switch Uppered(g) {
	case 'N', 'E', 'S', 'W':
		return true
	}
	return false
}

// ---- bang (*) ----

func execBang(c *Ctx) {
	c.Grid.Poke(c.Y, c.X, Inert)
}

// ---- comment (#) ----

func execComment(c *Ctx) {
	limit := c.X + 256
	if limit > c.Grid.Width {
		limit = c.Grid.Width
	}
	for xx := c.X + 1; xx < limit; xx++ {
		c.Marks.OrFlags(c.Y, xx, FlagLock)
		if c.Grid.Peek(c.Y, xx) == '#' {
			break
		}
	}
}

// ---- shared port shape for simple binary-input, single-output operators ----

func portsBinaryOutSouth(c *Ctx) {
	c.portHint(0, 1, FlagInput)
	c.portHint(0, 2, FlagInput)
	c.portHint(1, 0, FlagOutput)
}

// ---- add (A) ----

func execAdd(c *Ctx) {
	if !c.active() {
		return
	}
	c.poke(1, 0, GlyphsAdd(c.peek(0, 1), c.peek(0, 2)))
}

// ---- subtract (B) ----

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func execSubtract(c *Ctx) {
	if !c.active() {
		return
	}
	a := IndexOf(c.peek(0, 1))
	b := IndexOf(c.peek(0, 2))
	c.poke(1, 0, GlyphOf(absInt(a-b)))
}

// ---- clock (C) ----

func portsClock(c *Ctx) {
	c.portHint(0, -1, FlagInput|FlagHaste)
	c.portHint(0, 1, FlagInput)
	c.portHint(1, 0, FlagOutput)
}

func execClock(c *Ctx) {
	if !c.active() {
		return
	}
	rate := IndexOf(c.peek(0, -1)) + 1
	mod := IndexOf(c.peek(0, 1)) + 1
	c.poke(1, 0, GlyphOf((c.Tick/rate)%mod))
}

// ---- delay (D) ----

func portsDelay(c *Ctx) {
	c.portHint(0, -1, FlagInput|FlagHaste)
	c.portHint(0, 1, FlagInput)
	c.portHint(1, 0, FlagOutput)
}

func execDelay(c *Ctx) {
	if !c.active() {
		return
	}
	rate := IndexOf(c.peek(0, -1)) + 1
	offset := IndexOf(c.peek(0, 1))
	out := Glyph(Inert)
	if (c.Tick+offset)%rate == 0 {
		out = Bang
	}
	c.poke(1, 0, out)
}

// ---- if (F) ----

func execIf(c *Ctx) {
	if !c.active() {
		return
	}
	out := Glyph(Inert)
	if c.peek(0, 1) == c.peek(0, 2) {
		out = Bang
	}
	c.pokeStunned(1, 0, out)
}

// ---- generator (G) ----

func portsGenerator(c *Ctx) {
	c.portHint(0, -3, FlagInput|FlagHaste)
	c.portHint(0, -2, FlagInput|FlagHaste)
	c.portHint(0, -1, FlagInput|FlagHaste)
	x, y, length := 0, 1, 1
	if c.active() {
		x = IndexOf(c.peek(0, -3))
		y = IndexOf(c.peek(0, -2)) + 1
		length = IndexOf(c.peek(0, -1)) + 1
		c.storeBank(int32(x), int32(y), int32(length))
	}
	for i := 0; i < length; i++ {
		c.portHint(0, i+1, FlagInput)
		c.portHint(y, x+i, FlagOutput)
	}
}

func execGenerator(c *Ctx) {
	if !c.active() {
		return
	}
	var data [3]int32
	if c.loadBank(data[:]) == 0 {
		return
	}
	x, y, length := int(data[0]), int(data[1]), int(data[2])
	for i := 0; i < length; i++ {
		g := c.peek(0, i+1)
		c.pokeStunned(y, x+i, g)
	}
}

// ---- halt (H) ----

func portsHalt(c *Ctx) {
	if !c.active() {
		return
	}
	c.portLocked(1, 0, FlagOutput)
}

// ---- increment (I) ----

func portsIncrement(c *Ctx) {
	c.portHint(0, 1, FlagInput)
	c.portHint(0, 2, FlagInput)
	c.portHint(1, 0, FlagInput|FlagOutput)
}

func execIncrement(c *Ctx) {
	if !c.active() {
		return
	}
	min := IndexOf(c.peek(0, 1))
	max := IndexOf(c.peek(0, 2))
	if max == 0 {
		max = 10
	}
	val := IndexOf(c.peek(1, 0)) + 1
	if val >= max {
		val = min
	}
	c.poke(1, 0, GlyphOf(val))
}

// ---- jump (J) ----

func portsJump(c *Ctx) {
	c.portHint(-1, 0, FlagInput)
	c.portHint(1, 0, FlagOutput)
}

func execJump(c *Ctx) {
	if !c.active() {
		return
	}
	c.poke(1, 0, c.peek(-1, 0))
}

// ---- kill (K) ----
//
// The glyph's dual naming ("konkat/kill") is resolved toward kill (see
// DESIGN.md): stun-write the inert glyph one row south.

func portsKill(c *Ctx) {
	c.portHint(1, 0, FlagOutput|FlagHaste)
}

func execKill(c *Ctx) {
	if !c.active() {
		return
	}
	c.pokeStunned(1, 0, Inert)
}

// ---- loop (L) ----
//
// The glyph's dual naming ("lesser/loop") is resolved toward loop (see
// DESIGN.md): rotate a length-N window immediately east of self by one
// position, east to west.

func portsLoop(c *Ctx) {
	c.portHint(0, -1, FlagInput|FlagHaste)
	if !c.active() {
		return
	}
	length := IndexOf(c.peek(0, -1)) + 1
	c.storeBank(int32(length))
	maxLen := c.Grid.Width - c.X - 1
	if length > maxLen {
		length = maxLen
	}
	for i := 0; i < length; i++ {
		c.lock(0, i+1)
	}
}

func execLoop(c *Ctx) {
	if !c.active() {
		return
	}
	var data [1]int32
	if c.loadBank(data[:]) == 0 {
		return
	}
	length := int(data[0])
	if maxLen := c.Grid.Width - c.X - 1; length > maxLen {
		length = maxLen
	}
	if length <= 0 {
		return
	}
	hopped := c.peek(0, 1)
	vals := make([]Glyph, length)
	for i := 0; i < length-1; i++ {
		vals[i] = c.peek(0, i+2)
	}
	vals[length-1] = hopped
	for i := 0; i < length; i++ {
		c.poke(0, i+1, vals[i])
		c.Marks.OrFlagsRelative(c.Y, c.X, 0, i+1, FlagSleep)
	}
}

// ---- multiply (M) ----
//
// The glyph's dual naming ("multiply/modulo") is resolved toward the
// multiply formula, its primary definition (see DESIGN.md).

func execMultiply(c *Ctx) {
	if !c.active() {
		return
	}
	a := IndexOf(c.peek(0, 1))
	b := IndexOf(c.peek(0, 2))
	c.poke(1, 0, GlyphOf((a*b)%glyphCount))
}

// ---- offset (O) ----

func portsOffset(c *Ctx) {
	c.portHint(0, -1, FlagInput|FlagHaste)
	c.portHint(0, -2, FlagInput|FlagHaste)
	y, x := 0, 1
	if c.active() {
		y = IndexOf(c.peek(0, -1))
		x = IndexOf(c.peek(0, -2)) + 1
		c.storeBank(int32(y), int32(x))
	}
	c.portHint(y, x, FlagInput)
	c.portHint(1, 0, FlagOutput)
}

func execOffset(c *Ctx) {
	if !c.active() {
		return
	}
	var data [2]int32
	y, x := 0, 1
	if c.loadBank(data[:]) > 0 {
		y, x = int(data[0]), int(data[1])
	}
	c.poke(1, 0, c.peek(y, x))
}

// ---- push (P) ----

func portsPush(c *Ctx) {
	c.portHint(0, -1, FlagInput|FlagHaste)
	c.portHint(0, -2, FlagInput|FlagHaste)
	c.portHint(0, 1, FlagInput)
	writeX := 0
	if c.active() {
		length := IndexOf(c.peek(0, -1)) + 1
		key := IndexOf(c.peek(0, -2))
		writeX = key % length
		c.storeBank(int32(writeX))
		for i := 0; i < length; i++ {
			c.lock(1, i)
		}
	}
	c.portHint(1, writeX, FlagOutput)
}

func execPush(c *Ctx) {
	if !c.active() {
		return
	}
	var data [1]int32
	writeX := 0
	if c.loadBank(data[:]) > 0 {
		writeX = int(data[0])
	}
	c.poke(1, writeX, c.peek(0, 1))
}

// ---- query (Q) ----

func portsQuery(c *Ctx) {
	c.portHint(0, -3, FlagInput|FlagHaste)
	c.portHint(0, -2, FlagInput|FlagHaste)
	c.portHint(0, -1, FlagInput|FlagHaste)
	x, y, length := 0, 0, 1
	if c.active() {
		x = IndexOf(c.peek(0, -3))
		y = IndexOf(c.peek(0, -2))
		length = IndexOf(c.peek(0, -1)) + 1
		c.storeBank(int32(x), int32(y), int32(length))
	}
	inX := x + 1
	outX := 1 - length
	for i := 0; i < length; i++ {
		c.portHint(y, inX+i, FlagInput)
		c.portHint(1, outX+i, FlagOutput)
	}
}

func execQuery(c *Ctx) {
	if !c.active() {
		return
	}
	var data [3]int32
	if c.loadBank(data[:]) == 0 {
		return
	}
	x, y, length := int(data[0]), int(data[1]), int(data[2])
	inX := x + 1
	outX := 1 - length
	for i := 0; i < length; i++ {
		g := c.peek(y, inX+i)
		c.pokeStunned(1, outX+i, g)
	}
}

// ---- random (R) ----

func hash32ShiftMult(key uint32) uint32 {
	key = (key ^ 61) ^ (key >> 16)
	key = key + (key << 3)
	key = key ^ (key >> 4)
	key = key * 0x27d4eb2d
	key = key ^ (key >> 15)
	return key
}

func execRandom(c *Ctx) {
	if !c.active() {
		return
	}
	a := IndexOf(c.peek(0, 1))
	b := IndexOf(c.peek(0, 2))
	if a == b {
		c.poke(1, 0, GlyphOf(a))
		return
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	seed := c.cellIndex() ^ (uint32(c.Tick) << 16)
	key := hash32ShiftMult(seed)
	val := int(key%uint32(hi+1-lo)) + lo
	c.poke(1, 0, GlyphOf(val))
}

// ---- track (T) ----

func portsTrack(c *Ctx) {
	c.portHint(0, -1, FlagInput|FlagHaste)
	c.portHint(0, -2, FlagInput|FlagHaste)
	readX := 1
	if c.active() {
		length := IndexOf(c.peek(0, -1)) + 1
		key := IndexOf(c.peek(0, -2))
		readX = key%length + 1
		c.storeBank(int32(readX))
		for i := 0; i < length; i++ {
			c.lock(0, i+1)
		}
	}
	c.portHint(0, readX, FlagInput)
	c.portHint(1, 0, FlagOutput)
}

func execTrack(c *Ctx) {
	if !c.active() {
		return
	}
	var data [1]int32
	readX := 1
	if c.loadBank(data[:]) > 0 {
		readX = int(data[0])
	}
	c.poke(1, 0, c.peek(0, readX))
}

// ---- uturn (U) ----
//
// SPEC_FULL.md's prose ("replace it with the uppercase reflected
// direction") differs from the original engine's positional variant
// (which replaces a neighbor with the glyph naming the side it sits on,
// regardless of the neighbor's own direction). The reflecting reading is
// implemented here per SPEC_FULL.md.

func portsUturn(c *Ctx) {
	c.portHint(-1, 0, FlagInput|FlagOutput)
	c.portHint(1, 0, FlagInput|FlagOutput)
	c.portHint(0, -1, FlagInput|FlagOutput)
	c.portHint(0, 1, FlagInput|FlagOutput)
}

func reflectDirection(upper Glyph) Glyph {
	switch upper {
	case 'N':
		return 'S'
	case 'S':
		return 'N'
	case 'E':
		return 'W'
	case 'W':
		return 'E'
	}
	return upper
}

func execUturn(c *Ctx) {
	if !c.active() {
		return
	}
	offsets := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for _, o := range offsets {
		g := c.peek(o[0], o[1])
		if isMovementGlyph(g) {
			c.poke(o[0], o[1], reflectDirection(Uppered(g)))
		}
	}
}

// ---- variable (V) ----

func portsVariable(c *Ctx) {
	c.portHint(0, -1, FlagInput|FlagHaste)
	c.portHint(0, 1, FlagInput)
	c.portHint(1, 0, FlagOutput)
}

func execVariable(c *Ctx) {
	if !c.active() {
		return
	}
	left := c.peek(0, -1)
	if idx, ok := VarIndex(left); ok {
		right := c.peek(0, 1)
		if right != Inert {
			c.Vars[idx] = right
		}
		return
	}
	if left != Inert {
		return
	}
	right := c.peek(0, 1)
	idx, ok := VarIndex(right)
	if !ok {
		return
	}
	val := c.Vars[idx]
	if val != Inert {
		c.poke(1, 0, val)
	}
}

// ---- teleport (X) ----

func portsTeleport(c *Ctx) {
	c.portHint(0, -1, FlagInput|FlagHaste)
	c.portHint(0, -2, FlagInput|FlagHaste)
	c.portHint(0, 1, FlagInput)
	y, x := 1, 0
	if c.active() {
		y = IndexOf(c.peek(0, -1)) + 1
		x = IndexOf(c.peek(0, -2))
		c.storeBank(int32(y), int32(x))
	}
	c.portHint(y, x, FlagOutput)
}

func execTeleport(c *Ctx) {
	if !c.active() {
		return
	}
	var data [2]int32
	y, x := 1, 0
	if c.loadBank(data[:]) > 0 {
		y, x = int(data[0]), int(data[1])
	}
	c.pokeStunned(y, x, c.peek(0, 1))
}

// ---- jymper (Y) ----

func portsJymper(c *Ctx) {
	c.portHint(0, -1, FlagInput)
	c.portHint(1, 0, FlagOutput)
}

func execJymper(c *Ctx) {
	if !c.active() {
		return
	}
	c.poke(1, 0, c.peek(0, -1))
}

// ---- zig (Z) ----
//
// SPEC_FULL.md's dual naming ("lerp/zig") is resolved toward zig: slide
// one cell east if the destination is empty, otherwise slide west across
// inert cells and stop just east of the nearest non-inert glyph. The
// glyph is cleared from its own cell first and is not written anywhere
// when it sits on the east edge or no non-inert glyph lies to its west.

func execZig(c *Ctx) {
	if !c.active() {
		return
	}
	c.Grid.Poke(c.Y, c.X, Inert)
	if c.X+1 >= c.Grid.Width {
		return
	}
	if c.Grid.Peek(c.Y, c.X+1) == Inert {
		c.Grid.Poke(c.Y, c.X+1, c.Glyph)
		c.Marks.OrFlags(c.Y, c.X+1, FlagSleep)
		return
	}
	limit := c.X
	if limit > 256 {
		limit = 256
	}
	for i := 0; i < limit; i++ {
		if c.Grid.Peek(c.Y, c.X-i-1) != Inert {
			c.Grid.Poke(c.Y, c.X-i, c.Glyph)
			return
		}
	}
}

// ---- keys (!) ----

func portsKeys(c *Ctx) {
	c.portHint(0, 1, FlagInput)
	c.portHint(1, 0, FlagOutput)
}

func execKeys(c *Ctx) {
	pb := PianoBitsOf(c.peek(0, 1))
	if pb == NoPianoBits {
		return
	}
	out := Glyph(Inert)
	if c.Piano.Held(pb) {
		out = Bang
	}
	c.pokeStunned(1, 0, out)
}

// ---- midi note (:) ----

func portsMidiNote(c *Ctx) {
	for i := 1; i <= 5; i++ {
		c.portHint(0, i, FlagInput)
	}
}

func execMidiNote(c *Ctx) {
	if !c.hasNeighboringBang() {
		return
	}
	octaveIdx := IndexOf(c.peek(0, 2))
	if octaveIdx == 0 {
		return
	}
	note, ok := midiNoteNumberOf(c.peek(0, 3))
	if !ok {
		return
	}
	channel := channelOf(c.peek(0, 1))
	octave := clampInt(octaveIdx, 1, 9)
	velocity := midiVelocityOf(c.peek(0, 4))
	bar := barDivisorOf(c.peek(0, 5))
	c.Events.Append(OutputEvent{
		Kind: EventMIDINote,
		Note: MIDINote{Channel: channel, Octave: uint8(octave), Note: note, Velocity: velocity, BarDivisor: bar},
	})
}

// ---- midi mono (%) ----
//
// SPEC_FULL.md describes this as parsing "analogous" but fewer fields
// than the full note operator: channel, octave, note, with velocity
// fixed at maximum and a bar divisor of one (a sustained, full-velocity
// drone note rather than a struck one).

func portsMidiMono(c *Ctx) {
	for i := 1; i <= 3; i++ {
		c.portHint(0, i, FlagInput)
	}
}

func execMidiMono(c *Ctx) {
	if !c.hasNeighboringBang() {
		return
	}
	octaveIdx := IndexOf(c.peek(0, 2))
	if octaveIdx == 0 {
		return
	}
	note, ok := midiNoteNumberOf(c.peek(0, 3))
	if !ok {
		return
	}
	channel := channelOf(c.peek(0, 1))
	octave := clampInt(octaveIdx, 1, 9)
	c.Events.Append(OutputEvent{
		Kind: EventMIDINote,
		Note: MIDINote{Channel: channel, Octave: uint8(octave), Note: note, Velocity: 127, BarDivisor: 1},
	})
}

// ---- midi pitch-bend (?) ----

func portsMidiBend(c *Ctx) {
	for i := 1; i <= 3; i++ {
		c.portHint(0, i, FlagInput)
	}
}

func execMidiBend(c *Ctx) {
	if !c.hasNeighboringBang() {
		return
	}
	channel := channelOf(c.peek(0, 1))
	msb := uint8(IndexOf(c.peek(0, 2)))
	lsb := uint8(IndexOf(c.peek(0, 3)))
	c.Events.Append(OutputEvent{
		Kind:      EventMIDIPitchBend,
		PitchBend: MIDIPitchBend{Channel: channel, MSB: msb, LSB: lsb},
	})
}

// ---- midi control-change (@) ----
//
// SPEC_FULL.md's operator table names this variant's glyph as '!', which
// collides with the already-defined keys operator; '@' is used instead,
// documented as an Open Question resolution in DESIGN.md.

func portsMidiCC(c *Ctx) {
	for i := 1; i <= 3; i++ {
		c.portHint(0, i, FlagInput)
	}
}

func execMidiCC(c *Ctx) {
	if !c.hasNeighboringBang() {
		return
	}
	channel := channelOf(c.peek(0, 1))
	control := uint8(IndexOf(c.peek(0, 2)))
	value := uint8(IndexOf(c.peek(0, 3)))
	c.Events.Append(OutputEvent{
		Kind: EventMIDICC,
		CC:   MIDICC{Channel: channel, Control: control, Value: value},
	})
}

// ---- osc (=) ----

func portsOSC(c *Ctx) {
	c.portHint(0, -2, FlagInput|FlagHaste)
	c.portHint(0, -1, FlagInput|FlagHaste)
	length := IndexOf(c.peek(0, -1)) + 1
	if length > OSCIntCount {
		length = OSCIntCount
	}
	for i := 0; i < length; i++ {
		c.portHint(0, i+1, FlagInput)
	}
}

func execOSC(c *Ctx) {
	if !c.hasNeighboringBang() {
		return
	}
	addr := c.peek(0, -2)
	if addr == Inert {
		return
	}
	length := IndexOf(c.peek(0, -1)) + 1
	if length > OSCIntCount {
		length = OSCIntCount
	}
	var nums [OSCIntCount]uint8
	for i := 0; i < length; i++ {
		nums[i] = uint8(IndexOf(c.peek(0, i+1)))
	}
	c.Events.Append(OutputEvent{
		Kind: EventOSCInts,
		OSC:  OSCInts{Glyph: addr, Count: uint8(length), Numbers: nums},
	})
}

// ---- udp (;) ----
//
// The distilled operator table gives no wire layout for this glyph;
// this implementation fills the gap by analogy with osc (see DESIGN.md):
// a length selector at
// (0,-1), then that many raw payload bytes starting at (0,1), capped at
// 32 bytes per datagram.

func portsUDP(c *Ctx) {
	c.portHint(0, -1, FlagInput|FlagHaste)
	length := IndexOf(c.peek(0, -1)) + 1
	if length > 32 {
		length = 32
	}
	for i := 0; i < length; i++ {
		c.portHint(0, i+1, FlagInput)
	}
}

func execUDP(c *Ctx) {
	if !c.hasNeighboringBang() {
		return
	}
	length := IndexOf(c.peek(0, -1)) + 1
	if length > 32 {
		length = 32
	}
	payload := make([]byte, length)
	for i := 0; i < length; i++ {
		payload[i] = c.peek(0, i+1)
	}
	c.Events.Append(OutputEvent{
		Kind: EventUDP,
		UDP:  UDPDatagram{Payload: payload},
	})
}
