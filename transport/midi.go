package transport

import "github.com/orcarun/orca/engine"

// MIDISink receives the MIDI-kind events a tick produced. audio and any
// external MIDI backend implement this directly; DrainMIDI is what the
// engine's event queue is actually fed through.
type MIDISink interface {
	NoteOn(engine.MIDINote)
	ControlChange(engine.MIDICC)
	PitchBend(engine.MIDIPitchBend)
}

// DrainMIDI dispatches every MIDI-kind event in events to sink, in
// emission order, leaving OSC and raw-UDP events untouched.
func DrainMIDI(sink MIDISink, events []engine.OutputEvent) {
	for _, ev := range events {
		switch ev.Kind {
		case engine.EventMIDINote:
			sink.NoteOn(ev.Note)
		case engine.EventMIDICC:
			sink.ControlChange(ev.CC)
		case engine.EventMIDIPitchBend:
			sink.PitchBend(ev.PitchBend)
		}
	}
}
