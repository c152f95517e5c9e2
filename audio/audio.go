// Package audio turns the engine's MIDI-kind output events into sound,
// driving a portaudio callback stream directly rather than routing
// through an external synthesizer.
package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/orcarun/orca/engine"
)

const sampleRate = 44100

// voiceCount bounds how many notes can ring out simultaneously; a new
// NoteOn past this count steals a ringing voice picked by a round-robin
// cursor.
const voiceCount = 32

type voice struct {
	active   bool
	channel  uint8
	note     uint8
	freq     float64
	phase    float64
	amp      float64
	decayPer float64 // amplitude multiplier applied once per sample
}

// Synth is a transport.MIDISink backed by a live portaudio stream. Every
// NoteOn takes the lowest-numbered free voice slot (or, when all are
// ringing, the slot at a round-robin cursor, which is not necessarily
// the oldest note) and starts it ringing with an exponential decay envelope whose
// rate is set by the note's bar divisor: a shorter bar divisor decays
// faster, a longer one sustains longer.
type Synth struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	voices [voiceCount]voice
	bend   [16]float64 // per-channel pitch bend, in semitones
	next   int         // round-robin voice-stealing cursor
}

// NewSynth returns a Synth with no stream open yet; call Start to begin
// producing audio.
func NewSynth() *Synth {
	return &Synth{}
}

// Start opens and begins a default-output portaudio stream that mixes
// every active voice each sample.
func (s *Synth) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize portaudio: %w", err)
	}
	cb := func(out []float32) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range out {
			var mix float64
			for v := range s.voices {
				voice := &s.voices[v]
				if !voice.active {
					continue
				}
				mix += math.Sin(voice.phase) * voice.amp
				voice.phase += 2 * math.Pi * voice.freq / sampleRate
				voice.amp *= voice.decayPer
				if voice.amp < 1e-4 {
					voice.active = false
				}
			}
			out[i] = float32(mix * 0.2)
		}
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, 0, cb)
	if err != nil {
		return fmt.Errorf("audio: open stream: %w", err)
	}
	s.stream = stream
	if err := stream.Start(); err != nil {
		return fmt.Errorf("audio: start stream: %w", err)
	}
	return nil
}

// Stop closes the stream and releases portaudio.
func (s *Synth) Stop() {
	if s.stream != nil {
		s.stream.Close()
	}
	portaudio.Terminate()
}

// noteFrequency converts a (octave, note, bend) triple into Hz, using
// equal temperament tuned to A440 with octave*12+note as the MIDI-style
// semitone index.
func noteFrequency(octave, note uint8, bendSemitones float64) float64 {
	semitone := float64(octave)*12 + float64(note) + bendSemitones
	return 440 * math.Pow(2, (semitone-57)/12)
}

// decayPerSample derives a per-sample amplitude multiplier from a bar
// divisor: divisor 1 rings for roughly a full second, divisor 36 decays
// in a fraction of that.
func decayPerSample(barDivisor uint8) float64 {
	if barDivisor == 0 {
		barDivisor = 1
	}
	seconds := 1.0 / float64(barDivisor)
	samples := seconds * sampleRate
	// amp(n) = amp(0) * decayPer^n should reach ~1e-4 by n=samples.
	return math.Pow(1e-4, 1/samples)
}

// NoteOn implements transport.MIDISink.
func (s *Synth) NoteOn(n engine.MIDINote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	freq := noteFrequency(n.Octave, n.Note, s.bend[n.Channel])
	amp := float64(n.Velocity) / 127
	slot := s.stealVoice()
	s.voices[slot] = voice{
		active:   true,
		channel:  n.Channel,
		note:     n.Note,
		freq:     freq,
		amp:      amp,
		decayPer: decayPerSample(n.BarDivisor),
	}
}

// ControlChange implements transport.MIDISink. The engine's CC operator
// has no fixed mapping to a synthesis parameter, so this records nothing
// beyond being a valid sink call; a front end wiring a specific CC
// number to a specific synth parameter can wrap Synth and intercept it.
func (s *Synth) ControlChange(engine.MIDICC) {}

// PitchBend implements transport.MIDISink, storing the channel's bend in
// semitones (centered at zero) for use by subsequent NoteOn calls on
// that channel.
func (s *Synth) PitchBend(p engine.MIDIPitchBend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw := int(p.MSB)<<7 | int(p.LSB)
	s.bend[p.Channel] = (float64(raw) - 8192) / 8192 * 2 // +/- 2 semitones
}

func (s *Synth) stealVoice() int {
	for i := range s.voices {
		if !s.voices[i].active {
			return i
		}
	}
	slot := s.next
	s.next = (s.next + 1) % voiceCount
	return slot
}
