package engine

import "testing"

func TestMidiNoteNumberOf(t *testing.T) {
	cases := []struct {
		g    Glyph
		note uint8
		ok   bool
	}{
		{'C', 0, true},
		{'c', 1, true},
		{'B', 11, true},
		{'.', 0, false},
		{'1', 0, false},
	}
	for _, c := range cases {
		note, ok := midiNoteNumberOf(c.g)
		if note != c.note || ok != c.ok {
			t.Errorf("midiNoteNumberOf(%q) = (%d,%v), want (%d,%v)", c.g, note, ok, c.note, c.ok)
		}
	}
}

func TestMidiVelocityOfBounds(t *testing.T) {
	if got := midiVelocityOf('0'); got != 1 {
		t.Errorf("midiVelocityOf('0') = %d, want 1", got)
	}
	if got := midiVelocityOf('a'); got != 0 {
		t.Errorf("midiVelocityOf('a') (index 10) = %d, want 0 (legacy step)", got)
	}
	if got := midiVelocityOf('z'); got != 122 {
		t.Errorf("midiVelocityOf('z') (max index, (35-10)*5-3) = %d, want 122", got)
	}
}

func TestChannelOfClamps(t *testing.T) {
	if got := channelOf('z'); got != 15 {
		t.Errorf("channelOf('z') = %d, want 15 (clamped)", got)
	}
	if got := channelOf('0'); got != 0 {
		t.Errorf("channelOf('0') = %d, want 0", got)
	}
}

func TestBarDivisorOfClamps(t *testing.T) {
	if got := barDivisorOf('.'); got != 1 {
		t.Errorf("barDivisorOf(Inert) = %d, want 1 (clamped minimum)", got)
	}
	if got := barDivisorOf('z'); got != 35 {
		t.Errorf("barDivisorOf('z') = %d, want 35", got)
	}
}
