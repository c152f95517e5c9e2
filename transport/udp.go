package transport

import (
	"fmt"
	"net"

	"github.com/orcarun/orca/engine"
)

// Sink owns the outbound UDP socket and turns a tick's output events into
// wire traffic: OSC-ints events become one OSC datagram each, and raw UDP
// events are sent verbatim.
type Sink struct {
	conn *net.UDPConn
}

// Dial opens a UDP socket to addr (host:port) and returns a Sink that
// writes to it. The socket is connected, so every Send is a single
// write(2) rather than a sendto(2) with an address argument each time,
// mirroring the original engine's one-socket-per-destination model.
func Dial(addr string) (*Sink, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: resolve %q: %w", addr, err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %q: %w", addr, err)
	}
	return &Sink{conn: conn}, nil
}

// Close releases the underlying socket.
func (s *Sink) Close() error {
	return s.conn.Close()
}

// SendOSC encodes and sends one OSC-ints message.
func (s *Sink) SendOSC(ev engine.OSCInts) error {
	values := make([]int32, ev.Count)
	for i := 0; i < int(ev.Count); i++ {
		values[i] = int32(ev.Numbers[i])
	}
	_, err := s.conn.Write(EncodeOSCInts(AddressFor(byte(ev.Glyph)), values))
	return err
}

// SendDatagram sends a raw UDP payload unchanged.
func (s *Sink) SendDatagram(ev engine.UDPDatagram) error {
	_, err := s.conn.Write(ev.Payload)
	return err
}

// Drain sends every OSC and raw-UDP event in events out over s, skipping
// MIDI-kind events (those belong to a MIDISink instead). It returns the
// first send error encountered, if any, after attempting every event.
func (s *Sink) Drain(events []engine.OutputEvent) error {
	var firstErr error
	for _, ev := range events {
		var err error
		switch ev.Kind {
		case engine.EventOSCInts:
			err = s.SendOSC(ev.OSC)
		case engine.EventUDP:
			err = s.SendDatagram(ev.UDP)
		default:
			continue
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
