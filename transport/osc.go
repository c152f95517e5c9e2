// Package transport carries output events to the outside world: OSC
// messages and raw UDP datagrams over a socket, and a thin MIDI event
// sink interface audio/visualize collaborators can implement.
package transport

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// nullPad returns the number of zero bytes needed to round n up to the
// next multiple of 4 (0 when n already is one). writeString calls it
// with the string length plus one for the mandatory terminator, so a
// string whose length is already a multiple of 4 is followed by four
// zero bytes: the terminator and three bytes of padding.
func nullPad(n int) int {
	return (4 - n%4) % 4
}

// EncodeOSCInts builds an OSC 1.0 message with an all-integer argument
// list: the address string, then a ",iii..." type tag, then each
// argument as a big-endian (network-order) int32, each field null-
// padded to a 4-byte boundary.
func EncodeOSCInts(address string, values []int32) []byte {
	var buf bytes.Buffer

	writeString(&buf, address)

	typeTag := make([]byte, 0, len(values)+1)
	typeTag = append(typeTag, ',')
	for range values {
		typeTag = append(typeTag, 'i')
	}
	writeString(&buf, string(typeTag))

	for _, v := range values {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v))
		buf.Write(b[:])
	}
	return buf.Bytes()
}

// writeString appends s, a null terminator, and zero-padding bytes so
// the string plus terminator occupies a multiple of 4 bytes.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte(0)
	pad := nullPad(len(s) + 1)
	for i := 0; i < pad; i++ {
		buf.WriteByte(0)
	}
}

// AddressFor turns an OSC address-selector glyph into a slash-prefixed
// OSC address path, the convention the engine uses so every distinct
// selector glyph routes to its own address.
func AddressFor(glyph byte) string {
	return fmt.Sprintf("/orca/%c", glyph)
}
