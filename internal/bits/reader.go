// SPDX-License-Identifier: EPL-2.0

// Package bits provides MSB-first bit access: a Reader over a fixed byte
// slice and a circular Reservoir that carries MP3 main data across frames.
package bits

// Reader reads bits MSB-first from a byte slice. Reads past the end return
// zero bits; Overrun reports whether that happened.
type Reader struct {
	buf    []byte
	bitPos int
}

// NewReader creates a Reader positioned at the first bit of b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Bit reads one bit.
func (r *Reader) Bit() uint32 {
	byteIdx := r.bitPos >> 3
	var v uint32
	if byteIdx < len(r.buf) {
		v = uint32(r.buf[byteIdx]>>(7-uint(r.bitPos&7))) & 1
	}
	r.bitPos++
	return v
}

// Bits reads n bits (0..32) as an unsigned value.
func (r *Reader) Bits(n int) uint32 {
	var v uint32
	for range n {
		v = v<<1 | r.Bit()
	}
	return v
}

// BitPos is the number of bits consumed so far.
func (r *Reader) BitPos() int { return r.bitPos }

// Overrun reports whether any read went past the end of the slice.
func (r *Reader) Overrun() bool { return r.bitPos > len(r.buf)*8 }
