// SPDX-License-Identifier: EPL-2.0

// Package bytesource provides a byte-addressable read cursor over an
// immutable buffer. Views created with Extract share the buffer but keep
// their own bounds, position and byte order.
package bytesource

import (
	"encoding/binary"
	"math"
)

// Source reads scalars from buf[start:end] with post-increment.
// The position always stays within [start, end].
type Source struct {
	buf   []byte
	start int
	end   int
	pos   int
	order binary.ByteOrder
}

// New creates a big-endian Source over the whole of b.
func New(b []byte) *Source {
	return &Source{
		buf:   b,
		end:   len(b),
		order: binary.BigEndian,
	}
}

// SetLittleEndian switches the byte order used by multi-byte reads.
func (s *Source) SetLittleEndian(le bool) {
	if le {
		s.order = binary.LittleEndian
		return
	}
	s.order = binary.BigEndian
}

// LittleEndian reports the current byte order.
func (s *Source) LittleEndian() bool { return s.order == binary.LittleEndian }

// Len is the size of the view in bytes.
func (s *Source) Len() int { return s.end - s.start }

// Position is the cursor offset relative to the start of the view.
func (s *Source) Position() int { return s.pos - s.start }

// SetPosition moves the cursor, clamped to the view.
func (s *Source) SetPosition(p int) {
	s.pos = s.clamp(s.start + p)
}

// Skip advances (or rewinds, for negative n) the cursor.
func (s *Source) Skip(n int) {
	s.pos = s.clamp(s.pos + n)
}

// Available reports the bytes left between the cursor and the end of the view.
func (s *Source) Available() int { return s.end - s.pos }

// Extract returns a view of the next n bytes without copying and without
// moving this cursor. n is clamped to the bytes available.
func (s *Source) Extract(n int) *Source {
	n = max(0, min(n, s.Available()))
	return &Source{
		buf:   s.buf,
		start: s.pos,
		end:   s.pos + n,
		pos:   s.pos,
		order: s.order,
	}
}

// Bytes returns the whole view. The slice aliases the underlying buffer.
func (s *Source) Bytes() []byte { return s.buf[s.start:s.end:s.end] }

// ReadBytes returns the next n bytes (fewer at the end of the view) and
// advances past them. The slice aliases the underlying buffer.
func (s *Source) ReadBytes(n int) []byte {
	n = max(0, min(n, s.Available()))
	b := s.buf[s.pos : s.pos+n : s.pos+n]
	s.pos += n
	return b
}

// ReadString reads n bytes as an ASCII string.
func (s *Source) ReadString(n int) string {
	return string(s.ReadBytes(n))
}

func (s *Source) ReadUint8() uint8 {
	var b [1]byte
	s.fill(b[:])
	return b[0]
}

func (s *Source) ReadInt8() int8 { return int8(s.ReadUint8()) }

func (s *Source) ReadUint16() uint16 {
	var b [2]byte
	s.fill(b[:])
	return s.order.Uint16(b[:])
}

func (s *Source) ReadInt16() int16 { return int16(s.ReadUint16()) }

// ReadInt24 reads a sign-extended 24-bit integer.
func (s *Source) ReadInt24() int32 {
	var b [3]byte
	s.fill(b[:])
	var v int32
	if s.order == binary.LittleEndian {
		v = int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	} else {
		v = int32(b[2]) | int32(b[1])<<8 | int32(b[0])<<16
	}
	if v&0x800000 != 0 {
		v -= 0x1000000
	}
	return v
}

func (s *Source) ReadUint32() uint32 {
	var b [4]byte
	s.fill(b[:])
	return s.order.Uint32(b[:])
}

func (s *Source) ReadInt32() int32 { return int32(s.ReadUint32()) }

func (s *Source) ReadInt64() int64 {
	var b [8]byte
	s.fill(b[:])
	return int64(s.order.Uint64(b[:]))
}

func (s *Source) ReadFloat32() float32 { return math.Float32frombits(s.ReadUint32()) }

func (s *Source) ReadFloat64() float64 {
	var b [8]byte
	s.fill(b[:])
	return math.Float64frombits(s.order.Uint64(b[:]))
}

// PeekUint32 reads a 32-bit value without moving the cursor.
func (s *Source) PeekUint32() uint32 {
	p := s.pos
	v := s.ReadUint32()
	s.pos = p
	return v
}

// fill copies the next len(b) bytes into b; bytes past the end read as zero.
func (s *Source) fill(b []byte) {
	n := copy(b, s.buf[s.pos:s.end])
	clear(b[n:])
	s.pos += n
}

func (s *Source) clamp(p int) int {
	return max(s.start, min(p, s.end))
}
