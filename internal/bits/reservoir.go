// SPDX-License-Identifier: EPL-2.0

package bits

import "errors"

// ReservoirSize is the byte capacity of the reservoir. It must be a power of
// two and larger than the biggest main_data_begin (511) plus one frame.
const ReservoirSize = 4096

const reservoirMask = ReservoirSize - 1

var (
	// ErrInsufficientHistory means main_data_begin points before the oldest
	// byte still held (typically the first frames of a stream).
	ErrInsufficientHistory = errors.New("bit reservoir: main data begins before retained history")

	// ErrNegativeDiscard means the previous frame read past the point where
	// this frame's main data begins.
	ErrNegativeDiscard = errors.New("bit reservoir: negative bytes to discard")
)

// Reservoir is a circular bit buffer over the main data of consecutive MP3
// frames. Positions are absolute: byte offsets count every byte ever pushed
// and the read position is an absolute bit index into that sequence.
type Reservoir struct {
	buf     [ReservoirSize]byte
	written int64
	pos     int64
}

// Push appends a frame's main data bytes, overwriting the oldest history.
func (r *Reservoir) Push(p []byte) {
	if len(p) > ReservoirSize {
		r.written += int64(len(p) - ReservoirSize)
		p = p[len(p)-ReservoirSize:]
	}
	for len(p) > 0 {
		off := int(r.written & reservoirMask)
		n := copy(r.buf[off:], p)
		p = p[n:]
		r.written += int64(n)
	}
}

// Written is the total number of bytes pushed so far.
func (r *Reservoir) Written() int64 { return r.written }

// Oldest is the absolute offset of the oldest byte still retained.
func (r *Reservoir) Oldest() int64 { return max(0, r.written-ReservoirSize) }

// Begin positions the reader at the main data of a frame whose own slot
// bytes were pushed starting at frameStart and whose side info declares
// mainDataBegin bytes of back-reference.
//
// On ErrNegativeDiscard the read position is resynchronised to the frame's
// main data start so the following frame can decode; the caller should
// still skip the current frame.
func (r *Reservoir) Begin(frameStart int64, mainDataBegin int) error {
	start := frameStart - int64(mainDataBegin)
	if start < 0 || start < r.Oldest() {
		return ErrInsufficientHistory
	}
	if start*8 < r.pos {
		r.pos = start * 8
		return ErrNegativeDiscard
	}
	r.pos = start * 8
	return nil
}

// Bit reads one bit. Bits outside the retained window read as zero.
func (r *Reservoir) Bit() uint32 {
	byteIdx := r.pos >> 3
	var v uint32
	if byteIdx >= r.Oldest() && byteIdx < r.written {
		v = uint32(r.buf[byteIdx&reservoirMask]>>(7-uint(r.pos&7))) & 1
	}
	r.pos++
	return v
}

// Bits reads n bits (0..32) as an unsigned value.
func (r *Reservoir) Bits(n int) uint32 {
	var v uint32
	for range n {
		v = v<<1 | r.Bit()
	}
	return v
}

// BitPos is the absolute read position in bits.
func (r *Reservoir) BitPos() int64 { return r.pos }

// Seek moves the read position to an absolute bit index.
func (r *Reservoir) Seek(bitPos int64) { r.pos = bitPos }

// Rewind moves the read position back by n bits, never before the oldest
// retained byte.
func (r *Reservoir) Rewind(n int) {
	r.pos = max(r.Oldest()*8, r.pos-int64(n))
}

// ReadBytes reads n whole bytes from the current (possibly unaligned)
// position.
func (r *Reservoir) ReadBytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(r.Bits(8))
	}
	return out
}

// Reset drops all history.
func (r *Reservoir) Reset() {
	r.written = 0
	r.pos = 0
}
