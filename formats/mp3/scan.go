// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"github.com/ik5/audec/internal/bytesource"
)

const (
	id3v2HeaderSize = 10
	id3v1Size       = 128
)

// Index is the frame layout of an MPEG audio stream.
type Index struct {
	// First is the header of the first frame.
	First Header
	// Offsets of every complete frame, in file order.
	Offsets []int
	// Start and End bound the scanned audio region, tags excluded.
	Start, End int
}

// Frames is the number of complete frames.
func (x *Index) Frames() int { return len(x.Offsets) }

// Samples is the per-channel sample count of the indexed frames.
func (x *Index) Samples() int { return len(x.Offsets) * x.First.SamplesPerFrame() }

// Scan skips leading ID3v2 tags and a trailing ID3v1 tag, then indexes
// every frame that fits completely in data. It returns ErrNoFrames when no
// valid header is found.
func Scan(data []byte) (*Index, error) {
	src := bytesource.New(data)
	src.SetLittleEndian(false)

	x := &Index{Start: skipID3v2(src), End: len(data)}
	if len(data)-x.Start >= id3v1Size && string(data[len(data)-id3v1Size:len(data)-id3v1Size+3]) == "TAG" {
		x.End = len(data) - id3v1Size
	}

	pos := x.Start
	for pos+4 <= x.End {
		src.SetPosition(pos)
		h := Header(src.PeekUint32())
		if !h.Valid() {
			pos++
			continue
		}
		size := h.FrameSize()
		if pos+size > x.End {
			break
		}
		if len(x.Offsets) == 0 {
			x.First = h
		}
		x.Offsets = append(x.Offsets, pos)
		pos += size
	}

	if len(x.Offsets) == 0 {
		return nil, ErrNoFrames
	}
	return x, nil
}

// skipID3v2 returns the offset just past any ID3v2 tags at the start of
// src.
func skipID3v2(src *bytesource.Source) int {
	pos := 0
	for src.Len()-pos >= id3v2HeaderSize {
		src.SetPosition(pos)
		if src.ReadString(3) != "ID3" {
			break
		}
		src.Skip(2) // version
		flags := src.ReadUint8()
		var size int
		for range 4 {
			size = size<<7 | int(src.ReadUint8()&0x7F)
		}
		pos += id3v2HeaderSize + size
		if flags&0x10 != 0 {
			pos += id3v2HeaderSize
		}
	}
	return min(pos, src.Len())
}
