// SPDX-License-Identifier: EPL-2.0

package audiotest

// Granule is the side info of one granule and channel of a Layer III
// frame.
type Granule struct {
	Part23Length      int
	BigValues         int
	GlobalGain        int
	ScalefacCompress  int
	WindowSwitching   bool
	BlockType         int
	MixedBlock        bool
	TableSelect       [3]int
	SubblockGain      [3]int
	Region0Count      int
	Region1Count      int
	Preflag           int
	ScalefacScale     int
	Count1TableSelect int
}

// MP3Frame describes an MPEG-1 Layer III frame. The zero value is a
// 128 kbit/s 44.1 kHz stereo frame of digital silence with no CRC.
type MP3Frame struct {
	// Version is the 2-bit version index; zero means MPEG-1 (3).
	Version      int
	BitrateIndex int // zero means 9 (128 kbit/s)
	SampleRate   int // sample rate index, 0 is 44.1 kHz
	Padding      bool
	CRC          bool
	Mode         int
	ModeExt      int

	MainDataBegin int
	Scfsi         [2][4]int
	Granules      [2][2]Granule

	// MainData is placed right after the side info; the rest of the frame
	// is zero filled.
	MainData []byte
}

func (f MP3Frame) Channels() int {
	if f.Mode == 3 {
		return 1
	}
	return 2
}

func (f MP3Frame) version() int {
	if f.Version == 0 {
		return 3
	}
	return f.Version
}

func (f MP3Frame) bitrateIndex() int {
	if f.BitrateIndex == 0 {
		return 9
	}
	return f.BitrateIndex
}

// Header returns the 32-bit frame header.
func (f MP3Frame) Header() uint32 {
	h := uint32(0x7FF) << 21
	h |= uint32(f.version()) << 19
	h |= 1 << 17 // layer III
	if !f.CRC {
		h |= 1 << 16
	}
	h |= uint32(f.bitrateIndex()) << 12
	h |= uint32(f.SampleRate) << 10
	if f.Padding {
		h |= 1 << 9
	}
	h |= uint32(f.Mode) << 6
	h |= uint32(f.ModeExt) << 4
	return h
}

// Size is the frame length in bytes for MPEG-1 and MPEG-2 alike.
func (f MP3Frame) Size() int {
	v1 := []int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	lsf := []int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
	rate := []int{44100, 48000, 32000}[f.SampleRate]
	pad := 0
	if f.Padding {
		pad = 1
	}
	if f.version() == 3 {
		return 144000*v1[f.bitrateIndex()]/rate + pad
	}
	rate /= 4 - f.version()
	return 72000*lsf[f.bitrateIndex()]/rate + pad
}

// Bytes encodes the frame.
func (f MP3Frame) Bytes() []byte {
	var w BitWriter
	w.WriteBits(f.Header(), 32)
	if f.CRC {
		w.WriteBits(0, 16)
	}

	nch := f.Channels()
	w.WriteBits(uint32(f.MainDataBegin), 9)
	if nch == 1 {
		w.WriteBits(0, 5)
	} else {
		w.WriteBits(0, 3)
	}
	for ch := range nch {
		for band := range 4 {
			w.WriteBits(uint32(f.Scfsi[ch][band]), 1)
		}
	}
	for gr := range 2 {
		for ch := range nch {
			writeGranule(&w, f.Granules[gr][ch])
		}
	}

	out := append(w.Bytes(), f.MainData...)
	if n := f.Size(); len(out) < n {
		out = append(out, make([]byte, n-len(out))...)
	}
	return out[:f.Size()]
}

func writeGranule(w *BitWriter, g Granule) {
	w.WriteBits(uint32(g.Part23Length), 12)
	w.WriteBits(uint32(g.BigValues), 9)
	w.WriteBits(uint32(g.GlobalGain), 8)
	w.WriteBits(uint32(g.ScalefacCompress), 4)
	w.WriteBool(g.WindowSwitching)
	if g.WindowSwitching {
		w.WriteBits(uint32(g.BlockType), 2)
		w.WriteBool(g.MixedBlock)
		w.WriteBits(uint32(g.TableSelect[0]), 5)
		w.WriteBits(uint32(g.TableSelect[1]), 5)
		for _, s := range g.SubblockGain {
			w.WriteBits(uint32(s), 3)
		}
	} else {
		for _, t := range g.TableSelect {
			w.WriteBits(uint32(t), 5)
		}
		w.WriteBits(uint32(g.Region0Count), 4)
		w.WriteBits(uint32(g.Region1Count), 3)
	}
	w.WriteBits(uint32(g.Preflag), 1)
	w.WriteBits(uint32(g.ScalefacScale), 1)
	w.WriteBits(uint32(g.Count1TableSelect), 1)
}

// MP3Stream concatenates encoded frames.
func MP3Stream(frames ...MP3Frame) []byte {
	var out []byte
	for _, f := range frames {
		out = append(out, f.Bytes()...)
	}
	return out
}

// ID3v2 returns an ID3v2.4 tag header announcing size bytes of zeroed tag
// body, followed by that body. With footer set the footer flag is raised
// and a 10-byte footer appended.
func ID3v2(size int, footer bool) []byte {
	var flags byte
	if footer {
		flags = 0x10
	}
	b := []byte{'I', 'D', '3', 4, 0, flags,
		byte(size >> 21 & 0x7F), byte(size >> 14 & 0x7F), byte(size >> 7 & 0x7F), byte(size & 0x7F)}
	b = append(b, make([]byte, size)...)
	if footer {
		b = append(b, '3', 'D', 'I', 4, 0, flags, b[6], b[7], b[8], b[9])
	}
	return b
}

// ID3v1 returns a 128-byte trailing tag.
func ID3v1() []byte {
	b := make([]byte, 128)
	copy(b, "TAG")
	return b
}
