// SPDX-License-Identifier: EPL-2.0

package mp3

import "fmt"

// Version identifies the MPEG audio version by its 2-bit header index.
type Version int

const (
	Version2_5 Version = 0
	Version2   Version = 2
	Version1   Version = 3
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "MPEG-1"
	case Version2:
		return "MPEG-2"
	case Version2_5:
		return "MPEG-2.5"
	default:
		return "reserved"
	}
}

// Channel modes.
const (
	ModeStereo      = 0
	ModeJointStereo = 1
	ModeDualChannel = 2
	ModeMono        = 3
)

var (
	sampleRates   = [3]int{44100, 48000, 32000}
	bitratesV1L3  = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	bitratesLSFL3 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
)

// Header is a raw 32-bit MPEG audio frame header.
type Header uint32

// Valid reports whether h carries the sync pattern and no reserved field
// values.
func (h Header) Valid() bool {
	return h>>21 == 0x7FF &&
		h.Version() != reservedVersion &&
		h.layerIndex() != 0 &&
		h.BitrateIndex() != 0 && h.BitrateIndex() != 15 &&
		h.SampleRateIndex() != 3 &&
		h&3 != 2
}

func (h Header) Version() Version     { return Version(h >> 19 & 3) }
func (h Header) layerIndex() int      { return int(h >> 17 & 3) }
func (h Header) BitrateIndex() int    { return int(h >> 12 & 0xF) }
func (h Header) SampleRateIndex() int { return int(h >> 10 & 3) }
func (h Header) Padding() int         { return int(h >> 9 & 1) }
func (h Header) Mode() int            { return int(h >> 6 & 3) }
func (h Header) ModeExtension() int   { return int(h >> 4 & 3) }

// Layer returns 1, 2 or 3.
func (h Header) Layer() int { return 4 - h.layerIndex() }

// Protected reports whether a 16-bit CRC follows the header. The
// protection bit is active low.
func (h Header) Protected() bool { return h>>16&1 == 0 }

func (h Header) Channels() int {
	if h.Mode() == ModeMono {
		return 1
	}
	return 2
}

// MS reports mid/side stereo coding.
func (h Header) MS() bool { return h.Mode() == ModeJointStereo && h.ModeExtension()&2 != 0 }

// Intensity reports intensity stereo coding.
func (h Header) Intensity() bool {
	return h.Mode() == ModeJointStereo && h.ModeExtension()&1 != 0
}

// SampleRate in Hz.
func (h Header) SampleRate() int {
	r := sampleRates[h.SampleRateIndex()%3]
	switch h.Version() {
	case Version2:
		r /= 2
	case Version2_5:
		r /= 4
	}
	return r
}

// Bitrate in kbit/s.
func (h Header) Bitrate() int {
	if h.Version() == Version1 {
		return bitratesV1L3[h.BitrateIndex()]
	}
	return bitratesLSFL3[h.BitrateIndex()]
}

// FrameSize is the full frame length in bytes, header included.
func (h Header) FrameSize() int {
	mult := 144000
	if h.Version() != Version1 {
		mult = 72000
	}
	return mult*h.Bitrate()/h.SampleRate() + h.Padding()
}

// SamplesPerFrame per channel.
func (h Header) SamplesPerFrame() int {
	if h.Version() == Version1 {
		return frameSamples
	}
	return granuleSamples
}

// SideInfoSize is the side information length in bytes.
func (h Header) SideInfoSize() int {
	if h.Version() == Version1 {
		if h.Channels() == 1 {
			return 17
		}
		return 32
	}
	if h.Channels() == 1 {
		return 9
	}
	return 17
}

// checkSupported rejects anything other than MPEG-1 Layer III.
func (h Header) checkSupported() error {
	if h.Version() != Version1 {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, h.Version())
	}
	if h.Layer() != 3 {
		return fmt.Errorf("%w: layer %d", ErrUnsupportedLayer, h.Layer())
	}
	return nil
}

func (h Header) String() string {
	return fmt.Sprintf("%s layer %d %d kbit/s %d Hz %d ch", h.Version(), h.Layer(), h.Bitrate(), h.SampleRate(), h.Channels())
}
