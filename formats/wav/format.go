// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/audec/internal/bytesource"
)

// Encoding tags found in the fmt chunk.
const (
	FormatPCM        = 0x0001
	FormatIEEEFloat  = 0x0003
	FormatIMAADPCM   = 0x0011
	FormatMPEGLayer3 = 0x0055
	FormatExtensible = 0xFFFE
)

// Format is the decoded fmt chunk. For WAVE_FORMAT_EXTENSIBLE files Tag is
// taken from the SubFormat GUID and ValidBits/ChannelMask are filled in.
type Format struct {
	Tag             uint16
	Channels        int
	SampleRate      int
	ByteRate        int
	BlockAlign      int
	BitsPerSample   int
	ValidBits       int
	ChannelMask     uint32
	SamplesPerBlock int
	Extensible      bool
}

// Name is a short human readable description of the encoding.
func (f Format) Name() string {
	switch f.Tag {
	case FormatPCM:
		return fmt.Sprintf("PCM %d-bit", f.BitsPerSample)
	case FormatIEEEFloat:
		return fmt.Sprintf("IEEE float %d-bit", f.BitsPerSample)
	case FormatIMAADPCM:
		return "IMA ADPCM"
	case FormatMPEGLayer3:
		return "MPEG Layer III"
	default:
		return fmt.Sprintf("encoding 0x%04X", f.Tag)
	}
}

// parseFormat reads a fmt chunk view.
func parseFormat(c *bytesource.Source) (Format, error) {
	if c.Len() < 16 {
		return Format{}, fmt.Errorf("%w: %d bytes", ErrFormatChunkTooSmall, c.Len())
	}
	c.SetLittleEndian(true)

	f := Format{
		Tag:           c.ReadUint16(),
		Channels:      int(c.ReadUint16()),
		SampleRate:    int(c.ReadUint32()),
		ByteRate:      int(c.ReadUint32()),
		BlockAlign:    int(c.ReadUint16()),
		BitsPerSample: int(c.ReadUint16()),
	}

	if f.Tag == FormatIMAADPCM && c.Len() < 20 {
		return Format{}, fmt.Errorf("%w: IMA ADPCM needs 20 bytes, got %d", ErrFormatChunkTooSmall, c.Len())
	}
	if c.Len() < 18 {
		return f, nil
	}
	cbSize := int(c.ReadUint16())

	switch {
	case f.Tag == FormatExtensible && cbSize == 22 && c.Available() >= 22:
		f.Extensible = true
		f.ValidBits = int(c.ReadUint16())
		f.ChannelMask = c.ReadUint32()
		f.Tag = c.ReadUint16()
	case f.Tag == FormatIMAADPCM:
		f.SamplesPerBlock = int(c.ReadUint16())
	}

	return f, nil
}
