// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"math"

	"github.com/ik5/audec/internal/bytesource"
)

// pcmRun is the number of frames decoded per scheduler unit.
const pcmRun = 1024

// sampleFunc reads one sample and normalizes it to [-1, 1].
type sampleFunc func(s *bytesource.Source) float32

// pcmReader picks the sample reader for a linear PCM or IEEE float format
// and reports the byte width of one sample.
func pcmReader(f Format) (sampleFunc, int, error) {
	switch f.Tag {
	case FormatPCM:
		switch f.BitsPerSample {
		case 8:
			return readPCM8, 1, nil
		case 16:
			return readPCM16, 2, nil
		case 24:
			return readPCM24, 3, nil
		case 32:
			return readPCM32, 4, nil
		case 64:
			return readPCM64, 8, nil
		}
	case FormatIEEEFloat:
		switch f.BitsPerSample {
		case 32:
			return readFloat32, 4, nil
		case 64:
			return readFloat64, 8, nil
		}
	default:
		return nil, 0, fmt.Errorf("%w: 0x%04X", ErrUnsupportedEncoding, f.Tag)
	}
	return nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedBitDepth, f.Name())
}

func readPCM8(s *bytesource.Source) float32 {
	return float32(int(s.ReadUint8())-128) / 128
}

func readPCM16(s *bytesource.Source) float32 {
	return float32(s.ReadInt16()) / 32767
}

func readPCM24(s *bytesource.Source) float32 {
	return float32(s.ReadInt24()) / 8388607
}

func readPCM32(s *bytesource.Source) float32 {
	return float32(float64(s.ReadInt32()) / 2147483647)
}

func readPCM64(s *bytesource.Source) float32 {
	return float32(float64(s.ReadInt64()) / math.MaxInt64)
}

func readFloat32(s *bytesource.Source) float32 {
	return clampUnit(s.ReadFloat32())
}

func readFloat64(s *bytesource.Source) float32 {
	return clampUnit(float32(s.ReadFloat64()))
}

func clampUnit(v float32) float32 {
	return max(-1, min(1, v))
}
