// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audec/audio"
)

// pcmReader is the part of gomp3.Decoder used by referenceSource.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// referenceSource adapts go-mp3's 16-bit stereo byte stream to
// audio.Source.
type referenceSource struct {
	dec        pcmReader
	sampleRate int
	buf        []byte
	pending    []byte
}

func (s *referenceSource) SampleRate() int { return s.sampleRate }
func (s *referenceSource) Channels() int   { return 2 }
func (s *referenceSource) Close() error    { return nil }
func (s *referenceSource) BufSize() int    { return cap(s.buf) / 2 }

// ReadSamples scales each int16 by 1/32768, the same quantization
// StreamDecoder applies, so the two outputs compare directly.
func (s *referenceSource) ReadSamples(dst []float32) (int, error) {
	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}

	// keep a dangling odd byte from the previous read
	n := copy(s.buf[:need], s.pending)
	s.pending = s.pending[:0]
	m, err := s.dec.Read(s.buf[n:need])
	n += m
	if n%2 == 1 {
		s.pending = append(s.pending, s.buf[n-1])
		n--
	}

	samples := n / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}
	if samples == 0 && err == nil {
		return 0, nil
	}
	return samples, err
}

// ReferenceDecoder decodes with github.com/hajimehoshi/go-mp3. Its output
// is always stereo. It backs the compare command and cross-checks in tests.
type ReferenceDecoder struct{}

func (ReferenceDecoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &referenceSource{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
