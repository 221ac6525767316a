// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of frame i on channel ch.
type Waveform func(i, ch int) float32

// Source is a synthetic audio source producing Frames frames of Wave. It
// satisfies audio.Source without importing the audio package.
type Source struct {
	Rate   int
	Chans  int
	Frames int
	Wave   Waveform

	// Err, when set, is returned by the read that crosses FailAt frames.
	Err    error
	FailAt int

	// MaxFrames caps the frames returned per read; zero means no cap.
	MaxFrames int

	Closed bool
	Reads  int
	pos    int
}

func NewSource(rate, channels, frames int, wave Waveform) *Source {
	return &Source{Rate: rate, Chans: channels, Frames: frames, Wave: wave}
}

// Silence is all zeros.
func Silence(rate, channels, frames int) *Source {
	return NewSource(rate, channels, frames, func(int, int) float32 { return 0 })
}

// Constant repeats v on every channel.
func Constant(rate, channels, frames int, v float32) *Source {
	return NewSource(rate, channels, frames, func(int, int) float32 { return v })
}

// Sine is a full-scale sine of freq Hz on every channel.
func Sine(rate, channels, frames int, freq float64) *Source {
	return NewSource(rate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
	})
}

// Ramp yields i/scale on channel 0, negated on odd channels.
func Ramp(rate, channels, frames int, scale float32) *Source {
	return NewSource(rate, channels, frames, func(i, ch int) float32 {
		v := float32(i) / scale
		if ch%2 == 1 {
			return -v
		}
		return v
	})
}

func (s *Source) SampleRate() int { return s.Rate }
func (s *Source) Channels() int   { return s.Chans }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.Closed = true
	return nil
}

// Rewind starts the stream over.
func (s *Source) Rewind() { s.pos = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	s.Reads++
	if s.pos >= s.Frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.Chans, s.Frames-s.pos)
	if s.MaxFrames > 0 {
		n = min(n, s.MaxFrames)
	}
	failing := s.Err != nil && s.pos+n > s.FailAt
	if failing {
		n = max(0, s.FailAt-s.pos)
	}

	for f := range n {
		for c := range s.Chans {
			dst[f*s.Chans+c] = s.Wave(s.pos+f, c)
		}
	}
	s.pos += n

	switch {
	case failing:
		return n * s.Chans, s.Err
	case s.pos >= s.Frames:
		return n * s.Chans, io.EOF
	}
	return n * s.Chans, nil
}
