// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// StepSource adapts a StepDecoder to the pull-style Source interface. It
// owns the per-channel output buffers and steps the decoder on demand as
// ReadSamples asks for samples that are not decoded yet.
type StepSource struct {
	dec    StepDecoder
	info   StreamInfo
	bufs   [][]float32
	budget time.Duration

	decoded  int
	finished bool
	pos      int
}

// NewStepSource starts dec and binds freshly allocated output buffers.
func NewStepSource(dec StepDecoder, cfg Config) (*StepSource, error) {
	info, err := dec.Start()
	if err != nil {
		return nil, fmt.Errorf("start decoder: %w", err)
	}
	if info.Channels < 1 {
		return nil, ErrNoChannels
	}

	bufs := make([][]float32, info.Channels)
	for i := range bufs {
		bufs[i] = make([]float32, info.TotalSamples)
	}
	if err := dec.SetChannels(bufs); err != nil {
		return nil, fmt.Errorf("bind channels: %w", err)
	}

	return &StepSource{
		dec:    dec,
		info:   info,
		bufs:   bufs,
		budget: cfg.Budget(),
	}, nil
}

// Info returns the stream description reported by Start.
func (s *StepSource) Info() StreamInfo { return s.info }

// Decoder returns the wrapped decoder.
func (s *StepSource) Decoder() StepDecoder { return s.dec }

func (s *StepSource) SampleRate() int { return s.info.SampleRate }
func (s *StepSource) Channels() int   { return s.info.Channels }
func (s *StepSource) BufSize() int    { return 4096 }

func (s *StepSource) Close() error {
	if c, ok := s.dec.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}

// ReadSamples fills dst with interleaved samples, decoding more of the
// stream when needed.
func (s *StepSource) ReadSamples(dst []float32) (int, error) {
	ch := s.info.Channels
	if len(dst)%ch != 0 {
		return 0, ErrInvalidDstSize
	}
	frames := len(dst) / ch

	for !s.finished && s.decoded < s.pos+frames {
		p, err := s.dec.Step(s.budget)
		if err != nil {
			return 0, fmt.Errorf("step: %w", err)
		}
		s.decoded = min(p.Decoded, s.info.TotalSamples)
		s.finished = p.Finished
	}

	n := min(frames, s.decoded-s.pos)
	if n <= 0 {
		return 0, io.EOF
	}

	for f := range n {
		for c := range ch {
			dst[f*ch+c] = s.bufs[c][s.pos+f]
		}
	}
	s.pos += n

	if s.finished && s.pos >= s.decoded {
		return n * ch, io.EOF
	}
	return n * ch, nil
}
