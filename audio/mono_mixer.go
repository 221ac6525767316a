// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer averages the channels of src into a single channel.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("close mixer source: %w", err)
	}
	return nil
}

// ReadSamples fills dst with up to len(dst) mono samples. A trailing partial
// frame returned by the source is dropped.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	ch := m.src.Channels()
	if ch == 1 {
		return m.src.ReadSamples(dst)
	}
	if ch < 1 {
		return 0, ErrNoChannels
	}

	need := len(dst) * ch
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	in := m.tmp[:need]

	n, err := m.src.ReadSamples(in)
	frames := n / ch
	if frames == 0 {
		return 0, err
	}

	if ch == 2 {
		for f := range frames {
			dst[f] = (in[2*f] + in[2*f+1]) * 0.5
		}
		return frames, err
	}

	scale := 1 / float32(ch)
	for f := range frames {
		var sum float32
		for _, v := range in[f*ch : f*ch+ch] {
			sum += v
		}
		dst[f] = sum * scale
	}
	return frames, err
}
