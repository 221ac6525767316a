// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/audec/internal/audiotest"
)

func TestMonoMixer_Passthrough(t *testing.T) {
	t.Parallel()

	src := audiotest.Ramp(8000, 1, 10, 10)
	m := NewMonoMixer(src)

	buf := make([]float32, 16)
	n, err := m.ReadSamples(buf)
	if n != 10 || err != io.EOF {
		t.Fatalf("ReadSamples() = %d, %v; want 10, EOF", n, err)
	}
	for i := range n {
		if buf[i] != float32(i)/10 {
			t.Errorf("buf[%d] = %v", i, buf[i])
		}
	}
}

func TestMonoMixer_Average(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		wave     audiotest.Waveform
		want     func(i int) float32
	}{
		{
			name:     "stereo cancels",
			channels: 2,
			wave: func(i, ch int) float32 {
				if ch == 1 {
					return -float32(i)
				}
				return float32(i)
			},
			want: func(int) float32 { return 0 },
		},
		{
			name:     "stereo",
			channels: 2,
			wave:     func(_, ch int) float32 { return float32(ch) },
			want:     func(int) float32 { return 0.5 },
		},
		{
			name:     "five channels",
			channels: 5,
			wave:     func(i, ch int) float32 { return float32(ch) / 10 },
			want:     func(int) float32 { return 0.2 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewMonoMixer(audiotest.NewSource(8000, tt.channels, 50, tt.wave))
			if m.Channels() != 1 || m.SampleRate() != 8000 {
				t.Fatalf("metadata = %d Hz %d ch", m.SampleRate(), m.Channels())
			}

			got, err := ReadAll(m, 7)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 50 {
				t.Fatalf("read %d samples, want 50", len(got))
			}
			for i, v := range got {
				if w := tt.want(i); v < w-1e-6 || v > w+1e-6 {
					t.Errorf("sample %d = %v, want %v", i, v, w)
				}
			}
		})
	}
}

func TestMonoMixer_EmptyAndErrors(t *testing.T) {
	t.Parallel()

	m := NewMonoMixer(audiotest.Silence(8000, 2, 4))
	if n, err := m.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}

	boom := errors.New("boom")
	src := audiotest.Constant(8000, 2, 100, 0.5)
	src.Err, src.FailAt = boom, 3
	m = NewMonoMixer(src)

	buf := make([]float32, 10)
	n, err := m.ReadSamples(buf)
	if n != 3 || !errors.Is(err, boom) {
		t.Errorf("ReadSamples() = %d, %v; want 3, boom", n, err)
	}
}

func TestMonoMixer_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.Silence(8000, 2, 1)
	if err := NewMonoMixer(src).Close(); err != nil {
		t.Fatal(err)
	}
	if !src.Closed {
		t.Error("source was not closed")
	}
}

func BenchmarkMonoMixer_Stereo(b *testing.B) {
	src := audiotest.Sine(44100, 2, 1<<30, 440)
	m := NewMonoMixer(src)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_, _ = m.ReadSamples(buf)
	}
}
