// SPDX-License-Identifier: EPL-2.0

package audec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ik5/audec/audio"
	"github.com/ik5/audec/formats/wav"
	"github.com/ik5/audec/internal/audiotest"
)

func TestResampleToMono16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      *audiotest.Source
		rate     int
		want     int
		wantPeak int16
	}{
		// the low-pass ahead of the 6:1 decimation takes about 5% off 440 Hz
		{"stereo sine down", audiotest.Sine(48000, 2, 48000, 440), 8000, 8000, 31250},
		{"mono constant down", audiotest.Constant(16000, 1, 16000, 0.5), 8000, 8000, 16384},
		{"stereo silence", audiotest.Silence(32000, 2, 3200), 8000, 800, 0},
		{"up", audiotest.Constant(8000, 2, 800, -0.25), 16000, 1600, 8192},
		{"same rate", audiotest.Constant(8000, 1, 100, 1), 8000, 100, 32767},
		{"empty", audiotest.Silence(44100, 2, 0), 8000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pcm, rate, err := ResampleToMono16(tt.src, tt.rate, 4096)
			if err != nil {
				t.Fatalf("ResampleToMono16() error = %v", err)
			}
			if rate != tt.rate {
				t.Errorf("rate = %d, want %d", rate, tt.rate)
			}
			if len(pcm) != tt.want {
				t.Errorf("got %d samples, want %d", len(pcm), tt.want)
			}

			var peak int16
			for _, s := range pcm[min(len(pcm), 20):] {
				peak = max(peak, s, -s)
			}
			if d := int(peak) - int(tt.wantPeak); d > 400 || d < -400 {
				t.Errorf("peak = %d, want about %d", peak, tt.wantPeak)
			}
		})
	}
}

func TestResampleToMono16_Errors(t *testing.T) {
	t.Parallel()

	if _, _, err := ResampleToMono16(audiotest.Silence(8000, 1, 10), 0, 64); !errors.Is(err, audio.ErrInvalidRate) {
		t.Errorf("rate 0 error = %v, want ErrInvalidRate", err)
	}

	boom := errors.New("boom")
	src := audiotest.Silence(8000, 2, 1000)
	src.Err, src.FailAt = boom, 10
	if _, _, err := ResampleToMono16(src, 16000, 64); !errors.Is(err, boom) {
		t.Errorf("source error = %v, want boom", err)
	}
}

func TestResampleToMono16_DecodedWAV(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 2*4410)
	for i := range 4410 {
		samples[2*i], samples[2*i+1] = 1000, 3000
	}
	var file bytes.Buffer
	if err := wav.WritePCM16(&file, 44100, 2, samples); err != nil {
		t.Fatal(err)
	}

	src, err := wav.Decoder{}.Decode(&file)
	if err != nil {
		t.Fatal(err)
	}
	pcm, _, err := ResampleToMono16(src, 22050, 1024)
	if err != nil {
		t.Fatal(err)
	}
	if len(pcm) != 2205 {
		t.Fatalf("got %d samples, want 2205", len(pcm))
	}
	for i, s := range pcm {
		if s < 1999 || s > 2001 {
			t.Fatalf("pcm[%d] = %d, want 2000", i, s)
		}
	}
}

func BenchmarkResampleToMono16(b *testing.B) {
	b.ReportAllocs()
	for range b.N {
		src := audiotest.Sine(44100, 2, 44100, 440)
		_, _, _ = ResampleToMono16(src, 8000, 4096)
	}
}
