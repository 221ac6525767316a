// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ik5/audec/audio"
	"github.com/ik5/audec/internal/audiotest"
)

// Example_processingChain resamples a stereo stream and mixes it to mono.
func Example_processingChain() {
	src := audiotest.Sine(48000, 2, 48000, 440) // one second

	resampled, err := audio.NewResampler(src, 8000)
	if err != nil {
		log.Fatal(err)
	}
	mono := audio.NewMonoMixer(resampled)

	samples, err := audio.ReadAll(mono, 4096)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d Hz, %d channel\n", mono.SampleRate(), mono.Channels())
	fmt.Printf("%d samples, %.2f seconds\n", len(samples), float64(len(samples))/float64(mono.SampleRate()))

	// Output:
	// 8000 Hz, 1 channel
	// 8000 samples, 1.00 seconds
}

// Example_registry looks decoders up by file name.
func Example_registry() {
	reg := audio.NewRegistry()
	reg.Register(toneDecoder{}, "tone", "sine")

	dec, err := reg.ForPath("/tmp/a440.TONE")
	if err != nil {
		log.Fatal(err)
	}
	src, err := dec.Decode(nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(reg.Formats(), src.SampleRate())

	_, err = reg.ForPath("song.flac")
	fmt.Println(err)

	// Output:
	// [sine tone] 16000
	// unsupported format: no decoder for "song.flac"
}

// toneDecoder ignores its input and produces a short tone.
type toneDecoder struct{}

func (toneDecoder) Decode(io.Reader) (audio.Source, error) {
	return audiotest.Sine(16000, 1, 1000, 440), nil
}

// countingDecoder emits n silent samples, four per step.
type countingDecoder struct {
	out [][]float32
	n   int
}

func (d *countingDecoder) Start() (audio.StreamInfo, error) {
	return audio.StreamInfo{Format: "counting", SampleRate: 8000, Channels: 1, TotalSamples: 10}, nil
}

func (d *countingDecoder) SetChannels(b [][]float32) error {
	d.out = b
	return audio.BindChannels(b)
}

func (d *countingDecoder) Step(time.Duration) (audio.Progress, error) {
	d.n = min(d.n+4, 10)
	return audio.Progress{Decoded: d.n, Total: 10, Finished: d.n == 10}, nil
}

func (d *countingDecoder) LoadedTime() float64 { return float64(d.n) / 8000 }
func (d *countingDecoder) Finished() bool      { return d.n == 10 }

// ExampleNewStepSource pulls samples from a step decoder.
func ExampleNewStepSource() {
	src, err := audio.NewStepSource(&countingDecoder{}, audio.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}

	buf := make([]float32, 3)
	for {
		n, err := src.ReadSamples(buf)
		fmt.Print(n, " ")
		if err == io.EOF {
			break
		}
	}
	fmt.Println()

	// Output:
	// 3 3 3 1
}
