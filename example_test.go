// SPDX-License-Identifier: EPL-2.0

package audec_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ik5/audec"
	"github.com/ik5/audec/audio"
	"github.com/ik5/audec/formats/wav"
)

// Example decodes an in-memory WAVE file step by step.
func Example() {
	var file bytes.Buffer
	if err := wav.WriteWAV16(&file, 8000, []int16{0, 8192, 16384, 32767}); err != nil {
		log.Fatal(err)
	}

	dec, err := audec.Open(file.Bytes(), audio.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	info := dec.Info()

	out := [][]float32{make([]float32, info.TotalSamples)}
	if err := dec.SetChannels(out); err != nil {
		log.Fatal(err)
	}
	for !dec.Finished() {
		if _, err := dec.Step(10 * time.Millisecond); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("%s, %d Hz, %.4f s\n", info.Format, info.SampleRate, dec.LoadedTime())
	fmt.Printf("%.2f\n", out[0])

	// Output:
	// WAVE PCM 16-bit, 8000 Hz, 0.0005 s
	// [0.00 0.25 0.50 1.00]
}

// ExampleResampleToMono16 converts a stereo 16 kHz file to 8 kHz mono.
func ExampleResampleToMono16() {
	samples := make([]int16, 2*16000)
	for i := range 16000 {
		samples[2*i], samples[2*i+1] = 1000, 3000
	}
	var file bytes.Buffer
	if err := wav.WritePCM16(&file, 16000, 2, samples); err != nil {
		log.Fatal(err)
	}

	src, err := audec.NewRegistry(nil).ForPath("input.wav")
	if err != nil {
		log.Fatal(err)
	}
	source, err := src.Decode(&file)
	if err != nil {
		log.Fatal(err)
	}

	pcm, rate, err := audec.ResampleToMono16(source, 8000, 4096)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d samples at %d Hz, first %d\n", len(pcm), rate, pcm[0])

	// Output:
	// 8000 samples at 8000 Hz, first 2000
}

// ExampleOpen_errorHandling branches on the error kind.
func ExampleOpen_errorHandling() {
	_, err := audec.Open([]byte("not audio at all"), audio.DefaultConfig())
	switch {
	case errors.Is(err, audio.ErrUnsupportedFormat):
		fmt.Println("unsupported")
	case errors.Is(err, audio.ErrFormat):
		fmt.Println("malformed")
	}

	// Output:
	// malformed
}
