// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ik5/audec/audio"
	"github.com/ik5/audec/formats/wav"
)

// Example decodes a file step by step into caller-owned buffers.
func Example() {
	var file bytes.Buffer
	if err := wav.WritePCM16(&file, 8000, 2, []int16{0, 0, 16384, -16384, 32767, -32767}); err != nil {
		log.Fatal(err)
	}

	d := wav.NewStreamDecoder(file.Bytes(), audio.DefaultConfig())
	info, err := d.Start()
	if err != nil {
		log.Fatal(err)
	}

	left := make([]float32, info.TotalSamples)
	right := make([]float32, info.TotalSamples)
	if err := d.SetChannels([][]float32{left, right}); err != nil {
		log.Fatal(err)
	}
	for !d.Finished() {
		if _, err := d.Step(10 * time.Millisecond); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println(info.Format, info.SampleRate, "Hz")
	fmt.Printf("left  %+.2f\n", left)
	fmt.Printf("right %+.2f\n", right)

	// Output:
	// WAVE PCM 16-bit 8000 Hz
	// left  [+0.00 +0.50 +1.00]
	// right [+0.00 -0.50 -1.00]
}

// ExampleDecoder_Decode reads a file through the audio.Source interface.
func ExampleDecoder_Decode() {
	var file bytes.Buffer
	if err := wav.WriteWAV16(&file, 16000, make([]int16, 10000)); err != nil {
		log.Fatal(err)
	}

	src, err := wav.Decoder{}.Decode(&file)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	buf := make([]float32, 1000)
	total, reads := 0, 0
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			total += n
			reads++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
	}
	fmt.Printf("%d Hz, %d samples in %d reads\n", src.SampleRate(), total, reads)

	// Output:
	// 16000 Hz, 10000 samples in 10 reads
}

// ExampleDecoder_Decode_errorHandling distinguishes malformed input from
// encodings that are not decoded.
func ExampleDecoder_Decode_errorHandling() {
	_, err := wav.Decoder{}.Decode(bytes.NewReader([]byte("This is not a WAV file")))
	fmt.Println(errors.Is(err, wav.ErrNotWavFile), errors.Is(err, audio.ErrFormat))

	var file bytes.Buffer
	_ = wav.WriteWAV16(&file, 8000, []int16{1, 2})
	alaw := file.Bytes()
	alaw[20] = 6
	_, err = wav.Decoder{}.Decode(bytes.NewReader(alaw))
	fmt.Println(errors.Is(err, wav.ErrUnsupportedEncoding), errors.Is(err, audio.ErrUnsupportedFormat))

	// Output:
	// true true
	// true true
}

// ExampleWriteWAV16 writes a canonical 16-bit mono file.
func ExampleWriteWAV16() {
	var out bytes.Buffer
	if err := wav.WriteWAV16(&out, 8000, make([]int16, 1000)); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d bytes, %q\n", out.Len(), out.Bytes()[:4])

	// Output:
	// 2044 bytes, "RIFF"
}
