// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/ik5/audec/audio"
	"github.com/ik5/audec/formats/mp3"
)

// diff summarizes how far two sample streams are apart.
type diff struct {
	Ours, Reference int
	Compared        int
	RMS, Peak       float64
}

func compareSamples(ours, ref []float32) diff {
	d := diff{Ours: len(ours), Reference: len(ref), Compared: min(len(ours), len(ref))}
	if d.Compared == 0 {
		return d
	}

	var sum float64
	for i := range d.Compared {
		e := math.Abs(float64(ours[i]) - float64(ref[i]))
		sum += e * e
		d.Peak = max(d.Peak, e)
	}
	d.RMS = math.Sqrt(sum / float64(d.Compared))
	return d
}

// compare decodes <file.mp3> with both mp3.Decoder and go-mp3 and prints
// the difference of their outputs.
func (a *app) compare(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: want <file.mp3>", errUsage)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	ours, err := mp3.Decoder{Config: &a.cfg}.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer ours.Close()

	ref, err := mp3.ReferenceDecoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("reference decoder: %w", err)
	}
	if ours.Channels() == 1 {
		ref = audio.NewMonoMixer(ref)
	}
	defer ref.Close()

	x, err := audio.ReadAll(ours, ours.BufSize())
	if err != nil {
		return err
	}
	y, err := audio.ReadAll(ref, ref.BufSize())
	if err != nil {
		return fmt.Errorf("reference decoder: %w", err)
	}

	d := compareSamples(x, y)
	a.log.WithField("file", args[0]).Debug("Compared decoders")
	fmt.Fprintf(a.stdout, "samples:   %d ours, %d reference\n", d.Ours, d.Reference)
	fmt.Fprintf(a.stdout, "compared:  %d\n", d.Compared)
	fmt.Fprintf(a.stdout, "rms diff:  %.6f\n", d.RMS)
	fmt.Fprintf(a.stdout, "peak diff: %.6f\n", d.Peak)
	return nil
}
