// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audec"
	"github.com/ik5/audec/formats/wav"
)

// resample decodes <in> through the registry, converts it to mono at
// -rate and writes a 16-bit WAVE file.
func (a *app) resample(args []string) error {
	fs := flag.NewFlagSet("resample", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rate := fs.Int("rate", 8000, "output sample rate in Hz")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: want [-rate hz] <in> <out.wav>", errUsage)
	}
	in, out := fs.Arg(0), fs.Arg(1)

	dec, err := audec.NewRegistry(&a.cfg).ForPath(in)
	if err != nil {
		return err
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", in, err)
	}
	defer src.Close()

	srcRate, srcChannels := src.SampleRate(), src.Channels()
	pcm, outRate, err := audec.ResampleToMono16(src, *rate, src.BufSize())
	if err != nil {
		return err
	}

	w, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := wav.WriteWAV16(w, outRate, pcm); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	a.log.WithFields(logrus.Fields{
		"in":           in,
		"out":          out,
		"src_rate":     srcRate,
		"src_channels": srcChannels,
		"rate":         outRate,
		"samples":      len(pcm),
	}).Info("Resampled")
	return nil
}
