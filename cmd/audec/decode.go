// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audec"
	"github.com/ik5/audec/formats/mp3"
	"github.com/ik5/audec/utils"
)

// decode steps a decoder to the end of <in> and writes every channel to
// <out> as 16-bit PCM.
func (a *app) decode(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: want <in> <out.wav>", errUsage)
	}
	in, out := args[0], args[1]

	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	dec, err := audec.Open(data, a.cfg)
	if err != nil {
		return err
	}
	info := dec.Info()
	logger := a.log.WithFields(logrus.Fields{
		"file":     in,
		"format":   info.Format,
		"rate":     info.SampleRate,
		"channels": info.Channels,
	})

	channels := make([][]float32, info.Channels)
	for i := range channels {
		channels[i] = make([]float32, info.TotalSamples)
	}
	if err := dec.SetChannels(channels); err != nil {
		return err
	}

	steps := 0
	for !dec.Finished() {
		p, err := dec.Step(a.cfg.Budget())
		if err != nil {
			return fmt.Errorf("decode %s: %w", in, err)
		}
		steps++
		logger.WithFields(logrus.Fields{
			"decoded": p.Decoded,
			"total":   p.Total,
			"loaded":  dec.LoadedTime(),
		}).Debug("Decode step")
	}

	if d, ok := dec.(*mp3.StreamDecoder); ok {
		st := d.Stats()
		logger.WithFields(logrus.Fields{
			"frames":         st.FramesDecoded,
			"skipped":        st.FramesSkipped,
			"granule_errors": st.GranuleErrors,
		}).Debug("MP3 frame stats")
	}

	if err := writePCM16(out, info.SampleRate, channels); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"out":     out,
		"samples": info.TotalSamples,
		"steps":   steps,
	}).Info("Decoded")
	return nil
}

// writePCM16 interleaves channels and encodes them with go-audio/wav.
func writePCM16(path string, rate int, channels [][]float32) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	frames := 0
	if len(channels) > 0 {
		frames = len(channels[0])
	}
	interleaved := make([]float32, frames*len(channels))
	for c, ch := range channels {
		for i, v := range ch[:frames] {
			interleaved[i*len(channels)+c] = v
		}
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: len(channels), SampleRate: rate},
		Data:           make([]int, len(interleaved)),
		SourceBitDepth: 16,
	}
	utils.Float32sToInts(buf.Data, interleaved)

	enc := gowav.NewEncoder(f, rate, 16, len(channels), 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
