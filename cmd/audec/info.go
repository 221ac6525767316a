// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/go-audio/riff"

	"github.com/ik5/audec"
	"github.com/ik5/audec/formats/mp3"
	"github.com/ik5/audec/formats/wav"
)

// info prints what Start learned about <file> without decoding it.
func (a *app) info(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: want <file>", errUsage)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	dec, err := audec.Open(data, a.cfg)
	if err != nil {
		return err
	}

	info := dec.Info()
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "format:\t%s\n", info.Format)
	fmt.Fprintf(tw, "rate:\t%d Hz\n", info.SampleRate)
	fmt.Fprintf(tw, "channels:\t%d\n", info.Channels)
	fmt.Fprintf(tw, "samples:\t%d\n", info.TotalSamples)
	fmt.Fprintf(tw, "duration:\t%.3f s\n", info.Duration())

	switch d := dec.(type) {
	case *wav.StreamDecoder:
		f := d.Format()
		fmt.Fprintf(tw, "block align:\t%d\n", f.BlockAlign)
		if f.Extensible {
			fmt.Fprintf(tw, "channel mask:\t0x%X\n", f.ChannelMask)
		}
		chunks, err := riffChunks(bytes.NewReader(data))
		if err != nil {
			return err
		}
		for _, c := range chunks {
			fmt.Fprintf(tw, "chunk:\t%s\n", c)
		}
	case *mp3.StreamDecoder:
		idx, err := mp3.Scan(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "first frame:\t%s\n", idx.First)
		fmt.Fprintf(tw, "frames:\t%d\n", idx.Frames())
		fmt.Fprintf(tw, "audio bytes:\t%d-%d\n", idx.Start, idx.End)
	}

	return tw.Flush()
}

// riffChunks lists the sub-chunks of a RIFF container as "ID size" pairs.
// Sizes include the pad byte of odd-sized chunks.
func riffChunks(r io.Reader) ([]string, error) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("riff header: %w", err)
	}

	var out []string
	for {
		ch, err := p.NextChunk()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("riff chunk: %w", err)
		}
		out = append(out, fmt.Sprintf("%s %d", ch.ID[:], ch.Size))
		ch.Drain()
	}
}
