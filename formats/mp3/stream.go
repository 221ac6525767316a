// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audec/audio"
	"github.com/ik5/audec/internal/stepper"
)

// StreamDecoder decodes an in-memory MPEG-1 Layer III stream frame by
// frame. It implements audio.StepDecoder.
type StreamDecoder struct {
	data  []byte
	log   logrus.FieldLogger
	sched *stepper.Scheduler

	index *Index
	frame *frameDecoder
	pcm   [2][frameSamples]float32

	info     audio.StreamInfo
	out      [][]float32
	started  bool
	next     int
	decoded  int
	finished bool
}

var _ audio.StepDecoder = (*StreamDecoder)(nil)

// NewStreamDecoder prepares a decoder over data. Nothing is parsed until
// Start.
func NewStreamDecoder(data []byte, cfg audio.Config) *StreamDecoder {
	log := cfg.Log().WithField("format", "mp3")
	return &StreamDecoder{
		data:  data,
		log:   log,
		sched: stepper.New(cfg.Now),
		frame: newFrameDecoder(log),
	}
}

// Start indexes every frame of the stream. The first frame decides the
// sample rate and channel count.
func (d *StreamDecoder) Start() (audio.StreamInfo, error) {
	if d.started {
		return d.info, nil
	}
	idx, err := Scan(d.data)
	if err != nil {
		return audio.StreamInfo{}, err
	}
	if err := idx.First.checkSupported(); err != nil {
		return audio.StreamInfo{}, err
	}

	d.index = idx
	d.info = audio.StreamInfo{
		Format:       "MP3",
		SampleRate:   idx.First.SampleRate(),
		Channels:     idx.First.Channels(),
		TotalSamples: idx.Samples(),
	}
	d.started = true

	d.log.WithFields(logrus.Fields{
		"header":  idx.First.String(),
		"frames":  idx.Frames(),
		"samples": d.info.TotalSamples,
		"offset":  idx.Start,
	}).Debug("mp3 stream started")

	return d.info, nil
}

func (d *StreamDecoder) Info() audio.StreamInfo { return d.info }

// FrameOffsets returns the byte offset of every indexed frame. Valid after
// Start.
func (d *StreamDecoder) FrameOffsets() []int {
	if d.index == nil {
		return nil
	}
	return d.index.Offsets
}

// Stats reports decoded and skipped frame counts so far.
func (d *StreamDecoder) Stats() Stats { return d.frame.stats }

func (d *StreamDecoder) SetChannels(buffers [][]float32) error {
	if err := audio.BindChannels(buffers); err != nil {
		return err
	}
	d.out = buffers
	return nil
}

// Step decodes whole frames until budget is spent or the stream ends.
func (d *StreamDecoder) Step(budget time.Duration) (audio.Progress, error) {
	if !d.started {
		return audio.Progress{}, audio.ErrNotStarted
	}
	if d.out == nil {
		return audio.Progress{}, audio.ErrNoChannels
	}
	if d.finished {
		return d.progress(), nil
	}
	if _, _, err := d.sched.Run(budget, d.decodeFrame); err != nil {
		return d.progress(), err
	}
	return d.progress(), nil
}

func (d *StreamDecoder) LoadedTime() float64 {
	if d.info.TotalSamples == 0 {
		return 0
	}
	return float64(d.decoded) / float64(d.info.TotalSamples) * d.info.Duration()
}

func (d *StreamDecoder) Finished() bool { return d.finished }

func (d *StreamDecoder) progress() audio.Progress {
	return audio.Progress{
		Decoded:  d.decoded,
		Total:    d.info.TotalSamples,
		Finished: d.finished,
	}
}

func (d *StreamDecoder) decodeFrame() (bool, error) {
	off := d.index.Offsets[d.next]
	h := headerAt(d.data, off)
	frame := d.data[off : off+h.FrameSize()]

	ok, err := d.frame.decode(d.next, h, frame, &d.pcm)
	if err != nil {
		return false, err
	}
	if ok {
		d.emit(h.Channels())
	}

	d.next++
	d.decoded = min(d.decoded+frameSamples, d.info.TotalSamples)
	d.finished = d.next >= len(d.index.Offsets)
	return !d.finished, nil
}

// emit copies the frame's samples to the bound buffers. A mono frame feeds
// every bound channel.
func (d *StreamDecoder) emit(nch int) {
	base := d.decoded
	for c, buf := range d.out {
		if c >= d.info.Channels {
			break
		}
		if base < len(buf) {
			copy(buf[base:], d.pcm[min(c, nch-1)][:])
		}
	}
}

func headerAt(data []byte, off int) Header {
	return Header(binary.BigEndian.Uint32(data[off:]))
}
