// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audec/audio"
	"github.com/ik5/audec/formats/mp3"
	"github.com/ik5/audec/internal/bytesource"
	"github.com/ik5/audec/internal/stepper"
)

// StreamDecoder decodes an in-memory WAVE file incrementally. It implements
// audio.StepDecoder.
type StreamDecoder struct {
	src   *bytesource.Source
	cfg   audio.Config
	log   logrus.FieldLogger
	sched *stepper.Scheduler

	format Format
	chunks []Chunk
	data   *bytesource.Source
	info   audio.StreamInfo

	read  sampleFunc
	adpcm adpcmLayout
	inner *mp3.StreamDecoder

	out      [][]float32
	started  bool
	decoded  int
	finished bool
}

var _ audio.StepDecoder = (*StreamDecoder)(nil)

// NewStreamDecoder prepares a decoder over a complete WAVE file. Nothing is
// parsed until Start.
func NewStreamDecoder(data []byte, cfg audio.Config) *StreamDecoder {
	return &StreamDecoder{
		src:   bytesource.New(data),
		cfg:   cfg,
		log:   cfg.Log().WithField("format", "wav"),
		sched: stepper.New(cfg.Now),
	}
}

// Start validates the RIFF header, locates the fmt, data and fact chunks
// and computes the per-channel sample count.
func (d *StreamDecoder) Start() (audio.StreamInfo, error) {
	if d.started {
		return d.info, nil
	}
	if err := readHeader(d.src, d.log); err != nil {
		return audio.StreamInfo{}, err
	}
	d.chunks = scanChunks(d.src)

	fc, ok := findChunk(d.chunks, "fmt ")
	if !ok {
		return audio.StreamInfo{}, fmt.Errorf("%w: fmt", ErrMissingChunk)
	}
	d.src.SetPosition(fc.Offset)
	f, err := parseFormat(d.src.Extract(fc.Size))
	if err != nil {
		return audio.StreamInfo{}, err
	}
	if f.Channels < 1 {
		return audio.StreamInfo{}, ErrNoChannels
	}
	d.format = f

	dc, ok := findChunk(d.chunks, "data")
	if !ok {
		return audio.StreamInfo{}, fmt.Errorf("%w: data", ErrMissingChunk)
	}
	d.src.SetPosition(dc.Offset)
	d.data = d.src.Extract(dc.Size)
	d.data.SetLittleEndian(true)

	fact := -1
	if c, ok := findChunk(d.chunks, "fact"); ok && c.Size == 4 {
		d.src.SetPosition(c.Offset)
		fact = int(d.src.ReadUint32())
	}

	total, err := d.prepare(fact)
	if err != nil {
		return audio.StreamInfo{}, err
	}

	d.info = audio.StreamInfo{
		Format:       "WAVE " + f.Name(),
		SampleRate:   f.SampleRate,
		Channels:     f.Channels,
		TotalSamples: total,
	}
	if d.inner != nil {
		d.info.SampleRate = d.inner.Info().SampleRate
	}
	d.started = true
	d.finished = total == 0

	d.log.WithFields(logrus.Fields{
		"encoding": f.Name(),
		"channels": f.Channels,
		"rate":     d.info.SampleRate,
		"samples":  total,
	}).Debug("wav stream started")

	return d.info, nil
}

// prepare selects the payload decoder and returns the sample count.
func (d *StreamDecoder) prepare(fact int) (int, error) {
	f := d.format
	switch f.Tag {
	case FormatPCM, FormatIEEEFloat:
		read, width, err := pcmReader(f)
		if err != nil {
			return 0, err
		}
		d.read = read
		return d.data.Len() / (width * f.Channels), nil

	case FormatIMAADPCM:
		if f.Channels > maxADPCMChannels {
			return 0, fmt.Errorf("%w: IMA ADPCM with %d channels", ErrUnsupportedEncoding, f.Channels)
		}
		d.adpcm = newADPCMLayout(f)
		if d.adpcm.samplesPerBlock < 1 || d.adpcm.blockAlign < 4*f.Channels {
			return 0, fmt.Errorf("%w: IMA ADPCM block geometry", ErrFormatChunkTooSmall)
		}
		if fact >= 0 {
			return fact, nil
		}
		return d.adpcm.sampleCount(d.data.Len()), nil

	case FormatMPEGLayer3:
		d.inner = mp3.NewStreamDecoder(d.data.Bytes(), d.cfg)
		info, err := d.inner.Start()
		if err != nil {
			return 0, fmt.Errorf("mpeg payload: %w", err)
		}
		return info.TotalSamples, nil
	}

	return 0, fmt.Errorf("%w: 0x%04X", ErrUnsupportedEncoding, f.Tag)
}

// Format returns the parsed fmt chunk. Valid after Start.
func (d *StreamDecoder) Format() Format { return d.format }

// Chunks lists the RIFF chunks found by Start.
func (d *StreamDecoder) Chunks() []Chunk { return d.chunks }

// Info returns the stream description. Valid after Start.
func (d *StreamDecoder) Info() audio.StreamInfo { return d.info }

// SetChannels binds the caller-owned output buffers. Channels beyond
// len(buffers) are decoded but dropped.
func (d *StreamDecoder) SetChannels(buffers [][]float32) error {
	if err := audio.BindChannels(buffers); err != nil {
		return err
	}
	d.out = buffers
	if d.inner != nil {
		return d.inner.SetChannels(buffers)
	}
	return nil
}

// Step decodes PCM runs or ADPCM blocks until budget is spent.
func (d *StreamDecoder) Step(budget time.Duration) (audio.Progress, error) {
	if !d.started {
		return audio.Progress{}, audio.ErrNotStarted
	}
	if d.out == nil {
		return audio.Progress{}, audio.ErrNoChannels
	}
	if d.inner != nil {
		p, err := d.inner.Step(budget)
		d.decoded, d.finished = p.Decoded, p.Finished
		return p, err
	}
	if d.finished {
		return d.progress(), nil
	}

	unit := d.pcmUnit
	if d.format.Tag == FormatIMAADPCM {
		unit = d.adpcmUnit
	}
	if _, _, err := d.sched.Run(budget, unit); err != nil {
		return d.progress(), err
	}
	return d.progress(), nil
}

// LoadedTime is the decoded share of the stream duration, in seconds.
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

func (d *StreamDecoder) write(ch, i int, v float32) {
	if ch < len(d.out) && i < len(d.out[ch]) {
		d.out[ch][i] = v
	}
}

func (d *StreamDecoder) pcmUnit() (bool, error) {
	nch := d.format.Channels
	frames := min(pcmRun, d.info.TotalSamples-d.decoded)
	for f := range frames {
		for c := range nch {
			d.write(c, d.decoded+f, d.read(d.data))
		}
	}
	d.decoded += frames
	d.finished = d.decoded >= d.info.TotalSamples
	return !d.finished, nil
}

func (d *StreamDecoder) adpcmUnit() (bool, error) {
	l := d.adpcm
	if d.data.Available() == 0 {
		// fact promised more samples than the payload holds
		d.log.WithFields(logrus.Fields{
			"decoded":  d.decoded,
			"expected": d.info.TotalSamples,
		}).Warn("ADPCM data ended early")
		d.decoded = d.info.TotalSamples
		d.finished = true
		return false, nil
	}

	block := d.data.ReadBytes(l.blockAlign)
	base := d.decoded
	n := l.decodeBlock(block, func(ch, i int, v float32) {
		if base+i < d.info.TotalSamples {
			d.write(ch, base+i, v)
		}
	})

	d.decoded = min(d.info.TotalSamples, base+n)
	d.finished = d.decoded >= d.info.TotalSamples
	return !d.finished, nil
}
