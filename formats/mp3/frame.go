// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"github.com/sirupsen/logrus"

	"github.com/ik5/audec/internal/bits"
	"github.com/ik5/audec/internal/synth"
)

// Stats counts what the frame decoder did with the stream so far.
type Stats struct {
	FramesDecoded int
	// FramesSkipped were left silent: their main data began before the
	// retained reservoir history or their side info was unusable.
	FramesSkipped int
	// GranuleErrors were zero-filled after a Huffman or region fault.
	GranuleErrors int
}

// frameDecoder holds everything that carries over from one frame to the
// next: the bit reservoir, the IMDCT overlap and the synthesis filters.
type frameDecoder struct {
	log     logrus.FieldLogger
	res     bits.Reservoir
	overlap [2]overlap
	filters [2]*synth.Filter

	spectrum [2][granuleSamples]float32
	sf       [2][2]scaleFactors

	stats Stats
}

func newFrameDecoder(log logrus.FieldLogger) *frameDecoder {
	return &frameDecoder{
		log:     log,
		filters: [2]*synth.Filter{synth.NewFilter(), synth.NewFilter()},
	}
}

// decode decodes the frame at index n into pcm, one row per channel of h.
// It reports false when the frame was skipped and pcm left untouched. The
// only error is an unsupported frame version or layer.
func (f *frameDecoder) decode(n int, h Header, frame []byte, pcm *[2][frameSamples]float32) (bool, error) {
	if err := h.checkSupported(); err != nil {
		return false, err
	}
	log := f.log.WithField("frame", n)
	nch := h.Channels()

	pos := 4
	if h.Protected() {
		pos += 2
	}
	sideEnd := pos + h.SideInfoSize()
	if sideEnd > len(frame) {
		log.Warn("frame shorter than its side info")
		f.stats.FramesSkipped++
		return false, nil
	}

	// slot bytes enter the reservoir even when the frame is skipped
	frameStart := f.res.Written()
	f.res.Push(frame[sideEnd:])

	si, err := parseSideInfo(frame[pos:sideEnd], nch)
	if err != nil {
		log.WithError(err).Warn("skipping frame")
		f.stats.FramesSkipped++
		return false, nil
	}

	if err := f.res.Begin(frameStart, si.mainDataBegin); err != nil {
		log.WithError(err).WithField("main_data_begin", si.mainDataBegin).Debug("skipping frame")
		f.stats.FramesSkipped++
		return false, nil
	}

	bands := &bandTables[h.SampleRateIndex()]
	for gr := range 2 {
		var nonzero [2]int
		for ch := range nch {
			g := &si.granules[gr][ch]
			start := f.res.BitPos()
			end := start + int64(g.part23Length)

			readScaleFactors(&f.res, g, &si.scfsi[ch], gr, &f.sf[0][ch], &f.sf[gr][ch])
			nz, err := readSpectrum(&f.res, g, bands, end, &f.spectrum[ch])
			if err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"granule": gr,
					"channel": ch,
				}).Warn("granule zero-filled")
				f.stats.GranuleErrors++
			}
			f.res.Seek(end)
			nonzero[ch] = nz

			requantize(&f.spectrum[ch], g, &f.sf[gr][ch], bands, nz)
		}

		if nch == 2 {
			jointStereo(h, &f.spectrum, &si.granules[gr][1], &f.sf[gr][1], bands, nonzero)
		}

		for ch := range nch {
			g := &si.granules[gr][ch]
			reorder(&f.spectrum[ch], g, bands)
			antialias(&f.spectrum[ch], g)
			f.overlap[ch].hybrid(&f.spectrum[ch], g)
			polyphase(f.filters[ch], &f.spectrum[ch], pcm[ch][gr*granuleSamples:])
		}
	}

	f.stats.FramesDecoded++
	return true, nil
}
