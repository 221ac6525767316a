// SPDX-License-Identifier: EPL-2.0

package mp3

import "math"

const invSqrt2 = float32(1 / math.Sqrt2)

// isInvalid marks a band without intensity coding.
const isInvalid = 7

// bandSpan is one scale factor band (or one window of a short band) in the
// transmitted coefficient order, with the intensity position read from the
// right channel's scale factors.
type bandSpan struct {
	start, end int
	isPos      int
}

// spans lists the bands of a granule in coefficient order.
func spans(g *granuleInfo, sf *scaleFactors, bands *bandTable, dst []bandSpan) []bandSpan {
	dst = dst[:0]
	longEnd, firstShort := longBands, shortBands
	if g.windowSwitching && g.blockType == 2 {
		longEnd, firstShort = 0, 0
		if g.mixedBlock {
			longEnd, firstShort = 8, 3
		}
	}

	for sfb := range longEnd {
		pos := isInvalid
		if sfb < longBands-1 {
			pos = sf.l[sfb]
		}
		dst = append(dst, bandSpan{start: bands.l[sfb], end: bands.l[sfb+1], isPos: pos})
	}
	for sfb := firstShort; sfb < shortBands; sfb++ {
		winLen := bands.s[sfb+1] - bands.s[sfb]
		base := 3 * bands.s[sfb]
		for win := range 3 {
			pos := isInvalid
			if sfb < shortBands-1 {
				pos = sf.s[sfb][win]
			}
			start := base + win*winLen
			dst = append(dst, bandSpan{start: start, end: start + winLen, isPos: pos})
		}
	}
	return dst
}

// jointStereo undoes mid/side and intensity coding of one granule. g and sf
// belong to the right channel.
func jointStereo(h Header, x *[2][granuleSamples]float32, g *granuleInfo, sf *scaleFactors, bands *bandTable, nonzero [2]int) {
	ms, intensity := h.MS(), h.Intensity()
	if !ms && !intensity {
		return
	}

	msEnd := max(nonzero[0], nonzero[1])
	if !intensity {
		midSide(x, 0, msEnd)
		return
	}

	var buf [3 * shortBands]bandSpan
	inIS := false
	for _, b := range spans(g, sf, bands, buf[:]) {
		if b.start >= nonzero[1] {
			inIS = true
		}
		switch {
		case inIS && b.isPos < isInvalid:
			intensityBand(x, b)
		case ms:
			midSide(x, b.start, min(b.end, msEnd))
		}
	}
}

func midSide(x *[2][granuleSamples]float32, from, to int) {
	for i := from; i < to; i++ {
		m, s := x[0][i], x[1][i]
		x[0][i] = (m + s) * invSqrt2
		x[1][i] = (m - s) * invSqrt2
	}
}

func intensityBand(x *[2][granuleSamples]float32, b bandSpan) {
	kl, kr := float32(1), float32(0)
	if b.isPos < len(isRatios) {
		r := isRatios[b.isPos]
		kl, kr = r/(1+r), 1/(1+r)
	}
	for i := b.start; i < b.end; i++ {
		v := x[0][i]
		x[0][i] = v * kl
		x[1][i] = v * kr
	}
}
