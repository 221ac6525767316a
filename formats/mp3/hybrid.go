// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"github.com/ik5/audec/internal/imdct"
	"github.com/ik5/audec/internal/synth"
)

// reorder converts the short-window bands of x from window-major to
// frequency-major order. Long blocks are left untouched.
func reorder(x *[granuleSamples]float32, g *granuleInfo, bands *bandTable) {
	if !g.windowSwitching || g.blockType != 2 {
		return
	}
	first := 0
	if g.mixedBlock {
		first = 3
	}

	var tmp [3 * 192]float32
	for sfb := first; sfb < shortBands; sfb++ {
		winLen := bands.s[sfb+1] - bands.s[sfb]
		base := 3 * bands.s[sfb]
		for win := range 3 {
			for j := range winLen {
				tmp[3*j+win] = x[base+win*winLen+j]
			}
		}
		copy(x[base:base+3*winLen], tmp[:3*winLen])
	}
}

// antialias applies the butterflies between adjacent subbands.
func antialias(x *[granuleSamples]float32, g *granuleInfo) {
	if g.shortBlocks() {
		return
	}
	limit := subbands
	if g.mixedShort() {
		limit = 2
	}
	for sb := 1; sb < limit; sb++ {
		for i := range 8 {
			lo := samplesPerBand*sb - 1 - i
			hi := samplesPerBand*sb + i
			l, u := x[lo], x[hi]
			x[lo] = l*aliasCS[i] - u*aliasCA[i]
			x[hi] = u*aliasCS[i] + l*aliasCA[i]
		}
	}
}

// overlap is the IMDCT carry of one channel.
type overlap [subbands][samplesPerBand]float32

// hybrid runs the IMDCT of every subband, overlap-adds the previous
// granule's tail and applies frequency inversion.
func (o *overlap) hybrid(x *[granuleSamples]float32, g *granuleInfo) {
	var in [samplesPerBand]float32
	var raw [2 * samplesPerBand]float32

	for sb := range subbands {
		bt := g.blockType
		if g.windowSwitching && g.mixedBlock && sb < 2 {
			bt = imdct.BlockNormal
		}
		band := x[sb*samplesPerBand : (sb+1)*samplesPerBand]
		copy(in[:], band)
		imdct.Transform(&in, bt, &raw)
		for i := range samplesPerBand {
			band[i] = raw[i] + o[sb][i]
			o[sb][i] = raw[i+samplesPerBand]
		}
	}

	for sb := 1; sb < subbands; sb += 2 {
		for i := 1; i < samplesPerBand; i += 2 {
			x[sb*samplesPerBand+i] = -x[sb*samplesPerBand+i]
		}
	}
}

// polyphase feeds the 18 time slots of x through f and writes the 576
// quantized samples to out.
func polyphase(f *synth.Filter, x *[granuleSamples]float32, out []float32) {
	var in, pcm [subbands]float32
	for ss := range samplesPerBand {
		for sb := range subbands {
			in[sb] = x[sb*samplesPerBand+ss]
		}
		f.Synthesize(&in, &pcm)
		for j, v := range pcm {
			out[ss*subbands+j] = synth.Quantize(v)
		}
	}
}
