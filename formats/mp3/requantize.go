// SPDX-License-Identifier: EPL-2.0

package mp3

import "math"

// requantize rescales the first nonzero Huffman values of x in place.
func requantize(x *[granuleSamples]float32, g *granuleInfo, sf *scaleFactors, bands *bandTable, nonzero int) {
	sfMult := 0.5
	if g.scalefacScale == 1 {
		sfMult = 1
	}
	gain := 0.25 * float64(g.globalGain-210)

	longEnd, firstShort := nonzero, -1
	if g.windowSwitching && g.blockType == 2 {
		longEnd, firstShort = 0, 0
		if g.mixedBlock {
			longEnd, firstShort = min(bands.l[8], nonzero), 3
		}
	}

	sfb, next := 0, bands.l[1]
	for i := range longEnd {
		for i >= next {
			sfb++
			next = bands.l[sfb+1]
		}
		if x[i] == 0 {
			continue
		}
		exp := gain - sfMult*float64(sf.l[sfb]+g.preflag*pretab[sfb])
		x[i] = float32(magnitude43(int(x[i])) * math.Exp2(exp))
	}

	if firstShort < 0 {
		return
	}
	for sfb := firstShort; sfb < shortBands; sfb++ {
		base := 3 * bands.s[sfb]
		if base >= nonzero {
			break
		}
		winLen := bands.s[sfb+1] - bands.s[sfb]
		for win := range 3 {
			exp := gain - 2*float64(g.subblockGain[win]) - sfMult*float64(sf.s[sfb][win])
			scale := math.Exp2(exp)
			for j := range winLen {
				i := base + win*winLen + j
				if x[i] != 0 {
					x[i] = float32(magnitude43(int(x[i])) * scale)
				}
			}
		}
	}
}
