// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"

	"github.com/ik5/audec/internal/bits"
	"github.com/ik5/audec/internal/huffman"
)

// scaleFactors of one granule and channel.
type scaleFactors struct {
	l [longBands + 1]int
	s [shortBands][3]int
}

// scfsiBands are the long-block band groups that scfsi can share between
// granules.
var scfsiBands = [5]int{0, 6, 11, 16, 21}

// readScaleFactors reads the part2 data of one granule. prev is the first
// granule of the same channel and is consulted only when gr is 1.
func readScaleFactors(r *bits.Reservoir, g *granuleInfo, scfsi *[4]int, gr int, prev, sf *scaleFactors) {
	*sf = scaleFactors{}
	slen1, slen2 := scalefacSizes[g.scalefacCompress][0], scalefacSizes[g.scalefacCompress][1]

	if g.windowSwitching && g.blockType == 2 {
		first := 0
		if g.mixedBlock {
			for sfb := range 8 {
				sf.l[sfb] = int(r.Bits(slen1))
			}
			first = 3
		}
		for sfb := first; sfb < 12; sfb++ {
			n := slen2
			if sfb < 6 {
				n = slen1
			}
			for win := range 3 {
				sf.s[sfb][win] = int(r.Bits(n))
			}
		}
		return
	}

	for band := range 4 {
		n := slen1
		if band >= 2 {
			n = slen2
		}
		for sfb := scfsiBands[band]; sfb < scfsiBands[band+1]; sfb++ {
			if gr == 1 && scfsi[band] == 1 {
				sf.l[sfb] = prev.l[sfb]
			} else {
				sf.l[sfb] = int(r.Bits(n))
			}
		}
	}
}

// readSpectrum decodes the Huffman coded coefficients of one granule into
// x and returns the count of decoded positions. Positions at and beyond the
// returned count are zero. The reader is left wherever decoding stopped.
func readSpectrum(r *bits.Reservoir, g *granuleInfo, bands *bandTable, bitEnd int64, x *[granuleSamples]float32) (int, error) {
	clear(x[:])
	if g.part23Length == 0 {
		return 0, nil
	}

	var region1, region2 int
	if g.windowSwitching && g.blockType == 2 {
		region1, region2 = 36, granuleSamples
	} else {
		i1 := g.region0Count + 1
		i2 := g.region0Count + g.region1Count + 2
		if i2 > longBands {
			return 0, fmt.Errorf("%w: region1 ends at band %d", errRegionIndex, i2)
		}
		region1, region2 = bands.l[i1], bands.l[i2]
	}

	i := 0
	for big := g.bigValues * 2; i < big; i += 2 {
		table := g.tableSelect[0]
		switch {
		case i >= region2:
			table = g.tableSelect[2]
		case i >= region1:
			table = g.tableSelect[1]
		}
		a, b, err := huffman.DecodePair(r, table)
		if err != nil {
			return i, err
		}
		x[i], x[i+1] = float32(a), float32(b)
	}

	for i <= granuleSamples-4 && r.BitPos() < bitEnd {
		v, w, y, z, err := huffman.DecodeQuad(r, g.count1TableSelect)
		if err != nil {
			return i, err
		}
		x[i], x[i+1], x[i+2], x[i+3] = float32(v), float32(w), float32(y), float32(z)
		i += 4
	}

	// the last four positions read past part2_3_length; this also trims
	// big values that overran it
	if r.BitPos() > bitEnd {
		i = max(0, i-4)
		clear(x[i:min(i+4, granuleSamples)])
	}
	return i, nil
}
