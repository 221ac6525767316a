// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"

	"github.com/ik5/audec/audio"
	"github.com/ik5/audec/internal/bits"
)

// granuleInfo is the side information of one granule of one channel.
type granuleInfo struct {
	part23Length      int
	bigValues         int
	globalGain        int
	scalefacCompress  int
	windowSwitching   bool
	blockType         int
	mixedBlock        bool
	tableSelect       [3]int
	subblockGain      [3]int
	region0Count      int
	region1Count      int
	preflag           int
	scalefacScale     int
	count1TableSelect int
}

// shortBlocks reports a block made only of short windows.
func (g *granuleInfo) shortBlocks() bool {
	return g.windowSwitching && g.blockType == 2 && !g.mixedBlock
}

// mixedShort reports a block whose low bands are long and the rest short.
func (g *granuleInfo) mixedShort() bool {
	return g.windowSwitching && g.blockType == 2 && g.mixedBlock
}

type sideInfo struct {
	mainDataBegin int
	privateBits   int
	scfsi         [2][4]int
	granules      [2][2]granuleInfo
}

func parseSideInfo(b []byte, nch int) (sideInfo, error) {
	var si sideInfo
	r := bits.NewReader(b)

	si.mainDataBegin = int(r.Bits(9))
	if nch == 1 {
		si.privateBits = int(r.Bits(5))
	} else {
		si.privateBits = int(r.Bits(3))
	}
	for ch := range nch {
		for band := range 4 {
			si.scfsi[ch][band] = int(r.Bit())
		}
	}

	for gr := range 2 {
		for ch := range nch {
			g := &si.granules[gr][ch]
			g.part23Length = int(r.Bits(12))
			g.bigValues = int(r.Bits(9))
			if g.bigValues > granuleSamples/2 {
				return si, fmt.Errorf("%w: %d", errBigValues, g.bigValues)
			}
			g.globalGain = int(r.Bits(8))
			g.scalefacCompress = int(r.Bits(4))
			g.windowSwitching = r.Bit() == 1

			if g.windowSwitching {
				g.blockType = int(r.Bits(2))
				g.mixedBlock = r.Bit() == 1
				for i := range 2 {
					g.tableSelect[i] = int(r.Bits(5))
				}
				for i := range 3 {
					g.subblockGain[i] = int(r.Bits(3))
				}
				// region counts are implicit for switched windows
				if g.blockType == 2 && !g.mixedBlock {
					g.region0Count = 8
				} else {
					g.region0Count = 7
				}
				g.region1Count = 20 - g.region0Count
			} else {
				for i := range 3 {
					g.tableSelect[i] = int(r.Bits(5))
				}
				g.region0Count = int(r.Bits(4))
				g.region1Count = int(r.Bits(3))
				g.blockType = 0
			}

			g.preflag = int(r.Bit())
			g.scalefacScale = int(r.Bit())
			g.count1TableSelect = int(r.Bit())
		}
	}

	if r.Overrun() {
		return si, fmt.Errorf("%w: truncated side info", audio.ErrFormat)
	}
	return si, nil
}
