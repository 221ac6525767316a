// SPDX-License-Identifier: EPL-2.0

package mp3

import "math"

const (
	granuleSamples  = 576
	frameSamples    = 2 * granuleSamples
	subbands        = 32
	samplesPerBand  = 18
	longBands       = 22
	shortBands      = 13
	pow43TableSize  = 8192
	reservedVersion = 1
)

// bandTable holds the scale factor band boundaries of one sample rate:
// l for long blocks, s for each window of a short block.
type bandTable struct {
	l [longBands + 1]int
	s [shortBands + 1]int
}

// bandTables is indexed by the header's sample rate index (44.1, 48, 32 kHz).
var bandTables = [3]bandTable{
	{
		l: [23]int{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 52, 62, 74, 90, 110, 134, 162, 196, 238, 288, 342, 418, 576},
		s: [14]int{0, 4, 8, 12, 16, 22, 30, 40, 52, 66, 84, 106, 136, 192},
	},
	{
		l: [23]int{0, 4, 8, 12, 16, 20, 24, 30, 36, 42, 50, 60, 72, 88, 106, 128, 156, 190, 230, 276, 330, 384, 576},
		s: [14]int{0, 4, 8, 12, 16, 22, 28, 38, 50, 64, 80, 100, 126, 192},
	},
	{
		l: [23]int{0, 4, 8, 12, 16, 20, 24, 30, 36, 44, 54, 66, 82, 102, 126, 156, 194, 240, 296, 364, 448, 550, 576},
		s: [14]int{0, 4, 8, 12, 16, 22, 30, 42, 58, 78, 104, 138, 180, 192},
	},
}

// scalefacSizes maps scalefac_compress to (slen1, slen2).
var scalefacSizes = [16][2]int{
	{0, 0}, {0, 1}, {0, 2}, {0, 3}, {3, 0}, {1, 1}, {1, 2}, {1, 3},
	{2, 1}, {2, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}, {4, 2}, {4, 3},
}

// pretab is added to long-block scale factors when preflag is set.
var pretab = [longBands]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 3, 3, 3, 2, 0}

// isRatios are tan(is_pos * pi/12) for intensity stereo positions 0..5.
var isRatios = [6]float32{0, 0.267949, 0.577350, 1, 1.732051, 3.732051}

var pow43 = func() (t [pow43TableSize]float64) {
	for i := range t {
		t[i] = math.Pow(float64(i), 4.0/3.0)
	}
	return t
}()

// aliasCS and aliasCA are the antialias butterfly coefficients derived from
// ISO/IEC 11172-3 Table B.9.
var aliasCS, aliasCA = func() (cs, ca [8]float32) {
	c := [8]float64{-0.6, -0.535, -0.33, -0.185, -0.095, -0.041, -0.0142, -0.0037}
	for i, v := range c {
		sq := math.Sqrt(1 + v*v)
		cs[i] = float32(1 / sq)
		ca[i] = float32(v / sq)
	}
	return cs, ca
}()

// magnitude43 returns |v|^(4/3) with the sign of v.
func magnitude43(v int) float64 {
	neg := v < 0
	if neg {
		v = -v
	}
	var m float64
	if v < pow43TableSize {
		m = pow43[v]
	} else {
		m = math.Pow(float64(v), 4.0/3.0)
	}
	if neg {
		return -m
	}
	return m
}
