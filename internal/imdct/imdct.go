// SPDX-License-Identifier: EPL-2.0

// Package imdct implements the windowed inverse MDCT of MPEG-1 Layer III:
// one 36-point transform for long blocks or three overlapping 12-point
// transforms for short blocks.
package imdct

import "math"

// Block types as carried in the granule side info.
const (
	BlockNormal = 0
	BlockStart  = 1
	BlockShort  = 2
	BlockStop   = 3
)

var (
	windows [4][36]float32
	cos36   [18][36]float32
	cos12   [6][12]float32
)

func init() {
	for i := range 36 {
		windows[0][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
	}

	for i := range 18 {
		windows[1][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
	}
	for i := 18; i < 24; i++ {
		windows[1][i] = 1
	}
	for i := 24; i < 30; i++ {
		windows[1][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5 - 18)))
	}

	for i := range 12 {
		windows[2][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5)))
	}

	for i := 6; i < 12; i++ {
		windows[3][i] = float32(math.Sin(math.Pi / 12 * (float64(i) + 0.5 - 6)))
	}
	for i := 12; i < 18; i++ {
		windows[3][i] = 1
	}
	for i := 18; i < 36; i++ {
		windows[3][i] = float32(math.Sin(math.Pi / 36 * (float64(i) + 0.5)))
	}

	for m := range 18 {
		for p := range 36 {
			cos36[m][p] = float32(math.Cos(math.Pi / 72 * float64(2*p+1+18) * float64(2*m+1)))
		}
	}
	for m := range 6 {
		for p := range 12 {
			cos12[m][p] = float32(math.Cos(math.Pi / 24 * float64(2*p+1+6) * float64(2*m+1)))
		}
	}
}

// Window returns the 36-tap window for a block type.
func Window(blockType int) [36]float32 {
	return windows[blockType&3]
}

// Transform computes the windowed IMDCT of one subband's 18 coefficients
// into out. For short blocks in holds three interleaved windows
// (in[w+3m]) and the three windowed 12-point outputs are overlapped at
// offsets 6, 12 and 18.
func Transform(in *[18]float32, blockType int, out *[36]float32) {
	*out = [36]float32{}
	win := &windows[blockType&3]

	if blockType == BlockShort {
		for w := range 3 {
			for p := range 12 {
				var sum float32
				for m := range 6 {
					sum += in[w+3*m] * cos12[m][p]
				}
				out[6*w+p+6] += sum * win[p]
			}
		}
		return
	}

	for p := range 36 {
		var sum float32
		for m := range 18 {
			sum += in[m] * cos36[m][p]
		}
		out[p] = sum * win[p]
	}
}
