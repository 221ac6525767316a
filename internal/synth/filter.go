// SPDX-License-Identifier: EPL-2.0

// Package synth implements the 32-band polyphase synthesis filterbank that
// turns Layer III subband samples back into PCM.
//
// The 1024-entry V FIFO of the reference algorithm is replaced by two
// 512-entry rings used ping-pong style: each new 64-value V vector has its
// first half written to ring cur and its second half to ring 1-cur, then cur
// toggles. Every window tap then reads contiguous values from ring cur.
package synth

import "math"

// Filter holds the synthesis state of one channel.
type Filter struct {
	v    [2][512]float32
	pos  int
	cur  int
	slow bool
}

// NewFilter returns a Filter using the fast DCT matrixing.
func NewFilter() *Filter { return &Filter{} }

// NewDirectFilter returns a Filter computing the matrixing from its
// definition. It is slower and exists for verification.
func NewDirectFilter() *Filter { return &Filter{slow: true} }

// Reset clears the filter history.
func (f *Filter) Reset() {
	f.v = [2][512]float32{}
	f.pos = 0
	f.cur = 0
}

// Synthesize consumes one sample of each of the 32 subbands and writes 32
// output samples. Output is unscaled; see Quantize.
func (f *Filter) Synthesize(in *[32]float32, out *[32]float32) {
	var nv [64]float32
	if f.slow {
		matrixDirect(in, &nv)
	} else {
		matrixFast(in, &nv)
	}

	base := 32 * f.pos
	copy(f.v[f.cur][base:base+32], nv[:32])
	copy(f.v[1-f.cur][base:base+32], nv[32:])

	ring := &f.v[f.cur]
	for j := range 32 {
		var sum float32
		for k := range 16 {
			sum += window[32*k+j] * ring[32*((f.pos-k)&15)+j]
		}
		out[j] = sum
	}

	f.cur ^= 1
	f.pos = (f.pos + 1) & 15
}

// Quantize maps a synthesized sample to the 16-bit grid and back to a
// normalized float: the value is scaled by 32767, clamped to +-32767,
// truncated and divided by 32768.
func Quantize(s float32) float32 {
	v := s * 32767
	v = max(-32767, min(32767, v))
	return float32(int16(v)) / 32768
}

var matrixN = func() (n [64][32]float32) {
	for i := range 64 {
		for k := range 32 {
			n[i][k] = float32(math.Cos(float64((16+i)*(2*k+1)) * math.Pi / 64))
		}
	}
	return n
}()

func matrixDirect(in *[32]float32, v *[64]float32) {
	for i := range 64 {
		var sum float32
		for k := range 32 {
			sum += matrixN[i][k] * in[k]
		}
		v[i] = sum
	}
}

// matrixFast derives V from a 32-point DCT-II using the cosine symmetries
// around 32 and 64.
func matrixFast(in *[32]float32, v *[64]float32) {
	var x, c, tmp [32]float64
	for i := range 32 {
		x[i] = float64(in[i])
	}
	dct(x[:], c[:], tmp[:])

	for i := range 16 {
		v[i] = float32(c[16+i])
	}
	v[16] = 0
	for i := 17; i < 48; i++ {
		v[i] = float32(-c[64-(16+i)])
	}
	v[48] = float32(-c[0])
	for i := 49; i < 64; i++ {
		v[i] = float32(-c[(16+i)-64])
	}
}

// leeScale[n][i] = 1 / (2 cos((2i+1)pi / 2n)) for n = 2, 4, ..., 32.
var leeScale = func() map[int][]float64 {
	m := make(map[int][]float64)
	for n := 2; n <= 32; n *= 2 {
		s := make([]float64, n/2)
		for i := range s {
			s[i] = 1 / (2 * math.Cos(float64(2*i+1)*math.Pi/float64(2*n)))
		}
		m[n] = s
	}
	return m
}()

// dct computes the unnormalized DCT-II out[k] = sum x[n] cos(pi(2n+1)k/2N)
// with Lee's even/odd split. in and tmp are used as scratch.
func dct(in, out, tmp []float64) {
	n := len(in)
	if n == 1 {
		out[0] = in[0]
		return
	}
	half := n / 2
	scale := leeScale[n]

	g, h := tmp[:half], tmp[half:n]
	for i := range half {
		a, b := in[i], in[n-1-i]
		g[i] = a + b
		h[i] = (a - b) * scale[i]
	}

	dct(g, out[:half], in[:half])
	dct(h, out[half:n], in[half:n])

	copy(tmp[:n], out[:n])
	for k := range half {
		out[2*k] = tmp[k]
		if k+1 < half {
			out[2*k+1] = tmp[half+k] + tmp[half+k+1]
		} else {
			out[2*k+1] = tmp[half+k]
		}
	}
}
