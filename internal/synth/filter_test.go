// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDCT_MatchesDefinition(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	var x, out, tmp [32]float64
	var orig [32]float64
	for i := range x {
		x[i] = rng.Float64()*2 - 1
	}
	orig = x

	dct(x[:], out[:], tmp[:])

	for k := range 32 {
		var want float64
		for n := range 32 {
			want += orig[n] * math.Cos(math.Pi*float64(2*n+1)*float64(k)/64)
		}
		assert.InDelta(t, want, out[k], 1e-9, "k=%d", k)
	}
}

func TestMatrix_FastAgreesWithDirect(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 4))
	for range 20 {
		var in [32]float32
		for i := range in {
			in[i] = rng.Float32()*2 - 1
		}

		var direct, fast [64]float32
		matrixDirect(&in, &direct)
		matrixFast(&in, &fast)

		for i := range 64 {
			assert.InDelta(t, direct[i], fast[i], 1e-4, "i=%d", i)
		}
	}
}

func TestFilter_FastAgreesWithDirect(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(5, 6))
	fast := NewFilter()
	slow := NewDirectFilter()

	// run past the 16-slot ring more than once
	for step := range 40 {
		var in [32]float32
		for i := range in {
			in[i] = (rng.Float32()*2 - 1) * 0.1
		}

		var a, b [32]float32
		fast.Synthesize(&in, &a)
		slow.Synthesize(&in, &b)
		for j := range 32 {
			require.InDelta(t, b[j], a[j], 1e-4, "step %d sample %d", step, j)
		}
	}
}

func TestFilter_ZeroInZeroOut(t *testing.T) {
	t.Parallel()

	f := NewFilter()
	var in, out [32]float32
	for range 32 {
		f.Synthesize(&in, &out)
		assert.Equal(t, [32]float32{}, out)
	}
}

func TestFilter_Reset(t *testing.T) {
	t.Parallel()

	f := NewFilter()
	in := [32]float32{1}
	var out [32]float32
	f.Synthesize(&in, &out)
	f.Reset()

	var zero [32]float32
	f.Synthesize(&zero, &out)
	assert.Equal(t, [32]float32{}, out)
}

func TestQuantize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want float32
	}{
		{0, 0},
		{2, 32767.0 / 32768},
		{-2, -32767.0 / 32768},
		{0.5, 16383.0 / 32768},
		{-0.5, -16383.0 / 32768},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Quantize(tt.in), "Quantize(%v)", tt.in)
	}
}
