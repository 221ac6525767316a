// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{2, 32767},
		{-7, -32767},
		{0.5, 16384},
		{-0.5, -16384},
		{1.0 / 32767, 1},
		{0.4 / 32767, 0},
		{0.6 / 32767, 1},
		{-0.6 / 32767, -1},
	}

	for _, tt := range tests {
		if got := Float32ToInt16(tt.in); got != tt.want {
			t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFloat32ToInt16_InvertsPCM16Scaling(t *testing.T) {
	t.Parallel()

	for v := -32767; v <= 32767; v += 7 {
		x := float32(int16(v)) / 32767
		if got := Float32ToInt16(x); int(got) != v {
			t.Fatalf("Float32ToInt16(%d/32767) = %d", v, got)
		}
	}
}

func TestFloat32ToInt16_NaNDoesNotPanic(t *testing.T) {
	t.Parallel()

	_ = Float32ToInt16(float32(math.NaN()))
}

func TestFloat32sToInts(t *testing.T) {
	t.Parallel()

	dst := make([]int, 3)
	n := Float32sToInts(dst, []float32{0.5, -1, 3, 0.25})
	if n != 3 {
		t.Fatalf("converted %d, want 3", n)
	}
	want := []int{16384, -32767, 32767}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestAppendInt16(t *testing.T) {
	t.Parallel()

	var out []int16
	out = AppendInt16(out, []float32{0, 1})
	out = AppendInt16(out, []float32{-1})
	if len(out) != 3 || out[0] != 0 || out[1] != 32767 || out[2] != -32767 {
		t.Errorf("AppendInt16() = %v", out)
	}
	if got := AppendInt16(out[:0], nil); len(got) != 0 {
		t.Errorf("AppendInt16(nil) = %v", got)
	}
}

func TestAppendInt16_ZeroAllocsWithCapacity(t *testing.T) {
	src := make([]float32, 1024)
	dst := make([]int16, 0, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		_ = AppendInt16(dst[:0], src)
	})
	if allocs > 0 {
		t.Errorf("AppendInt16 allocated %v times, want 0", allocs)
	}
}
