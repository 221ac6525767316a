// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it by 32767, rounding to
// the nearest integer. It inverts the 1/32767 scaling of the 16-bit PCM
// decoder exactly.
func Float32ToInt16(x float32) int16 {
	x = max(-1, min(1, x))

	v := x * 32767
	if v >= 0 {
		v += 0.5
	} else {
		v -= 0.5
	}
	return int16(v)
}

// Float32sToInts converts src into dst as 16-bit values widened to int, the
// layout go-audio's IntBuffer expects. It returns the number converted.
func Float32sToInts(dst []int, src []float32) int {
	n := min(len(dst), len(src))
	for i, x := range src[:n] {
		dst[i] = int(Float32ToInt16(x))
	}
	return n
}

// AppendInt16 appends the converted samples of src to dst.
func AppendInt16(dst []int16, src []float32) []int16 {
	dst = growInt16(dst, len(src))
	for _, x := range src {
		dst = append(dst, Float32ToInt16(x))
	}
	return dst
}

func growInt16(s []int16, n int) []int16 {
	if cap(s)-len(s) >= n {
		return s
	}
	grown := make([]int16, len(s), len(s)+max(n, cap(s)))
	copy(grown, s)
	return grown
}
