// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audec/utils"
)

// maxEmptyReads bounds how many (0, nil) reads a source may return in a row
// before the resampler gives up with io.ErrNoProgress.
const maxEmptyReads = 100

// Resampler streams src at another sample rate using Catmull-Rom cubic
// interpolation. Channel count is preserved. When downsampling a one-pole
// low-pass with its cutoff scaled by the rate ratio runs ahead of the
// interpolator. Equal rates pass samples through untouched.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int
	bypass   bool

	// hist holds frames k-1, k, k+1 and k+2 around the current position
	// k+pos. real marks frames read from src rather than edge copies.
	hist [4][]float32
	real [4]bool
	pos  float64

	primed bool
	done   bool

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	alpha  float32
	lp     []float32
	lpInit bool
}

// NewResampler wraps src so that it produces dstRate Hz.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 {
		return nil, fmt.Errorf("%w: target %d Hz", ErrInvalidRate, dstRate)
	}
	srcRate, ch := src.SampleRate(), src.Channels()
	if srcRate <= 0 {
		return nil, fmt.Errorf("%w: source %d Hz", ErrInvalidRate, srcRate)
	}
	if ch < 1 {
		return nil, ErrNoChannels
	}

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     float64(srcRate) / float64(dstRate),
		channels: ch,
		bypass:   srcRate == dstRate,
		alpha:    1,
	}
	if r.bypass {
		return r, nil
	}

	if r.step > 1 {
		r.alpha = float32(1 / r.step)
	}
	r.lp = make([]float32, ch)
	for i := range r.hist {
		r.hist[i] = make([]float32, ch)
	}
	size := max(src.BufSize(), 256)
	r.in = make([]float32, max(size-size%ch, ch))

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("close resampler source: %w", err)
	}
	return nil
}

// next reads one filtered source frame into frame. It reports false once
// src is exhausted.
func (r *Resampler) next(frame []float32) (bool, error) {
	empty := 0
	for r.inPos >= r.inLen {
		if r.srcEOF {
			return false, nil
		}
		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		switch {
		case err == io.EOF:
			r.srcEOF = true
		case err != nil:
			return false, fmt.Errorf("resample: %w", err)
		case n == 0:
			if empty++; empty >= maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
	}

	copy(frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.alpha < 1 {
		if !r.lpInit {
			copy(r.lp, frame)
			r.lpInit = true
		}
		for c, v := range frame {
			r.lp[c] += r.alpha * (v - r.lp[c])
			frame[c] = r.lp[c]
		}
	}
	return true, nil
}

// load fills hist[i] from src, repeating hist[i-1] past the end.
func (r *Resampler) load(i int) error {
	ok, err := r.next(r.hist[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[i], r.hist[i-1])
	}
	r.real[i] = ok
	return nil
}

func (r *Resampler) prime() (bool, error) {
	ok, err := r.next(r.hist[1])
	if err != nil || !ok {
		return false, err
	}
	copy(r.hist[0], r.hist[1])
	r.real[0], r.real[1] = false, true

	for i := 2; i < 4; i++ {
		if err := r.load(i); err != nil {
			return false, err
		}
	}
	r.primed = true
	return true, nil
}

// advance moves the window one source frame forward. It reports false
// when the base frame would run past the end of the source.
func (r *Resampler) advance() (bool, error) {
	if !r.real[2] {
		return false, nil
	}

	first := r.hist[0]
	copy(r.hist[:], r.hist[1:])
	r.hist[3] = first
	copy(r.real[:], r.real[1:])

	return true, r.load(3)
}

// ReadSamples fills dst with interleaved frames at the target rate. len(dst)
// must be a multiple of Channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.bypass {
		return r.src.ReadSamples(dst)
	}
	if r.done {
		return 0, io.EOF
	}
	if !r.primed {
		ok, err := r.prime()
		if err != nil {
			return 0, err
		}
		if !ok {
			r.done = true
			return 0, io.EOF
		}
	}

	ch := r.channels
	frames := len(dst) / ch
	n := 0
	for n < frames && !r.done {
		for r.pos >= 1 && !r.done {
			r.pos--
			more, err := r.advance()
			if err != nil {
				return n * ch, err
			}
			r.done = !more
		}
		if r.done {
			break
		}

		x := float32(r.pos)
		out := dst[n*ch : n*ch+ch]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}
		n++
		r.pos += r.step
	}

	if r.done {
		if n == 0 {
			return 0, io.EOF
		}
		return n * ch, io.EOF
	}
	return n * ch, nil
}
