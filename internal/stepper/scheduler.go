// SPDX-License-Identifier: EPL-2.0

// Package stepper drives incremental decoding in bounded wall-clock slices.
package stepper

import "time"

// Unit performs one indivisible piece of work (a frame, a block, a run of
// PCM samples) and reports whether more work remains.
type Unit func() (more bool, err error)

// Scheduler runs units until a budget is spent. The clock is injectable so
// budget behaviour can be tested deterministically.
type Scheduler struct {
	now func() time.Time
}

// New creates a Scheduler. A nil clock uses time.Now.
func New(now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{now: now}
}

// Run executes unit at least once, then keeps going while it reports more
// work and the elapsed time is below budget. It returns how many units ran
// and whether work remains. An error stops the loop immediately.
func (s *Scheduler) Run(budget time.Duration, unit Unit) (int, bool, error) {
	start := s.now()
	n := 0
	for {
		more, err := unit()
		n++
		if err != nil {
			return n, more, err
		}
		if !more {
			return n, false, nil
		}
		if s.now().Sub(start) >= budget {
			return n, true, nil
		}
	}
}
