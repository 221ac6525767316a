// SPDX-License-Identifier: EPL-2.0

package stepper

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by tick every time it is read.
type fakeClock struct {
	t    time.Time
	tick time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.tick)
	return c.t
}

func TestScheduler_StopsAtBudget(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{tick: time.Millisecond}
	s := New(clk.now)

	calls := 0
	n, more, err := s.Run(5*time.Millisecond, func() (bool, error) {
		calls++
		return true, nil
	})

	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, calls, n)
	assert.Equal(t, 5, n)
}

func TestScheduler_AlwaysRunsOneUnit(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{tick: time.Hour}
	s := New(clk.now)

	n, more, err := s.Run(0, func() (bool, error) { return true, nil })
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, more)
}

func TestScheduler_FinishesEarly(t *testing.T) {
	t.Parallel()

	s := New(nil)

	left := 3
	n, more, err := s.Run(time.Hour, func() (bool, error) {
		left--
		return left > 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, more)
}

func TestScheduler_ErrorStops(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	s := New(nil)

	n, _, err := s.Run(time.Hour, func() (bool, error) { return true, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n)
}
