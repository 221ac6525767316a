// SPDX-License-Identifier: EPL-2.0

package bits

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Bits(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{0b1011_0011, 0b1100_0000})

	assert.Equal(t, uint32(1), r.Bit())
	assert.Equal(t, uint32(0b011), r.Bits(3))
	assert.Equal(t, uint32(0b0011_11), r.Bits(6))
	assert.Equal(t, 10, r.BitPos())
	assert.False(t, r.Overrun())
}

func TestReader_OverrunReadsZero(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{0xFF})
	assert.Equal(t, uint32(0xFF00), r.Bits(16))
	assert.True(t, r.Overrun())
}

func TestReservoir_ReadsAcrossPushes(t *testing.T) {
	t.Parallel()

	var res Reservoir
	res.Push([]byte{0xAB})
	res.Push([]byte{0xCD})

	require.NoError(t, res.Begin(0, 0))
	assert.Equal(t, uint32(0xABCD), res.Bits(16))
	assert.Equal(t, int64(16), res.BitPos())
}

// The first b bytes consumed for a frame are the last b bytes transmitted
// before it.
func TestReservoir_MainDataBeginUsesPreviousFrameTail(t *testing.T) {
	t.Parallel()

	prev := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	cur := []byte{9, 10, 11, 12}

	var res Reservoir
	res.Push(prev)
	frameStart := res.Written()
	res.Push(cur)

	const b = 3
	require.NoError(t, res.Begin(frameStart, b))

	got := res.ReadBytes(b)
	assert.Equal(t, prev[len(prev)-b:], got)
	assert.Equal(t, cur[:2], res.ReadBytes(2))
}

func TestReservoir_InsufficientHistory(t *testing.T) {
	t.Parallel()

	var res Reservoir
	res.Push([]byte{1, 2, 3})

	err := res.Begin(0, 10)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestReservoir_HistoryOverwrittenByWrap(t *testing.T) {
	t.Parallel()

	var res Reservoir
	res.Push(bytes.Repeat([]byte{0x11}, ReservoirSize))
	frameStart := res.Written()
	res.Push(bytes.Repeat([]byte{0x22}, 100))

	// 100 of the old bytes were overwritten; reaching back 200 from the
	// current frame start is still possible, but not ReservoirSize.
	require.NoError(t, res.Begin(frameStart, 200))
	assert.Equal(t, uint32(0x11), res.Bits(8))

	assert.ErrorIs(t, res.Begin(frameStart, ReservoirSize), ErrInsufficientHistory)
}

func TestReservoir_WrapAroundPreservesOrder(t *testing.T) {
	t.Parallel()

	var res Reservoir
	res.Push(make([]byte, ReservoirSize-2))
	frameStart := res.Written()
	res.Push([]byte{0xDE, 0xAD, 0xBE, 0xEF})

	require.NoError(t, res.Begin(frameStart, 0))
	assert.Equal(t, uint32(0xDEADBEEF), res.Bits(32))
}

func TestReservoir_NegativeDiscard(t *testing.T) {
	t.Parallel()

	var res Reservoir
	res.Push(make([]byte, 16))
	require.NoError(t, res.Begin(0, 0))
	res.Bits(64) // previous frame consumed 8 bytes

	res.Push(make([]byte, 16))
	// Claims its data starts at byte 4, which was already consumed.
	err := res.Begin(16, 12)
	assert.ErrorIs(t, err, ErrNegativeDiscard)
	assert.Equal(t, int64(4*8), res.BitPos())
}

func TestReservoir_Rewind(t *testing.T) {
	t.Parallel()

	var res Reservoir
	res.Push([]byte{0xF0})
	require.NoError(t, res.Begin(0, 0))

	assert.Equal(t, uint32(0xF), res.Bits(4))
	res.Rewind(4)
	assert.Equal(t, uint32(0xF0), res.Bits(8))

	res.Rewind(100)
	assert.Equal(t, int64(0), res.BitPos())
}

func TestReservoir_ReadPastWrittenIsZero(t *testing.T) {
	t.Parallel()

	var res Reservoir
	res.Push([]byte{0xFF})
	require.NoError(t, res.Begin(0, 0))

	assert.Equal(t, uint32(0xFF00), res.Bits(16))
}
