// SPDX-License-Identifier: EPL-2.0

// Package huffman decodes the Huffman-coded spectral values of MPEG-1
// Layer III: the 32 big-value pair tables (with linbits escapes) and the two
// count1 quadruple tables.
package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCode is returned when a code walks off its tree or exceeds
	// 32 bits without reaching a leaf.
	ErrInvalidCode = errors.New("huffman: invalid code")

	// ErrInvalidTable is returned for table numbers outside 0..33.
	ErrInvalidTable = errors.New("huffman: invalid table")
)

// BitReader is the bit source consumed by the decoder.
type BitReader interface {
	Bit() uint32
	Bits(n int) uint32
}

type table struct {
	start   int
	size    int
	linbits int
}

// tables maps table_select values to slices of tree. A zero size marks the
// tables (0, 4 and 14) that carry no code and always yield zeros.
var tables = [34]table{
	{},
	{0, 7, 0},
	{7, 17, 0},
	{24, 17, 0},
	{},
	{41, 31, 0},
	{72, 31, 0},
	{103, 71, 0},
	{174, 71, 0},
	{245, 71, 0},
	{316, 127, 0},
	{443, 127, 0},
	{570, 127, 0},
	{697, 511, 0},
	{},
	{1208, 511, 0},
	{1719, 511, 1},
	{1719, 511, 2},
	{1719, 511, 3},
	{1719, 511, 4},
	{1719, 511, 6},
	{1719, 511, 8},
	{1719, 511, 10},
	{1719, 511, 13},
	{2230, 512, 4},
	{2230, 512, 5},
	{2230, 512, 6},
	{2230, 512, 7},
	{2230, 512, 8},
	{2230, 512, 9},
	{2230, 512, 11},
	{2230, 512, 13},
	{2742, 31, 0},
	{2773, 31, 0},
}

// QuadTableA and QuadTableB are the table numbers used for count1 values,
// selected by count1table_select.
const (
	QuadTableA = 32
	QuadTableB = 33
)

// Linbits reports the escape width of table n.
func Linbits(n int) int {
	if n < 0 || n >= len(tables) {
		return 0
	}
	return tables[n].linbits
}

// leaf walks the tree of table n and returns the packed leaf value.
func leaf(r BitReader, n int) (uint16, bool, error) {
	if n < 0 || n >= len(tables) {
		return 0, false, fmt.Errorf("%w: %d", ErrInvalidTable, n)
	}
	t := tables[n]
	if t.size == 0 {
		return 0, false, nil
	}
	tab := tree[t.start : t.start+t.size]

	p := 0
	for bitsLeft := 32; ; {
		if tab[p]&0xff00 == 0 {
			return tab[p], true, nil
		}
		if r.Bit() != 0 {
			for tab[p]&0xff >= 250 {
				p += int(tab[p] & 0xff)
			}
			p += int(tab[p] & 0xff)
		} else {
			for tab[p]>>8 >= 250 {
				p += int(tab[p] >> 8)
			}
			p += int(tab[p] >> 8)
		}
		bitsLeft--
		if bitsLeft <= 0 || p >= len(tab) {
			return 0, false, fmt.Errorf("%w: table %d", ErrInvalidCode, n)
		}
	}
}

// DecodePair reads one big-values pair from table n (0..31), applying the
// table's linbits escape and the sign bits.
func DecodePair(r BitReader, n int) (x, y int, err error) {
	if n >= QuadTableA {
		return 0, 0, fmt.Errorf("%w: %d is a count1 table", ErrInvalidTable, n)
	}
	v, ok, err := leaf(r, n)
	if err != nil || !ok {
		return 0, 0, err
	}
	x = int(v>>4) & 0xf
	y = int(v) & 0xf

	lb := tables[n].linbits
	if lb != 0 && x == 15 {
		x += int(r.Bits(lb))
	}
	if x != 0 && r.Bit() == 1 {
		x = -x
	}
	if lb != 0 && y == 15 {
		y += int(r.Bits(lb))
	}
	if y != 0 && r.Bit() == 1 {
		y = -y
	}
	return x, y, nil
}

// DecodeQuad reads one count1 quadruple using count1table_select sel (0 or 1).
func DecodeQuad(r BitReader, sel int) (v, w, x, y int, err error) {
	code, _, err := leaf(r, QuadTableA+(sel&1))
	if err != nil {
		return 0, 0, 0, 0, err
	}
	q := [4]int{
		int(code>>3) & 1,
		int(code>>2) & 1,
		int(code>>1) & 1,
		int(code) & 1,
	}
	for i := range q {
		if q[i] != 0 && r.Bit() == 1 {
			q[i] = -q[i]
		}
	}
	return q[0], q[1], q[2], q[3], nil
}
