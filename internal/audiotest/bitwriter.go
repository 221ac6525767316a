// SPDX-License-Identifier: EPL-2.0

package audiotest

// BitWriter packs values MSB first, the bit order of MPEG side info and
// main data.
type BitWriter struct {
	buf  []byte
	bits int
}

// WriteBits appends the low n bits of v.
func (w *BitWriter) WriteBits(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		if w.bits%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 == 1 {
			w.buf[len(w.buf)-1] |= 0x80 >> uint(w.bits%8)
		}
		w.bits++
	}
}

// WriteString appends a string of '0' and '1' characters. Other
// characters are ignored so codes can be grouped with spaces.
func (w *BitWriter) WriteString(s string) {
	for _, c := range s {
		switch c {
		case '0':
			w.WriteBits(0, 1)
		case '1':
			w.WriteBits(1, 1)
		}
	}
}

func (w *BitWriter) WriteBool(b bool) {
	if b {
		w.WriteBits(1, 1)
		return
	}
	w.WriteBits(0, 1)
}

// Len is the number of bits written.
func (w *BitWriter) Len() int { return w.bits }

// Bytes returns the written bits, zero padded to a whole byte.
func (w *BitWriter) Bytes() []byte { return w.buf }
