// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// ReadAll drains src and returns every interleaved sample it produced.
// bufSize is the per-read buffer length; values below the channel count use
// src.BufSize(). Reaching io.EOF is not an error.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	ch := max(src.Channels(), 1)
	if bufSize < ch {
		bufSize = max(src.BufSize(), ch)
	}
	buf := make([]float32, bufSize-bufSize%ch)

	var out []float32
	empty := 0
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		switch {
		case err == io.EOF:
			return out, nil
		case err != nil:
			return out, fmt.Errorf("read samples: %w", err)
		case n == 0:
			if empty++; empty >= maxEmptyReads {
				return out, io.ErrNoProgress
			}
		default:
			empty = 0
		}
	}
}
