// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/audec/audio"
)

var (
	ErrNotWavFile          = fmt.Errorf("%w: not a WAV file", audio.ErrFormat)
	ErrMissingChunk        = fmt.Errorf("%w: missing WAV chunk", audio.ErrFormat)
	ErrFormatChunkTooSmall = fmt.Errorf("%w: format chunk is too small", audio.ErrFormat)
	ErrNoChannels          = fmt.Errorf("%w: zero channels", audio.ErrFormat)

	ErrUnsupportedEncoding = fmt.Errorf("%w: WAV encoding", audio.ErrUnsupportedFormat)
	ErrUnsupportedBitDepth = fmt.Errorf("%w: WAV bit depth", audio.ErrUnsupportedFormat)
)
