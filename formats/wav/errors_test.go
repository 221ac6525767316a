// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ik5/audec/audio"
)

func TestErrors_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"ErrNotWavFile", ErrNotWavFile, audio.ErrFormat},
		{"ErrMissingChunk", ErrMissingChunk, audio.ErrFormat},
		{"ErrFormatChunkTooSmall", ErrFormatChunkTooSmall, audio.ErrFormat},
		{"ErrNoChannels", ErrNoChannels, audio.ErrFormat},
		{"ErrUnsupportedEncoding", ErrUnsupportedEncoding, audio.ErrUnsupportedFormat},
		{"ErrUnsupportedBitDepth", ErrUnsupportedBitDepth, audio.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%s, %v) = false, want true", tt.name, tt.kind)
			}

			other := audio.ErrFormat
			if tt.kind == audio.ErrFormat {
				other = audio.ErrUnsupportedFormat
			}
			if errors.Is(tt.err, other) {
				t.Errorf("errors.Is(%s, %v) = true, want false", tt.name, other)
			}

			wrapped := fmt.Errorf("open: %w", tt.err)
			if !errors.Is(wrapped, tt.err) || !errors.Is(wrapped, tt.kind) {
				t.Errorf("wrapped %s lost its identity", tt.name)
			}
		})
	}
}

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	all := map[string]error{
		"ErrNotWavFile":          ErrNotWavFile,
		"ErrMissingChunk":        ErrMissingChunk,
		"ErrFormatChunkTooSmall": ErrFormatChunkTooSmall,
		"ErrNoChannels":          ErrNoChannels,
		"ErrUnsupportedEncoding": ErrUnsupportedEncoding,
		"ErrUnsupportedBitDepth": ErrUnsupportedBitDepth,
	}

	seen := make(map[string]string)
	for name, err := range all {
		msg := err.Error()
		if prev, ok := seen[msg]; ok {
			t.Errorf("%s has the same message as %s: %q", name, prev, msg)
		}
		seen[msg] = name
	}

	if got, want := ErrNotWavFile.Error(), "format error: not a WAV file"; got != want {
		t.Errorf("ErrNotWavFile.Error() = %q, want %q", got, want)
	}
}
