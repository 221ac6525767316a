// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrInvalidRate    = errors.New("sample rate must be positive")

	// ErrFormat marks malformed input: bad magic, truncated or missing
	// chunks, no MPEG sync.
	ErrFormat = errors.New("format error")

	// ErrUnsupportedFormat marks well-formed input using an encoding this
	// package does not decode.
	ErrUnsupportedFormat = errors.New("unsupported format")

	ErrNotStarted = errors.New("decoder not started")
	ErrNoChannels = errors.New("no output channels bound")
)
