// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_Distinct(t *testing.T) {
	t.Parallel()

	all := []error{
		ErrInvalidDstSize,
		ErrInvalidRate,
		ErrFormat,
		ErrUnsupportedFormat,
		ErrNotStarted,
		ErrNoChannels,
	}

	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true", a, b)
			}
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wav: %w", fmt.Errorf("%w: 12-bit", ErrUnsupportedFormat))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("errors.Is(%v, ErrUnsupportedFormat) = false", err)
	}
	if errors.Is(err, ErrFormat) {
		t.Errorf("errors.Is(%v, ErrFormat) = true", err)
	}

	if got, want := ErrInvalidDstSize.Error(), "dst size must be multiple of channels"; got != want {
		t.Errorf("ErrInvalidDstSize.Error() = %q, want %q", got, want)
	}
}
