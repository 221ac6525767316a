// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"

	"github.com/ik5/audec/audio"
)

var (
	ErrNoFrames = fmt.Errorf("%w: no MPEG frame sync found", audio.ErrFormat)

	ErrUnsupportedVersion = fmt.Errorf("%w: only MPEG version 1 is supported", audio.ErrUnsupportedFormat)
	ErrUnsupportedLayer   = fmt.Errorf("%w: only layer III is supported", audio.ErrUnsupportedFormat)
)

// Granule-level faults. They are logged and counted, never returned from
// Step.
var (
	errBigValues   = errors.New("mp3: bad big_values count")
	errRegionIndex = errors.New("mp3: region index out of range")
)
