// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/ik5/audec/audio"
)

// Decoder reads a whole WAVE file and exposes it as an audio.Source.
// The zero value uses audio.DefaultConfig.
type Decoder struct {
	Config *audio.Config
}

func (dec Decoder) Decode(r io.Reader) (audio.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}

	cfg := audio.DefaultConfig()
	if dec.Config != nil {
		cfg = *dec.Config
	}

	src, err := audio.NewStepSource(NewStreamDecoder(data, cfg), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return src, nil
}
