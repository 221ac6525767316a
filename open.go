// SPDX-License-Identifier: EPL-2.0

package audec

import (
	"bytes"
	"fmt"

	"github.com/ik5/audec/audio"
	"github.com/ik5/audec/formats/mp3"
	"github.com/ik5/audec/formats/wav"
)

// Container names returned by DetectFormat.
const (
	FormatWAV = "wav"
	FormatMP3 = "mp3"
)

// Decoder is a started step decoder that also reports its stream info.
type Decoder interface {
	audio.StepDecoder
	Info() audio.StreamInfo
}

var (
	_ Decoder = (*wav.StreamDecoder)(nil)
	_ Decoder = (*mp3.StreamDecoder)(nil)
)

// DetectFormat reports FormatWAV for data starting with "RIFF" and
// FormatMP3 for anything else.
func DetectFormat(data []byte) string {
	if bytes.HasPrefix(data, []byte("RIFF")) {
		return FormatWAV
	}
	return FormatMP3
}

// Open picks a decoder with DetectFormat and starts it. The returned
// decoder is ready for SetChannels.
func Open(data []byte, cfg audio.Config) (Decoder, error) {
	format := DetectFormat(data)

	var dec Decoder
	switch format {
	case FormatWAV:
		dec = wav.NewStreamDecoder(data, cfg)
	default:
		dec = mp3.NewStreamDecoder(data, cfg)
	}

	if _, err := dec.Start(); err != nil {
		return nil, fmt.Errorf("open %s: %w", format, err)
	}
	return dec, nil
}

// NewRegistry returns a registry with the WAVE and MP3 decoders bound to
// their usual file extensions. A nil cfg uses audio.DefaultConfig.
func NewRegistry(cfg *audio.Config) *audio.Registry {
	r := audio.NewRegistry()
	r.Register(wav.Decoder{Config: cfg}, FormatWAV, "wave")
	r.Register(mp3.Decoder{Config: cfg}, FormatMP3)
	return r
}
