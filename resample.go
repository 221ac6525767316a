// SPDX-License-Identifier: EPL-2.0

package audec

import (
	"fmt"

	"github.com/ik5/audec/audio"
	"github.com/ik5/audec/utils"
)

// ResampleToMono16 resamples src to targetRate, averages its channels and
// returns the result as 16-bit PCM along with the output rate. bufferSize
// is the per-read buffer length.
func ResampleToMono16(src audio.Source, targetRate int, bufferSize int) ([]int16, int, error) {
	r, err := audio.NewResampler(src, targetRate)
	if err != nil {
		return nil, targetRate, fmt.Errorf("resample: %w", err)
	}

	samples, err := audio.ReadAll(audio.NewMonoMixer(r), bufferSize)
	if err != nil {
		return nil, targetRate, fmt.Errorf("resample: %w", err)
	}

	return utils.AppendInt16(nil, samples), targetRate, nil
}
