// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultStepBudget is the wall-clock slice a single Step may use.
const DefaultStepBudget = 10 * time.Millisecond

// StreamInfo describes a stream once its headers have been parsed.
type StreamInfo struct {
	Format     string
	SampleRate int
	Channels   int
	// TotalSamples is the per-channel sample count.
	TotalSamples int
}

// Duration of the stream in seconds.
func (i StreamInfo) Duration() float64 {
	if i.SampleRate <= 0 {
		return 0
	}
	return float64(i.TotalSamples) / float64(i.SampleRate)
}

// Progress is reported after each Step.
type Progress struct {
	Decoded  int
	Total    int
	Finished bool
}

// StepDecoder decodes an in-memory stream incrementally into caller-owned
// per-channel buffers.
//
// Start parses headers (and indexes frames) and must be called first.
// SetChannels binds the output buffers before the first Step. Each Step
// decodes at least one unit and then continues until budget is spent; once
// the stream is finished Step is a no-op returning the final Progress.
type StepDecoder interface {
	Start() (StreamInfo, error)
	SetChannels(buffers [][]float32) error
	Step(budget time.Duration) (Progress, error)
	// LoadedTime is the decoded duration in seconds.
	LoadedTime() float64
	Finished() bool
}

// Config carries the ambient settings shared by the decoders.
type Config struct {
	Logger     logrus.FieldLogger
	StepBudget time.Duration
	// Now is the clock used to enforce step budgets; nil means time.Now.
	Now func() time.Time
}

func DefaultConfig() Config {
	return Config{
		Logger:     logrus.StandardLogger(),
		StepBudget: DefaultStepBudget,
	}
}

// Log returns the configured logger, falling back to the standard logger.
func (c Config) Log() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}

// Budget returns StepBudget, or DefaultStepBudget when unset.
func (c Config) Budget() time.Duration {
	if c.StepBudget <= 0 {
		return DefaultStepBudget
	}
	return c.StepBudget
}

// BindChannels validates a SetChannels argument.
func BindChannels(buffers [][]float32) error {
	if len(buffers) == 0 {
		return ErrNoChannels
	}
	return nil
}
