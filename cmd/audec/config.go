// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audec/audio"
)

const (
	envLogLevel   = "AUDEC_LOG_LEVEL"
	envLogFormat  = "AUDEC_LOG_FORMAT"
	envStepBudget = "AUDEC_STEP_BUDGET"
)

// flags are the global command line settings. Empty values leave the
// environment in charge.
type flags struct {
	envFile   string
	logLevel  string
	logFormat string
	budget    time.Duration
}

// options are the resolved settings.
type options struct {
	LogLevel   logrus.Level
	LogFormat  string
	StepBudget time.Duration
}

// loadOptions merges the process environment, the dotenv file and the
// flags, in rising order of precedence over the defaults. Variables already
// set in the process are not replaced by the file, matching godotenv.Load.
func loadOptions(fl flags, getenv func(string) string) (options, error) {
	file := map[string]string{}
	if fl.envFile != "" {
		m, err := godotenv.Read(fl.envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return options{}, fmt.Errorf("load %s: %w", fl.envFile, err)
		default:
			file = m
		}
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return file[key]
	}

	opts := options{
		LogLevel:   logrus.InfoLevel,
		LogFormat:  "text",
		StepBudget: audio.DefaultStepBudget,
	}

	level := lookup(envLogLevel)
	if fl.logLevel != "" {
		level = fl.logLevel
	}
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return options{}, fmt.Errorf("log level: %w", err)
		}
		opts.LogLevel = lvl
	}

	format := lookup(envLogFormat)
	if fl.logFormat != "" {
		format = fl.logFormat
	}
	switch format {
	case "":
	case "text", "json":
		opts.LogFormat = format
	default:
		return options{}, fmt.Errorf("log format %q: want text or json", format)
	}

	if v := lookup(envStepBudget); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return options{}, fmt.Errorf("%s: %w", envStepBudget, err)
		}
		opts.StepBudget = d
	}
	if fl.budget != 0 {
		opts.StepBudget = fl.budget
	}
	if opts.StepBudget <= 0 {
		return options{}, fmt.Errorf("step budget %v must be positive", opts.StepBudget)
	}

	return opts, nil
}

func (o options) newLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(o.LogLevel)
	if o.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return logger
}
