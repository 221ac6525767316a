// SPDX-License-Identifier: EPL-2.0

// Command audec inspects and decodes WAVE and MP3 files.
//
//	audec [flags] info <file>
//	audec [flags] decode <in> <out.wav>
//	audec [flags] resample [-rate hz] <in> <out.wav>
//	audec [flags] compare <file.mp3>
//
// Settings are read from the environment (AUDEC_LOG_LEVEL, AUDEC_LOG_FORMAT,
// AUDEC_STEP_BUDGET), then from an optional .env file, and flags win over
// both.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audec/audio"
)

const usage = `usage: audec [flags] <command> [args]

commands:
  info <file>                          print stream details
  decode <in> <out.wav>                decode to 16-bit PCM WAVE
  resample [-rate hz] <in> <out.wav>   decode, resample and mix down to mono
  compare <file.mp3>                   diff the MP3 decoder against go-mp3

flags:
`

var errUsage = errors.New("invalid arguments")

// app is the state shared by the commands.
type app struct {
	cfg    audio.Config
	log    *logrus.Logger
	stdout io.Writer
}

type command func(a *app, args []string) error

var commands = map[string]command{
	"info":     (*app).info,
	"decode":   (*app).decode,
	"resample": (*app).resample,
	"compare":  (*app).compare,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("audec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var fl flags
	fs.StringVar(&fl.envFile, "env", ".env", "dotenv file to load; a missing file is ignored")
	fs.StringVar(&fl.logLevel, "log-level", "", "log level: panic, fatal, error, warn, info, debug or trace")
	fs.StringVar(&fl.logFormat, "log-format", "", "log format: text or json")
	fs.DurationVar(&fl.budget, "budget", 0, "time budget of one decode step")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	opts, err := loadOptions(fl, os.Getenv)
	if err != nil {
		fmt.Fprintln(stderr, "audec:", err)
		return 2
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "audec: unknown command %q\n", fs.Arg(0))
		fs.Usage()
		return 2
	}

	logger := opts.newLogger(stderr)
	a := &app{
		cfg: audio.Config{
			Logger:     logger,
			StepBudget: opts.StepBudget,
		},
		log:    logger,
		stdout: stdout,
	}

	if err := cmd(a, fs.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "audec %s: %v\n", fs.Arg(0), err)
			fs.Usage()
			return 2
		}
		logger.WithError(err).WithField("command", fs.Arg(0)).Error("Command failed")
		return 1
	}
	return 0
}
