// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audec/formats/wav"
	"github.com/ik5/audec/internal/audiotest"
)

// runCLI runs the command with an empty dotenv file so the working
// directory cannot leak settings into the test.
func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()

	var out, errb bytes.Buffer
	env := filepath.Join(t.TempDir(), "missing.env")
	code = run(append([]string{"-env", env}, args...), &out, &errb)
	return code, out.String(), errb.String()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func stereoWAV() []byte {
	return audiotest.RIFF("WAVE",
		audiotest.Fmt(wav.FormatPCM, 2, 8000, 16),
		audiotest.Data(audiotest.PCM16(0, 0, 16384, -16384, 32767, -32767, -100, 100)),
	)
}

func silentMP3(frames int) []byte {
	f := make([]audiotest.MP3Frame, frames)
	return audiotest.MP3Stream(f...)
}

func TestRun_InfoWAV(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "tone.wav", stereoWAV())
	code, out, stderr := runCLI(t, "info", path)
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, out, "WAVE PCM 16-bit")
	assert.Regexp(t, `rate:\s+8000 Hz`, out)
	assert.Regexp(t, `channels:\s+2\n`, out)
	assert.Regexp(t, `samples:\s+4\n`, out)
	assert.Contains(t, out, "fmt  16")
	assert.Contains(t, out, "data 16")
}

func TestRun_InfoMP3(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "silence.mp3", silentMP3(3))
	code, out, stderr := runCLI(t, "info", path)
	require.Equal(t, 0, code, stderr)

	assert.Regexp(t, `rate:\s+44100 Hz`, out)
	assert.Regexp(t, `samples:\s+3456\n`, out)
	assert.Regexp(t, `frames:\s+3\n`, out)
	assert.Contains(t, out, "MPEG-1 layer 3 128 kbit/s")
}

func TestRun_DecodeWAV(t *testing.T) {
	t.Parallel()

	in := writeFile(t, "in.wav", stereoWAV())
	out := filepath.Join(t.TempDir(), "out.wav")
	code, _, stderr := runCLI(t, "-log-level", "debug", "decode", in, out)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "Decode step")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	dec := gowav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, 2, buf.Format.NumChannels)
	assert.Equal(t, 8000, buf.Format.SampleRate)
	assert.Equal(t, []int{0, 0, 16384, -16384, 32767, -32767, -100, 100}, buf.Data)
}

func TestRun_DecodeMP3(t *testing.T) {
	t.Parallel()

	in := writeFile(t, "in.mp3", silentMP3(4))
	out := filepath.Join(t.TempDir(), "out.wav")
	code, _, stderr := runCLI(t, "-log-format", "json", "decode", in, out)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, `"msg":"Decoded"`)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 44100, src.SampleRate())
	assert.Equal(t, 2, src.Channels())
}

func TestRun_Resample(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 1600)
	for i := range samples {
		samples[i] = 1000
	}
	in := writeFile(t, "in.wav", audiotest.RIFF("WAVE",
		audiotest.Fmt(wav.FormatPCM, 1, 16000, 16),
		audiotest.Data(audiotest.PCM16(samples...)),
	))
	out := filepath.Join(t.TempDir(), "out.wav")

	code, _, stderr := runCLI(t, "resample", "-rate", "8000", in, out)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "Resampled")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 8000, src.SampleRate())
	assert.Equal(t, 1, src.Channels())

	got := make([]float32, 2000)
	n, _ := src.ReadSamples(got)
	assert.InDelta(t, 800, n, 1)
	assert.InDelta(t, 1000.0/32767, got[n/2], 1e-3)
}

func TestRun_Compare(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "silence.mp3", silentMP3(4))
	code, out, stderr := runCLI(t, "compare", path)
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, out, "rms diff:  0.000000")
	assert.Contains(t, out, "peak diff: 0.000000")
	assert.NotContains(t, out, "compared:  0\n")
}

func TestCompareSamples(t *testing.T) {
	t.Parallel()

	d := compareSamples([]float32{0, 0.5, 1, 1}, []float32{0, 0.25, 1})
	assert.Equal(t, 4, d.Ours)
	assert.Equal(t, 3, d.Reference)
	assert.Equal(t, 3, d.Compared)
	assert.InDelta(t, 0.25, d.Peak, 1e-9)
	assert.InDelta(t, 0.25/1.7320508, d.RMS, 1e-6)

	assert.Zero(t, compareSamples(nil, []float32{1}).Peak)
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	wavPath := writeFile(t, "ok.wav", stereoWAV())
	flac := writeFile(t, "song.flac", []byte("fLaC"))
	bad := writeFile(t, "bad.wav", []byte("RIFF\x04\x00\x00\x00AIFF"))

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no command", nil, 2},
		{"unknown command", []string{"play", wavPath}, 2},
		{"unknown flag", []string{"-verbose", "info", wavPath}, 2},
		{"bad log level", []string{"-log-level", "loud", "info", wavPath}, 2},
		{"bad log format", []string{"-log-format", "xml", "info", wavPath}, 2},
		{"negative budget", []string{"-budget", "-1s", "info", wavPath}, 2},
		{"info without file", []string{"info"}, 2},
		{"decode missing output", []string{"decode", wavPath}, 2},
		{"resample bad rate flag", []string{"resample", "-rate", "fast", wavPath, "out.wav"}, 2},
		{"missing file", []string{"info", filepath.Join(t.TempDir(), "nope.wav")}, 1},
		{"malformed wav", []string{"info", bad}, 1},
		{"unsupported extension", []string{"resample", flac, filepath.Join(t.TempDir(), "o.wav")}, 1},
		{"zero rate", []string{"resample", "-rate", "0", wavPath, filepath.Join(t.TempDir(), "o.wav")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, _, _ := runCLI(t, tt.args...)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "usage: audec")
}
