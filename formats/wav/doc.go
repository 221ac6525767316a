// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files held in memory and writes 16-bit PCM
// WAVE files.
//
// # Supported encodings
//
//   - PCM, 8 (unsigned), 16, 24, 32 and 64-bit
//   - IEEE float, 32 and 64-bit (clamped to [-1, 1])
//   - IMA ADPCM (tag 0x11), any block size, up to 8 channels
//   - MPEG Layer III (tag 0x55), decoded by package formats/mp3
//   - WAVE_FORMAT_EXTENSIBLE wrapping any of the above
//
// Everything else fails with ErrUnsupportedEncoding or
// ErrUnsupportedBitDepth, both of which match audio.ErrUnsupportedFormat.
// Malformed files match audio.ErrFormat.
//
// # Decoding
//
// StreamDecoder implements audio.StepDecoder:
//
//	d := wav.NewStreamDecoder(data, audio.DefaultConfig())
//	info, err := d.Start()
//	if err != nil {
//	    // handle error
//	}
//	out := make([][]float32, info.Channels)
//	for c := range out {
//	    out[c] = make([]float32, info.TotalSamples)
//	}
//	d.SetChannels(out)
//	for !d.Finished() {
//	    d.Step(10 * time.Millisecond)
//	}
//
// Integer samples are divided by the largest positive value of their width
// (8-bit samples by 128). ADPCM samples are divided by 32768.
//
// Decoder wraps StreamDecoder as an audio.Source for the resampling
// pipeline.
//
// The declared RIFF size is not trusted: chunks are scanned up to the end
// of the data actually present, and a chunk running past it is truncated.
package wav
