// SPDX-License-Identifier: EPL-2.0

// Package audec decodes WAVE and MPEG-1 Layer III audio held in memory into
// normalized float samples.
//
// Open detects the container from the first bytes and returns a started
// audio.StepDecoder. The caller binds one buffer per channel and steps the
// decoder with a time budget until it is finished:
//
//	dec, err := audec.Open(data, audio.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	info := dec.Info()
//	out := make([][]float32, info.Channels)
//	for c := range out {
//	    out[c] = make([]float32, info.TotalSamples)
//	}
//	if err := dec.SetChannels(out); err != nil {
//	    return err
//	}
//	for !dec.Finished() {
//	    if _, err := dec.Step(10 * time.Millisecond); err != nil {
//	        return err
//	    }
//	}
//
// The format packages can be used directly: formats/wav handles PCM
// (8 to 64-bit), IEEE float, IMA ADPCM and MPEG payloads in RIFF/WAVE, and
// formats/mp3 handles MPEG-1 Layer III streams.
//
// # Pipelines
//
// Every format also provides an audio.Decoder returning a pull-style
// audio.Source. ResampleToMono16 chains such a source through the audio
// package's Resampler and MonoMixer:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	pcm, rate, err := audec.ResampleToMono16(src, 8000, 4096)
//
// NewRegistry returns an audio.Registry with both decoders bound to their
// file extensions.
package audec
