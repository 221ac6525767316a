// SPDX-License-Identifier: EPL-2.0

// Package audio holds the types shared by the decoders and the processing
// pipeline built on top of them.
//
// # Decoding contract
//
// A StepDecoder decodes an in-memory stream into caller-owned per-channel
// buffers, a bounded slice of work at a time:
//
//	info, err := dec.Start()
//	...
//	dec.SetChannels(buffers)
//	for !dec.Finished() {
//	    progress, err := dec.Step(10 * time.Millisecond)
//	    ...
//	}
//
// Every Step does at least one unit of work (a frame, a block or a run of
// PCM samples) and then continues until the budget is used. Errors come in
// two kinds: ErrFormat for malformed input and ErrUnsupportedFormat for
// well-formed input this module does not decode. Format packages wrap
// them with their own sentinels, so errors.Is works on either level.
//
// Config carries the logger, the default step budget and an optional
// clock for tests.
//
// # Sources
//
// Source is the pull-style interface of the processing pipeline: interleaved
// float32 samples in [-1, 1]. StepSource adapts any StepDecoder into a
// Source, stepping it on demand. Resampler changes the sample rate with
// cubic interpolation and MonoMixer averages channels down to one:
//
//	r, err := audio.NewResampler(src, 16000)
//	...
//	samples, err := audio.ReadAll(audio.NewMonoMixer(r), 4096)
//
// A Registry maps format names and file extensions to Decoders.
package audio
