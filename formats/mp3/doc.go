// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Audio Layer III streams held in memory.
//
// The decoder is a complete Layer III pipeline: frame scanning (ID3v2 and
// ID3v1 tags are skipped), side information, the bit reservoir, Huffman
// decoding, requantization, joint stereo, reordering, antialiasing, the
// IMDCT and the polyphase synthesis filter bank. MPEG-2 and MPEG-2.5 (LSF)
// streams and layers I and II are rejected with ErrUnsupportedVersion or
// ErrUnsupportedLayer.
//
// # Incremental decoding
//
// StreamDecoder implements audio.StepDecoder. Start indexes every frame,
// SetChannels binds caller-owned buffers and each Step decodes whole frames
// until its time budget runs out:
//
//	d := mp3.NewStreamDecoder(data, audio.DefaultConfig())
//	info, err := d.Start()
//	if err != nil {
//	    // not an MP3 stream, or not MPEG-1 Layer III
//	}
//	out := [][]float32{make([]float32, info.TotalSamples), make([]float32, info.TotalSamples)}
//	d.SetChannels(out[:info.Channels])
//	for !d.Finished() {
//	    d.Step(10 * time.Millisecond)
//	}
//
// Frames whose main data begins before the retained reservoir history (the
// first frames of a stream cut from a longer one) are skipped and left
// silent. Granules with corrupt Huffman data are zero-filled. Both are
// logged and counted in Stats; neither fails the decode.
//
// # Sources
//
// Decoder wraps StreamDecoder as an audio.Source for the resampling
// pipeline of the audio package. ReferenceDecoder does the same with
// github.com/hajimehoshi/go-mp3 and is used to compare the two.
//
// Output samples are truncated to 16-bit precision and scaled by 1/32768,
// so they fall in [-1, 1).
package mp3
