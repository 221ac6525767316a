// SPDX-License-Identifier: EPL-2.0

package wav

var imaStepTable = [89]int32{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17,
	19, 21, 23, 25, 28, 31, 34, 37, 41, 45,
	50, 55, 60, 66, 73, 80, 88, 97, 107, 118,
	130, 143, 157, 173, 190, 209, 230, 253, 279, 307,
	337, 371, 408, 449, 494, 544, 598, 658, 724, 796,
	876, 963, 1060, 1166, 1282, 1411, 1552, 1707, 1878, 2066,
	2272, 2499, 2749, 3024, 3327, 3660, 4026, 4428, 4871, 5358,
	5894, 6484, 7132, 7845, 8630, 9493, 10442, 11487, 12635, 13899,
	15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794, 32767,
}

var imaIndexTable = [16]int32{-1, -1, -1, -1, 2, 4, 6, 8, -1, -1, -1, -1, 2, 4, 6, 8}

// adpcmChannel is the IMA predictor state of one channel. It is reset by
// every block header.
type adpcmChannel struct {
	sample int32
	index  int32
}

// decode applies one 4-bit code and returns the new sample.
func (c *adpcmChannel) decode(code byte) int32 {
	step := imaStepTable[c.index]
	delta := step >> 3
	if code&4 != 0 {
		delta += step
	}
	if code&2 != 0 {
		delta += step >> 1
	}
	if code&1 != 0 {
		delta += step >> 2
	}
	if code&8 != 0 {
		delta = -delta
	}

	c.index = min(88, max(0, c.index+imaIndexTable[code&0xF]))
	c.sample = min(32767, max(-32768, c.sample+delta))
	return c.sample
}

// adpcmLayout describes the block geometry of an IMA-ADPCM stream.
type adpcmLayout struct {
	channels        int
	blockAlign      int
	samplesPerBlock int
}

func newADPCMLayout(f Format) adpcmLayout {
	ch := f.Channels
	spb := f.SamplesPerBlock
	align := f.BlockAlign

	if spb <= 0 && align > 4*ch {
		spb = (align-4*ch)*2/ch + 1
	}
	if align <= 0 {
		align = 4*ch + (spb-1)*ch/2
	}
	return adpcmLayout{channels: ch, blockAlign: align, samplesPerBlock: spb}
}

// sampleCount derives the per-channel sample count from the payload size.
// A trailing partial block contributes its header sample plus whatever
// whole codes follow; with more than one channel only complete groups of
// eight codes count, since channels are interleaved in 4-byte groups.
func (l adpcmLayout) sampleCount(dataLen int) int {
	if l.blockAlign <= 0 || l.channels <= 0 {
		return 0
	}
	blocks := dataLen / l.blockAlign
	rem := dataLen % l.blockAlign

	n := blocks * l.samplesPerBlock
	if rem >= 4*l.channels {
		body := (rem - 4*l.channels) * 2 / l.channels
		if l.channels > 1 {
			body -= body % 8
		}
		n += min(l.samplesPerBlock, 1+body)
	}
	return n
}

// decodeBlock decodes one block (possibly truncated) and calls emit for
// every output sample with its channel and index within the block. It
// returns the per-channel number of samples produced.
func (l adpcmLayout) decodeBlock(block []byte, emit func(ch, i int, v float32)) int {
	nch := l.channels
	if len(block) < 4*nch {
		return 0
	}

	var state [maxADPCMChannels]adpcmChannel
	for c := range nch {
		h := block[4*c:]
		state[c].sample = int32(int16(uint16(h[0]) | uint16(h[1])<<8))
		state[c].index = min(88, int32(h[2]))
		emit(c, 0, float32(state[c].sample)/32768)
	}
	body := block[4*nch:]
	produced := 1

	if nch == 1 {
		for _, b := range body {
			for _, code := range [2]byte{b & 0xF, b >> 4} {
				if produced >= l.samplesPerBlock {
					return produced
				}
				emit(0, produced, float32(state[0].decode(code))/32768)
				produced++
			}
		}
		return produced
	}

	group := 4 * nch
	for off := 0; off+group <= len(body) && produced+8 <= l.samplesPerBlock; off += group {
		for c := range nch {
			chunk := body[off+4*c : off+4*c+4]
			for k, b := range chunk {
				emit(c, produced+2*k, float32(state[c].decode(b&0xF))/32768)
				emit(c, produced+2*k+1, float32(state[c].decode(b>>4))/32768)
			}
		}
		produced += 8
	}
	return produced
}

const maxADPCMChannels = 8
