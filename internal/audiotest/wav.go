// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// Chunk is one RIFF chunk for RIFF.
type Chunk struct {
	ID   string
	Data []byte
}

// RIFF assembles a RIFF file of the given form type. Odd sized chunks get a
// pad byte.
func RIFF(form string, chunks ...Chunk) []byte {
	var body bytes.Buffer
	body.WriteString(form)
	for _, c := range chunks {
		body.WriteString(c.ID)
		_ = binary.Write(&body, binary.LittleEndian, uint32(len(c.Data)))
		body.Write(c.Data)
		if len(c.Data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	var out bytes.Buffer
	out.WriteString("RIFF")
	_ = binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

// Fmt builds a plain 16-byte fmt chunk.
func Fmt(tag uint16, channels, sampleRate, bitsPerSample int) Chunk {
	align := channels * bitsPerSample / 8
	return fmtChunk(tag, channels, sampleRate, align, bitsPerSample, nil)
}

// FmtADPCM builds an IMA ADPCM fmt chunk with its samples-per-block
// extension.
func FmtADPCM(channels, sampleRate, blockAlign, samplesPerBlock int) Chunk {
	ext := binary.LittleEndian.AppendUint16(nil, 2)
	ext = binary.LittleEndian.AppendUint16(ext, uint16(samplesPerBlock))
	return fmtChunk(0x11, channels, sampleRate, blockAlign, 4, ext)
}

// FmtExtensible builds a WAVE_FORMAT_EXTENSIBLE fmt chunk whose SubFormat
// GUID starts with subFormat.
func FmtExtensible(subFormat uint16, channels, sampleRate, bitsPerSample, validBits int, mask uint32) Chunk {
	ext := binary.LittleEndian.AppendUint16(nil, 22)
	ext = binary.LittleEndian.AppendUint16(ext, uint16(validBits))
	ext = binary.LittleEndian.AppendUint32(ext, mask)
	ext = binary.LittleEndian.AppendUint16(ext, subFormat)
	ext = append(ext, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71)
	align := channels * bitsPerSample / 8
	return fmtChunk(0xFFFE, channels, sampleRate, align, bitsPerSample, ext)
}

func fmtChunk(tag uint16, channels, sampleRate, blockAlign, bitsPerSample int, ext []byte) Chunk {
	b := binary.LittleEndian.AppendUint16(nil, tag)
	b = binary.LittleEndian.AppendUint16(b, uint16(channels))
	b = binary.LittleEndian.AppendUint32(b, uint32(sampleRate))
	b = binary.LittleEndian.AppendUint32(b, uint32(sampleRate*blockAlign))
	b = binary.LittleEndian.AppendUint16(b, uint16(blockAlign))
	b = binary.LittleEndian.AppendUint16(b, uint16(bitsPerSample))
	return Chunk{ID: "fmt ", Data: append(b, ext...)}
}

// Fact builds a fact chunk holding a per-channel sample count.
func Fact(samples uint32) Chunk {
	return Chunk{ID: "fact", Data: binary.LittleEndian.AppendUint32(nil, samples)}
}

// Data wraps a payload.
func Data(b []byte) Chunk { return Chunk{ID: "data", Data: b} }

// PCM16 encodes interleaved samples little endian.
func PCM16(samples ...int16) []byte {
	b := make([]byte, 0, 2*len(samples))
	for _, s := range samples {
		b = binary.LittleEndian.AppendUint16(b, uint16(s))
	}
	return b
}
