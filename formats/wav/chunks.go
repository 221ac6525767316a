// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"github.com/sirupsen/logrus"

	"github.com/ik5/audec/internal/bytesource"
)

// Chunk is one RIFF sub-chunk. Offset is where its payload starts in the
// file; Size is the payload length, clamped to the bytes actually present.
type Chunk struct {
	ID           string
	Offset       int
	Size         int
	DeclaredSize uint32
}

// readHeader validates the 12-byte RIFF/WAVE header.
func readHeader(s *bytesource.Source, log logrus.FieldLogger) error {
	s.SetPosition(0)
	s.SetLittleEndian(true)

	if s.ReadString(4) != "RIFF" {
		return ErrNotWavFile
	}
	declared := int64(s.ReadUint32())
	if s.ReadString(4) != "WAVE" {
		return ErrNotWavFile
	}
	if declared+8 != int64(s.Len()) {
		log.WithFields(logrus.Fields{
			"declared": declared + 8,
			"actual":   s.Len(),
		}).Debug("bad RIFF size; ignoring")
	}
	return nil
}

// scanChunks walks the sub-chunks following the RIFF header. Odd-sized
// chunks are followed by a pad byte when one is present.
func scanChunks(s *bytesource.Source) []Chunk {
	var chunks []Chunk

	s.SetPosition(12)
	for s.Available() >= 8 {
		id := s.ReadString(4)
		declared := s.ReadUint32()
		size := int(min(int64(declared), int64(s.Available())))

		chunks = append(chunks, Chunk{
			ID:           id,
			Offset:       s.Position(),
			Size:         size,
			DeclaredSize: declared,
		})

		s.Skip(size)
		if size%2 == 1 && s.Available() > 0 {
			s.Skip(1)
		}
	}
	return chunks
}

// findChunk returns the first chunk with the given id.
func findChunk(chunks []Chunk, id string) (Chunk, bool) {
	for _, c := range chunks {
		if c.ID == id {
			return c, true
		}
	}
	return Chunk{}, false
}
