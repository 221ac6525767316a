// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ik5/audec/audio"
	"github.com/ik5/audec/internal/audiotest"
)

// randomStream builds frames at 320 kbit/s whose main data is random bits.
// Every granule gets 2000 bits, and bigValues is kept low enough that the
// big-value pairs of any table fit in them.
func randomStream(r *rand.Rand, frames int, f audiotest.MP3Frame, g audiotest.Granule, scfsi bool) []byte {
	f.BitrateIndex = 14
	g.Part23Length = 2000

	out := make([]audiotest.MP3Frame, frames)
	for i := range out {
		fr := f
		for gr := range 2 {
			for ch := range fr.Channels() {
				fr.Granules[gr][ch] = g
			}
		}
		if scfsi {
			fr.Scfsi = [2][4]int{{1, 0, 1, 1}, {0, 1, 1, 0}}
		}

		h := Header(fr.Header())
		main := make([]byte, fr.Size()-4-h.SideInfoSize())
		for j := range main {
			main[j] = byte(r.Uint32())
		}
		fr.MainData = main
		out[i] = fr
	}
	return audiotest.MP3Stream(out...)
}

func TestDecoder_MatchesReference(t *testing.T) {
	t.Parallel()

	const tolerance = 2.0 / 32768

	long := func(tables [3]int, bigValues, gain int) audiotest.Granule {
		return audiotest.Granule{
			BigValues:    bigValues,
			GlobalGain:   gain,
			TableSelect:  tables,
			Region0Count: 3,
			Region1Count: 3,
		}
	}
	switched := func(blockType int, mixed bool, tables [2]int, bigValues, gain int) audiotest.Granule {
		return audiotest.Granule{
			BigValues:       bigValues,
			GlobalGain:      gain,
			WindowSwitching: true,
			BlockType:       blockType,
			MixedBlock:      mixed,
			TableSelect:     [3]int{tables[0], tables[1]},
			SubblockGain:    [3]int{1, 0, 2},
		}
	}
	withScalefactors := func(g audiotest.Granule, compress, preflag, scale int) audiotest.Granule {
		g.ScalefacCompress = compress
		g.Preflag = preflag
		g.ScalefacScale = scale
		return g
	}
	withCount1 := func(g audiotest.Granule) audiotest.Granule {
		g.Count1TableSelect = 1
		return g
	}

	tests := []struct {
		name    string
		frame   audiotest.MP3Frame
		granule audiotest.Granule
		scfsi   bool
	}{
		{"mono long small tables", audiotest.MP3Frame{Mode: ModeMono}, long([3]int{1, 2, 3}, 60, 200), false},
		{"mono long count1 B", audiotest.MP3Frame{Mode: ModeMono}, withCount1(long([3]int{5, 7, 13}, 60, 180)), false},
		{"mono scalefactors and preflag", audiotest.MP3Frame{Mode: ModeMono},
			withScalefactors(long([3]int{6, 9, 12}, 60, 185), 9, 1, 1), true},
		{"stereo long linbits", audiotest.MP3Frame{Mode: ModeStereo}, long([3]int{16, 24, 31}, 36, 140), false},
		{"stereo scalefactors linbits", audiotest.MP3Frame{Mode: ModeStereo},
			withScalefactors(long([3]int{10, 19, 27}, 36, 140), 14, 0, 0), true},
		{"joint mid/side long", audiotest.MP3Frame{Mode: ModeJointStereo, ModeExt: 2},
			long([3]int{11, 15, 22}, 36, 145), false},
		{"joint mid/side start block", audiotest.MP3Frame{Mode: ModeJointStereo, ModeExt: 2},
			switched(1, false, [2]int{2, 18}, 36, 175), false},
		{"mono short blocks", audiotest.MP3Frame{Mode: ModeMono}, switched(2, false, [2]int{6, 9}, 60, 185), false},
		{"stereo short blocks linbits", audiotest.MP3Frame{Mode: ModeStereo},
			withScalefactors(switched(2, false, [2]int{13, 25}, 36, 170), 7, 0, 1), false},
		{"stereo mixed blocks", audiotest.MP3Frame{Mode: ModeStereo},
			withCount1(switched(2, true, [2]int{11, 12}, 60, 185)), false},
		{"mono start block", audiotest.MP3Frame{Mode: ModeMono}, switched(1, false, [2]int{8, 20}, 36, 170), false},
		{"mono stop block", audiotest.MP3Frame{Mode: ModeMono},
			withScalefactors(switched(3, false, [2]int{13, 17}, 36, 175), 3, 1, 0), false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := rand.New(rand.NewPCG(uint64(i), 0x6d7033))
			data := randomStream(r, 5, tt.frame, tt.granule, tt.scfsi)

			log, _ := test.NewNullLogger()
			cfg := audio.DefaultConfig()
			cfg.Logger = log

			ours, err := Decoder{Config: &cfg}.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			ref, err := ReferenceDecoder{}.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("reference Decode() error = %v", err)
			}
			if ours.Channels() == 1 {
				ref = audio.NewMonoMixer(ref)
			}

			got := readAll(t, ours, 4096)
			want := readAll(t, ref, 4096)

			n := min(len(got), len(want))
			if n < 4*frameSamples*ours.Channels() {
				t.Fatalf("compared %d samples (ours %d, reference %d), want at least 4 frames", n, len(got), len(want))
			}
			if p := peak(got[:n]); p < 1e-3 {
				t.Fatalf("peak = %v, want audible content", p)
			}

			var worst float64
			at := 0
			for j := range n {
				if d := math.Abs(float64(got[j]) - float64(want[j])); d > worst {
					worst, at = d, j
				}
			}
			if worst > tolerance {
				t.Errorf("max |diff| = %v at sample %d (ours %v, reference %v), want <= %v",
					worst, at, got[at], want[at], tolerance)
			}
		})
	}
}
