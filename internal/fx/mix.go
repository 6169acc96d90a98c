package fx

import (
	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/bus"
)

// identityMatrix is the 4x4 unit first-order transform (each lane routed
// straight through, identity rows), used by the Compressor, Equalizer,
// and Ring modulator.
var identityMatrix = [4][4]float64{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}

// channelMixer routes up to 4 first-order ambisonic lanes back into the
// speaker layout, one precomputed gain vector per lane (row of a 4×4
// transform matrix). The identity matrix gives the "unit 4×4 matrix"
// mixing shared by the Compressor, Equalizer, and Ring modulator; the
// Reverb builds its own transform per pan vector instead.
type channelMixer struct {
	gains [4][]float64 // gains[k][i]: contribution of lane k into output channel i
}

func newChannelMixer(dec *ambisonic.Decoder, rows [4][4]float64, gain float64) *channelMixer {
	m := &channelMixer{}
	n := dec.ChannelCount()
	for k := 0; k < 4; k++ {
		m.gains[k] = make([]float64, n)
		dec.FirstOrderGains(rows[k], gain, m.gains[k])
	}
	return m
}

func newIdentityMixer(dec *ambisonic.Decoder) *channelMixer {
	return newChannelMixer(dec, identityMatrix, 1.0)
}

// Mix adds sum_k src[k][t] * gains[k][i] into dry[i][t] for each output
// channel i and sample t in [0, n).
func (m *channelMixer) Mix(n int, src bus.Wet, dry bus.Dry) {
	for i := range dry {
		g0, g1, g2, g3 := m.gains[0][i], m.gains[1][i], m.gains[2][i], m.gains[3][i]
		if g0 == 0 && g1 == 0 && g2 == 0 && g3 == 0 {
			continue
		}
		out := dry[i]
		s0, s1, s2, s3 := src[0], src[1], src[2], src[3]
		for t := 0; t < n; t++ {
			out[t] += float32(float64(s0[t])*g0 + float64(s1[t])*g1 + float64(s2[t])*g2 + float64(s3[t])*g3)
		}
	}
}
