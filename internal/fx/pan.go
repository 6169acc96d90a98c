package fx

import (
	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/bus"
)

// monoPanner routes a single mono tap into the speaker layout at a
// fixed (azimuth, elevation, spread) direction. Several effects
// (Chorus/Flanger's two taps, Echo's two taps, Distortion's single
// ambient output, Dedicated's fallback) each own one or more of these.
type monoPanner struct {
	dec   *ambisonic.Decoder
	gains []float64
}

func newMonoPanner(dec *ambisonic.Decoder) *monoPanner {
	return &monoPanner{dec: dec, gains: make([]float64, dec.ChannelCount())}
}

// SetDirection recomputes the cached per-channel gains for a new
// direction. Called from Update, not from the per-block Process path.
func (p *monoPanner) SetDirection(azimuth, elevation, spread, gain float64) {
	c := ambisonic.FromAngle(azimuth, elevation, spread)
	p.dec.PanningGains(c, gain, p.gains)
}

// Add mixes src[0:n] into dry using the cached direction gains.
func (p *monoPanner) Add(n int, src []float32, dry bus.Dry) {
	for i, g := range p.gains {
		if g == 0 {
			continue
		}
		out := dry[i]
		for t := 0; t < n; t++ {
			out[t] += float32(float64(src[t]) * g)
		}
	}
}
