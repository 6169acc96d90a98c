package fx

import (
	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/bus"
)

// compressorEffect is the four-channel B-format compressor: a single
// scalar gain_control tracks a coarse amplitude estimate
// of the W/X/Y/Z lanes and rides up fast, down slow.
type compressorEffect struct {
	onOff bool

	attack  float64
	release float64
	gain    float64 // gain_control, starts at 1

	mixer *channelMixer
}

func newCompressor() *compressorEffect {
	return &compressorEffect{onOff: true, gain: 1}
}

func (e *compressorEffect) UpdateDevice(sampleRate, channelCount int, dec *ambisonic.Decoder) {
	e.mixer = newIdentityMixer(dec)
}

func (e *compressorEffect) Update(sampleRate int, p *Props) {
	e.onOff = p.Compressor.OnOff
	e.attack = 1.0 / (0.2 * float64(sampleRate))
	e.release = 1.0 / (0.4 * float64(sampleRate))
}

func (e *compressorEffect) Reset() {
	e.gain = 1
}

func (e *compressorEffect) Process(n int, wet bus.Wet, dry bus.Dry) {
	w, x, y, z := wet[0], wet[1], wet[2], wet[3]
	for t := 0; t < n; t++ {
		x0, x1, x2, x3 := float64(w[t]), float64(x[t]), float64(y[t]), float64(z[t])

		var amplitude float64
		if e.onOff {
			amplitude = absF(x0) + absF(x1)
			if v := absF(x0) + absF(x2); v > amplitude {
				amplitude = v
			}
			if v := absF(x0) + absF(x3); v > amplitude {
				amplitude = v
			}
		} else {
			amplitude = 1
		}

		if amplitude > e.gain {
			e.gain += e.attack
			if e.gain > amplitude {
				e.gain = amplitude
			}
		} else {
			e.gain -= e.release
			if e.gain < amplitude {
				e.gain = amplitude
			}
		}

		g := 1.0 / clampF(e.gain, 0.5, 2.0)
		w[t] = float32(x0 * g)
		x[t] = float32(x1 * g)
		y[t] = float32(x2 * g)
		z[t] = float32(x3 * g)
	}

	e.mixer.Mix(n, wet, dry)
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
