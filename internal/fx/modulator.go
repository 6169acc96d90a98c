package fx

import (
	"math"

	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/biquad"
	"github.com/cbegin/auxfx/internal/bus"
)

// q824One is 2^24, the fixed-point unit for the ring modulator's Q8.24
// phase accumulator.
const q824One = 1 << 24

// modulatorEffect is the ring modulator: a per-channel
// custom one-pole high-pass followed by multiplication against a shared
// carrier waveform, advanced with a Q8.24 fixed-point phase step.
type modulatorEffect struct {
	highpass [4]*biquad.Filter
	mixer    *channelMixer

	waveform Waveform
	step     uint32
	index    uint32
}

func newModulator() *modulatorEffect {
	m := &modulatorEffect{}
	for i := range m.highpass {
		m.highpass[i] = biquad.NewPassthrough()
	}
	return m
}

func (e *modulatorEffect) UpdateDevice(sampleRate, channelCount int, dec *ambisonic.Decoder) {
	e.mixer = newIdentityMixer(dec)
}

func (e *modulatorEffect) Update(sampleRate int, p *Props) {
	e.waveform = p.Modulator.Waveform

	omega := 2 * math.Pi * p.Modulator.HighpassCutoff / float64(sampleRate)
	twoMinusCos := 2 - math.Cos(omega)
	a := twoMinusCos - math.Sqrt(twoMinusCos*twoMinusCos-1)
	for _, f := range e.highpass {
		f.SetCoefficients(a, -a, 0, -a, 0)
	}

	step := p.Modulator.FrequencyHz * q824One / float64(sampleRate)
	e.step = uint32(math.Max(1, step))
}

func (e *modulatorEffect) Reset() {
	for _, f := range e.highpass {
		f.Reset()
	}
	e.index = 0
}

func (e *modulatorEffect) carrier() float64 {
	switch e.waveform {
	case WaveSaw:
		return float64(e.index) / q824One
	case WaveSquare:
		return float64((e.index >> 23) & 1)
	default:
		return 0.5 + 0.5*math.Sin(2*math.Pi*float64(e.index)/q824One-math.Pi)
	}
}

func (e *modulatorEffect) Process(n int, wet bus.Wet, dry bus.Dry) {
	for t := 0; t < n; t++ {
		w := e.carrier()
		for ch := 0; ch < 4; ch++ {
			x := e.highpass[ch].ProcessSample(wet[ch][t])
			wet[ch][t] = x * float32(w)
		}
		e.index += e.step
	}
	e.mixer.Mix(n, wet, dry)
}
