package fx

import (
	"math"

	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/bus"
	"github.com/cbegin/auxfx/internal/delayline"
)

// chorusEffect is the shared Chorus/Flanger topology: two modulated
// delay lines, one LFO driving both (with a configurable
// phase offset between them), panned hard left and right.
type chorusEffect struct {
	maxDelay   float64 // base max delay, seconds (0.016 chorus, 0.004 flanger)
	isFlanger  bool
	sampleRate float64

	left, right *delayline.Line
	pannerL, pannerR *monoPanner

	waveform    Waveform
	feedback    float64
	amp         float64 // modulation amplitude, in samples
	lfoRange    float64 // samples per LFO cycle
	phaseOffset float64 // samples, right relative to left
	phaseL      float64
}

func newChorusFlanger(maxDelay float64, isFlanger bool) *chorusEffect {
	return &chorusEffect{maxDelay: maxDelay, isFlanger: isFlanger, lfoRange: 1}
}

func (e *chorusEffect) UpdateDevice(sampleRate, channelCount int, dec *ambisonic.Decoder) {
	e.sampleRate = float64(sampleRate)
	minLen := int(math.Ceil(e.maxDelay*2*e.sampleRate)) + 1
	e.left = delayline.New(minLen)
	e.right = delayline.New(minLen)

	e.pannerL = newMonoPanner(dec)
	e.pannerL.SetDirection(-math.Pi/2, 0, 0, 1)
	e.pannerR = newMonoPanner(dec)
	e.pannerR.SetDirection(math.Pi/2, 0, 0, 1)
}

func (e *chorusEffect) Update(sampleRate int, p *Props) {
	cp := p.Chorus
	if e.isFlanger {
		cp = p.Flanger
	}

	e.sampleRate = float64(sampleRate)
	e.waveform = cp.Waveform
	e.feedback = cp.Feedback

	maxDelaySamples := e.maxDelay * e.sampleRate
	e.amp = cp.Depth * maxDelaySamples

	rate := math.Max(cp.RateHz, 1e-6)
	e.lfoRange = e.sampleRate / rate
	e.phaseOffset = cp.PhaseDeg / 360 * e.lfoRange
}

func (e *chorusEffect) Reset() {
	e.left.Reset()
	e.right.Reset()
	e.phaseL = 0
}

func (e *chorusEffect) modulate(phase float64) int {
	p := math.Mod(phase, e.lfoRange)
	if p < 0 {
		p += e.lfoRange
	}

	var f float64
	if e.waveform == WaveSine {
		f = math.Sin(2 * math.Pi * p / e.lfoRange)
	} else {
		f = 1 - math.Abs(2-4*p/e.lfoRange)
	}

	delaySamples := f*e.amp + e.amp
	return int(math.Round(delaySamples))
}

func (e *chorusEffect) Process(n int, wet bus.Wet, dry bus.Dry) {
	src := wet[0]
	for t := 0; t < n; t++ {
		in := src[t]

		dL := e.modulate(e.phaseL)
		dR := e.modulate(e.phaseL + e.phaseOffset)

		tapL := e.left.At(dL)
		tapR := e.right.At(dR)

		e.left.Write(in + float32(e.feedback)*tapL)
		e.right.Write(in + float32(e.feedback)*tapR)

		for i, g := range e.pannerL.gains {
			if g != 0 {
				dry[i][t] += float32(float64(tapL) * g)
			}
		}
		for i, g := range e.pannerR.gains {
			if g != 0 {
				dry[i][t] += float32(float64(tapR) * g)
			}
		}

		e.phaseL++
		if e.phaseL >= e.lfoRange {
			e.phaseL -= e.lfoRange
		}
	}
}
