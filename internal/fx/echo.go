package fx

import (
	"math"

	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/biquad"
	"github.com/cbegin/auxfx/internal/bus"
	"github.com/cbegin/auxfx/internal/delayline"
)

// echoMaxDelay and echoMaxLRDelay bound the shared delay line's length;
// they match the clamp ranges on EchoProps.Delay / EchoProps.LRDelay.
const (
	echoMaxDelay   = 0.207
	echoMaxLRDelay = 0.404
)

// echoEffect is the two-tap echo: a single shared delay
// line read at two offsets, with a high-shelf damping filter on the
// feedback path and each tap panned to a spread-dependent direction.
type echoEffect struct {
	line *delayline.Line

	tap1, tap2 int
	feedback   float64
	damping    *biquad.Filter

	panner1, panner2 *monoPanner
}

func newEcho() *echoEffect {
	return &echoEffect{damping: biquad.NewPassthrough(), tap1: 1, tap2: 1}
}

func (e *echoEffect) UpdateDevice(sampleRate, channelCount int, dec *ambisonic.Decoder) {
	maxLen := int(math.Ceil((echoMaxDelay+echoMaxLRDelay)*float64(sampleRate))) + 1
	e.line = delayline.New(maxLen)
	e.panner1 = newMonoPanner(dec)
	e.panner2 = newMonoPanner(dec)
}

func (e *echoEffect) Update(sampleRate int, p *Props) {
	sr := float64(sampleRate)
	e.tap1 = int(math.Ceil(p.Echo.Delay*sr)) + 1
	e.tap2 = e.tap1 + int(math.Ceil(p.Echo.LRDelay*sr))
	e.feedback = p.Echo.Feedback

	dampGain := math.Max(1-p.Echo.Damping, 0.0625)
	dampFreq := 5000 / sr
	e.damping.Set(biquad.HighShelf, dampGain, dampFreq, biquad.ReciprocalQFromSlope(dampGain, 1))

	lrpan := 1.0
	if p.Echo.Spread < 0 {
		lrpan = -1.0
	}
	sigma := math.Asin(1-math.Abs(p.Echo.Spread)) * 4
	e.panner1.SetDirection(-math.Pi/2*lrpan, 0, sigma, 1)
	e.panner2.SetDirection(math.Pi/2*lrpan, 0, sigma, 1)
}

func (e *echoEffect) Reset() {
	e.line.Reset()
	e.damping.Reset()
}

func (e *echoEffect) Process(n int, wet bus.Wet, dry bus.Dry) {
	src := wet[0]
	for t := 0; t < n; t++ {
		in := src[t]
		tap1 := e.line.At(e.tap1)
		tap2 := e.line.At(e.tap2)

		damped := e.damping.ProcessSample(tap2 + in)
		e.line.Write(damped * float32(e.feedback))

		for i, g := range e.panner1.gains {
			if g != 0 {
				dry[i][t] += float32(float64(tap1) * g)
			}
		}
		for i, g := range e.panner2.gains {
			if g != 0 {
				dry[i][t] += float32(float64(tap2) * g)
			}
		}
	}
}
