package fx

import (
	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/bus"
	"github.com/cbegin/auxfx/internal/chformat"
)

// dedicatedEffect is a single-channel pass-through that
// routes the wet bus's mono lane straight to whichever output channel
// carries dialog (front center) or low-frequency effects. If the target
// speaker is absent, LFE is silent but dialog falls back to panning at
// azimuth 0, elevation 0, spread 0.
type dedicatedEffect struct {
	target   DedicatedTarget
	gain     float64
	speakers []chformat.Speaker
	panner   *monoPanner

	channel int // output channel index, or -1 if routed through panner instead
}

func newDedicated() *dedicatedEffect {
	return &dedicatedEffect{channel: -1, gain: 1}
}

func (e *dedicatedEffect) UpdateDevice(sampleRate, channelCount int, dec *ambisonic.Decoder) {
	e.speakers = dec.Speakers()
	e.panner = newMonoPanner(dec)
	e.resolve()
}

func (e *dedicatedEffect) Update(sampleRate int, p *Props) {
	e.target = p.Dedicated.Target
	e.gain = p.Dedicated.Gain
	e.resolve()
}

func (e *dedicatedEffect) resolve() {
	e.channel = -1
	want := chformat.FrontCenter
	if e.target == DedicatedLowFrequency {
		want = chformat.LFE
	}
	for i, sp := range e.speakers {
		if sp == want {
			e.channel = i
			return
		}
	}
	if e.target == DedicatedDialog {
		e.panner.SetDirection(0, 0, 0, e.gain)
	}
}

func (e *dedicatedEffect) Reset() {}

func (e *dedicatedEffect) Process(n int, wet bus.Wet, dry bus.Dry) {
	src := wet[0]
	if e.channel >= 0 {
		if e.channel < len(dry) {
			out := dry[e.channel]
			for t := 0; t < n; t++ {
				out[t] += float32(float64(src[t]) * e.gain)
			}
		}
		return
	}
	if e.target == DedicatedDialog {
		e.panner.Add(n, src, dry)
	}
}
