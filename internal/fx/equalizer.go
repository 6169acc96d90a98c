package fx

import (
	"math"

	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/biquad"
	"github.com/cbegin/auxfx/internal/bus"
)

// eqChannel holds the four cascaded bands for one of the four B-format
// lanes.
type eqChannel struct {
	low, mid1, mid2, high *biquad.Filter
}

func newEQChannel() *eqChannel {
	return &eqChannel{
		low:  biquad.NewPassthrough(),
		mid1: biquad.NewPassthrough(),
		mid2: biquad.NewPassthrough(),
		high: biquad.NewPassthrough(),
	}
}

func (c *eqChannel) process(n int, buf []float32) {
	c.low.Process(n, buf, buf)
	c.mid1.Process(n, buf, buf)
	c.mid2.Process(n, buf, buf)
	c.high.Process(n, buf, buf)
}

func (c *eqChannel) reset() {
	c.low.Reset()
	c.mid1.Reset()
	c.mid2.Reset()
	c.high.Reset()
}

// equalizerEffect is the 4-band cascaded equalizer:
// low-shelf, two peaking bands, and a high-shelf per B-format lane,
// mixed back out through the identity first-order matrix.
type equalizerEffect struct {
	channels [4]*eqChannel
	mixer    *channelMixer
}

func newEqualizer() *equalizerEffect {
	e := &equalizerEffect{}
	for i := range e.channels {
		e.channels[i] = newEQChannel()
	}
	return e
}

func (e *equalizerEffect) UpdateDevice(sampleRate, channelCount int, dec *ambisonic.Decoder) {
	e.mixer = newIdentityMixer(dec)
}

func (e *equalizerEffect) Update(sampleRate int, p *Props) {
	sr := float64(sampleRate)
	eq := p.Equalizer

	lowA, highA := math.Sqrt(eq.LowGain), math.Sqrt(eq.HighGain)

	for _, c := range e.channels {
		c.low.Set(biquad.LowShelf, lowA, eq.LowCutoff/sr, biquad.ReciprocalQFromSlope(lowA, 0.75))
		c.high.Set(biquad.HighShelf, highA, eq.HighCutoff/sr, biquad.ReciprocalQFromSlope(highA, 0.75))

		mid1Freq := eq.Mid1Center / sr
		c.mid1.Set(biquad.Peaking, eq.Mid1Gain, mid1Freq, biquad.ReciprocalQFromBandwidth(eq.Mid1Width, 2*math.Pi*mid1Freq))

		mid2Freq := eq.Mid2Center / sr
		c.mid2.Set(biquad.Peaking, eq.Mid2Gain, mid2Freq, biquad.ReciprocalQFromBandwidth(eq.Mid2Width, 2*math.Pi*mid2Freq))
	}
}

func (e *equalizerEffect) Reset() {
	for _, c := range e.channels {
		c.reset()
	}
}

func (e *equalizerEffect) Process(n int, wet bus.Wet, dry bus.Dry) {
	for i, c := range e.channels {
		c.process(n, wet[i])
	}
	e.mixer.Mix(n, wet, dry)
}
