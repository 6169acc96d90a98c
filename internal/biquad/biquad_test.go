package biquad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestLowPassAttenuatesHighFrequency(t *testing.T) {
	f := &Filter{}
	f.Set(LowPass, 1.0, 0.01, 1.0)
	// Feed a near-Nyquist alternating signal; steady-state amplitude should
	// be heavily attenuated relative to a 0 Hz (DC) input.
	var maxAC float32
	in := []float32{1, -1}
	out := make([]float32, 2)
	for i := 0; i < 500; i++ {
		f.Process(2, in, out)
		if v := float32(math.Abs(float64(out[1]))); v > maxAC {
			maxAC = v
		}
	}
	assert.Less(t, maxAC, float32(0.2))
}

func TestPassthroughIsIdentity(t *testing.T) {
	f := NewPassthrough()
	f.Set(Passthrough, 1, 0.1, 1)
	in := []float32{0.1, -0.5, 0.9, 0}
	out := make([]float32, len(in))
	f.Process(len(in), in, out)
	assert.Equal(t, in, out)
}

func TestProcessPassthroughRecordsHistory(t *testing.T) {
	a := NewPassthrough()
	b := NewPassthrough()
	a.Set(Passthrough, 1, 0.1, 1)
	b.Set(LowPass, 1, 0.1, 1)
	in := []float32{1, 0, 0, 0}
	a.ProcessPassthrough(len(in), in)
	// process_passthrough leaves the last input sample in the x history
	assert.Equal(t, float64(in[len(in)-1]), a.x1)
}

func TestCopyParamsCopiesCoefficientsNotHistory(t *testing.T) {
	src := &Filter{}
	src.Set(Peaking, 2.0, 0.1, 1.0)
	src.Process(1, []float32{1}, make([]float32, 1))

	dst := &Filter{}
	dst.x1 = 99
	CopyParams(dst, src)
	assert.Equal(t, src.b0, dst.b0)
	assert.Equal(t, src.a1, dst.a1)
	assert.Equal(t, float64(99), dst.x1, "CopyParams must not touch history")
}

// Peaking's alpha-scaling must use sqrt(gain), not gain, matching the
// Audio EQ Cookbook formula: b0/a0 = (1+alpha*sqrtGain)/(1+alpha/sqrtGain).
func TestPeakingUsesSqrtGainForAlphaScaling(t *testing.T) {
	const gain, freq, rcpQ = 4.0, 0.1, 1.0
	f := &Filter{}
	f.Set(Peaking, gain, freq, rcpQ)

	w0 := 2 * math.Pi * freq
	alpha := math.Sin(w0) * rcpQ / 2
	sqrtGain := math.Sqrt(gain)
	a0 := 1 + alpha/sqrtGain
	wantB0 := (1 + alpha*sqrtGain) / a0
	wantA1 := (-2 * math.Cos(w0)) / a0

	assert.InDelta(t, wantB0, f.b0, 1e-9)
	assert.InDelta(t, wantA1, f.a1, 1e-9)
	// A filter built with gain wrongly used in place of sqrtGain would
	// diverge for gain != 1.
	assert.NotEqual(t, gain, sqrtGain)
}

// Property: for any in-range gain/freq/Q, coefficients are finite and
// the filter is stable.
func TestSetParamsAlwaysStable(t *testing.T) {
	types := []Type{LowShelf, HighShelf, Peaking, LowPass, HighPass, BandPass}
	rapid.Check(t, func(t *rapid.T) {
		typ := types[rapid.IntRange(0, len(types)-1).Draw(t, "type")]
		gain := rapid.Float64Range(0.01, 100).Draw(t, "gain")
		freq := rapid.Float64Range(0.001, 0.499).Draw(t, "freq")
		q := rapid.Float64Range(0.01, 20).Draw(t, "rcpQ")

		f := &Filter{}
		f.Set(typ, gain, freq, q)

		sum := math.Abs(f.b0) + math.Abs(f.b1) + math.Abs(f.b2)
		assert.False(t, math.IsInf(sum, 0) || math.IsNaN(sum))
		assert.True(t, f.Stable(), "filter should be stable for type=%v gain=%v freq=%v q=%v", typ, gain, freq, q)
	})
}
