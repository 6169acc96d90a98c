package fx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/bus"
	"github.com/cbegin/auxfx/internal/chformat"
)

func newStereoDecoder() *ambisonic.Decoder {
	return ambisonic.NewDecoder(chformat.Stereo)
}

// runEffect feeds a single-sample impulse at t=0 through e and returns the
// full frames-long per-channel response in a flat (non-ring) buffer.
func runEffect(e Effect, sampleRate int, dec *ambisonic.Decoder, p *Props, frames int) [][]float32 {
	e.UpdateDevice(sampleRate, dec.ChannelCount(), dec)
	e.Update(sampleRate, p)

	out := make([][]float32, dec.ChannelCount())
	for i := range out {
		out[i] = make([]float32, frames)
	}

	dry := bus.NewDry(dec.ChannelCount())
	off := 0
	remaining := frames
	for remaining > 0 {
		n := remaining
		if n > bus.MaxUpdate {
			n = bus.MaxUpdate
		}
		block := bus.NewWet()
		if off == 0 {
			block[0][0] = 1
		}
		dry.Zero(n)
		e.Process(n, block, dry)
		for i := range out {
			copy(out[i][off:off+n], dry[i][:n])
		}
		off += n
		remaining -= n
	}
	return out
}

// S2: an impulse into a two-tap echo produces its first nonzero tap
// response at frame ceil(delay*sampleRate)+1 and its second at
// tap1 + ceil(lr_delay*sampleRate).
func TestEchoTapTiming(t *testing.T) {
	const sampleRate = 44100
	dec := newStereoDecoder()
	e := newEcho()

	props := DefaultProps()
	props.Echo.Delay = 0.1
	props.Echo.LRDelay = 0.1
	props.Echo.Feedback = 0.3
	props.Echo.Damping = 0
	props.Echo.Spread = 0

	dry := runEffect(e, sampleRate, dec, &props, 10000)

	wantTap1 := int(math.Ceil(0.1*sampleRate)) + 1
	wantTap2 := wantTap1 + int(math.Ceil(0.1*sampleRate))

	firstNonzero := -1
	secondNonzero := -1
	for t := 0; t < 10000; t++ {
		v := math.Abs(float64(dry[0][t])) + math.Abs(float64(dry[1][t]))
		if v > 1e-6 {
			if firstNonzero == -1 {
				firstNonzero = t
			} else if secondNonzero == -1 && t > firstNonzero {
				secondNonzero = t
				break
			}
		}
	}
	assert.Equal(t, wantTap1, firstNonzero)
	assert.Equal(t, wantTap2, secondNonzero)
}

// With damping disabled, tap 1's onset amplitude is bounded by the
// feedback gain applied to the undamped impulse (never zero, never
// exceeding the undistorted input).
func TestEchoTapAmplitudeBoundedByFeedback(t *testing.T) {
	const sampleRate = 44100
	dec := newStereoDecoder()
	e := newEcho()

	props := DefaultProps()
	props.Echo.Delay = 0.05
	props.Echo.LRDelay = 0.05
	props.Echo.Feedback = 0.3
	props.Echo.Damping = 0
	props.Echo.Spread = 0

	dry := runEffect(e, sampleRate, dec, &props, 8000)

	tap1 := int(math.Ceil(0.05*sampleRate)) + 1
	sum := math.Abs(float64(dry[0][tap1])) + math.Abs(float64(dry[1][tap1]))
	assert.Greater(t, sum, 0.0)
	assert.Less(t, sum, 1.0)
}

// S4: the compressor's gain_control rides up toward the input amplitude
// when the input is louder than the current gain_control, converging
// within the attack-rate step count.
func TestCompressorGainControlConvergesUpward(t *testing.T) {
	const sampleRate = 44100
	dec := newStereoDecoder()
	e := newCompressor()

	props := DefaultProps()
	props.Compressor.OnOff = true
	e.UpdateDevice(sampleRate, dec.ChannelCount(), dec)
	e.Update(sampleRate, &props)

	const amplitude = 1.8
	wet := bus.NewWet()
	for t := range wet[0][:bus.MaxUpdate] {
		wet[0][t] = amplitude
	}
	dry := bus.NewDry(dec.ChannelCount())
	dry.Zero(bus.MaxUpdate)

	// Step enough blocks for gain_control (attack = 1/(0.2*sampleRate) per
	// sample) to climb from 1 up to amplitude.
	steps := int(math.Ceil((amplitude - 1) / e.attack))
	blocks := steps/bus.MaxUpdate + 2
	for b := 0; b < blocks; b++ {
		block := bus.NewWet()
		for i := range block {
			copy(block[i], wet[i])
		}
		e.Process(bus.MaxUpdate, block, dry)
	}

	assert.InDelta(t, amplitude, e.gain, 1e-3)
}

// Once gain_control has converged to the input amplitude, the
// compressor's output gain is 1/clamp(amplitude, 0.5, 2.0): a steady
// 1.8-amplitude input nets an output amplitude of 1.8/1.8 == 1.
func TestCompressorConvergedOutputIsUnityForInRangeInput(t *testing.T) {
	const sampleRate = 44100
	dec := newStereoDecoder()
	e := newCompressor()

	props := DefaultProps()
	e.UpdateDevice(sampleRate, dec.ChannelCount(), dec)
	e.Update(sampleRate, &props)

	const amplitude = 1.8
	dry := bus.NewDry(dec.ChannelCount())
	dry.Zero(bus.MaxUpdate)

	var lastW float32
	for b := 0; b < 400; b++ {
		block := bus.NewWet()
		for t := range block[0][:bus.MaxUpdate] {
			block[0][t] = amplitude
		}
		dry.Zero(bus.MaxUpdate)
		e.Process(bus.MaxUpdate, block, dry)
		lastW = block[0][bus.MaxUpdate-1]
	}
	assert.InDelta(t, 1.0, lastW, 1e-3)
}

// Toggling the compressor off mid-stream must not produce an abrupt
// jump to unprocessed signal: gain_control keeps walking toward 1 at
// the release rate, and the 1/clamp(gain,0.5,2.0) scaling keeps being
// applied, each sample, until convergence.
func TestCompressorOffWalksGainSmoothlyToUnity(t *testing.T) {
	const sampleRate = 44100
	dec := newStereoDecoder()
	e := newCompressor()

	props := DefaultProps()
	props.Compressor.OnOff = true
	e.UpdateDevice(sampleRate, dec.ChannelCount(), dec)
	e.Update(sampleRate, &props)

	const amplitude = 1.8
	dry := bus.NewDry(dec.ChannelCount())
	for b := 0; b < 400; b++ {
		block := bus.NewWet()
		for t := range block[0][:bus.MaxUpdate] {
			block[0][t] = amplitude
		}
		dry.Zero(bus.MaxUpdate)
		e.Process(bus.MaxUpdate, block, dry)
	}
	require.InDelta(t, amplitude, e.gain, 1e-3)

	props.Compressor.OnOff = false
	e.Update(sampleRate, &props)

	gainBefore := e.gain
	block := bus.NewWet()
	for t := range block[0][:bus.MaxUpdate] {
		block[0][t] = amplitude
	}
	dry.Zero(bus.MaxUpdate)
	e.Process(bus.MaxUpdate, block, dry)

	wantGain := gainBefore - float64(bus.MaxUpdate)*e.release
	if wantGain < 1 {
		wantGain = 1
	}
	assert.InDelta(t, wantGain, e.gain, 1e-6)

	wantOut := float32(amplitude / clampF(wantGain, 0.5, 2.0))
	assert.InDelta(t, wantOut, block[0][bus.MaxUpdate-1], 1e-4)
}

// S5: a constant DC input through the distortion waveshaper settles to a
// fixed output level set by the edge/gain shaping curve, not to zero and
// not diverging.
func TestDistortionDCInputSettlesToBoundedLevel(t *testing.T) {
	const sampleRate = 44100
	dec := newStereoDecoder()
	e := newDistortion()

	props := DefaultProps()
	props.Distortion.Edge = 0.2
	props.Distortion.Gain = 1.0 // unclamped for a clean DC measurement
	e.UpdateDevice(sampleRate, dec.ChannelCount(), dec)
	e.Update(sampleRate, &props)

	dry := bus.NewDry(dec.ChannelCount())
	dry.Zero(bus.MaxUpdate)

	const dc = 0.5
	for b := 0; b < 50; b++ {
		block := bus.NewWet()
		for t := range block[0][:bus.MaxUpdate] {
			block[0][t] = dc
		}
		dry.Zero(bus.MaxUpdate)
		e.Process(bus.MaxUpdate, block, dry)
	}

	var total float64
	for i := range dry {
		total += math.Abs(float64(dry[i][bus.MaxUpdate-1]))
	}
	assert.Greater(t, total, 0.0)
	assert.Less(t, total, 2.0)
	for i := range dry {
		v := dry[i][bus.MaxUpdate-1]
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

// shapeDistortion is a fixed point at 0 (silence stays silent) and odd
// (symmetric clipping of positive/negative input).
func TestShapeDistortionIsOddAroundZero(t *testing.T) {
	fc := 3.0
	assert.Equal(t, 0.0, shapeDistortion(0, fc))
	assert.InDelta(t, -shapeDistortion(0.3, fc), shapeDistortion(-0.3, fc), 1e-12)
}

// S3: chorus/flanger output RMS energy over a steady sine input stays
// within a bounded multiple of the input's RMS (the shared delay-line
// modulation neither silences nor blows up the signal).
func TestChorusOutputEnergyIsBounded(t *testing.T) {
	const sampleRate = 44100
	dec := newStereoDecoder()
	e := newChorusFlanger(0.016, false)

	props := DefaultProps()
	props.Chorus = DefaultChorusProps()
	e.UpdateDevice(sampleRate, dec.ChannelCount(), dec)
	e.Update(sampleRate, &props)

	const frames = sampleRate / 2
	dry := bus.NewDry(dec.ChannelCount())

	var inEnergy, outEnergy float64
	off := 0
	remaining := frames
	for remaining > 0 {
		n := remaining
		if n > bus.MaxUpdate {
			n = bus.MaxUpdate
		}
		block := bus.NewWet()
		for t := 0; t < n; t++ {
			s := float32(0.5 * math.Sin(2*math.Pi*220*float64(off+t)/sampleRate))
			block[0][t] = s
			inEnergy += float64(s) * float64(s)
		}
		dry.Zero(n)
		e.Process(n, block, dry)
		for i := range dry {
			for t := 0; t < n; t++ {
				v := float64(dry[i][t])
				outEnergy += v * v
			}
		}
		off += n
		remaining -= n
	}

	require.Greater(t, inEnergy, 0.0)
	assert.Greater(t, outEnergy, inEnergy*0.01)
	assert.Less(t, outEnergy, inEnergy*10)
}

// S6: a reverb's early reflections do not appear before
// reflections_delay, and the tail decays rather than growing without
// bound over several seconds at default (non-unity) feedback settings.
func TestReverbEarlyReflectionsRespectDelayAndDecay(t *testing.T) {
	const sampleRate = 44100
	dec := newStereoDecoder()
	e := newReverb()

	props := DefaultProps()
	props.Reverb = DefaultReverbProps()
	e.UpdateDevice(sampleRate, dec.ChannelCount(), dec)
	e.Update(sampleRate, &props)

	const frames = sampleRate * 3
	dry := bus.NewDry(dec.ChannelCount())

	var earlyEnergy, lateEnergy float64
	lateStart := int(2.5 * sampleRate)
	firstOut := -1

	off := 0
	remaining := frames
	for remaining > 0 {
		n := remaining
		if n > bus.MaxUpdate {
			n = bus.MaxUpdate
		}
		block := bus.NewWet()
		if off == 0 {
			block[0][0] = 1
		}
		dry.Zero(n)
		e.Process(n, block, dry)
		for t := 0; t < n; t++ {
			abs := math.Abs(float64(dry[0][t])) + math.Abs(float64(dry[1][t]))
			if firstOut < 0 && abs > 0 {
				firstOut = off + t
			}
			if off+t < lateStart {
				earlyEnergy += abs
			} else {
				lateEnergy += abs
			}
		}
		off += n
		remaining -= n
	}

	assert.Greater(t, earlyEnergy, 0.0)
	assert.GreaterOrEqual(t, firstOut, int(math.Round(props.Reverb.ReflectionsDelay*sampleRate)))
	// Decaying reverb: the tail over its last half-second contributes far
	// less energy than the whole preceding 2.5s window.
	assert.Less(t, lateEnergy, earlyEnergy)
}
