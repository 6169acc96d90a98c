package fx

import (
	"math"

	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/biquad"
	"github.com/cbegin/auxfx/internal/bus"
	"github.com/cbegin/auxfx/internal/delayline"
)

// reverbEffect is the ambisonic late-reverberation engine: B-format
// input is converted to a 4-channel tetrahedral
// A-format, run through input shelving filters into a shared main delay,
// split into an early-reflection subsystem and a late-reverb feedback
// delay network, and panned independently back to the speaker layout.
//
// Every offset pair below is [committed, pending]: Update writes only
// the pending slot; Process commits pending into committed once the
// shared cross-fade counter reaches fadeSamples.
type reverbEffect struct {
	dec     *ambisonic.Decoder
	eaxMode bool

	lowShelf  [4]*biquad.Filter // LF reference shelf, always active
	highShelf [4]*biquad.Filter // HF reference shelf, EAX mode only

	mainDelay   *delayline.MultiLine
	lateFeedTap int

	earlyDelayTaps   [4][2]int
	earlyDelayCoeffs [4]float64
	lateDelayTaps    [4][2]int

	apFeedCoeff float64
	mixX, mixY  float64

	earlyVecAP        *delayline.MultiLine
	earlyVecAPOffsets [4][2]int
	earlyLine         *delayline.MultiLine
	earlyOffsets      [4][2]int
	earlyCoeffs       [4]float64

	modIndex  uint32
	modRange  uint32
	modDepth  float64
	modCoeff  float64
	modFilter float64

	lateDensityGain  float64
	lateDelay        *delayline.MultiLine
	lateOffsets      [4][2]int
	lateVecAP        *delayline.MultiLine
	lateVecAPOffsets [4][2]int
	lateFilters      [4]t60Damping

	fadeCount int

	earlyMixer, lateMixer *channelMixer
	earlyBuf, lateBuf     bus.Wet
}

func newReverb() *reverbEffect {
	return &reverbEffect{modRange: 1, mixX: 1}
}

func (e *reverbEffect) UpdateDevice(sampleRate, channelCount int, dec *ambisonic.Decoder) {
	sr := float64(sampleRate)
	e.dec = dec

	multiplier := 1 + lineMultiplier

	mainLen := maxReflectionsDelay + earlyTapLengths[3]*multiplier + maxLateReverbDelay +
		(lateLineLengths[3]-lateLineLengths[0])*0.25*multiplier
	e.mainDelay = delayline.NewMulti(4, int(math.Ceil(mainLen*sr))+bus.MaxUpdate)

	e.earlyVecAP = delayline.NewMulti(4, int(math.Ceil(earlyAllpassLengths[3]*multiplier*sr)))
	e.earlyLine = delayline.NewMulti(4, int(math.Ceil(earlyLineLengths[3]*multiplier*sr)))
	e.lateVecAP = delayline.NewMulti(4, int(math.Ceil(lateAllpassLengths[3]*multiplier*sr)))

	lateDelayLen := math.Max(maxEchoTime, lateLineLengths[3]*multiplier) + maxModulationTime*modulationDepthCoeff/2
	e.lateDelay = delayline.NewMulti(4, int(math.Ceil(lateDelayLen*sr)))

	e.lateFeedTap = int((maxReflectionsDelay + earlyTapLengths[3]*multiplier) * sr)
	e.modCoeff = math.Pow(modulationFilterCoeff, modulationFilterConst/sr)
	if e.modRange == 0 {
		e.modRange = 1
	}

	for i := range e.lowShelf {
		e.lowShelf[i] = biquad.NewPassthrough()
		e.highShelf[i] = biquad.NewPassthrough()
	}

	for i := range e.earlyBuf {
		e.earlyBuf[i] = make([]float32, bus.MaxUpdate)
		e.lateBuf[i] = make([]float32, bus.MaxUpdate)
	}
}

func (e *reverbEffect) Update(sampleRate int, p *Props) {
	r := &p.Reverb
	e.eaxMode = r.EAXMode
	sr := float64(sampleRate)

	hfScale := r.HFReference / sr
	gainHF := math.Max(r.GainHF, 0.001)
	rcpQHF := biquad.ReciprocalQFromSlope(gainHF, 1)
	for _, f := range e.highShelf {
		f.Set(biquad.HighShelf, gainHF, hfScale, rcpQHF)
	}

	lfScale := r.LFReference / sr
	gainLF := math.Max(r.GainLF, 0.001)
	rcpQLF := biquad.ReciprocalQFromSlope(gainLF, 1)
	for _, f := range e.lowShelf {
		f.Set(biquad.LowShelf, gainLF, lfScale, rcpQLF)
	}

	first := e.earlyMixer == nil
	oldEarlyTaps, oldEarlyVecAP, oldEarlyOffsets := e.earlyDelayTaps, e.earlyVecAPOffsets, e.earlyOffsets
	oldLateTaps, oldLateVecAP, oldLateOffsets := e.lateDelayTaps, e.lateVecAPOffsets, e.lateOffsets

	e.updateDelayLine(sr, r)
	e.apFeedCoeff = math.Sqrt(0.5) * r.Diffusion * r.Diffusion
	e.updateEarlyLines(sr, r)
	e.mixX, e.mixY = calcMatrixCoeffs(r.Diffusion)

	hfRatio := r.DecayHFRatio
	if r.DecayHFLimit && r.AirAbsorptionGainHF < 1 {
		hfRatio = calcLimitedHfRatio(hfRatio, r.AirAbsorptionGainHF, r.DecayTime)
	}
	lfDecayTime := clampF(r.DecayTime*r.DecayLFRatio, 0.1, 20)
	hfDecayTime := clampF(r.DecayTime*hfRatio, 0.1, 20)

	e.updateModulator(sr, r)
	e.updateLateLines(sr, r, lfDecayTime, r.DecayTime, hfDecayTime, tau*lfScale, tau*hfScale)
	e.update3DPanning(r)

	if first {
		// The first Update has no earlier offsets to fade from.
		e.commitOffsets()
		e.fadeCount = fadeSamples
	} else if oldEarlyTaps != e.earlyDelayTaps || oldEarlyVecAP != e.earlyVecAPOffsets || oldEarlyOffsets != e.earlyOffsets ||
		oldLateTaps != e.lateDelayTaps || oldLateVecAP != e.lateVecAPOffsets || oldLateOffsets != e.lateOffsets {
		e.fadeCount = 0
	}
}

func (e *reverbEffect) updateDelayLine(sr float64, r *ReverbProps) {
	multiplier := 1 + r.Density*lineMultiplier
	for i := 0; i < 4; i++ {
		length := r.ReflectionsDelay + earlyTapLengths[i]*multiplier
		e.earlyDelayTaps[i][1] = int(math.Round(length * sr))

		length = earlyTapLengths[i] * multiplier
		e.earlyDelayCoeffs[i] = calcDecayCoeff(length, r.DecayTime)

		length = r.LateReverbDelay + (lateLineLengths[i]-lateLineLengths[0])*0.25*multiplier
		e.lateDelayTaps[i][1] = e.lateFeedTap + int(length*sr)
	}
}

func (e *reverbEffect) updateEarlyLines(sr float64, r *ReverbProps) {
	multiplier := 1 + r.Density*lineMultiplier
	for i := 0; i < 4; i++ {
		length := earlyAllpassLengths[i] * multiplier
		e.earlyVecAPOffsets[i][1] = int(length * sr)

		length = earlyLineLengths[i] * multiplier
		e.earlyOffsets[i][1] = int(length * sr)
		e.earlyCoeffs[i] = calcDecayCoeff(length, r.DecayTime)
	}
}

func (e *reverbEffect) updateLateLines(sr float64, r *ReverbProps, lfDecayTime, mfDecayTime, hfDecayTime, lfW, hfW float64) {
	multiplier := 1 + r.Density*lineMultiplier

	length := (lateLineLengths[0] + lateLineLengths[1] + lateLineLengths[2] + lateLineLengths[3]) / 4 * multiplier
	length = lerp(length, r.EchoTime, r.EchoDepth)
	length += (lateAllpassLengths[0] + lateAllpassLengths[1] + lateAllpassLengths[2] + lateAllpassLengths[3]) / 4 * multiplier

	bw0 := lfW
	bw1 := hfW - lfW
	bw2 := tau - hfW
	avgDecay := (bw0*lfDecayTime + bw1*mfDecayTime + bw2*hfDecayTime) / tau
	e.lateDensityGain = calcDensityGain(calcDecayCoeff(length, avgDecay))

	apAvg := (lateAllpassLengths[0] + lateAllpassLengths[1] + lateAllpassLengths[2] + lateAllpassLengths[3]) / 4

	for i := 0; i < 4; i++ {
		length = lateAllpassLengths[i] * multiplier
		e.lateVecAPOffsets[i][1] = int(length * sr)

		length = lerp(lateLineLengths[i]*multiplier, r.EchoTime, r.EchoDepth)
		e.lateOffsets[i][1] = int(length * sr)

		length += lerp(lateAllpassLengths[i], apAvg, r.Diffusion) * multiplier

		lf, hf, mid := calcT60DampingCoeffs(length, lfDecayTime, mfDecayTime, hfDecayTime, lfW, hfW)
		e.lateFilters[i].lf.setCoeffs(lf)
		e.lateFilters[i].hf.setCoeffs(hf)
		e.lateFilters[i].mid = mid
	}
}

func (e *reverbEffect) updateModulator(sr float64, r *ReverbProps) {
	rangeSamples := uint32(math.Max(r.ModulationTime*sr, 1))
	if e.modRange == 0 {
		e.modRange = 1
	}
	e.modIndex = uint32(uint64(e.modIndex) * uint64(rangeSamples) / uint64(e.modRange))
	e.modRange = rangeSamples
	e.modDepth = r.ModulationDepth * modulationDepthCoeff * r.ModulationTime / 2 * sr
}

func (e *reverbEffect) update3DPanning(r *ReverbProps) {
	earlyTransform := mat4MulT(transformFromVector(r.ReflectionsPan), a2bMatrix)
	lateTransform := mat4MulT(transformFromVector(r.LateReverbPan), a2bMatrix)

	if e.earlyMixer == nil || len(e.earlyMixer.gains[0]) != e.dec.ChannelCount() {
		e.earlyMixer = newChannelMixer(e.dec, [4][4]float64(earlyTransform), r.Gain*r.ReflectionsGain)
		e.lateMixer = newChannelMixer(e.dec, [4][4]float64(lateTransform), r.Gain*r.LateReverbGain)
		return
	}
	// Later updates recompute the gains in place, without allocating.
	for k := 0; k < 4; k++ {
		e.dec.FirstOrderGains(earlyTransform[k], r.Gain*r.ReflectionsGain, e.earlyMixer.gains[k])
		e.dec.FirstOrderGains(lateTransform[k], r.Gain*r.LateReverbGain, e.lateMixer.gains[k])
	}
}

func (e *reverbEffect) Reset() {
	for i := range e.lowShelf {
		e.lowShelf[i].Reset()
		e.highShelf[i].Reset()
	}
	for i := range e.lateFilters {
		e.lateFilters[i].reset()
	}
	e.mainDelay.Reset()
	e.earlyVecAP.Reset()
	e.earlyLine.Reset()
	e.lateVecAP.Reset()
	e.lateDelay.Reset()
	e.fadeCount = 0
	e.modIndex = 0
	e.modFilter = 0
}

// vectorScatter applies the 4x4 partial-scattering matrix parameterized
// by (x, y): the late-reverb matrix and the Gerzon vector all-pass's
// feedback scatter.
func vectorScatter(f [4]float64, x, y float64) [4]float64 {
	return [4]float64{
		x*f[0] + y*(f[1]-f[2]+f[3]),
		x*f[1] + y*(-f[0]+f[2]+f[3]),
		x*f[2] + y*(f[0]-f[1]+f[3]),
		x*f[3] + y*(-f[0]-f[1]-f[2]),
	}
}

// vectorAllpass runs one sample of the Gerzon 4-channel vector all-pass
// against line, reading the cross-faded tap at offsets before this
// sample's own write: reads and writes happen in that fixed order on
// every all-pass line.
func (e *reverbEffect) vectorAllpass(line *delayline.MultiLine, offsets *[4][2]int, vec []float64, mu float64) {
	var fb [4]float64
	for i := 0; i < 4; i++ {
		input := vec[i]
		tap := lerp(float64(line.At(i, offsets[i][0])), float64(line.At(i, offsets[i][1])), mu)
		vec[i] = tap - e.apFeedCoeff*input
		fb[i] = input + e.apFeedCoeff*vec[i]
	}
	scattered := vectorScatter(fb, e.mixX, e.mixY)
	var frame [4]float32
	for i := range scattered {
		frame[i] = float32(scattered[i])
	}
	line.Write(frame[:])
}

// stepModulator advances the late-reverb LFO by one sample and returns
// the signed delay offset (in samples) to add to the late line read.
func (e *reverbEffect) stepModulator() int {
	sinus := math.Sin(tau * float64(e.modIndex) / float64(e.modRange))
	e.modIndex = (e.modIndex + 1) % e.modRange
	e.modFilter = lerp(e.modFilter, e.modDepth, e.modCoeff)
	return int(math.Round(e.modFilter * sinus))
}

func (e *reverbEffect) Process(n int, wet bus.Wet, dry bus.Dry) {
	for t := 0; t < n; t++ {
		var aIn [4]float64
		for c := 0; c < 4; c++ {
			row := b2aMatrix[c]
			aIn[c] = row[0]*float64(wet[0][t]) + row[1]*float64(wet[1][t]) + row[2]*float64(wet[2][t]) + row[3]*float64(wet[3][t])
		}

		var filtered [4]float32
		for c := 0; c < 4; c++ {
			x := e.lowShelf[c].ProcessSample(float32(aIn[c]))
			if e.eaxMode {
				x = e.highShelf[c].ProcessSample(x)
			}
			filtered[c] = x
		}
		e.mainDelay.Write(filtered[:])

		mu := math.Min(1, float64(e.fadeCount)/fadeSamples)

		// Early reflections: read the primary taps (just written, hence
		// the +1 to skip past this sample's own forward write).
		var f [4]float64
		for j := 0; j < 4; j++ {
			oldV := float64(e.mainDelay.At(j, e.earlyDelayTaps[j][0]+1))
			newV := float64(e.mainDelay.At(j, e.earlyDelayTaps[j][1]+1))
			f[j] = lerp(oldV, newV, mu) * e.earlyDelayCoeffs[j]
		}
		e.vectorAllpass(e.earlyVecAP, &e.earlyVecAPOffsets, f[:], mu)

		var rev [4]float32
		for j := 0; j < 4; j++ {
			rev[j] = float32(f[3-j])
		}
		e.earlyLine.Write(rev[:])

		for j := 0; j < 4; j++ {
			oldV := float64(e.earlyLine.At(j, e.earlyOffsets[j][0]+1))
			newV := float64(e.earlyLine.At(j, e.earlyOffsets[j][1]+1))
			f[j] += lerp(oldV, newV, mu) * e.earlyCoeffs[j]
		}
		for j := 0; j < 4; j++ {
			e.earlyBuf[j][t] = float32(f[j])
		}

		scattered := vectorScatter([4]float64{f[3], f[2], f[1], f[0]}, e.mixX, e.mixY)
		var feed [4]float32
		for j := range scattered {
			feed[j] = float32(scattered[j])
		}
		e.mainDelay.WriteAt(e.lateFeedTap+1, feed[:])

		// Late reverb: taps into the main delay read alongside the
		// just-written sample the same way as the early taps above.
		var g [4]float64
		for j := 0; j < 4; j++ {
			oldV := float64(e.mainDelay.At(j, e.lateDelayTaps[j][0]+1))
			newV := float64(e.mainDelay.At(j, e.lateDelayTaps[j][1]+1))
			g[j] = lerp(oldV, newV, mu) * e.lateDensityGain
		}

		modDelay := e.stepModulator()
		for j := 0; j < 4; j++ {
			oldV := float64(e.lateDelay.At(j, e.lateOffsets[j][0]-modDelay))
			newV := float64(e.lateDelay.At(j, e.lateOffsets[j][1]-modDelay))
			g[j] += lerp(oldV, newV, mu)
		}
		for j := 0; j < 4; j++ {
			g[j] = e.lateFilters[j].process(g[j])
		}
		e.vectorAllpass(e.lateVecAP, &e.lateVecAPOffsets, g[:], mu)

		for j := 0; j < 4; j++ {
			e.lateBuf[j][t] = float32(g[j])
		}

		lateScattered := vectorScatter([4]float64{g[3], g[2], g[1], g[0]}, e.mixX, e.mixY)
		var lateFeed [4]float32
		for j := range lateScattered {
			lateFeed[j] = float32(lateScattered[j])
		}
		e.lateDelay.Write(lateFeed[:])

		if e.fadeCount < fadeSamples {
			e.fadeCount++
			if e.fadeCount == fadeSamples {
				e.commitOffsets()
			}
		}
	}

	e.earlyMixer.Mix(n, e.earlyBuf, dry)
	e.lateMixer.Mix(n, e.lateBuf, dry)
}

func (e *reverbEffect) commitOffsets() {
	for i := 0; i < 4; i++ {
		e.earlyDelayTaps[i][0] = e.earlyDelayTaps[i][1]
		e.earlyVecAPOffsets[i][0] = e.earlyVecAPOffsets[i][1]
		e.earlyOffsets[i][0] = e.earlyOffsets[i][1]
		e.lateDelayTaps[i][0] = e.lateDelayTaps[i][1]
		e.lateVecAPOffsets[i][0] = e.lateVecAPOffsets[i][1]
		e.lateOffsets[i][0] = e.lateOffsets[i][1]
	}
}
