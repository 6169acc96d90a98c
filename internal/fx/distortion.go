package fx

import (
	"math"

	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/biquad"
	"github.com/cbegin/auxfx/internal/bus"
)

// distortionBlock bounds the internal 4x-oversampled working buffer to
// at most 64 frames per call into the waveshaper.
const distortionBlock = 64

// tau is a full-sphere angular spread (σ = τ), used for ambient
// (non-directional) panning.
const tau = 2 * math.Pi

// distortionEffect is the four-times oversampled waveshaper: zero-stuff
// upsample, low-pass, three cascaded waveshaper
// passes, band-pass, decimate, pan as an ambient (full-sphere) source.
type distortionEffect struct {
	sampleRate float64
	edge       float64
	gain       float64
	fc         float64

	lowpass  *biquad.Filter
	bandpass *biquad.Filter
	panner   *monoPanner

	upsampled [4 * distortionBlock]float32
	out       [distortionBlock]float32
}

func newDistortion() *distortionEffect {
	return &distortionEffect{
		lowpass:  biquad.NewPassthrough(),
		bandpass: biquad.NewPassthrough(),
	}
}

func (e *distortionEffect) UpdateDevice(sampleRate, channelCount int, dec *ambisonic.Decoder) {
	e.panner = newMonoPanner(dec)
	e.panner.SetDirection(0, 0, tau, 1)
}

func (e *distortionEffect) Update(sampleRate int, p *Props) {
	e.sampleRate = float64(sampleRate)
	e.edge = p.Distortion.Edge
	e.gain = p.Distortion.Gain

	srOver := 4 * e.sampleRate

	lpCutoff := p.Distortion.LowpassCutoff / srOver
	lpBandwidth := (lpCutoff / 2) / (lpCutoff * 0.67)
	e.lowpass.Set(biquad.LowPass, 1, lpCutoff, biquad.ReciprocalQFromBandwidth(lpBandwidth, 2*math.Pi*lpCutoff))

	bpFreq := p.Distortion.EQCenter / srOver
	bpBandwidth := clampF(p.Distortion.EQBandwidth/p.Distortion.EQCenter, 0.01, 4)
	e.bandpass.Set(biquad.BandPass, 1, bpFreq, biquad.ReciprocalQFromBandwidth(bpBandwidth, 2*math.Pi*bpFreq))

	edge := math.Min(0.99, math.Sin(e.edge*math.Pi/2))
	e.fc = 2 * edge / (1 - edge)
}

func (e *distortionEffect) Reset() {
	e.lowpass.Reset()
	e.bandpass.Reset()
}

func (e *distortionEffect) Process(n int, wet bus.Wet, dry bus.Dry) {
	src := wet[0]
	for off := 0; off < n; off += distortionBlock {
		sub := distortionBlock
		if off+sub > n {
			sub = n - off
		}
		e.processBlock(src[off:off+sub], e.out[:sub])
		for i, g := range e.panner.gains {
			if g == 0 {
				continue
			}
			out := dry[i][off : off+sub]
			for t := 0; t < sub; t++ {
				out[t] += float32(float64(e.out[t]) * g)
			}
		}
	}
}

func (e *distortionEffect) processBlock(src []float32, dst []float32) {
	n := len(src)
	up := e.upsampled[:4*n]
	for i, s := range src {
		up[4*i] = s * 4
		up[4*i+1] = 0
		up[4*i+2] = 0
		up[4*i+3] = 0
	}

	e.lowpass.Process(4*n, up, up)

	fc := e.fc
	for i, s := range up {
		smp := float64(s)
		smp = shapeDistortion(smp, fc)
		smp = -shapeDistortion(-smp, fc)
		smp = shapeDistortion(smp, fc)
		up[i] = float32(smp)
	}

	e.bandpass.Process(4*n, up, up)

	for i := 0; i < n; i++ {
		dst[i] = up[4*i] * float32(e.gain)
	}
}

func shapeDistortion(smp, fc float64) float64 {
	return (1 + fc) * smp / (1 + fc*absF(smp))
}
