package fx

import "math"

// onePole is the first-order (3-coefficient) I3DL2-style filter used by
// the late reverb's T60 damping sections, distinct from the 2-pole
// biquad.Filter used everywhere else: y_i = c0*x_i + c1*x_(i-1) + c2*y_(i-1).
type onePole struct {
	c0, c1, c2 float64
	x1, y1     float64
}

func (f *onePole) setCoeffs(c [3]float64) { f.c0, f.c1, f.c2 = c[0], c[1], c[2] }

func (f *onePole) process(in float64) float64 {
	out := f.c0*in + f.c1*f.x1 + f.c2*f.y1
	f.x1, f.y1 = in, out
	return out
}

func (f *onePole) reset() { f.x1, f.y1 = 0, 0 }

// t60Damping is a late-reverb line's 3-band absorption filter: an LF
// section, an HF section, and a scalar mid-band gain.
type t60Damping struct {
	lf, hf onePole
	mid    float64
}

func (d *t60Damping) process(in float64) float64 {
	return d.mid * d.hf.process(d.lf.process(in))
}

func (d *t60Damping) reset() {
	d.lf.reset()
	d.hf.reset()
}

// calcDecayCoeff returns the per-cycle attenuation that decays a signal
// of the given cycle length by -60dB over decayTime seconds.
func calcDecayCoeff(length, decayTime float64) float64 {
	return math.Pow(reverbDecayGain, length/decayTime)
}

// calcDecayLength is calcDecayCoeff's inverse: the time a coefficient
// implies to reach -60dB given the line's decayTime reference.
func calcDecayLength(coeff, decayTime float64) float64 {
	return math.Log10(coeff) * decayTime / math.Log10(reverbDecayGain)
}

// calcDensityGain attenuates late-reverb input to compensate for the
// energy a lossy feedback loop with per-cycle coefficient a accumulates.
func calcDensityGain(a float64) float64 {
	return math.Sqrt(1 - a*a)
}

// calcMatrixCoeffs derives the partial-scattering matrix's (x, y) pair
// from the diffusion parameter late-reverb matrix.
func calcMatrixCoeffs(diffusion float64) (x, y float64) {
	n := math.Sqrt(3)
	t := diffusion * math.Atan(n)
	return math.Cos(t), math.Sin(t) / n
}

// calcLimitedHfRatio bounds decay_hf_ratio so air absorption never
// implies a decay shorter than physically consistent with the given
// absorption gain.
func calcLimitedHfRatio(hfRatio, airAbsorptionGainHF, decayTime float64) float64 {
	limit := 1.0 / (calcDecayLength(airAbsorptionGainHF, decayTime) * speedOfSound)
	return clampF(limit, 0.1, hfRatio)
}

// calcHighpassCoeffs computes the I3DL2 first-order high-pass
// coefficients for gain g at angular reference frequency w.
func calcHighpassCoeffs(gain, w float64) (c [3]float64) {
	if gain >= 1 {
		c[0] = 1
		return
	}
	g := math.Max(0.001, gain)
	g2 := g * g
	cw := math.Cos(w)
	p := g / (g*cw + math.Sqrt((cw-1)*(g2*cw+g2-2)))
	return [3]float64{p, -p, p}
}

// calcLowpassCoeffs computes the I3DL2 first-order low-pass coefficients.
func calcLowpassCoeffs(gain, w float64) (c [3]float64) {
	if gain >= 1 {
		c[0] = 1
		return
	}
	g := math.Max(0.001, gain)
	g2 := g * g
	cw := math.Cos(w)
	a := (1 - g2*cw - math.Sqrt(2*g2*(1-cw)-g2*g2*(1-cw*cw))) / (1 - g2)
	return [3]float64{1 - a, 0, a}
}

// calcLowShelfCoeffs computes the I3DL2 first-order low-shelf
// coefficients (cuts below w, preserves the mid-band).
func calcLowShelfCoeffs(gain, w float64) (c [3]float64) {
	if gain >= 1 {
		c[0] = 1
		return
	}
	g := math.Max(0.001, gain)
	rw := math.Pi - w
	p := math.Sin(0.5*rw-0.25*math.Pi) / math.Sin(0.5*rw+0.25*math.Pi)
	n := (g + 1) / (g - 1)
	alpha := n + math.Sqrt(n*n-1)
	beta0 := (1 + g + (1-g)*alpha) / 2
	beta1 := (1 - g + (1+g)*alpha) / 2
	return [3]float64{
		(beta0 + p*beta1) / (1 + p*alpha),
		-(beta1 + p*beta0) / (1 + p*alpha),
		(p + alpha) / (1 + p*alpha),
	}
}

// calcHighShelfCoeffs computes the I3DL2 first-order high-shelf
// coefficients (cuts above w, preserves the mid-band).
func calcHighShelfCoeffs(gain, w float64) (c [3]float64) {
	if gain >= 1 {
		c[0] = 1
		return
	}
	g := math.Max(0.001, gain)
	p := math.Sin(0.5*w-0.25*math.Pi) / math.Sin(0.5*w+0.25*math.Pi)
	n := (g + 1) / (g - 1)
	alpha := n + math.Sqrt(n*n-1)
	beta0 := (1 + g + (1-g)*alpha) / 2
	beta1 := (1 - g + (1+g)*alpha) / 2
	return [3]float64{
		(beta0 + p*beta1) / (1 + p*alpha),
		(beta1 + p*beta0) / (1 + p*alpha),
		-(p + alpha) / (1 + p*alpha),
	}
}

// calcT60DampingCoeffs picks, by case analysis on the relative ordering
// of the LF/MF/HF decay coefficients at this line's length, which
// shelf/pass combination reproduces the requested 3-band T60 decay.
// The case split itself isn't derivable from first principles, only
// from the I3DL2 decay-matching construction it implements.
func calcT60DampingCoeffs(length, lfDecayTime, mfDecayTime, hfDecayTime, lfW, hfW float64) (lf, hf [3]float64, mid float64) {
	lfGain := calcDecayCoeff(length, lfDecayTime)
	mfGain := calcDecayCoeff(length, mfDecayTime)
	hfGain := calcDecayCoeff(length, hfDecayTime)

	switch {
	case lfGain < mfGain:
		switch {
		case mfGain < hfGain:
			lf = calcLowShelfCoeffs(mfGain/hfGain, hfW)
			hf = calcHighpassCoeffs(lfGain/mfGain, lfW)
			mid = hfGain
		case mfGain > hfGain:
			lf = calcHighpassCoeffs(lfGain/mfGain, lfW)
			hf = calcLowpassCoeffs(hfGain/mfGain, hfW)
			mid = mfGain
		default:
			lf = [3]float64{1, 0, 0}
			hf = calcHighpassCoeffs(lfGain/mfGain, lfW)
			mid = mfGain
		}
	case lfGain > mfGain:
		switch {
		case mfGain < hfGain:
			hg := mfGain / lfGain
			lg := mfGain / hfGain
			lf = calcHighShelfCoeffs(hg, lfW)
			hf = calcLowShelfCoeffs(lg, hfW)
			mid = math.Max(lfGain, hfGain) / math.Max(hg, lg)
		case mfGain > hfGain:
			lf = calcHighShelfCoeffs(mfGain/lfGain, lfW)
			hf = calcLowpassCoeffs(hfGain/mfGain, hfW)
			mid = lfGain
		default:
			lf = [3]float64{1, 0, 0}
			hf = calcHighShelfCoeffs(mfGain/lfGain, lfW)
			mid = lfGain
		}
	default:
		lf = [3]float64{1, 0, 0}
		switch {
		case mfGain < hfGain:
			hf = calcLowShelfCoeffs(mfGain/hfGain, hfW)
			mid = hfGain
		case mfGain > hfGain:
			hf = calcLowpassCoeffs(hfGain/mfGain, hfW)
			mid = mfGain
		default:
			hf = [3]float64{1, 0, 0}
			mid = mfGain
		}
	}
	return
}

// transformFromVector builds the reverb's per-pan-vector rotation: a
// Z-focus transform (strength from the vector's length) composed with
// rotations around X then Y, placing the focal point toward vec.
func transformFromVector(vec [3]float64) mat4 {
	length := math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1] + vec[2]*vec[2])
	sa := math.Sin(math.Min(length, 1) * (math.Pi / 4))

	zfocus := mat4{
		{1 / (1 + sa), 0, 0, (sa / (1 + sa)) / 1.732050808},
		{0, math.Sqrt((1 - sa) / (1 + sa)), 0, 0},
		{0, 0, math.Sqrt((1 - sa) / (1 + sa)), 0},
		{(sa / (1 + sa)) * 1.732050808, 0, 0, 1 / (1 + sa)},
	}

	a := math.Atan2(vec[1], math.Sqrt(vec[0]*vec[0]+vec[2]*vec[2]))
	xrot := mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, math.Cos(a), math.Sin(a)},
		{0, 0, -math.Sin(a), math.Cos(a)},
	}

	a = math.Atan2(-vec[0], vec[2])
	yrot := mat4{
		{1, 0, 0, 0},
		{0, math.Cos(a), 0, math.Sin(a)},
		{0, 0, 1, 0},
		{0, -math.Sin(a), 0, math.Cos(a)},
	}

	return mat4Mul(yrot, mat4Mul(xrot, zfocus))
}
