package fx

// mat4 is a 4x4 matrix used for A/B-format conversion and the reverb's
// per-pan-vector rotation transform "Panning"
// paragraph.
type mat4 [4][4]float64

// mat4Mul computes the ordinary matrix product m1*m2.
func mat4Mul(m1, m2 mat4) mat4 {
	var res mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			res[row][col] = m1[row][0]*m2[0][col] + m1[row][1]*m2[1][col] +
				m1[row][2]*m2[2][col] + m1[row][3]*m2[3][col]
		}
	}
	return res
}

// mat4MulT computes the transpose of m1*m2 directly (used once, to fold
// a pan rotation and the A-to-B conversion into one set of row vectors
// for FirstOrderGains).
func mat4MulT(m1, m2 mat4) mat4 {
	m := mat4Mul(m1, m2)
	var res mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			res[i][j] = m[j][i]
		}
	}
	return res
}

// b2aMatrix converts 4-channel first-order B-format (W, Y, Z, X in ACN
// order) into the reverb's internal tetrahedral A-format.
var b2aMatrix = mat4{
	{0.288675134595, 0.288675134595, 0.288675134595, 0.288675134595},
	{0.288675134595, -0.288675134595, -0.288675134595, 0.288675134595},
	{0.288675134595, 0.288675134595, -0.288675134595, -0.288675134595},
	{0.288675134595, -0.288675134595, 0.288675134595, -0.288675134595},
}

// a2bMatrix is b2aMatrix's inverse, converting A-format back to B-format.
var a2bMatrix = mat4{
	{0.866025403785, 0.866025403785, 0.866025403785, 0.866025403785},
	{0.866025403785, -0.866025403785, 0.866025403785, -0.866025403785},
	{0.866025403785, -0.866025403785, -0.866025403785, 0.866025403785},
	{0.866025403785, 0.866025403785, -0.866025403785, -0.866025403785},
}

// Fixed per-line length "seeds" in seconds, scaled at Update time by
// 1 + density*lineMultiplier "Line lengths"
// paragraph. Reproduced verbatim from the reference model.
var (
	earlyTapLengths     = [4]float64{0.000000e+0, 1.010676e-3, 2.126553e-3, 3.358580e-3}
	earlyAllpassLengths = [4]float64{4.854840e-4, 5.360178e-4, 5.918117e-4, 6.534130e-4}
	earlyLineLengths    = [4]float64{2.992520e-3, 5.456575e-3, 7.688329e-3, 9.709681e-3}
	lateAllpassLengths  = [4]float64{8.091400e-4, 1.019453e-3, 1.407968e-3, 1.618280e-3}
	lateLineLengths     = [4]float64{9.709681e-3, 1.223343e-2, 1.689561e-2, 1.941936e-2}
)

const (
	// lineMultiplier gives a maximum density multiplier of 10 at density=1.
	lineMultiplier = 9.0

	// fadeSamples is the hard-coded cross-fade length (open
	// questions: treat as a compile-time constant, never a parameter).
	fadeSamples = 128

	// reverbDecayGain is the -60dB point a decay_time measures to.
	reverbDecayGain = 0.001

	speedOfSound = 343.3

	// modulationDepthCoeff keeps the modulator's sinus swing below half
	// the shortest late line length, avoiding reads ahead of input.
	modulationDepthCoeff = 1.0 / 4096.0

	modulationFilterCoeff = 0.048
	modulationFilterConst = 100000.0

	maxReflectionsDelay = 0.3
	maxLateReverbDelay  = 0.1
	maxEchoTime         = 0.25
	maxModulationTime   = 4.0
)

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
