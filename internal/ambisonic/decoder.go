package ambisonic

import "github.com/cbegin/auxfx/internal/chformat"

// decoderRow pairs a speaker with its 16-wide ACN/N3D decoder coefficients.
// Tables below are reproduced verbatim from the well-known ACN/N3D
// per-layout channel maps (mono/stereo/quad/5.1/5.1-rear/6.1/7.1); unlisted
// coefficients are implicitly zero. Speaker ordering matches WaveFormatEx.
// Note 7.1's table genuinely omits a FrontCenter row in the
// source; it is reproduced as-is rather than invented, so for that layout
// Speakers() still lists FrontCenter but its decoder row is all zero.
type decoderRow struct {
	speaker chformat.Speaker
	coeffs  Coeffs
}

func row(sp chformat.Speaker, c ...float64) decoderRow {
	var coeffs Coeffs
	copy(coeffs[:], c)
	return decoderRow{speaker: sp, coeffs: coeffs}
}

var monoTable = []decoderRow{
	row(chformat.FrontCenter, 1.0),
}

var stereoTable = []decoderRow{
	row(chformat.FrontLeft, 5.00000000e-1, 2.88675135e-1, 0, 1.19573156e-1),
	row(chformat.FrontRight, 5.00000000e-1, -2.88675135e-1, 0, 1.19573156e-1),
}

var quadTable = []decoderRow{
	row(chformat.BackLeft, 3.53553391e-1, 2.04124145e-1, 0, -2.04124145e-1),
	row(chformat.FrontLeft, 3.53553391e-1, 2.04124145e-1, 0, 2.04124145e-1),
	row(chformat.FrontRight, 3.53553391e-1, -2.04124145e-1, 0, 2.04124145e-1),
	row(chformat.BackRight, 3.53553391e-1, -2.04124145e-1, 0, -2.04124145e-1),
}

var x51SideTable = []decoderRow{
	row(chformat.SideLeft, 3.33001372e-1, 1.89085671e-1, 0, -2.00041334e-1, -2.12309737e-2, 0, 0, 0, -1.14573483e-2),
	row(chformat.FrontLeft, 1.47751298e-1, 1.28994110e-1, 0, 1.15190495e-1, 7.44949143e-2, 0, 0, 0, -6.47739980e-3),
	row(chformat.FrontCenter, 7.73595729e-2, 0, 0, 9.71390298e-2, 0, 0, 0, 0, 5.18625335e-2),
	row(chformat.FrontRight, 1.47751298e-1, -1.28994110e-1, 0, 1.15190495e-1, -7.44949143e-2, 0, 0, 0, -6.47739980e-3),
	row(chformat.SideRight, 3.33001372e-1, -1.89085671e-1, 0, -2.00041334e-1, 2.12309737e-2, 0, 0, 0, -1.14573483e-2),
}

var x51RearTable = []decoderRow{
	row(chformat.BackLeft, 3.33001372e-1, 1.89085671e-1, 0, -2.00041334e-1, -2.12309737e-2, 0, 0, 0, -1.14573483e-2),
	row(chformat.FrontLeft, 1.47751298e-1, 1.28994110e-1, 0, 1.15190495e-1, 7.44949143e-2, 0, 0, 0, -6.47739980e-3),
	row(chformat.FrontCenter, 7.73595729e-2, 0, 0, 9.71390298e-2, 0, 0, 0, 0, 5.18625335e-2),
	row(chformat.FrontRight, 1.47751298e-1, -1.28994110e-1, 0, 1.15190495e-1, -7.44949143e-2, 0, 0, 0, -6.47739980e-3),
	row(chformat.BackRight, 3.33001372e-1, -1.89085671e-1, 0, -2.00041334e-1, 2.12309737e-2, 0, 0, 0, -1.14573483e-2),
}

var x61Table = []decoderRow{
	row(chformat.SideLeft, 2.04462744e-1, 2.17178497e-1, 0, -4.39990188e-2, -2.60787329e-2, 0, 0, 0, -6.87238843e-2),
	row(chformat.FrontLeft, 1.18130342e-1, 9.34633906e-2, 0, 1.08553749e-1, 6.80658795e-2, 0, 0, 0, 1.08999485e-2),
	row(chformat.FrontCenter, 7.73595729e-2, 0, 0, 9.71390298e-2, 0, 0, 0, 0, 5.18625335e-2),
	row(chformat.FrontRight, 1.18130342e-1, -9.34633906e-2, 0, 1.08553749e-1, -6.80658795e-2, 0, 0, 0, 1.08999485e-2),
	row(chformat.SideRight, 2.04462744e-1, -2.17178497e-1, 0, -4.39990188e-2, 2.60787329e-2, 0, 0, 0, -6.87238843e-2),
	row(chformat.BackCenter, 2.50001688e-1, 0, 0, -2.50000094e-1, 0, 0, 0, 0, 6.05133395e-2),
}

var x71Table = []decoderRow{
	row(chformat.BackLeft, 2.04124145e-1, 1.08880247e-1, 0, -1.88586120e-1, -1.29099444e-1, 0, 0, 0, 7.45355993e-2, 3.73460789e-2),
	row(chformat.SideLeft, 2.04124145e-1, 2.17760495e-1, 0, 0, 0, 0, 0, 0, -1.49071198e-1, -3.73460789e-2),
	row(chformat.FrontLeft, 2.04124145e-1, 1.08880247e-1, 0, 1.88586120e-1, 1.29099444e-1, 0, 0, 0, 7.45355993e-2, 3.73460789e-2),
	row(chformat.FrontRight, 2.04124145e-1, -1.08880247e-1, 0, 1.88586120e-1, -1.29099444e-1, 0, 0, 0, 7.45355993e-2, -3.73460789e-2),
	row(chformat.SideRight, 2.04124145e-1, -2.17760495e-1, 0, 0, 0, 0, 0, 0, -1.49071198e-1, 3.73460789e-2),
	row(chformat.BackRight, 2.04124145e-1, -1.08880247e-1, 0, -1.88586120e-1, 1.29099444e-1, 0, 0, 0, 7.45355993e-2, -3.73460789e-2),
}

func tableFor(format chformat.Format) []decoderRow {
	switch format {
	case chformat.Mono:
		return monoTable
	case chformat.Stereo:
		return stereoTable
	case chformat.Quad:
		return quadTable
	case chformat.X51:
		return x51SideTable
	case chformat.X51Rear:
		return x51RearTable
	case chformat.X61:
		return x61Table
	case chformat.X71:
		return x71Table
	default:
		return nil
	}
}

// Decoder is the per-output-channel row of ACN/N3D decoder coefficients
// for a channel format.
// Rows for speakers absent from the format's table (including every LFE
// row) are the zero vector.
type Decoder struct {
	format chformat.Format
	rows   []Coeffs
}

// NewDecoder builds the decoder matrix for format by matching its ordered
// speaker list against the compile-time table.
func NewDecoder(format chformat.Format) *Decoder {
	speakers := format.Speakers()
	table := tableFor(format)
	rows := make([]Coeffs, len(speakers))
	for i, sp := range speakers {
		if sp == chformat.LFE {
			continue // LFE rows are always zero; only Dedicated routes to LFE.
		}
		for _, r := range table {
			if r.speaker == sp {
				rows[i] = r.coeffs
				break
			}
		}
	}
	return &Decoder{format: format, rows: rows}
}

// Row returns the decoder coefficients for output channel i.
func (d *Decoder) Row(i int) Coeffs { return d.rows[i] }

// ChannelCount returns the number of output channels (rows).
func (d *Decoder) ChannelCount() int { return len(d.rows) }

// Speakers returns the ordered speaker list backing this decoder's rows,
// for effects (Dedicated) that route directly to a named speaker instead
// of through ambisonic panning.
func (d *Decoder) Speakers() []chformat.Speaker { return d.format.Speakers() }

// PanningGains computes per-output-channel gains from a full 16-vector of
// ambisonic coefficients.
func (d *Decoder) PanningGains(c Coeffs, inGain float64, out []float64) {
	for i := range d.rows {
		var gain float64
		row := d.rows[i]
		for j := 0; j < NumCoeffs; j++ {
			gain += row[j] * c[j]
		}
		out[i] = clamp01(gain) * inGain
	}
}

// FirstOrderGains computes per-output-channel gains from a 4-vector
// (one row of a first-order B-format transform matrix). Used to route
// each of the 4 wet-bus
// ambisonic lanes, and the reverb's early/late B-format outputs, back
// into the speaker layout.
func (d *Decoder) FirstOrderGains(matrix [4]float64, inGain float64, out []float64) {
	for i := range d.rows {
		var gain float64
		row := d.rows[i]
		for j := 0; j < 4; j++ {
			gain += row[j] * matrix[j]
		}
		out[i] = clamp01(gain) * inGain
	}
}
