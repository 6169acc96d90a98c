// Package source implements the source stage: per-channel direct and
// auxiliary filter paths, each gain-ramped into the dry bus and the wet
// bus.
package source

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PathProps is one leg (direct or aux) of a SendProps record: a gain,
// an HF shelf gain, and an LF shelf gain. gain is the overall linear
// send level; gain_hf/gain_lf are the linear shelf gains applied at
// hf_ref/lf_ref.
type PathProps struct {
	Gain     float64
	GainHF   float64
	GainLF   float64
	HFRef    float64 // Hz, fixed at 5000
	LFRef    float64 // Hz, fixed at 250
}

func defaultPathProps() PathProps {
	return PathProps{Gain: 1, GainHF: 1, GainLF: 1, HFRef: 5000, LFRef: 250}
}

// Normalize clamps gain/gain_hf/gain_lf into [0,1] and pins the reference
// frequencies to their fixed values (hf_reference fixed at 5000 Hz;
// lf_reference fixed at 250 Hz).
func (p *PathProps) Normalize() {
	p.Gain = clampF(p.Gain, 0, 1)
	p.GainHF = clampF(p.GainHF, 0, 1)
	p.GainLF = clampF(p.GainLF, 0, 1)
	p.HFRef = 5000
	p.LFRef = 250
}

// SendProps is send-properties record: one direct-path and
// one aux-path tuple. Engine.SendProps(i)/SetSendProps(i, ...) operate on
// one instance per effect slot, so that each auxiliary send (and its
// direct contribution into the dry bus) can be trimmed independently —
// see DESIGN.md for why the direct path is modeled per slot rather than
// shared once across all slots.
type SendProps struct {
	Direct PathProps
	Aux    PathProps
}

// DefaultSendProps returns unity gain on both legs with the fixed
// reference frequencies, so a freshly constructed slot is a transparent
// pass-through before any Set* call.
func DefaultSendProps() SendProps {
	return SendProps{Direct: defaultPathProps(), Aux: defaultPathProps()}
}

// Normalize clamps both legs.
func (p *SendProps) Normalize() {
	p.Direct.Normalize()
	p.Aux.Normalize()
}
