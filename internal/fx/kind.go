// Package fx implements the effect library: one algorithm per effect
// kind, each owning only the delay lines, filters, and LFO state its
// algorithm needs, dispatched through a closed tagged union rather
// than virtual dispatch.
package fx

// Kind is the tagged union discriminant over the ten auxiliary effect
// algorithms.
type Kind int

const (
	KindNull Kind = iota
	KindReverb
	KindChorus
	KindDistortion
	KindEcho
	KindEqualizer
	KindFlanger
	KindRingModulator
	KindCompressor
	KindDedicated
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindReverb:
		return "Reverb"
	case KindChorus:
		return "Chorus"
	case KindDistortion:
		return "Distortion"
	case KindEcho:
		return "Echo"
	case KindEqualizer:
		return "Equalizer"
	case KindFlanger:
		return "Flanger"
	case KindRingModulator:
		return "RingModulator"
	case KindCompressor:
		return "Compressor"
	case KindDedicated:
		return "Dedicated"
	default:
		return "?"
	}
}

// Valid reports whether k names one of the ten recognized effect kinds.
func (k Kind) Valid() bool {
	return k >= KindNull && k <= KindDedicated
}
