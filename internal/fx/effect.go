package fx

import (
	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/bus"
)

// Effect is the per-kind algorithm contract: construct (via the kind's
// New function), UpdateDevice, Update, and Process.
type Effect interface {
	// UpdateDevice re-allocates rate/channel-count-dependent buffers. Called
	// once at construction and again whenever sampling rate or channel
	// count changes.
	UpdateDevice(sampleRate, channelCount int, dec *ambisonic.Decoder)

	// Update recomputes coefficients from the current props snapshot.
	Update(sampleRate int, p *Props)

	// Process reads n frames from wet and adds gained contributions into
	// dry; it never overwrites dry.
	Process(n int, wet bus.Wet, dry bus.Dry)

	// Reset silences all owned state (delay lines, filter history, LFO
	// phase) without releasing buffers.
	Reset()
}

// New constructs a fresh Effect instance for kind in its initial silent
// configuration. A kind change destroys the previous state and builds
// the new one before the next block.
func New(kind Kind) Effect {
	switch kind {
	case KindReverb:
		return newReverb()
	case KindChorus:
		return newChorusFlanger(0.016, false)
	case KindFlanger:
		return newChorusFlanger(0.004, true)
	case KindDistortion:
		return newDistortion()
	case KindEcho:
		return newEcho()
	case KindEqualizer:
		return newEqualizer()
	case KindRingModulator:
		return newModulator()
	case KindCompressor:
		return newCompressor()
	case KindDedicated:
		return newDedicated()
	default:
		return newNull()
	}
}
