package source

import (
	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/biquad"
	"github.com/cbegin/auxfx/internal/bus"
)

// channelLeg is one of the source stage's two parallel filter+gain
// pipelines (direct or aux) for a single input channel: a low-shelf
// biquad, a high-shelf biquad, and a current/target gain pair ramped
// linearly over each block Source stage entity.
type channelLeg struct {
	lowShelf, highShelf *biquad.Filter
	currentGain         float64
	targetGain          float64
	primed              bool // true once update has run at least once
}

func newChannelLeg() *channelLeg {
	return &channelLeg{
		lowShelf:  biquad.NewPassthrough(),
		highShelf: biquad.NewPassthrough(),
	}
}

func (l *channelLeg) update(sampleRate int, p *PathProps) {
	sr := float64(sampleRate)
	l.lowShelf.Set(biquad.LowShelf, p.GainLF, p.LFRef/sr, biquad.ReciprocalQFromSlope(p.GainLF, 0.75))
	l.highShelf.Set(biquad.HighShelf, p.GainHF, p.HFRef/sr, biquad.ReciprocalQFromSlope(p.GainHF, 0.75))
	l.targetGain = p.Gain
	if !l.primed {
		// The very first Update establishes the starting configuration;
		// nothing should audibly fade in from silence before any block
		// has been mixed.
		l.currentGain = l.targetGain
		l.primed = true
	}
}

func (l *channelLeg) reset() {
	l.lowShelf.Reset()
	l.highShelf.Reset()
	l.currentGain = l.targetGain
}

// process filters n samples of src into dst, then ramps dst in place
// from currentGain to targetGain and commits currentGain = targetGain,
// per the invariant that current_gain equals the previously committed
// target_gain at the start of each block.
func (l *channelLeg) process(n int, src, dst []float32) {
	l.lowShelf.Process(n, src, dst)
	l.highShelf.Process(n, dst, dst)
	if n == 0 {
		return
	}
	g := l.currentGain
	step := (l.targetGain - g) / float64(n)
	for t := 0; t < n; t++ {
		dst[t] = float32(float64(dst[t]) * g)
		g += step
	}
	l.currentGain = l.targetGain
}

// Stage is the full source stage driving one effect slot's dry and wet
// contributions: channel_count parallel direct legs (feeding the dry bus
// 1:1 per channel) and channel_count parallel aux legs (feeding the
// shared 4-lane wet bus through a per-channel first-order encode vector).
//
// The encode vector for channel i is the leading 4 coefficients (W, Y, Z,
// X) of that channel's ambisonic decoder row: decode and a simple
// first-order re-encode share the same per-speaker spherical-harmonic
// sample vector up to normalization, so no separate encoding table is
// needed (see DESIGN.md).
type Stage struct {
	direct []*channelLeg
	aux    []*channelLeg
	encode [][4]float64

	scratch []float32 // per-channel deinterleave/filter scratch, MaxUpdate wide
}

// New builds a Stage sized for channelCount channels, deriving its
// encode vectors from dec.
func New(channelCount int, dec *ambisonic.Decoder) *Stage {
	s := &Stage{scratch: make([]float32, bus.MaxUpdate)}
	s.UpdateDevice(channelCount, dec)
	return s
}

// UpdateDevice re-allocates the per-channel legs and encode vectors when
// channel count or channel format changes
// update_device contract.
func (s *Stage) UpdateDevice(channelCount int, dec *ambisonic.Decoder) {
	s.direct = make([]*channelLeg, channelCount)
	s.aux = make([]*channelLeg, channelCount)
	s.encode = make([][4]float64, channelCount)
	for i := 0; i < channelCount; i++ {
		s.direct[i] = newChannelLeg()
		s.aux[i] = newChannelLeg()
		row := dec.Row(i)
		s.encode[i] = [4]float64{row[0], row[1], row[2], row[3]}
	}
}

// Update recomputes every channel leg's filter coefficients and target
// gains from the current send-properties snapshot. Both legs of every
// channel share the one SendProps record.
func (s *Stage) Update(sampleRate int, p *SendProps) {
	for _, leg := range s.direct {
		leg.update(sampleRate, &p.Direct)
	}
	for _, leg := range s.aux {
		leg.update(sampleRate, &p.Aux)
	}
}

// Reset silences filter history and snaps every gain ramp's current
// value to its target, without reallocating.
func (s *Stage) Reset() {
	for _, leg := range s.direct {
		leg.reset()
	}
	for _, leg := range s.aux {
		leg.reset()
	}
}

// Process deinterleaves n frames of src (channelCount channels) and
// drives both legs: the direct leg's output is added into dry[i], and
// the aux leg's output is encoded and added into the 4-lane wet bus.
func (s *Stage) Process(n int, src []float32, channelCount int, dry bus.Dry, wet bus.Wet) {
	s.processLeg(s.direct, n, src, channelCount, func(i, t int, v float32) { dry[i][t] += v })
	s.processLeg(s.aux, n, src, channelCount, func(i, t int, v float32) {
		e := s.encode[i]
		wet[0][t] += float32(float64(v) * e[0])
		wet[1][t] += float32(float64(v) * e[1])
		wet[2][t] += float32(float64(v) * e[2])
		wet[3][t] += float32(float64(v) * e[3])
	})
}

// processLeg filters and gain-ramps channel i of src through legs[i],
// invoking emit(i, t, sample) for each output sample.
func (s *Stage) processLeg(legs []*channelLeg, n int, src []float32, channelCount int, emit func(i, t int, v float32)) {
	lane := s.scratch[:n]
	for i, leg := range legs {
		for t := 0; t < n; t++ {
			lane[t] = src[t*channelCount+i]
		}
		leg.process(n, lane, lane)
		for t := 0; t < n; t++ {
			emit(i, t, lane[t])
		}
	}
}
