package auxfx

import (
	"reflect"

	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/bus"
	"github.com/cbegin/auxfx/internal/fx"
	"github.com/cbegin/auxfx/internal/source"
)

// effectSlot is one auxiliary send: a deferred change set (active/pending
// EffectProps + SendProps) plus the live DSP state it drives
// — a source stage and an effect instance, each owning one 4-lane wet
// bus. Multiple slots let one logical source feed several simultaneous
// effects, each independently trimmed (effect_count); see
// DESIGN.md for why the direct path lives per slot rather than once.
type effectSlot struct {
	activeProps, pendingProps EffectProps
	activeSend, pendingSend   SendProps

	stage  *source.Stage
	effect fx.Effect
	wet    bus.Wet
	dirty  bool
}

// Engine is the DSP core: sampling rate, channel format,
// one dry bus, effect_count effect slots (each with its own wet bus,
// source stage, and effect instance), driven synchronously by Mix.
// Lifetime spans Initialize()...Uninitialize()
type Engine struct {
	initialized  bool
	sampleRate   int
	format       ChannelFormat
	channelCount int
	dec          *ambisonic.Decoder

	slots []effectSlot
	dry   bus.Dry

	errs errRing
}

// New constructs an uninitialized Engine. Call Initialize before Mix.
func New() *Engine {
	return &Engine{errs: newErrRing(32)}
}

// Initialize allocates every rate/format-dependent buffer: the dry bus,
// effectCount effect slots (each with a source stage sized for
// channelCount channels and a Null effect instance)
// sampleRate must be in [8000, 192000]; effectCount must be >= 1.
func (e *Engine) Initialize(format ChannelFormat, sampleRate, effectCount int) error {
	if e.initialized {
		return ErrAlreadyInit
	}
	if !format.Valid() {
		return ErrBadChannelFormat
	}
	if sampleRate < 8000 || sampleRate > 192000 {
		return ErrBadSamplingRate
	}
	if effectCount < 1 {
		return ErrBadEffectCount
	}

	e.format = format
	e.sampleRate = sampleRate
	e.channelCount = format.ChannelCount()
	e.dec = ambisonic.NewDecoder(format)
	e.dry = bus.NewDry(e.channelCount)

	e.slots = make([]effectSlot, effectCount)
	for i := range e.slots {
		s := &e.slots[i]
		s.activeProps = DefaultEffectProps()
		s.pendingProps = DefaultEffectProps()
		s.activeSend = DefaultSendProps()
		s.pendingSend = DefaultSendProps()
		s.stage = source.New(e.channelCount, e.dec)
		s.effect = fx.New(s.activeProps.Kind)
		s.effect.UpdateDevice(e.sampleRate, e.channelCount, e.dec)
		s.wet = bus.NewWet()
		s.dirty = true
	}

	e.initialized = true
	return nil
}

// Uninitialize releases the engine's buffers and resets it to the
// zero-value, unconstructed state.
func (e *Engine) Uninitialize() {
	*e = Engine{errs: e.errs}
}

// SamplingRate returns the engine's fixed sampling rate in Hz.
func (e *Engine) SamplingRate() int { return e.sampleRate }

// Format returns the engine's fixed channel layout.
func (e *Engine) Format() ChannelFormat { return e.format }

// ChannelCount returns channel_count for the engine's layout.
func (e *Engine) ChannelCount() int { return e.channelCount }

// EffectCount returns the number of effect slots the engine was
// initialized with.
func (e *Engine) EffectCount() int { return len(e.slots) }

// LastError returns the most recently recorded diagnostic (typically a
// parameter clamp), or nil if none has been recorded.
func (e *Engine) LastError() error { return e.errs.last() }

func (e *Engine) slot(i int) (*effectSlot, error) {
	if !e.initialized {
		return nil, ErrNotInitialized
	}
	if i < 0 || i >= len(e.slots) {
		return nil, ErrBadSlotIndex
	}
	return &e.slots[i], nil
}

// Effect returns a copy of effect slot i's active (currently mixing)
// EffectProps.
func (e *Engine) Effect(i int) (EffectProps, error) {
	s, err := e.slot(i)
	if err != nil {
		return EffectProps{}, err
	}
	return s.activeProps, nil
}

// DeferredEffect returns a copy of effect slot i's pending EffectProps,
// as mutated by Set* calls not yet promoted by ApplyChanges.
func (e *Engine) DeferredEffect(i int) (EffectProps, error) {
	s, err := e.slot(i)
	if err != nil {
		return EffectProps{}, err
	}
	return s.pendingProps, nil
}

// SetEffectType mutates only the pending effect kind for slot i; the
// per-kind property sub-structs (and every other kind's tuning) are
// left untouched, so switching kinds and back recovers prior tuning.
func (e *Engine) SetEffectType(i int, kind EffectKind) error {
	s, err := e.slot(i)
	if err != nil {
		return err
	}
	before := kind
	if !kind.Valid() {
		kind = fx.KindNull
	}
	s.pendingProps.Kind = kind
	if before != kind {
		e.errs.push(clampDiagnostic("effect kind", i))
	}
	return nil
}

// SetEffectProps overwrites every per-kind property sub-struct of slot
// i's pending EffectProps from props, without touching the pending
// kind — use this to tune the effect currently selected by
// SetEffectType. Out-of-range fields are clamped by Normalize and
// recorded as a diagnostic rather than failing the call.
func (e *Engine) SetEffectProps(i int, props EffectProps) error {
	s, err := e.slot(i)
	if err != nil {
		return err
	}
	kind := s.pendingProps.Kind
	before := props
	props.Normalize()
	if !reflect.DeepEqual(before, props) {
		e.errs.push(clampDiagnostic("effect props", i))
	}
	props.Kind = kind
	s.pendingProps = props
	return nil
}

// SetEffect atomically replaces slot i's entire pending EffectProps
// (kind and every sub-struct) in one step, mirroring 
// "attach this effect object to the slot" operation.
func (e *Engine) SetEffect(i int, props EffectProps) error {
	s, err := e.slot(i)
	if err != nil {
		return err
	}
	before := props
	props.Normalize()
	if !reflect.DeepEqual(before, props) {
		e.errs.push(clampDiagnostic("effect", i))
	}
	s.pendingProps = props
	return nil
}

// SendProps returns a copy of effect slot i's active SendProps.
func (e *Engine) SendProps(i int) (SendProps, error) {
	s, err := e.slot(i)
	if err != nil {
		return SendProps{}, err
	}
	return s.activeSend, nil
}

// SetSendProps mutates slot i's pending SendProps.
func (e *Engine) SetSendProps(i int, sp SendProps) error {
	s, err := e.slot(i)
	if err != nil {
		return err
	}
	before := sp
	sp.Normalize()
	if !reflect.DeepEqual(before, sp) {
		e.errs.push(clampDiagnostic("send props", i))
	}
	s.pendingSend = sp
	return nil
}

// ApplyChanges promotes every slot's pending (EffectProps, SendProps)
// snapshot into its active snapshot. A slot whose effect kind changed
// gets a freshly constructed Effect instance, sized via UpdateDevice
// before the next Mix call touches it (Effect invariant:
// "the previous state is destroyed and the new state is constructed in
// its initial silent configuration before the next block is
// processed"). Every slot is marked dirty so Mix recomputes its
// coefficients from the newly active props on its next chunk.
func (e *Engine) ApplyChanges() error {
	if !e.initialized {
		return ErrNotInitialized
	}
	for i := range e.slots {
		s := &e.slots[i]
		kindChanged := s.pendingProps.Kind != s.activeProps.Kind
		s.activeProps = s.pendingProps
		s.activeSend = s.pendingSend
		if kindChanged {
			s.effect = fx.New(s.activeProps.Kind)
			s.effect.UpdateDevice(e.sampleRate, e.channelCount, e.dec)
		}
		s.dirty = true
	}
	return nil
}

// Mix processes n frames from src (n*channel_count interleaved float32
// samples) and adds the dry+wet mix into dst (same shape). The block
// loop chunks at MaxUpdate frames, zeroes
// the dry bus and every slot's wet bus per chunk, lazily recomputes a
// dirty slot's coefficients, runs each slot's source stage and effect,
// and accumulates the result into dst without overwriting what the
// caller already placed there.
func (e *Engine) Mix(n int, src, dst []float32) error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if n <= 0 {
		return ErrBadFrameCount
	}
	if len(src) < n*e.channelCount || len(dst) < n*e.channelCount {
		return ErrShortBuffer
	}

	off := 0
	for remaining := n; remaining > 0; {
		chunk := remaining
		if chunk > bus.MaxUpdate {
			chunk = bus.MaxUpdate
		}
		e.dry.Zero(chunk)

		chunkSrc := src[off*e.channelCount : (off+chunk)*e.channelCount]
		for i := range e.slots {
			s := &e.slots[i]
			if s.dirty {
				s.effect.Update(e.sampleRate, &s.activeProps)
				s.stage.Update(e.sampleRate, &s.activeSend)
				s.dirty = false
			}
			s.wet.Zero(chunk)
			s.stage.Process(chunk, chunkSrc, e.channelCount, e.dry, s.wet)
			s.effect.Process(chunk, s.wet, e.dry)
		}

		base := off * e.channelCount
		for ch := 0; ch < e.channelCount; ch++ {
			lane := e.dry[ch]
			for t := 0; t < chunk; t++ {
				dst[base+t*e.channelCount+ch] += lane[t]
			}
		}

		off += chunk
		remaining -= chunk
	}
	return nil
}

