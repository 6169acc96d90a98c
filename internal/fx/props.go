package fx

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Waveform selects an LFO/modulator shape. Not every effect supports
// every value; each effect's Normalize snaps out-of-range values to the
// nearest one it supports.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSaw
	WaveSquare
)

// DedicatedTarget selects which speaker a Dedicated effect drives.
type DedicatedTarget int

const (
	DedicatedDialog DedicatedTarget = iota
	DedicatedLowFrequency
)

// ChorusProps configures both the Chorus and Flanger kinds; the two
// kinds share this struct and differ only in default
// max-delay and in the constructor invoked for their Kind.
type ChorusProps struct {
	Waveform   Waveform // WaveSine or WaveTriangle
	RateHz     float64
	Depth      float64 // fraction of max delay, 0..1
	Feedback   float64 // -1..1
	PhaseDeg   float64 // offset between left/right lines
}

func DefaultChorusProps() ChorusProps {
	return ChorusProps{Waveform: WaveTriangle, RateHz: 1.1, Depth: 0.1, Feedback: 0.25, PhaseDeg: 90}
}

func DefaultFlangerProps() ChorusProps {
	return ChorusProps{Waveform: WaveTriangle, RateHz: 0.27, Depth: 1.0, Feedback: -0.5, PhaseDeg: 0}
}

func (p *ChorusProps) Normalize() {
	if p.Waveform != WaveSine {
		p.Waveform = WaveTriangle
	}
	p.RateHz = clampF(p.RateHz, 0, 10)
	p.Depth = clampF(p.Depth, 0, 1)
	p.Feedback = clampF(p.Feedback, -1, 1)
	p.PhaseDeg = clampF(p.PhaseDeg, -180, 180)
}

// CompressorProps configures the B-format Compressor.
type CompressorProps struct {
	OnOff bool
}

func DefaultCompressorProps() CompressorProps { return CompressorProps{OnOff: true} }

func (p *CompressorProps) Normalize() {}

// DedicatedProps configures the Dedicated dialog/LFE effect.
type DedicatedProps struct {
	Target DedicatedTarget
	Gain   float64
}

func DefaultDedicatedProps() DedicatedProps {
	return DedicatedProps{Target: DedicatedDialog, Gain: 1.0}
}

func (p *DedicatedProps) Normalize() {
	if p.Target != DedicatedLowFrequency {
		p.Target = DedicatedDialog
	}
	p.Gain = clampF(p.Gain, 0, 10)
}

// DistortionProps configures the oversampled waveshaper.
type DistortionProps struct {
	Edge           float64 // 0..1
	Gain           float64 // 0.01..1
	LowpassCutoff  float64 // Hz
	EQCenter       float64 // Hz
	EQBandwidth    float64 // Hz
}

func DefaultDistortionProps() DistortionProps {
	return DistortionProps{Edge: 0.2, Gain: 0.05, LowpassCutoff: 8000, EQCenter: 3600, EQBandwidth: 3400}
}

func (p *DistortionProps) Normalize() {
	p.Edge = clampF(p.Edge, 0, 1)
	p.Gain = clampF(p.Gain, 0.01, 1)
	p.LowpassCutoff = clampF(p.LowpassCutoff, 80, 24000)
	p.EQCenter = clampF(p.EQCenter, 80, 24000)
	p.EQBandwidth = clampF(p.EQBandwidth, 80, 24000)
}

// EchoProps configures the two-tap echo.
type EchoProps struct {
	Delay     float64 // seconds, tap 1
	LRDelay   float64 // seconds, additional delay to tap 2
	Damping   float64 // 0..1
	Feedback  float64 // 0..1
	Spread    float64 // -1..1
}

func DefaultEchoProps() EchoProps {
	return EchoProps{Delay: 0.1, LRDelay: 0.1, Damping: 0.5, Feedback: 0.5, Spread: -1}
}

func (p *EchoProps) Normalize() {
	p.Delay = clampF(p.Delay, 0, 0.207)
	p.LRDelay = clampF(p.LRDelay, 0, 0.404)
	p.Damping = clampF(p.Damping, 0, 1)
	p.Feedback = clampF(p.Feedback, 0, 1)
	p.Spread = clampF(p.Spread, -1, 1)
}

// EqualizerProps configures the 4-band cascaded equalizer: one
// low-shelf, two peaking bands, one high-shelf.
type EqualizerProps struct {
	LowGain     float64
	LowCutoff   float64
	Mid1Gain    float64
	Mid1Center  float64
	Mid1Width   float64 // octaves
	Mid2Gain    float64
	Mid2Center  float64
	Mid2Width   float64
	HighGain    float64
	HighCutoff  float64
}

func DefaultEqualizerProps() EqualizerProps {
	return EqualizerProps{
		LowGain: 1, LowCutoff: 200,
		Mid1Gain: 1, Mid1Center: 500, Mid1Width: 1,
		Mid2Gain: 1, Mid2Center: 3000, Mid2Width: 1,
		HighGain: 1, HighCutoff: 6000,
	}
}

func (p *EqualizerProps) Normalize() {
	p.LowGain = clampF(p.LowGain, 0.126, 7.943)
	p.LowCutoff = clampF(p.LowCutoff, 50, 800)
	p.Mid1Gain = clampF(p.Mid1Gain, 0.126, 7.943)
	p.Mid1Center = clampF(p.Mid1Center, 200, 3000)
	p.Mid1Width = clampF(p.Mid1Width, 0.01, 1)
	p.Mid2Gain = clampF(p.Mid2Gain, 0.126, 7.943)
	p.Mid2Center = clampF(p.Mid2Center, 1000, 8000)
	p.Mid2Width = clampF(p.Mid2Width, 0.01, 1)
	p.HighGain = clampF(p.HighGain, 0.126, 7.943)
	p.HighCutoff = clampF(p.HighCutoff, 4000, 16000)
}

// ModulatorProps configures the Ring modulator.
type ModulatorProps struct {
	FrequencyHz    float64
	HighpassCutoff float64
	Waveform       Waveform // WaveSine, WaveSaw, or WaveSquare
}

func DefaultModulatorProps() ModulatorProps {
	return ModulatorProps{FrequencyHz: 440, HighpassCutoff: 800, Waveform: WaveSine}
}

func (p *ModulatorProps) Normalize() {
	p.FrequencyHz = clampF(p.FrequencyHz, 0, 8000)
	p.HighpassCutoff = clampF(p.HighpassCutoff, 0, 24000)
	if p.Waveform != WaveSaw && p.Waveform != WaveSquare {
		p.Waveform = WaveSine
	}
}

// ReverbProps is the EAX-superset parameter set from 
// EAXMode selects between pure "reverb" (input high-shelf disabled) and
// "EAX reverb" (both input filters enabled); switching EAXMode does not
// reset delay-line contents.
type ReverbProps struct {
	EAXMode bool

	Density       float64
	Diffusion     float64
	Gain          float64
	GainHF        float64
	GainLF        float64
	DecayTime     float64
	DecayHFRatio  float64
	DecayLFRatio  float64

	ReflectionsGain  float64
	ReflectionsDelay float64
	ReflectionsPan   [3]float64

	LateReverbGain  float64
	LateReverbDelay float64
	LateReverbPan   [3]float64

	EchoTime  float64
	EchoDepth float64

	ModulationTime  float64
	ModulationDepth float64

	AirAbsorptionGainHF float64
	HFReference         float64
	LFReference         float64
	RoomRolloffFactor   float64
	DecayHFLimit        bool
}

func DefaultReverbProps() ReverbProps {
	return PresetGeneric
}

func (p *ReverbProps) Normalize() {
	p.Density = clampF(p.Density, 0, 1)
	p.Diffusion = clampF(p.Diffusion, 0, 1)
	p.Gain = clampF(p.Gain, 0, 1)
	p.GainHF = clampF(p.GainHF, 0, 1)
	p.GainLF = clampF(p.GainLF, 0, 1)
	p.DecayTime = clampF(p.DecayTime, 0.1, 20)
	p.DecayHFRatio = clampF(p.DecayHFRatio, 0.1, 2)
	p.DecayLFRatio = clampF(p.DecayLFRatio, 0.1, 2)
	p.ReflectionsGain = clampF(p.ReflectionsGain, 0, 3.16)
	p.ReflectionsDelay = clampF(p.ReflectionsDelay, 0, 0.3)
	for i := range p.ReflectionsPan {
		p.ReflectionsPan[i] = clampF(p.ReflectionsPan[i], -1, 1)
	}
	p.LateReverbGain = clampF(p.LateReverbGain, 0, 10)
	p.LateReverbDelay = clampF(p.LateReverbDelay, 0, 0.1)
	for i := range p.LateReverbPan {
		p.LateReverbPan[i] = clampF(p.LateReverbPan[i], -1, 1)
	}
	p.EchoTime = clampF(p.EchoTime, 0.075, 0.25)
	p.EchoDepth = clampF(p.EchoDepth, 0, 1)
	p.ModulationTime = clampF(p.ModulationTime, 0.04, 4)
	p.ModulationDepth = clampF(p.ModulationDepth, 0, 1)
	p.AirAbsorptionGainHF = clampF(p.AirAbsorptionGainHF, 0.892, 1)
	p.HFReference = clampF(p.HFReference, 1000, 20000)
	p.LFReference = clampF(p.LFReference, 20, 1000)
	p.RoomRolloffFactor = clampF(p.RoomRolloffFactor, 0, 10)
}

// Props is the deferred-change-set payload: a full snapshot of
// (effect-kind + effect-props) "Deferred change set"
// entity. Only the fields matching Kind are meaningful; the others are
// retained so a caller round-tripping GetEffect/SetEffect across a kind
// change does not lose the previous kind's tuning.
type Props struct {
	Kind Kind

	Reverb     ReverbProps
	Chorus     ChorusProps
	Flanger    ChorusProps
	Compressor CompressorProps
	Dedicated  DedicatedProps
	Distortion DistortionProps
	Echo       EchoProps
	Equalizer  EqualizerProps
	Modulator  ModulatorProps
}

// DefaultProps returns a Null effect with every sub-struct at its
// documented default, so a freshly constructed slot normalizes cleanly.
func DefaultProps() Props {
	return Props{
		Kind:       KindNull,
		Reverb:     DefaultReverbProps(),
		Chorus:     DefaultChorusProps(),
		Flanger:    DefaultFlangerProps(),
		Compressor: DefaultCompressorProps(),
		Dedicated:  DefaultDedicatedProps(),
		Distortion: DefaultDistortionProps(),
		Echo:       DefaultEchoProps(),
		Equalizer:  DefaultEqualizerProps(),
		Modulator:  DefaultModulatorProps(),
	}
}

// Normalize clamps every sub-struct's out-of-range fields and snaps Kind
// to a legal value "enforced by normalize() on pending
// writes" contract.
func (p *Props) Normalize() {
	if !p.Kind.Valid() {
		p.Kind = KindNull
	}
	p.Reverb.Normalize()
	p.Chorus.Normalize()
	p.Flanger.Normalize()
	p.Compressor.Normalize()
	p.Dedicated.Normalize()
	p.Distortion.Normalize()
	p.Echo.Normalize()
	p.Equalizer.Normalize()
	p.Modulator.Normalize()
}
