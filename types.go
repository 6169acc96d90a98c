// Package auxfx implements an ambisonic auxiliary-effects DSP engine: a
// fixed-topology send/return mixer that applies exactly one of ten
// effect algorithms (reverb, chorus, flanger, distortion, echo,
// equalizer, ring modulator, compressor, dedicated dialog/LFE, or null)
// to a stream of interleaved float32 PCM.
//
// The public surface re-exports the data-model types from this
// package's internal DSP primitives (channel formats, effect kinds and
// their property structs, reverb presets, send properties) so that
// callers outside this module never need to import an internal/ path.
package auxfx

import (
	"github.com/cbegin/auxfx/internal/chformat"
	"github.com/cbegin/auxfx/internal/fx"
	"github.com/cbegin/auxfx/internal/source"
)

// ChannelFormat is the engine's fixed output channel layout. See
// chformat.Format for the full per-layout speaker ordering.
type ChannelFormat = chformat.Format

const (
	Mono    = chformat.Mono
	Stereo  = chformat.Stereo
	Quad    = chformat.Quad
	X51     = chformat.X51
	X51Rear = chformat.X51Rear
	X61     = chformat.X61
	X71     = chformat.X71
)

// Speaker identifies a logical output position (front-left, LFE, ...).
type Speaker = chformat.Speaker

// EffectKind is the tagged-union discriminant over the ten auxiliary
// effect algorithms.
type EffectKind = fx.Kind

const (
	KindNull          = fx.KindNull
	KindReverb        = fx.KindReverb
	KindChorus        = fx.KindChorus
	KindFlanger       = fx.KindFlanger
	KindDistortion    = fx.KindDistortion
	KindEcho          = fx.KindEcho
	KindEqualizer     = fx.KindEqualizer
	KindRingModulator = fx.KindRingModulator
	KindCompressor    = fx.KindCompressor
	KindDedicated     = fx.KindDedicated
)

// Waveform selects an LFO/modulator shape.
type Waveform = fx.Waveform

const (
	WaveSine     = fx.WaveSine
	WaveTriangle = fx.WaveTriangle
	WaveSaw      = fx.WaveSaw
	WaveSquare   = fx.WaveSquare
)

// DedicatedTarget selects which speaker the Dedicated effect drives.
type DedicatedTarget = fx.DedicatedTarget

const (
	DedicatedDialog       = fx.DedicatedDialog
	DedicatedLowFrequency = fx.DedicatedLowFrequency
)

// Per-kind effect property structs (*).
type (
	ReverbProps     = fx.ReverbProps
	ChorusProps     = fx.ChorusProps
	CompressorProps = fx.CompressorProps
	DedicatedProps  = fx.DedicatedProps
	DistortionProps = fx.DistortionProps
	EchoProps       = fx.EchoProps
	EqualizerProps  = fx.EqualizerProps
	ModulatorProps  = fx.ModulatorProps
)

// EffectProps is the full deferred-change-set payload: an effect kind
// plus every kind's property sub-struct ("Effect" and
// "Deferred change set" entities). Only the sub-struct matching Kind is
// meaningful at any given time; the others are retained so switching
// kinds and back does not lose prior tuning.
type EffectProps = fx.Props

// DefaultEffectProps returns a Null effect with every sub-struct at its
// documented default.
func DefaultEffectProps() EffectProps { return fx.DefaultProps() }

// Reverb presets: a fixed table of named I3DL2/EAX environments, exposed
// as read-only ReverbProps values.
var (
	PresetGeneric               = fx.PresetGeneric
	PresetPaddedCell            = fx.PresetPaddedCell
	PresetRoom                  = fx.PresetRoom
	PresetBathroom              = fx.PresetBathroom
	PresetLivingRoom            = fx.PresetLivingRoom
	PresetStoneRoom             = fx.PresetStoneRoom
	PresetAuditorium            = fx.PresetAuditorium
	PresetConcertHall           = fx.PresetConcertHall
	PresetCave                  = fx.PresetCave
	PresetArena                 = fx.PresetArena
	PresetHangar                = fx.PresetHangar
	PresetCarpetedHallway       = fx.PresetCarpetedHallway
	PresetHallway               = fx.PresetHallway
	PresetStoneCorridor         = fx.PresetStoneCorridor
	PresetAlley                 = fx.PresetAlley
	PresetForest                = fx.PresetForest
	PresetCity                  = fx.PresetCity
	PresetMountains             = fx.PresetMountains
	PresetQuarry                = fx.PresetQuarry
	PresetPlain                 = fx.PresetPlain
	PresetParkingLot            = fx.PresetParkingLot
	PresetSewerPipe             = fx.PresetSewerPipe
	PresetUnderwater            = fx.PresetUnderwater
	PresetDrugged               = fx.PresetDrugged
	PresetDizzy                 = fx.PresetDizzy
	PresetPsychotic             = fx.PresetPsychotic
	PresetCastleSmallRoom       = fx.PresetCastleSmallRoom
	PresetCastleLongPassage     = fx.PresetCastleLongPassage
	PresetCastleHall            = fx.PresetCastleHall
	PresetFactorySmallRoom      = fx.PresetFactorySmallRoom
	PresetFactoryAlcove         = fx.PresetFactoryAlcove
	PresetIcePalaceSmallRoom    = fx.PresetIcePalaceSmallRoom
	PresetSpaceStationSmallRoom = fx.PresetSpaceStationSmallRoom

	// Presets is the full named table, for callers that want to look a
	// preset up by name instead of referencing the constant directly.
	Presets = fx.Presets
)

// PathProps is one leg (direct or aux) of a SendProps record: an overall
// linear gain plus a low-shelf and high-shelf gain applied at LFRef/HFRef.
type PathProps = source.PathProps

// SendProps is the send-properties record for one effect slot: a direct
// path (feeding the dry bus) and an aux path (feeding that slot's wet
// bus).
type SendProps = source.SendProps

// DefaultSendProps returns unity gain on both legs with HFRef/LFRef at
// their fixed 5000 Hz / 250 Hz defaults.
func DefaultSendProps() SendProps { return source.DefaultSendProps() }
