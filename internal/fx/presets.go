package fx

// Reverb presets reproduce the well-known I3DL2/EAX environment table as
// read-only ReverbProps values. Field order matches ReverbProps; every
// preset uses EAXMode=true since I3DL2 environments specify both
// gain_hf and gain_lf.

func preset(density, diffusion, gain, gainHF, gainLF, decayTime, decayHFRatio, decayLFRatio,
	reflGain, reflDelay float64, reflPan [3]float64,
	lateGain, lateDelay float64, latePan [3]float64,
	echoTime, echoDepth, modTime, modDepth, airHF, roomRolloff float64, hfLimit bool) ReverbProps {
	return ReverbProps{
		EAXMode:             true,
		Density:             density,
		Diffusion:           diffusion,
		Gain:                gain,
		GainHF:              gainHF,
		GainLF:              gainLF,
		DecayTime:           decayTime,
		DecayHFRatio:        decayHFRatio,
		DecayLFRatio:        decayLFRatio,
		ReflectionsGain:     reflGain,
		ReflectionsDelay:    reflDelay,
		ReflectionsPan:      reflPan,
		LateReverbGain:      lateGain,
		LateReverbDelay:     lateDelay,
		LateReverbPan:       latePan,
		EchoTime:            echoTime,
		EchoDepth:           echoDepth,
		ModulationTime:      modTime,
		ModulationDepth:     modDepth,
		AirAbsorptionGainHF: airHF,
		HFReference:         5000,
		LFReference:         250,
		RoomRolloffFactor:   roomRolloff,
		DecayHFLimit:        hfLimit,
	}
}

var zeroPan = [3]float64{0, 0, 0}

var (
	PresetGeneric = preset(1.0, 1.0, 0.32, 0.89, 0.0, 1.49, 0.83, 1.0,
		0.05, 0.007, zeroPan, 1.26, 0.011, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetPaddedCell = preset(0.17, 1.0, 0.32, 0.17, 0.0, 0.17, 0.1, 1.0,
		0.25, 0.001, zeroPan, 1.269, 0.002, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetRoom = preset(0.42, 1.0, 0.32, 0.39, 0.0, 0.4, 0.83, 1.0,
		0.15, 0.002, zeroPan, 1.062, 0.003, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetBathroom = preset(0.17, 1.0, 0.32, 0.54, 0.0, 1.49, 0.54, 1.0,
		0.633, 0.007, zeroPan, 3.273, 0.011, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetLivingRoom = preset(0.97, 1.0, 0.32, 0.28, 0.0, 0.5, 0.1, 1.0,
		0.205, 0.003, zeroPan, 0.28, 0.004, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetStoneRoom = preset(1.0, 1.0, 0.32, 0.71, 0.0, 2.31, 0.64, 1.0,
		0.448, 0.012, zeroPan, 1.71, 0.017, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetAuditorium = preset(1.0, 1.0, 0.32, 0.46, 0.0, 4.32, 0.59, 1.0,
		0.403, 0.02, zeroPan, 1.997, 0.03, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetConcertHall = preset(1.0, 1.0, 0.32, 0.57, 0.0, 3.92, 0.7, 1.0,
		0.263, 0.02, zeroPan, 1.588, 0.029, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetCave = preset(1.0, 1.0, 0.32, 1.0, 0.0, 2.91, 1.3, 1.0,
		0.5, 0.015, zeroPan, 0.706, 0.022, zeroPan, 0.25, 0.0, 0.25, 0.0, 1.0, 0.0, false)

	PresetArena = preset(1.0, 1.0, 0.32, 0.45, 0.0, 7.24, 0.33, 1.0,
		0.261, 0.02, zeroPan, 1.066, 0.03, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetHangar = preset(1.0, 1.0, 0.32, 0.23, 0.0, 10.05, 0.23, 1.0,
		0.488, 0.02, zeroPan, 0.924, 0.03, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetCarpetedHallway = preset(0.43, 1.0, 0.32, 0.01, 0.0, 0.3, 0.1, 1.0,
		0.121, 0.002, zeroPan, 0.029, 0.03, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetHallway = preset(0.72, 1.0, 0.32, 0.59, 0.0, 1.49, 0.59, 1.0,
		0.245, 0.007, zeroPan, 1.019, 0.011, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetStoneCorridor = preset(1.0, 1.0, 0.32, 0.76, 0.0, 2.7, 0.79, 1.0,
		0.247, 0.013, zeroPan, 1.463, 0.02, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetAlley = preset(1.0, 0.3, 0.32, 0.73, 0.0, 1.49, 0.86, 1.0,
		0.25, 0.007, zeroPan, 0.995, 0.011, zeroPan, 0.125, 0.95, 0.25, 0.0, 0.994, 0.0, true)

	PresetForest = preset(1.0, 0.3, 0.32, 0.54, 0.0, 1.49, 0.54, 1.0,
		0.052, 0.162, zeroPan, 0.768, 0.088, zeroPan, 0.125, 1.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetCity = preset(1.0, 0.5, 0.32, 0.67, 0.0, 1.49, 0.67, 1.0,
		0.073, 0.007, zeroPan, 0.142, 0.011, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetMountains = preset(1.0, 0.27, 0.32, 0.21, 0.0, 1.49, 0.21, 1.0,
		0.0407, 0.3, zeroPan, 0.193, 0.1, zeroPan, 0.25, 1.0, 0.25, 0.0, 0.994, 0.0, false)

	PresetQuarry = preset(1.0, 1.0, 0.32, 0.83, 0.0, 1.49, 0.83, 1.0,
		0.0, 0.061, zeroPan, 1.111, 0.025, zeroPan, 0.125, 0.7, 0.25, 0.0, 0.994, 0.0, true)

	PresetPlain = preset(1.0, 0.21, 0.32, 0.5, 0.0, 1.49, 0.5, 1.0,
		0.0243, 0.179, zeroPan, 0.111, 0.1, zeroPan, 0.25, 1.0, 0.25, 0.0, 0.994, 0.0, false)

	PresetParkingLot = preset(1.0, 1.0, 0.32, 1.0, 0.0, 1.65, 1.5, 1.0,
		0.208, 0.008, zeroPan, 0.265, 0.012, zeroPan, 0.25, 0.0, 0.25, 0.0, 1.0, 0.0, false)

	PresetSewerPipe = preset(0.14, 0.8, 0.32, 0.14, 0.0, 2.81, 0.14, 1.0,
		0.639, 0.014, zeroPan, 1.011, 0.021, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetUnderwater = preset(0.18, 0.7, 0.32, 0.006, 0.0, 1.49, 0.1, 1.0,
		0.596, 0.007, zeroPan, 7.079, 0.011, zeroPan, 0.25, 0.0, 1.18, 0.348, 0.994, 0.0, true)

	PresetDrugged = preset(0.25, 0.5, 0.32, 1.0, 0.0, 8.39, 1.39, 1.0,
		0.875, 0.002, zeroPan, 3.108, 0.03, zeroPan, 0.25, 0.0, 0.25, 1.0, 0.994, 0.0, true)

	PresetDizzy = preset(0.6, 0.6, 0.32, 0.81, 0.0, 17.23, 0.56, 1.0,
		0.139, 0.02, zeroPan, 0.486, 0.03, zeroPan, 0.25, 1.0, 0.81, 0.31, 0.994, 0.0, true)

	PresetPsychotic = preset(0.5, 0.3, 0.32, 0.0, 0.0, 7.56, 0.91, 1.0,
		0.486, 0.02, zeroPan, 2.44, 0.03, zeroPan, 0.25, 0.0, 4.0, 1.0, 0.994, 0.0, true)

	PresetCastleSmallRoom = preset(1.0, 0.89, 0.32, 0.3162, 0.4571, 1.22, 0.83, 0.31,
		0.891, 0.022, zeroPan, 1.9953, 0.011, zeroPan, 0.138, 0.08, 0.25, 0.0, 0.994, 0.0, true)

	PresetCastleLongPassage = preset(1.0, 0.89, 0.32, 0.3162, 0.3162, 3.42, 0.79, 0.31,
		0.891, 0.007, zeroPan, 1.4125, 0.023, zeroPan, 0.135, 0.87, 0.25, 0.0, 0.994, 0.0, true)

	PresetCastleHall = preset(1.0, 0.81, 0.32, 0.2818, 0.1778, 3.14, 0.79, 0.62,
		0.1778, 0.016, zeroPan, 1.1220, 0.03, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)

	PresetFactorySmallRoom = preset(0.36, 0.82, 0.32, 0.7943, 0.5012, 1.72, 0.65, 1.31,
		0.7079, 0.01, zeroPan, 1.7783, 0.024, zeroPan, 0.119, 0.07, 0.25, 0.0, 0.994, 0.0, true)

	PresetFactoryAlcove = preset(0.3, 0.59, 0.32, 0.7943, 0.5012, 3.14, 0.65, 1.31,
		1.4125, 0.007, zeroPan, 1.0, 0.011, zeroPan, 0.162, 0.01, 0.25, 0.0, 0.994, 0.0, true)

	PresetIcePalaceSmallRoom = preset(1.0, 0.84, 0.32, 0.5623, 0.8913, 1.51, 1.53, 0.27,
		0.8913, 0.01, zeroPan, 1.4125, 0.011, zeroPan, 0.164, 0.14, 0.25, 0.0, 0.994, 0.0, true)

	PresetSpaceStationSmallRoom = preset(0.2, 0.7, 0.32, 0.7079, 0.8913, 1.72, 0.82, 0.55,
		0.7943, 0.007, zeroPan, 1.7783, 0.013, zeroPan, 0.25, 0.0, 0.25, 0.0, 0.994, 0.0, true)
)

// Presets is the named table of read-only reverb environments. Map
// iteration order is unspecified; callers needing a stable list
// should range over a fixed slice of names instead.
var Presets = map[string]ReverbProps{
	"Generic":                PresetGeneric,
	"PaddedCell":              PresetPaddedCell,
	"Room":                    PresetRoom,
	"Bathroom":                PresetBathroom,
	"LivingRoom":              PresetLivingRoom,
	"StoneRoom":               PresetStoneRoom,
	"Auditorium":              PresetAuditorium,
	"ConcertHall":             PresetConcertHall,
	"Cave":                    PresetCave,
	"Arena":                   PresetArena,
	"Hangar":                  PresetHangar,
	"CarpetedHallway":         PresetCarpetedHallway,
	"Hallway":                 PresetHallway,
	"StoneCorridor":           PresetStoneCorridor,
	"Alley":                   PresetAlley,
	"Forest":                  PresetForest,
	"City":                    PresetCity,
	"Mountains":               PresetMountains,
	"Quarry":                  PresetQuarry,
	"Plain":                   PresetPlain,
	"ParkingLot":              PresetParkingLot,
	"SewerPipe":               PresetSewerPipe,
	"Underwater":              PresetUnderwater,
	"Drugged":                 PresetDrugged,
	"Dizzy":                   PresetDizzy,
	"Psychotic":               PresetPsychotic,
	"CastleSmallRoom":         PresetCastleSmallRoom,
	"CastleLongPassage":       PresetCastleLongPassage,
	"CastleHall":              PresetCastleHall,
	"FactorySmallRoom":        PresetFactorySmallRoom,
	"FactoryAlcove":           PresetFactoryAlcove,
	"IcePalaceSmallRoom":      PresetIcePalaceSmallRoom,
	"SpaceStationSmallRoom":   PresetSpaceStationSmallRoom,
}
