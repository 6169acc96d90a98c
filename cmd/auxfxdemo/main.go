// Command auxfxdemo drives the auxfx Engine over a generated tone and
// writes the dry+wet mix to a .wav file, for manual inspection of an
// effect's output. The engine itself has no file or device dependency;
// this command supplies both only as an external harness.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/cbegin/auxfx"
	"github.com/cbegin/auxfx/internal/wav"
)

func main() {
	var (
		sampleRate = flag.Int("sample-rate", 44100, "sampling rate in Hz")
		format     = flag.String("format", "stereo", "channel format: mono|stereo|quad|5.1|5.1-rear|6.1|7.1")
		kind       = flag.String("effect", "reverb", "effect kind: null|reverb|chorus|flanger|distortion|echo|equalizer|ringmod|compressor|dedicated")
		preset     = flag.String("preset", "Generic", "reverb preset name (only when -effect=reverb)")
		seconds    = flag.Float64("seconds", 2.0, "tone + tail duration in seconds")
		toneHz     = flag.Float64("tone-hz", 440, "test tone frequency in Hz")
		out        = flag.String("out", "auxfx-demo.wav", "output .wav path")
	)
	flag.Parse()

	cf, err := parseFormat(*format)
	if err != nil {
		log.Fatal(err)
	}
	ek, err := parseKind(*kind)
	if err != nil {
		log.Fatal(err)
	}

	e := auxfx.New()
	if err := e.Initialize(cf, *sampleRate, 1); err != nil {
		log.Fatal(err)
	}
	defer e.Uninitialize()

	props := auxfx.DefaultEffectProps()
	props.Kind = ek
	if ek == auxfx.KindReverb {
		if p, ok := auxfx.Presets[*preset]; ok {
			props.Reverb = p
		} else {
			log.Fatalf("unknown reverb preset %q", *preset)
		}
	}
	if err := e.SetEffect(0, props); err != nil {
		log.Fatal(err)
	}
	if err := e.ApplyChanges(); err != nil {
		log.Fatal(err)
	}

	channelCount := e.ChannelCount()
	frames := int(*seconds * float64(*sampleRate))
	src := make([]float32, frames*channelCount)
	for t := 0; t < frames && t < *sampleRate; t++ {
		v := float32(0.5 * math.Sin(2*math.Pi* *toneHz*float64(t)/float64(*sampleRate)))
		for ch := 0; ch < channelCount; ch++ {
			src[t*channelCount+ch] = v
		}
	}
	dst := make([]float32, frames*channelCount)

	if err := e.Mix(frames, src, dst); err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile(*out, wav.EncodeFloat32LE(dst, *sampleRate, channelCount), 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%d frames, %d channels, effect=%s)\n", *out, frames, channelCount, ek)
}

func parseFormat(name string) (auxfx.ChannelFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mono":
		return auxfx.Mono, nil
	case "stereo":
		return auxfx.Stereo, nil
	case "quad":
		return auxfx.Quad, nil
	case "5.1":
		return auxfx.X51, nil
	case "5.1-rear":
		return auxfx.X51Rear, nil
	case "6.1":
		return auxfx.X61, nil
	case "7.1":
		return auxfx.X71, nil
	default:
		return 0, fmt.Errorf("invalid -format %q", name)
	}
}

func parseKind(name string) (auxfx.EffectKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "null":
		return auxfx.KindNull, nil
	case "reverb":
		return auxfx.KindReverb, nil
	case "chorus":
		return auxfx.KindChorus, nil
	case "flanger":
		return auxfx.KindFlanger, nil
	case "distortion":
		return auxfx.KindDistortion, nil
	case "echo":
		return auxfx.KindEcho, nil
	case "equalizer":
		return auxfx.KindEqualizer, nil
	case "ringmod":
		return auxfx.KindRingModulator, nil
	case "compressor":
		return auxfx.KindCompressor, nil
	case "dedicated":
		return auxfx.KindDedicated, nil
	default:
		return 0, fmt.Errorf("invalid -effect %q", name)
	}
}
