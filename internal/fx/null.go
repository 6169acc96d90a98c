package fx

import (
	"github.com/cbegin/auxfx/internal/ambisonic"
	"github.com/cbegin/auxfx/internal/bus"
)

// nullEffect is the Null effect kind: process does nothing.
type nullEffect struct{}

func newNull() *nullEffect { return &nullEffect{} }

func (e *nullEffect) UpdateDevice(sampleRate, channelCount int, dec *ambisonic.Decoder) {}
func (e *nullEffect) Update(sampleRate int, p *Props)                                   {}
func (e *nullEffect) Process(n int, wet bus.Wet, dry bus.Dry)                           {}
func (e *nullEffect) Reset()                                                            {}
