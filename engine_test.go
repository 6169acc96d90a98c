package auxfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	require.NoError(t, e.Initialize(Stereo, 44100, 1))
	t.Cleanup(e.Uninitialize)
	return e
}

func impulse(channelCount, frames int) []float32 {
	src := make([]float32, frames*channelCount)
	src[0] = 1.0
	return src
}

// S1: a Null effect is a transparent send/return — dst[0]==1, dst[1]==0,
// all subsequent frames 0 (scenario S1).
func TestS1NullEffectPassthrough(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetEffectType(0, KindNull))
	require.NoError(t, e.ApplyChanges())

	src := impulse(2, 256)
	dst := make([]float32, len(src))
	require.NoError(t, e.Mix(256, src, dst))

	assert.InDelta(t, 1.0, dst[0], 1e-6)
	assert.InDelta(t, 0.0, dst[1], 1e-6)
	for i := 2; i < len(dst); i++ {
		assert.InDeltaf(t, 0.0, dst[i], 1e-6, "frame %d", i/2)
	}
}

// Invariant 6: a null-effect engine satisfies dst[k] += send.gain*src[k].
func TestNullEffectScalesByDirectGain(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetEffectType(0, KindNull))
	sp := DefaultSendProps()
	sp.Direct.Gain = 0.25
	require.NoError(t, e.SetSendProps(0, sp))
	require.NoError(t, e.ApplyChanges())

	src := impulse(2, 64)
	dst := make([]float32, len(src))
	require.NoError(t, e.Mix(64, src, dst))

	assert.InDelta(t, 0.25, dst[0], 1e-3)
}

// Mix accumulates into dst rather than overwriting it.
func TestMixAccumulatesIntoExistingOutput(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetEffectType(0, KindNull))
	require.NoError(t, e.ApplyChanges())

	src := impulse(2, 8)
	dst := make([]float32, len(src))
	for i := range dst {
		dst[i] = 0.5
	}
	require.NoError(t, e.Mix(8, src, dst))
	assert.InDelta(t, 1.5, dst[0], 1e-6)
	assert.InDelta(t, 0.5, dst[1], 1e-6)
}

// Invariant 7 / property 8: two sequential Mix calls on contiguous input
// equal one Mix call on the concatenation, for a chunk size that crosses
// MAX_UPDATE (256).
func TestBlockIndependenceAcrossMaxUpdateBoundary(t *testing.T) {
	e1 := newTestEngine(t)
	e2 := newTestEngine(t)
	for _, e := range []*Engine{e1, e2} {
		require.NoError(t, e.SetEffectType(0, KindEcho))
		require.NoError(t, e.ApplyChanges())
	}

	const total = 300 // crosses MaxUpdate=256
	channelCount := 2
	src := make([]float32, total*channelCount)
	src[0], src[2] = 1.0, 0.6
	src[20*channelCount] = 0.3

	dstOne := make([]float32, total*channelCount)
	require.NoError(t, e1.Mix(total, src, dstOne))

	dstSplit := make([]float32, total*channelCount)
	const split = 150
	require.NoError(t, e2.Mix(split, src[:split*channelCount], dstSplit[:split*channelCount]))
	require.NoError(t, e2.Mix(total-split, src[split*channelCount:], dstSplit[split*channelCount:]))

	for i := range dstOne {
		assert.InDeltaf(t, dstOne[i], dstSplit[i], 1e-6, "sample %d", i)
	}
}

// Property 9: a fully silenced reverb (density, diffusion, reflections
// and late-reverb gains all 0) contributes nothing to dst.
func TestSilentReverbContributesNothing(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetEffectType(0, KindReverb))
	props := DefaultEffectProps()
	props.Kind = KindReverb
	props.Reverb = PresetGeneric
	props.Reverb.Density = 0
	props.Reverb.Diffusion = 0
	props.Reverb.ReflectionsGain = 0
	props.Reverb.LateReverbGain = 0
	require.NoError(t, e.SetEffectProps(0, props))
	require.NoError(t, e.ApplyChanges())

	src := impulse(2, 512)
	dst := make([]float32, len(src))
	require.NoError(t, e.Mix(512, src, dst))

	for i := 2; i < len(dst); i++ { // skip the direct-path impulse frame
		assert.InDeltaf(t, 0.0, dst[i], 1e-5, "sample %d", i)
	}
}

// Invariant 5: SetEffect followed by ApplyChanges round-trips through
// Effect (after Normalize, which is a no-op on already-valid input).
func TestSetEffectRoundTrips(t *testing.T) {
	e := newTestEngine(t)
	props := DefaultEffectProps()
	props.Kind = KindChorus
	props.Chorus.RateHz = 2.0
	props.Chorus.Depth = 0.4

	require.NoError(t, e.SetEffect(0, props))
	require.NoError(t, e.ApplyChanges())

	got, err := e.Effect(0)
	require.NoError(t, err)
	assert.Equal(t, props, got)
}

// Unapplied Set* calls do not affect Mix until ApplyChanges commits them.
func TestSetWithoutApplyChangesLeavesActiveUnchanged(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetEffectType(0, KindNull))
	require.NoError(t, e.ApplyChanges())

	require.NoError(t, e.SetEffectType(0, KindReverb))
	active, err := e.Effect(0)
	require.NoError(t, err)
	assert.Equal(t, KindNull, active.Kind)

	deferred, err := e.DeferredEffect(0)
	require.NoError(t, err)
	assert.Equal(t, KindReverb, deferred.Kind)
}

func TestMixBeforeInitializeFails(t *testing.T) {
	e := New()
	err := e.Mix(1, make([]float32, 2), make([]float32, 2))
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestInitializeRejectsOutOfRangeSamplingRate(t *testing.T) {
	e := New()
	assert.ErrorIs(t, e.Initialize(Stereo, 1000, 1), ErrBadSamplingRate)
}

func TestSlotIndexOutOfRange(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Effect(1)
	assert.ErrorIs(t, err, ErrBadSlotIndex)
}

// Property-based: for arbitrary chunk sizes spanning MAX_UPDATE, across
// every effect kind, Mix succeeds and every output sample stays finite
// and bounded.
func TestMixHandlesArbitraryChunkSizes(t *testing.T) {
	kinds := []EffectKind{KindNull, KindReverb, KindChorus, KindFlanger, KindDistortion,
		KindEcho, KindEqualizer, KindRingModulator, KindCompressor, KindDedicated}

	rapid.Check(t, func(rt *rapid.T) {
		kind := kinds[rapid.IntRange(0, len(kinds)-1).Draw(rt, "kind")]
		n := rapid.IntRange(1, 600).Draw(rt, "n")

		e := New()
		require.NoError(rt, e.Initialize(Stereo, 44100, 1))
		require.NoError(rt, e.SetEffectType(0, kind))
		require.NoError(rt, e.ApplyChanges())

		src := make([]float32, n*2)
		for i := range src {
			src[i] = float32(rapid.Float64Range(-1, 1).Draw(rt, "sample"))
		}
		dst := make([]float32, n*2)
		require.NoError(rt, e.Mix(n, src, dst))
		for _, v := range dst {
			assert.False(rt, isNaNOrInf(v))
		}
	})
}

func isNaNOrInf(v float32) bool {
	return v != v || v > 1e9 || v < -1e9
}
