package delayline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestWriteThenReadRoundTrips(t *testing.T) {
	l := New(8)
	l.Write(1.5)
	for i := 0; i < 6; i++ {
		l.Write(0)
	}
	assert.Equal(t, float32(1.5), l.At(7))
}

func TestCursorAdvancesByExactlyN(t *testing.T) {
	l := New(16)
	start := l.Cursor()
	for i := 0; i < 5; i++ {
		l.Write(float32(i))
	}
	assert.Equal(t, (start+5)%l.Len(), l.Cursor())
}

// Property 2 : length is a power of two and length >
// max_read_offset for any requested minimum length.
func TestLengthIsPowerOfTwoAndExceedsRequest(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		minLen := rapid.IntRange(1, 1<<20).Draw(t, "minLen")
		l := New(minLen)
		n := l.Len()
		assert.Equal(t, 0, n&(n-1), "length %d is not a power of two", n)
		assert.GreaterOrEqual(t, n, minLen)
	})
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 257: 512}
	for in, want := range cases {
		assert.Equal(t, want, NextPow2(in))
	}
}
