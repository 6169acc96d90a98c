package delayline

// MultiLine is an n-channel interleaved delay line (used by the reverb's
// main/early/late/all-pass lines, each of which carries 4 A-format
// channels), sharing one power-of-two length and one
// write cursor across all channels.
type MultiLine struct {
	channels int
	buf      []float32 // interleaved: buf[cursor*channels+ch]
	mask     int
	cursor   int
}

// NewMulti allocates an n-channel interleaved line whose per-channel
// length is the next power of two >= minLen.
func NewMulti(channels, minLen int) *MultiLine {
	n := NextPow2(minLen)
	return &MultiLine{channels: channels, buf: make([]float32, n*channels), mask: n - 1}
}

// Len returns the per-channel backing length (a power of two).
func (m *MultiLine) Len() int { return m.mask + 1 }

func (m *MultiLine) Reset() {
	for i := range m.buf {
		m.buf[i] = 0
	}
	m.cursor = 0
}

// Write stores one frame (one sample per channel) at the cursor and
// advances it.
func (m *MultiLine) Write(frame []float32) {
	base := m.cursor * m.channels
	copy(m.buf[base:base+m.channels], frame)
	m.cursor = (m.cursor + 1) & m.mask
}

// WriteAt stores frame `offset` positions behind the current cursor,
// overwriting a sample already written rather than advancing the
// cursor. Used by the reverb's main delay line, which receives a second,
// retroactive write (the late-feed tap) into a position earlier reads
// haven't reached yet.
func (m *MultiLine) WriteAt(offset int, frame []float32) {
	idx := (m.cursor - offset) & m.mask
	base := idx * m.channels
	copy(m.buf[base:base+m.channels], frame)
}

// At reads channel ch, `offset` positions behind the cursor.
func (m *MultiLine) At(ch, offset int) float32 {
	idx := (m.cursor - offset) & m.mask
	return m.buf[idx*m.channels+ch]
}

// AtFrac linearly interpolates channel ch between offset and offset+1.
func (m *MultiLine) AtFrac(ch, offset int, frac float32) float32 {
	a := m.At(ch, offset)
	b := m.At(ch, offset+1)
	return a + (b-a)*frac
}

func (m *MultiLine) Cursor() int { return m.cursor }
