package lsystem

// Buffer holds one generation of symbols.
type Buffer struct {
	Symbols []Symbol
	Len     int
}

// BufferPool keeps two generation buffers. The next generation is written to
// the inactive buffer while the active one is read, then the two are swapped,
// so each generation is built in a single pass without reallocating the
// previous one.
type BufferPool struct {
	active   *Buffer
	inactive *Buffer
}

func NewBufferPool(capacity int) *BufferPool {
	if capacity < 1 {
		capacity = 1
	}
	return &BufferPool{
		active: &Buffer{
			Symbols: make([]Symbol, capacity),
		},
		inactive: &Buffer{
			Symbols: make([]Symbol, capacity),
		},
	}
}

// Reset empties both buffers and loads seq as the active generation.
func (m *BufferPool) Reset(seq Sequence) {
	m.active.Len = 0
	m.inactive.Len = 0
	m.active.grow(len(seq))
	m.active.Len = copy(m.active.Symbols, seq)
}

// ReadAll returns the active generation. The slice is only valid until the
// next Swap.
func (m *BufferPool) ReadAll() Sequence {
	return Sequence(m.active.Symbols[:m.active.Len])
}

// Append writes s to the pending generation.
func (m *BufferPool) Append(s Symbol) {
	b := m.inactive
	b.grow(1)
	b.Symbols[b.Len] = s
	b.Len++
}

// AppendSlice writes seq to the pending generation.
func (m *BufferPool) AppendSlice(seq Sequence) {
	b := m.inactive
	b.grow(len(seq))
	copy(b.Symbols[b.Len:], seq)
	b.Len += len(seq)
}

func (m *BufferPool) GetLen() int {
	return m.active.Len
}

func (m *BufferPool) GetCap() int {
	return len(m.active.Symbols)
}

// Swap promotes the pending generation to active and clears the old one for
// writing.
func (m *BufferPool) Swap() {
	m.active, m.inactive = m.inactive, m.active
	m.inactive.Len = 0
}

func (b *Buffer) grow(n int) {
	if b.Len+n <= len(b.Symbols) {
		return
	}
	newCap := len(b.Symbols) * 2
	for newCap < b.Len+n {
		newCap *= 2
	}
	newSlice := make([]Symbol, newCap)
	copy(newSlice, b.Symbols[:b.Len])
	b.Symbols = newSlice
}
