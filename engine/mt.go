package engine

// mt19937 is the classic 32-bit Mersenne Twister (MT19937).
// The generator is implemented here rather than borrowed from math/rand so
// that its state is an explicit function of (seed, words consumed) — that is
// what makes Reset + Advance replay exact.
type mt19937 struct {
	state [624]uint32
	index int
}

const (
	mtN          = 624
	mtM          = 397
	mtMatrixA    = 0x9908b0df
	mtUpperMask  = 0x80000000
	mtLowerMask  = 0x7fffffff
	mtInitMult   = 1812433253
	mtTemperB    = 0x9d2c5680
	mtTemperC    = 0xefc60000
)

// newMT creates a generator initialized from the given 32-bit seed.
func newMT(seed uint32) *mt19937 {
	m := &mt19937{}
	m.reseed(seed)
	return m
}

// reseed reinitializes the state vector from seed.
func (m *mt19937) reseed(seed uint32) {
	m.state[0] = seed
	for i := uint32(1); i < mtN; i++ {
		y := m.state[i-1]
		m.state[i] = mtInitMult*(y^(y>>30)) + i
	}
	m.index = mtN
}

// twist regenerates the full state vector.
func (m *mt19937) twist() {
	for i := 0; i < mtN; i++ {
		y := (m.state[i] & mtUpperMask) | (m.state[(i+1)%mtN] & mtLowerMask)
		next := m.state[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			next ^= mtMatrixA
		}
		m.state[i] = next
	}
	m.index = 0
}

// next returns the next tempered 32-bit word.
func (m *mt19937) next() uint32 {
	if m.index >= mtN {
		m.twist()
	}

	y := m.state[m.index]
	m.index++

	y ^= y >> 11
	y ^= (y << 7) & mtTemperB
	y ^= (y << 15) & mtTemperC
	y ^= y >> 18

	return y
}

// discard consumes n words without producing output. Tempering does not
// touch the state, so skipping it here leaves the generator in the same
// state as n calls to next.
func (m *mt19937) discard(n uint32) {
	for ; n > 0; n-- {
		if m.index >= mtN {
			m.twist()
		}
		m.index++
	}
}
