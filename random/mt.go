package random

import "math/bits"

const (
	mtN         = 624
	mtM         = 397
	matrixA     = 0x9908b0df
	upperMask   = 0x80000000
	lowerMask   = 0x7fffffff
	initialSeed = 19650218
)

// MT is a Mersenne Twister that reproduces, draw for draw, the integer and float
// sequences of CPython's random.Random seeded with the same integer.
type MT struct {
	state [mtN]uint32
	index int
}

// NewMT seeds a generator. Negative seeds behave like their absolute value.
func NewMT(seed int64) *MT {
	m := &MT{}
	m.Seed(seed)
	return m
}

// Seed resets the generator from the 32-bit words of |seed|, least significant first.
func (m *MT) Seed(seed int64) {
	u := uint64(seed)
	if seed < 0 {
		u = uint64(-seed)
	}
	key := []uint32{uint32(u)}
	if hi := uint32(u >> 32); hi != 0 {
		key = append(key, hi)
	}
	m.seedArray(key)
}

func (m *MT) seedScalar(s uint32) {
	m.state[0] = s
	for i := 1; i < mtN; i++ {
		prev := m.state[i-1]
		m.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	m.index = mtN
}

func (m *MT) seedArray(key []uint32) {
	m.seedScalar(initialSeed)
	i, j := 1, 0
	k := max(mtN, len(key))
	for ; k > 0; k-- {
		prev := m.state[i-1]
		m.state[i] = (m.state[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			m.state[0] = m.state[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		prev := m.state[i-1]
		m.state[i] = (m.state[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			m.state[0] = m.state[mtN-1]
			i = 1
		}
	}
	m.state[0] = upperMask
}

func (m *MT) twist() {
	for i := 0; i < mtN; i++ {
		y := (m.state[i] & upperMask) | (m.state[(i+1)%mtN] & lowerMask)
		next := m.state[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			next ^= matrixA
		}
		m.state[i] = next
	}
	m.index = 0
}

// Uint32 returns the next tempered word.
func (m *MT) Uint32() uint32 {
	if m.index >= mtN {
		m.twist()
	}
	y := m.state[m.index]
	m.index++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Bits returns a uniform value of k bits, 0 < k <= 64, assembled the way
// getrandbits assembles it: whole words from the low end, the last word truncated.
func (m *MT) Bits(k int) uint64 {
	if k <= 0 || k > 64 {
		panic("random: bit count out of range")
	}
	var out uint64
	for shift := 0; k > 0; shift += 32 {
		r := m.Uint32()
		if k < 32 {
			r >>= 32 - k
		}
		out |= uint64(r) << shift
		k -= 32
	}
	return out
}

// Below returns a uniform value in [0, n) by rejection sampling on bit_length(n) bits.
// A draw is consumed even when n is 1.
func (m *MT) Below(n uint64) uint64 {
	if n == 0 {
		panic("random: Below called with zero bound")
	}
	k := bits.Len64(n)
	r := m.Bits(k)
	for r >= n {
		r = m.Bits(k)
	}
	return r
}
