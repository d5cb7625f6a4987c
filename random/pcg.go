package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
)

// Generator is the raw stream behind a Source.
type Generator interface {
	// Below returns a uniform value in [0, n). n must be positive.
	Below(n uint64) uint64
}

// PCG is a generator backed by golang.org/x/exp/rand. Its draws do not match any
// other implementation, but are stable for a given seed.
type PCG struct {
	r *rand.Rand
}

func NewPCG(seed int64) *PCG {
	src := &rand.PCGSource{}
	src.Seed(uint64(seed))
	return &PCG{r: rand.New(src)}
}

func (p *PCG) Below(n uint64) uint64 {
	if n == 0 {
		panic("random: Below called with zero bound")
	}
	return p.r.Uint64n(n)
}

const (
	MT19937 = "mt19937"
	PCGKind = "pcg"
)

// NewGenerator builds the generator named kind. The empty name selects MT19937.
func NewGenerator(kind string, seed int64) (Generator, error) {
	switch strings.ToLower(kind) {
	case "", MT19937, "mt":
		return NewMT(seed), nil
	case PCGKind:
		return NewPCG(seed), nil
	default:
		return nil, fmt.Errorf("unknown generator %q", kind)
	}
}

// NewSeed returns a fresh non-negative seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:]) >> 1), nil
}
