package random

import (
	"math/rand/v2"
)

// Sampler draws characters uniformly and independently from an alphabet.
// A Sampler is not safe for concurrent use; each simulation owns its own.
type Sampler struct {
	rng      *rand.Rand
	alphabet []byte
}

func NewSampler(alphabet []byte, rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Sampler{rng: rng, alphabet: alphabet}
}

// NewSeededSampler is deterministic for a given seed.
func NewSeededSampler(alphabet []byte, seed uint64) *Sampler {
	return NewSampler(alphabet, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Fill overwrites buf with characters drawn with replacement.
func (s *Sampler) Fill(buf []byte) {
	n := len(s.alphabet)
	if n == 0 {
		return
	}
	for i := range buf {
		buf[i] = s.alphabet[s.rng.IntN(n)]
	}
}

func GenerateRandomString(charset string, length int) string {
	if length <= 0 || len(charset) == 0 {
		return ""
	}

	result := make([]byte, length)
	NewSampler([]byte(charset), nil).Fill(result)
	return string(result)
}
