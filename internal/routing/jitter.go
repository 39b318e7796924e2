package routing

import (
	"sync"

	"golang.org/x/exp/rand"
)

// JitterSource - источник случайной составляющей шероховатости, значения в [0,1)
type JitterSource interface {
	Float64() float64
}

// FixedJitter - детерминированный источник с постоянным значением
type FixedJitter float64

func (f FixedJitter) Float64() float64 {
	return float64(f)
}

type seededJitter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededJitter - воспроизводимый генератор; безопасен для конкурентного использования
func NewSeededJitter(seed uint64) JitterSource {
	return &seededJitter{
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (s *seededJitter) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
