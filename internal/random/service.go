// Package random hands out random engines scoped to a (module, stream) pair so
// that parallel streams never share or correlate their sequences.
package random

import (
	"math/rand/v2"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Engine is the subset of *rand.Rand the producers need.
type Engine interface {
	NormFloat64() float64
}

type engineKey struct {
	label  string
	stream int
}

// Service owns every engine. Lookups are safe for concurrent use; an engine
// itself must only be driven from its own stream.
type Service struct {
	seed    uint64
	mu      sync.Mutex
	engines map[engineKey]*rand.Rand
}

// NewService creates a Service whose engines all derive from seed.
func NewService(seed uint64) *Service {
	return &Service{
		seed:    seed,
		engines: make(map[engineKey]*rand.Rand),
	}
}

// Seed returns the master seed.
func (s *Service) Seed() uint64 { return s.seed }

// Engine returns the engine for label on stream, creating it on first use.
func (s *Service) Engine(label string, stream int) Engine {
	k := engineKey{label: label, stream: stream}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.engines[k]; ok {
		return r
	}
	r := rand.New(rand.NewPCG(s.seed^xxhash.Sum64String(label), mix(uint64(stream))))
	s.engines[k] = r
	return r
}

// mix is the splitmix64 finaliser; it spreads consecutive stream ids.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
