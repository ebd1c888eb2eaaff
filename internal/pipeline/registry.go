package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/config"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/random"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/record"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/smear"
)

// Producer is the interface every module in the chain satisfies.
type Producer interface {
	// Label is the module label products are put under.
	Label() string
	// Produce reads from and puts into ev. It runs on ev's stream only.
	Produce(ctx context.Context, ev *record.Event) error
}

// Factory constructs a producer from its module parameters. Returning an
// error keeps the module, and so the whole pipeline, from being scheduled.
type Factory func(label string, params config.Params, rng *random.Service) (Producer, error)

// Registry maps module type names to their factories.
// It is safe for concurrent reads; Register should only be called at startup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with the built-in vertex generators.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	gauss := func(label string, params config.Params, rng *random.Service) (Producer, error) {
		g, err := smear.NewGaussGenerator(label, params, rng)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	r.Register(smear.GaussType, gauss)
	r.Register(smear.GaussTypeAlias, gauss)
	return r
}

// Register adds a factory. Panics on duplicate type to surface misconfiguration early.
func (r *Registry) Register(typ string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[typ]; exists {
		panic(fmt.Sprintf("module registry: duplicate type %q", typ))
	}
	r.factories[typ] = f
}

// Get returns the factory for the given type.
func (r *Registry) Get(typ string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[typ]
	if !ok {
		return nil, fmt.Errorf("no module registered for type %q", typ)
	}
	return f, nil
}

// Types returns all registered type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
