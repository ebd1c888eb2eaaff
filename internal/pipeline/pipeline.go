package pipeline

import (
	"context"
	"fmt"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/config"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/metrics"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/random"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/record"
)

// Pipeline is an ordered chain of producers.
// It is immutable once built; hot-reload builds a new Pipeline and swaps atomically.
type Pipeline struct {
	modules []Producer
	source  record.InputTag
	process string
}

// Build constructs every enabled module of cfg in declaration order.
// All parameter checking happens here; a single failure aborts the build.
func Build(cfg *config.Config, reg *Registry, rng *random.Service) (*Pipeline, error) {
	p := &Pipeline{
		source:  record.InputTag{Label: cfg.Source.Label, Instance: cfg.Source.Instance},
		process: cfg.Process,
	}
	for _, m := range cfg.Modules {
		if !m.IsEnabled() {
			continue
		}
		f, err := reg.Get(m.Type)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Label, err)
		}
		prod, err := f(m.Label, m.Params, rng)
		if err != nil {
			return nil, fmt.Errorf("module %s (%s): %w", m.Label, m.Type, err)
		}
		p.modules = append(p.modules, prod)
	}
	return p, nil
}

// Source is the tag ingested events are seeded under.
func (p *Pipeline) Source() record.InputTag { return p.source }

// Process is the name stamped on every product the chain puts.
func (p *Pipeline) Process() string { return p.process }

// Modules returns the labels of the chain in run order.
func (p *Pipeline) Modules() []string {
	out := make([]string, len(p.modules))
	for i, m := range p.modules {
		out[i] = m.Label()
	}
	return out
}

// Len returns the number of modules.
func (p *Pipeline) Len() int { return len(p.modules) }

// Run executes every module on ev, stopping at the first failure.
func (p *Pipeline) Run(ctx context.Context, ev *record.Event) error {
	for _, m := range p.modules {
		if err := m.Produce(ctx, ev); err != nil {
			metrics.ModuleErrors.WithLabelValues(m.Label()).Inc()
			return fmt.Errorf("module %s: %w", m.Label(), err)
		}
	}
	return nil
}
