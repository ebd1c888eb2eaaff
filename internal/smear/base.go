// Package smear implements vertex generators: producers that read an
// unsmeared generator event, displace its vertices by a sampled offset and
// publish the result.
package smear

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/hepmc"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/metrics"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/random"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/record"
)

// VertexInstance is the product instance under which the sampled offset is put.
const VertexInstance = "vertex"

// Sampler draws one vertex offset in mm from eng.
type Sampler interface {
	Sample(eng random.Engine) hepmc.FourVector
}

// Base holds the steps every vertex generator shares. The vertex shape comes
// from the Sampler.
type Base struct {
	label   string
	src     record.InputTag
	rng     *random.Service
	sampler Sampler
}

// NewBase wires a sampler into the shared produce step.
func NewBase(label string, src record.InputTag, rng *random.Service, s Sampler) *Base {
	return &Base{label: label, src: src, rng: rng, sampler: s}
}

func (b *Base) Label() string { return b.label }

// Produce smears one event. The source product is never modified; the shifted
// copy is put under the module label along with the sampled offset.
func (b *Base) Produce(ctx context.Context, ev *record.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	eng := b.rng.Engine(b.label, ev.StreamID)

	in, err := record.Get[*hepmc.Product](ev, b.src)
	if err != nil {
		return err
	}
	if in == nil || in.Event == nil {
		return &record.RetrievalError{Tag: b.src, Err: fmt.Errorf("%w: product holds no event", record.ErrProductNotFound)}
	}

	vtx := b.sampler.Sample(eng)
	out, applied := in.WithVertexShift(vtx)
	if applied {
		metrics.VerticesShifted.Add(float64(len(out.Event.Vertices)))
	} else {
		attrs := []any{"module", b.label, "src", b.src.String(), "event_id", ev.ID, "offset", in.VtxOffset}
		if pv, ok := in.Event.PrimaryVertex(); ok {
			attrs = append(attrs, "primary_vertex", pv.Position)
		}
		slog.Warn("vertex smearing already applied upstream, publishing unshifted copy", attrs...)
	}

	if err := ev.Put(b.label, "", out); err != nil {
		return err
	}
	return ev.Put(b.label, VertexInstance, vtx)
}
