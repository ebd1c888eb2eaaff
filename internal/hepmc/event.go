package hepmc

import "fmt"

// FourVector is a space-time point (x, y, z, c*t in mm) or a momentum (px, py, pz, E in GeV).
type FourVector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	T float64 `json:"t"`
}

// Add returns the component-wise sum.
func (v FourVector) Add(o FourVector) FourVector {
	return FourVector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z, T: v.T + o.T}
}

// GenVertex is an interaction or decay point. Barcodes are negative.
type GenVertex struct {
	Barcode      int        `json:"barcode"`
	Position     FourVector `json:"position"`
	ParticlesIn  []int      `json:"particles_in,omitempty"`
	ParticlesOut []int      `json:"particles_out,omitempty"`
}

// GenParticle is a generator-level particle. Barcodes are positive; a vertex
// reference of 0 means "none".
type GenParticle struct {
	Barcode          int        `json:"barcode"`
	PDGID            int        `json:"pdg_id"`
	Status           int        `json:"status"`
	Momentum         FourVector `json:"momentum"`
	ProductionVertex int        `json:"production_vertex,omitempty"`
	EndVertex        int        `json:"end_vertex,omitempty"`
}

// GenEvent is the generator event graph.
type GenEvent struct {
	EventNumber     int           `json:"event_number"`
	SignalProcessID int           `json:"signal_process_id"`
	SignalVertex    int           `json:"signal_vertex,omitempty"`
	Vertices        []GenVertex   `json:"vertices"`
	Particles       []GenParticle `json:"particles"`
}

// Clone returns a deep copy of the event.
func (e *GenEvent) Clone() *GenEvent {
	if e == nil {
		return nil
	}
	out := &GenEvent{
		EventNumber:     e.EventNumber,
		SignalProcessID: e.SignalProcessID,
		SignalVertex:    e.SignalVertex,
		Vertices:        make([]GenVertex, len(e.Vertices)),
		Particles:       make([]GenParticle, len(e.Particles)),
	}
	for i, v := range e.Vertices {
		v.ParticlesIn = cloneInts(v.ParticlesIn)
		v.ParticlesOut = cloneInts(v.ParticlesOut)
		out.Vertices[i] = v
	}
	copy(out.Particles, e.Particles)
	return out
}

// Vertex returns the vertex with the given barcode.
func (e *GenEvent) Vertex(barcode int) (*GenVertex, bool) {
	for i := range e.Vertices {
		if e.Vertices[i].Barcode == barcode {
			return &e.Vertices[i], true
		}
	}
	return nil, false
}

// PrimaryVertex returns the signal vertex if set, otherwise the first vertex.
func (e *GenEvent) PrimaryVertex() (*GenVertex, bool) {
	if e.SignalVertex != 0 {
		if v, ok := e.Vertex(e.SignalVertex); ok {
			return v, true
		}
	}
	if len(e.Vertices) == 0 {
		return nil, false
	}
	return &e.Vertices[0], true
}

// Shift translates every vertex by d, keeping relative displacements intact.
func (e *GenEvent) Shift(d FourVector) {
	for i := range e.Vertices {
		e.Vertices[i].Position = e.Vertices[i].Position.Add(d)
	}
}

// Validate checks barcode conventions and that particle vertex references resolve.
func (e *GenEvent) Validate() error {
	seen := make(map[int]struct{}, len(e.Vertices))
	for _, v := range e.Vertices {
		if v.Barcode >= 0 {
			return fmt.Errorf("vertex barcode %d must be negative", v.Barcode)
		}
		if _, dup := seen[v.Barcode]; dup {
			return fmt.Errorf("duplicate vertex barcode %d", v.Barcode)
		}
		seen[v.Barcode] = struct{}{}
	}
	for _, p := range e.Particles {
		if p.Barcode <= 0 {
			return fmt.Errorf("particle barcode %d must be positive", p.Barcode)
		}
		for _, ref := range []int{p.ProductionVertex, p.EndVertex} {
			if ref == 0 {
				continue
			}
			if _, ok := seen[ref]; !ok {
				return fmt.Errorf("particle %d references unknown vertex %d", p.Barcode, ref)
			}
		}
	}
	if e.SignalVertex != 0 {
		if _, ok := seen[e.SignalVertex]; !ok {
			return fmt.Errorf("signal vertex %d not found", e.SignalVertex)
		}
	}
	return nil
}

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s))
	copy(out, s)
	return out
}
