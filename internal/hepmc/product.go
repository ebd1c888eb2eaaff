package hepmc

// Product wraps a GenEvent as stored in the event record.
type Product struct {
	Event         *GenEvent  `json:"event"`
	VtxGenApplied bool       `json:"vtx_gen_applied"`
	VtxOffset     FourVector `json:"vtx_offset"`
}

// NewProduct wraps ev without copying it.
func NewProduct(ev *GenEvent) *Product {
	return &Product{Event: ev}
}

// WithVertexShift returns a new product holding a deep copy of the event with
// every vertex translated by d. The receiver is left untouched. A product that
// already carries a vertex shift is copied unshifted and applied is false.
func (p *Product) WithVertexShift(d FourVector) (out *Product, applied bool) {
	out = &Product{
		Event:         p.Event.Clone(),
		VtxGenApplied: p.VtxGenApplied,
		VtxOffset:     p.VtxOffset,
	}
	if p.VtxGenApplied || out.Event == nil {
		return out, false
	}
	out.Event.Shift(d)
	out.VtxGenApplied = true
	out.VtxOffset = d
	return out, true
}
