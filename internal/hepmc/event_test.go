package hepmc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/hepmc"
)

func sampleEvent() *hepmc.GenEvent {
	return &hepmc.GenEvent{
		EventNumber:     7,
		SignalProcessID: 20,
		SignalVertex:    -1,
		Vertices: []hepmc.GenVertex{
			{Barcode: -1, Position: hepmc.FourVector{}, ParticlesIn: []int{1, 2}, ParticlesOut: []int{3}},
			{Barcode: -2, Position: hepmc.FourVector{X: 0.1, Y: 0.2, Z: 1.5, T: 1.5}, ParticlesIn: []int{3}},
		},
		Particles: []hepmc.GenParticle{
			{Barcode: 1, PDGID: 2212, Status: 4, Momentum: hepmc.FourVector{Z: 6500, T: 6500}, EndVertex: -1},
			{Barcode: 2, PDGID: 2212, Status: 4, Momentum: hepmc.FourVector{Z: -6500, T: 6500}, EndVertex: -1},
			{Barcode: 3, PDGID: 25, Status: 2, Momentum: hepmc.FourVector{T: 125}, ProductionVertex: -1, EndVertex: -2},
		},
	}
}

func TestClone_IsDeep(t *testing.T) {
	ev := sampleEvent()
	c := ev.Clone()
	if diff := cmp.Diff(ev, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	c.Vertices[0].Position.X = 42
	c.Vertices[0].ParticlesIn[0] = 99
	c.Particles[0].Status = 1

	assert.Equal(t, 0.0, ev.Vertices[0].Position.X)
	assert.Equal(t, 1, ev.Vertices[0].ParticlesIn[0])
	assert.Equal(t, 4, ev.Particles[0].Status)
}

func TestClone_Nil(t *testing.T) {
	var ev *hepmc.GenEvent
	assert.Nil(t, ev.Clone())
}

func TestShift_AllVertices(t *testing.T) {
	ev := sampleEvent()
	ev.Shift(hepmc.FourVector{X: 1, Y: -1, Z: 10, T: 3})

	assert.Equal(t, hepmc.FourVector{X: 1, Y: -1, Z: 10, T: 3}, ev.Vertices[0].Position)
	assert.InDelta(t, 1.1, ev.Vertices[1].Position.X, 1e-12)
	assert.InDelta(t, -0.8, ev.Vertices[1].Position.Y, 1e-12)
	assert.InDelta(t, 11.5, ev.Vertices[1].Position.Z, 1e-12)
	assert.InDelta(t, 4.5, ev.Vertices[1].Position.T, 1e-12)
}

func TestPrimaryVertex(t *testing.T) {
	ev := sampleEvent()
	v, ok := ev.PrimaryVertex()
	require.True(t, ok)
	assert.Equal(t, -1, v.Barcode)

	ev.SignalVertex = -2
	v, ok = ev.PrimaryVertex()
	require.True(t, ok)
	assert.Equal(t, -2, v.Barcode)

	_, ok = (&hepmc.GenEvent{}).PrimaryVertex()
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	require.NoError(t, sampleEvent().Validate())

	bad := sampleEvent()
	bad.Vertices[1].Barcode = 5
	assert.ErrorContains(t, bad.Validate(), "must be negative")

	bad = sampleEvent()
	bad.Particles[2].EndVertex = -9
	assert.ErrorContains(t, bad.Validate(), "unknown vertex -9")

	bad = sampleEvent()
	bad.Vertices[1].Barcode = -1
	assert.ErrorContains(t, bad.Validate(), "duplicate vertex barcode")

	bad = sampleEvent()
	bad.SignalVertex = -7
	assert.ErrorContains(t, bad.Validate(), "signal vertex -7")
}

func TestProduct_WithVertexShift(t *testing.T) {
	in := hepmc.NewProduct(sampleEvent())
	d := hepmc.FourVector{X: 0.01, Y: 0.02, Z: 3, T: 299.792458}

	out, applied := in.WithVertexShift(d)
	require.True(t, applied)
	assert.True(t, out.VtxGenApplied)
	assert.Equal(t, d, out.VtxOffset)
	assert.Equal(t, d, out.Event.Vertices[0].Position)

	// Input untouched.
	assert.False(t, in.VtxGenApplied)
	if diff := cmp.Diff(sampleEvent(), in.Event); diff != "" {
		t.Errorf("input event mutated:\n%s", diff)
	}

	again, applied := out.WithVertexShift(d)
	assert.False(t, applied)
	assert.Equal(t, out.Event.Vertices[0].Position, again.Event.Vertices[0].Position)
}
