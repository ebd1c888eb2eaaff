package smear

import (
	"fmt"
	"math"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/config"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/hepmc"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/random"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/record"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/units"
)

const (
	GaussType      = "GaussEvtVtxEnergyGenerator"
	GaussTypeAlias = "GaussEvtVtxGenerator"
)

// GaussParams are the beam-spot parameters in canonical units (mm). TimeOffset
// is already the c*t length equivalent.
type GaussParams struct {
	MeanX, MeanY, MeanZ    float64
	SigmaX, SigmaY, SigmaZ float64
	TimeOffset             float64
}

// GaussGenerator displaces the event by a 3-D Gaussian vertex and a fixed time offset.
type GaussGenerator struct {
	*Base
	p GaussParams
}

// NewGaussGenerator reads src, MeanX/Y/Z and SigmaX/Y/Z (cm) and TimeOffset (ns).
// A non-finite value or a negative sigma is a configuration error naming the parameter.
func NewGaussGenerator(label string, params config.Params, rng *random.Service) (*GaussGenerator, error) {
	srcStr, err := params.String(label, "src")
	if err != nil {
		return nil, err
	}
	src, err := record.ParseInputTag(srcStr)
	if err != nil {
		return nil, &config.ConfigError{Module: label, Param: "src", Msg: err.Error()}
	}

	var raw [7]float64
	for i, name := range []string{"MeanX", "MeanY", "MeanZ", "SigmaX", "SigmaY", "SigmaZ", "TimeOffset"} {
		if raw[i], err = params.Float(label, name); err != nil {
			return nil, err
		}
		if math.IsInf(raw[i], 0) || math.IsNaN(raw[i]) {
			return nil, &config.ConfigError{
				Module: label,
				Param:  name,
				Msg:    fmt.Sprintf("%s must be a finite number, got %v", name, raw[i]),
			}
		}
	}

	p := GaussParams{
		MeanX:      raw[0] * units.Centimeter,
		MeanY:      raw[1] * units.Centimeter,
		MeanZ:      raw[2] * units.Centimeter,
		SigmaX:     raw[3] * units.Centimeter,
		SigmaY:     raw[4] * units.Centimeter,
		SigmaZ:     raw[5] * units.Centimeter,
		TimeOffset: units.TimeToLength(raw[6]),
	}
	for _, s := range []struct {
		axis  string
		sigma float64
	}{{"X", p.SigmaX}, {"Y", p.SigmaY}, {"Z", p.SigmaZ}} {
		if s.sigma < 0 {
			return nil, &config.ConfigError{
				Module: label,
				Param:  "Sigma" + s.axis,
				Msg:    fmt.Sprintf("Illegal resolution in %s (Sigma%s is negative)", s.axis, s.axis),
			}
		}
	}

	g := &GaussGenerator{p: p}
	g.Base = NewBase(label, src, rng, g)
	return g, nil
}

// Params returns the converted parameters.
func (g *GaussGenerator) Params() GaussParams { return g.p }

// Sample draws the vertex offset. Zero sigmas yield the means exactly.
func (g *GaussGenerator) Sample(eng random.Engine) hepmc.FourVector {
	return hepmc.FourVector{
		X: g.p.SigmaX*eng.NormFloat64() + g.p.MeanX,
		Y: g.p.SigmaY*eng.NormFloat64() + g.p.MeanY,
		Z: g.p.SigmaZ*eng.NormFloat64() + g.p.MeanZ,
		T: g.p.TimeOffset,
	}
}
