package wave

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Noise is a 2D coherent noise source. opensimplex.Noise satisfies it.
type Noise interface {
	Eval2(x, y float64) float64
}

// Ripple is a cheap analytic stand-in for simplex noise built from a few
// crossed sine waves. The water vertex shader uses the same expression, so
// CPU and GPU heights agree up to float precision. Range is [-1, 1].
type Ripple struct{}

// Eval2 implements Noise.
func (Ripple) Eval2(x, y float64) float64 {
	return math.Sin(x*10)*math.Cos(y*10)*0.5 +
		math.Sin(x*20+y*5)*0.25 +
		math.Cos(x*5-y*15)*0.25
}

// NewSimplex returns OpenSimplex noise with the given seed.
func NewSimplex(seed int64) Noise {
	return opensimplex.New(seed)
}

// NoiseByName resolves a configured noise name ("ripple" or "simplex").
// Unknown names fall back to Ripple.
func NoiseByName(name string, seed int64) Noise {
	switch name {
	case "simplex":
		return NewSimplex(seed)
	default:
		return Ripple{}
	}
}
