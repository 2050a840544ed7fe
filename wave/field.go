// Package wave mirrors the water shader's height function on the CPU so that
// floating objects can be locked to the animated surface.
package wave

import "gonum.org/v1/gonum/spatial/r3"

// DefaultLacunarity is used when the lacunarity uniform is zero.
const DefaultLacunarity = 2.0

// MaxIterations is the octave count the water shader's loop is unrolled to.
// Higher values would make CPU heights diverge from the drawn surface.
const MaxIterations = 8

// normalEpsilon is the finite difference step used by Normal.
const normalEpsilon = 0.001

// Params is a by-value snapshot of the water uniforms for one frame.
type Params struct {
	Amplitude   float64
	Speed       float64
	Frequency   float64
	Persistence float64
	Lacunarity  float64
	Iterations  int
	Time        float64 // Elapsed seconds
}

// Field evaluates the multi-octave wave surface.
// The zero value uses Ripple noise, the same function the water shader runs.
type Field struct {
	Noise Noise
}

// NewField returns a field sampling the given noise source.
func NewField(n Noise) Field {
	return Field{Noise: n}
}

func (f Field) noise() Noise {
	if f.Noise == nil {
		return Ripple{}
	}
	return f.Noise
}

// Elevation returns the surface height at (x, z).
// Each octave samples the noise at (x, z) scaled by the current frequency and
// translated by time*speed, then amplitude decays by persistence and
// frequency grows by lacunarity. The sum is scaled by the global amplitude.
func (f Field) Elevation(x, z float64, p Params) float64 {
	n := f.noise()

	lacunarity := p.Lacunarity
	if lacunarity == 0 {
		lacunarity = DefaultLacunarity
	}
	shift := p.Time * p.Speed

	elevation := 0.0
	amplitude := 1.0
	frequency := p.Frequency
	for i := 0; i < p.Iterations; i++ {
		elevation += amplitude * n.Eval2(x*frequency+shift, z*frequency+shift)
		amplitude *= p.Persistence
		frequency *= lacunarity
	}

	return elevation * p.Amplitude
}

// Normal returns the unit surface normal at (x, z), pointing up (+Y).
func (f Field) Normal(x, z float64, p Params) r3.Vec {
	h := f.Elevation(x, z, p)
	hx := f.Elevation(x+normalEpsilon, z, p)
	hz := f.Elevation(x, z+normalEpsilon, p)

	tangent := r3.Unit(r3.Vec{X: normalEpsilon, Y: hx - h})
	bitangent := r3.Unit(r3.Vec{Y: hz - h, Z: normalEpsilon})

	return r3.Unit(r3.Cross(bitangent, tangent))
}
