// Package probe turns a pointer position into a point on a horizontal plane
// and rate-limits how often that query runs.
package probe

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// View is a perspective camera plus the viewport it renders into.
type View struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
	Fovy     float64 // vertical field of view in degrees
	Width    float64 // viewport size in pixels
	Height   float64
}

// Ray is a half-line starting at Origin. Direction is unit length.
type Ray struct {
	Origin    r3.Vec
	Direction r3.Vec
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Direction))
}

// ScreenRay returns the pick ray through pixel (sx, sy), origin top-left.
func (v View) ScreenRay(sx, sy float64) Ray {
	ndcX := 2*sx/v.Width - 1
	ndcY := 1 - 2*sy/v.Height

	forward := r3.Unit(r3.Sub(v.Target, v.Position))
	up := v.Up
	if r3.Norm(up) == 0 {
		up = r3.Vec{Y: 1}
	}
	right := r3.Unit(r3.Cross(forward, up))
	camUp := r3.Cross(right, forward)

	halfH := math.Tan(v.Fovy * math.Pi / 360)
	halfW := halfH * v.Width / v.Height

	dir := r3.Add(forward, r3.Add(
		r3.Scale(ndcX*halfW, right),
		r3.Scale(ndcY*halfH, camUp),
	))
	return Ray{Origin: v.Position, Direction: r3.Unit(dir)}
}

// Contains reports whether the pixel lies inside the viewport.
func (v View) Contains(sx, sy float64) bool {
	return sx >= 0 && sy >= 0 && sx < v.Width && sy < v.Height
}

// parallelEpsilon treats rays this close to horizontal as parallel.
const parallelEpsilon = 1e-9

// IntersectPlane intersects the ray with the plane y = height.
// extent bounds the plane to |x|, |z| <= extent; zero means unbounded.
func (r Ray) IntersectPlane(height, extent float64) (r3.Vec, bool) {
	if math.Abs(r.Direction.Y) < parallelEpsilon {
		return r3.Vec{}, false
	}
	t := (height - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return r3.Vec{}, false
	}
	p := r.At(t)
	if extent > 0 && (math.Abs(p.X) > extent || math.Abs(p.Z) > extent) {
		return r3.Vec{}, false
	}
	return p, true
}
