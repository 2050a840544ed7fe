// Package camera provides the parallax perspective camera rig.
package camera

import (
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sakura/probe"
)

// Camera eases toward its home position offset by the pointer, always
// looking at Target.
type Camera struct {
	// Position is the current eye position in world coordinates
	Position [3]float32

	// Home is the rest position when the pointer is centred
	Home [3]float32

	// Target is the look-at point
	Target [3]float32

	// Vertical field of view in degrees
	Fovy float32

	// Parallax is the offset in world units at the window edge
	Parallax float32

	// Easing is the fraction of the remaining distance covered per Update
	Easing float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Pointer normalised to [-1, 1] on both axes, +Y toward the bottom edge
	pointerX, pointerY float32
}

// New creates a camera resting at home.
func New(home, target [3]float32, fovy, viewportW, viewportH float32) *Camera {
	return &Camera{
		Position:  home,
		Home:      home,
		Target:    target,
		Fovy:      fovy,
		Parallax:  0.5,
		Easing:    0.05,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
}

// SetPointer records the pointer in screen pixels.
func (c *Camera) SetPointer(sx, sy float32) {
	if c.ViewportW <= 0 || c.ViewportH <= 0 {
		return
	}
	c.pointerX = clamp(sx/c.ViewportW*2-1, -1, 1)
	c.pointerY = clamp(sy/c.ViewportH*2-1, -1, 1)
}

// Pointer returns the normalised pointer position.
func (c *Camera) Pointer() (x, y float32) {
	return c.pointerX, c.pointerY
}

// Goal returns the position the camera is easing toward. Pointer down raises
// the eye; pointer right swings it toward -Z.
func (c *Camera) Goal() [3]float32 {
	return [3]float32{
		c.Home[0],
		c.Home[1] + c.pointerY*c.Parallax,
		c.Home[2] - c.pointerX*c.Parallax,
	}
}

// Update moves the camera one easing step toward Goal.
func (c *Camera) Update() {
	goal := c.Goal()
	for i := range c.Position {
		c.Position[i] += (goal[i] - c.Position[i]) * c.Easing
	}
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Reset returns the camera to its home position and centres the pointer.
func (c *Camera) Reset() {
	c.Position = c.Home
	c.pointerX, c.pointerY = 0, 0
}

// View returns the probe view for the current camera state.
func (c *Camera) View() probe.View {
	return probe.View{
		Position: vec(c.Position),
		Target:   vec(c.Target),
		Up:       r3.Vec{Y: 1},
		Fovy:     float64(c.Fovy),
		Width:    float64(c.ViewportW),
		Height:   float64(c.ViewportH),
	}
}

// WorldToScreen projects a world point to screen pixels.
// visible is false for points behind the eye.
func (c *Camera) WorldToScreen(p [3]float32) (sx, sy float32, visible bool) {
	fwd := normalize(sub(c.Target, c.Position))
	right := normalize(cross(fwd, [3]float32{0, 1, 0}))
	up := cross(right, fwd)

	d := sub(p, c.Position)
	depth := dot(d, fwd)
	if depth <= 0 {
		return 0, 0, false
	}

	halfH := math32.Tan(c.Fovy * math32.Pi / 360)
	aspect := c.ViewportW / c.ViewportH
	ndcX := dot(d, right) / (depth * halfH * aspect)
	ndcY := dot(d, up) / (depth * halfH)

	sx = (ndcX + 1) / 2 * c.ViewportW
	sy = (1 - ndcY) / 2 * c.ViewportH
	return sx, sy, true
}

func vec(v [3]float32) r3.Vec {
	return r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(dot(v, v))
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
