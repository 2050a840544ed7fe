package probe

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// Pointer is the last known pointer position in viewport pixels.
type Pointer struct {
	X, Y   float64
	Inside bool // false once the pointer has left the window
}

// Result is the outcome of one pointer query.
type Result struct {
	Point r3.Vec
	Hit   bool
}

// Probe intersects the pointer ray with a horizontal plane at most once per
// Interval. Between samples the previous result is returned.
type Probe struct {
	Interval time.Duration
	Height   float64 // plane y
	Extent   float64 // plane half-size, 0 = unbounded

	sampled bool
	last    float64 // seconds
	result  Result
}

// New returns a probe against the plane y = height.
func New(interval time.Duration, height, extent float64) *Probe {
	return &Probe{Interval: interval, Height: height, Extent: extent}
}

// Sample runs the query if the throttle allows it. now is in seconds.
// fresh is true when a new query ran this call.
func (p *Probe) Sample(now float64, view View, ptr Pointer) (res Result, fresh bool) {
	if p.sampled && now-p.last <= p.Interval.Seconds() {
		return p.result, false
	}
	p.sampled = true
	p.last = now
	p.result = p.query(view, ptr)
	return p.result, true
}

// Last returns the most recent result.
func (p *Probe) Last() Result {
	return p.result
}

// Reset forgets the last sample so the next call queries immediately.
func (p *Probe) Reset() {
	p.sampled = false
	p.result = Result{}
}

func (p *Probe) query(view View, ptr Pointer) Result {
	if !ptr.Inside || !view.Contains(ptr.X, ptr.Y) || view.Width <= 0 || view.Height <= 0 {
		return Result{}
	}
	pt, ok := view.ScreenRay(ptr.X, ptr.Y).IntersectPlane(p.Height, p.Extent)
	if !ok {
		return Result{}
	}
	return Result{Point: pt, Hit: true}
}
