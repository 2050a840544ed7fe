// Package selection tracks which blossoms are highlighted, hovered and
// selected. All state changes go through Probe, ProbeMiss and Click.
package selection

// None marks the absence of an index.
const None = -1

// Positions exposes the current planar positions of a fixed set of instances.
type Positions interface {
	Len() int
	PlanarPosition(i int) (x, z float32)
}

// Action is the outcome of a click.
type Action uint8

const (
	ActionNone     Action = iota
	ActionSelect          // a different instance became selected
	ActionDeselect        // the selected instance was clicked again
	ActionClear           // click on empty space dropped the selection
)

func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "select"
	case ActionDeselect:
		return "deselect"
	case ActionClear:
		return "clear"
	default:
		return "none"
	}
}

// Variant is the visual state of one instance.
type Variant uint8

const (
	Normal Variant = iota
	Highlighted
	Selected
)

func (v Variant) String() string {
	switch v {
	case Highlighted:
		return "highlighted"
	case Selected:
		return "selected"
	default:
		return "normal"
	}
}

// Controller owns the selection state for one field.
type Controller struct {
	radius float32

	highlighted []int  // indices within radius of the last probe point
	mask        []bool // mask[i] == true iff i is in highlighted
	candidate   int    // closest highlighted index, or None
	selected    int

	hasPoint       bool
	pointX, pointZ float32
}

// NewController returns a controller with nothing selected.
func NewController(radius float32) *Controller {
	return &Controller{
		radius:    radius,
		candidate: None,
		selected:  None,
	}
}

// Radius returns the highlight radius in world units.
func (c *Controller) Radius() float32 {
	return c.radius
}

// Probe recomputes the highlight set and hover candidate around (x, z).
func (c *Controller) Probe(pos Positions, x, z float32) {
	n := pos.Len()
	c.resize(n)

	c.hasPoint = true
	c.pointX, c.pointZ = x, z
	c.candidate = None

	r2 := c.radius * c.radius
	best := float32(0)
	for i := 0; i < n; i++ {
		ix, iz := pos.PlanarPosition(i)
		dx := ix - x
		dz := iz - z
		d2 := dx*dx + dz*dz
		if d2 > r2 {
			continue
		}
		c.highlighted = append(c.highlighted, i)
		c.mask[i] = true
		if c.candidate == None || d2 < best {
			c.candidate = i
			best = d2
		}
	}
}

// ProbeMiss clears the highlight set, hover candidate and last probe point.
func (c *Controller) ProbeMiss() {
	c.resize(len(c.mask))
	c.candidate = None
	c.hasPoint = false
}

// resize clears the highlight set, keeping its backing storage.
func (c *Controller) resize(n int) {
	for _, i := range c.highlighted {
		c.mask[i] = false
	}
	c.highlighted = c.highlighted[:0]
	if cap(c.mask) < n {
		c.mask = make([]bool, n)
	}
	c.mask = c.mask[:n]
	if c.selected >= n {
		c.selected = None
	}
}

// Click toggles selection of the highlighted instance closest to the last
// probe point, using current positions. With nothing highlighted it clears
// the selection.
func (c *Controller) Click(pos Positions) Action {
	if len(c.highlighted) == 0 {
		if c.selected == None {
			return ActionNone
		}
		c.selected = None
		return ActionClear
	}
	if !c.hasPoint {
		return ActionNone
	}

	closest := None
	best := float32(0)
	for _, i := range c.highlighted {
		if i >= pos.Len() {
			continue
		}
		ix, iz := pos.PlanarPosition(i)
		dx := ix - c.pointX
		dz := iz - c.pointZ
		d2 := dx*dx + dz*dz
		if closest == None || d2 < best {
			closest = i
			best = d2
		}
	}
	if closest == None {
		return ActionNone
	}

	if closest == c.selected {
		c.selected = None
		return ActionDeselect
	}
	c.selected = closest
	return ActionSelect
}

// Selected returns the selected index.
func (c *Controller) Selected() (int, bool) {
	return c.selected, c.selected != None
}

// Hovered returns the hover candidate for display. It is always None while
// something is selected.
func (c *Controller) Hovered() (int, bool) {
	if c.selected != None || c.candidate == None {
		return None, false
	}
	return c.candidate, true
}

// Candidate returns the closest highlighted index regardless of selection.
func (c *Controller) Candidate() (int, bool) {
	return c.candidate, c.candidate != None
}

// Highlighted returns the current highlight set in ascending index order.
// The slice is reused by the next probe.
func (c *Controller) Highlighted() []int {
	return c.highlighted
}

// IsHighlighted reports whether i is within radius of the last probe point.
func (c *Controller) IsHighlighted(i int) bool {
	return i >= 0 && i < len(c.mask) && c.mask[i]
}

// ProbePoint returns the last probe point, if any.
func (c *Controller) ProbePoint() (x, z float32, ok bool) {
	return c.pointX, c.pointZ, c.hasPoint
}

// OverlayVisible reports whether the quote overlay should be shown.
func (c *Controller) OverlayVisible() bool {
	return c.selected != None || c.candidate != None
}

// Variant returns the display variant of i: selected over highlighted over normal.
func (c *Controller) Variant(i int) Variant {
	if i == c.selected {
		return Selected
	}
	if c.IsHighlighted(i) {
		return Highlighted
	}
	return Normal
}
