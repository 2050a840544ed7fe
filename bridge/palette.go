package bridge

import "github.com/pthm-cable/sakura/selection"

// Style is the scale multiplier and tint applied to one variant.
type Style struct {
	Scale float32
	Color [3]float32
}

// Palette maps each selection variant to its style.
type Palette struct {
	Normal      Style
	Highlighted Style
	Selected    Style
}

// DefaultPalette is white at rest, light pink when near the pointer and
// vivid pink when selected.
func DefaultPalette() Palette {
	return Palette{
		Normal:      Style{Scale: 1.0, Color: [3]float32{1, 1, 1}},
		Highlighted: Style{Scale: 1.2, Color: [3]float32{1, 0.7, 0.8}},
		Selected:    Style{Scale: 1.5, Color: [3]float32{1, 0.5, 0.7}},
	}
}

// Style returns the style for v.
func (p Palette) Style(v selection.Variant) Style {
	switch v {
	case selection.Selected:
		return p.Selected
	case selection.Highlighted:
		return p.Highlighted
	default:
		return p.Normal
	}
}
