package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/wave"
)

// SliderSpec describes one wave uniform slider.
type SliderSpec struct {
	Label    string
	Min, Max float64
	Step     float64
	Get      func(p *wave.Params) float64
	Set      func(p *wave.Params, v float64)
}

// WaveSliders are the editable uniforms and their ranges.
var WaveSliders = []SliderSpec{
	{"Amplitude", 0.01, 0.5, 0.01,
		func(p *wave.Params) float64 { return p.Amplitude },
		func(p *wave.Params, v float64) { p.Amplitude = v }},
	{"Speed", 0.1, 2.0, 0.1,
		func(p *wave.Params) float64 { return p.Speed },
		func(p *wave.Params, v float64) { p.Speed = v }},
	{"Frequency", 0.01, 0.5, 0.01,
		func(p *wave.Params) float64 { return p.Frequency },
		func(p *wave.Params, v float64) { p.Frequency = v }},
	{"Persistence", 0.1, 0.9, 0.05,
		func(p *wave.Params) float64 { return p.Persistence },
		func(p *wave.Params, v float64) { p.Persistence = v }},
	{"Lacunarity", 1.0, 4.0, 0.1,
		func(p *wave.Params) float64 { return p.Lacunarity },
		func(p *wave.Params, v float64) { p.Lacunarity = v }},
	{"Iterations", 1, wave.MaxIterations, 1,
		func(p *wave.Params) float64 { return float64(p.Iterations) },
		func(p *wave.Params, v float64) { p.Iterations = int(v) }},
}

// Snap rounds v to the nearest multiple of step above min and clamps to [min, max].
func (s SliderSpec) Snap(v float64) float64 {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Apply snaps v and writes it to p. It reports whether the value changed.
// Values within half a step of the current one are left alone, so an
// untouched slider never rewrites an off-grid or float32-rounded uniform.
func (s SliderSpec) Apply(p *wave.Params, v float64) bool {
	if math.Abs(v-s.Get(p)) < s.Step/2 {
		return false
	}
	v = s.Snap(v)
	if v == s.Get(p) {
		return false
	}
	s.Set(p, v)
	return true
}

// WavePanel edits the live water uniforms with raygui sliders.
type WavePanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	defaults wave.Params
}

// NewWavePanel creates a panel; Reset restores defaults.
func NewWavePanel(x, y, width int32, defaults wave.Params) *WavePanel {
	return &WavePanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		defaults: defaults,
	}
}

// Draw renders the panel and applies slider edits to p.
// It reports whether any uniform changed.
func (c *WavePanel) Draw(p *wave.Params) bool {
	r := c.renderer
	padding := r.Theme.Padding
	rowHeight := int32(36)

	panelHeight := padding*3 + 24 + rowHeight*int32(len(WaveSliders)) + 30
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Water Waves", c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.Accent)
	y += 24

	changed := false
	sliderW := float32(c.width - padding*2 - 50)
	for _, s := range WaveSliders {
		rl.DrawText(s.Label, c.x+padding, y, 12, r.Theme.LabelColor)
		rect := rl.Rectangle{X: float32(c.x + padding), Y: float32(y + 14), Width: sliderW, Height: 14}
		v := gui.SliderBar(rect, "", "", float32(s.Get(p)), float32(s.Min), float32(s.Max))
		if s.Apply(p, float64(v)) {
			changed = true
		}
		rl.DrawText(formatValue(s, s.Get(p)), c.x+padding+int32(sliderW)+8, y+14, 12, r.Theme.ValueColor)
		y += rowHeight
	}

	y += padding
	if gui.Button(rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: 100, Height: 24}, "Reset") {
		t := p.Time
		*p = c.defaults
		p.Time = t
		changed = true
	}
	return changed
}

func formatValue(s SliderSpec, v float64) string {
	if s.Step >= 1 {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.2f", v)
}
