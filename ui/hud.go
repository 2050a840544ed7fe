package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Blossoms     int
	Highlighted  int
	Selected     string // author of the selected blossom, empty if none
	FPS          int32
	ScreenHeight int32
	Overlays     []OverlayDescriptor
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	th := h.renderer.Theme
	rl.DrawText(data.Title, 10, 10, 20, th.Accent)
	rl.DrawText(
		fmt.Sprintf("Blossoms: %d | Near pointer: %d | FPS: %d", data.Blossoms, data.Highlighted, data.FPS),
		10, 35, 16, rl.RayWhite,
	)
	if data.Selected != "" {
		rl.DrawText("Selected: "+data.Selected, 10, 55, 16, th.Accent)
	}

	controls := "[Click] select"
	for _, d := range data.Overlays {
		controls += fmt.Sprintf("  [%s] %s", d.KeyLabel, d.Name)
	}
	controls += "  [F11] fullscreen"
	rl.DrawText(controls, 10, data.ScreenHeight-25, 14, rl.LightGray)
}

// PerfPanel renders the rolling frame timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a perf panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	phases := []string{telemetry.PhaseStep, telemetry.PhaseProbe, telemetry.PhaseSelection, telemetry.PhaseWrite}
	height := r.Theme.Padding*2 + r.Theme.LineHeight*int32(len(phases)+3)
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	y = r.DrawLabelValue(x, y, "Frame", stats.AvgFrame.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Jitter", stats.Jitter.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Max", stats.MaxFrame.Round(time.Microsecond).String())
	for _, ph := range phases {
		y = r.DrawLabelValue(x, y, ph, fmt.Sprintf("%.1f%%", stats.PhasePct[ph]))
	}
}
