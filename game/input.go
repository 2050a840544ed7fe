package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/ui"
)

const wavePanelWidth = 260

// handleInput processes pointer and keyboard input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Home key recentres the camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, ok := g.overlays.HandleKey(key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", g.overlays.IsEnabled(id))
		}
	}

	mouse := rl.GetMousePosition()
	g.SetPointer(mouse.X, mouse.Y, rl.IsCursorOnScreen())

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !g.overPanel(mouse) {
		g.Click()
	}
}

// overPanel reports whether the pointer is over the wave control panel.
func (g *Game) overPanel(p rl.Vector2) bool {
	if !g.overlays.IsEnabled(ui.OverlayWavePanel) {
		return false
	}
	x := g.screenWidth - wavePanelWidth - 10
	return p.X >= x && p.X <= x+wavePanelWidth && p.Y >= 10 && p.Y <= 10+320
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(w, h)
	g.wavePanel = ui.NewWavePanel(int32(w)-wavePanelWidth-10, 10, wavePanelWidth, initialParams(g.cfg.Waves))
}

// Update processes input and advances one frame by the window frame time.
func (g *Game) Update() {
	g.handleInput()
	g.advance(float64(rl.GetFrameTime()))
}
