package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/ui"
)

var skyColor = rl.Color{R: 250, G: 232, B: 238, A: 255}

// Draw renders the scene and the UI layer.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(skyColor)

	cam := g.camera
	rl.BeginMode3D(rl.Camera3D{
		Position:   vec3(cam.Position),
		Target:     vec3(cam.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       cam.Fovy,
		Projection: rl.CameraPerspective,
	})
	g.ground.Draw(g.time)
	g.water.Draw(g.time, cam.Position)
	g.blossoms.Draw(g.bridge.Buffer())
	if g.overlays.IsEnabled(ui.OverlayProbeMarker) {
		g.drawProbeMarker()
	}
	rl.EndMode3D()

	g.drawQuoteCard()
	g.drawUI()

	rl.EndDrawing()
	g.perf.RecordPresent()
}

// drawProbeMarker shows the last picking-plane hit and the highlight radius.
func (g *Game) drawProbeMarker() {
	x, z, ok := g.sel.ProbePoint()
	if !ok {
		return
	}
	h := float32(g.cfg.Probe.PlaneHeight)
	rl.DrawSphere(rl.NewVector3(x, h, z), 0.15, rl.Red)
	rl.DrawCircle3D(rl.NewVector3(x, h, z), g.sel.Radius(), rl.NewVector3(1, 0, 0), 90, rl.Maroon)
}

// drawQuoteCard projects the overlay anchor and draws the card there.
func (g *Game) drawQuoteCard() {
	ov := g.bridge.Overlay()
	if !ov.Visible {
		return
	}
	sx, sy, visible := g.camera.WorldToScreen(ov.WorldPosition)
	if !visible {
		return
	}
	g.quoteCard.Draw(ov, sx, sy)
}

// drawUI renders the HUD and toggled panels.
func (g *Game) drawUI() {
	if g.overlays.IsEnabled(ui.OverlayHUD) {
		selected := ""
		if i, ok := g.sel.Selected(); ok {
			selected = g.pool.Author(i)
		}
		g.hud.Draw(ui.HUDData{
			Title:        "Sakura",
			Blossoms:     g.pool.Len(),
			Highlighted:  len(g.sel.Highlighted()),
			Selected:     selected,
			FPS:          rl.GetFPS(),
			ScreenHeight: int32(g.screenHeight),
			Overlays:     g.overlays.Descriptors(),
		})
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perf.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayWavePanel) {
		if g.wavePanel.Draw(&g.water.Params) {
			p := g.water.Params
			slog.Debug("wave params changed",
				"amplitude", p.Amplitude,
				"speed", p.Speed,
				"frequency", p.Frequency,
				"persistence", p.Persistence,
				"lacunarity", p.Lacunarity,
				"iterations", p.Iterations,
			)
		}
	}
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}
