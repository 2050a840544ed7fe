// Wave surface preview tool - CPU heightmap of the water with live sliders.
//
// Usage: go run ./cmd/wavepreview [-noise ripple|simplex] [-seed N]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/sakura/config"
	"github.com/pthm-cable/sakura/ui"
	"github.com/pthm-cable/sakura/wave"
)

const (
	windowWidth  = 900
	windowHeight = 560
	previewSize  = 512
	gridSize     = 128
	worldExtent  = 150.0 // world units covered by the preview
	panelWidth   = windowWidth - previewSize - 30
)

var lightDir = r3.Unit(r3.Vec{X: -0.4, Y: 1, Z: -0.3})

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	noise := flag.String("noise", "", "Noise source (ripple or simplex; empty = config)")
	seed := flag.Int64("seed", 0, "Simplex seed (0 = config)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	w, err := loadWaves(*configPath, *noise, *seed)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Wave Surface Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	defaults := wave.Params{
		Amplitude:   w.Amplitude,
		Speed:       w.Speed,
		Frequency:   w.Frequency,
		Persistence: w.Persistence,
		Lacunarity:  w.Lacunarity,
		Iterations:  w.Iterations,
	}
	params := defaults
	field := wave.NewField(wave.NoiseByName(w.Noise, w.Seed))
	panel := ui.NewWavePanel(previewSize+20, 10, panelWidth, defaults)

	heights := make([]float64, gridSize*gridSize)
	pixels := make([]color.RGBA, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	animating := true
	for !rl.WindowShouldClose() {
		if animating {
			params.Time += float64(rl.GetFrameTime())
		}

		lo, hi := sample(field, params, heights)
		shade(field, params, heights, lo, hi, pixels)
		rl.UpdateTexture(texture, pixels)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 18)
		rl.DrawText(fmt.Sprintf("Min: %.4f  Max: %.4f  Time: %.1f  Noise: %s", lo, hi, params.Time, w.Noise),
			15, statsY, 16, rl.DarkGray)

		panel.Draw(&params)

		label := "Pause"
		if !animating {
			label = "Play"
		}
		if gui.Button(rl.Rectangle{X: previewSize + 20, Y: windowHeight - 44, Width: 100, Height: 28}, label) {
			animating = !animating
		}

		rl.EndDrawing()
	}
}

// loadWaves reads the wave section of the config and applies flag overrides.
func loadWaves(path, noise string, seed int64) (config.WavesConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.WavesConfig{}, err
	}
	w := cfg.Waves
	if noise != "" {
		w.Noise = noise
	}
	if seed != 0 {
		w.Seed = seed
	}
	return w, nil
}

// sample fills heights over the preview square and returns the range.
func sample(f wave.Field, p wave.Params, heights []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	step := worldExtent / gridSize
	for j := 0; j < gridSize; j++ {
		z := -worldExtent/2 + (float64(j)+0.5)*step
		for i := 0; i < gridSize; i++ {
			x := -worldExtent/2 + (float64(i)+0.5)*step
			h := f.Elevation(x, z, p)
			heights[j*gridSize+i] = h
			lo = math.Min(lo, h)
			hi = math.Max(hi, h)
		}
	}
	return lo, hi
}

// shade maps height to a trough-to-peak ramp lit by the surface normal.
func shade(f wave.Field, p wave.Params, heights []float64, lo, hi float64, out []color.RGBA) {
	trough := [3]float64{48, 93, 153}
	peak := [3]float64{220, 238, 250}
	span := hi - lo
	step := worldExtent / gridSize

	for j := 0; j < gridSize; j++ {
		z := -worldExtent/2 + (float64(j)+0.5)*step
		for i := 0; i < gridSize; i++ {
			x := -worldExtent/2 + (float64(i)+0.5)*step
			t := 0.5
			if span > 0 {
				t = (heights[j*gridSize+i] - lo) / span
			}
			n := f.Normal(x, z, p)
			light := 0.55 + 0.45*math.Max(0, r3.Dot(n, lightDir))

			var c [3]uint8
			for k := range c {
				v := (trough[k] + (peak[k]-trough[k])*t) * light
				c[k] = uint8(math.Min(255, math.Max(0, v)))
			}
			out[j*gridSize+i] = color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
		}
	}
}
