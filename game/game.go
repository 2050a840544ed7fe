// Package game wires the blossom field, the water surface and the UI into a
// window loop, and runs the same frame pipeline headless.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/sakura/bridge"
	"github.com/pthm-cable/sakura/camera"
	"github.com/pthm-cable/sakura/config"
	"github.com/pthm-cable/sakura/probe"
	"github.com/pthm-cable/sakura/quotes"
	"github.com/pthm-cable/sakura/renderer"
	"github.com/pthm-cable/sakura/selection"
	"github.com/pthm-cable/sakura/systems"
	"github.com/pthm-cable/sakura/telemetry"
	"github.com/pthm-cable/sakura/ui"
	"github.com/pthm-cable/sakura/wave"
)

// DT is the fixed frame time used headless.
const DT = 1.0 / 60.0

// Water mesh resolution (vertices per side).
const waterResolution = 256

// Options configures a new game.
type Options struct {
	Config    *config.Config // nil = config.Cfg()
	Seed      int64
	OutputDir string
	Headless  bool
}

// Game holds the complete scene state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	bridge *bridge.Bridge
	pool   *systems.Pool
	probe  *probe.Probe
	sel    *selection.Controller
	quotes *quotes.Table
	camera *camera.Camera

	// Rendering (nil when headless)
	water    *renderer.Water
	ground   *renderer.Ground
	blossoms *renderer.Blossoms

	// UI (nil when headless)
	overlays  *ui.OverlayRegistry
	quoteCard *ui.QuoteCard
	wavePanel *ui.WavePanel
	hud       *ui.HUD
	perfPanel *ui.PerfPanel

	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager

	// State
	frame        int64
	time         float64
	pointer      probe.Pointer
	pendingClick bool
	headless     bool
	lastReport   bridge.FrameReport

	screenWidth, screenHeight float32
}

// NewGame builds the scene. In windowed mode the raylib window must already exist.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	g := &Game{
		cfg:          cfg,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		headless:     opts.Headless,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}

	q, err := quotes.Load(cfg.Assets.Quotes)
	if err != nil {
		return nil, fmt.Errorf("loading quotes: %w", err)
	}
	g.quotes = q

	params := initialParams(cfg.Waves)
	field := wave.NewField(wave.NoiseByName(cfg.Waves.Noise, cfg.Waves.Seed))

	g.pool, err = systems.NewPool(poolOptions(cfg.Field), q.Authors(), field, g.rng)
	if err != nil {
		return nil, fmt.Errorf("building blossom field: %w", err)
	}

	g.probe = probe.New(cfg.Probe.Interval, cfg.Probe.PlaneHeight, cfg.Probe.PlaneExtent)
	g.sel = selection.NewController(cfg.Field.HighlightRadius)

	c := cfg.Camera
	g.camera = camera.New(c.Position, c.Target, c.Fovy, g.screenWidth, g.screenHeight)
	g.camera.Parallax = c.Parallax
	g.camera.Easing = c.Easing

	var source wave.Source = wave.Static(params)
	if !opts.Headless {
		g.initRendering(params)
		source = g.water
	}

	g.bridge, err = bridge.New(bridge.Options{
		Source:    source,
		Pool:      g.pool,
		Probe:     g.probe,
		Selection: g.sel,
		Quotes:    q,
		Palette:   palette(cfg.Style),
		Tilt:      cfg.Field.Tilt,
		Lift:      cfg.Field.OverlayLift,
		Perf:      g.perf,
	})
	if err != nil {
		return nil, fmt.Errorf("wiring frame bridge: %w", err)
	}

	g.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	slog.Info("scene ready",
		"blossoms", g.pool.Len(),
		"authors", q.Len(),
		"noise", cfg.Waves.Noise,
		"seed", opts.Seed,
		"headless", opts.Headless,
		"output_dir", g.output.Dir(),
	)
	return g, nil
}

// initRendering creates the GPU side of the scene and the UI.
func (g *Game) initRendering(params wave.Params) {
	cfg := g.cfg

	g.water = renderer.NewWater(cfg.Ground.Size, waterResolution, params)
	g.water.Init()

	g.ground = renderer.NewGround(renderer.GroundOptions{
		Height:        cfg.Ground.Height,
		Size:          cfg.Ground.Size,
		TextureRepeat: cfg.Ground.TextureRepeat,
		TexturePath:   cfg.Assets.Sand,
		TextureSize:   cfg.Ground.TextureSize,
		Seed:          cfg.Waves.Seed,
	})
	g.ground.Init()

	g.blossoms = renderer.NewBlossoms(cfg.Assets.Model, cfg.Assets.AOMap)
	g.blossoms.Init()

	g.overlays = ui.NewOverlayRegistry()
	g.quoteCard = ui.NewQuoteCard()
	g.wavePanel = ui.NewWavePanel(int32(g.screenWidth)-wavePanelWidth-10, 10, wavePanelWidth, params)
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 80, 220)
}

func initialParams(w config.WavesConfig) wave.Params {
	return wave.Params{
		Amplitude:   w.Amplitude,
		Speed:       w.Speed,
		Frequency:   w.Frequency,
		Persistence: w.Persistence,
		Lacunarity:  w.Lacunarity,
		Iterations:  w.Iterations,
	}
}

func poolOptions(f config.FieldConfig) systems.PoolOptions {
	return systems.PoolOptions{
		Amount:               f.Amount,
		SpawnExtent:          f.SpawnExtent,
		MinSeparation:        f.MinSeparation,
		MaxPlacementAttempts: f.MaxPlacementAttempts,
		DriftCoefficient:     f.DriftCoefficient,
		WrapMin:              f.WrapMin,
		WrapMax:              f.WrapMax,
		ElevationScale:       f.ElevationScale,
		VerticalBias:         f.VerticalBias,
		SpinMultiplier:       f.SpinMultiplier,
	}
}

func palette(s config.StyleConfig) bridge.Palette {
	style := func(v config.VariantStyle) bridge.Style {
		return bridge.Style{Scale: v.Scale, Color: v.Color}
	}
	return bridge.Palette{
		Normal:      style(s.Normal),
		Highlighted: style(s.Highlighted),
		Selected:    style(s.Selected),
	}
}

// Tick advances one fixed headless frame.
func (g *Game) Tick() bridge.FrameReport {
	g.advance(DT)
	return g.lastReport
}

// advance runs the camera, the bridge frame and any pending click.
func (g *Game) advance(dt float64) {
	g.time += dt
	g.camera.Update()

	g.lastReport = g.bridge.Frame(bridge.FrameInput{
		Time:    g.time,
		View:    g.camera.View(),
		Pointer: g.pointer,
	})

	if g.pendingClick {
		g.pendingClick = false
		g.handleClick()
	}

	g.frame++
	if n := int64(g.cfg.Telemetry.LogInterval); n > 0 && g.frame%n == 0 {
		g.logPerf()
	}
}

// SetPointer moves the pointer to screen position (sx, sy).
func (g *Game) SetPointer(sx, sy float32, inside bool) {
	g.pointer = probe.Pointer{X: float64(sx), Y: float64(sy), Inside: inside}
	if inside {
		g.camera.SetPointer(sx, sy)
	}
}

// Click queues a click for the next frame.
func (g *Game) Click() {
	g.pendingClick = true
}

// Frame returns the number of frames run.
func (g *Game) Frame() int64 {
	return g.frame
}

// Bridge returns the frame bridge.
func (g *Game) Bridge() *bridge.Bridge {
	return g.bridge
}

// Camera returns the camera rig.
func (g *Game) Camera() *camera.Camera {
	return g.camera
}

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.water != nil {
		g.water.Unload()
	}
	if g.ground != nil {
		g.ground.Unload()
	}
	if g.blossoms != nil {
		g.blossoms.Unload()
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
