package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/wave"
)

// WaterStyle holds the water colour uniforms.
type WaterStyle struct {
	Opacity          float32
	TroughColor      [3]float32
	SurfaceColor     [3]float32
	PeakColor        [3]float32
	PeakThreshold    float32
	PeakTransition   float32
	TroughThreshold  float32
	TroughTransition float32
	FresnelScale     float32
	FresnelPower     float32
}

// DefaultWaterStyle is a dusky pink surface with pale crests.
func DefaultWaterStyle() WaterStyle {
	return WaterStyle{
		Opacity:          0.8,
		TroughColor:      [3]float32{0.12, 0.07, 0.09},
		SurfaceColor:     [3]float32{95.0 / 255, 56.0 / 255, 56.0 / 255},
		PeakColor:        [3]float32{1.0, 0.85, 0.9},
		PeakThreshold:    0.08,
		PeakTransition:   0.05,
		TroughThreshold:  -0.01,
		TroughTransition: 0.15,
		FresnelScale:     0.8,
		FresnelPower:     0.5,
	}
}

type waterLocs struct {
	time, amplitude, speed, frequency   int32
	persistence, lacunarity, iterations int32
	viewPos, opacity                    int32
	trough, surface, peak               int32
	peakThreshold, peakTransition       int32
	troughThreshold, troughTransition   int32
	fresnelScale, fresnelPower          int32
}

// Water renders the animated water plane. It owns the live wave uniforms
// and serves them to the blossom field as a wave.Source.
type Water struct {
	// Params are the current uniforms; the control panel edits them in place.
	Params wave.Params
	Style  WaterStyle

	size       float32
	resolution int32

	shader      rl.Shader
	model       rl.Model
	locs        waterLocs
	initialized bool
}

// NewWater creates a size×size water plane with the given initial uniforms.
func NewWater(size float32, resolution int32, params wave.Params) *Water {
	return &Water{
		Params:     params,
		Style:      DefaultWaterStyle(),
		size:       size,
		resolution: resolution,
	}
}

// Init builds the mesh and shader (must be called after the raylib window is created).
func (w *Water) Init() {
	if w.initialized {
		return
	}

	w.shader = rl.LoadShaderFromMemory(waterVS, waterFS)
	loc := func(name string) int32 { return rl.GetShaderLocation(w.shader, name) }
	w.locs = waterLocs{
		time:             loc("uTime"),
		amplitude:        loc("uWavesAmplitude"),
		speed:            loc("uWavesSpeed"),
		frequency:        loc("uWavesFrequency"),
		persistence:      loc("uWavesPersistence"),
		lacunarity:       loc("uWavesLacunarity"),
		iterations:       loc("uWavesIterations"),
		viewPos:          loc("viewPos"),
		opacity:          loc("uOpacity"),
		trough:           loc("uTroughColor"),
		surface:          loc("uSurfaceColor"),
		peak:             loc("uPeakColor"),
		peakThreshold:    loc("uPeakThreshold"),
		peakTransition:   loc("uPeakTransition"),
		troughThreshold:  loc("uTroughThreshold"),
		troughTransition: loc("uTroughTransition"),
		fresnelScale:     loc("uFresnelScale"),
		fresnelPower:     loc("uFresnelPower"),
	}

	mesh := rl.GenMeshPlane(w.size, w.size, int(w.resolution), int(w.resolution))
	w.model = rl.LoadModelFromMesh(mesh)
	w.model.GetMaterials()[0].Shader = w.shader

	w.initialized = true
}

// WaveParams implements wave.Source. The surface is unavailable until Init.
func (w *Water) WaveParams() (wave.Params, bool) {
	return w.Params, w.initialized
}

// Draw renders the water at elapsed time t seen from viewPos.
// Must be called inside BeginMode3D.
func (w *Water) Draw(t float64, viewPos [3]float32) {
	if !w.initialized {
		w.Init()
	}

	p := w.Params
	s := w.shader
	setFloat(s, w.locs.time, float32(t))
	setFloat(s, w.locs.amplitude, float32(p.Amplitude))
	setFloat(s, w.locs.speed, float32(p.Speed))
	setFloat(s, w.locs.frequency, float32(p.Frequency))
	setFloat(s, w.locs.persistence, float32(p.Persistence))
	setFloat(s, w.locs.lacunarity, float32(p.Lacunarity))
	setFloat(s, w.locs.iterations, float32(p.Iterations))
	setVec3(s, w.locs.viewPos, viewPos)

	st := w.Style
	setFloat(s, w.locs.opacity, st.Opacity)
	setVec3(s, w.locs.trough, st.TroughColor)
	setVec3(s, w.locs.surface, st.SurfaceColor)
	setVec3(s, w.locs.peak, st.PeakColor)
	setFloat(s, w.locs.peakThreshold, st.PeakThreshold)
	setFloat(s, w.locs.peakTransition, st.PeakTransition)
	setFloat(s, w.locs.troughThreshold, st.TroughThreshold)
	setFloat(s, w.locs.troughTransition, st.TroughTransition)
	setFloat(s, w.locs.fresnelScale, st.FresnelScale)
	setFloat(s, w.locs.fresnelPower, st.FresnelPower)

	rl.BeginBlendMode(rl.BlendAlpha)
	rl.DrawModel(w.model, rl.NewVector3(0, 0, 0), 1, rl.White)
	rl.EndBlendMode()
}

// Unload frees resources.
func (w *Water) Unload() {
	if w.initialized {
		rl.UnloadModel(w.model)
		rl.UnloadShader(w.shader)
		w.initialized = false
	}
}
