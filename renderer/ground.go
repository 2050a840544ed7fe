package renderer

import (
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/systems"
)

// GroundOptions configures the sand plane.
type GroundOptions struct {
	Height        float32
	Size          float32
	TextureRepeat float32
	TexturePath   string // empty or missing = procedural sand
	TextureSize   int
	Seed          int64

	CausticsColor     [3]float32
	CausticsIntensity float32
	CausticsScale     float32
	CausticsSpeed     float32
}

// Ground renders the sand floor below the water with moving caustics.
type Ground struct {
	opts GroundOptions

	shader  rl.Shader
	texture rl.Texture2D
	model   rl.Model

	timeLoc int32

	initialized bool
}

// NewGround creates a ground renderer. Zero caustic fields take the
// defaults: blue tint, intensity 1.2, scale 3, speed 0.2.
func NewGround(opts GroundOptions) *Ground {
	if opts.CausticsColor == [3]float32{} {
		opts.CausticsColor = [3]float32{0, 0.5, 1}
	}
	if opts.CausticsIntensity == 0 {
		opts.CausticsIntensity = 1.2
	}
	if opts.CausticsScale == 0 {
		opts.CausticsScale = 3
	}
	if opts.CausticsSpeed == 0 {
		opts.CausticsSpeed = 0.2
	}
	return &Ground{opts: opts}
}

// Init loads the texture and shader (must be called after the raylib window is created).
func (g *Ground) Init() {
	if g.initialized {
		return
	}

	g.texture = g.loadTexture()
	rl.GenTextureMipmaps(&g.texture)
	rl.SetTextureFilter(g.texture, rl.FilterTrilinear)
	rl.SetTextureWrap(g.texture, rl.WrapRepeat)

	g.shader = rl.LoadShaderFromMemory(groundVS, groundFS)
	g.timeLoc = rl.GetShaderLocation(g.shader, "uTime")
	setFloat(g.shader, rl.GetShaderLocation(g.shader, "uRepeat"), g.opts.TextureRepeat)
	setFloat(g.shader, rl.GetShaderLocation(g.shader, "uSize"), g.opts.Size)
	setVec3(g.shader, rl.GetShaderLocation(g.shader, "uCausticsColor"), g.opts.CausticsColor)
	setFloat(g.shader, rl.GetShaderLocation(g.shader, "uCausticsIntensity"), g.opts.CausticsIntensity)
	setFloat(g.shader, rl.GetShaderLocation(g.shader, "uCausticsScale"), g.opts.CausticsScale)
	setFloat(g.shader, rl.GetShaderLocation(g.shader, "uCausticsSpeed"), g.opts.CausticsSpeed)

	mesh := rl.GenMeshPlane(g.opts.Size, g.opts.Size, 1, 1)
	g.model = rl.LoadModelFromMesh(mesh)
	mat := &g.model.GetMaterials()[0]
	mat.Shader = g.shader
	rl.SetMaterialTexture(mat, rl.MapAlbedo, g.texture)

	g.initialized = true
}

// loadTexture uses the configured file when present, else generated sand.
func (g *Ground) loadTexture() rl.Texture2D {
	if g.opts.TexturePath != "" {
		if _, err := os.Stat(g.opts.TexturePath); err == nil {
			return rl.LoadTexture(g.opts.TexturePath)
		}
		slog.Warn("ground texture missing, using procedural sand", "path", g.opts.TexturePath)
	}

	img := rl.NewImageFromImage(systems.SandTexture(g.opts.TextureSize, g.opts.Seed))
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	return tex
}

// Draw renders the ground. Must be called inside BeginMode3D.
func (g *Ground) Draw(t float64) {
	if !g.initialized {
		g.Init()
	}
	setFloat(g.shader, g.timeLoc, float32(t))
	rl.DrawModel(g.model, rl.NewVector3(0, g.opts.Height, 0), 1, rl.White)
}

// Unload frees resources.
func (g *Ground) Unload() {
	if g.initialized {
		rl.UnloadModel(g.model)
		rl.UnloadShader(g.shader)
		rl.UnloadTexture(g.texture)
		g.initialized = false
	}
}
