package renderer

import (
	"log/slog"
	"os"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/bridge"
)

// Blossoms draws the field with one instanced call per model mesh.
// Drawing is skipped until the model loads; a missing model file is not fatal.
type Blossoms struct {
	modelPath string
	aoPath    string

	// LightDir and Ambient feed the petal lighting.
	LightDir [3]float32
	Ambient  float32

	shader     rl.Shader
	model      rl.Model
	aoTexture  rl.Texture2D
	transforms []rl.Matrix // GPU copy with the tint packed into row 3

	lightLoc, ambientLoc int32

	shaderLoaded bool
	modelLoaded  bool
	initialized  bool
}

// NewBlossoms creates a blossom renderer for the given assets.
func NewBlossoms(modelPath, aoPath string) *Blossoms {
	return &Blossoms{
		modelPath: modelPath,
		aoPath:    aoPath,
		LightDir:  [3]float32{-0.4, -1, -0.3},
		Ambient:   0.45,
	}
}

// Init loads the shader and assets (must be called after the raylib window is created).
func (b *Blossoms) Init() {
	if b.initialized {
		return
	}
	b.initialized = true

	b.shader = rl.LoadShaderFromMemory(blossomVS, blossomFS)
	b.shader.UpdateLocation(rl.ShaderLocMatrixMvp, rl.GetShaderLocation(b.shader, "mvp"))
	b.shader.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocationAttrib(b.shader, "instanceTransform"))
	b.shader.UpdateLocation(rl.ShaderLocMapOcclusion, rl.GetShaderLocation(b.shader, "aoMap"))
	b.lightLoc = rl.GetShaderLocation(b.shader, "lightDir")
	b.ambientLoc = rl.GetShaderLocation(b.shader, "ambient")
	b.shaderLoaded = true

	if _, err := os.Stat(b.modelPath); err != nil {
		slog.Warn("blossom model missing, field will not be drawn", "path", b.modelPath, "error", err)
		return
	}
	b.model = rl.LoadModel(b.modelPath)
	if b.model.MeshCount == 0 {
		slog.Warn("blossom model has no meshes, field will not be drawn", "path", b.modelPath)
		rl.UnloadModel(b.model)
		return
	}

	b.aoTexture = b.loadAO()
	for i := range b.model.GetMaterials() {
		mat := &b.model.GetMaterials()[i]
		mat.Shader = b.shader
		rl.SetMaterialTexture(mat, rl.MapOcclusion, b.aoTexture)
	}
	b.modelLoaded = true
}

// loadAO returns the occlusion texture, or plain white if it is missing.
func (b *Blossoms) loadAO() rl.Texture2D {
	if b.aoPath != "" {
		if _, err := os.Stat(b.aoPath); err == nil {
			return rl.LoadTexture(b.aoPath)
		}
		slog.Warn("ambient occlusion map missing", "path", b.aoPath)
	}
	img := rl.GenImageColor(1, 1, rl.White)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	return tex
}

// Ready reports whether the model and material are available.
func (b *Blossoms) Ready() bool {
	return b.modelLoaded
}

// Draw renders the buffer. Must be called inside BeginMode3D.
func (b *Blossoms) Draw(buf *bridge.Buffer) {
	if !b.initialized {
		b.Init()
	}
	if !b.modelLoaded || buf.Len() == 0 {
		return
	}

	if buf.TakeDirty() || len(b.transforms) != buf.Len() {
		b.pack(buf)
	}

	setVec3(b.shader, b.lightLoc, b.LightDir)
	setFloat(b.shader, b.ambientLoc, b.Ambient)

	meshes := b.model.GetMeshes()
	materials := b.model.GetMaterials()
	meshMaterial := unsafe.Slice(b.model.MeshMaterial, b.model.MeshCount)
	for i := range meshes {
		mat := materials[0]
		if m := int(meshMaterial[i]); m >= 0 && m < len(materials) {
			mat = materials[m]
		}
		rl.DrawMeshInstanced(meshes[i], mat, b.transforms, len(b.transforms))
	}
}

// pack converts the buffer to raylib matrices, storing the tint in the
// otherwise constant bottom row.
func (b *Blossoms) pack(buf *bridge.Buffer) {
	if cap(b.transforms) < buf.Len() {
		b.transforms = make([]rl.Matrix, buf.Len())
	}
	b.transforms = b.transforms[:buf.Len()]

	for i := range b.transforms {
		m := &buf.Transforms[i]
		c := buf.Color(i)
		b.transforms[i] = rl.Matrix{
			M0: m[0], M1: m[1], M2: m[2], M3: c[0],
			M4: m[4], M5: m[5], M6: m[6], M7: c[1],
			M8: m[8], M9: m[9], M10: m[10], M11: c[2],
			M12: m[12], M13: m[13], M14: m[14], M15: 1,
		}
	}
}

// Unload frees resources.
func (b *Blossoms) Unload() {
	if b.modelLoaded {
		rl.UnloadModel(b.model)
		rl.UnloadTexture(b.aoTexture)
		b.modelLoaded = false
	}
	if b.shaderLoaded {
		rl.UnloadShader(b.shader)
		b.shaderLoaded = false
	}
	b.initialized = false
}
