// Package renderer draws the scene with raylib: the water surface, the sand
// ground and the instanced blossom field.
package renderer

import (
	_ "embed"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	//go:embed shaders/water.vs
	waterVS string
	//go:embed shaders/water.fs
	waterFS string
	//go:embed shaders/ground.vs
	groundVS string
	//go:embed shaders/ground.fs
	groundFS string
	//go:embed shaders/blossom.vs
	blossomVS string
	//go:embed shaders/blossom.fs
	blossomFS string
)

// setFloat sets a float uniform.
func setFloat(s rl.Shader, loc int32, v float32) {
	rl.SetShaderValue(s, loc, []float32{v}, rl.ShaderUniformFloat)
}

// setVec3 sets a vec3 uniform.
func setVec3(s rl.Shader, loc int32, v [3]float32) {
	rl.SetShaderValue(s, loc, v[:], rl.ShaderUniformVec3)
}
