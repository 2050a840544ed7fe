// Package components defines ECS components for the blossom field.
// All blossoms share one archetype, so each component type is stored as a
// contiguous column indexed in spawn order.
package components

// Position is a blossom's world position. X and Z drift, Y follows the water.
type Position struct {
	X, Y, Z float32
}

// Drift holds the per-blossom motion constants drawn at spawn time.
type Drift struct {
	FloatSeed     float32 // [1.0, 1.5) multiplier on the shared drift speed
	RotationSpeed float32 // Signed, magnitude in [0.001, 0.003)
}

// Spin is the current visual rotation about the blossom's own axis (radians).
// It is a pure function of time and never integrated.
type Spin struct {
	Angle float32
}

// Appearance holds the immutable base scale.
type Appearance struct {
	BaseScale float32 // [0.5, 1.0)
}

// Authorship links a blossom to the author whose quote it reveals.
type Authorship struct {
	Author string
}

// Slot is the blossom's instance index: its row in the instanced draw
// buffer and the id used by selection.
type Slot struct {
	Index int
}
