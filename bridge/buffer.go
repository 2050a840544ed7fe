package bridge

import "github.com/chewxy/math32"

// Matrix is a 4x4 transform in column-major order (index = col*4 + row),
// the layout raylib and OpenGL expect.
type Matrix [16]float32

// Compose builds T(pos) · Rx(tilt) · Rz(angle) · S(scale).
func Compose(x, y, z, tilt, angle, scale float32) Matrix {
	sa, ca := math32.Sin(tilt), math32.Cos(tilt)
	sb, cb := math32.Sin(angle), math32.Cos(angle)

	var m Matrix
	// Column 0
	m[0] = cb * scale
	m[1] = ca * sb * scale
	m[2] = sa * sb * scale
	// Column 1
	m[4] = -sb * scale
	m[5] = ca * cb * scale
	m[6] = sa * cb * scale
	// Column 2
	m[9] = -sa * scale
	m[10] = ca * scale
	// Column 3
	m[12] = x
	m[13] = y
	m[14] = z
	m[15] = 1
	return m
}

// Apply transforms the point (x, y, z).
func (m *Matrix) Apply(x, y, z float32) (float32, float32, float32) {
	return m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14]
}

// Buffer is the instanced draw data: one transform and one RGB triple per
// instance. It is sized once and rewritten in place every frame.
type Buffer struct {
	Transforms []Matrix
	Colors     []float32 // r, g, b per instance

	version uint64
	dirty   bool
}

// NewBuffer allocates storage for n instances.
func NewBuffer(n int) *Buffer {
	return &Buffer{
		Transforms: make([]Matrix, n),
		Colors:     make([]float32, 3*n),
	}
}

// Len returns the instance count.
func (b *Buffer) Len() int {
	return len(b.Transforms)
}

// Set writes instance i.
func (b *Buffer) Set(i int, m Matrix, color [3]float32) {
	b.Transforms[i] = m
	copy(b.Colors[3*i:3*i+3], color[:])
}

// Color returns the colour of instance i.
func (b *Buffer) Color(i int) [3]float32 {
	return [3]float32{b.Colors[3*i], b.Colors[3*i+1], b.Colors[3*i+2]}
}

// MarkDirty flags both arrays for upload.
func (b *Buffer) MarkDirty() {
	b.version++
	b.dirty = true
}

// TakeDirty reports whether the buffer changed since the last call and
// clears the flag.
func (b *Buffer) TakeDirty() bool {
	d := b.dirty
	b.dirty = false
	return d
}

// Version counts MarkDirty calls.
func (b *Buffer) Version() uint64 {
	return b.version
}
