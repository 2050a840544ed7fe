package wave

// Source supplies the live wave uniforms once per frame.
// ok is false while the surface that owns them does not exist yet; callers
// treat that as "nothing to animate" rather than an error.
type Source interface {
	WaveParams() (p Params, ok bool)
}

// Static is a Source that always reports the same uniforms.
type Static Params

// WaveParams implements Source.
func (s Static) WaveParams() (Params, bool) {
	return Params(s), true
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (Params, bool)

// WaveParams implements Source.
func (f SourceFunc) WaveParams() (Params, bool) {
	return f()
}
