package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies a toggleable overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayWavePanel   OverlayID = "wave_panel"
	OverlayHUD         OverlayID = "hud"
	OverlayPerf        OverlayID = "perf"
	OverlayProbeMarker OverlayID = "probe_marker"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // Keyboard key to toggle (0 = no key)
	KeyLabel string // Key label for display
	Default  bool   // Enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	byID    map[OverlayID]OverlayDescriptor
	enabled map[OverlayID]bool
	order   []OverlayID // insertion order for display
}

// NewOverlayRegistry creates a registry with the standard overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.Register(OverlayDescriptor{ID: OverlayWavePanel, Name: "Wave controls", Key: rl.KeyL, KeyLabel: "L"})
	reg.Register(OverlayDescriptor{ID: OverlayHUD, Name: "HUD", Key: rl.KeyH, KeyLabel: "H", Default: true})
	reg.Register(OverlayDescriptor{ID: OverlayPerf, Name: "Frame timings", Key: rl.KeyP, KeyLabel: "P"})
	reg.Register(OverlayDescriptor{ID: OverlayProbeMarker, Name: "Probe marker", Key: rl.KeyM, KeyLabel: "M"})
	return reg
}

// Register adds or replaces an overlay.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if _, exists := r.byID[desc.ID]; !exists {
		r.order = append(r.order, desc.ID)
	}
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// HandleKey toggles the overlay bound to key, if any.
func (r *OverlayRegistry) HandleKey(key int32) (OverlayID, bool) {
	for _, id := range r.order {
		if d := r.byID[id]; d.Key != 0 && d.Key == key {
			r.Toggle(id)
			return id, true
		}
	}
	return "", false
}

// Descriptors returns all overlays in registration order.
func (r *OverlayRegistry) Descriptors() []OverlayDescriptor {
	out := make([]OverlayDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
