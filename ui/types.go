// Package ui draws the 2D layer over the scene: the quote card, the wave
// control panel, the HUD and the key-toggled overlays.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	Accent         rl.Color // author names
	LabelColor     rl.Color
	ValueColor     rl.Color
	QuoteColor     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
	CardWidth      int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 255, G: 250, B: 252, A: 225},
		PanelBorder:    rl.Color{R: 230, G: 190, B: 205, A: 255},
		Accent:         rl.Color{R: 213, G: 126, B: 156, A: 255},
		LabelColor:     rl.Color{R: 90, G: 80, B: 85, A: 255},
		ValueColor:     rl.Color{R: 60, G: 50, B: 55, A: 255},
		QuoteColor:     rl.Color{R: 70, G: 60, B: 65, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     90,
		FontSize:       14,
		HeaderFontSize: 18,
		CardWidth:      280,
	}
}
