package systems

import (
	"image"
	"image/color"

	"github.com/ojrac/opensimplex-go"
)

// Sand tones blended by the noise value.
var (
	sandDark  = color.RGBA{R: 168, G: 142, B: 104, A: 255}
	sandLight = color.RGBA{R: 226, G: 205, B: 166, A: 255}
)

// SandTexture renders a tileable-looking sand pattern used when the ground
// texture asset is missing. Fine grain rides on top of broad dunes.
func SandTexture(size int, seed int64) *image.RGBA {
	if size <= 0 {
		size = 1
	}
	noise := opensimplex.NewNormalized(seed)
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	inv := 1.0 / float64(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := float64(x) * inv
			v := float64(y) * inv

			// Dunes: 4 octaves of fBm
			dunes := 0.0
			amp, freq, norm := 1.0, 4.0, 0.0
			for o := 0; o < 4; o++ {
				dunes += amp * noise.Eval2(u*freq, v*freq)
				norm += amp
				amp *= 0.5
				freq *= 2
			}
			dunes /= norm

			grain := noise.Eval2(u*96+17, v*96-31)
			t := 0.8*dunes + 0.2*grain

			img.SetRGBA(x, y, mixRGBA(sandDark, sandLight, t))
		}
	}
	return img
}

// mixRGBA linearly interpolates two colours, t clamped to [0, 1].
func mixRGBA(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: 255,
	}
}
