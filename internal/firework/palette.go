package firework

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a linear float colour. Channels may exceed 1 for bloom.
type RGB struct {
	R, G, B float32
}

func rgbOf(c colorful.Color) RGB {
	return RGB{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func (c RGB) Add(d float32) RGB {
	return RGB{R: c.R + d, G: c.G + d, B: c.B + d}
}

func (c RGB) Scale(k float32) RGB {
	return RGB{R: c.R * k, G: c.G * k, B: c.B * k}
}

func lerpRGB(a, b RGB, t float32) RGB {
	return RGB{R: lerp(a.R, b.R, t), G: lerp(a.G, b.G, t), B: lerp(a.B, b.B, t)}
}

var Palette = struct {
	Ember RGB // warm orange every particle fades toward
	Flash RGB
}{
	Ember: rgbOf(colorful.Color{R: 1.0, G: 0.45, B: 0.12}),
	Flash: RGB{R: 1.0, G: 0.95, B: 0.85},
}

const (
	paletteSatMin   = 0.65
	paletteSatMax   = 0.9
	paletteLightMin = 0.5
	paletteLightMax = 0.65

	hueJitterDeg   = 10.0
	lightJitter    = 0.06
	sparkBrightAdd = 0.35
)

// RandomPalette returns a saturated colour with a random hue, avoiding
// near-black and near-white.
func RandomPalette(r *Rand) RGB {
	h := r.RangeF(0, 360)
	s := r.RangeF(paletteSatMin, paletteSatMax)
	l := r.RangeF(paletteLightMin, paletteLightMax)
	return rgbOf(colorful.Hsl(h, s, l).Clamped())
}

// jitterColor perturbs hue and lightness slightly. Sparks get an additive
// brightness boost on top.
func jitterColor(r *Rand, base RGB, spark bool) RGB {
	h, s, l := base.toColorful().Hsl()
	h = math.Mod(h+r.RangeF(-hueJitterDeg, hueJitterDeg)+360, 360)
	l = clamp64(l+r.RangeF(-lightJitter, lightJitter), 0.05, 0.95)
	c := rgbOf(colorful.Hsl(h, s, l).Clamped())
	if spark {
		c = c.Add(sparkBrightAdd)
	}
	return c
}
