package texture

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// rgb builds a working colour from 0-255 channel literals.
func rgb(r, g, b float64) colorful.Color {
	return colorful.Color{R: r / 255, G: g / 255, B: b / 255}
}

// mix blends a toward b by t, clamped to [0,1].
func mix(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendRgb(b, clamp01(t))
}

// scale multiplies every channel by k. Results above 1 are clamped at quantization.
func scale(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

// add sums two colours channel-wise.
func add(a, b colorful.Color) colorful.Color {
	return colorful.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}

// channel converts a [0,1] working value to an 8-bit channel: truncate, then clamp.
func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	n := v * 255
	if n <= 0 {
		return 0
	}
	if n >= 255 {
		return 255
	}
	return uint8(int(n))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func sq(x float64) float64 { return x * x }

// smoothstep is Hermite easing of x between edges e0 and e1.
func smoothstep(e0, e1, x float64) float64 {
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// latitude maps v in [0,1) to a signed latitude in [-1,1], north positive.
func latitude(v float64) float64 {
	return 1 - 2*v
}

// wrapDelta returns the shortest signed longitude difference in [-0.5,0.5].
func wrapDelta(d float64) float64 {
	return d - math.Round(d)
}

// anchor is a fixed point on the texture with an elliptical footprint.
type anchor struct {
	u, v   float64
	rx, ry float64
}

// dist returns the anisotropic distance from (u, v) to the anchor, 1 on its rim,
// and the angle around it.
func (a anchor) dist(u, v float64) (d, angle float64) {
	du := wrapDelta(u-a.u) / a.rx
	dv := (v - a.v) / a.ry
	return math.Hypot(du, dv), math.Atan2(dv, du)
}

// segmentDist returns the distance from p to the segment ab, with v scaled by
// aspect so equirectangular distances look round on the sphere.
func segmentDist(u, v, au, av, bu, bv, aspect float64) float64 {
	px, py := u-au, (v-av)*aspect
	sx, sy := bu-au, (bv-av)*aspect
	t := clamp01((px*sx + py*sy) / (sx*sx + sy*sy))
	return math.Hypot(px-t*sx, py-t*sy)
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("texture: bad colour literal %q: %v", s, err))
	}
	return c
}
