package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/noise"
)

// ringGap is a radius window where the ring density is forced near zero.
type ringGap struct {
	name   string
	lo, hi float64
}

// Gap windows in normalized ring radius (0 inner edge, 1 outer edge).
var ringGaps = []ringGap{
	{"Colombo", 0.085, 0.095},
	{"Maxwell", 0.155, 0.168},
	{"Cassini Division", 0.585, 0.645},
	{"Encke", 0.858, 0.868},
	{"Keeler", 0.905, 0.909},
}

// gapDensity is the residual density inside a gap window.
const gapDensity = 0.04

// ringSection is a named radial band with a base density.
type ringSection struct {
	name    string
	lo, hi  float64
	density float64
}

var ringSections = []ringSection{
	{"D", 0.0, 0.02, 0.06},
	{"C", 0.02, 0.27, 0.3},
	{"B", 0.27, 0.585, 0.88},
	{"Cassini", 0.585, 0.645, 0.25},
	{"A", 0.645, 0.92, 0.64},
	{"F", 0.955, 0.962, 0.6},
}

// RingGaps returns the names and radius windows of the ring gaps.
func RingGaps() map[string][2]float64 {
	out := make(map[string][2]float64, len(ringGaps))
	for _, g := range ringGaps {
		out[g.name] = [2]float64{g.lo, g.hi}
	}
	return out
}

// RingDensity returns the ring density in [0,1] at normalized radius r.
func RingDensity(r float64, s SeedTable) float64 {
	base := 0.0
	for _, sec := range ringSections {
		if r >= sec.lo && r < sec.hi {
			base = sec.density
			break
		}
	}
	if base == 0 {
		return 0
	}

	seed := s.get(SeedRing)
	ringlets := 0.75 + 0.25*noise.FBM(r*96, 0, 4, seed)
	fine := 0.9 + 0.1*math.Sin(r*900+noise.Value(r*40, 0, seed+1)*6)
	d := clamp01(base * ringlets * fine)

	for _, g := range ringGaps {
		if r > g.lo && r < g.hi {
			return d * gapDensity
		}
	}
	return d
}

var (
	ringDust = rgb(140, 120, 96)
	ringIce  = rgb(232, 216, 186)
)

// ringTexel encodes density as brightness; u is the radius, v runs along the ring.
func ringTexel(u, v float64, s SeedTable) colorful.Color {
	d := RingDensity(u, s)
	tint := noise.FBM(u*40, v*2, 3, s.get(SeedRing)+7)
	c := mix(ringDust, ringIce, tint)
	// The C ring is darker and greyer than A and B.
	if u < 0.27 {
		c = mix(c, ringDust, 0.5)
	}
	return scale(c, d)
}
