package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/noise"
)

const (
	jupiterOvalThreshold = 0.7
	saturnStormThreshold = 0.72
)

var (
	jupiterBelt   = rgb(160, 108, 74)
	jupiterZone   = rgb(236, 222, 196)
	jupiterStreak = rgb(200, 160, 120)
	jupiterSpotA  = rgb(182, 76, 50)
	jupiterSpotB  = rgb(216, 122, 86)
	jupiterCollar = rgb(240, 226, 202)
	jupiterOval   = rgb(246, 242, 232)
	jupiterPole   = rgb(110, 96, 86)

	greatRedSpot = anchor{u: 0.3, v: 0.64, rx: 0.06, ry: 0.035}
)

// jupiter: belts and zones, Great Red Spot, white ovals, polar darkening.
func jupiter(u, v float64, s SeedTable) colorful.Color {
	lat := latitude(v)
	seed := s.get(SeedJupiterBands)

	warp := noise.Turbulence(u*8, v*4, 5, seed)
	bands := 0.5 + 0.5*math.Sin(lat*22+(warp-0.5)*1.8)
	c := mix(jupiterBelt, jupiterZone, bands)

	detail := noise.FBM(u*24, v*12, 5, seed+20)
	c = scale(c, 0.9+0.2*detail)

	streak := noise.FBM(u*64, v*4, 3, seed+40)
	if streak > 0.5 {
		c = mix(c, jupiterStreak, (streak-0.5)*0.6)
	}

	d, angle := greatRedSpot.dist(u, v)
	if d < 1.3 {
		swirl := 0.5 + 0.5*math.Sin(angle*3+d*10+warp*2)
		spot := mix(jupiterSpotA, jupiterSpotB, swirl)
		c = mix(c, spot, 1-smoothstep(0, 1, d))
		c = mix(c, jupiterCollar, math.Exp(-sq((d-1.05)/0.12))*0.5)
	}

	if lat < -0.3 && lat > -0.5 {
		ov := noise.FBM(u*30, v*15, 3, s.get(SeedJupiterStorms))
		if ov > jupiterOvalThreshold {
			c = mix(c, jupiterOval, (ov-jupiterOvalThreshold)/(1-jupiterOvalThreshold)*0.8)
		}
	}

	return mix(c, jupiterPole, (math.Abs(lat)-0.7)/0.3*0.6)
}

var (
	saturnBelt    = rgb(198, 168, 114)
	saturnZone    = rgb(236, 216, 166)
	saturnHexFill = rgb(132, 140, 150)
	saturnHexEdge = rgb(96, 110, 128)
	saturnStorm   = rgb(248, 240, 220)
	saturnHaze    = rgb(180, 170, 150)
)

// hexRadius returns the distance from the centre to the edge of a regular
// hexagon of unit inradius in direction theta.
func hexRadius(theta float64) float64 {
	seg := math.Mod(theta, math.Pi/3)
	if seg < 0 {
		seg += math.Pi / 3
	}
	return 1 / math.Cos(seg-math.Pi/6)
}

// saturn: muted bands, the north polar hexagon, a storm belt and southern haze.
func saturn(u, v float64, s SeedTable) colorful.Color {
	lat := latitude(v)
	seed := s.get(SeedSaturnBands)

	warp := noise.Turbulence(u*6, v*3, 4, seed)
	bands := 0.5 + 0.5*math.Sin(lat*16+(warp-0.5)*0.8)
	c := mix(saturnBelt, saturnZone, bands)

	detail := noise.FBM(u*32, v*16, 4, seed+20)
	c = scale(c, 0.94+0.12*detail)

	if lat > 0.8 {
		r := (1 - lat) / 0.2
		edge := 0.6 * hexRadius(u*2*math.Pi)
		if r < edge {
			c = mix(c, saturnHexFill, 0.5)
		}
		c = mix(c, saturnHexEdge, math.Exp(-sq((r-edge)/0.04))*0.7)
	}

	if lat > 0.3 && lat < 0.42 {
		st := noise.FBM(u*24, v*12, 4, s.get(SeedSaturnStorms))
		if st > saturnStormThreshold {
			c = mix(c, saturnStorm, (st-saturnStormThreshold)/(1-saturnStormThreshold))
		}
	}

	if lat < -0.6 {
		c = mix(c, saturnHaze, (-lat-0.6)/0.4*0.5)
	}
	return c
}
