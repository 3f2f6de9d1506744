package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/noise"
)

var (
	venusDeep    = rgb(204, 162, 92)
	venusPale    = rgb(240, 214, 160)
	venusHigh    = rgb(250, 236, 202)
	venusChevron = rgb(168, 122, 68)
	venusVortex  = rgb(184, 138, 80)
	venusHaze    = rgb(246, 226, 182)
)

// venus: warped sulphur bands, high cloud detail, the dark equatorial
// chevron, spiral polar vortices and a global haze.
func venus(u, v float64, s SeedTable) colorful.Color {
	lat := latitude(v)
	seed := s.get(SeedVenusClouds)

	warp := noise.Turbulence(u*6, v*6, 5, seed)
	band := 0.5 + 0.5*math.Sin((lat*9+warp*2.5)*math.Pi)
	c := mix(venusDeep, venusPale, band)

	detail := noise.FBM(u*20+warp, v*10, 5, seed+50)
	c = mix(c, venusHigh, detail*0.35)

	chev := math.Abs(lat) - (0.12 + 0.6*math.Abs(wrapDelta(u-0.5)))
	if chev < 0 {
		c = mix(c, venusChevron, clamp01(-chev*4)*0.35)
	}

	pole := 1 - math.Abs(lat)
	if pole < 0.25 {
		r := pole / 0.25
		spiral := 0.5 + 0.5*math.Sin(u*2*math.Pi*2+r*18+warp*3)
		c = mix(c, venusVortex, (1-r)*spiral*0.5)
	}

	return mix(c, venusHaze, 0.1+0.15*math.Abs(lat))
}
