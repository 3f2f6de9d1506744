package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/noise"
)

// craterField describes threshold-gated impact craters: basins where fbm
// crosses floorCut, bright rims where ridged noise of the same seed crosses rimCut.
type craterField struct {
	freqU, freqV float64
	floorCut     float64
	rimCut       float64
	floorDarken  float64
	rim          colorful.Color
}

func (f craterField) apply(c colorful.Color, u, v, seed float64) colorful.Color {
	x, y := u*f.freqU, v*f.freqV

	n := noise.FBM(x, y, 3, seed)
	if n > f.floorCut {
		k := (n - f.floorCut) / (1 - f.floorCut)
		c = scale(c, 1-f.floorDarken*k)
	}

	r := noise.Ridged(x, y, 3, seed)
	if r > f.rimCut {
		c = mix(c, f.rim, (r-f.rimCut)/(1-f.rimCut)*0.6)
	}
	return c
}

var (
	mercuryDark  = rgb(92, 88, 84)
	mercuryLight = rgb(172, 162, 150)
	mercuryFloor = rgb(186, 170, 148)
	mercuryRim   = rgb(214, 204, 192)

	calorisBasin = anchor{u: 0.62, v: 0.38, rx: 0.09, ry: 0.16}

	mercuryCraters = craterField{
		freqU: 40, freqV: 20,
		floorCut: 0.62, rimCut: 0.85,
		floorDarken: 0.45,
		rim:         mercuryRim,
	}
	mercurySmallCraters = craterField{
		freqU: 120, freqV: 60,
		floorCut: 0.66, rimCut: 0.9,
		floorDarken: 0.3,
		rim:         mercuryRim,
	}
)

// mercury: regolith, Caloris basin, two crater scales, fine grain.
func mercury(u, v float64, s SeedTable) colorful.Color {
	base := noise.FBM(u*8, v*4, 6, s.get(SeedMercuryTerrain))
	c := mix(mercuryDark, mercuryLight, base)

	d, _ := calorisBasin.dist(u, v)
	if d < 1 {
		c = mix(c, mercuryFloor, (1-d)*0.5)
	}
	c = mix(c, mercuryRim, math.Exp(-sq((d-1)/0.08))*0.45)

	seed := s.get(SeedMercuryCraters)
	c = mercuryCraters.apply(c, u, v, seed)
	c = mercurySmallCraters.apply(c, u, v, seed+1)

	fine := noise.Value(u*256, v*128, s.get(SeedMercuryTerrain)+3)
	return scale(c, 0.92+0.16*fine)
}

const moonMariaThreshold = 0.56

var (
	moonDark      = rgb(118, 116, 112)
	moonLight     = rgb(196, 192, 184)
	moonMare      = rgb(68, 68, 74)
	moonRim       = rgb(222, 220, 214)
	moonRay       = rgb(232, 230, 224)
	tycho         = anchor{u: 0.45, v: 0.72, rx: 1, ry: 2}
	moonCraterSet = craterField{
		freqU: 36, freqV: 18,
		floorCut: 0.63, rimCut: 0.86,
		floorDarken: 0.35,
		rim:         moonRim,
	}
)

// moon: highlands, maria, craters, then the Tycho ray system on top.
func moon(u, v float64, s SeedTable) colorful.Color {
	base := noise.FBM(u*6, v*3, 6, s.get(SeedMoonHighlands))
	c := mix(moonDark, moonLight, base)

	maria := noise.FBM(u*3, v*1.5, 5, s.get(SeedMoonMaria))
	if maria > moonMariaThreshold {
		k := clamp01((maria - moonMariaThreshold) / 0.12)
		c = mix(c, moonMare, k*0.75)
	}

	c = moonCraterSet.apply(c, u, v, s.get(SeedMoonCraters))

	d, angle := tycho.dist(u, v)
	wobble := noise.Value(angle*3, 0, s.get(SeedMoonCraters)+5)
	rays := math.Pow(0.5+0.5*math.Cos(angle*14+wobble*4), 8)
	c = mix(c, moonRay, rays*math.Exp(-d*9)*0.6)
	if d < 0.015 {
		c = mix(c, moonRay, 1-d/0.015)
	}

	fine := noise.Value(u*256, v*128, s.get(SeedMoonHighlands)+3)
	return scale(c, 0.94+0.12*fine)
}
