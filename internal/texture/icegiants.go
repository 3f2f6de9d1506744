package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/noise"
)

const (
	uranusCloudThreshold  = 0.74
	neptuneCloudThreshold = 0.72
)

var (
	uranusLow   = rgb(160, 214, 220)
	uranusHigh  = rgb(196, 234, 236)
	uranusBand  = rgb(148, 198, 208)
	uranusPole  = rgb(222, 246, 246)
	uranusCloud = rgb(240, 252, 252)
)

// uranus: near-featureless haze, faint bands, a bright sunward pole and
// rare high clouds.
func uranus(u, v float64, s SeedTable) colorful.Color {
	lat := latitude(v)
	seed := s.get(SeedUranusHaze)

	haze := noise.FBM(u*4, v*8, 4, seed)
	c := mix(uranusLow, uranusHigh, haze)

	bands := 0.5 + 0.5*math.Sin(lat*10+haze)
	c = mix(c, uranusBand, bands*0.15)

	c = mix(c, uranusPole, (-lat-0.5)/0.5*0.5)

	cl := noise.FBM(u*20, v*10, 3, seed+60)
	if cl > uranusCloudThreshold {
		c = mix(c, uranusCloud, (cl-uranusCloudThreshold)/(1-uranusCloudThreshold)*0.7)
	}
	return c
}

var (
	neptuneDeep   = rgb(38, 72, 168)
	neptunePale   = rgb(72, 116, 216)
	neptuneSpot   = rgb(20, 34, 96)
	neptuneCloud  = rgb(236, 242, 255)
	neptuneLimb   = rgb(30, 52, 130)
	greatDarkSpot = anchor{u: 0.55, v: 0.62, rx: 0.05, ry: 0.03}
)

// neptune: deep blue bands, the Great Dark Spot with its bright companion
// clouds, scattered cirrus, polar darkening.
func neptune(u, v float64, s SeedTable) colorful.Color {
	lat := latitude(v)
	seed := s.get(SeedNeptuneBands)

	warp := noise.Turbulence(u*6, v*3, 5, seed)
	bands := 0.5 + 0.5*math.Sin(lat*12+(warp-0.5)*1.4)
	c := mix(neptuneDeep, neptunePale, bands)

	detail := noise.FBM(u*20, v*10, 4, seed+20)
	c = scale(c, 0.9+0.2*detail)

	d, angle := greatDarkSpot.dist(u, v)
	if d < 1.4 {
		swirl := 0.5 + 0.5*math.Sin(angle*2+d*8+warp*2)
		c = mix(c, neptuneSpot, (1-smoothstep(0, 1, d))*(0.7+0.3*swirl))
		// Companion clouds hug the southern rim.
		rim := math.Exp(-sq((d - 1.15) / 0.15))
		if rim*(0.5+0.5*math.Sin(angle)) > 0.5 {
			c = mix(c, neptuneCloud, rim*0.8)
		}
	}

	cl := noise.FBM(u*28, v*7, 4, s.get(SeedNeptuneClouds))
	if cl > neptuneCloudThreshold {
		c = mix(c, neptuneCloud, (cl-neptuneCloudThreshold)/(1-neptuneCloudThreshold)*0.75)
	}

	return mix(c, neptuneLimb, (math.Abs(lat)-0.75)/0.25*0.5)
}
