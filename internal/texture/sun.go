package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/noise"
)

const (
	sunspotThreshold = 0.68
	faculaeThreshold = 0.8
)

var (
	sunDeep    = rgb(255, 150, 30)
	sunBright  = rgb(255, 236, 150)
	sunUmbra   = rgb(70, 22, 4)
	sunFaculae = rgb(255, 250, 225)
)

// sun: granulation, convection cells, sunspots in the activity belts,
// faculae and limb darkening toward the poles.
func sun(u, v float64, s SeedTable) colorful.Color {
	lat := math.Abs(latitude(v))

	gran := noise.FBM(u*96, v*48, 5, s.get(SeedSunGranulation))
	c := mix(sunDeep, sunBright, gran)

	cells := noise.Turbulence(u*12, v*6, 4, s.get(SeedSunGranulation)+7)
	c = scale(c, 0.88+0.22*cells)

	// Spots only form between roughly 5 and 40 degrees.
	if lat > 0.06 && lat < 0.45 {
		n := noise.FBM(u*16, v*8, 5, s.get(SeedSunSpots))
		if n > sunspotThreshold {
			k := (n - sunspotThreshold) / (1 - sunspotThreshold)
			penumbra := clamp01(k * 6)
			c = mix(c, scale(c, 0.55), penumbra)
			umbra := clamp01((k - 0.25) * 4)
			c = mix(c, sunUmbra, umbra*0.9)
		}
	}

	f := noise.Ridged(u*40, v*20, 3, s.get(SeedSunFaculae))
	if f > faculaeThreshold {
		c = mix(c, sunFaculae, (f-faculaeThreshold)/(1-faculaeThreshold)*0.5)
	}

	return scale(c, 1-0.3*lat*lat)
}
