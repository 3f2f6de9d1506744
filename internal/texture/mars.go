package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/noise"
)

const (
	marsAlbedoThreshold = 0.58
	marsDustThreshold   = 0.66
)

var (
	marsRust    = rgb(150, 70, 35)
	marsOchre   = rgb(206, 122, 72)
	marsDark    = rgb(88, 50, 36)
	marsCanyon  = rgb(92, 44, 26)
	marsSummit  = rgb(214, 150, 104)
	marsCaldera = rgb(120, 62, 40)
	marsDust    = rgb(216, 162, 112)
	marsIce     = rgb(242, 236, 230)

	olympusMons = anchor{u: 0.12, v: 0.43, rx: 0.035, ry: 0.07}
)

// Valles Marineris runs roughly east-west just south of the equator.
var vallesMarineris = struct{ au, av, bu, bv float64 }{0.24, 0.53, 0.42, 0.555}

// mars: rust terrain, dark albedo regions, Valles Marineris, Olympus Mons,
// dust storms and polar caps.
func mars(u, v float64, s SeedTable) colorful.Color {
	lat := latitude(v)

	base := noise.FBM(u*6, v*3, 6, s.get(SeedMarsTerrain))
	c := mix(marsRust, marsOchre, base)

	albedo := noise.FBM(u*4, v*2, 5, s.get(SeedMarsAlbedo))
	if albedo > marsAlbedoThreshold {
		c = mix(c, marsDark, (albedo-marsAlbedoThreshold)/0.15*0.7)
	}

	vm := vallesMarineris
	d := segmentDist(u, v, vm.au, vm.av, vm.bu, vm.bv, 0.5)
	width := 0.008 + 0.006*noise.Value(u*60, v*60, s.get(SeedMarsCanyon))
	if d < width*3 {
		k := 1 - d/(width*3)
		c = mix(c, marsCanyon, k*k*0.8)
	}

	od, _ := olympusMons.dist(u, v)
	if od < 1 {
		c = mix(c, marsSummit, (1-od)*0.5)
		if od < 0.2 {
			c = mix(c, marsCaldera, (0.2-od)/0.2*0.7)
		}
	}
	c = mix(c, marsDark, math.Exp(-sq((od-1)/0.1))*0.35)

	dust := noise.FBM(u*5+3, v*5, 4, s.get(SeedMarsAlbedo)+9)
	if dust > marsDustThreshold {
		c = mix(c, marsDust, (dust-marsDustThreshold)/0.2*0.6)
	}

	// The northern cap reaches further toward the equator.
	edge := 0.82 + (noise.FBM(u*10, v*5, 4, s.get(SeedMarsIce))-0.5)*0.1
	if lat < 0 {
		edge += 0.05
	}
	if math.Abs(lat) > edge {
		c = mix(c, marsIce, (math.Abs(lat)-edge)*30)
	}

	return c
}
