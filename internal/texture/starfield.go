package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/noise"
)

// spectralClass is one entry of the blackbody-like star colour table.
type spectralClass struct {
	class  string
	color  colorful.Color
	weight float64
}

// spectralTable is ordered hot to cool; weights sum to 1 and favour cool stars.
var spectralTable = []spectralClass{
	{"O", mustHex("#9bb0ff"), 0.02},
	{"B", mustHex("#aabfff"), 0.06},
	{"A", mustHex("#cad7ff"), 0.1},
	{"F", mustHex("#f8f7ff"), 0.16},
	{"G", mustHex("#fff4ea"), 0.2},
	{"K", mustHex("#ffd2a1"), 0.22},
	{"M", mustHex("#ffcc6f"), 0.24},
}

// starColor picks a spectral colour from a uniform sample in [0,1).
func starColor(x float64) colorful.Color {
	acc := 0.0
	for _, sc := range spectralTable {
		acc += sc.weight
		if x < acc {
			return sc.color
		}
	}
	return spectralTable[len(spectralTable)-1].color
}

// starTier is one layer of point scatter on a jittered cell grid. Each cell
// holds at most one star, present when its hash is strictly above threshold.
type starTier struct {
	cellsU, cellsV float64
	threshold      float64
	clusterGain    float64 // threshold reduction inside clusters
	sigma          float64 // star radius in cell units
	brightness     float64
	seedOffset     float64
}

var starTiers = []starTier{
	{cellsU: 1024, cellsV: 512, threshold: 0.965, clusterGain: 0.1, sigma: 0.3, brightness: 0.35, seedOffset: 0},
	{cellsU: 256, cellsV: 128, threshold: 0.9, clusterGain: 0.25, sigma: 0.12, brightness: 0.8, seedOffset: 10},
	{cellsU: 64, cellsV: 32, threshold: 0.8, clusterGain: 0.3, sigma: 0.045, brightness: 1.6, seedOffset: 20},
}

func (t starTier) sample(u, v, cluster, seed float64) colorful.Color {
	seed += t.seedOffset
	gu, gv := u*t.cellsU, v*t.cellsV
	cx, cy := math.Floor(gu), math.Floor(gv)

	if !(noise.Hash(cx, cy, seed) > t.threshold-cluster*t.clusterGain) {
		return colorful.Color{}
	}

	// Jitter keeps the star away from the cell border so neighbours never
	// need to be visited.
	jx := 0.2 + 0.6*noise.Hash(cx, cy, seed+1)
	jy := 0.2 + 0.6*noise.Hash(cx, cy, seed+2)
	d2 := sq(gu-cx-jx) + sq(gv-cy-jy)

	mag := t.brightness * (0.35 + 0.65*noise.Hash(cx, cy, seed+3))
	k := mag * math.Exp(-d2/(2*t.sigma*t.sigma))
	return scale(starColor(noise.Hash(cx, cy, seed+4)), k)
}

// skyFeature is a soft radial glow: nebulae, clusters and galaxies.
type skyFeature struct {
	at        anchor
	rotation  float64 // radians, galaxies only
	color     colorful.Color
	intensity float64
}

// rotatedDist is the anisotropic distance with the ellipse rotated by rot.
func (f skyFeature) rotatedDist(u, v float64) float64 {
	du := wrapDelta(u - f.at.u)
	dv := (v - f.at.v) * 0.5
	cr, sr := math.Cos(f.rotation), math.Sin(f.rotation)
	x := (du*cr + dv*sr) / f.at.rx
	y := (-du*sr + dv*cr) / f.at.ry
	return math.Hypot(x, y)
}

var nebulae = []skyFeature{
	{at: anchor{u: 0.18, v: 0.32, rx: 0.07, ry: 0.1}, color: colorful.Hsv(340, 0.7, 0.5), intensity: 0.45},
	{at: anchor{u: 0.63, v: 0.58, rx: 0.05, ry: 0.08}, color: colorful.Hsv(200, 0.6, 0.5), intensity: 0.4},
	{at: anchor{u: 0.86, v: 0.22, rx: 0.04, ry: 0.05}, color: colorful.Hsv(15, 0.75, 0.55), intensity: 0.35},
	{at: anchor{u: 0.41, v: 0.77, rx: 0.06, ry: 0.06}, color: colorful.Hsv(280, 0.5, 0.45), intensity: 0.3},
}

var clusters = []skyFeature{
	{at: anchor{u: 0.08, v: 0.4, rx: 0.025, ry: 0.05}, color: rgb(180, 200, 255), intensity: 0.08},
	{at: anchor{u: 0.52, v: 0.3, rx: 0.02, ry: 0.04}, color: rgb(255, 240, 220), intensity: 0.06},
	{at: anchor{u: 0.74, v: 0.66, rx: 0.03, ry: 0.05}, color: rgb(200, 215, 255), intensity: 0.07},
}

var galaxies = []skyFeature{
	{at: anchor{u: 0.3, v: 0.15, rx: 0.012, ry: 0.004}, rotation: 0.6, color: rgb(220, 210, 255), intensity: 0.5},
	{at: anchor{u: 0.94, v: 0.82, rx: 0.008, ry: 0.003}, rotation: -0.9, color: rgb(255, 230, 210), intensity: 0.4},
	{at: anchor{u: 0.57, v: 0.88, rx: 0.006, ry: 0.005}, rotation: 0, color: rgb(230, 230, 255), intensity: 0.35},
}

var (
	skyBackground = rgb(2, 3, 8)
	galacticGlow  = rgb(72, 64, 84)
	galacticCore  = rgb(120, 96, 70)
)

// starfield: background, galactic band with dust lanes and core, nebulae,
// galaxies, then the three star tiers boosted inside clusters.
func starfield(u, v float64, s SeedTable) colorful.Color {
	c := skyBackground

	galaxySeed := s.get(SeedGalaxy)
	center := 0.5 + 0.18*math.Sin(u*2*math.Pi+0.6)
	bandNoise := noise.FBM(u*10, v*10, 6, galaxySeed)
	width := 0.07 + 0.04*bandNoise
	glow := math.Exp(-sq((v - center) / width))
	lane := noise.Ridged(u*14, v*14, 4, galaxySeed+5)
	if lane > 0.75 {
		glow *= 1 - (lane-0.75)/0.25*0.7
	}
	c = add(c, scale(galacticGlow, glow*bandNoise*1.3))
	c = add(c, scale(galacticCore, glow*math.Exp(-sq(wrapDelta(u-0.7)/0.08))))

	nebulaSeed := s.get(SeedNebulae)
	for i, nb := range nebulae {
		d, _ := nb.at.dist(u, v)
		if d > 1.6 {
			continue
		}
		n := noise.FBM(u*18, v*18, 5, nebulaSeed+float64(i)*10)
		c = add(c, scale(nb.color, math.Exp(-d*d*2)*n*nb.intensity))
	}

	for _, g := range galaxies {
		d := g.rotatedDist(u, v)
		if d < 3 {
			c = add(c, scale(g.color, math.Exp(-d*d)*g.intensity))
		}
	}

	cluster := 0.0
	for _, cl := range clusters {
		d, _ := cl.at.dist(u, v)
		if d < 2 {
			k := math.Exp(-d * d)
			cluster = math.Max(cluster, k)
			c = add(c, scale(cl.color, k*cl.intensity))
		}
	}

	starSeed := s.get(SeedStars)
	for _, t := range starTiers {
		c = add(c, t.sample(u, v, cluster, starSeed))
	}
	return c
}
