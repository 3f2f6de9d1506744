package texture

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/noise"
)

// earthLandThreshold splits the continental mask into ocean and land.
// A texel is land only when the mask is strictly above it.
const earthLandThreshold = 0.52

const (
	earthCloudThreshold = 0.55
	earthColdThreshold  = 0.22
)

// Biome is a land classification on the habitable body.
type Biome int

const (
	BiomeBeach Biome = iota
	BiomeDesert
	BiomeSavanna
	BiomeGrassland
	BiomeForest
	BiomeRainforest
	BiomeTaiga
	BiomeTundra
	BiomeMountain
	BiomeSnow
)

var biomeNames = [...]string{
	"beach", "desert", "savanna", "grassland", "forest",
	"rainforest", "taiga", "tundra", "mountain", "snow",
}

func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return "unknown"
}

// biomeTable is indexed by [elevation band][moisture band].
var biomeTable = [4][4]Biome{
	// dry          semi-arid       wet           saturated
	{BiomeBeach, BiomeBeach, BiomeBeach, BiomeBeach},          // coast
	{BiomeDesert, BiomeSavanna, BiomeForest, BiomeRainforest}, // lowland
	{BiomeDesert, BiomeGrassland, BiomeForest, BiomeForest},   // upland
	{BiomeMountain, BiomeMountain, BiomeMountain, BiomeSnow},  // alpine
}

var (
	elevationBands = [3]float64{0.03, 0.3, 0.55}
	moistureBands  = [3]float64{0.38, 0.48, 0.6}
)

func band(x float64, edges [3]float64) int {
	for i, e := range edges {
		if !(x > e) {
			return i
		}
	}
	return len(edges)
}

// classifyBiome picks a biome from normalized land elevation and moisture,
// with temperature overriding the table in cold regions.
func classifyBiome(elevation, moisture, temperature float64) Biome {
	if elevation > 0.85 {
		return BiomeSnow
	}
	b := biomeTable[band(elevation, elevationBands)][band(moisture, moistureBands)]
	if temperature < earthColdThreshold && b != BiomeMountain {
		if moisture > moistureBands[1] {
			return BiomeTaiga
		}
		return BiomeTundra
	}
	return b
}

// biomeColor returns the base colour for a biome. detail in [0,1] adds
// per-texel variation.
func biomeColor(b Biome, elevation, moisture, detail float64) colorful.Color {
	switch b {
	case BiomeBeach:
		return rgb(214+20*detail, 198+16*detail, 150)
	case BiomeDesert:
		return rgb(206+34*detail, 178+24*detail, 122+10*moisture)
	case BiomeSavanna:
		return rgb(170+30*detail, 160+20*detail, 90)
	case BiomeGrassland:
		return rgb(110+30*detail, 150+30*detail, 70)
	case BiomeForest:
		return rgb(50+25*detail, 110+30*detail-40*elevation, 45)
	case BiomeRainforest:
		return rgb(28+20*detail, 90+25*detail, 35+10*moisture)
	case BiomeTaiga:
		return rgb(60+20*detail, 95+20*detail, 70)
	case BiomeTundra:
		return rgb(140+25*detail, 140+20*detail, 120+15*detail)
	case BiomeMountain:
		grey := 110 + 60*elevation + 20*detail
		return rgb(grey, grey*0.95, grey*0.9)
	case BiomeSnow:
		return rgb(236+14*detail, 240+10*detail, 248)
	default:
		return rgb(255, 0, 255)
	}
}

var (
	oceanShallow = rgb(30, 90, 160)
	oceanDeep    = rgb(8, 25, 80)
	oceanShelf   = rgb(60, 150, 180)
	polarIce     = rgb(236, 243, 250)
	cloudWhite   = rgb(250, 250, 252)
)

// earthMask returns the domain-warped continental mask.
func earthMask(u, v float64, s SeedTable) float64 {
	seed := s.get(SeedEarthLand)
	warp := noise.FBM(u*3, v*3, 4, seed+31)
	return noise.FBM(u*4+warp*0.8, v*4+warp*0.4, 6, seed)
}

// earthSurface returns the land or ocean colour before ice and clouds,
// and whether the texel is land.
func earthSurface(u, v float64, s SeedTable) (colorful.Color, bool) {
	h := earthMask(u, v, s)

	if !(h > earthLandThreshold) {
		depth := (earthLandThreshold - h) / earthLandThreshold
		c := mix(oceanShallow, oceanDeep, depth*2.5)
		if depth < 0.04 {
			c = mix(c, oceanShelf, (0.04-depth)/0.04*0.6)
		}
		return c, false
	}

	elevation := (h - earthLandThreshold) / (1 - earthLandThreshold)
	moisture := noise.FBM(u*6, v*6, 5, s.get(SeedEarthMoisture))
	temperature := 1 - math.Abs(latitude(v)) - elevation*0.4
	detail := noise.FBM(u*64, v*32, 3, s.get(SeedEarthDetail))

	b := classifyBiome(elevation, moisture, temperature)
	return biomeColor(b, elevation, moisture, detail), true
}

// earth: land/ocean and biomes, then polar ice with a noisy edge, then clouds.
func earth(u, v float64, s SeedTable) colorful.Color {
	c, _ := earthSurface(u, v, s)

	lat := math.Abs(latitude(v))
	edge := 0.78 + (noise.FBM(u*12, v*6, 4, s.get(SeedEarthIce))-0.5)*0.12
	if lat > edge {
		c = mix(c, polarIce, (lat-edge)*25)
	}

	cl := noise.FBM(u*8, v*8, 6, s.get(SeedEarthClouds))
	if cl > earthCloudThreshold {
		c = mix(c, cloudWhite, (cl-earthCloudThreshold)/0.25*0.85)
	}
	return c
}
