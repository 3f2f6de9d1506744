package texture

// Per-feature noise seed keys.
//
// Several features deliberately share a seed base with a small offset
// (Mercury crater floors and rims, Mars albedo and dust storms). Those
// offsets are part of the look and must be kept as they are.
const (
	SeedSunGranulation = "sun.granulation"
	SeedSunSpots       = "sun.spots"
	SeedSunFaculae     = "sun.faculae"

	SeedMercuryTerrain = "mercury.terrain"
	SeedMercuryCraters = "mercury.craters"

	SeedVenusClouds = "venus.clouds"

	SeedEarthLand     = "earth.land"
	SeedEarthMoisture = "earth.moisture"
	SeedEarthDetail   = "earth.detail"
	SeedEarthIce      = "earth.ice"
	SeedEarthClouds   = "earth.clouds"

	SeedMoonHighlands = "moon.highlands"
	SeedMoonMaria     = "moon.maria"
	SeedMoonCraters   = "moon.craters"

	SeedMarsTerrain = "mars.terrain"
	SeedMarsAlbedo  = "mars.albedo"
	SeedMarsCanyon  = "mars.canyon"
	SeedMarsIce     = "mars.ice"

	SeedJupiterBands  = "jupiter.bands"
	SeedJupiterStorms = "jupiter.storms"

	SeedSaturnBands  = "saturn.bands"
	SeedSaturnStorms = "saturn.storms"

	SeedUranusHaze = "uranus.haze"

	SeedNeptuneBands  = "neptune.bands"
	SeedNeptuneClouds = "neptune.clouds"

	SeedRing = "ring"

	SeedStars   = "stars"
	SeedGalaxy  = "stars.galaxy"
	SeedNebulae = "stars.nebulae"
)

var defaultSeeds = map[string]float64{
	SeedSunGranulation: 1,
	SeedSunSpots:       2,
	SeedSunFaculae:     3,

	SeedMercuryTerrain: 10,
	SeedMercuryCraters: 11,

	SeedVenusClouds: 20,

	SeedEarthLand:     30,
	SeedEarthMoisture: 31,
	SeedEarthDetail:   32,
	SeedEarthIce:      33,
	SeedEarthClouds:   34,

	SeedMoonHighlands: 40,
	SeedMoonMaria:     41,
	SeedMoonCraters:   42,

	SeedMarsTerrain: 50,
	SeedMarsAlbedo:  51,
	SeedMarsCanyon:  52,
	SeedMarsIce:     53,

	SeedJupiterBands:  60,
	SeedJupiterStorms: 61,

	SeedSaturnBands:  70,
	SeedSaturnStorms: 71,

	SeedUranusHaze: 80,

	SeedNeptuneBands:  90,
	SeedNeptuneClouds: 91,

	SeedRing: 100,

	SeedStars:   200,
	SeedGalaxy:  201,
	SeedNebulae: 202,
}

// SeedTable maps feature keys to noise seeds. Missing keys fall back to the
// built-in defaults, so a partial table only overrides what it names.
type SeedTable map[string]float64

// DefaultSeeds returns a fresh copy of the built-in seed table.
func DefaultSeeds() SeedTable {
	t := make(SeedTable, len(defaultSeeds))
	for k, v := range defaultSeeds {
		t[k] = v
	}
	return t
}

// IsSeedKey reports whether key names a known feature seed.
func IsSeedKey(key string) bool {
	_, ok := defaultSeeds[key]
	return ok
}

func (t SeedTable) get(key string) float64 {
	if v, ok := t[key]; ok {
		return v
	}
	return defaultSeeds[key]
}
