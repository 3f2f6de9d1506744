// Package catalog holds the static description of every body in the scene.
package catalog

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/texture"
)

// Class categorizes bodies for rendering glyphs.
type Class int

const (
	ClassStar      Class = iota
	ClassInner           // Mercury, Venus, Earth, Mars
	ClassGiant           // Jupiter, Saturn, Uranus, Neptune
	ClassSatellite       // orbits a planet
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassStar:
		return "star"
	case ClassInner:
		return "inner"
	case ClassGiant:
		return "giant"
	case ClassSatellite:
		return "satellite"
	default:
		return "unknown"
	}
}

// Descriptor is the immutable identity and orbital configuration of a body.
type Descriptor struct {
	Name     string
	Code     string
	Kind     texture.Kind
	Class    Class
	RadiusKm float64
	HasRing  bool

	// Elements carries the semi-major axis in AU. Satellites use LocalAxis
	// instead so they stay visible next to their parent.
	Elements           orbit.Elements
	PeriodDays         float64
	InitialMeanAnomaly float64 // radians, J2000
	Parent             string  // parent code, empty for heliocentric bodies
	LocalAxis          float64 // scene units from the parent, satellites only
}

// IsSatellite reports whether the body orbits another body rather than the Sun.
func (d Descriptor) IsSatellite() bool {
	return d.Parent != ""
}

// Orbits reports whether the body moves at all.
func (d Descriptor) Orbits() bool {
	return d.PeriodDays > 0
}

// SceneAxis converts a semi-major axis in AU to scene units.
func SceneAxis(au, distanceScale float64) float64 {
	return au * distanceScale
}

// SceneElements returns the body's elements with the semi-major axis in
// scene units, ready for the solver.
func (d Descriptor) SceneElements(distanceScale float64) orbit.Elements {
	el := d.Elements
	if d.IsSatellite() {
		el.SemiMajorAxis = d.LocalAxis
	} else {
		el.SemiMajorAxis = SceneAxis(el.SemiMajorAxis, distanceScale)
	}
	return el
}

func deg(d float64) float64 { return mgl64.DegToRad(d) }

// Bodies is the scene in draw order: the Sun, the planets outward, then satellites.
var Bodies = []Descriptor{
	{
		Name: "Sun", Code: "SUN", Kind: texture.KindSun, Class: ClassStar,
		RadiusKm: 696000,
	},
	{
		Name: "Mercury", Code: "MERC", Kind: texture.KindMercury, Class: ClassInner,
		RadiusKm:           2439.7,
		Elements:           orbit.Elements{SemiMajorAxis: 0.387, Eccentricity: 0.2056, InclinationDeg: 7.005, ArgPerihelionDeg: 29.124},
		PeriodDays:         87.969,
		InitialMeanAnomaly: deg(174.796),
	},
	{
		Name: "Venus", Code: "VEN", Kind: texture.KindVenus, Class: ClassInner,
		RadiusKm:           6051.8,
		Elements:           orbit.Elements{SemiMajorAxis: 0.723, Eccentricity: 0.0068, InclinationDeg: 3.395, ArgPerihelionDeg: 54.884},
		PeriodDays:         224.701,
		InitialMeanAnomaly: deg(50.115),
	},
	{
		Name: "Earth", Code: "EARTH", Kind: texture.KindEarth, Class: ClassInner,
		RadiusKm:           6371,
		Elements:           orbit.Elements{SemiMajorAxis: 1.000, Eccentricity: 0.0167, InclinationDeg: 0, ArgPerihelionDeg: 114.208},
		PeriodDays:         365.256,
		InitialMeanAnomaly: deg(358.617),
	},
	{
		Name: "Mars", Code: "MARS", Kind: texture.KindMars, Class: ClassInner,
		RadiusKm:           3389.5,
		Elements:           orbit.Elements{SemiMajorAxis: 1.524, Eccentricity: 0.0934, InclinationDeg: 1.850, ArgPerihelionDeg: 286.502},
		PeriodDays:         686.980,
		InitialMeanAnomaly: deg(19.412),
	},
	{
		Name: "Jupiter", Code: "JUP", Kind: texture.KindJupiter, Class: ClassGiant,
		RadiusKm:           69911,
		Elements:           orbit.Elements{SemiMajorAxis: 5.203, Eccentricity: 0.0489, InclinationDeg: 1.303, ArgPerihelionDeg: 273.867},
		PeriodDays:         4332.59,
		InitialMeanAnomaly: deg(20.020),
	},
	{
		Name: "Saturn", Code: "SAT", Kind: texture.KindSaturn, Class: ClassGiant,
		RadiusKm:           58232,
		HasRing:            true,
		Elements:           orbit.Elements{SemiMajorAxis: 9.537, Eccentricity: 0.0565, InclinationDeg: 2.485, ArgPerihelionDeg: 339.392},
		PeriodDays:         10759.22,
		InitialMeanAnomaly: deg(317.020),
	},
	{
		Name: "Uranus", Code: "URA", Kind: texture.KindUranus, Class: ClassGiant,
		RadiusKm:           25362,
		HasRing:            true,
		Elements:           orbit.Elements{SemiMajorAxis: 19.19, Eccentricity: 0.0457, InclinationDeg: 0.773, ArgPerihelionDeg: 96.999},
		PeriodDays:         30688.5,
		InitialMeanAnomaly: deg(142.239),
	},
	{
		Name: "Neptune", Code: "NEP", Kind: texture.KindNeptune, Class: ClassGiant,
		RadiusKm:           24622,
		Elements:           orbit.Elements{SemiMajorAxis: 30.07, Eccentricity: 0.0113, InclinationDeg: 1.770, ArgPerihelionDeg: 276.336},
		PeriodDays:         60182,
		InitialMeanAnomaly: deg(256.228),
	},
	{
		Name: "Moon", Code: "MOON", Kind: texture.KindMoon, Class: ClassSatellite,
		RadiusKm:           1737.4,
		Elements:           orbit.Elements{SemiMajorAxis: 0.00257, Eccentricity: 0.0549, InclinationDeg: 5.145, ArgPerihelionDeg: 318.15},
		PeriodDays:         27.322,
		InitialMeanAnomaly: deg(135.27),
		Parent:             "EARTH",
		LocalAxis:          8,
	},
}

// Lookup returns the descriptor with the given code, ignoring case.
func Lookup(code string) (Descriptor, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, d := range Bodies {
		if d.Code == code {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("unknown body code %q", code)
}

// ByKind returns the descriptor rendered with the given texture kind.
func ByKind(kind texture.Kind) (Descriptor, bool) {
	for _, d := range Bodies {
		if d.Kind == kind {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Validate checks the table's internal consistency.
func Validate(bodies []Descriptor) error {
	codes := make(map[string]int, len(bodies))
	for i, d := range bodies {
		if _, dup := codes[d.Code]; dup {
			return fmt.Errorf("body %s: duplicate code", d.Code)
		}
		codes[d.Code] = i
		if err := d.Elements.Validate(); err != nil {
			return fmt.Errorf("body %s: %w", d.Code, err)
		}
		if d.PeriodDays < 0 {
			return fmt.Errorf("body %s: %w", d.Code, orbit.ErrPeriod)
		}
	}
	for _, d := range bodies {
		if !d.IsSatellite() {
			continue
		}
		p, ok := codes[d.Parent]
		if !ok {
			return fmt.Errorf("body %s: unknown parent %s", d.Code, d.Parent)
		}
		// Parents must be positioned before their satellites.
		if p >= codes[d.Code] {
			return fmt.Errorf("body %s: parent %s listed after satellite", d.Code, d.Parent)
		}
		if bodies[p].IsSatellite() {
			return fmt.Errorf("body %s: parent %s is itself a satellite", d.Code, d.Parent)
		}
	}
	return nil
}
