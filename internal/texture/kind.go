package texture

import (
	"fmt"
	"strings"
)

// Kind selects the procedural surface routine for a body.
type Kind int

const (
	KindSun Kind = iota
	KindMercury
	KindVenus
	KindEarth
	KindMoon
	KindMars
	KindJupiter
	KindSaturn
	KindUranus
	KindNeptune
)

var kindNames = map[Kind]string{
	KindSun:     "sun",
	KindMercury: "mercury",
	KindVenus:   "venus",
	KindEarth:   "earth",
	KindMoon:    "moon",
	KindMars:    "mars",
	KindJupiter: "jupiter",
	KindSaturn:  "saturn",
	KindUranus:  "uranus",
	KindNeptune: "neptune",
}

// String returns the lowercase body name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds returns every body kind in catalog order.
func Kinds() []Kind {
	return []Kind{
		KindSun, KindMercury, KindVenus, KindEarth, KindMoon,
		KindMars, KindJupiter, KindSaturn, KindUranus, KindNeptune,
	}
}

// ParseKind parses a body name (case-insensitive).
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
