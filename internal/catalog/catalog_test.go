package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/texture"
)

func TestBodiesValid(t *testing.T) {
	if err := Validate(Bodies); err != nil {
		t.Fatalf("Validate(Bodies) = %v", err)
	}
	if len(Bodies) != 10 {
		t.Errorf("len(Bodies) = %d, want 10", len(Bodies))
	}
}

func TestEveryKindHasABody(t *testing.T) {
	for _, k := range texture.Kinds() {
		if _, ok := ByKind(k); !ok {
			t.Errorf("no body for kind %s", k)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		code    string
		want    string
		wantErr bool
	}{
		{"EARTH", "Earth", false},
		{" sat ", "Saturn", false},
		{"moon", "Moon", false},
		{"PLUTO", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			d, err := Lookup(tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup(%q) err = %v", tt.code, err)
			}
			if d.Name != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.code, d.Name, tt.want)
			}
		})
	}
}

func TestRingsAndSatellites(t *testing.T) {
	sat, _ := Lookup("SAT")
	if !sat.HasRing {
		t.Error("Saturn should have a ring")
	}
	earth, _ := Lookup("EARTH")
	if earth.HasRing || earth.IsSatellite() {
		t.Error("Earth is a ringless heliocentric body")
	}
	moon, _ := Lookup("MOON")
	if moon.Parent != "EARTH" || !moon.IsSatellite() {
		t.Errorf("Moon parent = %q", moon.Parent)
	}
	sun, _ := Lookup("SUN")
	if sun.Orbits() {
		t.Error("the Sun should not orbit")
	}
}

func TestSceneElements(t *testing.T) {
	mars, _ := Lookup("MARS")
	el := mars.SceneElements(100)
	if math.Abs(el.SemiMajorAxis-152.4) > 1e-9 {
		t.Errorf("Mars scene axis = %v, want 152.4", el.SemiMajorAxis)
	}
	if el.Eccentricity != mars.Elements.Eccentricity {
		t.Error("SceneElements changed eccentricity")
	}
	if mars.Elements.SemiMajorAxis != 1.524 {
		t.Error("SceneElements mutated the descriptor")
	}

	moon, _ := Lookup("MOON")
	if got := moon.SceneElements(100).SemiMajorAxis; got != moon.LocalAxis {
		t.Errorf("Moon scene axis = %v, want local %v", got, moon.LocalAxis)
	}
}

func TestValidateRejects(t *testing.T) {
	good := Descriptor{Code: "A", PeriodDays: 1}
	tests := []struct {
		name   string
		bodies []Descriptor
		target error
	}{
		{"duplicate", []Descriptor{good, good}, nil},
		{"hyperbolic", []Descriptor{{Code: "H", Elements: orbit.Elements{Eccentricity: 1.2}}}, orbit.ErrEccentricity},
		{"negative period", []Descriptor{{Code: "N", PeriodDays: -3}}, orbit.ErrPeriod},
		{"missing parent", []Descriptor{{Code: "S", Parent: "X"}}, nil},
		{"parent after satellite", []Descriptor{{Code: "S", Parent: "A"}, good}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.bodies)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("err = %v, want %v", err, tt.target)
			}
		})
	}
}
