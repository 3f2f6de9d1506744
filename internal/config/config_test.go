package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/litescript/ls-orrery/internal/texture"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orrery.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, found, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("found = true for missing file")
	}
	if cfg.DistanceScale != Default().DistanceScale {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `{"timeScale": 0.5, "seeds": {"earth.land": 7}}`)
	cfg, found, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Error("found = false")
	}
	def := Default()
	if cfg.TimeScale != 0.5 {
		t.Errorf("TimeScale = %v, want 0.5", cfg.TimeScale)
	}
	if cfg.DistanceCompression != def.DistanceCompression || cfg.OrbitOffset != def.OrbitOffset {
		t.Error("unset fields should keep defaults")
	}

	seeds := cfg.SeedTable()
	if seeds[texture.SeedEarthLand] != 7 {
		t.Errorf("earth.land = %v, want 7", seeds[texture.SeedEarthLand])
	}
	if seeds[texture.SeedRing] != texture.DefaultSeeds()[texture.SeedRing] {
		t.Error("unrelated seeds should keep defaults")
	}

	t.Run("zero offset", func(t *testing.T) {
		cfg, _, err := Load(writeFile(t, `{"orbitOffset": 0}`))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.OrbitOffset != 0 {
			t.Errorf("OrbitOffset = %v, want 0", cfg.OrbitOffset)
		}
		if cfg.DistanceScale != def.DistanceScale || cfg.TimeScale != def.TimeScale {
			t.Error("unset fields should keep defaults")
		}
		if got := cfg.Orbit().OrbitOffset; got != 0 {
			t.Errorf("solver offset = %v, want 0", got)
		}
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"malformed", `{"timeScale":`, false},
		{"unknown field", `{"warp": 9}`, false},
		{"negative scale", `{"distanceScale": -1}`, true},
		{"negative offset", `{"orbitOffset": -5}`, true},
		{"zero time scale", `{"timeScale": 0}`, true},
		{"unknown seed", `{"seeds": {"pluto.ice": 1}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeFile(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Is(err, ErrInvalid) != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v, want %v (err: %v)", !tt.invalid, tt.invalid, err)
			}
		})
	}
}

func TestValidateNonFinite(t *testing.T) {
	c := Default()
	c.TimeScale = math.Inf(1)
	if err := c.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("infinite timeScale: err = %v", err)
	}

	c = Default()
	c.Seeds = map[string]float64{texture.SeedStars: math.NaN()}
	if err := c.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("NaN seed: err = %v", err)
	}
}

func TestOrbitConfig(t *testing.T) {
	c := Default()
	c.OrbitOffset = 12
	o := c.Orbit()
	if o.OrbitOffset != 12 || o.DistanceScale != c.DistanceScale || o.TimeScale != c.TimeScale {
		t.Errorf("Orbit() = %+v", o)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	c := Default()
	c.TimeScale = 3
	path := filepath.Join(t.TempDir(), "out.json")
	if err := c.Write(path); err != nil {
		t.Fatal(err)
	}
	got, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.TimeScale != 3 {
		t.Errorf("TimeScale = %v after round trip", got.TimeScale)
	}
}
