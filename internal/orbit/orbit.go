// Package orbit computes Keplerian orbital positions and advances per-body
// orbital phase.
package orbit

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const twoPi = 2 * math.Pi

// Kepler solver limits.
const (
	MaxIterations = 10
	Tolerance     = 1e-10
)

var (
	// ErrEccentricity is returned for eccentricities outside [0,1).
	ErrEccentricity = errors.New("eccentricity must be in [0,1)")
	// ErrPeriod is returned for non-positive orbital periods.
	ErrPeriod = errors.New("orbital period must be positive")
)

// Config holds the visualization tunables applied to orbital distances and time.
type Config struct {
	DistanceScale       float64 // scene units per AU
	DistanceCompression float64 // multiplier applied to the semi-major axis
	OrbitOffset         float64 // added after compression so inner orbits clear the Sun
	TimeScale           float64 // simulated seconds per orbital-period day
}

// DefaultConfig returns the tunables used by the bundled scene.
func DefaultConfig() Config {
	return Config{
		DistanceScale:       100,
		DistanceCompression: 0.4,
		OrbitOffset:         30,
		TimeScale:           1,
	}
}

// Elements is an immutable classical orbital element set.
type Elements struct {
	SemiMajorAxis    float64 // scene units, before compression
	Eccentricity     float64 // [0,1)
	InclinationDeg   float64
	ArgPerihelionDeg float64
}

// Validate reports whether the elements are inside the elliptical-orbit contract.
func (e Elements) Validate() error {
	if !(e.Eccentricity >= 0 && e.Eccentricity < 1) {
		return fmt.Errorf("elements: e=%v: %w", e.Eccentricity, ErrEccentricity)
	}
	return nil
}

// Solver evaluates positions and mean motion under a Config.
type Solver struct {
	cfg Config
}

// NewSolver creates a Solver.
func NewSolver(cfg Config) Solver {
	return Solver{cfg: cfg}
}

// Config returns the solver's tunables.
func (s Solver) Config() Config {
	return s.cfg
}

// CompressedAxis applies the distance compression and offset to a semi-major axis.
func (s Solver) CompressedAxis(semiMajorAxis float64) float64 {
	return semiMajorAxis*s.cfg.DistanceCompression + s.cfg.OrbitOffset
}

// Position returns the 3D position for mean anomaly M (radians). The orbit
// lies in the x-z plane at zero inclination; inclination tilts it toward +y.
// Eccentricity must be in [0,1); it is not checked here.
func (s Solver) Position(meanAnomaly, semiMajorAxis, eccentricity, inclinationDeg, argPerihelionDeg float64) mgl64.Vec3 {
	a := s.CompressedAxis(semiMajorAxis)

	E := SolveKepler(meanAnomaly, eccentricity)
	nu := TrueAnomaly(E, eccentricity)
	r := FocalRadius(a, eccentricity, nu)

	px := r * math.Cos(nu)
	py := r * math.Sin(nu)

	w := mgl64.DegToRad(argPerihelionDeg)
	xw := px*math.Cos(w) - py*math.Sin(w)
	yw := px*math.Sin(w) + py*math.Cos(w)

	inc := mgl64.DegToRad(inclinationDeg)
	return mgl64.Vec3{xw, yw * math.Sin(inc), yw * math.Cos(inc)}
}

// PositionOf is Position for an element set.
func (s Solver) PositionOf(meanAnomaly float64, el Elements) mgl64.Vec3 {
	return s.Position(meanAnomaly, el.SemiMajorAxis, el.Eccentricity, el.InclinationDeg, el.ArgPerihelionDeg)
}

// MeanMotion returns the angular rate in radians per simulated second.
func (s Solver) MeanMotion(periodDays, speedMultiplier float64) (float64, error) {
	if !(periodDays > 0) {
		return 0, fmt.Errorf("mean motion: period %v: %w", periodDays, ErrPeriod)
	}
	return twoPi / (periodDays * s.cfg.TimeScale) * speedMultiplier, nil
}

// SolveKepler solves M = E - e·sin(E) for the eccentric anomaly by
// Newton-Raphson, starting at E = M. It stops after MaxIterations or once
// the step falls below Tolerance. Within that budget the residual reaches
// 1e-9 for e up to about 0.97; near perihelion at e = 0.99 it may not.
func SolveKepler(meanAnomaly, eccentricity float64) float64 {
	E := meanAnomaly
	for i := 0; i < MaxIterations; i++ {
		delta := (E - eccentricity*math.Sin(E) - meanAnomaly) / (1 - eccentricity*math.Cos(E))
		E -= delta
		if math.Abs(delta) < Tolerance {
			break
		}
	}
	return E
}

// TrueAnomaly converts an eccentric anomaly to the true anomaly using the
// half-angle form, which stays continuous with E.
func TrueAnomaly(eccentricAnomaly, eccentricity float64) float64 {
	beta := eccentricity / (1 + math.Sqrt(1-eccentricity*eccentricity))
	sinE, cosE := math.Sincos(eccentricAnomaly)
	return eccentricAnomaly + 2*math.Atan2(beta*sinE, 1-beta*cosE)
}

// FocalRadius returns the distance from the focus at true anomaly nu.
func FocalRadius(semiMajorAxis, eccentricity, nu float64) float64 {
	return semiMajorAxis * (1 - eccentricity*eccentricity) / (1 + eccentricity*math.Cos(nu))
}

// NormalizeAngle wraps an angle into [0, 2π).
func NormalizeAngle(angle float64) float64 {
	wrapped := math.Mod(angle, twoPi)
	if wrapped < 0 {
		wrapped += twoPi
	}
	// A tiny negative remainder rounds up to exactly 2π.
	if wrapped >= twoPi {
		wrapped = 0
	}
	return wrapped
}
