// Package sim advances the orbital phase of every body and publishes
// thread-safe snapshots of the scene.
package sim

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orbit"
)

// ErrSpeed is returned for non-finite speed multipliers.
var ErrSpeed = errors.New("speed multiplier must be finite")

// BodyState is the per-body simulation state. Each body owns its phase.
type BodyState struct {
	Descriptor catalog.Descriptor
	Phase      orbit.Phase
	Position   mgl64.Vec3 // scene units, heliocentric
	MeanMotion float64    // radians per simulated second at speed 1
}

// Distance returns the heliocentric distance in scene units.
func (b BodyState) Distance() float64 {
	return b.Position.Len()
}

// Snapshot is an immutable copy of the scene at one tick.
type Snapshot struct {
	Bodies    []BodyState
	SimTime   float64 // simulated seconds
	TimeScale float64
	Ticks     uint64
	Speed     float64
	Paused    bool
}

// ElapsedDays returns the simulated time in orbital-period days.
func (s Snapshot) ElapsedDays() float64 {
	if s.TimeScale == 0 {
		return 0
	}
	return s.SimTime / s.TimeScale
}

// Body returns the state with the given code, or nil if not found.
func (s Snapshot) Body(code string) *BodyState {
	for i := range s.Bodies {
		if s.Bodies[i].Descriptor.Code == code {
			return &s.Bodies[i]
		}
	}
	return nil
}

// Config holds configuration for the simulation manager.
type Config struct {
	Orbit  orbit.Config
	Speed  float64
	Bodies []catalog.Descriptor // nil uses catalog.Bodies
	Logger *logging.Logger      // nil discards
}

// DefaultConfig returns the bundled scene at real-time speed.
func DefaultConfig() Config {
	return Config{
		Orbit: orbit.DefaultConfig(),
		Speed: 1,
	}
}

// Manager owns the body states and advances them tick by tick.
type Manager struct {
	mu sync.RWMutex

	solver    orbit.Solver
	satSolver orbit.Solver // satellites: no compression, no offset
	scale     float64

	bodies []BodyState
	parent []int // index of each body's parent, -1 for heliocentric

	speed   float64
	paused  bool
	simTime float64
	ticks   uint64

	logger *logging.Logger
}

// NewManager validates the body table and places every body at its initial phase.
func NewManager(cfg Config) (*Manager, error) {
	bodies := cfg.Bodies
	if bodies == nil {
		bodies = catalog.Bodies
	}
	if err := catalog.Validate(bodies); err != nil {
		return nil, fmt.Errorf("body table: %w", err)
	}
	if math.IsNaN(cfg.Speed) || math.IsInf(cfg.Speed, 0) {
		return nil, fmt.Errorf("new manager: %w", ErrSpeed)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	m := &Manager{
		solver: orbit.NewSolver(cfg.Orbit),
		satSolver: orbit.NewSolver(orbit.Config{
			DistanceScale:       1,
			DistanceCompression: 1,
			TimeScale:           cfg.Orbit.TimeScale,
		}),
		scale:  cfg.Orbit.DistanceScale,
		bodies: make([]BodyState, len(bodies)),
		parent: make([]int, len(bodies)),
		speed:  cfg.Speed,
		logger: logger.With("sim"),
	}

	index := make(map[string]int, len(bodies))
	for i, d := range bodies {
		index[d.Code] = i
		m.parent[i] = -1
		if d.IsSatellite() {
			m.parent[i] = index[d.Parent]
		}

		st := BodyState{Descriptor: d, Phase: orbit.NewPhase(d.InitialMeanAnomaly)}
		if d.Orbits() {
			n, err := m.solver.MeanMotion(d.PeriodDays, 1)
			if err != nil {
				return nil, fmt.Errorf("body %s: %w", d.Code, err)
			}
			st.MeanMotion = n
		}
		m.bodies[i] = st
	}
	m.place()

	m.logger.Debug("placed %d bodies (scale=%v compression=%v offset=%v)",
		len(bodies), cfg.Orbit.DistanceScale, cfg.Orbit.DistanceCompression, cfg.Orbit.OrbitOffset)
	return m, nil
}

// place recomputes every position from the current phases. Parents are
// always placed before their satellites. Caller must hold the write lock
// or be the only reference.
func (m *Manager) place() {
	for i := range m.bodies {
		b := &m.bodies[i]
		if !b.Descriptor.Orbits() {
			b.Position = mgl64.Vec3{}
			continue
		}
		el := b.Descriptor.SceneElements(m.scale)
		if p := m.parent[i]; p >= 0 {
			b.Position = m.bodies[p].Position.Add(m.satSolver.PositionOf(b.Phase.MeanAnomaly, el))
			continue
		}
		b.Position = m.solver.PositionOf(b.Phase.MeanAnomaly, el)
	}
}

// Step advances the simulation by dt simulated seconds scaled by the current
// speed multiplier. It does nothing while paused.
func (m *Manager) Step(dt float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.paused {
		return
	}
	for i := range m.bodies {
		b := &m.bodies[i]
		b.Phase.Advance(b.MeanMotion*m.speed, dt)
	}
	m.place()
	m.simTime += dt * m.speed
	m.ticks++
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bodies := make([]BodyState, len(m.bodies))
	copy(bodies, m.bodies)
	return Snapshot{
		Bodies:    bodies,
		SimTime:   m.simTime,
		TimeScale: m.solver.Config().TimeScale,
		Ticks:     m.ticks,
		Speed:     m.speed,
		Paused:    m.paused,
	}
}

// SetSpeed sets the speed multiplier. Negative values run time backwards.
func (m *Manager) SetSpeed(speed float64) error {
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return fmt.Errorf("set speed %v: %w", speed, ErrSpeed)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed = speed
	m.logger.Debug("speed set to %vx", speed)
	return nil
}

// Solver returns the heliocentric solver.
func (m *Manager) Solver() orbit.Solver {
	return m.solver
}

// Speed returns the current speed multiplier.
func (m *Manager) Speed() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.speed
}

// Pause stops or resumes time.
func (m *Manager) Pause(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = paused
}

// TogglePause flips the paused state and returns the new value.
func (m *Manager) TogglePause() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = !m.paused
	return m.paused
}

// Reset returns every body to its initial phase and clears the clock.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bodies {
		m.bodies[i].Phase = orbit.NewPhase(m.bodies[i].Descriptor.InitialMeanAnomaly)
	}
	m.place()
	m.simTime = 0
	m.ticks = 0
}
