package sim

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/orbit"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(DefaultConfig())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestNewManager(t *testing.T) {
	m := newManager(t)
	snap := m.Snapshot()

	if len(snap.Bodies) != len(catalog.Bodies) {
		t.Fatalf("len(Bodies) = %d, want %d", len(snap.Bodies), len(catalog.Bodies))
	}
	if snap.Ticks != 0 || snap.SimTime != 0 {
		t.Error("fresh manager should have a zero clock")
	}

	sun := snap.Body("SUN")
	if sun == nil || sun.Position != (mgl64.Vec3{}) {
		t.Errorf("Sun should sit at the origin, got %v", sun)
	}

	solver := orbit.NewSolver(orbit.DefaultConfig())
	earth := snap.Body("EARTH")
	want := solver.PositionOf(earth.Descriptor.InitialMeanAnomaly, earth.Descriptor.SceneElements(100))
	if !earth.Position.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("Earth initial position = %v, want %v", earth.Position, want)
	}
}

func TestNewManagerRejectsBadTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies = []catalog.Descriptor{{Code: "X", Parent: "NOPE"}}
	if _, err := NewManager(cfg); err == nil {
		t.Error("expected error for missing parent")
	}

	cfg = DefaultConfig()
	cfg.Speed = math.NaN()
	if _, err := NewManager(cfg); !errors.Is(err, ErrSpeed) {
		t.Errorf("NaN speed: err = %v", err)
	}
}

func TestStepAdvancesPhase(t *testing.T) {
	m := newManager(t)
	before := m.Snapshot().Body("MARS")

	m.Step(10)

	after := m.Snapshot().Body("MARS")
	want := orbit.NormalizeAngle(before.Phase.MeanAnomaly + before.MeanMotion*10)
	if math.Abs(after.Phase.MeanAnomaly-want) > 1e-12 {
		t.Errorf("M = %v, want %v", after.Phase.MeanAnomaly, want)
	}
	if after.Position == before.Position {
		t.Error("position did not change")
	}

	snap := m.Snapshot()
	if snap.Ticks != 1 || snap.SimTime != 10 {
		t.Errorf("ticks=%d simTime=%v", snap.Ticks, snap.SimTime)
	}
}

func TestFullPeriodReturnsHome(t *testing.T) {
	m := newManager(t)
	start := m.Snapshot().Body("MERC").Position

	// One Mercury year at TimeScale 1 is PeriodDays simulated seconds.
	merc, _ := catalog.Lookup("MERC")
	steps := 1000
	for i := 0; i < steps; i++ {
		m.Step(merc.PeriodDays / float64(steps))
	}

	end := m.Snapshot().Body("MERC").Position
	if !end.ApproxEqualThreshold(start, 1e-6) {
		t.Errorf("after one period: %v, want %v", end, start)
	}
}

func TestPauseAndSpeed(t *testing.T) {
	m := newManager(t)

	m.Pause(true)
	before := m.Snapshot()
	m.Step(100)
	after := m.Snapshot()
	if after.Ticks != before.Ticks || after.Body("EARTH").Position != before.Body("EARTH").Position {
		t.Error("Step should do nothing while paused")
	}
	if m.TogglePause() {
		t.Error("TogglePause should resume")
	}

	if err := m.SetSpeed(4); err != nil {
		t.Fatal(err)
	}
	if m.Speed() != 4 {
		t.Errorf("Speed = %v, want 4", m.Speed())
	}
	start := m.Snapshot().Body("VEN")
	m.Step(2)
	end := m.Snapshot().Body("VEN")
	want := orbit.NormalizeAngle(start.Phase.MeanAnomaly + start.MeanMotion*4*2)
	if math.Abs(end.Phase.MeanAnomaly-want) > 1e-12 {
		t.Errorf("M = %v, want %v", end.Phase.MeanAnomaly, want)
	}
	if got := m.Snapshot().SimTime; got != 8 {
		t.Errorf("SimTime = %v, want 8", got)
	}

	if err := m.SetSpeed(math.Inf(1)); !errors.Is(err, ErrSpeed) {
		t.Errorf("SetSpeed(Inf) err = %v", err)
	}
}

func TestSatelliteFollowsParent(t *testing.T) {
	m := newManager(t)
	for i := 0; i < 5; i++ {
		m.Step(3)
		snap := m.Snapshot()
		earth := snap.Body("EARTH")
		moon := snap.Body("MOON")

		local := moon.Position.Sub(earth.Position)
		r := local.Len()
		e := moon.Descriptor.Elements.Eccentricity
		a := moon.Descriptor.LocalAxis
		if r < a*(1-e)-1e-9 || r > a*(1+e)+1e-9 {
			t.Errorf("step %d: Moon-Earth distance %v outside [%v, %v]", i, r, a*(1-e), a*(1+e))
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	m := newManager(t)
	snap := m.Snapshot()
	snap.Bodies[3].Position = mgl64.Vec3{1, 2, 3}
	snap.Bodies[3].Phase.MeanAnomaly = 99

	again := m.Snapshot()
	if again.Bodies[3].Position == (mgl64.Vec3{1, 2, 3}) || again.Bodies[3].Phase.MeanAnomaly == 99 {
		t.Error("mutating a snapshot changed the manager")
	}
}

func TestReset(t *testing.T) {
	m := newManager(t)
	initial := m.Snapshot()
	for i := 0; i < 20; i++ {
		m.Step(5)
	}
	m.Reset()
	snap := m.Snapshot()
	if snap.Ticks != 0 || snap.SimTime != 0 {
		t.Error("Reset should clear the clock")
	}
	for i := range snap.Bodies {
		if !snap.Bodies[i].Position.ApproxEqualThreshold(initial.Bodies[i].Position, 1e-9) {
			t.Errorf("%s not back at start", snap.Bodies[i].Descriptor.Code)
		}
	}
}

func TestElapsedDays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Orbit.TimeScale = 2
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatal(err)
	}
	m.Step(10)
	if got := m.Snapshot().ElapsedDays(); got != 5 {
		t.Errorf("ElapsedDays = %v, want 5", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := newManager(t)
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Step(0.5)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = m.Snapshot()
				_ = m.Speed()
			}
		}()
	}
	wg.Wait()

	if got := m.Snapshot().Ticks; got != 400 {
		t.Errorf("Ticks = %d, want 400", got)
	}
}
