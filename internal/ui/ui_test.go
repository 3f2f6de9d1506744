package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/sim"
)

func newTestModel(t *testing.T) (Model, *sim.Manager) {
	t.Helper()
	mgr, err := sim.NewManager(sim.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	m := New(Options{
		Sim:          mgr,
		Solver:       orbit.NewSolver(orbit.DefaultConfig()),
		TickInterval: 50 * time.Millisecond,
		StepSeconds:  2,
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 45})
	return updated.(Model), mgr
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestModelInitializing(t *testing.T) {
	m := New(Options{Solver: orbit.NewSolver(orbit.DefaultConfig())})
	if m.View() != "Initializing..." {
		t.Errorf("View before resize = %q", m.View())
	}
	if m.Init() == nil {
		t.Error("Init should schedule a tick")
	}
}

func TestModelViewSwitching(t *testing.T) {
	m, _ := newTestModel(t)
	if m.viewMode != ViewOrrery {
		t.Fatalf("initial view = %v", m.viewMode)
	}

	m, _ = send(t, m, key("2"))
	if m.viewMode != ViewTextures {
		t.Errorf("after 2, view = %v", m.viewMode)
	}
	m, _ = send(t, m, key("tab"))
	if m.viewMode != ViewOrrery {
		t.Errorf("tab should wrap to orrery, got %v", m.viewMode)
	}
	m, _ = send(t, m, key("tab"))
	m, _ = send(t, m, key("1"))
	if m.viewMode != ViewOrrery {
		t.Errorf("after 1, view = %v", m.viewMode)
	}
}

func TestModelTickStepsSimulation(t *testing.T) {
	m, mgr := newTestModel(t)

	m, cmd := send(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should reschedule itself")
	}
	if m.snapshot.Ticks != 1 || m.snapshot.SimTime != 2 {
		t.Errorf("ticks=%d simTime=%v, want 1 and 2", m.snapshot.Ticks, m.snapshot.SimTime)
	}
	if mgr.Snapshot().Ticks != 1 {
		t.Error("manager was not stepped")
	}
	if m.orrery.snapshot.Ticks != 1 {
		t.Error("orrery did not receive the snapshot")
	}
}

func TestModelPauseAndSpeed(t *testing.T) {
	m, mgr := newTestModel(t)

	m, _ = send(t, m, key("p"))
	m, _ = send(t, m, TickMsg(time.Now()))
	if !m.snapshot.Paused || m.snapshot.Ticks != 0 {
		t.Errorf("paused=%v ticks=%d", m.snapshot.Paused, m.snapshot.Ticks)
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("footer should show paused state")
	}
	m, _ = send(t, m, key(" "))
	if mgr.Snapshot().Paused {
		t.Error("space should resume")
	}

	m, _ = send(t, m, key(">"))
	if mgr.Speed() != 2 {
		t.Errorf("speed = %v, want 2", mgr.Speed())
	}
	m, _ = send(t, m, key("<"))
	m, _ = send(t, m, key("<"))
	if mgr.Speed() != 0.5 {
		t.Errorf("speed = %v, want 0.5", mgr.Speed())
	}
	for i := 0; i < 20; i++ {
		m, _ = send(t, m, key("<"))
	}
	if mgr.Speed() != minSpeed {
		t.Errorf("speed should clamp at %v, got %v", minSpeed, mgr.Speed())
	}
}

func TestModelReset(t *testing.T) {
	m, mgr := newTestModel(t)
	for i := 0; i < 3; i++ {
		m, _ = send(t, m, TickMsg(time.Now()))
	}
	m, _ = send(t, m, key("R"))
	if mgr.Snapshot().Ticks != 0 || m.snapshot.Ticks != 0 {
		t.Error("R should reset the simulation")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"LS-ORRERY", "[1] Orrery", "[2] Textures", "Sun", "day 0.0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelForwardsKeysToActiveView(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(t, m, key("+"))
	if m.orrery.scale() != 1.5 {
		t.Errorf("orrery zoom = %v, want 1.5", m.orrery.scale())
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0); got != strings.ToLower("#3B82F6") {
		t.Errorf("gradientColor(0) = %s", got)
	}
	if got := gradientColor(1); got != strings.ToLower("#EC4899") {
		t.Errorf("gradientColor(1) = %s", got)
	}
	if mid := gradientColor(0.5); len(mid) != 7 || mid[0] != '#' {
		t.Errorf("gradientColor(0.5) = %q", mid)
	}
}
