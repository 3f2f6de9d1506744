// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/texture"
	"github.com/litescript/ls-orrery/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewOrrery ViewMode = iota
	ViewTextures
)

const viewCount = 2

// Speed multiplier bounds for the speed keys.
const (
	minSpeed = 1.0 / 64
	maxSpeed = 65536
)

// TickMsg advances the simulation and redraws.
type TickMsg time.Time

// Options wires the model to the simulation and synthesizer.
type Options struct {
	Sim          *sim.Manager
	Solver       orbit.Solver
	Synth        *texture.Synthesizer
	TickInterval time.Duration   // <= 0 uses 100ms
	StepSeconds  float64         // simulated seconds per tick at speed 1; <= 0 uses TickInterval
	Logger       *logging.Logger // nil discards
}

// Model is the root Bubble Tea model.
type Model struct {
	sim      *sim.Manager
	logger   *logging.Logger
	interval time.Duration
	step     float64

	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int

	orrery   OrreryModel
	textures TextureModel

	snapshot sim.Snapshot
}

// New creates a new root UI model.
func New(opts Options) Model {
	interval := opts.TickInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	step := opts.StepSeconds
	if step <= 0 {
		step = interval.Seconds()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	m := Model{
		sim:      opts.Sim,
		logger:   logger.With("ui"),
		interval: interval,
		step:     step,
		viewMode: ViewOrrery,
		orrery:   NewOrreryModel(opts.Solver, opts.Synth),
		textures: NewTextureModel(opts.Synth),
	}
	if m.sim != nil {
		m.snapshot = m.sim.Snapshot()
		m.orrery = m.orrery.UpdateData(m.snapshot)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1":
			m.viewMode = ViewOrrery
		case "2":
			cmds = append(cmds, m.switchTo(ViewTextures))
		case "tab":
			cmds = append(cmds, m.switchTo((m.viewMode+1)%viewCount))

		case " ", "space", "p":
			if m.sim != nil {
				if m.sim.TogglePause() {
					m.statusMsg = "Paused"
				} else {
					m.statusMsg = "Running"
				}
			}
		case ">", ".":
			m.setSpeed(m.snapshot.Speed * 2)
		case "<", ",":
			m.setSpeed(m.snapshot.Speed / 2)
		case "R":
			if m.sim != nil {
				m.sim.Reset()
				m.refresh()
				m.statusMsg = "Simulation reset"
			}

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Title, tabs and footer take ~6 lines
		contentHeight := msg.Height - 6
		m.orrery = m.orrery.SetSize(msg.Width, contentHeight)
		m.textures = m.textures.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd(m.interval))
		m.animTick++
		if m.sim != nil {
			m.sim.Step(m.step)
			m.refresh()
		}

	case textureReadyMsg:
		if msg.err != nil {
			m.logger.Warn("texture %d: %v", msg.index, msg.err)
		}
		var cmd tea.Cmd
		m.textures, cmd = m.textures.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) refresh() {
	m.snapshot = m.sim.Snapshot()
	m.orrery = m.orrery.UpdateData(m.snapshot)
}

func (m *Model) switchTo(mode ViewMode) tea.Cmd {
	m.viewMode = mode
	if mode != ViewTextures {
		return nil
	}
	var cmd tea.Cmd
	m.textures, cmd = m.textures.Request()
	return cmd
}

func (m *Model) setSpeed(speed float64) {
	if m.sim == nil {
		return
	}
	if speed < minSpeed {
		speed = minSpeed
	}
	if speed > maxSpeed {
		speed = maxSpeed
	}
	if err := m.sim.SetSpeed(speed); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.refresh()
	m.statusMsg = fmt.Sprintf("Speed %gx", speed)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewOrrery:
		m.orrery, cmd = m.orrery.Update(msg)
	case ViewTextures:
		m.textures, cmd = m.textures.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewOrrery:
		content = m.orrery.View()
	case ViewTextures:
		content = m.textures.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("\n")

	title := "  ◐ LS-ORRERY"
	runes := []rune(title)
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(float64(col) / float64(len(runes))))).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  procedural solar system · v%s", version.Version)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

// Gradient stops for the title: blue, purple, magenta, pink.
var gradientStops = []colorful.Color{
	mustHex("#3B82F6"),
	mustHex("#8B5CF6"),
	mustHex("#D946EF"),
	mustHex("#EC4899"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// gradientColor returns a hex color at position t in [0,1] along the title gradient.
func gradientColor(t float64) string {
	if t <= 0 {
		return gradientStops[0].Hex()
	}
	if t >= 1 {
		return gradientStops[len(gradientStops)-1].Hex()
	}
	seg := t * float64(len(gradientStops)-1)
	i := int(seg)
	return gradientStops[i].BlendLuv(gradientStops[i+1], seg-float64(i)).Clamped().Hex()
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Orrery", "[2] Textures"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	pauseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	var status string
	if m.snapshot.Paused {
		status = pauseStyle.Render("❚❚ paused")
	} else {
		status = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)])
	}
	status += dimStyle.Render(fmt.Sprintf(" day %.1f  %gx", m.snapshot.ElapsedDays(), m.snapshot.Speed))

	var help string
	switch m.viewMode {
	case ViewOrrery:
		help = dimStyle.Render("j/k: focus | +/-: zoom | arrows: pan | f: find | z: mode | l: labels | o: orbits | t: stars | p: pause | </>: speed")
	case ViewTextures:
		help = dimStyle.Render("←/→: body | p: pause | tab: switch view")
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
