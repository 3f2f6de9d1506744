package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/texture"
)

// LabelMode controls which bodies get name labels.
type LabelMode int

const (
	LabelNone LabelMode = iota
	LabelFocused
	LabelAll
)

func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelFocused:
		return "focus"
	default:
		return "all"
	}
}

// Discrete zoom levels for clean stepping
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0, 10.0}

const defaultZoomLevel = 3

// orbitPathSteps is the number of samples per drawn orbit.
const orbitPathSteps = 180

// OrreryModel renders a top-down view of the simulated scene.
type OrreryModel struct {
	width    int
	height   int
	snapshot sim.Snapshot
	solver   orbit.Solver
	synth    *texture.Synthesizer

	// Reference radii for the projection, in scene units.
	outerRadius float64
	innerRadius float64

	// Precomputed sky backdrop, rebuilt on resize.
	backdrop [][]rune

	// View state
	focusIdx   int     // Index into snapshot bodies (0 = Sun)
	zoomLevel  int     // Index into zoomLevels
	panX       float64 // Pan offset in display units
	panY       float64
	scaleMode  ScaleMode
	labelMode  LabelMode
	userPanned bool // True if user has manually panned (disables auto-center on zoom)
	showStars  bool
	showOrbits bool
}

// NewOrreryModel creates a new orrery view model.
func NewOrreryModel(solver orbit.Solver, synth *texture.Synthesizer) OrreryModel {
	m := OrreryModel{
		solver:     solver,
		synth:      synth,
		zoomLevel:  defaultZoomLevel,
		scaleMode:  ScaleLog,
		labelMode:  LabelFocused,
		showStars:  synth != nil,
		showOrbits: true,
	}
	m.outerRadius, m.innerRadius = referenceRadii(solver, catalog.Bodies)
	return m
}

// referenceRadii returns the largest aphelion of all heliocentric bodies and
// of the inner planets, after compression.
func referenceRadii(solver orbit.Solver, bodies []catalog.Descriptor) (outer, inner float64) {
	scale := solver.Config().DistanceScale
	for _, d := range bodies {
		if d.IsSatellite() || !d.Orbits() {
			continue
		}
		el := d.SceneElements(scale)
		r := solver.CompressedAxis(el.SemiMajorAxis) * (1 + el.Eccentricity)
		outer = math.Max(outer, r)
		if d.Class == catalog.ClassInner {
			inner = math.Max(inner, r)
		}
	}
	return outer, inner
}

// scale returns the current zoom scale.
func (m OrreryModel) scale() float64 {
	if m.zoomLevel < 0 || m.zoomLevel >= len(zoomLevels) {
		return 1.0
	}
	return zoomLevels[m.zoomLevel]
}

func (m OrreryModel) projection() projection {
	return projection{
		mode:        m.scaleMode,
		zoom:        m.scale(),
		outerRadius: m.outerRadius,
		innerRadius: m.innerRadius,
	}
}

// SetSize updates the viewport size and rebuilds the sky backdrop.
func (m OrreryModel) SetSize(width, height int) OrreryModel {
	if width != m.width || height != m.height {
		m.width = width
		m.height = height
		m.backdrop = m.buildBackdrop()
	}
	return m
}

// UpdateData updates the model with a new simulation snapshot.
func (m OrreryModel) UpdateData(snapshot sim.Snapshot) OrreryModel {
	m.snapshot = snapshot
	if m.focusIdx >= len(snapshot.Bodies) {
		m.focusIdx = 0
	}
	return m
}

// Update handles input messages.
func (m OrreryModel) Update(msg tea.Msg) (OrreryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "[":
			m.focusPrev()
		case "k", "]":
			m.focusNext()

		case "up":
			m.panY -= 0.1 / m.scale()
			m.userPanned = true
		case "down":
			m.panY += 0.1 / m.scale()
			m.userPanned = true
		case "left":
			m.panX -= 0.1 / m.scale()
			m.userPanned = true
		case "right":
			m.panX += 0.1 / m.scale()
			m.userPanned = true
		case "c":
			m.panX, m.panY = 0, 0
			m.userPanned = false

		case "f":
			m.centerOnFocused()
			m.userPanned = false

		case "+", "=":
			if m.zoomLevel < len(zoomLevels)-1 {
				m.zoomLevel++
				if !m.userPanned {
					m.centerOnFocused()
				}
			}
		case "-":
			if m.zoomLevel > 0 {
				m.zoomLevel--
				if !m.userPanned {
					m.centerOnFocused()
				}
			}
		case "0":
			m.zoomLevel = defaultZoomLevel
			if !m.userPanned {
				m.centerOnFocused()
			}

		case "z":
			m.scaleMode = (m.scaleMode + 1) % 3
			if !m.userPanned {
				m.centerOnFocused()
			}

		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		case "t":
			m.showStars = !m.showStars && m.synth != nil
		case "o":
			m.showOrbits = !m.showOrbits

		case "r":
			m.panX, m.panY = 0, 0
			m.zoomLevel = defaultZoomLevel
			m.userPanned = false
		}
	}
	return m, nil
}

func (m *OrreryModel) focusNext() {
	n := len(m.snapshot.Bodies)
	if n == 0 {
		return
	}
	m.focusIdx = (m.focusIdx + 1) % n
	m.centerOnFocused()
	m.userPanned = false
}

func (m *OrreryModel) focusPrev() {
	n := len(m.snapshot.Bodies)
	if n == 0 {
		return
	}
	m.focusIdx = (m.focusIdx - 1 + n) % n
	m.centerOnFocused()
	m.userPanned = false
}

// centerOnFocused pans the view to center on the focused body.
func (m *OrreryModel) centerOnFocused() {
	body := m.FocusedBody()
	if body == nil {
		m.panX, m.panY = 0, 0
		return
	}
	proj := m.projection().project(body.Position)
	m.panX = -proj.X
	m.panY = -proj.Y
}

// FocusedBody returns the focused body, or nil before the first snapshot.
func (m OrreryModel) FocusedBody() *sim.BodyState {
	if m.focusIdx >= 0 && m.focusIdx < len(m.snapshot.Bodies) {
		return &m.snapshot.Bodies[m.focusIdx]
	}
	return nil
}

// SetFocusByCode sets focus to a body by its code.
func (m *OrreryModel) SetFocusByCode(code string) {
	for i, b := range m.snapshot.Bodies {
		if b.Descriptor.Code == code {
			m.focusIdx = i
			return
		}
	}
}

// View renders the orrery view.
func (m OrreryModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for orrery view"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.buildCanvas(), m.renderHUD())
}

func (m OrreryModel) canvasSize() (w, h int) {
	h = m.height - 5
	if h < 5 {
		h = 5
	}
	return m.width, h
}

// buildBackdrop samples the synthesized sky dome once per cell.
func (m OrreryModel) buildBackdrop() [][]rune {
	if m.synth == nil || m.width <= 0 || m.height <= 0 {
		return nil
	}
	w, h := m.canvasSize()
	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = make([]rune, w)
		for x := range grid[y] {
			px := m.synth.StarTexel((float64(x)+0.5)/float64(w), (float64(y)+0.5)/float64(h))
			grid[y][x] = starGlyph(px)
		}
	}
	return grid
}

// starGlyph picks a subtle glyph from sky brightness.
func starGlyph(px [4]uint8) rune {
	lum := (int(px[0]) + int(px[1]) + int(px[2])) / 3
	switch {
	case lum >= 200:
		return '∗'
	case lum >= 140:
		return '·'
	case lum >= 100:
		return '˙'
	default:
		return ' '
	}
}

// bodyPos tracks a body's screen position for label rendering.
type bodyPos struct {
	x, y      int
	name      string
	isFocused bool
}

// screen converts display units to cell coordinates. Cells are about twice
// as tall as they are wide.
type screen struct {
	originX, originY int
	displayScale     float64
}

func (s screen) cell(p projectedPoint) (int, int) {
	return s.originX + int(math.Round(p.X*s.displayScale)),
		s.originY - int(math.Round(p.Y*s.displayScale*0.5))
}

// buildCanvas renders the scene to a string canvas.
func (m OrreryModel) buildCanvas() string {
	canvasW, canvasH := m.canvasSize()

	grid := make([][]rune, canvasH)
	for y := range grid {
		grid[y] = make([]rune, canvasW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	screenCenterX := canvasW / 2
	screenCenterY := canvasH / 2
	maxDisplayR := float64(min(screenCenterX, screenCenterY*2)) * 0.9

	scr := screen{
		originX:      screenCenterX + int(m.panX*maxDisplayR),
		originY:      screenCenterY - int(m.panY*maxDisplayR*0.5),
		displayScale: maxDisplayR,
	}
	proj := m.projection()

	if m.showStars && len(m.backdrop) == canvasH {
		for y := range grid {
			copy(grid[y], m.backdrop[y])
		}
	}

	if m.showOrbits {
		m.drawOrbits(grid, scr, proj)
	}

	var positions []bodyPos
	for i, b := range m.snapshot.Bodies {
		if b.Descriptor.Class == catalog.ClassStar {
			continue
		}
		sx, sy := scr.cell(proj.project(b.Position))
		if sx < 0 || sx >= canvasW || sy < 0 || sy >= canvasH {
			continue
		}
		grid[sy][sx] = bodyGlyph(b.Descriptor, i == m.focusIdx)
		positions = append(positions, bodyPos{x: sx, y: sy, name: b.Descriptor.Name, isFocused: i == m.focusIdx})
	}

	// Sun last so it's always visible
	if scr.originX >= 0 && scr.originX < canvasW && scr.originY >= 0 && scr.originY < canvasH {
		grid[scr.originY][scr.originX] = '☉'
		positions = append(positions, bodyPos{
			x:         scr.originX,
			y:         scr.originY,
			name:      "Sun",
			isFocused: m.focusIdx == 0,
		})
	}

	m.renderLabels(grid, canvasW, canvasH, positions)
	return renderGrid(grid)
}

// drawOrbits traces each body's path by sampling the solver over one period.
func (m OrreryModel) drawOrbits(grid [][]rune, scr screen, proj projection) {
	h := len(grid)
	w := len(grid[0])
	scale := m.solver.Config().DistanceScale

	for _, b := range m.snapshot.Bodies {
		d := b.Descriptor
		if !d.Orbits() {
			continue
		}
		el := d.SceneElements(scale)

		var center mgl64.Vec3
		solver := m.solver
		if d.IsSatellite() {
			// Satellite paths are drawn around the parent's current position.
			parent := m.snapshot.Body(d.Parent)
			if parent == nil {
				continue
			}
			center = parent.Position
			solver = orbit.NewSolver(orbit.Config{DistanceScale: 1, DistanceCompression: 1})
		}

		for i := 0; i < orbitPathSteps; i++ {
			M := 2 * math.Pi * float64(i) / orbitPathSteps
			p := center.Add(solver.PositionOf(M, el))
			x, y := scr.cell(proj.project(p))
			if x >= 0 && x < w && y >= 0 && y < h && isBackground(grid[y][x]) {
				grid[y][x] = '·'
			}
		}
	}
}

func isBackground(r rune) bool {
	return r == ' ' || r == '∗' || r == '˙'
}

// renderLabels draws body labels on the canvas based on label mode.
func (m OrreryModel) renderLabels(grid [][]rune, width, height int, positions []bodyPos) {
	if m.labelMode == LabelNone {
		return
	}
	for _, pos := range positions {
		if m.labelMode == LabelFocused && !pos.isFocused {
			continue
		}

		labelX := pos.x + 2
		labelY := pos.y
		if labelY < 0 || labelY >= height || labelX >= width {
			continue
		}

		labelText := pos.name
		if pos.isFocused {
			labelText = "◄ " + pos.name
		}

		x := labelX
		for _, r := range labelText {
			if x >= width {
				break
			}
			if isBackground(grid[labelY][x]) || grid[labelY][x] == '·' {
				grid[labelY][x] = r
			}
			x++
		}
	}
}

func bodyGlyph(d catalog.Descriptor, focused bool) rune {
	switch d.Class {
	case catalog.ClassGiant:
		if d.HasRing {
			if focused {
				return '⊛'
			}
			return '⊙'
		}
		if focused {
			return '◉'
		}
		return '○'
	case catalog.ClassInner:
		if focused {
			return '●'
		}
		return '•'
	case catalog.ClassSatellite:
		if focused {
			return '◆'
		}
		return '∘'
	default:
		return '?'
	}
}

var (
	orbitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	starStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	sunStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	planetStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	giantStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	satelliteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	focusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("249"))
)

func renderGrid(grid [][]rune) string {
	var b strings.Builder
	for _, row := range grid {
		for _, ch := range row {
			var style lipgloss.Style
			switch ch {
			case ' ':
				b.WriteRune(ch)
				continue
			case '·':
				style = orbitStyle
			case '∗', '˙':
				style = starStyle
			case '☉':
				style = sunStyle
			case '•':
				style = planetStyle
			case '○', '⊙':
				style = giantStyle
			case '∘':
				style = satelliteStyle
			case '●', '◉', '⊛', '◆', '◄':
				style = focusStyle
			default:
				style = labelStyle
			}
			b.WriteString(style.Render(string(ch)))
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func (m OrreryModel) renderHUD() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	focused := m.FocusedBody()
	if focused != nil && focused.Descriptor.Orbits() {
		d := focused.Descriptor
		b.WriteString(headerStyle.Render(fmt.Sprintf("◆ %s", d.Name)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Distance:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f", focused.Distance())))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Period:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f d", d.PeriodDays)))
		b.WriteString("\n")

		b.WriteString(labelStyle.Render("Mean anom:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f°", mgl64.RadToDeg(focused.Phase.MeanAnomaly))))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Ecc:"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.4f", d.Elements.Eccentricity)))
		b.WriteString("  ")
	} else {
		b.WriteString(headerStyle.Render("☉ Sun"))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("(center of the scene)"))
		b.WriteString("\n")
	}

	starsName := "off"
	if m.showStars {
		starsName = "on"
	}

	b.WriteString(dimStyle.Render("Mode:"))
	b.WriteString(valueStyle.Render(m.scaleMode.String()))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Zoom:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2gx", m.scale())))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Labels:"))
	b.WriteString(valueStyle.Render(m.labelMode.String()))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Stars:"))
	b.WriteString(valueStyle.Render(starsName))

	return b.String()
}
