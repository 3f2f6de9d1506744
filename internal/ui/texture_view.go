package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/texture"
)

// Preview resolution for body surfaces.
const (
	PreviewWidth  = 256
	PreviewHeight = 128
)

// previewSource identifies what a preview slot shows.
type previewSource int

const (
	sourceBody previewSource = iota
	sourceRing
	sourceStarfield
)

type preview struct {
	name   string
	source previewSource
	kind   texture.Kind
}

func previews() []preview {
	var out []preview
	for _, k := range texture.Kinds() {
		name := k.String()
		if d, ok := catalog.ByKind(k); ok {
			name = d.Name
		}
		out = append(out, preview{name: name, source: sourceBody, kind: k})
	}
	return append(out,
		preview{name: "Saturn ring", source: sourceRing},
		preview{name: "Sky dome", source: sourceStarfield},
	)
}

// textureReadyMsg delivers a finished raster.
type textureReadyMsg struct {
	index  int
	raster *texture.Raster
	err    error
}

// TextureModel previews synthesized textures with half-block cells.
type TextureModel struct {
	width  int
	height int
	synth  *texture.Synthesizer

	items   []preview
	idx     int
	rasters map[int]*texture.Raster
	errs    map[int]error
	pending map[int]bool
}

// NewTextureModel creates a texture preview model.
func NewTextureModel(synth *texture.Synthesizer) TextureModel {
	return TextureModel{
		synth:   synth,
		items:   previews(),
		rasters: map[int]*texture.Raster{},
		errs:    map[int]error{},
		pending: map[int]bool{},
	}
}

// SetSize updates the viewport size.
func (m TextureModel) SetSize(width, height int) TextureModel {
	m.width = width
	m.height = height
	return m
}

// Selected returns the name of the current preview.
func (m TextureModel) Selected() string {
	return m.items[m.idx].name
}

// Request starts synthesis of the current preview unless it is cached or
// already in flight. A previous failure is cleared and retried.
func (m TextureModel) Request() (TextureModel, tea.Cmd) {
	if m.synth == nil {
		return m, nil
	}
	if _, ok := m.rasters[m.idx]; ok || m.pending[m.idx] {
		return m, nil
	}
	if _, failed := m.errs[m.idx]; failed {
		errs := make(map[int]error, len(m.errs))
		for k, v := range m.errs {
			if k != m.idx {
				errs[k] = v
			}
		}
		m.errs = errs
	}
	m.pending = withFlag(m.pending, m.idx, true)

	idx, item, synth := m.idx, m.items[m.idx], m.synth
	return m, func() tea.Msg {
		switch item.source {
		case sourceRing:
			return textureReadyMsg{index: idx, raster: synth.Ring()}
		case sourceStarfield:
			return textureReadyMsg{index: idx, raster: synth.Starfield()}
		default:
			r, err := synth.Synthesize(item.kind, PreviewWidth, PreviewHeight)
			return textureReadyMsg{index: idx, raster: r, err: err}
		}
	}
}

// withFlag returns a copy of set with key updated, so model copies never share writes.
func withFlag(set map[int]bool, key int, v bool) map[int]bool {
	out := make(map[int]bool, len(set)+1)
	for k, val := range set {
		out[k] = val
	}
	if v {
		out[key] = true
	} else {
		delete(out, key)
	}
	return out
}

// Update handles input and synthesis results.
func (m TextureModel) Update(msg tea.Msg) (TextureModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "k", "]":
			m.idx = (m.idx + 1) % len(m.items)
			return m.Request()
		case "left", "j", "[":
			m.idx = (m.idx - 1 + len(m.items)) % len(m.items)
			return m.Request()
		}

	case textureReadyMsg:
		m.pending = withFlag(m.pending, msg.index, false)
		if msg.err != nil {
			errs := make(map[int]error, len(m.errs)+1)
			for k, v := range m.errs {
				errs[k] = v
			}
			errs[msg.index] = msg.err
			m.errs = errs
			return m, nil
		}
		rasters := make(map[int]*texture.Raster, len(m.rasters)+1)
		for k, v := range m.rasters {
			rasters[k] = v
		}
		rasters[msg.index] = msg.raster
		m.rasters = rasters
	}
	return m, nil
}

// View renders the preview.
func (m TextureModel) View() string {
	if m.width < 20 || m.height < 6 {
		return "Terminal too small for texture view"
	}

	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	item := m.items[m.idx]
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("◆ %s", item.name)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d/%d)", m.idx+1, len(m.items))))
	b.WriteString("\n")

	r, ok := m.rasters[m.idx]
	switch {
	case m.errs[m.idx] != nil:
		b.WriteString("Synthesis failed: " + m.errs[m.idx].Error())
	case !ok:
		b.WriteString(dimStyle.Render("Synthesizing..."))
	default:
		b.WriteString(renderHalfBlocks(r, m.width, m.height-4))
		b.WriteString(m.renderInfo(item, r))
	}
	return b.String()
}

// renderHalfBlocks draws r into at most cols×rows cells, two pixels per cell.
func renderHalfBlocks(r *texture.Raster, cols, rows int) string {
	if r == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	aspect := float64(r.Width()) / float64(r.Height())
	// Each cell is one pixel wide and two pixels tall.
	h := int(float64(cols) / aspect / 2)
	if h > rows {
		h = rows
		cols = int(float64(h) * 2 * aspect)
	}
	if h < 1 {
		h = 1
	}
	if cols > r.Width() {
		cols = r.Width()
	}

	var b strings.Builder
	for y := 0; y < h; y++ {
		vTop := (float64(2*y) + 0.5) / float64(2*h)
		vBot := (float64(2*y) + 1.5) / float64(2*h)
		for x := 0; x < cols; x++ {
			u := (float64(x) + 0.5) / float64(cols)
			top := r.Sample(u, vTop)
			bot := r.Sample(u, vBot)
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexOf(top.R, top.G, top.B))).
				Background(lipgloss.Color(hexOf(bot.R, bot.G, bot.B)))
			b.WriteString(style.Render("▀"))
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func hexOf(r, g, b uint8) string {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()
}

// meanColor averages every pixel of r.
func meanColor(r *texture.Raster) colorful.Color {
	pix := r.Pixels()
	n := float64(len(pix) / 4)
	if n == 0 {
		return colorful.Color{}
	}
	var sr, sg, sb float64
	for i := 0; i < len(pix); i += 4 {
		sr += float64(pix[i])
		sg += float64(pix[i+1])
		sb += float64(pix[i+2])
	}
	return colorful.Color{R: sr / n / 255, G: sg / n / 255, B: sb / n / 255}
}

func (m TextureModel) renderInfo(item preview, r *texture.Raster) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	mean := meanColor(r)
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(mean.Hex())).Render("    ")

	var b strings.Builder
	b.WriteString(labelStyle.Render("Size: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%dx%d", r.Width(), r.Height())))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Mean: "))
	b.WriteString(swatch + " " + valueStyle.Render(mean.Hex()))

	switch item.source {
	case sourceBody:
		if d, ok := catalog.ByKind(item.kind); ok {
			b.WriteString("  ")
			b.WriteString(labelStyle.Render("Radius: "))
			b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f km", d.RadiusKm)))
		}
	case sourceRing:
		gaps := texture.RingGaps()
		names := make([]string, 0, len(gaps))
		for name := range gaps {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool { return gaps[names[i]][0] < gaps[names[j]][0] })
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Gaps: "))
		b.WriteString(valueStyle.Render(strings.Join(names, ", ")))
	}
	return b.String()
}
