package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/litescript/ls-orrery/internal/sim"
)

// PositionsExport is the JSON-serializable representation of a simulation snapshot.
type PositionsExport struct {
	GeneratedAt time.Time    `json:"generated_at"`
	SimTime     float64      `json:"sim_time_seconds"`
	ElapsedDays float64      `json:"elapsed_days"`
	Ticks       uint64       `json:"ticks"`
	Speed       float64      `json:"speed"`
	Bodies      []BodyExport `json:"bodies"`
}

// BodyExport is a JSON-friendly body position.
type BodyExport struct {
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Class       string     `json:"class"`
	Parent      string     `json:"parent,omitempty"`
	MeanAnomaly float64    `json:"mean_anomaly_rad"`
	Position    [3]float64 `json:"position"`
	Distance    float64    `json:"distance"`
}

// ExportPositions converts a snapshot to an exportable format.
func ExportPositions(snap sim.Snapshot, generatedAt time.Time) *PositionsExport {
	export := &PositionsExport{
		GeneratedAt: generatedAt,
		SimTime:     snap.SimTime,
		ElapsedDays: snap.ElapsedDays(),
		Ticks:       snap.Ticks,
		Speed:       snap.Speed,
		Bodies:      make([]BodyExport, 0, len(snap.Bodies)),
	}
	for _, b := range snap.Bodies {
		export.Bodies = append(export.Bodies, BodyExport{
			Name:        b.Descriptor.Name,
			Code:        b.Descriptor.Code,
			Class:       b.Descriptor.Class.String(),
			Parent:      b.Descriptor.Parent,
			MeanAnomaly: b.Phase.MeanAnomaly,
			Position:    [3]float64(b.Position),
			Distance:    b.Distance(),
		})
	}
	return export
}

// WriteJSON writes the export as indented JSON.
func (e *PositionsExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// WriteSummaryTable writes a text table of body positions.
func WriteSummaryTable(w io.Writer, snap sim.Snapshot, timestamp time.Time) {
	fmt.Fprintf(w, "Orrery @ %s  (day %.1f, %d ticks, %gx)\n",
		timestamp.Format(time.RFC3339), snap.ElapsedDays(), snap.Ticks, snap.Speed)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if len(snap.Bodies) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-10s %-6s %-9s %7s %9s %9s %9s %9s",
		"Body", "Code", "Class", "M(deg)", "X", "Y", "Z", "Dist")))
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for _, b := range snap.Bodies {
		p := b.Position
		fmt.Fprintf(w, "%-10s %-6s %-9s %7.1f %9.2f %9.2f %9.2f %9.2f\n",
			truncateStr(b.Descriptor.Name, 10),
			b.Descriptor.Code,
			b.Descriptor.Class,
			mgl64.RadToDeg(b.Phase.MeanAnomaly),
			p.X(), p.Y(), p.Z(),
			b.Distance(),
		)
	}

	fmt.Fprintf(w, "\nTotal: %d bodies\n", len(snap.Bodies))
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
