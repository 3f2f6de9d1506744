package ui

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ScaleMode defines how radial distances are mapped to screen space.
type ScaleMode int

const (
	// ScaleLog uses logarithmic scaling so inner and outer orbits share the view.
	ScaleLog ScaleMode = iota

	// ScaleInner is linear, sized for the terrestrial planets. Anything
	// beyond innerRadius is pinned to the edge.
	ScaleInner

	// ScaleLinear is linear out to the outermost body.
	ScaleLinear
)

func (s ScaleMode) String() string {
	switch s {
	case ScaleLog:
		return "Log"
	case ScaleInner:
		return "Inner"
	case ScaleLinear:
		return "Linear"
	default:
		return "?"
	}
}

// projection maps scene positions to normalized display units where 1 is
// the outermost reference radius at zoom 1.
type projection struct {
	mode        ScaleMode
	zoom        float64
	outerRadius float64 // scene units
	innerRadius float64 // scene units
}

// projectedPoint is a top-down display position.
type projectedPoint struct {
	X, Y float64
	R    float64 // true 3D distance in scene units
}

// project views the scene from +y: scene x goes right, scene z goes up.
func (p projection) project(v mgl64.Vec3) projectedPoint {
	r := math.Hypot(v.X(), v.Z())
	d := p.scaleRadius(r)
	angle := math.Atan2(v.Z(), v.X())
	return projectedPoint{
		X: d * math.Cos(angle) * p.zoom,
		Y: d * math.Sin(angle) * p.zoom,
		R: v.Len(),
	}
}

// radius returns the display radius of a scene distance, including zoom.
func (p projection) radius(r float64) float64 {
	return p.scaleRadius(r) * p.zoom
}

func (p projection) scaleRadius(r float64) float64 {
	outer := math.Max(p.outerRadius, 1)
	switch p.mode {
	case ScaleInner:
		inner := math.Max(p.innerRadius, 1)
		if r > inner {
			return 1
		}
		return r / inner
	case ScaleLinear:
		return r / outer
	default:
		ref := math.Max(p.innerRadius/4, 1)
		return math.Log10(r/ref+1) / math.Log10(outer/ref+1)
	}
}
