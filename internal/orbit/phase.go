package orbit

// Phase is the mutable orbital phase of a single body. It is owned by that
// body and advanced once per simulated tick.
type Phase struct {
	MeanAnomaly float64 // radians, [0, 2π)
}

// NewPhase returns a phase starting at meanAnomaly, normalized.
func NewPhase(meanAnomaly float64) Phase {
	return Phase{MeanAnomaly: NormalizeAngle(meanAnomaly)}
}

// Advance moves the phase forward by meanMotion·dt and wraps it into [0, 2π).
func (p *Phase) Advance(meanMotion, dt float64) {
	p.MeanAnomaly = NormalizeAngle(p.MeanAnomaly + meanMotion*dt)
}
