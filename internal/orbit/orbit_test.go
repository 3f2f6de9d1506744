package orbit

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func vecApprox(a, b mgl64.Vec3, tol float64) bool {
	return a.ApproxEqualThreshold(b, tol)
}

const keplerSweep = 4096

func keplerResidual(M, e float64) float64 {
	E := SolveKepler(M, e)
	return math.Abs(E - e*math.Sin(E) - M)
}

func TestSolveKeplerResidual(t *testing.T) {
	for _, e := range []float64{0, 0.05, 0.2, 0.5, 0.7, 0.9, 0.92, 0.95, 0.97} {
		for i := 0; i < keplerSweep; i++ {
			M := float64(i) / keplerSweep * twoPi
			if res := keplerResidual(M, e); res > 1e-9 {
				t.Errorf("e=%v M=%v: residual %v", e, M, res)
			}
		}
	}
}

// Starting at E = M, ten Newton steps are not enough near perihelion for
// e = 0.99. Positions must stay finite there anyway.
func TestSolveKeplerHighEccentricity(t *testing.T) {
	const e = 0.99
	s := NewSolver(DefaultConfig())

	failures := 0
	for i := 0; i < keplerSweep; i++ {
		M := float64(i) / keplerSweep * twoPi
		if keplerResidual(M, e) > 1e-9 {
			failures++
		}
		p := s.Position(M, 100, e, 7, 45)
		for _, c := range p {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				t.Fatalf("M=%v: non-finite position %v", M, p)
			}
		}
		if r := p.Len(); r > s.CompressedAxis(100)*(1+e)+1e-6 {
			t.Fatalf("M=%v: |p| = %v beyond aphelion", M, r)
		}
	}
	if failures == 0 {
		t.Error("expected unconverged samples at e=0.99")
	}
	if failures > keplerSweep/4 {
		t.Errorf("%d/%d samples unconverged, want only the perihelion band", failures, keplerSweep)
	}
}

func TestCircularOrbit(t *testing.T) {
	for i := 0; i < 16; i++ {
		M := float64(i) / 16 * twoPi
		E := SolveKepler(M, 0)
		if !approx(E, M, 1e-12) {
			t.Errorf("E(%v) = %v, want M", M, E)
		}
		if nu := TrueAnomaly(E, 0); !approx(nu, M, 1e-12) {
			t.Errorf("nu(%v) = %v, want M", M, nu)
		}
		if r := FocalRadius(70, 0, M); !approx(r, 70, 1e-12) {
			t.Errorf("r(%v) = %v, want 70", M, r)
		}
	}
}

func TestPositionCircularPlane(t *testing.T) {
	s := NewSolver(DefaultConfig())
	A := s.CompressedAxis(100)

	tests := []struct {
		name string
		M    float64
		want mgl64.Vec3
	}{
		{"perihelion", 0, mgl64.Vec3{A, 0, 0}},
		{"quarter", math.Pi / 2, mgl64.Vec3{0, 0, A}},
		{"half", math.Pi, mgl64.Vec3{-A, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Position(tt.M, 100, 0, 0, 0)
			if !vecApprox(got, tt.want, 1e-9) {
				t.Errorf("Position = %v, want %v", got, tt.want)
			}
			if !approx(got.Len(), A, 1e-9) {
				t.Errorf("|p| = %v, want %v", got.Len(), A)
			}
		})
	}
}

func TestPerihelionDistance(t *testing.T) {
	s := NewSolver(DefaultConfig())
	A := s.CompressedAxis(100)
	if A != 70 {
		t.Fatalf("compressed axis = %v, want 70", A)
	}

	p := s.Position(0, 100, 0.2, 0, 0)
	if !approx(p.Len(), A*(1-0.2), 1e-9) {
		t.Errorf("perihelion distance = %v, want %v", p.Len(), A*0.8)
	}
	if !approx(p.Y(), 0, 1e-12) || p.X() <= 0 {
		t.Errorf("perihelion should lie on +x, got %v", p)
	}

	ap := s.Position(math.Pi, 100, 0.2, 0, 0)
	if !approx(ap.Len(), A*(1+0.2), 1e-9) {
		t.Errorf("aphelion distance = %v, want %v", ap.Len(), A*1.2)
	}
}

func TestRadiusBounds(t *testing.T) {
	s := NewSolver(DefaultConfig())
	e := 0.6
	A := s.CompressedAxis(50)
	for i := 0; i < 128; i++ {
		M := float64(i) / 128 * twoPi
		r := s.Position(M, 50, e, 17, 40).Len()
		if r < A*(1-e)-1e-9 || r > A*(1+e)+1e-9 {
			t.Errorf("M=%v: r=%v outside [%v, %v]", M, r, A*(1-e), A*(1+e))
		}
	}
}

func TestArgumentOfPerihelion(t *testing.T) {
	s := NewSolver(DefaultConfig())
	A := s.CompressedAxis(100)
	got := s.Position(0, 100, 0, 0, 90)
	if !vecApprox(got, mgl64.Vec3{0, 0, A}, 1e-9) {
		t.Errorf("omega=90: Position = %v, want (0, 0, %v)", got, A)
	}
}

func TestInclinationTilt(t *testing.T) {
	s := NewSolver(DefaultConfig())
	A := s.CompressedAxis(100)

	flat := s.Position(math.Pi/2, 100, 0, 0, 0)
	if !approx(flat.Y(), 0, 1e-12) {
		t.Errorf("i=0: y = %v, want 0", flat.Y())
	}

	polar := s.Position(math.Pi/2, 100, 0, 90, 0)
	if !vecApprox(polar, mgl64.Vec3{0, A, 0}, 1e-9) {
		t.Errorf("i=90: Position = %v, want (0, %v, 0)", polar, A)
	}

	// Inclination preserves distance.
	for _, inc := range []float64{7, 23.4, 45, 170} {
		p := s.Position(1.1, 100, 0.3, inc, 33)
		q := s.Position(1.1, 100, 0.3, 0, 33)
		if !approx(p.Len(), q.Len(), 1e-9) {
			t.Errorf("i=%v: |p| = %v, flat |p| = %v", inc, p.Len(), q.Len())
		}
	}
}

func TestPositionOfMatchesPosition(t *testing.T) {
	s := NewSolver(DefaultConfig())
	el := Elements{SemiMajorAxis: 152, Eccentricity: 0.093, InclinationDeg: 1.85, ArgPerihelionDeg: 286.5}
	if s.PositionOf(2, el) != s.Position(2, 152, 0.093, 1.85, 286.5) {
		t.Error("PositionOf differs from Position")
	}
}

func TestElementsValidate(t *testing.T) {
	tests := []struct {
		e       float64
		wantErr bool
	}{
		{0, false},
		{0.99, false},
		{1, true},
		{-0.1, true},
		{math.NaN(), true},
	}
	for _, tt := range tests {
		err := Elements{SemiMajorAxis: 1, Eccentricity: tt.e}.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(e=%v) err = %v, wantErr %v", tt.e, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrEccentricity) {
			t.Errorf("Validate(e=%v) err = %v, want ErrEccentricity", tt.e, err)
		}
	}
}

func TestMeanMotion(t *testing.T) {
	s := NewSolver(Config{DistanceCompression: 1, TimeScale: 2})

	n, err := s.MeanMotion(365.25, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := twoPi / (365.25 * 2); !approx(n, want, 1e-15) {
		t.Errorf("MeanMotion = %v, want %v", n, want)
	}

	fast, _ := s.MeanMotion(365.25, 10)
	if !approx(fast, 10*n, 1e-15) {
		t.Errorf("speed multiplier not applied: %v vs %v", fast, 10*n)
	}

	for _, p := range []float64{0, -1, math.NaN()} {
		if _, err := s.MeanMotion(p, 1); !errors.Is(err, ErrPeriod) {
			t.Errorf("MeanMotion(%v) err = %v, want ErrPeriod", p, err)
		}
	}
}

func TestPhaseAdvanceWraps(t *testing.T) {
	p := NewPhase(-math.Pi / 2)
	if !approx(p.MeanAnomaly, 1.5*math.Pi, 1e-12) {
		t.Fatalf("NewPhase(-pi/2) = %v", p.MeanAnomaly)
	}

	p = NewPhase(0)
	for i := 0; i < 1000; i++ {
		p.Advance(0.37, 1)
		if p.MeanAnomaly < 0 || p.MeanAnomaly >= twoPi {
			t.Fatalf("step %d: M = %v outside [0, 2pi)", i, p.MeanAnomaly)
		}
	}
	want := NormalizeAngle(370)
	if !approx(p.MeanAnomaly, want, 1e-9) {
		t.Errorf("M after 1000 steps = %v, want %v", p.MeanAnomaly, want)
	}

	p.Advance(-1, 100)
	if p.MeanAnomaly < 0 || p.MeanAnomaly >= twoPi {
		t.Errorf("reverse advance: M = %v", p.MeanAnomaly)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{twoPi, 0},
		{-twoPi, 0},
		{3 * math.Pi, math.Pi},
		{-math.Pi / 2, 1.5 * math.Pi},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); !approx(got, tt.want, 1e-12) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := NormalizeAngle(-1e-18); got < 0 || got >= twoPi {
		t.Errorf("NormalizeAngle(-1e-18) = %v", got)
	}
}

func BenchmarkPosition(b *testing.B) {
	s := NewSolver(DefaultConfig())
	for i := 0; i < b.N; i++ {
		s.Position(float64(i)*0.001, 100, 0.2, 7, 45)
	}
}
