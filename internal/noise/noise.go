// Package noise provides deterministic scalar noise and fractal compositions
// used by the texture synthesizer.
//
// Every function is a pure function of its arguments: no hidden state,
// no allocation, and the same inputs always produce bit-identical output.
package noise

import "math"

// Hash mixing constants. Changing any of these changes every texture.
const (
	hashX     = 12.9898
	hashY     = 78.233
	hashSeed  = 37.719
	hashScale = 43758.5453
)

// octaveSeedStep decorrelates successive octaves of a fractal composite.
const octaveSeedStep = 100

// Hash returns a pseudo-random value in [0,1) derived from (x, y, seed).
// It only guarantees reproducibility and visual decorrelation of nearby inputs.
func Hash(x, y, seed float64) float64 {
	n := math.Sin(x*hashX+y*hashY+seed*hashSeed) * hashScale
	f := n - math.Floor(n)
	// A tiny negative n rounds up to exactly 1.
	if f >= 1 {
		return 0
	}
	return f
}

// Value returns smoothed value noise at (x, y). The four lattice hashes
// around the point are blended bilinearly with smoothstep easing, so Value
// equals Hash exactly at integer coordinates.
func Value(x, y, seed float64) float64 {
	ix := math.Floor(x)
	iy := math.Floor(y)
	fx := x - ix
	fy := y - iy

	a := Hash(ix, iy, seed)
	b := Hash(ix+1, iy, seed)
	c := Hash(ix, iy+1, seed)
	d := Hash(ix+1, iy+1, seed)

	u := smoothstep(fx)
	v := smoothstep(fy)

	return a + (b-a)*u + (c-a)*v + (a-b-c+d)*u*v
}

// FBM sums octaves of value noise with doubling frequency and halving
// amplitude, normalized to [0,1]. Octave i uses seed+100*i.
// It returns 0 when octaves < 1.
func FBM(x, y float64, octaves int, seed float64) float64 {
	return accumulate(x, y, octaves, seed, identity)
}

// Turbulence is FBM over |2n-1| octave samples.
func Turbulence(x, y float64, octaves int, seed float64) float64 {
	return accumulate(x, y, octaves, seed, fold)
}

// Ridged is FBM over (1-|2n-1|)^2 octave samples, giving crisp ridge lines.
func Ridged(x, y float64, octaves int, seed float64) float64 {
	return accumulate(x, y, octaves, seed, ridge)
}

func accumulate(x, y float64, octaves int, seed float64, shape func(float64) float64) float64 {
	if octaves < 1 {
		return 0
	}

	var sum, total float64
	amplitude := 1.0
	frequency := 1.0
	for i := 0; i < octaves; i++ {
		n := Value(x*frequency, y*frequency, seed+float64(i)*octaveSeedStep)
		sum += amplitude * shape(n)
		total += amplitude
		amplitude *= 0.5
		frequency *= 2
	}

	r := sum / total
	switch {
	case r > 1:
		return 1
	case r < 0:
		return 0
	}
	return r
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func identity(n float64) float64 { return n }

func fold(n float64) float64 { return math.Abs(2*n - 1) }

func ridge(n float64) float64 {
	r := 1 - math.Abs(2*n-1)
	return r * r
}
