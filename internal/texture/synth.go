// Package texture synthesizes procedural surface, ring and starfield images
// from layered noise.
//
// Every routine is a pure function of the texel coordinate and the seed
// table, so rows and whole bodies are synthesized concurrently without
// synchronization.
package texture

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-orrery/internal/logging"
)

// Fixed output sizes for the ring profile and the sky dome.
const (
	RingWidth       = 1024
	RingHeight      = 32
	StarfieldWidth  = 2048
	StarfieldHeight = 1024
)

var (
	// ErrInvalidDimensions is returned for non-positive raster sizes.
	ErrInvalidDimensions = errors.New("invalid raster dimensions")
	// ErrUnknownKind is returned for a body kind without a generator.
	ErrUnknownKind = errors.New("unknown body kind")
)

// Generator computes the colour of one texel at normalized (u, v).
type Generator func(u, v float64, seeds SeedTable) colorful.Color

// generators maps each body kind to its surface routine.
var generators = map[Kind]Generator{
	KindSun:     sun,
	KindMercury: mercury,
	KindVenus:   venus,
	KindEarth:   earth,
	KindMoon:    moon,
	KindMars:    mars,
	KindJupiter: jupiter,
	KindSaturn:  saturn,
	KindUranus:  uranus,
	KindNeptune: neptune,
}

// GeneratorFor returns the surface routine for kind.
func GeneratorFor(kind Kind) (Generator, error) {
	g, ok := generators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	return g, nil
}

// Options configures a Synthesizer.
type Options struct {
	Seeds   SeedTable       // nil uses DefaultSeeds
	Workers int             // row workers per image; <= 0 uses GOMAXPROCS
	Logger  *logging.Logger // nil discards
}

// Synthesizer renders rasters for body kinds.
type Synthesizer struct {
	seeds   SeedTable
	workers int
	logger  *logging.Logger
}

// New creates a Synthesizer.
func New(opts Options) *Synthesizer {
	seeds := opts.Seeds
	if seeds == nil {
		seeds = DefaultSeeds()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Synthesizer{
		seeds:   seeds,
		workers: workers,
		logger:  logger.With("texture"),
	}
}

// Synthesize renders the surface of kind at width×height.
func (s *Synthesizer) Synthesize(kind Kind, width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("synthesize %s %dx%d: %w", kind, width, height, ErrInvalidDimensions)
	}
	gen, err := GeneratorFor(kind)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	start := time.Now()
	r := s.render(width, height, func(u, v float64) colorful.Color {
		return gen(u, v, s.seeds)
	})
	s.logger.Debug("%s %dx%d in %v", kind, width, height, time.Since(start))
	return r, nil
}

// Texel returns the quantized colour of kind at (u, v) without building a raster.
func (s *Synthesizer) Texel(kind Kind, u, v float64) ([4]uint8, error) {
	gen, err := GeneratorFor(kind)
	if err != nil {
		return [4]uint8{}, err
	}
	c := gen(u, v, s.seeds)
	return [4]uint8{channel(c.R), channel(c.G), channel(c.B), 255}, nil
}

// SynthesizeAll renders several bodies concurrently. It stops scheduling new
// bodies once ctx is cancelled or a body fails.
func (s *Synthesizer) SynthesizeAll(ctx context.Context, kinds []Kind, width, height int) (map[Kind]*Raster, error) {
	results := make([]*Raster, len(kinds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := s.Synthesize(kind, width, height)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[Kind]*Raster, len(kinds))
	for i, kind := range kinds {
		out[kind] = results[i]
	}
	return out, nil
}

// Ring renders the radial ring profile (RingWidth×RingHeight). The x axis
// runs from the inner to the outer edge; consumers wrap-sample it around
// the ring.
func (s *Synthesizer) Ring() *Raster {
	start := time.Now()
	r := s.render(RingWidth, RingHeight, func(u, v float64) colorful.Color {
		return ringTexel(u, v, s.seeds)
	})
	s.logger.Debug("ring %dx%d in %v", RingWidth, RingHeight, time.Since(start))
	return r
}

// RingDensity returns the ring density at radial position r in [0,1].
func (s *Synthesizer) RingDensity(r float64) float64 {
	return RingDensity(r, s.seeds)
}

// Starfield renders the sky dome (StarfieldWidth×StarfieldHeight).
func (s *Synthesizer) Starfield() *Raster {
	start := time.Now()
	r := s.render(StarfieldWidth, StarfieldHeight, func(u, v float64) colorful.Color {
		return starfield(u, v, s.seeds)
	})
	s.logger.Debug("starfield %dx%d in %v", StarfieldWidth, StarfieldHeight, time.Since(start))
	return r
}

// StarTexel returns the quantized sky-dome colour at (u, v).
func (s *Synthesizer) StarTexel(u, v float64) [4]uint8 {
	c := starfield(u, v, s.seeds)
	return [4]uint8{channel(c.R), channel(c.G), channel(c.B), 255}
}

// render evaluates fn at every texel. Rows are handed out to a bounded set
// of goroutines; each writes only its own row.
func (s *Synthesizer) render(width, height int, fn func(u, v float64) colorful.Color) *Raster {
	r := newRaster(width, height)

	var g errgroup.Group
	g.SetLimit(s.workers)
	for y := 0; y < height; y++ {
		y := y
		g.Go(func() error {
			row := make([]uint8, width*4)
			v := float64(y) / float64(height)
			for x := 0; x < width; x++ {
				c := fn(float64(x)/float64(width), v)
				i := x * 4
				row[i] = channel(c.R)
				row[i+1] = channel(c.G)
				row[i+2] = channel(c.B)
				row[i+3] = 255
			}
			r.setRow(y, row)
			return nil
		})
	}
	_ = g.Wait()

	return r
}
