// Package export writes synthesized textures and simulation state to disk
// and to text/JSON streams.
package export

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/texture"
)

// WritePNG encodes a raster as PNG.
func WritePNG(w io.Writer, r *texture.Raster) error {
	if err := png.Encode(w, r); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// TextureJob describes a batch of textures to export.
type TextureJob struct {
	Kinds     []texture.Kind // nil exports every kind
	Width     int
	Height    int
	Ring      bool
	Starfield bool
}

// ExportTextures renders the job and writes one PNG per texture into dir,
// creating it if needed. It returns the written paths in a stable order.
func ExportTextures(ctx context.Context, dir string, synth *texture.Synthesizer, job TextureJob, logger *logging.Logger) ([]string, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("export")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	kinds := job.Kinds
	if kinds == nil {
		kinds = texture.Kinds()
	}

	start := time.Now()
	rasters, err := synth.SynthesizeAll(ctx, kinds, job.Width, job.Height)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, k := range kinds {
		p, err := writeFile(dir, k.String()+".png", rasters[k])
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}

	if job.Ring {
		p, err := writeFile(dir, "ring.png", synth.Ring())
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	if job.Starfield {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		p, err := writeFile(dir, "starfield.png", synth.Starfield())
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}

	logger.Info("wrote %d textures to %s in %v", len(paths), dir, time.Since(start).Round(time.Millisecond))
	return paths, nil
}

func writeFile(dir, name string, r *texture.Raster) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if err := WritePNG(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path, nil
}
