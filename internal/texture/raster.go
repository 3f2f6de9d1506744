package texture

import (
	"image"
	"image/color"
	"math"
)

// Raster is an immutable width×height grid of RGBA pixels.
// It is filled once during synthesis and never mutated afterwards.
// Raster implements image.Image so it can be handed to image encoders.
type Raster struct {
	width  int
	height int
	pix    []uint8 // RGBA, row-major, 4 bytes per pixel
}

func newRaster(width, height int) *Raster {
	return &Raster{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// Pixels returns a copy of the RGBA bytes.
func (r *Raster) Pixels() []uint8 {
	out := make([]uint8, len(r.pix))
	copy(out, r.pix)
	return out
}

// RGBAAt returns the pixel at (x, y). Out-of-range coordinates return zero.
func (r *Raster) RGBAAt(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return color.RGBA{}
	}
	i := (y*r.width + x) * 4
	return color.RGBA{R: r.pix[i], G: r.pix[i+1], B: r.pix[i+2], A: r.pix[i+3]}
}

// Sample returns the nearest pixel for normalized (u, v). u wraps
// horizontally, v is clamped.
func (r *Raster) Sample(u, v float64) color.RGBA {
	u -= math.Floor(u)
	x := int(u * float64(r.width))
	y := int(v * float64(r.height))
	if x >= r.width {
		x = r.width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= r.height {
		y = r.height - 1
	}
	return r.RGBAAt(x, y)
}

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.width, r.height) }

// At implements image.Image.
func (r *Raster) At(x, y int) color.Color { return r.RGBAAt(x, y) }

// setRow writes one row. Only called while the raster is being built.
func (r *Raster) setRow(y int, row []uint8) {
	copy(r.pix[y*r.width*4:(y+1)*r.width*4], row)
}
