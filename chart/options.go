package chart

import "gonum.org/v1/plot/vg"

// Default rendering parameters.
const (
	DefaultDPI    = 300
	DefaultWidth  = 15 * vg.Inch
	DefaultHeight = 12 * vg.Inch
)

// Option is a function that configures a Renderer
type Option func(*Renderer)

// WithOutputDir sets the directory the image files are written to
func WithOutputDir(dir string) Option {
	return func(r *Renderer) {
		r.outDir = dir
	}
}

// WithDPI sets the raster resolution
func WithDPI(dpi int) Option {
	return func(r *Renderer) {
		r.dpi = dpi
	}
}

// WithSize sets the size of the multi-panel figure
func WithSize(width, height vg.Length) Option {
	return func(r *Renderer) {
		r.width = width
		r.height = height
	}
}
