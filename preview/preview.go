// Package preview renders a specimen sheet of finished glyphs, one tile per
// character, so a generated font can be inspected without installing it.
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/vector"

	"github.com/fontgrid/fontgrid/config"
	"github.com/fontgrid/fontgrid/geom"
	"github.com/fontgrid/fontgrid/glyph"
)

const flattenTolerance = 0.25 // pixels

// Option configures a Renderer.
type Option func(*Renderer)

// WithColumns sets the number of tiles per row.
func WithColumns(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.columns = n
		}
	}
}

// WithPixelsPerEm sets the tile size. Each glyph is drawn into a square tile
// of this many pixels per side.
func WithPixelsPerEm(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.pixelsPerEm = n
		}
	}
}

// Renderer draws specimen sheets. Instances are safe for concurrent use.
type Renderer struct {
	font        config.FontProperties
	columns     int
	pixelsPerEm int
}

// NewRenderer creates a sheet renderer for fonts with the given vertical
// metrics.
func NewRenderer(font config.FontProperties, opts ...Option) *Renderer {
	r := &Renderer{
		font:        font,
		columns:     10,
		pixelsPerEm: 96,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the glyphs left to right, top to bottom. Each tile shows the
// glyph on a light baseline rule, horizontally centered on its advance.
func (r *Renderer) Render(glyphs []glyph.Glyph) *image.Gray {
	cols := r.columns
	if len(glyphs) < cols {
		cols = len(glyphs)
	}
	if cols == 0 {
		cols = 1
	}
	rows := (len(glyphs) + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}

	tile := r.pixelsPerEm
	img := image.NewGray(image.Rect(0, 0, cols*tile, rows*tile))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	scale := float64(tile) / float64(r.font.UnitsPerEm)
	baseline := float64(r.font.Ascent) * scale

	for i, g := range glyphs {
		tileX := (i % cols) * tile
		tileY := (i / cols) * tile
		r.drawBaseline(img, tileX, tileY, tile, int(baseline))
		if g.Empty() {
			continue
		}

		// Center the advance in the tile; design y grows up, pixels grow
		// down.
		xoff := float64(tileX) + (float64(tile)-float64(g.Metrics.Advance)*scale)/2
		yoff := float64(tileY) + baseline
		m := geom.Translate(xoff, yoff).Multiply(geom.Scale(scale, -scale))

		rast := vector.NewRasterizer(cols*tile, rows*tile)
		for _, sub := range g.Outline {
			flattenInto(rast, sub.Transform(m))
		}
		rast.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: 0}), image.Point{})
	}
	return img
}

// WritePNG renders the sheet and encodes it as PNG.
func (r *Renderer) WritePNG(w io.Writer, glyphs []glyph.Glyph) error {
	return png.Encode(w, r.Render(glyphs))
}

func (r *Renderer) drawBaseline(img *image.Gray, tileX, tileY, tile, baseline int) {
	const rule = 220
	y := tileY + baseline
	for x := tileX; x < tileX+tile; x++ {
		img.SetGray(x, y, color.Gray{Y: rule})
	}
}

func flattenInto(rast *vector.Rasterizer, sub *geom.Path) {
	sub.FlattenCallback(flattenTolerance, func(pt geom.Point, moveTo bool) {
		if moveTo {
			rast.MoveTo(float32(pt.X), float32(pt.Y))
		} else {
			rast.LineTo(float32(pt.X), float32(pt.Y))
		}
	})
	rast.ClosePath()
}
