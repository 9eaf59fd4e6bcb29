// Package template renders the blank drawing template from a grid layout:
// one labeled box per character, as an SVG drawing and as a rasterized PNG.
// Both outputs derive from the same layout math the region extractor uses,
// so coordinates agree exactly.
package template

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/fontgrid/fontgrid/geom"
	"github.com/fontgrid/fontgrid/layout"
)

// Renderer produces template artifacts for a character set on a grid.
type Renderer struct {
	grid  layout.GridLayout
	specs []layout.CharacterSpec
	face  font.Face
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLabelFace sets the face used for rasterized cell labels. The default
// is a builtin bitmap face; see LoadLabelFace for using a TTF instead.
func WithLabelFace(face font.Face) Option {
	return func(r *Renderer) {
		if face != nil {
			r.face = face
		}
	}
}

// NewRenderer creates a template renderer. The grid must be able to hold the
// character set.
func NewRenderer(grid layout.GridLayout, specs []layout.CharacterSpec, opts ...Option) (*Renderer, error) {
	if err := grid.Validate(len(specs)); err != nil {
		return nil, err
	}
	r := &Renderer{
		grid:  grid,
		specs: specs,
		face:  builtinFace(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RenderSVG writes the template as an SVG drawing.
func (r *Renderer) RenderSVG(w io.Writer) error {
	width, height := r.grid.TemplateSize()

	var buf []byte
	buf = append(buf, xml.Header...)
	buf = fmt.Appendf(buf,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		width, height, width, height)
	buf = fmt.Appendf(buf, "  <rect width=\"%d\" height=\"%d\" fill=\"white\"/>\n", width, height)

	for _, spec := range r.specs {
		cell, err := r.grid.CellFor(spec)
		if err != nil {
			return err
		}
		box := r.grid.BoxRect(cell)

		// Stroke is centered on the outline in SVG; pull the rect inward by
		// half the border so the stroke stays inside the box rectangle.
		half := float64(r.grid.BorderThickness) / 2
		buf = fmt.Appendf(buf,
			"  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"black\" stroke-width=\"%d\"/>\n",
			box.Min.X+half, box.Min.Y+half, box.Width()-2*half, box.Height()-2*half, r.grid.BorderThickness)

		var label bytes.Buffer
		if err := xml.EscapeText(&label, []byte(spec.Label)); err != nil {
			return err
		}
		buf = fmt.Appendf(buf,
			"  <text x=\"%g\" y=\"%g\" font-family=\"sans-serif\" font-size=\"12\">%s</text>\n",
			box.Min.X+2, box.Min.Y-4, label.Bytes())
	}

	buf = append(buf, "</svg>\n"...)
	_, err := w.Write(buf)
	return err
}

// RenderImage rasterizes the template to a grayscale image: white
// background, black box borders, labels in the padding band above each box.
func (r *Renderer) RenderImage() (*image.Gray, error) {
	width, height := r.grid.TemplateSize()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: r.face,
	}

	for _, spec := range r.specs {
		cell, err := r.grid.CellFor(spec)
		if err != nil {
			return nil, err
		}
		box := r.grid.BoxRect(cell)
		strokeRect(img, box, r.grid.BorderThickness)

		// Label baseline sits just above the box, inside the padding band.
		drawer.Dot = fixed.P(int(box.Min.X)+2, int(box.Min.Y)-3)
		drawer.DrawString(spec.Label)
	}

	return img, nil
}

// WritePNG renders the template image and encodes it as PNG.
func (r *Renderer) WritePNG(w io.Writer) error {
	img, err := r.RenderImage()
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// strokeRect draws a rectangle outline with the given thickness, growing
// inward from the rectangle bounds.
func strokeRect(img *image.Gray, r geom.Rect, thickness int) {
	x0, y0 := int(r.Min.X), int(r.Min.Y)
	x1, y1 := int(r.Max.X), int(r.Max.Y)

	for t := 0; t < thickness; t++ {
		hline(img, x0, x1, y0+t)
		hline(img, x0, x1, y1-1-t)
		vline(img, x0+t, y0, y1)
		vline(img, x1-1-t, y0, y1)
	}
}

func hline(img *image.Gray, x0, x1, y int) {
	for x := x0; x < x1; x++ {
		img.SetGray(x, y, color.Gray{Y: 0})
	}
}

func vline(img *image.Gray, x, y0, y1 int) {
	for y := y0; y < y1; y++ {
		img.SetGray(x, y, color.Gray{Y: 0})
	}
}
