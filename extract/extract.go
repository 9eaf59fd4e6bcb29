// Package extract crops and cleans each template cell from a filled-in
// composite image, producing isolated single-character bitmaps ready for
// tracing, or explicit empty markers for cells without ink.
package extract

import (
	"fmt"
	"image"
	"math"

	"github.com/fontgrid/fontgrid/bitmap"
	"github.com/fontgrid/fontgrid/config"
	"github.com/fontgrid/fontgrid/layout"
)

// Cell is the extraction result for one character: either a binarized
// bitmap of the cell interior, or an explicit empty marker (Image == nil).
type Cell struct {
	Spec layout.CharacterSpec

	// Image is the binarized cell interior, nil when the cell holds no ink.
	Image *bitmap.Bitmap

	// Origin is the offset of the cropped region within the source image.
	Origin image.Point
}

// Empty reports whether the cell contained no ink.
func (c Cell) Empty() bool {
	return c.Image == nil
}

// ExtractionError reports a source image that is incompatible with the
// expected grid. It is raised once, before any cropping is attempted.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return "extract: " + e.Reason
}

// Extractor crops the cells of a filled template image.
type Extractor struct {
	grid     layout.GridLayout
	specs    []layout.CharacterSpec
	settings config.RasterSettings
}

// NewExtractor creates an extractor for the given grid and character set.
func NewExtractor(grid layout.GridLayout, specs []layout.CharacterSpec, settings config.RasterSettings) (*Extractor, error) {
	if err := grid.Validate(len(specs)); err != nil {
		return nil, err
	}
	return &Extractor{grid: grid, specs: specs, settings: settings}, nil
}

// ExtractAll validates the source image against the grid and extracts every
// cell. The source may be a uniformly resized copy of the rendered template
// (a rescanned or re-exported drawing); the scale is inferred from the
// width ratio and applied to all cell coordinates.
//
// The returned slice has one entry per CharacterSpec, in character-set
// order.
func (e *Extractor) ExtractAll(src image.Image) ([]Cell, error) {
	wantW, wantH := e.grid.TemplateSize()
	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	// Structural validation happens once, up front. A source smaller than
	// the template cannot contain the full grid.
	if srcW < wantW || srcH < wantH {
		return nil, &ExtractionError{
			Reason: fmt.Sprintf("source image %dx%d smaller than the %dx%d template grid",
				srcW, srcH, wantW, wantH),
		}
	}

	scale := float64(srcW) / float64(wantW)
	if expectedH := int(math.Round(float64(wantH) * scale)); !withinTolerance(srcH, expectedH, 0.02) {
		return nil, &ExtractionError{
			Reason: fmt.Sprintf("source image %dx%d does not match the template aspect ratio (expected height ~%d at scale %.2f)",
				srcW, srcH, expectedH, scale),
		}
	}

	gray := bitmap.FromImage(src)
	inset := float64(e.grid.InkInset() + e.settings.SafetyMargin)
	minInk := int(float64(e.settings.MinInkPixels) * scale * scale)

	cells := make([]Cell, 0, len(e.specs))
	for _, spec := range e.specs {
		cell, err := e.grid.CellFor(spec)
		if err != nil {
			return nil, err
		}

		interior := cell.Inset(inset) // in template units; scaled below
		crop := image.Rect(
			int(math.Round(interior.Min.X*scale)),
			int(math.Round(interior.Min.Y*scale)),
			int(math.Round(interior.Max.X*scale)),
			int(math.Round(interior.Max.Y*scale)),
		)

		region := gray.Crop(crop).
			EnhanceContrast(e.settings.Contrast).
			Threshold(e.settings.Threshold)

		if region.InkCount() < minInk {
			// Below minimum coverage: deliberately blank cell. Forwarding a
			// near-blank bitmap would produce spurious micro-glyphs.
			cells = append(cells, Cell{Spec: spec, Origin: crop.Min})
			continue
		}
		cells = append(cells, Cell{Spec: spec, Image: region, Origin: crop.Min})
	}

	return cells, nil
}

func withinTolerance(got, want int, tol float64) bool {
	diff := math.Abs(float64(got - want))
	return diff <= float64(want)*tol+1
}
