// Package glyph converts traced cell outlines into design-space glyphs:
// uniform per-class scaling, the raster-to-design y flip, deterministic
// placement against the bearings, and advance width computation.
package glyph

import (
	"math"

	"github.com/fontgrid/fontgrid/config"
	"github.com/fontgrid/fontgrid/geom"
	"github.com/fontgrid/fontgrid/layout"
	"github.com/fontgrid/fontgrid/trace"
)

// Metrics holds a glyph's horizontal metrics in design units. The advance is
// always the sum of the bearings and the ink width, so for an empty glyph the
// bearings split the whole advance between them.
type Metrics struct {
	Advance      int
	LeftBearing  int
	RightBearing int
}

// InkWidth returns the width of the ink between the bearings.
func (m Metrics) InkWidth() int {
	return m.Advance - m.LeftBearing - m.RightBearing
}

// Glyph is a character's design-space outline plus its metrics. An empty
// Outline is a legitimate glyph (a deliberately blank cell); it still carries
// a nonzero advance.
type Glyph struct {
	Spec    layout.CharacterSpec
	Outline trace.RawPath
	Metrics Metrics
}

// Empty reports whether the glyph has no ink.
func (g Glyph) Empty() bool {
	return g.Outline.IsEmpty()
}

// Normalizer maps pixel-space outlines into the font's design space.
type Normalizer struct {
	scale   config.ScaleConfig
	spacing config.Spacing
}

// NewNormalizer builds a normalizer from the pipeline configuration.
func NewNormalizer(cfg config.Config) *Normalizer {
	return &Normalizer{scale: cfg.Scale, spacing: cfg.Spacing}
}

// Normalize converts a traced outline into a design-space glyph:
//
//   - uniform scaling by the character class's scale factor (with any
//     per-character override), the same factor on both axes,
//   - a y flip from raster coordinates (y-down) to design space (y-up),
//   - horizontal placement so the ink's left edge sits exactly at the class's
//     left bearing,
//   - vertical placement so the ink's bottom edge sits at the configured
//     vertical offset (0 = baseline, negative = descender).
//
// The flip reverses contour orientation, so outer contours arrive with
// positive signed area in pixel space and leave clockwise in design space,
// which is what font rasterizers fill.
//
// An empty input produces an empty glyph with the class's empty advance.
func (n *Normalizer) Normalize(spec layout.CharacterSpec, raw trace.RawPath) Glyph {
	sp := n.spacing.For(spec)
	if raw.IsEmpty() {
		return Glyph{Spec: spec, Metrics: emptyMetrics(sp)}
	}

	settings := n.scale.For(spec)
	s := settings.ScaleFactor
	bbox := raw.BoundingBox()

	// x' = s*x + tx puts the scaled left edge at the left bearing;
	// y' = -s*y + ty puts the scaled bottom edge (pixel MaxY) at the offset.
	tx := float64(sp.LeftBearing) - s*bbox.Min.X
	ty := float64(settings.VerticalOffset) + s*bbox.Max.Y
	m := geom.Translate(tx, ty).Multiply(geom.Scale(s, -s))

	inkWidth := int(math.Round(s * bbox.Width()))
	return Glyph{
		Spec:    spec,
		Outline: raw.Transform(m),
		Metrics: Metrics{
			Advance:      sp.LeftBearing + inkWidth + sp.RightBearing,
			LeftBearing:  sp.LeftBearing,
			RightBearing: sp.RightBearing,
		},
	}
}

func emptyMetrics(sp config.ClassSpacing) Metrics {
	lsb := sp.EmptyAdvance / 2
	return Metrics{
		Advance:      sp.EmptyAdvance,
		LeftBearing:  lsb,
		RightBearing: sp.EmptyAdvance - lsb,
	}
}

// SpaceGlyph returns the whitespace glyph every font carries regardless of
// the template's contents.
func (n *Normalizer) SpaceGlyph() Glyph {
	lsb := n.spacing.SpaceWidth / 2
	return Glyph{
		Spec: layout.CharacterSpec{Rune: ' ', Label: "space", Class: layout.Symbol},
		Metrics: Metrics{
			Advance:      n.spacing.SpaceWidth,
			LeftBearing:  lsb,
			RightBearing: n.spacing.SpaceWidth - lsb,
		},
	}
}
