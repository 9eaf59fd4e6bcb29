package assemble

import (
	"encoding/json"

	"github.com/fontgrid/fontgrid/geom"
	"github.com/fontgrid/fontgrid/glyph"
)

// The wire format handed to the compiler script: plain JSON with one segment
// list per contour. Points are design-space coordinates, y-up.
type documentJSON struct {
	Name       string      `json:"name"`
	UnitsPerEm int         `json:"units_per_em"`
	Ascent     int         `json:"ascent"`
	Descent    int         `json:"descent"`
	Glyphs     []glyphJSON `json:"glyphs"`
}

type glyphJSON struct {
	Codepoint int             `json:"codepoint"`
	Name      string          `json:"name,omitempty"`
	Advance   int             `json:"advance"`
	Contours  [][]segmentJSON `json:"contours,omitempty"`
}

type segmentJSON struct {
	Op     string       `json:"op"`
	Points [][2]float64 `json:"points,omitempty"`
}

func encodeDocument(doc *Document) ([]byte, error) {
	out := documentJSON{
		Name:       doc.Name,
		UnitsPerEm: doc.UnitsPerEm,
		Ascent:     doc.Ascent,
		Descent:    doc.Descent,
		Glyphs:     make([]glyphJSON, 0, len(doc.Glyphs)),
	}
	for _, g := range doc.Glyphs {
		out.Glyphs = append(out.Glyphs, glyphJSON{
			Codepoint: int(g.Spec.Rune),
			Name:      g.Spec.Label,
			Advance:   g.Metrics.Advance,
			Contours:  encodeOutline(g),
		})
	}
	return json.Marshal(out)
}

func encodeOutline(g glyph.Glyph) [][]segmentJSON {
	if g.Empty() {
		return nil
	}
	contours := make([][]segmentJSON, 0, len(g.Outline))
	for _, sub := range g.Outline {
		contour := make([]segmentJSON, 0, len(sub.Elements()))
		for _, el := range sub.Elements() {
			switch e := el.(type) {
			case geom.MoveTo:
				contour = append(contour, segmentJSON{
					Op:     "move",
					Points: [][2]float64{pt(e.Point)},
				})
			case geom.LineTo:
				contour = append(contour, segmentJSON{
					Op:     "line",
					Points: [][2]float64{pt(e.Point)},
				})
			case geom.QuadTo:
				contour = append(contour, segmentJSON{
					Op:     "qcurve",
					Points: [][2]float64{pt(e.Control), pt(e.Point)},
				})
			case geom.CubicTo:
				contour = append(contour, segmentJSON{
					Op:     "curve",
					Points: [][2]float64{pt(e.Control1), pt(e.Control2), pt(e.Point)},
				})
			case geom.Close:
				contour = append(contour, segmentJSON{Op: "close"})
			}
		}
		contours = append(contours, contour)
	}
	return contours
}

func pt(p geom.Point) [2]float64 {
	return [2]float64{p.X, p.Y}
}
