package layout

import (
	"fmt"

	"github.com/fontgrid/fontgrid/geom"
)

// GridLayout describes the template grid geometry. All values are in pixels
// of the rendered template.
type GridLayout struct {
	// Rows and Columns give the grid dimensions in cells.
	Rows    int
	Columns int

	// CellWidth and CellHeight are the outer dimensions of one cell,
	// including its drawn border.
	CellWidth  int
	CellHeight int

	// Margin is the blank space around the whole grid.
	Margin int

	// BorderThickness is the stroke width of the cell boxes. The region
	// extractor insets each cell by at least this much so box ink never
	// reaches the tracer.
	BorderThickness int

	// CellPadding is the band between the cell edge and the drawn box. The
	// corner label is printed inside this band, so both the box stroke and
	// the label stay clear of the extraction region.
	CellPadding int
}

// BoxRect returns the rectangle of the drawn box within a cell: the cell
// rectangle inset by the padding band. The box border is stroked inward
// from this rectangle.
func (g GridLayout) BoxRect(cell geom.Rect) geom.Rect {
	return cell.Inset(float64(g.CellPadding))
}

// InkInset returns how far the region extractor must inset a cell, beyond
// the safety margin, to exclude the padding band and the box border.
func (g GridLayout) InkInset() int {
	return g.CellPadding + g.BorderThickness
}

// DefaultGrid returns a grid sized for n characters with the given number of
// columns.
func DefaultGrid(n, columns int) GridLayout {
	rows := (n + columns - 1) / columns
	return GridLayout{
		Rows:            rows,
		Columns:         columns,
		CellWidth:       200,
		CellHeight:      200,
		Margin:          20,
		BorderThickness: 4,
		CellPadding:     18,
	}
}

// Validate checks the grid's internal consistency and that it can hold a
// character set of size n.
func (g GridLayout) Validate(n int) error {
	switch {
	case g.Rows <= 0 || g.Columns <= 0:
		return &LayoutError{Reason: fmt.Sprintf("grid dimensions %dx%d invalid", g.Rows, g.Columns)}
	case g.CellWidth <= 0 || g.CellHeight <= 0:
		return &LayoutError{Reason: fmt.Sprintf("cell size %dx%d invalid", g.CellWidth, g.CellHeight)}
	case g.Margin < 0 || g.BorderThickness < 0 || g.CellPadding < 0:
		return &LayoutError{Reason: "margin, border thickness and cell padding must not be negative"}
	case g.InkInset()*2 >= g.CellWidth || g.InkInset()*2 >= g.CellHeight:
		return &LayoutError{Reason: fmt.Sprintf("padding %d and border %d leave no drawable cell interior",
			g.CellPadding, g.BorderThickness)}
	case n > g.Rows*g.Columns:
		return &LayoutError{Reason: fmt.Sprintf("grid %dx%d cannot hold %d characters", g.Rows, g.Columns, n)}
	}
	return nil
}

// CellFor returns the pixel rectangle assigned to the character. It is a
// pure function of the grid and the spec's cell index.
func (g GridLayout) CellFor(spec CharacterSpec) (geom.Rect, error) {
	if spec.CellIndex < 0 || spec.CellIndex >= g.Rows*g.Columns {
		return geom.Rect{}, &LayoutError{
			Spec:   &spec,
			Reason: fmt.Sprintf("cell index %d outside %dx%d grid", spec.CellIndex, g.Rows, g.Columns),
		}
	}
	return cellRect(g, spec.CellIndex), nil
}

// TemplateSize returns the minimal pixel dimensions of a template image
// rendered from this grid.
func (g GridLayout) TemplateSize() (width, height int) {
	width = 2*g.Margin + g.Columns*g.CellWidth
	height = 2*g.Margin + g.Rows*g.CellHeight
	return width, height
}

// LayoutError reports a grid or character-set misconfiguration. It is fatal:
// the pipeline refuses to start image work on an inconsistent layout.
type LayoutError struct {
	// Spec identifies the offending character, when one is involved.
	Spec   *CharacterSpec
	Reason string
}

func (e *LayoutError) Error() string {
	if e.Spec != nil {
		return fmt.Sprintf("layout: %s: %s", e.Spec.Describe(), e.Reason)
	}
	return "layout: " + e.Reason
}
