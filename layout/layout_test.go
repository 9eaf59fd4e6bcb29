package layout

import (
	"errors"
	"testing"

	"github.com/fontgrid/fontgrid/geom"
)

func TestStandardSet(t *testing.T) {
	specs := StandardSet()
	if len(specs) != 94 {
		t.Fatalf("StandardSet() has %d entries, want 94", len(specs))
	}

	seen := make(map[rune]bool)
	for i, s := range specs {
		if s.CellIndex != i {
			t.Errorf("spec %q has cell index %d, want %d", string(s.Rune), s.CellIndex, i)
		}
		if seen[s.Rune] {
			t.Errorf("duplicate rune %q", string(s.Rune))
		}
		seen[s.Rune] = true
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		r    rune
		want Class
	}{
		{'A', Upper},
		{'Z', Upper},
		{'a', Lower},
		{'z', Lower},
		{'0', Digit},
		{'9', Digit},
		{'@', Symbol},
		{'~', Symbol},
		{'Ñ', Upper},
		{'é', Lower},
		{'¿', Symbol},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			if got := Classify(tt.r); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", string(tt.r), got, tt.want)
			}
		})
	}
}

func TestNewCharacterSetRejectsDuplicates(t *testing.T) {
	_, err := NewCharacterSet([]rune("ABA"))
	var lerr *LayoutError
	if !errors.As(err, &lerr) {
		t.Fatalf("NewCharacterSet with duplicates returned %v, want *LayoutError", err)
	}
}

func TestCellFor(t *testing.T) {
	grid := GridLayout{
		Rows: 10, Columns: 10,
		CellWidth: 200, CellHeight: 200,
		Margin: 20, BorderThickness: 4,
	}

	tests := []struct {
		name  string
		index int
		want  geom.Rect
	}{
		{"first cell", 0, geom.Rect{Min: geom.Pt(20, 20), Max: geom.Pt(220, 220)}},
		{"second column", 1, geom.Rect{Min: geom.Pt(220, 20), Max: geom.Pt(420, 220)}},
		{"second row", 10, geom.Rect{Min: geom.Pt(20, 220), Max: geom.Pt(220, 420)}},
		{"last cell", 99, geom.Rect{Min: geom.Pt(1820, 1820), Max: geom.Pt(2020, 2020)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := grid.CellFor(CharacterSpec{Rune: 'A', CellIndex: tt.index})
			if err != nil {
				t.Fatalf("CellFor: %v", err)
			}
			if got != tt.want {
				t.Errorf("CellFor(index %d) = %+v, want %+v", tt.index, got, tt.want)
			}
		})
	}
}

func TestCellForOutOfRange(t *testing.T) {
	grid := DefaultGrid(94, 10)
	_, err := grid.CellFor(CharacterSpec{Rune: 'A', CellIndex: grid.Rows * grid.Columns})
	var lerr *LayoutError
	if !errors.As(err, &lerr) {
		t.Fatalf("CellFor out of range returned %v, want *LayoutError", err)
	}
}

func TestAllCellsWithinTemplateBounds(t *testing.T) {
	grids := []GridLayout{
		DefaultGrid(94, 10),
		DefaultGrid(94, 13),
		{Rows: 2, Columns: 47, CellWidth: 80, CellHeight: 120, Margin: 0, BorderThickness: 2},
	}
	for _, grid := range grids {
		w, h := grid.TemplateSize()
		bounds := geom.Rect{Max: geom.Pt(float64(w), float64(h))}
		for _, spec := range StandardSet() {
			cell, err := grid.CellFor(spec)
			if err != nil {
				t.Fatalf("grid %+v: CellFor(%s): %v", grid, spec.Describe(), err)
			}
			if !bounds.ContainsRect(cell) {
				t.Errorf("grid %+v: cell for %s exceeds template bounds: %+v > %+v",
					grid, spec.Describe(), cell, bounds)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		grid    GridLayout
		n       int
		wantErr bool
	}{
		{"ok", DefaultGrid(94, 10), 94, false},
		{"too many characters", GridLayout{Rows: 2, Columns: 2, CellWidth: 100, CellHeight: 100}, 5, true},
		{"zero columns", GridLayout{Rows: 10, CellWidth: 100, CellHeight: 100}, 1, true},
		{"negative margin", GridLayout{Rows: 1, Columns: 1, CellWidth: 100, CellHeight: 100, Margin: -1}, 1, true},
		{"border eats cell", GridLayout{Rows: 1, Columns: 1, CellWidth: 10, CellHeight: 10, BorderThickness: 5}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.grid.Validate(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
