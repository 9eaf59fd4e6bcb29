package trace

import (
	"math"
	"strings"
	"testing"

	"github.com/fontgrid/fontgrid/geom"
)

const engineSVG = `<?xml version="1.0" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 20010904//EN"
 "http://www.w3.org/TR/2001/REC-SVG-20010904/DTD/svg10.dtd">
<svg version="1.0" xmlns="http://www.w3.org/2000/svg"
 width="40.000000pt" height="40.000000pt" viewBox="0 0 40.000000 40.000000"
 preserveAspectRatio="xMidYMid meet">
<metadata>
Created by potrace 1.16, written by Peter Selinger 2001-2019
</metadata>
<g transform="translate(0.000000,40.000000) scale(0.100000,-0.100000)"
fill="#000000" stroke="none">
<path d="M100 200 l0 -100 100 0 100 0 0 100 0 100 -100 0 -100 0 0 -100z"/>
</g>
</svg>
`

func TestParseSVGEngineOutput(t *testing.T) {
	raw, err := ParseSVG([]byte(engineSVG))
	if err != nil {
		t.Fatalf("ParseSVG: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("got %d subpaths, want 1", len(raw))
	}

	// The group transform maps the path back to pixel space: a 20x20 square
	// at (10,10) in a 40x40 bitmap.
	bbox := raw.BoundingBox()
	want := geom.Rect{Min: geom.Pt(10, 10), Max: geom.Pt(30, 30)}
	if !rectNear(bbox, want, 1e-9) {
		t.Errorf("bounding box = %+v, want %+v", bbox, want)
	}

	area := raw[0].Area()
	if math.Abs(math.Abs(area)-400) > 1e-6 {
		t.Errorf("|area| = %v, want 400", math.Abs(area))
	}
}

func TestParseSVGNoPaths(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg">
<g transform="translate(0,10) scale(0.1,-0.1)" fill="#000000" stroke="none">
</g>
</svg>`
	raw, err := ParseSVG([]byte(svg))
	if err != nil {
		t.Fatalf("ParseSVG: %v", err)
	}
	if !raw.IsEmpty() {
		t.Errorf("got %d subpaths, want none", len(raw))
	}
}

func TestParsePathData(t *testing.T) {
	tests := []struct {
		name     string
		d        string
		subpaths int
		bbox     geom.Rect
	}{
		{
			name:     "absolute lines",
			d:        "M 0 0 L 10 0 L 10 10 L 0 10 Z",
			subpaths: 1,
			bbox:     geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(10, 10)},
		},
		{
			name:     "relative lines",
			d:        "m 5 5 l 10 0 l 0 10 l -10 0 z",
			subpaths: 1,
			bbox:     geom.Rect{Min: geom.Pt(5, 5), Max: geom.Pt(15, 15)},
		},
		{
			name:     "horizontal and vertical",
			d:        "M 0 0 H 20 V 20 H 0 Z",
			subpaths: 1,
			bbox:     geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(20, 20)},
		},
		{
			name:     "implicit lineto after moveto",
			d:        "M 0 0 10 0 10 10 0 10 Z",
			subpaths: 1,
			bbox:     geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(10, 10)},
		},
		{
			name:     "two subpaths",
			d:        "M 0 0 L 10 0 L 10 10 Z M 20 20 L 30 20 L 30 30 Z",
			subpaths: 2,
			bbox:     geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(30, 30)},
		},
		{
			name:     "cubic curves",
			d:        "M 0 0 C 0 10 10 10 10 0 Z",
			subpaths: 1,
			bbox:     geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(10, 10)},
		},
		{
			name:     "negative numbers without separator",
			d:        "M10 10l5-5 5 5-10 10z",
			subpaths: 1,
			bbox:     geom.Rect{Min: geom.Pt(10, 5), Max: geom.Pt(20, 20)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := parsePathData(tt.d)
			if err != nil {
				t.Fatalf("parsePathData(%q): %v", tt.d, err)
			}
			subs := path.Subpaths()
			if len(subs) != tt.subpaths {
				t.Fatalf("got %d subpaths, want %d", len(subs), tt.subpaths)
			}
			if !rectNear(path.BoundingBox(), tt.bbox, 1e-9) {
				t.Errorf("bounding box = %+v, want %+v", path.BoundingBox(), tt.bbox)
			}
		})
	}
}

func TestParsePathDataSmoothCubic(t *testing.T) {
	// S reflects the previous cubic's second control point. The reflected
	// control of c2=(10,10) about (10,0) is (10,-10).
	path, err := parsePathData("M 0 0 C 0 10 10 10 10 0 S 20 -10 20 0")
	if err != nil {
		t.Fatalf("parsePathData: %v", err)
	}
	var got geom.Point
	found := false
	for _, el := range path.Elements() {
		if c, ok := el.(geom.CubicTo); ok {
			got = c.Control1
			found = true
		}
	}
	if !found {
		t.Fatal("no cubic element parsed")
	}
	want := geom.Pt(10, -10)
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("reflected control = %+v, want %+v", got, want)
	}
}

func TestParsePathDataErrors(t *testing.T) {
	tests := []struct {
		name string
		d    string
	}{
		{"arc command", "M 0 0 A 5 5 0 0 1 10 10"},
		{"dangling coordinate", "M 0 0 L 10"},
		{"moveto without coordinates", "M"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parsePathData(tt.d); err == nil {
				t.Errorf("parsePathData(%q) succeeded, want error", tt.d)
			}
		})
	}
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		name string
		s    string
		in   geom.Point
		out  geom.Point
	}{
		{"empty", "", geom.Pt(3, 4), geom.Pt(3, 4)},
		{"translate", "translate(10,20)", geom.Pt(1, 1), geom.Pt(11, 21)},
		{"translate single arg", "translate(10)", geom.Pt(1, 1), geom.Pt(11, 1)},
		{"scale", "scale(2)", geom.Pt(3, 4), geom.Pt(6, 8)},
		{
			"engine flip",
			"translate(0.000000,40.000000) scale(0.100000,-0.100000)",
			geom.Pt(100, 100),
			geom.Pt(10, 30),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := parseTransform(tt.s)
			if err != nil {
				t.Fatalf("parseTransform(%q): %v", tt.s, err)
			}
			got := m.TransformPoint(tt.in)
			if math.Abs(got.X-tt.out.X) > 1e-9 || math.Abs(got.Y-tt.out.Y) > 1e-9 {
				t.Errorf("transform(%+v) = %+v, want %+v", tt.in, got, tt.out)
			}
		})
	}
}

func TestParseTransformErrors(t *testing.T) {
	for _, s := range []string{"rotate(45)", "translate(1,2,3)", "scale("} {
		t.Run(strings.Split(s, "(")[0], func(t *testing.T) {
			if _, err := parseTransform(s); err == nil {
				t.Errorf("parseTransform(%q) succeeded, want error", s)
			}
		})
	}
}

func rectNear(got, want geom.Rect, tol float64) bool {
	return math.Abs(got.Min.X-want.Min.X) <= tol &&
		math.Abs(got.Min.Y-want.Min.Y) <= tol &&
		math.Abs(got.Max.X-want.Max.X) <= tol &&
		math.Abs(got.Max.Y-want.Max.Y) <= tol
}
