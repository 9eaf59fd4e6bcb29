package glyph

import (
	"math"
	"testing"

	"github.com/fontgrid/fontgrid/config"
	"github.com/fontgrid/fontgrid/geom"
	"github.com/fontgrid/fontgrid/layout"
	"github.com/fontgrid/fontgrid/trace"
)

// inkSquare is a pixel-space square contour with positive signed area, the
// orientation the tracer guarantees for outer contours.
func inkSquare(x, y, size float64) *geom.Path {
	p := geom.NewPath()
	p.MoveTo(x, y)
	p.LineTo(x+size, y)
	p.LineTo(x+size, y+size)
	p.LineTo(x, y+size)
	p.Close()
	return p
}

func mustSpec(t *testing.T, r rune) layout.CharacterSpec {
	t.Helper()
	for _, s := range layout.StandardSet() {
		if s.Rune == r {
			return s
		}
	}
	t.Fatalf("rune %q not in standard set", r)
	return layout.CharacterSpec{}
}

func TestNormalizeUppercase(t *testing.T) {
	n := NewNormalizer(config.Default())

	// 150x150px of ink anywhere in the cell; position within the cell must
	// not matter.
	raw := trace.RawPath{inkSquare(25, 30, 150)}
	g := n.Normalize(mustSpec(t, 'A'), raw)

	if g.Empty() {
		t.Fatal("glyph reported empty")
	}
	// Upper class scales 4.0: 150px -> 600 design units.
	if got, want := g.Metrics.Advance, 25+600+25; got != want {
		t.Errorf("advance = %d, want %d", got, want)
	}
	if g.Metrics.Advance != g.Metrics.LeftBearing+g.Metrics.InkWidth()+g.Metrics.RightBearing {
		t.Error("advance does not decompose into bearings plus ink width")
	}

	bbox := g.Outline.BoundingBox()
	if math.Abs(bbox.Min.X-25) > 1e-9 {
		t.Errorf("ink left edge = %v, want 25", bbox.Min.X)
	}
	if math.Abs(bbox.Min.Y-0) > 1e-9 {
		t.Errorf("ink bottom = %v, want baseline 0", bbox.Min.Y)
	}
	if math.Abs(bbox.Max.Y-600) > 1e-9 {
		t.Errorf("ink top = %v, want 600", bbox.Max.Y)
	}
}

func TestNormalizeClassScales(t *testing.T) {
	n := NewNormalizer(config.Default())
	tests := []struct {
		char      rune
		scale     float64
		wantBelow int // design units below the baseline
	}{
		{'A', 4.0, 0},
		{'x', 3.2, 0},
		{'7', 3.8, 0},
		{'%', 3.5, 0},
		{'g', 3.2, 200}, // descender override
		{',', 3.5, 60},
	}
	for _, tt := range tests {
		t.Run(string(tt.char), func(t *testing.T) {
			raw := trace.RawPath{inkSquare(10, 10, 100)}
			g := n.Normalize(mustSpec(t, tt.char), raw)

			bbox := g.Outline.BoundingBox()
			wantWidth := 100 * tt.scale
			if math.Abs(bbox.Width()-wantWidth) > 1e-9 {
				t.Errorf("ink width = %v, want %v", bbox.Width(), wantWidth)
			}
			if math.Abs(bbox.Height()-wantWidth) > 1e-9 {
				t.Errorf("ink height = %v, want %v (uniform scale)", bbox.Height(), wantWidth)
			}
			if math.Abs(bbox.Min.Y+float64(tt.wantBelow)) > 1e-9 {
				t.Errorf("ink bottom = %v, want %v", bbox.Min.Y, -tt.wantBelow)
			}
		})
	}
}

func TestNormalizeClassSpacing(t *testing.T) {
	cfg := config.Default()
	cfg.Spacing.Classes = map[string]config.ClassSpacing{
		layout.Lower.String(): {LeftBearing: 10, RightBearing: 40, EmptyAdvance: 180},
	}
	n := NewNormalizer(cfg)

	t.Run("class entry", func(t *testing.T) {
		g := n.Normalize(mustSpec(t, 'x'), trace.RawPath{inkSquare(10, 10, 100)})
		// Lower class scales 3.2: 100px -> 320 design units of ink.
		if got, want := g.Metrics, (Metrics{Advance: 10 + 320 + 40, LeftBearing: 10, RightBearing: 40}); got != want {
			t.Errorf("metrics = %+v, want %+v", got, want)
		}
		if left := g.Outline.BoundingBox().Min.X; math.Abs(left-10) > 1e-9 {
			t.Errorf("ink left edge = %v, want 10", left)
		}
	})

	t.Run("default fallback", func(t *testing.T) {
		g := n.Normalize(mustSpec(t, 'A'), trace.RawPath{inkSquare(10, 10, 100)})
		if got, want := g.Metrics, (Metrics{Advance: 25 + 400 + 25, LeftBearing: 25, RightBearing: 25}); got != want {
			t.Errorf("metrics = %+v, want %+v", got, want)
		}
	})

	t.Run("empty uses class advance", func(t *testing.T) {
		g := n.Normalize(mustSpec(t, 'x'), nil)
		if got, want := g.Metrics.Advance, 180; got != want {
			t.Errorf("empty advance = %d, want %d", got, want)
		}
	})
}

func TestNormalizeFlipsWinding(t *testing.T) {
	n := NewNormalizer(config.Default())
	raw := trace.RawPath{inkSquare(0, 0, 50)}
	if raw[0].Area() <= 0 {
		t.Fatal("test contour must start with positive area")
	}

	g := n.Normalize(mustSpec(t, 'A'), raw)
	if a := g.Outline[0].Area(); a >= 0 {
		t.Errorf("design-space outer contour area = %v, want negative (clockwise)", a)
	}
}

func TestNormalizePositionIndependent(t *testing.T) {
	n := NewNormalizer(config.Default())
	spec := mustSpec(t, 'A')

	a := n.Normalize(spec, trace.RawPath{inkSquare(0, 0, 80)})
	b := n.Normalize(spec, trace.RawPath{inkSquare(90, 40, 80)})

	if a.Metrics != b.Metrics {
		t.Errorf("metrics depend on cell position: %+v vs %+v", a.Metrics, b.Metrics)
	}
	ba, bb := a.Outline.BoundingBox(), b.Outline.BoundingBox()
	if math.Abs(ba.Min.X-bb.Min.X) > 1e-9 || math.Abs(ba.Min.Y-bb.Min.Y) > 1e-9 {
		t.Errorf("placement depends on cell position: %+v vs %+v", ba, bb)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	n := NewNormalizer(config.Default())
	spec := mustSpec(t, 'g')

	a := n.Normalize(spec, trace.RawPath{inkSquare(13, 27, 77)})
	b := n.Normalize(spec, trace.RawPath{inkSquare(13, 27, 77)})

	if a.Metrics != b.Metrics {
		t.Errorf("metrics differ between runs: %+v vs %+v", a.Metrics, b.Metrics)
	}
	ea, eb := a.Outline[0].Elements(), b.Outline[0].Elements()
	if len(ea) != len(eb) {
		t.Fatalf("element counts differ: %d vs %d", len(ea), len(eb))
	}
	for i := range ea {
		if ea[i] != eb[i] {
			t.Errorf("element %d differs: %+v vs %+v", i, ea[i], eb[i])
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	n := NewNormalizer(config.Default())
	g := n.Normalize(mustSpec(t, 'Q'), nil)

	if !g.Empty() {
		t.Fatal("glyph not reported empty")
	}
	if g.Metrics.Advance != config.Default().Spacing.Default.EmptyAdvance {
		t.Errorf("advance = %d, want %d", g.Metrics.Advance, config.Default().Spacing.Default.EmptyAdvance)
	}
	if g.Metrics.InkWidth() != 0 {
		t.Errorf("empty glyph ink width = %d, want 0", g.Metrics.InkWidth())
	}
}

func TestSpaceGlyph(t *testing.T) {
	n := NewNormalizer(config.Default())
	g := n.SpaceGlyph()

	if g.Spec.Rune != ' ' {
		t.Errorf("rune = %q, want space", g.Spec.Rune)
	}
	if !g.Empty() {
		t.Error("space glyph carries ink")
	}
	if g.Metrics.Advance != config.Default().Spacing.SpaceWidth {
		t.Errorf("advance = %d, want %d", g.Metrics.Advance, config.Default().Spacing.SpaceWidth)
	}
	if g.Metrics.InkWidth() != 0 {
		t.Errorf("ink width = %d, want 0", g.Metrics.InkWidth())
	}
}
