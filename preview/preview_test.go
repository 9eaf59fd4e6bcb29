package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/fontgrid/fontgrid/config"
	"github.com/fontgrid/fontgrid/geom"
	"github.com/fontgrid/fontgrid/glyph"
	"github.com/fontgrid/fontgrid/layout"
	"github.com/fontgrid/fontgrid/trace"
)

func testGlyphs(t *testing.T, drawn string, empty string) []glyph.Glyph {
	t.Helper()
	specs, err := layout.NewCharacterSet([]rune(drawn + empty))
	if err != nil {
		t.Fatalf("NewCharacterSet: %v", err)
	}
	n := glyph.NewNormalizer(config.Default())
	out := make([]glyph.Glyph, 0, len(specs))
	for i, spec := range specs {
		var raw trace.RawPath
		if i < len([]rune(drawn)) {
			sq := geom.NewPath()
			sq.MoveTo(20, 20)
			sq.LineTo(170, 20)
			sq.LineTo(170, 170)
			sq.LineTo(20, 170)
			sq.Close()
			raw = trace.RawPath{sq}
		}
		out = append(out, n.Normalize(spec, raw))
	}
	return out
}

func TestRenderInkPlacement(t *testing.T) {
	glyphs := testGlyphs(t, "A", "B")
	r := NewRenderer(config.Default().Font, WithColumns(2), WithPixelsPerEm(100))
	img := r.Render(glyphs)

	if got, want := img.Bounds().Dx(), 200; got != want {
		t.Fatalf("sheet width = %d, want %d", got, want)
	}
	if got, want := img.Bounds().Dy(), 100; got != want {
		t.Fatalf("sheet height = %d, want %d", got, want)
	}

	// Count dark pixels per tile: the drawn glyph must have ink, the empty
	// one only its baseline rule (which is light gray, not ink).
	countInk := func(x0 int) int {
		n := 0
		for y := 0; y < 100; y++ {
			for x := x0; x < x0+100; x++ {
				if img.GrayAt(x, y).Y < 128 {
					n++
				}
			}
		}
		return n
	}
	if countInk(0) == 0 {
		t.Error("drawn glyph rendered no ink")
	}
	if countInk(100) != 0 {
		t.Error("empty glyph rendered ink")
	}
}

func TestRenderInkAboveBaseline(t *testing.T) {
	glyphs := testGlyphs(t, "A", "")
	r := NewRenderer(config.Default().Font, WithColumns(1), WithPixelsPerEm(100))
	img := r.Render(glyphs)

	// Ascent 800 of 1000 units puts the baseline at y=80. An uppercase glyph
	// sits on the baseline, so no ink below it.
	baseline := 80
	for y := baseline + 1; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if img.GrayAt(x, y).Y < 128 {
				t.Fatalf("ink below the baseline at (%d,%d)", x, y)
			}
		}
	}
	found := false
	for y := 0; y < baseline; y++ {
		for x := 0; x < 100; x++ {
			if img.GrayAt(x, y).Y < 128 {
				found = true
			}
		}
	}
	if !found {
		t.Error("no ink above the baseline")
	}
}

func TestWritePNG(t *testing.T) {
	glyphs := testGlyphs(t, "AB", "C")
	r := NewRenderer(config.Default().Font, WithPixelsPerEm(64))

	var buf bytes.Buffer
	if err := r.WritePNG(&buf, glyphs); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 3*64 {
		t.Errorf("decoded width = %d, want %d", img.Bounds().Dx(), 3*64)
	}
}
