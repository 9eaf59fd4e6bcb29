package assemble

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-text/typesetting/font"
)

// Advance widths may be rounded by the compiler; anything beyond a unit of
// drift means the document was not honored.
const advanceTolerance = 1.0

// verifyFont parses a compiled font back and checks it against the document:
// it must parse, carry the document's units per em, map every glyph's
// codepoint, and reproduce the advance widths.
func verifyFont(data []byte, doc *Document) error {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return &AssemblyError{Reason: fmt.Sprintf("generated font does not parse: %v", err)}
	}

	if got := int(face.Upem()); got != doc.UnitsPerEm {
		return &AssemblyError{
			Reason: fmt.Sprintf("generated font has %d units per em, want %d", got, doc.UnitsPerEm),
		}
	}

	var missing []rune
	for _, g := range doc.Glyphs {
		gid, ok := face.NominalGlyph(g.Spec.Rune)
		if !ok {
			missing = append(missing, g.Spec.Rune)
			continue
		}
		adv := float64(face.HorizontalAdvance(gid))
		if math.Abs(adv-float64(g.Metrics.Advance)) > advanceTolerance {
			return &AssemblyError{
				Reason: fmt.Sprintf("glyph %q advance %v, want %d", g.Spec.Rune, adv, g.Metrics.Advance),
			}
		}
	}
	if len(missing) > 0 {
		return &AssemblyError{Reason: "generated font does not map", Missing: missing}
	}
	return nil
}
