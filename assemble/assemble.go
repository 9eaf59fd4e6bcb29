// Package assemble turns design-space glyphs into a font file. The font
// compiler itself is external (FontForge); this package prepares a complete
// glyph document for it, drives it, verifies its output and emits the file
// atomically, so a failed build never leaves a partial font behind.
package assemble

import (
	"context"
	"fmt"
	"strings"

	"github.com/fontgrid/fontgrid/config"
	"github.com/fontgrid/fontgrid/glyph"
	"github.com/fontgrid/fontgrid/layout"
)

// AssemblyError reports a font that cannot be built or verified.
type AssemblyError struct {
	Reason string
	// Missing lists characters the document lacks, when that is the reason.
	Missing []rune
}

func (e *AssemblyError) Error() string {
	if len(e.Missing) == 0 {
		return "assemble: " + e.Reason
	}
	chars := make([]string, len(e.Missing))
	for i, r := range e.Missing {
		chars[i] = fmt.Sprintf("%q", r)
	}
	return fmt.Sprintf("assemble: %s: %s", e.Reason, strings.Join(chars, ", "))
}

// Document is everything the compiler needs to build a font: identity,
// vertical metrics, and one glyph per character.
type Document struct {
	Name       string
	UnitsPerEm int
	Ascent     int
	Descent    int
	Glyphs     []glyph.Glyph
}

// NewDocument builds a document from font properties and glyphs. The glyph
// slice is used as is; call EnsureSpace and Validate before compiling.
func NewDocument(name string, font config.FontProperties, glyphs []glyph.Glyph) *Document {
	return &Document{
		Name:       name,
		UnitsPerEm: font.UnitsPerEm,
		Ascent:     font.Ascent,
		Descent:    font.Descent,
		Glyphs:     glyphs,
	}
}

// EnsureSpace adds the given whitespace glyph unless the document already
// maps U+0020. Every generated font carries a space, whether or not the
// character set includes one.
func (d *Document) EnsureSpace(space glyph.Glyph) {
	for _, g := range d.Glyphs {
		if g.Spec.Rune == ' ' {
			return
		}
	}
	d.Glyphs = append(d.Glyphs, space)
}

// Validate checks the document against the character set it is supposed to
// cover. Every spec must have a glyph (an empty one counts), no rune may
// appear twice, and the font identity must be plausible.
func (d *Document) Validate(specs []layout.CharacterSpec) error {
	if d.Name == "" {
		return &AssemblyError{Reason: "font name is empty"}
	}
	if d.UnitsPerEm <= 0 {
		return &AssemblyError{Reason: fmt.Sprintf("units per em %d must be positive", d.UnitsPerEm)}
	}

	seen := make(map[rune]bool, len(d.Glyphs))
	for _, g := range d.Glyphs {
		if seen[g.Spec.Rune] {
			return &AssemblyError{Reason: fmt.Sprintf("duplicate glyph for %q", g.Spec.Rune)}
		}
		seen[g.Spec.Rune] = true
		if g.Metrics.Advance <= 0 {
			return &AssemblyError{Reason: fmt.Sprintf("glyph %q has non-positive advance %d", g.Spec.Rune, g.Metrics.Advance)}
		}
	}

	var missing []rune
	for _, spec := range specs {
		if !seen[spec.Rune] {
			missing = append(missing, spec.Rune)
		}
	}
	if len(missing) > 0 {
		return &AssemblyError{Reason: "characters without glyphs", Missing: missing}
	}
	return nil
}

// Compiler builds a font file from a document. Compile must be atomic: on
// any error, nothing may exist at outPath afterwards that was not there
// before.
type Compiler interface {
	Compile(ctx context.Context, doc *Document, outPath string) error
}
