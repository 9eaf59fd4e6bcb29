// Package layout defines the template grid model: which character occupies
// which cell, the cell geometry, and the character classes that drive
// per-class scaling downstream.
package layout

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/runenames"

	"github.com/fontgrid/fontgrid/geom"
)

// Class groups characters that share scaling and placement rules.
type Class int

const (
	// Upper is capital letters.
	Upper Class = iota
	// Lower is small letters.
	Lower
	// Digit is decimal digits.
	Digit
	// Symbol is punctuation and other marks.
	Symbol
)

// String returns the class name as used in configuration files.
func (c Class) String() string {
	switch c {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	case Digit:
		return "digit"
	case Symbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// CharacterSpec describes one character's place on the template.
// Specs are immutable once a character set is built.
type CharacterSpec struct {
	// Rune is the Unicode code point the cell's drawing will map to.
	Rune rune

	// Label is the text printed next to the cell on the template.
	Label string

	// Class selects the scaling/placement rules for this character.
	Class Class

	// CellIndex is the character's position in the grid, row-major.
	CellIndex int
}

// Describe returns a human-readable identification of the character,
// including its Unicode name, for logs and error messages.
func (s CharacterSpec) Describe() string {
	return fmt.Sprintf("cell %d U+%04X %q (%s)", s.CellIndex, s.Rune, string(s.Rune), runenames.Name(s.Rune))
}

// standardSymbols is the symbol repertoire of the standard set, in template
// order.
const standardSymbols = "!@#$%^&*()-_=+[]{}|\\;:\"'<>,./?`~"

// LatinExtendedRunes are optional additions for accented Latin text.
// They can be appended to the standard set via NewCharacterSet.
var LatinExtendedRunes = []rune("áéíóúüñÁÉÍÓÚÜÑ¿¡")

// StandardRunes returns the 94 runes of the standard character set:
// A-Z, a-z, 0-9 and ASCII symbols, in template order.
func StandardRunes() []rune {
	runes := make([]rune, 0, 94)
	for r := 'A'; r <= 'Z'; r++ {
		runes = append(runes, r)
	}
	for r := 'a'; r <= 'z'; r++ {
		runes = append(runes, r)
	}
	for r := '0'; r <= '9'; r++ {
		runes = append(runes, r)
	}
	runes = append(runes, []rune(standardSymbols)...)
	return runes
}

// StandardSet returns the standard 94-entry character set with cell indices
// assigned in template order.
func StandardSet() []CharacterSpec {
	specs, err := NewCharacterSet(StandardRunes())
	if err != nil {
		// The standard runes are fixed and duplicate-free.
		panic(err)
	}
	return specs
}

// NewCharacterSet builds a character set from the given runes, assigning
// cell indices in order. Runes must be unique.
func NewCharacterSet(runes []rune) ([]CharacterSpec, error) {
	seen := make(map[rune]bool, len(runes))
	specs := make([]CharacterSpec, 0, len(runes))
	for i, r := range runes {
		if seen[r] {
			return nil, &LayoutError{
				Reason: fmt.Sprintf("duplicate rune U+%04X %q in character set", r, string(r)),
			}
		}
		seen[r] = true
		specs = append(specs, CharacterSpec{
			Rune:      r,
			Label:     string(r),
			Class:     Classify(r),
			CellIndex: i,
		})
	}
	return specs, nil
}

// Classify maps a rune to its character class.
func Classify(r rune) Class {
	switch {
	case r >= '0' && r <= '9':
		return Digit
	case r >= 'A' && r <= 'Z':
		return Upper
	case r >= 'a' && r <= 'z':
		return Lower
	}
	// Non-ASCII letters (accented extensions) decide by Unicode category.
	if unicode.IsUpper(r) {
		return Upper
	}
	if unicode.IsLower(r) {
		return Lower
	}
	return Symbol
}

// cellRect is shared by CellFor and the template renderer so template
// rendering and extraction agree exactly on coordinates.
func cellRect(g GridLayout, index int) geom.Rect {
	row := index / g.Columns
	col := index % g.Columns
	x := float64(g.Margin + col*g.CellWidth)
	y := float64(g.Margin + row*g.CellHeight)
	return geom.Rect{
		Min: geom.Pt(x, y),
		Max: geom.Pt(x+float64(g.CellWidth), y+float64(g.CellHeight)),
	}
}
