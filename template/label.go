package template

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// builtinFace returns the default bitmap face used for cell labels. It
// needs no font file and covers ASCII plus Latin-1, which includes the
// accented extension sets.
func builtinFace() font.Face {
	return basicfont.Face7x13
}

// LoadLabelFace parses TTF/OTF data and returns a face for cell labels at
// the given pixel size. Useful when the template should label cells in a
// specific typeface, or when the character set exceeds the builtin face's
// coverage.
func LoadLabelFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("template: parse label font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("template: create label face: %w", err)
	}
	return face, nil
}
