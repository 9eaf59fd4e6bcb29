// Package config supplies the pipeline's read-only configuration: per-class
// scaling rules, glyph spacing, font-level properties and the tuning knobs
// for binarization and tracing. The pipeline never writes configuration.
//
// The zero value is not usable; start from Default and override, or load a
// JSON file with Load, which fills missing fields from the defaults.
package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fontgrid/fontgrid/layout"
)

// ClassSettings holds the normalization rules for one character class.
type ClassSettings struct {
	// ScaleFactor converts cell pixels to design units: a glyph whose ink
	// is w pixels wide becomes w*ScaleFactor design units wide.
	ScaleFactor float64 `json:"scale_factor"`

	// VerticalOffset is the design-space y of the glyph ink's bottom edge.
	// Zero places the glyph on the baseline; negative values extend below
	// it (descenders).
	VerticalOffset int `json:"vertical_offset"`
}

// Override adjusts ClassSettings for a single character. Nil fields keep the
// class value.
type Override struct {
	ScaleFactor    *float64 `json:"scale_factor,omitempty"`
	VerticalOffset *int     `json:"vertical_offset,omitempty"`
}

// ScaleConfig maps character classes to their normalization rules, with
// optional per-character overrides on top.
type ScaleConfig struct {
	Classes   map[string]ClassSettings `json:"classes"`
	Overrides map[string]Override      `json:"overrides,omitempty"`
}

// For resolves the effective settings for a character: its class settings
// with any per-character override applied.
func (sc ScaleConfig) For(spec layout.CharacterSpec) ClassSettings {
	s, ok := sc.Classes[spec.Class.String()]
	if !ok {
		s = ClassSettings{ScaleFactor: 1}
	}
	if ov, ok := sc.Overrides[string(spec.Rune)]; ok {
		if ov.ScaleFactor != nil {
			s.ScaleFactor = *ov.ScaleFactor
		}
		if ov.VerticalOffset != nil {
			s.VerticalOffset = *ov.VerticalOffset
		}
	}
	return s
}

// ClassSpacing holds the spacing rules for one character class, in design
// units.
type ClassSpacing struct {
	// LeftBearing and RightBearing are the whitespace reserved on either
	// side of a glyph's ink within its advance width.
	LeftBearing  int `json:"left_bearing"`
	RightBearing int `json:"right_bearing"`

	// EmptyAdvance is the advance width assigned to glyphs without ink, so
	// deliberately blank characters are not collapsed.
	EmptyAdvance int `json:"empty_advance"`
}

// Spacing maps character classes to their spacing rules. Classes without an
// entry use Default, keyed the same way as ScaleConfig.Classes.
type Spacing struct {
	Default ClassSpacing            `json:"default"`
	Classes map[string]ClassSpacing `json:"classes,omitempty"`

	// SpaceWidth is the advance of the space character the assembler always
	// adds.
	SpaceWidth int `json:"space_width"`
}

// For resolves the effective spacing for a character's class.
func (sp Spacing) For(spec layout.CharacterSpec) ClassSpacing {
	if s, ok := sp.Classes[spec.Class.String()]; ok {
		return s
	}
	return sp.Default
}

// FontProperties holds font-level metadata in design units.
type FontProperties struct {
	UnitsPerEm int `json:"units_per_em"`
	Ascent     int `json:"ascent"`
	Descent    int `json:"descent"`
}

// RasterSettings tunes region extraction.
type RasterSettings struct {
	// Threshold is the single global luminance cut: pixels strictly darker
	// count as ink. It is deliberately not adaptive per cell; faint strokes
	// under uneven lighting may be misclassified. Known limitation.
	Threshold uint8 `json:"threshold"`

	// Contrast is the enhancement factor applied before thresholding.
	Contrast float64 `json:"contrast_enhancement"`

	// SafetyMargin is added to the border thickness when insetting a cell,
	// to keep box-stroke antialiasing out of the trace.
	SafetyMargin int `json:"safety_margin"`

	// MinInkPixels is the minimum binarized ink count for a cell to be
	// considered drawn; below it the cell is reported empty.
	MinInkPixels int `json:"min_ink_pixels"`
}

// TraceSettings tunes the external tracing engine.
type TraceSettings struct {
	TurnPolicy   string  `json:"turnpolicy"`
	AlphaMax     float64 `json:"alphamax"`
	OptTolerance float64 `json:"opttolerance"`
}

// Config aggregates all pipeline configuration.
type Config struct {
	Scale   ScaleConfig    `json:"scale"`
	Spacing Spacing        `json:"spacing"`
	Font    FontProperties `json:"font"`
	Raster  RasterSettings `json:"raster"`
	Trace   TraceSettings  `json:"trace"`
}

// Default returns a fully populated configuration tuned for 200x200px cells
// and a 1000 units-per-em font.
func Default() Config {
	descender := -200
	commaDrop := -60
	return Config{
		Scale: ScaleConfig{
			Classes: map[string]ClassSettings{
				layout.Upper.String():  {ScaleFactor: 4.0, VerticalOffset: 0},
				layout.Lower.String():  {ScaleFactor: 3.2, VerticalOffset: 0},
				layout.Digit.String():  {ScaleFactor: 3.8, VerticalOffset: 0},
				layout.Symbol.String(): {ScaleFactor: 3.5, VerticalOffset: 0},
			},
			Overrides: map[string]Override{
				"g": {VerticalOffset: &descender},
				"j": {VerticalOffset: &descender},
				"p": {VerticalOffset: &descender},
				"q": {VerticalOffset: &descender},
				"y": {VerticalOffset: &descender},
				",": {VerticalOffset: &commaDrop},
				";": {VerticalOffset: &commaDrop},
			},
		},
		Spacing: Spacing{
			Default: ClassSpacing{
				LeftBearing:  25,
				RightBearing: 25,
				EmptyAdvance: 250,
			},
			SpaceWidth: 250,
		},
		Font: FontProperties{
			UnitsPerEm: 1000,
			Ascent:     800,
			Descent:    200,
		},
		Raster: RasterSettings{
			Threshold:    140,
			Contrast:     3.0,
			SafetyMargin: 2,
			MinInkPixels: 12,
		},
		Trace: TraceSettings{
			TurnPolicy:   "minority",
			AlphaMax:     1.0,
			OptTolerance: 0.2,
		},
	}
}

// Load reads a JSON configuration. Fields missing from the file keep their
// Default values. The result is validated.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := json.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot work
// with.
func (c Config) Validate() error {
	for name, s := range c.Scale.Classes {
		if s.ScaleFactor <= 0 {
			return fmt.Errorf("config: class %q scale factor %v must be positive", name, s.ScaleFactor)
		}
	}
	for char, ov := range c.Scale.Overrides {
		if ov.ScaleFactor != nil && *ov.ScaleFactor <= 0 {
			return fmt.Errorf("config: override for %q scale factor %v must be positive", char, *ov.ScaleFactor)
		}
	}
	if c.Font.UnitsPerEm <= 0 {
		return fmt.Errorf("config: units per em %d must be positive", c.Font.UnitsPerEm)
	}
	if c.Font.Ascent+c.Font.Descent != c.Font.UnitsPerEm {
		return fmt.Errorf("config: ascent %d + descent %d must equal units per em %d",
			c.Font.Ascent, c.Font.Descent, c.Font.UnitsPerEm)
	}
	if err := validateClassSpacing("default", c.Spacing.Default); err != nil {
		return err
	}
	for name, s := range c.Spacing.Classes {
		if err := validateClassSpacing(name, s); err != nil {
			return err
		}
	}
	if c.Spacing.SpaceWidth <= 0 {
		return fmt.Errorf("config: space width must be positive")
	}
	if c.Raster.Contrast <= 0 {
		return fmt.Errorf("config: contrast factor %v must be positive", c.Raster.Contrast)
	}
	return nil
}

func validateClassSpacing(name string, s ClassSpacing) error {
	if s.LeftBearing < 0 || s.RightBearing < 0 {
		return fmt.Errorf("config: %s spacing bearings must not be negative", name)
	}
	if s.EmptyAdvance <= 0 {
		return fmt.Errorf("config: %s spacing empty advance must be positive", name)
	}
	return nil
}
