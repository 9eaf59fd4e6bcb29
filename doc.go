// Package fontgrid generates TrueType fonts from hand-drawn character grids.
//
// # Overview
//
// fontgrid prints a grid template, one labeled box per character. You draw
// the characters into the boxes, scan or photograph the sheet, and feed the
// image back in. The pipeline extracts each cell, traces the ink into vector
// outlines with potrace, normalizes them into font design space, and has
// FontForge compile the result into a TTF file.
//
// # Quick Start
//
//	import (
//		"github.com/fontgrid/fontgrid"
//		"github.com/fontgrid/fontgrid/config"
//		"github.com/fontgrid/fontgrid/layout"
//		"github.com/fontgrid/fontgrid/template"
//	)
//
//	// Render a blank template to fill in.
//	specs := layout.StandardSet()
//	grid := layout.DefaultGrid(len(specs), 10)
//	r, _ := template.NewRenderer(grid, specs)
//	r.WritePNG(f)
//
//	// Later: turn the filled-in scan into a font.
//	p, _ := fontgrid.New(grid, specs, config.Default())
//	report, err := p.Generate(ctx, scan, "MyHandwriting", "my.ttf")
//
// The potrace and fontforge binaries must be installed; both can be swapped
// out with WithTracer and WithCompiler, e.g. for testing.
//
// # Logging
//
// fontgrid is silent by default. Pass a logger to SetLogger to see pipeline
// progress and per-cell warnings.
package fontgrid
