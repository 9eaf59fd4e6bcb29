// Command fontgrid prints grid templates and turns filled-in scans into
// TrueType fonts.
//
// Usage:
//
//	fontgrid template [-columns N] [-extended] [-svg out.svg] [-png out.png]
//	fontgrid generate [-config cfg.json] [-columns N] [-extended] [-workers N]
//	    [-preview sheet.png] [-v] -in scan.png -name FontName -out font.ttf
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/fontgrid/fontgrid"
	"github.com/fontgrid/fontgrid/config"
	"github.com/fontgrid/fontgrid/layout"
	"github.com/fontgrid/fontgrid/preview"
	"github.com/fontgrid/fontgrid/template"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "template":
		runTemplate(os.Args[2:])
	case "generate":
		runGenerate(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fontgrid template|generate [options]")
	os.Exit(2)
}

func characterSet(extended bool) []layout.CharacterSpec {
	if !extended {
		return layout.StandardSet()
	}
	specs, err := layout.NewCharacterSet(append(layout.StandardRunes(), layout.LatinExtendedRunes...))
	if err != nil {
		log.Fatalf("Failed to build character set: %v", err)
	}
	return specs
}

func runTemplate(args []string) {
	fs := flag.NewFlagSet("template", flag.ExitOnError)
	var (
		columns  = fs.Int("columns", 10, "cells per row")
		extended = fs.Bool("extended", false, "include accented Latin characters")
		svgOut   = fs.String("svg", "", "write the template as SVG to this file")
		pngOut   = fs.String("png", "template.png", "write the template as PNG to this file")
	)
	fs.Parse(args)

	specs := characterSet(*extended)
	grid := layout.DefaultGrid(len(specs), *columns)
	r, err := template.NewRenderer(grid, specs)
	if err != nil {
		log.Fatalf("Failed to lay out template: %v", err)
	}

	if *svgOut != "" {
		writeFile(*svgOut, r.RenderSVG)
		log.Printf("Template saved to %s", *svgOut)
	}
	if *pngOut != "" {
		writeFile(*pngOut, r.WritePNG)
		log.Printf("Template saved to %s (%d cells)", *pngOut, len(specs))
	}
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		in       = fs.String("in", "", "filled-in template image (PNG or JPEG)")
		name     = fs.String("name", "", "font name")
		out      = fs.String("out", "", "output font file")
		cfgPath  = fs.String("config", "", "JSON configuration file (defaults built in)")
		columns  = fs.Int("columns", 10, "cells per row, must match the printed template")
		extended = fs.Bool("extended", false, "template includes accented Latin characters")
		workers  = fs.Int("workers", 0, "concurrent trace workers (0 = number of CPUs)")
		sheet    = fs.String("preview", "", "also write a specimen sheet PNG to this file")
		verbose  = fs.Bool("v", false, "log pipeline progress to stderr")
	)
	fs.Parse(args)

	if *in == "" || *name == "" || *out == "" {
		log.Fatal("generate requires -in, -name and -out")
	}
	if *verbose {
		fontgrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	cfg := config.Default()
	if *cfgPath != "" {
		f, err := os.Open(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to open configuration: %v", err)
		}
		cfg, err = config.Load(f)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("Failed to open scan: %v", err)
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to decode scan: %v", err)
	}

	specs := characterSet(*extended)
	grid := layout.DefaultGrid(len(specs), *columns)

	var opts []fontgrid.Option
	if *workers > 0 {
		opts = append(opts, fontgrid.WithWorkers(*workers))
	}
	p, err := fontgrid.New(grid, specs, cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	report, err := p.Generate(context.Background(), src, *name, *out)
	if err != nil {
		log.Fatalf("Failed to generate font: %v", err)
	}
	log.Printf("Font saved to %s (%d drawn, %d empty, %d failed)",
		*out, report.Drawn, report.Empty, report.Failed)

	if *sheet != "" {
		r := preview.NewRenderer(cfg.Font)
		writeFile(*sheet, func(w io.Writer) error {
			return r.WritePNG(w, report.Glyphs)
		})
		log.Printf("Specimen sheet saved to %s", *sheet)
	}
}

func writeFile(path string, render func(io.Writer) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
}
