package fontgrid

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"
	"sync"

	"github.com/fontgrid/fontgrid/assemble"
	"github.com/fontgrid/fontgrid/config"
	"github.com/fontgrid/fontgrid/extract"
	"github.com/fontgrid/fontgrid/glyph"
	"github.com/fontgrid/fontgrid/layout"
	"github.com/fontgrid/fontgrid/trace"
)

// Pipeline turns a scanned grid template into a font: it extracts the cell
// regions, traces them concurrently, normalizes the outlines into design
// space and hands the finished glyphs to the font compiler.
//
// A Pipeline is immutable after New and safe for concurrent use.
type Pipeline struct {
	grid       layout.GridLayout
	specs      []layout.CharacterSpec
	cfg        config.Config
	normalizer *glyph.Normalizer

	tracer   trace.Tracer
	compiler assemble.Compiler
	workers  int
	workDir  string
}

// Report summarizes a Generate run.
type Report struct {
	// Drawn is the number of cells that produced an outline.
	Drawn int
	// Empty is the number of blank cells, which became empty glyphs.
	Empty int
	// Failed is the number of cells whose trace failed and were replaced by
	// empty glyphs.
	Failed int
	// Glyphs holds the finished design-space glyphs in character set order,
	// ready for preview rendering.
	Glyphs []glyph.Glyph
}

// New creates a pipeline for one grid layout and character set. The layout
// and the configuration are validated once here; Generate can then be called
// any number of times.
func New(grid layout.GridLayout, specs []layout.CharacterSpec, cfg config.Config, opts ...Option) (*Pipeline, error) {
	if err := grid.Validate(len(specs)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		grid:       grid,
		specs:      specs,
		cfg:        cfg,
		normalizer: glyph.NewNormalizer(cfg),
		workers:    runtime.NumCPU(),
		workDir:    os.TempDir(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.tracer == nil {
		p.tracer = trace.NewPotrace(cfg.Trace, p.workDir)
	}
	if p.compiler == nil {
		p.compiler = assemble.NewFontForge(p.workDir)
	}
	return p, nil
}

// Generate builds a font from a filled-in template image and writes it to
// outPath. Cells that fail to trace become empty glyphs and are reported,
// never fatal; extraction and assembly problems abort the run, in which case
// nothing is written.
func (p *Pipeline) Generate(ctx context.Context, src image.Image, fontName, outPath string) (*Report, error) {
	log := Logger()

	extractor, err := extract.NewExtractor(p.grid, p.specs, p.cfg.Raster)
	if err != nil {
		return nil, err
	}
	cells, err := extractor.ExtractAll(src)
	if err != nil {
		return nil, err
	}
	log.Info("cells extracted", "total", len(cells))

	report, err := p.traceAll(ctx, cells)
	if err != nil {
		return nil, err
	}
	log.Info("cells traced",
		"drawn", report.Drawn, "empty", report.Empty, "failed", report.Failed)

	doc := assemble.NewDocument(fontName, p.cfg.Font, report.Glyphs)
	doc.EnsureSpace(p.normalizer.SpaceGlyph())
	if err := doc.Validate(p.specs); err != nil {
		return nil, err
	}
	if err := p.compiler.Compile(ctx, doc, outPath); err != nil {
		return nil, err
	}
	log.Info("font emitted", "name", fontName, "path", outPath, "glyphs", len(doc.Glyphs))
	return report, nil
}

// traceAll maps cells to glyphs with a bounded worker pool. Cell order is
// preserved. The first fatal error cancels the remaining work.
func (p *Pipeline) traceAll(ctx context.Context, cells []extract.Cell) (*Report, error) {
	log := Logger()

	workers := p.workers
	if workers > len(cells) {
		workers = len(cells)
	}
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		glyphs  = make([]glyph.Glyph, len(cells))
		failed  = make([]bool, len(cells))
		jobs    = make(chan int)
		wg      sync.WaitGroup
		errOnce sync.Once
		fatal   error
	)
	abort := func(err error) {
		errOnce.Do(func() {
			fatal = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				g, bad, err := p.traceCell(ctx, cells[i])
				if err != nil {
					abort(err)
					return
				}
				glyphs[i] = g
				failed[i] = bad
				if bad {
					log.Warn("cell failed to trace, emitting empty glyph",
						"character", cells[i].Spec.Describe())
				}
			}
		}()
	}

feed:
	for i := range cells {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if fatal != nil {
		return nil, fatal
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Glyphs: glyphs}
	for i, g := range glyphs {
		switch {
		case failed[i]:
			report.Failed++
		case g.Empty():
			report.Empty++
		default:
			report.Drawn++
		}
	}
	return report, nil
}

// traceCell produces the glyph for one cell. The bool result reports a
// contained tracing failure.
func (p *Pipeline) traceCell(ctx context.Context, cell extract.Cell) (glyph.Glyph, bool, error) {
	if cell.Empty() {
		return p.normalizer.Normalize(cell.Spec, nil), false, nil
	}
	raw, err := p.tracer.Trace(ctx, cell.Image)
	if err != nil {
		var failure *trace.Failure
		if errors.As(err, &failure) {
			return p.normalizer.Normalize(cell.Spec, nil), true, nil
		}
		return glyph.Glyph{}, false, fmt.Errorf("trace %s: %w", cell.Spec.Describe(), err)
	}
	return p.normalizer.Normalize(cell.Spec, raw), false, nil
}
