package fontgrid

import (
	"github.com/fontgrid/fontgrid/assemble"
	"github.com/fontgrid/fontgrid/trace"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTracer replaces the outline tracer. The default shells out to the
// potrace binary.
func WithTracer(t trace.Tracer) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.tracer = t
		}
	}
}

// WithCompiler replaces the font compiler. The default shells out to the
// fontforge binary.
func WithCompiler(c assemble.Compiler) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.compiler = c
		}
	}
}

// WithWorkers sets how many cells are traced concurrently. The default is
// the number of CPUs.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithWorkDir sets the directory for intermediate files (engine inputs and
// outputs). The default is the system temporary directory.
func WithWorkDir(dir string) Option {
	return func(p *Pipeline) {
		if dir != "" {
			p.workDir = dir
		}
	}
}
