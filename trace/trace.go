// Package trace adapts the external tracing engine: it feeds binarized cell
// bitmaps to the engine and turns the engine's vector output into clean
// outline paths in cell-local pixel coordinates.
//
// Cleaning is part of the adapter's contract: winding direction is
// normalized regardless of what the engine emitted, and degenerate subpaths
// are stripped. Inconsistent winding silently corrupts rendered glyphs, so
// it is never passed through.
package trace

import (
	"context"
	"fmt"

	"github.com/fontgrid/fontgrid/bitmap"
	"github.com/fontgrid/fontgrid/geom"
)

// RawPath is a traced outline: an ordered list of closed subpaths in the
// cell bitmap's pixel coordinate space (origin top-left, y-down). An empty
// RawPath is a valid result and stands for a blank cell.
type RawPath []*geom.Path

// IsEmpty reports whether the path contains no subpaths.
func (p RawPath) IsEmpty() bool {
	return len(p) == 0
}

// BoundingBox returns the union bounding box of all subpaths.
func (p RawPath) BoundingBox() geom.Rect {
	var bbox geom.Rect
	for _, sub := range p {
		bbox = bbox.Union(sub.BoundingBox())
	}
	return bbox
}

// Transform applies a matrix to every subpath, returning a new RawPath.
func (p RawPath) Transform(m geom.Matrix) RawPath {
	out := make(RawPath, len(p))
	for i, sub := range p {
		out[i] = sub.Transform(m)
	}
	return out
}

// Tracer converts a binarized bitmap into vector outlines. Implementations
// must return cleaned paths: normalized winding, no degenerate subpaths.
//
// A per-cell engine failure is reported as a *Failure error; callers degrade
// it to an empty RawPath instead of aborting, since a hand-drawn template
// legitimately has blank cells. Context cancellation is returned as the
// context's error and is fatal.
type Tracer interface {
	Trace(ctx context.Context, bm *bitmap.Bitmap) (RawPath, error)
}

// Failure is a non-fatal, per-cell tracing failure: the engine exited with
// an error or produced unusable output. Callers convert it to an empty glyph
// and continue.
type Failure struct {
	// Stage names the step that failed (run, parse, ...).
	Stage string
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("trace: %s: %v", f.Stage, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}
