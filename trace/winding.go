package trace

import "github.com/fontgrid/fontgrid/geom"

// Minimum absolute signed area (in square pixels) for a subpath to count as
// geometry. Anything smaller is tracing noise.
const minSubpathArea = 0.01

// Normalize rewrites subpath winding by nesting depth: subpaths at even
// depth (outer contours) get positive signed area in pixel space, subpaths
// at odd depth (holes) get negative. The result is deterministic regardless
// of the direction the engine emitted.
//
// Depth is counted by point containment. Traced contours never intersect
// each other, so testing a single vertex of each subpath against every other
// subpath is sufficient.
func Normalize(p RawPath) RawPath {
	out := make(RawPath, 0, len(p))
	for i, sub := range p {
		depth := 0
		probe, ok := firstVertex(sub)
		if !ok {
			continue
		}
		for j, other := range p {
			if j == i {
				continue
			}
			if other.Contains(probe) {
				depth++
			}
		}
		wantPositive := depth%2 == 0
		if (sub.Area() > 0) != wantPositive {
			sub = sub.Reverse()
		}
		out = append(out, sub)
	}
	return out
}

// StripDegenerate removes subpaths that enclose effectively no area.
func StripDegenerate(p RawPath) RawPath {
	out := make(RawPath, 0, len(p))
	for _, sub := range p {
		a := sub.Area()
		if a < 0 {
			a = -a
		}
		if a < minSubpathArea {
			continue
		}
		out = append(out, sub)
	}
	return out
}

// Clean strips degenerate subpaths and normalizes winding, in that order.
// Degenerates are dropped first so they cannot skew depth counting.
func Clean(p RawPath) RawPath {
	return Normalize(StripDegenerate(p))
}

func firstVertex(p *geom.Path) (geom.Point, bool) {
	for _, el := range p.Elements() {
		if mt, ok := el.(geom.MoveTo); ok {
			return mt.Point, true
		}
	}
	return geom.Point{}, false
}
