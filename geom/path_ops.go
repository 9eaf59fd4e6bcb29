package geom

import "math"

// Path operations for signed area, winding number, bounding box computation,
// subpath handling, orientation reversal and flattening.

// Area returns the signed area enclosed by the path.
// The sign follows the shoelace convention: in a y-up coordinate system a
// counter-clockwise subpath has positive area; in a y-down (raster) system
// the same traversal order appears clockwise on screen.
// Uses the shoelace formula extended for curves (Green's theorem).
func (p *Path) Area() float64 {
	var area float64
	var current, start Point

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			start = e.Point
			current = e.Point
		case LineTo:
			area += lineArea(current, e.Point)
			current = e.Point
		case QuadTo:
			area += quadArea(current, e.Control, e.Point)
			current = e.Point
		case CubicTo:
			area += cubicArea(current, e.Control1, e.Control2, e.Point)
			current = e.Point
		case Close:
			area += lineArea(current, start)
			current = start
		}
	}

	return area
}

// lineArea computes the contribution of a line segment to the signed area.
// Uses the shoelace formula: 0.5 * (x0*y1 - x1*y0)
func lineArea(p0, p1 Point) float64 {
	return 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
}

// quadArea computes the contribution of a quadratic Bezier to the signed
// area via Green's theorem, following the same shoelace convention as
// lineArea. A control point on the chord midpoint reduces this to lineArea.
func quadArea(p0, p1, p2 Point) float64 {
	return (2*(p0.X*p1.Y-p1.X*p0.Y) +
		(p0.X*p2.Y-p2.X*p0.Y) +
		2*(p1.X*p2.Y-p2.X*p1.Y)) / 6.0
}

// cubicArea computes the contribution of a cubic Bezier to the signed area.
// Formula derived from the integral of x*dy for
// B(t) = (1-t)^3*P0 + 3*(1-t)^2*t*P1 + 3*(1-t)*t^2*P2 + t^3*P3.
func cubicArea(p0, p1, p2, p3 Point) float64 {
	return (p0.X*(6*p1.Y+3*p2.Y+p3.Y) +
		p1.X*(-6*p0.Y+3*p2.Y+3*p3.Y) +
		p2.X*(-3*p0.Y-3*p1.Y+6*p3.Y) +
		p3.X*(-p0.Y-3*p1.Y-6*p2.Y)) / 20.0
}

// Winding returns the winding number of a point relative to the path.
// 0 = outside, non-zero = inside (for the non-zero fill rule).
// Curves are flattened before the crossing test.
func (p *Path) Winding(pt Point) int {
	var winding int
	var prev Point
	first := true

	p.FlattenCallback(windingTolerance, func(q Point, moveTo bool) {
		if moveTo || first {
			prev = q
			first = false
			return
		}
		winding += lineWinding(prev, q, pt)
		prev = q
	})

	return winding
}

const windingTolerance = 0.1

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		// upward crossing
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		// downward crossing
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// Contains tests if a point is inside the path using the non-zero fill rule.
func (p *Path) Contains(pt Point) bool {
	return p.Winding(pt) != 0
}

// BoundingBox returns the axis-aligned bounding box of the path's control
// polygon. For line segments the box is tight; for Bezier segments it may
// slightly overestimate since control points can lie outside the curve.
func (p *Path) BoundingBox() Rect {
	if len(p.elements) == 0 {
		return Rect{}
	}

	bbox := Rect{
		Min: Point{X: math.MaxFloat64, Y: math.MaxFloat64},
		Max: Point{X: -math.MaxFloat64, Y: -math.MaxFloat64},
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			bbox = expandBBox(bbox, e.Point)
		case LineTo:
			bbox = expandBBox(bbox, e.Point)
		case QuadTo:
			bbox = expandBBox(bbox, e.Control)
			bbox = expandBBox(bbox, e.Point)
		case CubicTo:
			bbox = expandBBox(bbox, e.Control1)
			bbox = expandBBox(bbox, e.Control2)
			bbox = expandBBox(bbox, e.Point)
		case Close:
			// no new points
		}
	}

	if bbox.Min.X == math.MaxFloat64 {
		return Rect{}
	}
	return bbox
}

// expandBBox expands the bounding box to include the point.
func expandBBox(bbox Rect, pt Point) Rect {
	return Rect{
		Min: Point{X: math.Min(bbox.Min.X, pt.X), Y: math.Min(bbox.Min.Y, pt.Y)},
		Max: Point{X: math.Max(bbox.Max.X, pt.X), Y: math.Max(bbox.Max.Y, pt.Y)},
	}
}

// Subpaths splits the path into its subpaths. Each returned path starts with
// a MoveTo. Elements preceding the first MoveTo are dropped.
func (p *Path) Subpaths() []*Path {
	var result []*Path
	var cur *Path

	for _, elem := range p.elements {
		if mt, ok := elem.(MoveTo); ok {
			cur = NewPath()
			cur.MoveTo(mt.Point.X, mt.Point.Y)
			result = append(result, cur)
			continue
		}
		if cur == nil {
			continue
		}
		switch e := elem.(type) {
		case LineTo:
			cur.LineTo(e.Point.X, e.Point.Y)
		case QuadTo:
			cur.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case CubicTo:
			cur.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case Close:
			cur.Close()
		}
	}

	return result
}

// Append appends all subpaths of other to p.
func (p *Path) Append(other *Path) {
	p.elements = append(p.elements, other.elements...)
	p.start = other.start
	p.current = other.current
}

// Reverse returns the path with the traversal direction of every subpath
// reversed. Closed subpaths stay closed; curve control points swap so the
// geometry is unchanged.
func (p *Path) Reverse() *Path {
	result := NewPath()
	for _, sub := range p.Subpaths() {
		reverseSubpath(sub, result)
	}
	return result
}

// segment is one drawing command with its resolved start point, used while
// reversing a subpath.
type segment struct {
	elem PathElement
	from Point
}

func reverseSubpath(sub *Path, out *Path) {
	elems := sub.elements
	if len(elems) == 0 {
		return
	}

	start, ok := elems[0].(MoveTo)
	if !ok {
		return
	}

	var segs []segment
	closed := false
	current := start.Point

	for _, elem := range elems[1:] {
		switch e := elem.(type) {
		case LineTo:
			segs = append(segs, segment{elem: e, from: current})
			current = e.Point
		case QuadTo:
			segs = append(segs, segment{elem: e, from: current})
			current = e.Point
		case CubicTo:
			segs = append(segs, segment{elem: e, from: current})
			current = e.Point
		case Close:
			closed = true
		}
	}

	// A closed subpath has an implicit segment back to the start point.
	if closed && current != start.Point {
		segs = append(segs, segment{elem: LineTo{Point: start.Point}, from: current})
		current = start.Point
	}

	out.MoveTo(current.X, current.Y)
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		switch e := s.elem.(type) {
		case LineTo:
			out.LineTo(s.from.X, s.from.Y)
		case QuadTo:
			out.QuadraticTo(e.Control.X, e.Control.Y, s.from.X, s.from.Y)
		case CubicTo:
			out.CubicTo(e.Control2.X, e.Control2.Y, e.Control1.X, e.Control1.Y, s.from.X, s.from.Y)
		}
	}
	if closed {
		out.Close()
	}
}

// FlattenCallback approximates the path with line segments and calls fn for
// each resulting point. moveTo is true when the point starts a new subpath.
// tolerance is the maximum allowed distance between curve and approximation.
func (p *Path) FlattenCallback(tolerance float64, fn func(pt Point, moveTo bool)) {
	if tolerance <= 0 {
		tolerance = 0.1
	}

	var current, start Point

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			fn(e.Point, true)
			current = e.Point
			start = e.Point
		case LineTo:
			fn(e.Point, false)
			current = e.Point
		case QuadTo:
			flattenQuad(current, e.Control, e.Point, tolerance, fn)
			current = e.Point
		case CubicTo:
			flattenCubic(current, e.Control1, e.Control2, e.Point, tolerance, fn)
			current = e.Point
		case Close:
			if current != start {
				fn(start, false)
			}
			current = start
		}
	}
}

// flattenQuad subdivides a quadratic Bezier until flat enough, emitting the
// intermediate and final points (not the start point).
func flattenQuad(p0, p1, p2 Point, tolerance float64, fn func(pt Point, moveTo bool)) {
	if quadFlatness(p0, p1, p2) <= tolerance {
		fn(p2, false)
		return
	}
	// de Casteljau split at t = 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	mid := q0.Lerp(q1, 0.5)
	flattenQuad(p0, q0, mid, tolerance, fn)
	flattenQuad(mid, q1, p2, tolerance, fn)
}

// flattenCubic subdivides a cubic Bezier until flat enough.
func flattenCubic(p0, p1, p2, p3 Point, tolerance float64, fn func(pt Point, moveTo bool)) {
	if cubicFlatness(p0, p1, p2, p3) <= tolerance {
		fn(p3, false)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	mid := r0.Lerp(r1, 0.5)
	flattenCubic(p0, q0, r0, mid, tolerance, fn)
	flattenCubic(mid, r1, q2, p3, tolerance, fn)
}

// quadFlatness measures the distance of the control point from the chord.
func quadFlatness(p0, p1, p2 Point) float64 {
	mid := p0.Lerp(p2, 0.5)
	return p1.Distance(mid)
}

// cubicFlatness measures the larger control-point deviation from the chord.
func cubicFlatness(p0, p1, p2, p3 Point) float64 {
	d1 := p1.Distance(p0.Lerp(p3, 1.0/3.0))
	d2 := p2.Distance(p0.Lerp(p3, 2.0/3.0))
	return math.Max(d1, d2)
}
