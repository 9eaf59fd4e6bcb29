package geom

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// FlipY creates a matrix that mirrors the y axis. Composed with a
// translation it converts between raster coordinates (y-down) and
// design-space coordinates (y-up).
func FlipY() Matrix {
	return Scale(1, -1)
}

// Multiply multiplies two matrices (m * other). The combined matrix applies
// other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// FlipsOrientation reports whether the transformation mirrors the plane,
// reversing the traversal direction of closed paths. True exactly when the
// determinant of the linear part is negative.
func (m Matrix) FlipsOrientation() bool {
	return m.A*m.E-m.B*m.D < 0
}

// IsUniformScale reports whether the matrix scales x and y by the same
// magnitude (no shear, no rotation), within a small tolerance. Axis flips
// still count as uniform.
func (m Matrix) IsUniformScale() bool {
	const eps = 1e-9
	if math.Abs(m.B) > eps || math.Abs(m.D) > eps {
		return false
	}
	return math.Abs(math.Abs(m.A)-math.Abs(m.E)) <= eps
}
