package geom

import (
	"math"
	"testing"
)

func TestMatrixMultiplyOrder(t *testing.T) {
	// Scale(2).Multiply(Translate(10, 0)) applies the translation first.
	m := Scale(2, 2).Multiply(Translate(10, 0))
	got := m.TransformPoint(Pt(1, 1))
	want := Pt(22, 2)
	if got != want {
		t.Errorf("TransformPoint = %+v, want %+v", got, want)
	}
}

func TestFlipsOrientation(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), false},
		{"translation", Translate(5, -3), false},
		{"uniform scale", Scale(4, 4), false},
		{"y flip", FlipY(), true},
		{"x flip", Scale(-1, 1), true},
		{"double flip", Scale(-1, -1), false},
		{"flip then scale", Scale(3, 3).Multiply(FlipY()), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.FlipsOrientation(); got != tt.want {
				t.Errorf("Matrix%+v.FlipsOrientation() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestIsUniformScale(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"uniform", Scale(2.5, 2.5), true},
		{"uniform with flip", Scale(2.5, -2.5), true},
		{"non-uniform", Scale(2, 3), false},
		{"translated uniform", Translate(7, 9).Multiply(Scale(4, 4)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsUniformScale(); got != tt.want {
				t.Errorf("Matrix%+v.IsUniformScale() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestFlipYMapsRasterToDesign(t *testing.T) {
	// A point 30px below the top of a 100px cell sits 70 units above the
	// bottom after flipping around the cell height.
	m := Translate(0, 100).Multiply(FlipY())
	got := m.TransformPoint(Pt(12, 30))
	want := Pt(12, 70)
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
		t.Errorf("flip transform = %+v, want %+v", got, want)
	}
}
