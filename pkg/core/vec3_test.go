package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if !v.Equals(NewVec3(0.6, 0, 0.8), 1e-12) {
		t.Errorf("Expected (0.6, 0, 0.8), got %v", v)
	}
}

func TestVec3_NormalizeZeroIsNaN(t *testing.T) {
	v := Vec3{}.Normalize()
	if !math.IsNaN(v.X) || !math.IsNaN(v.Y) || !math.IsNaN(v.Z) {
		t.Errorf("Expected NaN components for zero vector, got %v", v)
	}
}

func TestVec3_Inverse(t *testing.T) {
	inv := NewVec3(2, 0, -4).Inverse()
	if inv.X != 0.5 {
		t.Errorf("Expected 0.5, got %f", inv.X)
	}
	if !math.IsInf(inv.Y, 1) {
		t.Errorf("Expected +Inf for zero component, got %f", inv.Y)
	}
	if inv.Z != -0.25 {
		t.Errorf("Expected -0.25, got %f", inv.Z)
	}
}

func TestVec3_MinMaxComponents(t *testing.T) {
	a := NewVec3(1, 5, -2)
	b := NewVec3(3, -1, 0)

	if got := a.Min(b); got != NewVec3(1, -1, -2) {
		t.Errorf("Min: expected (1,-1,-2), got %v", got)
	}
	if got := a.Max(b); got != NewVec3(3, 5, 0) {
		t.Errorf("Max: expected (3,5,0), got %v", got)
	}
	if a.MinComponent() != -2 || a.MaxComponent() != 5 {
		t.Errorf("Expected components -2/5, got %f/%f", a.MinComponent(), a.MaxComponent())
	}
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, expected := range []float64{1, 2, 3} {
		if v.Axis(axis) != expected {
			t.Errorf("Axis %d: expected %f, got %f", axis, expected, v.Axis(axis))
		}
	}
}

func TestVec3_Reflect(t *testing.T) {
	incident := NewVec3(1, -1, 0)
	normal := NewVec3(0, 1, 0)

	reflected := incident.Reflect(normal)
	if !reflected.Equals(NewVec3(1, 1, 0), 1e-12) {
		t.Errorf("Expected (1,1,0), got %v", reflected)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 2, 0))
	if got := ray.At(1.5); !got.Equals(NewVec3(1, 3, 0), 1e-12) {
		t.Errorf("Expected (1,3,0), got %v", got)
	}
}
