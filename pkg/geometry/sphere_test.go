package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
)

func TestIntersectSphere_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 5), core.NewVec3(0, 0, -1))

	if got := IntersectSphere(sphere, ray); got != core.NoHit {
		t.Errorf("Expected miss (-1), got t=%f", got)
	}
}

func TestIntersectSphere_DistanceMinusRadius(t *testing.T) {
	tests := []struct {
		name   string
		center core.Vec3
		radius float64
		origin core.Vec3
	}{
		{"unit sphere along z", core.NewVec3(0, 0, 0), 1.0, core.NewVec3(0, 0, 5)},
		{"offset sphere", core.NewVec3(3, -2, 1), 0.5, core.NewVec3(-4, 6, 2)},
		{"small far sphere", core.NewVec3(10, 10, 10), 0.05, core.NewVec3(0, 0, 0)},
		{"large sphere", core.NewVec3(0, 6, 0), 4, core.NewVec3(0, 6, -20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius)
			toCenter := tt.center.Subtract(tt.origin)
			ray := core.NewRay(tt.origin, toCenter.Normalize())

			expected := toCenter.Length() - tt.radius
			got := IntersectSphere(sphere, ray)
			if math.Abs(got-expected) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", expected, got)
			}
		})
	}
}

func TestIntersectSphere_Roots(t *testing.T) {
	tests := []struct {
		name      string
		radius    float64
		origin    core.Vec3
		direction core.Vec3
		expectedT float64
	}{
		{
			name:      "unnormalized direction halves t",
			radius:    1,
			origin:    core.NewVec3(0, 0, 5),
			direction: core.NewVec3(0, 0, -2),
			expectedT: 2,
		},
		{
			name:      "tangent ray",
			radius:    1,
			origin:    core.NewVec3(1, 0, 5),
			direction: core.NewVec3(0, 0, -1),
			expectedT: 5,
		},
		{
			name:      "origin inside returns negative smaller root",
			radius:    2,
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(0, 0, 1),
			expectedT: -2,
		},
		{
			name:      "sphere behind origin returns negative root",
			radius:    1,
			origin:    core.NewVec3(0, 0, 5),
			direction: core.NewVec3(0, 0, 1),
			expectedT: -6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.Vec3{}, tt.radius)
			got := IntersectSphere(sphere, core.NewRay(tt.origin, tt.direction))
			if math.Abs(got-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, got)
			}
		})
	}
}

func TestSphere_Validate(t *testing.T) {
	if err := NewSphere(core.Vec3{}, 0.1).Validate(); err != nil {
		t.Errorf("Expected valid sphere, got %v", err)
	}
	for _, r := range []float64{0, -1, math.NaN()} {
		err := NewSphere(core.Vec3{}, r).Validate()
		if !errors.Is(err, ErrInvalidRadius) {
			t.Errorf("radius %v: expected ErrInvalidRadius, got %v", r, err)
		}
	}
}

func TestSphere_Bounds(t *testing.T) {
	box := NewSphere(core.NewVec3(1, 2, 3), 0.5).Bounds()
	if !box.Min.Equals(core.NewVec3(0.5, 1.5, 2.5), 0) || !box.Max.Equals(core.NewVec3(1.5, 2.5, 3.5), 0) {
		t.Errorf("Unexpected bounds %v", box)
	}
}
