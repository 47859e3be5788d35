package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func unitBox() AABB {
	return NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
}

func TestIntersectAABB(t *testing.T) {
	tests := []struct {
		name     string
		ray      Ray
		expected float64
	}{
		{
			name:     "hit from outside",
			ray:      NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)),
			expected: 4,
		},
		{
			name:     "unnormalized direction scales t",
			ray:      NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 2)),
			expected: 2,
		},
		{
			name:     "diagonal hit",
			ray:      NewRay(NewVec3(-3, -3, -3), NewVec3(1, 1, 1)),
			expected: 2,
		},
		{
			name:     "origin inside clamps to zero",
			ray:      NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1)),
			expected: 0,
		},
		{
			name:     "origin inside off center",
			ray:      NewRay(NewVec3(0.5, -0.25, 0.9), NewVec3(-1, 0.3, 0.2)),
			expected: 0,
		},
		{
			name:     "parallel miss",
			ray:      NewRay(NewVec3(0, 5, -5), NewVec3(0, 0, 1)),
			expected: NoHit,
		},
		{
			name:     "oblique miss",
			ray:      NewRay(NewVec3(-5, 3, 0), NewVec3(1, 0, 0.1)),
			expected: NoHit,
		},
		{
			name:     "box behind origin",
			ray:      NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)),
			expected: NoHit,
		},
		{
			name:     "parallel origin on slab plane",
			ray:      NewRay(NewVec3(1, 0, -5), NewVec3(0, 0, 1)),
			expected: NoHit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, IntersectAABB(unitBox(), tt.ray), 1e-9)
		})
	}
}

func TestIntersectAABB_NegativeZeroDirection(t *testing.T) {
	// -0 gives -Inf on the parallel axis; the result must match +0.
	pos := IntersectAABB(unitBox(), NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)))
	neg := IntersectAABB(unitBox(), NewRay(NewVec3(0, 0, -5), NewVec3(math.Copysign(0, -1), 0, 1)))
	assert.Equal(t, pos, neg)
}

func TestIntersectAABB_NeverNegative(t *testing.T) {
	origins := []Vec3{
		NewVec3(0, 0, 0), NewVec3(-3, 0, 0), NewVec3(0.9, 0.9, 0.9), NewVec3(2, -2, 7),
	}
	directions := []Vec3{
		NewVec3(1, 0, 0), NewVec3(-1, 0.5, 0), NewVec3(0, 0, -1), NewVec3(0.3, -0.2, 0.9),
	}
	for _, o := range origins {
		for _, d := range directions {
			got := IntersectAABB(unitBox(), NewRay(o, d))
			assert.True(t, got == NoHit || got >= 0, "origin %v dir %v gave %f", o, d, got)
		}
	}
}

func TestAABB_Hit(t *testing.T) {
	box := unitBox()
	ray := NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1))

	assert.True(t, box.Hit(ray, 0, 100))
	assert.False(t, box.Hit(ray, 0, 3.5), "interval ends before the box")
	assert.False(t, box.Hit(ray, 6.5, 100), "interval starts after the box")
}

func TestNewAABBFromSphere(t *testing.T) {
	box := NewAABBFromSphere(NewVec3(1, 2, 3), 0.5)
	assert.Equal(t, NewVec3(0.5, 1.5, 2.5), box.Min)
	assert.Equal(t, NewVec3(1.5, 2.5, 3.5), box.Max)
	assert.True(t, box.IsValid())
	assert.Equal(t, NewVec3(1, 2, 3), box.Center())
}

func TestAABB_UnionAndPoints(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 0.5), NewVec3(0.5, 2, 0.5))
	u := a.Union(b)

	assert.Equal(t, NewVec3(-1, 0, 0), u.Min)
	assert.Equal(t, NewVec3(1, 2, 1), u.Max)

	fromPoints := NewAABBFromPoints(NewVec3(1, -1, 0), NewVec3(-2, 3, 4))
	assert.Equal(t, NewVec3(-2, -1, 0), fromPoints.Min)
	assert.Equal(t, NewVec3(1, 3, 4), fromPoints.Max)
	assert.True(t, fromPoints.Contains(NewVec3(0, 0, 2)))
	assert.False(t, fromPoints.Contains(NewVec3(0, 0, 5)))
}
