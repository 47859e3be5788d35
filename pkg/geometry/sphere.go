package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
)

// ErrInvalidRadius is returned when a sphere radius is not strictly positive
var ErrInvalidRadius = errors.New("sphere radius must be positive")

// Sphere is one record of the procedural primitive buffer
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Validate checks the radius invariant
func (s Sphere) Validate() error {
	if !(s.Radius > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidRadius, s.Radius)
	}
	return nil
}

// Bounds returns the axis-aligned box (center-r, center+r). It is both the
// bounding volume handed to the acceleration structure and the geometry of
// the "cube" primitives.
func (s Sphere) Bounds() core.AABB {
	return core.NewAABBFromSphere(s.Center, s.Radius)
}

// IntersectSphere returns the smaller root of the ray/sphere quadratic, or
// core.NoHit if the discriminant is negative. The root may be negative when
// the sphere is behind the origin or contains it; callers filter that.
// The direction must be non-zero.
func IntersectSphere(s Sphere, ray core.Ray) float64 {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return core.NoHit
	}
	return (-b - math.Sqrt(discriminant)) / (2.0 * a)
}
