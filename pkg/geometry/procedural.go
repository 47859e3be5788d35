package geometry

import "github.com/nocis/vk-raytracing-tutorial/pkg/core"

// Report is what the intersection stage hands back to the host for one
// primitive: the hit distance and the kind tag.
type Report struct {
	T           float64
	Kind        HitKind
	PrimitiveID int
}

// Intersect runs the procedural intersection routine for one primitive.
// The primitive index selects the test (see KindForPrimitive); cubes are
// tested against the sphere's bounding box. A report is produced only for
// t > 0.
func Intersect(primitiveID int, s Sphere, ray core.Ray) (Report, bool) {
	kind := KindForPrimitive(primitiveID)

	var t float64
	switch kind {
	case KindSphere:
		t = IntersectSphere(s, ray)
	case KindCube:
		t = core.IntersectAABB(s.Bounds(), ray)
	}

	if t > 0 {
		return Report{T: t, Kind: kind, PrimitiveID: primitiveID}, true
	}
	return Report{}, false
}

// HitPoint reconstructs the world-space hit position from the ray and the
// reported distance
func HitPoint(ray core.Ray, t float64) core.Vec3 {
	return ray.At(t)
}

// Normal reconstructs the surface normal at hitPoint for a primitive
// centered at center. Spheres use the radial direction; cubes snap it to
// the dominant axis, checking x, then y, then z on ties.
// A hit point equal to the center is degenerate and yields a NaN or zero
// normal.
func Normal(kind HitKind, hitPoint, center core.Vec3) core.Vec3 {
	n := hitPoint.Subtract(center).Normalize()
	if kind != KindCube {
		return n
	}

	absN := n.Abs()
	maxC := absN.MaxComponent()
	switch {
	case maxC == absN.X:
		return core.NewVec3(sign(n.X), 0, 0)
	case maxC == absN.Y:
		return core.NewVec3(0, sign(n.Y), 0)
	default:
		return core.NewVec3(0, 0, sign(n.Z))
	}
}

// sign follows the GLSL definition: -1, 0 or 1
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
