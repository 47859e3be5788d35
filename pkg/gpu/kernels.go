package gpu

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray32 is a ray in shader precision
type Ray32 struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// HitSphere32 is geometry.IntersectSphere evaluated in float32
func HitSphere32(s SphereRecord, r Ray32) float32 {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	b := 2.0 * oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return -1.0
	}
	return (-b - math32.Sqrt(discriminant)) / (2.0 * a)
}

// HitAabb32 is core.IntersectAABB evaluated in float32
func HitAabb32(box AabbRecord, r Ray32) float32 {
	var tmin, tmax [3]float32
	for i := 0; i < 3; i++ {
		invDir := 1.0 / r.Direction[i]
		tbot := invDir * (box.Min[i] - r.Origin[i])
		ttop := invDir * (box.Max[i] - r.Origin[i])
		tmin[i] = math32.Min(ttop, tbot)
		tmax[i] = math32.Max(ttop, tbot)
	}

	t0 := math32.Max(tmin[0], math32.Max(tmin[1], tmin[2]))
	t1 := math32.Min(tmax[0], math32.Min(tmax[1], tmax[2]))

	entry := math32.Max(t0, 0)
	if t1 > entry {
		return entry
	}
	return -1.0
}

// Intersect32 runs the procedural intersection routine in float32 and
// returns the distance and whether it would be reported
func Intersect32(primitiveID int, s SphereRecord, r Ray32) (float32, bool) {
	var t float32
	if primitiveID%2 == 0 {
		t = HitSphere32(s, r)
	} else {
		t = HitAabb32(s.Bounds(), r)
	}
	return t, t > 0
}
