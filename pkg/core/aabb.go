package core

import "math"

// NoHit is returned by the closed-form intersection routines when the ray
// does not intersect the primitive. Callers treat it as "nothing to report".
const NoHit = -1.0

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromSphere returns the box (center-r, center+r) enclosing a sphere
func NewAABBFromSphere(center Vec3, radius float64) AABB {
	r := Splat(radius)
	return AABB{Min: center.Subtract(r), Max: center.Add(r)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]
	for _, point := range points[1:] {
		min = min.Min(point)
		max = max.Max(point)
	}

	return AABB{Min: min, Max: max}
}

// IntersectAABB returns the entry distance of ray into box using the slab
// method, or NoHit when the ray misses the box or the box lies entirely
// behind the origin. A ray starting inside the box returns 0.
//
// Zero direction components are not special-cased: 1/0 gives ±Inf and the
// min/max reductions below carry it through. A parallel ray whose origin
// sits exactly on a slab plane produces 0*Inf = NaN, which poisons t0 and
// makes the final comparison fail, so that case reports NoHit.
func IntersectAABB(box AABB, ray Ray) float64 {
	invDir := ray.Direction.Inverse()
	tbot := invDir.MultiplyVec(box.Min.Subtract(ray.Origin))
	ttop := invDir.MultiplyVec(box.Max.Subtract(ray.Origin))

	tmin := ttop.Min(tbot)
	tmax := ttop.Max(tbot)

	t0 := tmin.MaxComponent()
	t1 := tmax.MinComponent()

	entry := math.Max(t0, 0)
	if t1 > entry {
		return entry
	}
	return NoHit
}

// Hit tests if a ray overlaps this AABB within [tMin, tMax] using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Axis(axis)
		max := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Handle parallel rays (direction near zero)
		if math.Abs(direction) < 1e-8 {
			if origin < min || origin > max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Contains reports whether point lies inside or on the box
func (aabb AABB) Contains(point Vec3) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := Splat(amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}
