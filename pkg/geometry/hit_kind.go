package geometry

import "fmt"

// HitKind is the tag reported together with an intersection distance.
// The numeric values are what the host pipeline receives as the hit kind
// and must not change.
type HitKind uint32

const (
	KindSphere HitKind = 0
	KindCube   HitKind = 1
)

// KindForPrimitive maps a primitive index to its kind: even indices are
// spheres, odd indices are cubes.
func KindForPrimitive(primitiveID int) HitKind {
	if primitiveID%2 == 0 {
		return KindSphere
	}
	return KindCube
}

func (k HitKind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindCube:
		return "cube"
	default:
		return fmt.Sprintf("HitKind(%d)", uint32(k))
	}
}
