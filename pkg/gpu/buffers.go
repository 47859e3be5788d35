package gpu

import (
	"fmt"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
	"github.com/nocis/vk-raytracing-tutorial/pkg/geometry"
)

// EncodeSpheres packs the primitive buffer
func EncodeSpheres(spheres []geometry.Sphere) []byte {
	buf := make([]byte, len(spheres)*SphereRecordSize)
	for i, s := range spheres {
		NewSphereRecord(s).MarshalTo(buf[i*SphereRecordSize:])
	}
	return buf
}

// DecodeSpheres unpacks a primitive buffer produced by EncodeSpheres
func DecodeSpheres(buf []byte) ([]geometry.Sphere, error) {
	if len(buf)%SphereRecordSize != 0 {
		return nil, fmt.Errorf("sphere buffer: length %d is not a multiple of %d", len(buf), SphereRecordSize)
	}

	spheres := make([]geometry.Sphere, len(buf)/SphereRecordSize)
	for i := range spheres {
		var r SphereRecord
		if err := r.Unmarshal(buf[i*SphereRecordSize:]); err != nil {
			return nil, err
		}
		spheres[i] = r.Sphere()
	}
	return spheres, nil
}

// EncodeAABBs packs the AABB buffer the acceleration structure is built from
func EncodeAABBs(boxes []core.AABB) []byte {
	buf := make([]byte, len(boxes)*AabbRecordSize)
	for i, box := range boxes {
		NewAabbRecord(box).MarshalTo(buf[i*AabbRecordSize:])
	}
	return buf
}

// DecodeAABBs unpacks an AABB buffer produced by EncodeAABBs
func DecodeAABBs(buf []byte) ([]core.AABB, error) {
	if len(buf)%AabbRecordSize != 0 {
		return nil, fmt.Errorf("aabb buffer: length %d is not a multiple of %d", len(buf), AabbRecordSize)
	}

	boxes := make([]core.AABB, len(buf)/AabbRecordSize)
	for i := range boxes {
		var r AabbRecord
		if err := r.Unmarshal(buf[i*AabbRecordSize:]); err != nil {
			return nil, err
		}
		boxes[i] = r.AABB()
	}
	return boxes, nil
}
