package scene

import (
	"fmt"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
	"github.com/nocis/vk-raytracing-tutorial/pkg/geometry"
	"github.com/nocis/vk-raytracing-tutorial/pkg/material"
)

// Scene holds the primitive buffer and everything derived from it. It is
// built once and then only read, so it can be shared between goroutines.
type Scene struct {
	Spheres       []geometry.Sphere    // Primitive buffer, indexed by primitive ID
	AABBs         []core.AABB          // Per-primitive bounds the acceleration structure is built from
	Materials     []material.WaveFront // Material table
	MaterialIndex []int                // Material of each primitive
}

// Options controls procedural scene generation
type Options struct {
	SphereCount int
	Seed        uint64
}

// DefaultMaterials returns the two materials of the sample scene: cyan for
// even primitives, yellow for odd ones
func DefaultMaterials() []material.WaveFront {
	return []material.WaveFront{
		material.NewDiffuse(core.NewVec3(0, 1, 1)),
		material.NewDiffuse(core.NewVec3(1, 1, 0)),
	}
}

// NewProceduralScene generates a random sphere field and its derived buffers
func NewProceduralScene(opts Options) (*Scene, error) {
	if opts.SphereCount <= 0 {
		return nil, fmt.Errorf("sphere count must be positive, got %d", opts.SphereCount)
	}
	return NewScene(GenerateSpheres(opts.SphereCount, opts.Seed))
}

// NewScene builds a scene around an existing primitive buffer using the
// default materials
func NewScene(spheres []geometry.Sphere) (*Scene, error) {
	for i, s := range spheres {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
	}

	s := &Scene{
		Spheres:       spheres,
		AABBs:         make([]core.AABB, len(spheres)),
		Materials:     DefaultMaterials(),
		MaterialIndex: make([]int, len(spheres)),
	}
	for i, sphere := range spheres {
		s.AABBs[i] = sphere.Bounds()
		s.MaterialIndex[i] = i % 2
	}
	return s, nil
}

// PrimitiveCount returns the number of procedural primitives
func (s *Scene) PrimitiveCount() int {
	return len(s.Spheres)
}

// MaterialFor returns the material of a primitive
func (s *Scene) MaterialFor(primitiveID int) material.WaveFront {
	return s.Materials[s.MaterialIndex[primitiveID]]
}

// Bounds returns the box enclosing every primitive
func (s *Scene) Bounds() core.AABB {
	if len(s.AABBs) == 0 {
		return core.AABB{}
	}
	bounds := s.AABBs[0]
	for _, box := range s.AABBs[1:] {
		bounds = bounds.Union(box)
	}
	return bounds
}
