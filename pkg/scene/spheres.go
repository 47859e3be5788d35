package scene

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
	"github.com/nocis/vk-raytracing-tutorial/pkg/geometry"
)

// Distribution parameters of the sample sphere field
const (
	spreadXZ  = 5.0  // std deviation of x and z
	meanY     = 6.0  // mean height
	spreadY   = 3.0  // std deviation of y
	minRadius = 0.05 // radius lower bound
	maxRadius = 0.2  // radius upper bound
)

// GenerateSpheres returns count spheres with normally distributed centers
// and uniformly distributed radii. The same seed always gives the same field.
func GenerateSpheres(count int, seed uint64) []geometry.Sphere {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)

	xz := distuv.Normal{Mu: 0, Sigma: spreadXZ, Src: src}
	y := distuv.Normal{Mu: meanY, Sigma: spreadY, Src: src}
	radius := distuv.Uniform{Min: minRadius, Max: maxRadius, Src: src}

	spheres := make([]geometry.Sphere, count)
	for i := range spheres {
		center := core.NewVec3(xz.Rand(), y.Rand(), xz.Rand())
		spheres[i] = geometry.NewSphere(center, radius.Rand())
	}
	return spheres
}
