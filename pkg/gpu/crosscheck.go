package gpu

import (
	"math"
	"math/rand/v2"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
	"github.com/nocis/vk-raytracing-tutorial/pkg/geometry"
)

// CrossCheckOptions controls CrossCheck
type CrossCheckOptions struct {
	Rays        int     // rays per run
	Seed        uint64  // ray generator seed
	MaxOffset   float64 // aim point offset from the primitive center, in radii
	MinDistance float64 // closest ray origin to the primitive center
	MaxDistance float64 // farthest ray origin from the primitive center
}

// DefaultCrossCheckOptions aims every ray well inside its target so both
// precisions must agree on a hit
func DefaultCrossCheckOptions() CrossCheckOptions {
	return CrossCheckOptions{
		Rays:        10000,
		Seed:        1,
		MaxOffset:   0.5,
		MinDistance: 5,
		MaxDistance: 20,
	}
}

// CrossCheckResult summarizes a CrossCheck run
type CrossCheckResult struct {
	Tested           int
	Hits             int     // rays both precisions reported
	Disagreements    int     // rays reported by only one precision
	MaxRelativeError float64 // largest |t64 - t32| / t64 over agreed hits
}

// CrossCheck fires random rays at random primitives and compares the
// float64 intersection routine with the float32 shader-precision one
func CrossCheck(spheres []geometry.Sphere, opts CrossCheckOptions) CrossCheckResult {
	var result CrossCheckResult
	if len(spheres) == 0 {
		return result
	}

	random := rand.New(rand.NewPCG(opts.Seed, opts.Seed+1))
	for i := 0; i < opts.Rays; i++ {
		id := random.IntN(len(spheres))
		s := spheres[id]

		target := s.Center.Add(randomUnit(random).Multiply(random.Float64() * opts.MaxOffset * s.Radius))
		distance := opts.MinDistance + random.Float64()*(opts.MaxDistance-opts.MinDistance)
		origin := s.Center.Add(randomUnit(random).Multiply(distance))
		// Unnormalized on purpose: the routines accept any non-zero direction.
		ray := core.NewRay(origin, target.Subtract(origin))

		report, hit64 := geometry.Intersect(id, s, ray)
		t32, hit32 := Intersect32(id, NewSphereRecord(s), Ray32{
			Origin:    toVec3(ray.Origin),
			Direction: toVec3(ray.Direction),
		})

		result.Tested++
		switch {
		case hit64 && hit32:
			result.Hits++
			rel := math.Abs(report.T-float64(t32)) / report.T
			result.MaxRelativeError = math.Max(result.MaxRelativeError, rel)
		case hit64 != hit32:
			result.Disagreements++
		}
	}
	return result
}

func randomUnit(random *rand.Rand) core.Vec3 {
	for {
		p := core.NewVec3(2*random.Float64()-1, 2*random.Float64()-1, 2*random.Float64()-1)
		if l := p.LengthSquared(); l > 1e-6 && l <= 1 {
			return p.Normalize()
		}
	}
}
