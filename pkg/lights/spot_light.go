package lights

import (
	"math"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
)

// SpotEvaluator is a point light restricted to a cone around params.Direction.
// Intensity ramps linearly from zero at the outer cutoff to full at the
// inner cutoff.
type SpotEvaluator struct{}

// Evaluate implements Evaluator
func (SpotEvaluator) Evaluate(params Params, payload *Payload) {
	PointEvaluator{}.Evaluate(params, payload)
	payload.Intensity *= spotFalloff(params, payload.Direction)
}

// spotFalloff returns the cone attenuation for toLight, the normalized
// direction from the shaded point toward the light
func spotFalloff(params Params, toLight core.Vec3) float64 {
	theta := toLight.Dot(params.Direction.Negate().Normalize())
	epsilon := params.SpotCutoff - params.SpotOuterCutoff
	return math.Max(0, math.Min(1, (theta-params.SpotOuterCutoff)/epsilon))
}
