package lights

// DirectionalEvaluator evaluates a light at infinity shining along
// params.Direction. Position is unused.
//
// Intensity is always 1.0; params.Intensity is not applied for this light
// type.
type DirectionalEvaluator struct{}

// Evaluate implements Evaluator
func (DirectionalEvaluator) Evaluate(params Params, payload *Payload) {
	payload.Distance = InfiniteDistance
	payload.Intensity = 1.0
	payload.Direction = params.Direction.Negate().Normalize()
}
