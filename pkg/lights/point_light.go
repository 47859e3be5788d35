package lights

// PointEvaluator evaluates an omnidirectional light with inverse-square falloff
type PointEvaluator struct{}

// Evaluate implements Evaluator
func (PointEvaluator) Evaluate(params Params, payload *Payload) {
	toLight := params.Position.Subtract(payload.HitPosition)
	payload.Distance = toLight.Length()
	payload.Intensity = params.Intensity / (payload.Distance * payload.Distance)
	payload.Direction = toLight.Normalize()
}
