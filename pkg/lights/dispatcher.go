package lights

import (
	"errors"
	"fmt"
)

// ErrUnknownLightType is returned when no evaluator is registered for a tag
var ErrUnknownLightType = errors.New("unknown light type")

// Dispatcher selects the evaluator for Params.Type, the way the closest-hit
// stage selects a callable shader by index
type Dispatcher struct {
	evaluators map[LightType]Evaluator
}

// NewDispatcher returns a dispatcher with the point, spot and directional
// evaluators registered
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		evaluators: map[LightType]Evaluator{
			LightTypePoint:       PointEvaluator{},
			LightTypeSpot:        SpotEvaluator{},
			LightTypeDirectional: DirectionalEvaluator{},
		},
	}
}

// Register installs or replaces the evaluator for a light type.
// It must not be called while Execute runs on other goroutines.
func (d *Dispatcher) Register(lightType LightType, evaluator Evaluator) {
	d.evaluators[lightType] = evaluator
}

// Lookup returns the evaluator registered for lightType
func (d *Dispatcher) Lookup(lightType LightType) (Evaluator, bool) {
	evaluator, ok := d.evaluators[lightType]
	return evaluator, ok
}

// Execute runs the evaluator selected by params.Type on payload
func (d *Dispatcher) Execute(params Params, payload *Payload) error {
	evaluator, ok := d.evaluators[params.Type]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLightType, int32(params.Type))
	}
	evaluator.Evaluate(params, payload)
	return nil
}
