package lights

import (
	"math"
	"testing"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
)

func TestPointEvaluator_InverseSquare(t *testing.T) {
	params := DefaultParams()
	params.Position = core.NewVec3(0, 5, 0)
	params.Intensity = 100

	payload := Payload{HitPosition: core.NewVec3(0, 0, 0)}
	PointEvaluator{}.Evaluate(params, &payload)

	if math.Abs(payload.Distance-5) > 1e-12 {
		t.Errorf("Expected distance 5, got %v", payload.Distance)
	}
	if math.Abs(payload.Intensity-4) > 1e-12 {
		t.Errorf("Expected intensity 100/25=4, got %v", payload.Intensity)
	}
	if !payload.Direction.Equals(core.NewVec3(0, 1, 0), 1e-12) {
		t.Errorf("Expected direction (0,1,0), got %v", payload.Direction)
	}
}

func TestPointEvaluator_IgnoresDirection(t *testing.T) {
	params := DefaultParams()
	hit := core.NewVec3(1, 2, 3)

	a := Payload{HitPosition: hit}
	PointEvaluator{}.Evaluate(params, &a)

	params.Direction = core.NewVec3(5, 0, 0)
	b := Payload{HitPosition: hit}
	PointEvaluator{}.Evaluate(params, &b)

	if a != b {
		t.Errorf("Expected identical payloads, got %+v and %+v", a, b)
	}
}
