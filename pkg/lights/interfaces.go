package lights

import (
	"fmt"
	"math"
	"strings"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
)

// LightType selects the evaluator for a light. The values are the callable
// indices the host uses and must stay stable.
type LightType int32

const (
	LightTypePoint       LightType = 0
	LightTypeSpot        LightType = 1
	LightTypeDirectional LightType = 2
)

// InfiniteDistance is the distance reported for lights with no position.
// Shadow rays are traced up to this distance.
const InfiniteDistance = 1e7

func (t LightType) String() string {
	switch t {
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	case LightTypeDirectional:
		return "directional"
	default:
		return fmt.Sprintf("LightType(%d)", int32(t))
	}
}

// ParseLightType converts a light name to its type.
// "infinite" is accepted as an alias for directional.
func ParseLightType(name string) (LightType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "point":
		return LightTypePoint, nil
	case "spot":
		return LightTypeSpot, nil
	case "directional", "infinite":
		return LightTypeDirectional, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLightType, name)
	}
}

// Params is the scene-wide light configuration. It is written once by the
// host and only read by evaluators.
type Params struct {
	Position        core.Vec3
	Intensity       float64
	Direction       core.Vec3 // direction the light travels (spot, directional)
	SpotCutoff      float64   // cosine of the inner cone angle
	SpotOuterCutoff float64   // cosine of the outer cone angle
	Type            LightType
}

// DefaultParams returns the light setup the sample scene starts with
func DefaultParams() Params {
	inner, outer := SpotCutoffsFromDegrees(12.5, 17.5)
	return Params{
		Position:        core.NewVec3(10, 15, 8),
		Intensity:       100,
		Direction:       core.NewVec3(-1, -1, -1),
		SpotCutoff:      inner,
		SpotOuterCutoff: outer,
		Type:            LightTypePoint,
	}
}

// SpotCutoffsFromDegrees converts inner/outer cone angles to the cosines
// stored in Params
func SpotCutoffsFromDegrees(inner, outer float64) (float64, float64) {
	return math.Cos(inner * math.Pi / 180.0), math.Cos(outer * math.Pi / 180.0)
}

// Payload is the record shared between the shading stage and the light
// evaluator. HitPosition is filled by the caller; the evaluator writes the
// rest.
type Payload struct {
	HitPosition core.Vec3
	Distance    float64
	Direction   core.Vec3 // normalized, from the hit position toward the light
	Intensity   float64
}

// Evaluator computes the light contribution for one hit position
type Evaluator interface {
	Evaluate(params Params, payload *Payload)
}

// EvaluatorFunc adapts a function to the Evaluator interface
type EvaluatorFunc func(params Params, payload *Payload)

// Evaluate calls f
func (f EvaluatorFunc) Evaluate(params Params, payload *Payload) {
	f(params, payload)
}
