package gpu

import (
	"fmt"
	"math"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
	"github.com/nocis/vk-raytracing-tutorial/pkg/lights"
)

// MaxRoundTripError is the largest relative difference a float64 value may
// pick up when stored in a float32 record field
const MaxRoundTripError = 1e-6

// CheckPushConstants packs clearColor and light into the push constant block,
// reads it back and returns the light that came out together with the
// largest relative error over all light fields. A light type that does not
// survive the trip is an error.
func CheckPushConstants(clearColor core.Vec3, light lights.Params) (lights.Params, float64, error) {
	var decoded PushConstants
	if err := decoded.Unmarshal(NewPushConstants(clearColor, light).Marshal()); err != nil {
		return lights.Params{}, 0, err
	}

	got := decoded.Light()
	if got.Type != light.Type {
		return got, 0, fmt.Errorf("push constants: light type %s came back as %s", light.Type, got.Type)
	}

	worst := max(
		relVec3(light.Position, got.Position),
		relVec3(light.Direction, got.Direction),
		relError(light.Intensity, got.Intensity),
		relError(light.SpotCutoff, got.SpotCutoff),
		relError(light.SpotOuterCutoff, got.SpotOuterCutoff),
	)
	for i, c := range []float64{clearColor.X, clearColor.Y, clearColor.Z} {
		worst = max(worst, relError(c, float64(decoded.ClearColor[i])))
	}
	return got, worst, nil
}

// CheckLightPayload evaluates light at hitPosition through d, passes the
// payload through its record and returns the evaluated payload and the
// largest relative error
func CheckLightPayload(d *lights.Dispatcher, light lights.Params, hitPosition core.Vec3) (lights.Payload, float64, error) {
	payload := lights.Payload{HitPosition: hitPosition}
	if err := d.Execute(light, &payload); err != nil {
		return lights.Payload{}, 0, err
	}

	var record LightPayloadRecord
	if err := record.Unmarshal(NewLightPayloadRecord(payload).Marshal()); err != nil {
		return payload, 0, err
	}

	got := record.Payload()
	worst := max(
		relVec3(payload.HitPosition, got.HitPosition),
		relVec3(payload.Direction, got.Direction),
		relError(payload.Distance, got.Distance),
		relError(payload.Intensity, got.Intensity),
	)
	return payload, worst, nil
}

// relError is |want-got| relative to |want|, absolute below 1
func relError(want, got float64) float64 {
	return math.Abs(want-got) / math.Max(1, math.Abs(want))
}

func relVec3(want, got core.Vec3) float64 {
	return max(relError(want.X, got.X), relError(want.Y, got.Y), relError(want.Z, got.Z))
}
