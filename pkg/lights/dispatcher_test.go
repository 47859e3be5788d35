package lights

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
)

func TestDispatcher_SelectsByType(t *testing.T) {
	d := NewDispatcher()
	hit := core.NewVec3(1, 0, 0)

	tests := []struct {
		lightType LightType
		expected  Evaluator
	}{
		{LightTypePoint, PointEvaluator{}},
		{LightTypeSpot, SpotEvaluator{}},
		{LightTypeDirectional, DirectionalEvaluator{}},
	}

	for _, tt := range tests {
		t.Run(tt.lightType.String(), func(t *testing.T) {
			params := DefaultParams()
			params.Type = tt.lightType

			got := Payload{HitPosition: hit}
			require.NoError(t, d.Execute(params, &got))

			want := Payload{HitPosition: hit}
			tt.expected.Evaluate(params, &want)
			assert.Equal(t, want, got)
		})
	}
}

func TestDispatcher_UnknownType(t *testing.T) {
	d := NewDispatcher()
	params := DefaultParams()
	params.Type = LightType(9)

	payload := Payload{Distance: 5}
	err := d.Execute(params, &payload)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLightType))
	assert.Equal(t, 5.0, payload.Distance, "payload must be untouched")
}

func TestDispatcher_Register(t *testing.T) {
	d := NewDispatcher()
	const area LightType = 3

	_, ok := d.Lookup(area)
	assert.False(t, ok)

	d.Register(area, EvaluatorFunc(func(params Params, payload *Payload) {
		payload.Intensity = 7
		payload.Distance = 1
		payload.Direction = core.NewVec3(0, 1, 0)
	}))

	params := DefaultParams()
	params.Type = area
	var payload Payload
	require.NoError(t, d.Execute(params, &payload))
	assert.Equal(t, 7.0, payload.Intensity)
}

func TestLightType_WireValuesAndParsing(t *testing.T) {
	assert.Equal(t, int32(0), int32(LightTypePoint))
	assert.Equal(t, int32(1), int32(LightTypeSpot))
	assert.Equal(t, int32(2), int32(LightTypeDirectional))

	for _, name := range []string{"point", "spot", "directional"} {
		lt, err := ParseLightType(name)
		require.NoError(t, err)
		assert.Equal(t, name, lt.String())
	}

	lt, err := ParseLightType(" Infinite ")
	require.NoError(t, err)
	assert.Equal(t, LightTypeDirectional, lt)

	_, err = ParseLightType("area")
	assert.ErrorIs(t, err, ErrUnknownLightType)
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	inner, outer := SpotCutoffsFromDegrees(12.5, 17.5)

	assert.Equal(t, core.NewVec3(10, 15, 8), p.Position)
	assert.Equal(t, 100.0, p.Intensity)
	assert.Equal(t, core.NewVec3(-1, -1, -1), p.Direction)
	assert.Equal(t, inner, p.SpotCutoff)
	assert.Equal(t, outer, p.SpotOuterCutoff)
	assert.Greater(t, p.SpotCutoff, p.SpotOuterCutoff)
	assert.Equal(t, LightTypePoint, p.Type)
}
