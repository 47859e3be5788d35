package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
	"github.com/nocis/vk-raytracing-tutorial/pkg/lights"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	params, err := cfg.LightParams()
	require.NoError(t, err)
	assert.Equal(t, lights.DefaultParams(), params)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "scene.toml", `
width = 64
height = 32
spheres = 50
seed = 9
clear_color = [0.1, 0.2, 0.3]

[camera]
vfov = 60.0

[light]
type = "directional"
direction = [0.0, -1.0, 0.0]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
	assert.Equal(t, 50, cfg.Spheres)
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, 60.0, cfg.Camera.VFov)
	assert.Equal(t, Default().Camera.LookFrom, cfg.Camera.LookFrom, "unset keys keep defaults")

	constants, err := cfg.PushConstants()
	require.NoError(t, err)
	assert.Equal(t, core.NewVec3(0.1, 0.2, 0.3), constants.ClearColor)
	assert.Equal(t, lights.LightTypeDirectional, constants.Light.Type)
	assert.Equal(t, core.NewVec3(0, -1, 0), constants.Light.Direction)
	assert.Equal(t, 100.0, constants.Light.Intensity)

	assert.InDelta(t, 2.0, cfg.CameraConfig().AspectRatio, 1e-12)
	assert.Equal(t, 50, cfg.SceneOptions().SphereCount)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "scene.yaml", `
width: 20
height: 10
light:
  type: spot
  position: [0, 10, 0]
  spot_cutoff: 10
  spot_outer_cutoff: 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)

	params, err := cfg.LightParams()
	require.NoError(t, err)
	inner, outer := lights.SpotCutoffsFromDegrees(10, 20)
	assert.Equal(t, lights.LightTypeSpot, params.Type)
	assert.Equal(t, inner, params.SpotCutoff)
	assert.Equal(t, outer, params.SpotOuterCutoff)
	assert.Equal(t, core.NewVec3(0, 10, 0), params.Position)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "scene.json", `{}`))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(writeFile(t, "bad.toml", `width = "wide"`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "area.yml", "light:\n  type: area\n"))
	assert.ErrorIs(t, err, lights.ErrUnknownLightType)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"no spheres", func(c *Config) { c.Spheres = 0 }},
		{"zero tile", func(c *Config) { c.TileSize = 0 }},
		{"flat fov", func(c *Config) { c.Camera.VFov = 0 }},
		{"unknown light", func(c *Config) { c.Light.Type = "laser" }},
		{"inverted cone", func(c *Config) { c.Light.SpotCutoffDegrees = 30 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewPipeline(t *testing.T) {
	cfg := Default()
	cfg.Spheres = 10
	cfg.Light.Type = "spot"

	p, err := cfg.NewPipeline(core.NopLogger{})
	require.NoError(t, err)
	assert.Equal(t, 10, p.Scene().PrimitiveCount())
	assert.Equal(t, lights.LightTypeSpot, p.Constants().Light.Type)
}
