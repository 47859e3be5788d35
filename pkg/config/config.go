package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
	"github.com/nocis/vk-raytracing-tutorial/pkg/lights"
	"github.com/nocis/vk-raytracing-tutorial/pkg/pipeline"
	"github.com/nocis/vk-raytracing-tutorial/pkg/scene"
)

// ErrUnsupportedFormat is returned for configuration files that are neither
// TOML nor YAML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config is everything needed to render a frame
type Config struct {
	Width      int        `toml:"width" yaml:"width"`
	Height     int        `toml:"height" yaml:"height"`
	Spheres    int        `toml:"spheres" yaml:"spheres"`
	Seed       uint64     `toml:"seed" yaml:"seed"`
	Workers    int        `toml:"workers" yaml:"workers"`     // <= 0 uses all CPUs
	TileSize   int        `toml:"tile_size" yaml:"tile_size"` // launch tile edge in pixels
	Output     string     `toml:"output" yaml:"output"`
	ClearColor [3]float64 `toml:"clear_color" yaml:"clear_color"`
	Camera     Camera     `toml:"camera" yaml:"camera"`
	Light      Light      `toml:"light" yaml:"light"`
}

// Camera section
type Camera struct {
	LookFrom [3]float64 `toml:"look_from" yaml:"look_from"`
	LookAt   [3]float64 `toml:"look_at" yaml:"look_at"`
	Up       [3]float64 `toml:"up" yaml:"up"`
	VFov     float64    `toml:"vfov" yaml:"vfov"`
}

// Light section. Cutoffs are angles in degrees.
type Light struct {
	Type                   string     `toml:"type" yaml:"type"`
	Position               [3]float64 `toml:"position" yaml:"position"`
	Intensity              float64    `toml:"intensity" yaml:"intensity"`
	Direction              [3]float64 `toml:"direction" yaml:"direction"`
	SpotCutoffDegrees      float64    `toml:"spot_cutoff" yaml:"spot_cutoff"`
	SpotOuterCutoffDegrees float64    `toml:"spot_outer_cutoff" yaml:"spot_outer_cutoff"`
}

// Default returns the sample scene configuration
func Default() Config {
	camera := pipeline.DefaultCameraConfig()
	light := lights.DefaultParams()
	return Config{
		Width:      400,
		Height:     225,
		Spheres:    2000,
		Seed:       1,
		Workers:    0,
		TileSize:   32,
		Output:     "output/render.png",
		ClearColor: [3]float64{1, 1, 1},
		Camera: Camera{
			LookFrom: toArray(camera.LookFrom),
			LookAt:   toArray(camera.LookAt),
			Up:       toArray(camera.Up),
			VFov:     camera.VFov,
		},
		Light: Light{
			Type:                   light.Type.String(),
			Position:               toArray(light.Position),
			Intensity:              light.Intensity,
			Direction:              toArray(light.Direction),
			SpotCutoffDegrees:      12.5,
			SpotOuterCutoffDegrees: 17.5,
		},
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file on top of Default
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Decode(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data in the given format ("toml", "yaml" or "yml") on top of
// Default and validates the result
func Decode(data []byte, format string) (Config, error) {
	cfg := Default()

	var err error
	switch format {
	case "toml":
		err = toml.Unmarshal(data, &cfg)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Config{}, fmt.Errorf("decoding %s: %w", format, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot use
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	}
	if c.Spheres <= 0 {
		return fmt.Errorf("spheres must be positive, got %d", c.Spheres)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %d", c.TileSize)
	}
	if c.Camera.VFov <= 0 || c.Camera.VFov >= 180 {
		return fmt.Errorf("camera vfov must be in (0, 180), got %v", c.Camera.VFov)
	}
	if _, err := lights.ParseLightType(c.Light.Type); err != nil {
		return fmt.Errorf("light: %w", err)
	}
	if c.Light.SpotCutoffDegrees >= c.Light.SpotOuterCutoffDegrees {
		return fmt.Errorf("light: spot_cutoff (%v) must be smaller than spot_outer_cutoff (%v)",
			c.Light.SpotCutoffDegrees, c.Light.SpotOuterCutoffDegrees)
	}
	return nil
}

// LightParams converts the light section
func (c Config) LightParams() (lights.Params, error) {
	lightType, err := lights.ParseLightType(c.Light.Type)
	if err != nil {
		return lights.Params{}, err
	}
	inner, outer := lights.SpotCutoffsFromDegrees(c.Light.SpotCutoffDegrees, c.Light.SpotOuterCutoffDegrees)
	return lights.Params{
		Position:        fromArray(c.Light.Position),
		Intensity:       c.Light.Intensity,
		Direction:       fromArray(c.Light.Direction),
		SpotCutoff:      inner,
		SpotOuterCutoff: outer,
		Type:            lightType,
	}, nil
}

// PushConstants converts the clear color and light section
func (c Config) PushConstants() (pipeline.PushConstants, error) {
	light, err := c.LightParams()
	if err != nil {
		return pipeline.PushConstants{}, err
	}
	return pipeline.PushConstants{ClearColor: fromArray(c.ClearColor), Light: light}, nil
}

// CameraConfig converts the camera section for the configured image size
func (c Config) CameraConfig() pipeline.CameraConfig {
	return pipeline.CameraConfig{
		LookFrom:    fromArray(c.Camera.LookFrom),
		LookAt:      fromArray(c.Camera.LookAt),
		Up:          fromArray(c.Camera.Up),
		VFov:        c.Camera.VFov,
		AspectRatio: float64(c.Width) / float64(c.Height),
	}
}

// SceneOptions returns the procedural scene options
func (c Config) SceneOptions() scene.Options {
	return scene.Options{SphereCount: c.Spheres, Seed: c.Seed}
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func fromArray(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

// NewPipeline generates the configured scene and builds a pipeline over it
func (c Config) NewPipeline(logger core.Logger) (*pipeline.Pipeline, error) {
	constants, err := c.PushConstants()
	if err != nil {
		return nil, err
	}

	s, err := scene.NewProceduralScene(c.SceneOptions())
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	return pipeline.New(s, constants,
		pipeline.WithLogger(logger),
		pipeline.WithCamera(c.CameraConfig()),
		pipeline.WithWorkers(c.Workers),
		pipeline.WithTileSize(c.TileSize),
	)
}
