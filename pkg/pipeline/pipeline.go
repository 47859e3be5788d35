package pipeline

import (
	"fmt"
	"math"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
	"github.com/nocis/vk-raytracing-tutorial/pkg/geometry"
	"github.com/nocis/vk-raytracing-tutorial/pkg/lights"
	"github.com/nocis/vk-raytracing-tutorial/pkg/material"
	"github.com/nocis/vk-raytracing-tutorial/pkg/scene"
)

// Ray interval and shading constants
const (
	PrimaryTMin       = 0.001
	PrimaryTMax       = 10000.0
	ShadowTMin        = 0.001
	ShadowAttenuation = 0.3 // applied when the light is blocked or behind the surface
)

// PushConstants is the per-frame configuration visible to every stage
type PushConstants struct {
	ClearColor core.Vec3
	Light      lights.Params
}

// DefaultPushConstants returns a white background and the default light
func DefaultPushConstants() PushConstants {
	return PushConstants{
		ClearColor: core.NewVec3(1, 1, 1),
		Light:      lights.DefaultParams(),
	}
}

// Counters tracks the work done by one or more invocations
type Counters struct {
	PrimaryRays       int
	ShadowRays        int
	Hits              int
	Occluded          int
	IntersectionCalls int
}

// Add accumulates other into c
func (c *Counters) Add(other Counters) {
	c.PrimaryRays += other.PrimaryRays
	c.ShadowRays += other.ShadowRays
	c.Hits += other.Hits
	c.Occluded += other.Occluded
	c.IntersectionCalls += other.IntersectionCalls
}

// Pipeline emulates the host ray tracing pipeline over a procedural scene:
// intersection, hit reporting, closest-hit shading with a callable light
// evaluation, and miss. All state is read-only once built, so one Pipeline
// can serve any number of goroutines.
type Pipeline struct {
	scene      *scene.Scene
	constants  PushConstants
	dispatcher *lights.Dispatcher
	camera     *Camera
	logger     core.Logger
	workers    int
	tileSize   int
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger used by Launch
func WithLogger(logger core.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithDispatcher replaces the default light dispatcher
func WithDispatcher(d *lights.Dispatcher) Option {
	return func(p *Pipeline) { p.dispatcher = d }
}

// WithCamera sets the camera used for primary rays
func WithCamera(config CameraConfig) Option {
	return func(p *Pipeline) { p.camera = NewCamera(config) }
}

// WithWorkers sets the number of launch workers; <= 0 uses all CPUs
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// WithTileSize sets the launch tile edge in pixels
func WithTileSize(n int) Option {
	return func(p *Pipeline) { p.tileSize = n }
}

// New creates a pipeline. It fails if the configured light type has no
// evaluator.
func New(s *scene.Scene, constants PushConstants, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		scene:      s,
		constants:  constants,
		dispatcher: lights.NewDispatcher(),
		camera:     NewCamera(DefaultCameraConfig()),
		logger:     core.NopLogger{},
		tileSize:   32,
	}
	for _, opt := range opts {
		opt(p)
	}

	if s == nil {
		return nil, fmt.Errorf("pipeline: scene is nil")
	}
	if _, ok := p.dispatcher.Lookup(constants.Light.Type); !ok {
		return nil, fmt.Errorf("pipeline: %w: %s", lights.ErrUnknownLightType, constants.Light.Type)
	}
	if p.tileSize <= 0 {
		return nil, fmt.Errorf("pipeline: tile size must be positive, got %d", p.tileSize)
	}
	return p, nil
}

// Constants returns the push constants the pipeline was built with
func (p *Pipeline) Constants() PushConstants {
	return p.constants
}

// Camera returns the camera used for primary rays
func (p *Pipeline) Camera() *Camera {
	return p.camera
}

// Dispatcher returns the light dispatcher used by closest-hit shading
func (p *Pipeline) Dispatcher() *lights.Dispatcher {
	return p.dispatcher
}

// Scene returns the scene being traced
func (p *Pipeline) Scene() *scene.Scene {
	return p.scene
}

// TraceRay runs the intersection routine for every primitive whose bounds
// the ray overlaps and returns the closest report within [tMin, tMax]
func (p *Pipeline) TraceRay(ray core.Ray, tMin, tMax float64) (geometry.Report, bool) {
	var counters Counters
	return p.traceRay(ray, tMin, tMax, false, &counters)
}

// Occluded reports whether anything intersects the ray within [tMin, tMax].
// It stops at the first accepted report.
func (p *Pipeline) Occluded(ray core.Ray, tMin, tMax float64) bool {
	var counters Counters
	_, hit := p.traceRay(ray, tMin, tMax, true, &counters)
	return hit
}

func (p *Pipeline) traceRay(ray core.Ray, tMin, tMax float64, terminateOnFirstHit bool, counters *Counters) (geometry.Report, bool) {
	var closest geometry.Report
	found := false

	for id, sphere := range p.scene.Spheres {
		if !p.scene.AABBs[id].Hit(ray, tMin, tMax) {
			continue
		}

		counters.IntersectionCalls++
		report, ok := geometry.Intersect(id, sphere, ray)
		if !ok || report.T < tMin || report.T > tMax {
			continue
		}

		closest = report
		found = true
		if terminateOnFirstHit {
			break
		}
		// Later reports must be closer than this one.
		tMax = report.T
	}

	return closest, found
}

// Miss returns the background color
func (p *Pipeline) Miss() core.Vec3 {
	return p.constants.ClearColor
}

// ClosestHit shades the reported intersection
func (p *Pipeline) ClosestHit(ray core.Ray, report geometry.Report) (core.Vec3, error) {
	var counters Counters
	return p.closestHit(ray, report, &counters)
}

func (p *Pipeline) closestHit(ray core.Ray, report geometry.Report, counters *Counters) (core.Vec3, error) {
	sphere := p.scene.Spheres[report.PrimitiveID]
	worldPos := geometry.HitPoint(ray, report.T)
	normal := geometry.Normal(report.Kind, worldPos, sphere.Center)

	payload := lights.Payload{HitPosition: worldPos}
	if err := p.dispatcher.Execute(p.constants.Light, &payload); err != nil {
		return core.Vec3{}, err
	}

	mat := p.scene.MaterialFor(report.PrimitiveID)
	diffuse := material.ComputeDiffuse(mat, payload.Direction, normal)

	specular := core.Vec3{}
	attenuation := ShadowAttenuation
	if normal.Dot(payload.Direction) > 0 {
		counters.ShadowRays++
		shadowRay := core.NewRay(worldPos, payload.Direction)
		if _, blocked := p.traceRay(shadowRay, ShadowTMin, payload.Distance, true, counters); blocked {
			counters.Occluded++
		} else {
			attenuation = 1.0
			specular = material.ComputeSpecular(mat, ray.Direction, payload.Direction, normal)
		}
	}

	return diffuse.Add(specular).Multiply(payload.Intensity * attenuation), nil
}

// Shade traces a primary ray and returns its color: closest-hit shading
// when something is hit, the miss color otherwise
func (p *Pipeline) Shade(ray core.Ray) (core.Vec3, Counters, error) {
	var counters Counters
	color, err := p.shade(ray, &counters)
	return color, counters, err
}

func (p *Pipeline) shade(ray core.Ray, counters *Counters) (core.Vec3, error) {
	counters.PrimaryRays++
	report, hit := p.traceRay(ray, PrimaryTMin, PrimaryTMax, false, counters)
	if !hit {
		return p.Miss(), nil
	}
	counters.Hits++
	return p.closestHit(ray, report, counters)
}

// toneMap applies display gamma and clamps to [0, 1]
func toneMap(c core.Vec3) core.Vec3 {
	const invGamma = 1.0 / 2.2
	c = c.Clamp(0, 1)
	return core.NewVec3(math.Pow(c.X, invGamma), math.Pow(c.Y, invGamma), math.Pow(c.Z, invGamma))
}
