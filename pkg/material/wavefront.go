package material

import (
	"math"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
)

// WaveFront is an OBJ/MTL style material
type WaveFront struct {
	Ambient       core.Vec3
	Diffuse       core.Vec3
	Specular      core.Vec3
	Transmittance core.Vec3
	Emission      core.Vec3
	Shininess     float64
	IOR           float64 // index of refraction
	Dissolve      float64 // 1 == opaque; 0 == fully transparent
	Illum         int     // illumination model (see MTL spec)
}

// DefaultWaveFront returns the MTL defaults: grey diffuse, white specular,
// illumination model 0 (diffuse only, no ambient)
func DefaultWaveFront() WaveFront {
	return WaveFront{
		Ambient:   core.NewVec3(0.1, 0.1, 0.1),
		Diffuse:   core.NewVec3(0.7, 0.7, 0.7),
		Specular:  core.NewVec3(1, 1, 1),
		Shininess: 0,
		IOR:       1,
		Dissolve:  1,
		Illum:     0,
	}
}

// NewDiffuse returns the default material with a different diffuse color
func NewDiffuse(diffuse core.Vec3) WaveFront {
	m := DefaultWaveFront()
	m.Diffuse = diffuse
	return m
}

// ComputeDiffuse returns the Lambert term for the normalized light direction
// and surface normal. Ambient is added for illumination models >= 1.
func ComputeDiffuse(m WaveFront, lightDir, normal core.Vec3) core.Vec3 {
	dotNL := math.Max(normal.Dot(lightDir), 0.0)
	c := m.Diffuse.Multiply(dotNL)
	if m.Illum >= 1 {
		c = c.Add(m.Ambient)
	}
	return c
}

// ComputeSpecular returns the energy-conserving Phong highlight for
// illumination models >= 2. viewDir is the incoming ray direction.
func ComputeSpecular(m WaveFront, viewDir, lightDir, normal core.Vec3) core.Vec3 {
	if m.Illum < 2 {
		return core.Vec3{}
	}

	shininess := math.Max(m.Shininess, 4.0)
	energyConservation := (2.0 + shininess) / (2.0 * math.Pi)

	v := viewDir.Negate().Normalize()
	r := lightDir.Negate().Reflect(normal)
	specular := energyConservation * math.Pow(math.Max(v.Dot(r), 0.0), shininess)

	return m.Specular.Multiply(specular)
}
