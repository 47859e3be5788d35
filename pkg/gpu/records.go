package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
	"github.com/nocis/vk-raytracing-tutorial/pkg/geometry"
	"github.com/nocis/vk-raytracing-tutorial/pkg/lights"
)

// Record sizes in bytes, std430 / push-constant layout
const (
	SphereRecordSize       = 16
	AabbRecordSize         = 24
	PushConstantsSize      = 56
	LightPayloadRecordSize = 32
)

// ErrShortBuffer is returned when a byte slice is too small for a record
var ErrShortBuffer = errors.New("buffer too short")

// SphereRecord is one element of the primitive storage buffer.
//
// Layout:
//
//	vec3  center (offset 0)
//	float radius (offset 12)
type SphereRecord struct {
	Center mgl32.Vec3
	Radius float32
}

// NewSphereRecord converts a sphere to its buffer representation
func NewSphereRecord(s geometry.Sphere) SphereRecord {
	return SphereRecord{Center: toVec3(s.Center), Radius: float32(s.Radius)}
}

// Sphere converts the record back to a sphere
func (r SphereRecord) Sphere() geometry.Sphere {
	return geometry.NewSphere(fromVec3(r.Center), float64(r.Radius))
}

// Bounds returns the record's AABB computed in float32, as the host does when
// filling the AABB buffer
func (r SphereRecord) Bounds() AabbRecord {
	radius := mgl32.Vec3{r.Radius, r.Radius, r.Radius}
	return AabbRecord{Min: r.Center.Sub(radius), Max: r.Center.Add(radius)}
}

// MarshalTo writes the record into buf, which must hold SphereRecordSize bytes
func (r SphereRecord) MarshalTo(buf []byte) {
	putVec3(buf[0:12], r.Center)
	putFloat(buf[12:16], r.Radius)
}

// Marshal serializes the record for upload
func (r SphereRecord) Marshal() []byte {
	buf := make([]byte, SphereRecordSize)
	r.MarshalTo(buf)
	return buf
}

// Unmarshal reads the record from buf
func (r *SphereRecord) Unmarshal(buf []byte) error {
	if len(buf) < SphereRecordSize {
		return fmt.Errorf("sphere record: %w: %d < %d", ErrShortBuffer, len(buf), SphereRecordSize)
	}
	r.Center = getVec3(buf[0:12])
	r.Radius = getFloat(buf[12:16])
	return nil
}

// AabbRecord is the procedural AABB layout consumed by the acceleration
// structure build: six tightly packed floats.
type AabbRecord struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAabbRecord converts a box to its buffer representation
func NewAabbRecord(box core.AABB) AabbRecord {
	return AabbRecord{Min: toVec3(box.Min), Max: toVec3(box.Max)}
}

// AABB converts the record back to a box
func (r AabbRecord) AABB() core.AABB {
	return core.NewAABB(fromVec3(r.Min), fromVec3(r.Max))
}

// MarshalTo writes the record into buf, which must hold AabbRecordSize bytes
func (r AabbRecord) MarshalTo(buf []byte) {
	putVec3(buf[0:12], r.Min)
	putVec3(buf[12:24], r.Max)
}

// Marshal serializes the record for upload
func (r AabbRecord) Marshal() []byte {
	buf := make([]byte, AabbRecordSize)
	r.MarshalTo(buf)
	return buf
}

// Unmarshal reads the record from buf
func (r *AabbRecord) Unmarshal(buf []byte) error {
	if len(buf) < AabbRecordSize {
		return fmt.Errorf("aabb record: %w: %d < %d", ErrShortBuffer, len(buf), AabbRecordSize)
	}
	r.Min = getVec3(buf[0:12])
	r.Max = getVec3(buf[12:24])
	return nil
}

// PushConstants is the per-frame constant block shared by every stage.
//
// Layout:
//
//	vec4  clearColor           (offset 0)
//	vec3  lightPosition        (offset 16)
//	float lightIntensity       (offset 28)
//	vec3  lightDirection       (offset 32)
//	float lightSpotCutoff      (offset 44)
//	float lightSpotOuterCutoff (offset 48)
//	int   lightType            (offset 52)
type PushConstants struct {
	ClearColor           mgl32.Vec4
	LightPosition        mgl32.Vec3
	LightIntensity       float32
	LightDirection       mgl32.Vec3
	LightSpotCutoff      float32
	LightSpotOuterCutoff float32
	LightType            int32
}

// NewPushConstants packs the clear color and light parameters
func NewPushConstants(clearColor core.Vec3, light lights.Params) PushConstants {
	return PushConstants{
		ClearColor:           toVec3(clearColor).Vec4(1),
		LightPosition:        toVec3(light.Position),
		LightIntensity:       float32(light.Intensity),
		LightDirection:       toVec3(light.Direction),
		LightSpotCutoff:      float32(light.SpotCutoff),
		LightSpotOuterCutoff: float32(light.SpotOuterCutoff),
		LightType:            int32(light.Type),
	}
}

// Light returns the light parameters held in the block
func (p PushConstants) Light() lights.Params {
	return lights.Params{
		Position:        fromVec3(p.LightPosition),
		Intensity:       float64(p.LightIntensity),
		Direction:       fromVec3(p.LightDirection),
		SpotCutoff:      float64(p.LightSpotCutoff),
		SpotOuterCutoff: float64(p.LightSpotOuterCutoff),
		Type:            lights.LightType(p.LightType),
	}
}

// Marshal serializes the block
func (p PushConstants) Marshal() []byte {
	buf := make([]byte, PushConstantsSize)
	for i := 0; i < 4; i++ {
		putFloat(buf[i*4:i*4+4], p.ClearColor[i])
	}
	putVec3(buf[16:28], p.LightPosition)
	putFloat(buf[28:32], p.LightIntensity)
	putVec3(buf[32:44], p.LightDirection)
	putFloat(buf[44:48], p.LightSpotCutoff)
	putFloat(buf[48:52], p.LightSpotOuterCutoff)
	binary.LittleEndian.PutUint32(buf[52:56], uint32(p.LightType))
	return buf
}

// Unmarshal reads the block from buf
func (p *PushConstants) Unmarshal(buf []byte) error {
	if len(buf) < PushConstantsSize {
		return fmt.Errorf("push constants: %w: %d < %d", ErrShortBuffer, len(buf), PushConstantsSize)
	}
	for i := 0; i < 4; i++ {
		p.ClearColor[i] = getFloat(buf[i*4 : i*4+4])
	}
	p.LightPosition = getVec3(buf[16:28])
	p.LightIntensity = getFloat(buf[28:32])
	p.LightDirection = getVec3(buf[32:44])
	p.LightSpotCutoff = getFloat(buf[44:48])
	p.LightSpotOuterCutoff = getFloat(buf[48:52])
	p.LightType = int32(binary.LittleEndian.Uint32(buf[52:56]))
	return nil
}

// LightPayloadRecord is the callable payload exchanged between the
// closest-hit stage and the light evaluator.
//
// Layout:
//
//	vec3  inHitPosition    (offset 0)
//	float outLightDistance (offset 12)
//	vec3  outLightDir      (offset 16)
//	float outIntensity     (offset 28)
type LightPayloadRecord struct {
	HitPosition mgl32.Vec3
	Distance    float32
	Direction   mgl32.Vec3
	Intensity   float32
}

// NewLightPayloadRecord converts an evaluated payload
func NewLightPayloadRecord(p lights.Payload) LightPayloadRecord {
	return LightPayloadRecord{
		HitPosition: toVec3(p.HitPosition),
		Distance:    float32(p.Distance),
		Direction:   toVec3(p.Direction),
		Intensity:   float32(p.Intensity),
	}
}

// Payload converts the record back to a light payload
func (r LightPayloadRecord) Payload() lights.Payload {
	return lights.Payload{
		HitPosition: fromVec3(r.HitPosition),
		Distance:    float64(r.Distance),
		Direction:   fromVec3(r.Direction),
		Intensity:   float64(r.Intensity),
	}
}

// Marshal serializes the record
func (r LightPayloadRecord) Marshal() []byte {
	buf := make([]byte, LightPayloadRecordSize)
	putVec3(buf[0:12], r.HitPosition)
	putFloat(buf[12:16], r.Distance)
	putVec3(buf[16:28], r.Direction)
	putFloat(buf[28:32], r.Intensity)
	return buf
}

// Unmarshal reads the record from buf
func (r *LightPayloadRecord) Unmarshal(buf []byte) error {
	if len(buf) < LightPayloadRecordSize {
		return fmt.Errorf("light payload: %w: %d < %d", ErrShortBuffer, len(buf), LightPayloadRecordSize)
	}
	r.HitPosition = getVec3(buf[0:12])
	r.Distance = getFloat(buf[12:16])
	r.Direction = getVec3(buf[16:28])
	r.Intensity = getFloat(buf[28:32])
	return nil
}

func toVec3(v core.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

func fromVec3(v mgl32.Vec3) core.Vec3 {
	return core.NewVec3(float64(v.X()), float64(v.Y()), float64(v.Z()))
}

func putFloat(buf []byte, f float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
}

func getFloat(buf []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf))
}

func putVec3(buf []byte, v mgl32.Vec3) {
	putFloat(buf[0:4], v[0])
	putFloat(buf[4:8], v[1])
	putFloat(buf[8:12], v[2])
}

func getVec3(buf []byte) mgl32.Vec3 {
	return mgl32.Vec3{getFloat(buf[0:4]), getFloat(buf[4:8]), getFloat(buf[8:12])}
}
