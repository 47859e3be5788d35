package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
	"github.com/nocis/vk-raytracing-tutorial/pkg/geometry"
	"github.com/nocis/vk-raytracing-tutorial/pkg/lights"
	"github.com/nocis/vk-raytracing-tutorial/pkg/material"
	"github.com/nocis/vk-raytracing-tutorial/pkg/pipeline"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit         bool                   `json:"hit"`
	Kind        string                 `json:"kind,omitempty"`
	PrimitiveID int                    `json:"primitiveId"`
	Point       [3]float64             `json:"point"`
	Normal      [3]float64             `json:"normal"`
	Distance    float64                `json:"distance"`
	Color       [3]float64             `json:"color"` // linear, before tone mapping
	Properties  map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult is the closest intersection along one pixel's primary ray
type InspectResult struct {
	Hit    bool
	Ray    core.Ray
	Report geometry.Report
	Color  core.Vec3
}

// inspectPixel casts the primary ray through the center of (pixelX, pixelY)
// and shades whatever it hits first
func inspectPixel(p *pipeline.Pipeline, width, height, pixelX, pixelY int) (InspectResult, error) {
	ray := p.Camera().PixelRay(pixelX, pixelY, width, height)

	report, hit := p.TraceRay(ray, pipeline.PrimaryTMin, pipeline.PrimaryTMax)
	if !hit {
		return InspectResult{Ray: ray, Color: p.Miss()}, nil
	}

	color, err := p.ClosestHit(ray, report)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{Hit: true, Ray: ray, Report: report, Color: color}, nil
}

// extractMaterialInfo describes a WaveFront material
func extractMaterialInfo(mat material.WaveFront) map[string]interface{} {
	return map[string]interface{}{
		"diffuse":   toArray(mat.Diffuse),
		"specular":  toArray(mat.Specular),
		"shininess": mat.Shininess,
		"illum":     mat.Illum,
		"color": fmt.Sprintf("#%02x%02x%02x",
			int(mat.Diffuse.X*255), int(mat.Diffuse.Y*255), int(mat.Diffuse.Z*255)),
	}
}

// extractGeometryInfo describes the primitive behind a report
func extractGeometryInfo(sphere geometry.Sphere, kind geometry.HitKind) map[string]interface{} {
	properties := map[string]interface{}{
		"center": toArray(sphere.Center),
		"radius": sphere.Radius,
	}
	if kind == geometry.KindCube {
		bounds := sphere.Bounds()
		properties["min"] = toArray(bounds.Min)
		properties["max"] = toArray(bounds.Max)
	}
	return properties
}

// extractLightInfo evaluates the pipeline's light at point with the same
// dispatcher closest-hit shading uses
func extractLightInfo(p *pipeline.Pipeline, point core.Vec3) map[string]interface{} {
	light := p.Constants().Light
	properties := map[string]interface{}{"type": light.Type.String()}

	payload := lights.Payload{HitPosition: point}
	if err := p.Dispatcher().Execute(light, &payload); err != nil {
		properties["error"] = err.Error()
		return properties
	}
	properties["direction"] = toArray(payload.Direction)
	properties["distance"] = payload.Distance
	properties["intensity"] = payload.Intensity
	return properties
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.parseRequestConfig(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= cfg.Width || pixelY < 0 || pixelY >= cfg.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	p, err := cfg.NewPipeline(core.NopLogger{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := inspectPixel(p, cfg.Width, cfg.Height, pixelX, pixelY)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, PrimitiveID: -1, Color: toArray(result.Color)})
		return
	}

	id := result.Report.PrimitiveID
	sphere := p.Scene().Spheres[id]
	point := geometry.HitPoint(result.Ray, result.Report.T)


	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:         true,
		Kind:        result.Report.Kind.String(),
		PrimitiveID: id,
		Point:       toArray(point),
		Normal:      toArray(geometry.Normal(result.Report.Kind, point, sphere.Center)),
		Distance:    result.Report.T,
		Color:       toArray(result.Color),
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(p.Scene().MaterialFor(id)),
			"geometry": extractGeometryInfo(sphere, result.Report.Kind),
			"light":    extractLightInfo(p, point),
		},
	})
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
