package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Color        [3]float64             `json:"color"` // Shaded color of the pixel ray
	ObjectID     string                 `json:"objectId,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	N1           float64                `json:"n1"`
	N2           float64                `json:"n2"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult describes what the ray through one pixel sees
type InspectResult struct {
	Hit   bool
	Comps geometry.Computations
	Color core.Color
}

// inspectPixel casts the camera ray through the center of a pixel.
// The scene must have a light.
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	ray := sceneObj.Camera.RayForPixel(pixelX, pixelY)
	color := sceneObj.World.ColorAt(ray, sceneObj.EffectiveRayLimit())

	xs := sceneObj.World.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return InspectResult{Color: color}
	}

	return InspectResult{
		Hit:   true,
		Comps: geometry.PrepareComputations(hit, ray, xs),
		Color: color,
	}
}

// extractMaterialInfo lists the shading coefficients of a material
func (s *Server) extractMaterialInfo(mat *material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color":           colorHex(mat.Color),
		"ambient":         mat.Ambient,
		"diffuse":         mat.Diffuse,
		"specular":        mat.Specular,
		"shininess":       mat.Shininess,
		"reflective":      mat.Reflective,
		"transparency":    mat.Transparency,
		"refractiveIndex": mat.RefractiveIndex,
	}

	if mat.Pattern != nil {
		properties["pattern"] = patternType(mat.Pattern.Source)
	}
	return properties
}

func patternType(source material.ColorSource) string {
	switch source.(type) {
	case *material.SolidColor:
		return "solid"
	case *material.Stripes:
		return "stripes"
	case *material.Gradient:
		return "gradient"
	case *material.Ring:
		return "ring"
	case *material.Checkers:
		return "checkers"
	case material.PositionDebug:
		return "position"
	default:
		return "unknown"
	}
}

// extractGeometryInfo names the shape of an object and reports its transform
func (s *Server) extractGeometryInfo(obj *geometry.Object) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"transform": obj.Transform(),
	}

	switch obj.Shape.(type) {
	case *geometry.Sphere:
		return "sphere", properties
	case *geometry.Plane:
		return "plane", properties
	case *geometry.Cube:
		return "cube", properties
	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSONError(w, sceneErrorStatus(err), err.Error())
		return
	}

	camera := sceneObj.Camera
	if pixelX < 0 || pixelX >= camera.HSize || pixelY < 0 || pixelY >= camera.VSize {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	response := InspectResponse{
		Hit:   result.Hit,
		Color: [3]float64{result.Color.R, result.Color.G, result.Color.B},
	}
	if result.Hit {
		comps := result.Comps
		geometryType, geometryProps := s.extractGeometryInfo(comps.Object)

		response.ObjectID = comps.Object.ID.String()
		response.GeometryType = geometryType
		response.Point = tupleXYZ(comps.Point)
		response.Normal = tupleXYZ(comps.NormalV)
		response.Distance = comps.T
		response.Inside = comps.Inside
		response.N1 = comps.N1
		response.N2 = comps.N2
		response.Properties = map[string]interface{}{
			"material": s.extractMaterialInfo(comps.Object.Material),
			"geometry": geometryProps,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func tupleXYZ(t core.Tuple) [3]float64 {
	return [3]float64{t.X(), t.Y(), t.Z()}
}

func colorHex(c core.Color) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.R*255), int(c.G*255), int(c.B*255))
}
