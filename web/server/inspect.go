package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// centerSampler returns 0.5 for every sample so camera rays pass through
// pixel centers and the lens center at mid-shutter
type centerSampler struct{}

func (centerSampler) Get1D() float64          { return 0.5 }
func (centerSampler) Get2D() core.Vec2        { return core.NewVec2(0.5, 0.5) }
func (centerSampler) Get3D() core.Vec3        { return core.NewVec3(0.5, 0.5, 0.5) }
func (centerSampler) GetInt(min, max int) int { return min }

func colorHex(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material, hit material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		albedo := m.Albedo.Evaluate(hit.UV, hit.Point)
		properties["albedo"] = vecArray(albedo)
		properties["color"] = colorHex(albedo)
		properties["texture"] = textureType(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = colorHex(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		emission := m.Emitted(hit.UV, hit.Point)
		properties["emission"] = vecArray(emission)
		properties["color"] = colorHex(emission)
		return "diffuse_light", properties

	case *material.Isotropic:
		albedo := m.Albedo.Evaluate(hit.UV, hit.Point)
		properties["albedo"] = vecArray(albedo)
		properties["color"] = colorHex(albedo)
		return "isotropic", properties

	default:
		return "unknown", properties
	}
}

func textureType(tex material.Texture) string {
	switch t := tex.(type) {
	case *material.SolidColor:
		return "solid"
	case *material.CheckerTexture:
		return "checker"
	case *material.NoiseTexture:
		return "noise:" + t.Style.String()
	case *material.ImageTexture:
		return "image"
	default:
		return "unknown"
	}
}

// extractGeometryInfo describes a top-level scene object
func extractGeometryInfo(object geometry.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	bbox := object.BoundingBox()
	properties["boundsMin"] = vecArray(bbox.Min())
	properties["boundsMax"] = vecArray(bbox.Max())

	switch o := object.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(o.Center.Origin)
		properties["radius"] = o.Radius
		if !o.Center.Direction.Equals(core.Vec3{}) {
			properties["motion"] = vecArray(o.Center.Direction)
			return "moving_sphere", properties
		}
		return "sphere", properties
	case *geometry.Quad:
		properties["corner"] = vecArray(o.Corner)
		properties["u"] = vecArray(o.U)
		properties["v"] = vecArray(o.V)
		return "quad", properties
	case *geometry.HittableList:
		properties["objects"] = len(o.Objects)
		return "list", properties
	case *geometry.Translate:
		properties["offset"] = vecArray(o.Offset)
		return "translate", properties
	case *geometry.RotateY:
		return "rotate_y", properties
	case *geometry.ConstantMedium:
		return "constant_medium", properties
	case *geometry.BVHNode:
		properties["shapes"] = o.Stats().TotalShapes
		return "bvh", properties
	default:
		return "unknown", properties
	}
}

// InspectResult contains the hit record and the top-level object a pixel-center ray hits first
type InspectResult struct {
	Hit       bool
	HitRecord material.HitRecord
	Object    geometry.Hittable
}

// inspectPixel casts a ray through the center of pixel (x, y) and reports the first object hit
func inspectPixel(sc *scene.Scene, camera *renderer.Camera, x, y int) InspectResult {
	sampler := centerSampler{}
	ray := camera.GetRay(x, y, sampler)
	hitInterval := core.NewInterval(0.001, math.Inf(1))

	var rec material.HitRecord
	if !sc.World.Hit(ray, hitInterval, &rec, sampler) {
		return InspectResult{}
	}

	// The BVH reports only the record, so find the object producing the same hit
	for _, object := range sc.Objects {
		var objectRec material.HitRecord
		if object.Hit(ray, hitInterval, &objectRec, sampler) && objectRec.T == rec.T {
			return InspectResult{Hit: true, HitRecord: rec, Object: object}
		}
	}
	return InspectResult{Hit: true, HitRecord: rec}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params, err := parseSceneParams(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sc, err := s.buildScene(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	camera, err := renderer.NewCamera(renderer.MergeCameraConfig(sc.CameraConfig, renderer.CameraConfig{Width: params.Width}))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	width, height := camera.ImageSize()
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result := inspectPixel(sc, camera, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material, result.HitRecord)
	geometryType := "unknown"
	geometryProps := map[string]interface{}{}
	if result.Object != nil {
		geometryType, geometryProps = extractGeometryInfo(result.Object)
	}

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
