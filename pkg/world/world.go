package world

import (
	"sort"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
	"github.com/snowjak88/ray2/pkg/lights"
)

// World holds everything a render pass reads: shapes, lights, the camera and the
// top-level lighting model. It is read-only while rendering.
type World struct {
	Shapes       []geometry.Shape
	Lights       []lights.Light
	Camera       Camera
	Model        LightingModel
	Ambient      core.Vec3 // Ambient radiance present everywhere, in addition to the lights'
	MaxRecursion int
}

// New creates an empty world with the default recursion limit
func New() *World {
	return &World{MaxRecursion: core.DefaultMaxRecursion}
}

// AddShape adds a shape to the world
func (w *World) AddShape(shape geometry.Shape) {
	w.Shapes = append(w.Shapes, shape)
}

// AddLight adds a light to the world
func (w *World) AddLight(light lights.Light) {
	w.Lights = append(w.Lights, light)
}

// Intersections returns every intersection in front of the ray origin, nearest first
func (w *World) Intersections(ray core.Ray) []geometry.Intersection {
	var hits []geometry.Intersection
	for _, shape := range w.Shapes {
		hits = append(hits, shape.Intersections(ray, false)...)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Closest returns the nearest intersection in front of the ray origin
func (w *World) Closest(ray core.Ray) (geometry.Intersection, bool) {
	var best geometry.Intersection
	found := false
	for _, shape := range w.Shapes {
		hits := shape.Intersections(ray, false)
		if len(hits) == 0 {
			continue
		}
		if !found || hits[0].Distance < best.Distance {
			best, found = hits[0], true
		}
	}
	return best, found
}

// Occluded reports whether anything other than ignore lies on the segment from origin
// along direction, strictly between NearlyZero and distance.
func (w *World) Occluded(origin, direction core.Vec3, distance float64, ignore geometry.Shape) bool {
	ray := core.NewRay(origin, direction.Normalize())
	for _, shape := range w.Shapes {
		if ignore != nil && shape == ignore {
			continue
		}
		for _, hit := range shape.Intersections(ray, false) {
			if hit.Distance > core.NearlyZero && hit.Distance < distance {
				return true
			}
		}
	}
	return false
}

// EmissiveShapes returns the shapes whose surfaces glow
func (w *World) EmissiveShapes() []geometry.Shape {
	var out []geometry.Shape
	for _, shape := range w.Shapes {
		if shape.Surface().IsEmissive() {
			out = append(out, shape)
		}
	}
	return out
}

// AmbientRadiance is the world ambient plus every light's ambient intensity at point
func (w *World) AmbientRadiance(point core.Vec3) core.Vec3 {
	total := w.Ambient
	for _, light := range w.Lights {
		total = total.Add(light.Ambient(point))
	}
	return total
}

// Trace is the single entry point for shading a ray, including every reflected or
// refracted ray spawned while shading. It enforces the recursion limit:
// rays up to MaxRecursion use the top-level model, rays one level deeper use fallback
// (nil for none), and anything deeper yields nothing.
func (w *World) Trace(ray core.Ray, fallback LightingModel) (LightingResult, bool) {
	var model LightingModel
	switch {
	case ray.RecursionLevel <= w.MaxRecursion:
		model = w.Model
	case ray.RecursionLevel == w.MaxRecursion+1:
		model = fallback
	}
	if model == nil {
		return LightingResult{}, false
	}
	return model.DetermineRayColor(w, ray, w.Intersections(ray))
}

// ShootRay returns the color seen through sensor point (x, y) of the camera
func (w *World) ShootRay(x, y float64) (core.Vec3, bool) {
	if w.Camera == nil {
		return core.Vec3{}, false
	}
	result, ok := w.Trace(w.Camera.GenerateRay(x, y), nil)
	if !ok {
		return core.Vec3{}, false
	}
	return result.Radiance, true
}
