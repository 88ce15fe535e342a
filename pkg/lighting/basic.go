package lighting

import (
	"math"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/world"
)

// leaf builds a result for the nearest hit with no further contributions
func leaf(ray core.Ray, hit geometry.Intersection, radiance core.Vec3) world.LightingResult {
	return world.LightingResult{
		Eye:      ray,
		Point:    hit.Point,
		Normal:   hit.Normal,
		Radiance: radiance,
	}
}

// offsetOrigin lifts point off the surface onto the side the normal faces
func offsetOrigin(point, normal core.Vec3) core.Vec3 {
	return point.Add(normal.Multiply(core.SurfaceOffset))
}

// Flat returns the raw diffuse color of the nearest surface, unlit
type Flat struct{}

// DetermineRayColor implements world.LightingModel
func (Flat) DetermineRayColor(_ *world.World, ray core.Ray, hits []geometry.Intersection) (world.LightingResult, bool) {
	if len(hits) == 0 {
		return world.LightingResult{}, false
	}
	return leaf(ray, hits[0], hits[0].DiffuseColor()), true
}

// Ambient lights the nearest surface with the world's ambient radiance and adds any emission
type Ambient struct{}

// DetermineRayColor implements world.LightingModel
func (Ambient) DetermineRayColor(w *world.World, ray core.Ray, hits []geometry.Intersection) (world.LightingResult, bool) {
	if len(hits) == 0 {
		return world.LightingResult{}, false
	}
	hit := hits[0]
	radiance := w.AmbientRadiance(hit.Point).MultiplyVec(hit.DiffuseColor()).Add(hit.EmissiveColor())
	return leaf(ray, hit, radiance), true
}

// LambertianDiffuse sums the cosine-weighted diffuse light reaching the nearest surface
// from every unoccluded light
type LambertianDiffuse struct{}

// DetermineRayColor implements world.LightingModel
func (LambertianDiffuse) DetermineRayColor(w *world.World, ray core.Ray, hits []geometry.Intersection) (world.LightingResult, bool) {
	if len(hits) == 0 {
		return world.LightingResult{}, false
	}
	hit := hits[0]
	origin := offsetOrigin(hit.Point, hit.Normal)

	var total core.Vec3
	for _, light := range w.Lights {
		exposure := light.Exposure(hit)
		if exposure <= 0 {
			continue
		}
		sample := light.Sample(hit.Point)
		if w.Occluded(origin, sample.Direction, sample.Distance, nil) {
			continue
		}
		total = total.Add(light.Diffuse(hit.Point).Multiply(exposure))
	}
	return leaf(ray, hit, total.MultiplyVec(hit.DiffuseColor())), true
}

// PhongSpecular adds highlights from lights and from glowing shapes
type PhongSpecular struct{}

// DetermineRayColor implements world.LightingModel
func (PhongSpecular) DetermineRayColor(w *world.World, ray core.Ray, hits []geometry.Intersection) (world.LightingResult, bool) {
	if len(hits) == 0 {
		return world.LightingResult{}, false
	}
	hit := hits[0]
	origin := offsetOrigin(hit.Point, hit.Normal)
	toEye := ray.Direction.Normalize().Negate()
	shininess := 1.0
	if hit.Surface != nil && hit.Surface.Shininess > 0 {
		shininess = hit.Surface.Shininess
	}

	highlight := func(toLight core.Vec3, intensity core.Vec3) core.Vec3 {
		if toLight.Dot(hit.Normal) <= 0 {
			return core.Vec3{}
		}
		reflected := material.Reflect(toLight.Negate(), hit.Normal)
		strength := math.Pow(math.Max(0, reflected.Dot(toEye)), shininess)
		return intensity.Multiply(strength)
	}

	var total core.Vec3
	for _, light := range w.Lights {
		sample := light.Sample(hit.Point)
		if w.Occluded(origin, sample.Direction, sample.Distance, nil) {
			continue
		}
		total = total.Add(highlight(sample.Direction, light.Specular(hit.Point)))
	}

	for _, emitter := range w.EmissiveShapes() {
		if emitter == hit.Shape {
			continue
		}
		toEmitter := emitter.Location().Subtract(hit.Point)
		distance := toEmitter.Length()
		if distance == 0 || w.Occluded(origin, toEmitter, distance, emitter) {
			continue
		}
		total = total.Add(highlight(toEmitter.Multiply(1/distance), emitter.Surface().EmissiveAt(core.Vec3{})))
	}

	return leaf(ray, hit, total.MultiplyVec(hit.SpecularColor())), true
}

// Additive sums the results of several models for the same ray
type Additive struct {
	Models []world.LightingModel
}

// NewAdditive creates an additive composite
func NewAdditive(models ...world.LightingModel) *Additive {
	return &Additive{Models: models}
}

// DetermineRayColor implements world.LightingModel
func (a *Additive) DetermineRayColor(w *world.World, ray core.Ray, hits []geometry.Intersection) (world.LightingResult, bool) {
	var result world.LightingResult
	found := false
	for _, model := range a.Models {
		r, ok := model.DetermineRayColor(w, ray, hits)
		if !ok {
			continue
		}
		if !found {
			result = world.LightingResult{Eye: r.Eye, Point: r.Point, Normal: r.Normal}
			found = true
		}
		result.Radiance = result.Radiance.Add(r.Radiance)
		result.Contributions = append(result.Contributions, r.Contributions...)
	}
	return result, found
}
