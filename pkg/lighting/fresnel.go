package lighting

import (
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/world"
)

// Fresnel blends the surface model's result with reflected and refracted light.
//
// For a material with transparency tr and reflectivity refl, and Fresnel reflectance R:
//
//	surface:   (1 - tr) * (1 - refl)
//	reflected: tr * R + (1 - tr) * refl
//	refracted: tr * (1 - R)
//
// Spawned rays are shaded through World.Trace, which applies the recursion limit
// and falls back to Surface one level past it.
type Fresnel struct {
	Surface     world.LightingModel
	Reflectance material.ReflectanceFunc
}

// NewFresnel creates a Fresnel model using Schlick's approximation
func NewFresnel(surface world.LightingModel) *Fresnel {
	return &Fresnel{Surface: surface, Reflectance: material.Schlick}
}

// Weights returns the surface, reflected and refracted weights for a material
// with the given transparency, reflectivity and Fresnel reflectance.
func Weights(transparency, reflectivity, reflectance float64) (surface, reflected, refracted float64) {
	surface = (1 - transparency) * (1 - reflectivity)
	reflected = transparency*reflectance + (1-transparency)*reflectivity
	refracted = transparency * (1 - reflectance)
	return surface, reflected, refracted
}

func tinted(result world.LightingResult, tint core.Vec3) world.LightingResult {
	result.Tint = &tint
	return result
}

// DetermineRayColor implements world.LightingModel
func (f *Fresnel) DetermineRayColor(w *world.World, ray core.Ray, hits []geometry.Intersection) (world.LightingResult, bool) {
	if len(hits) == 0 {
		return world.LightingResult{}, false
	}
	hit := hits[0]
	at := hit.LocalPoint
	surfaceMaterial := hit.SurfaceMaterial()

	transparency := surfaceMaterial.TransparencyAt(at)
	reflectivity := surfaceMaterial.ReflectivityAt(at)

	incident := ray.Direction.Normalize()
	cosIncident := -incident.Dot(hit.Normal)
	n1 := hit.Leaving.RefractiveIndexAt(at)
	n2 := hit.Entering.RefractiveIndexAt(at)

	reflectance := 0.0
	if transparency > 0 {
		reflectanceFn := f.Reflectance
		if reflectanceFn == nil {
			reflectanceFn = material.Schlick
		}
		reflectance = reflectanceFn(cosIncident, n1, n2)
	}
	surfaceWeight, reflectedWeight, refractedWeight := Weights(transparency, reflectivity, reflectance)

	result := world.LightingResult{Eye: ray, Point: hit.Point, Normal: hit.Normal}

	if surfaceWeight > 0 && f.Surface != nil {
		if r, ok := f.Surface.DetermineRayColor(w, ray, hits); ok {
			tint := surfaceMaterial.SurfaceColorAt(at)
			result.Radiance = result.Radiance.Add(r.Radiance.MultiplyVec(tint).Multiply(surfaceWeight))
			result.Contributions = append(result.Contributions, world.Contribution{Result: tinted(r, tint), Weight: surfaceWeight})
		}
	}

	if reflectedWeight > 0 {
		direction := material.Reflect(incident, hit.Normal)
		spawned := ray.Spawn(offsetOrigin(hit.Point, hit.Normal), direction)
		tint := surfaceMaterial.ReflectiveColorAt(at)
		result = f.accumulate(w, result, spawned, tint, reflectedWeight)
	}

	if refractedWeight > 0 {
		if direction, ok := material.Refract(incident, hit.Normal, n1/n2); ok {
			spawned := ray.Spawn(offsetOrigin(hit.Point, hit.Normal.Negate()), direction)
			tint := hit.Entering.InternalColorAt(at)
			result = f.accumulate(w, result, spawned, tint, refractedWeight)
		}
	}

	return result, true
}

// accumulate traces a spawned ray and folds its tinted, weighted radiance into result.
// Rays that find nothing still count as a contribution so weights stay normalized.
func (f *Fresnel) accumulate(w *world.World, result world.LightingResult, spawned core.Ray, tint core.Vec3, weight float64) world.LightingResult {
	sub, ok := w.Trace(spawned, f.Surface)
	if !ok {
		sub = world.LightingResult{Eye: spawned, Missed: true}
	}
	result.Radiance = result.Radiance.Add(sub.Radiance.MultiplyVec(tint).Multiply(weight))
	result.Contributions = append(result.Contributions, world.Contribution{Result: tinted(sub, tint), Weight: weight})
	return result
}
