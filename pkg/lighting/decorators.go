package lighting

import (
	"image"
	"math"

	"github.com/fogleman/pt/pt"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
	"github.com/snowjak88/ray2/pkg/world"
)

// EnvironmentMap is an equirectangular image surrounding the scene
type EnvironmentMap struct {
	texture pt.Texture
	Scale   float64
}

// NewEnvironmentMap wraps an equirectangular image
func NewEnvironmentMap(img image.Image) *EnvironmentMap {
	return &EnvironmentMap{texture: pt.NewTexture(img), Scale: 1}
}

// UV maps a direction to equirectangular texture coordinates, with v = 1 straight up
func UV(direction core.Vec3) (u, v float64) {
	d := direction.Normalize()
	u = 0.5 + math.Atan2(d.Z, d.X)/(2*math.Pi)
	v = 0.5 + math.Asin(math.Max(-1, math.Min(1, d.Y)))/math.Pi
	return u, v
}

// Sample returns the radiance arriving from direction
func (e *EnvironmentMap) Sample(direction core.Vec3) core.Vec3 {
	u, v := UV(direction)
	c := e.texture.Sample(u, v)
	return core.NewVec3(c.R, c.G, c.B).Multiply(e.Scale)
}

// EnvironmentMapDecorating shows the environment map wherever the wrapped model finds nothing
type EnvironmentMapDecorating struct {
	Wrapped world.LightingModel
	Map     *EnvironmentMap
}

// DetermineRayColor implements world.LightingModel
func (e *EnvironmentMapDecorating) DetermineRayColor(w *world.World, ray core.Ray, hits []geometry.Intersection) (world.LightingResult, bool) {
	if result, ok := e.Wrapped.DetermineRayColor(w, ray, hits); ok {
		return result, true
	}
	if e.Map == nil {
		return world.LightingResult{}, false
	}
	return world.LightingResult{
		Eye:      ray,
		Point:    ray.At(core.WorldBound),
		Radiance: e.Map.Sample(ray.Direction),
		Missed:   true,
	}, true
}

// FogDecorating fades the wrapped color toward Color with distance.
// The wrapped color's weight halves every HalfDistance.
type FogDecorating struct {
	Wrapped      world.LightingModel
	Color        core.Vec3
	HalfDistance float64
}

// DetermineRayColor implements world.LightingModel
func (f *FogDecorating) DetermineRayColor(w *world.World, ray core.Ray, hits []geometry.Intersection) (world.LightingResult, bool) {
	result, ok := f.Wrapped.DetermineRayColor(w, ray, hits)
	if !ok || len(hits) == 0 || f.HalfDistance <= 0 {
		return result, ok
	}
	visibility := math.Pow(0.5, hits[0].Distance/f.HalfDistance)
	result.Radiance = f.Color.Lerp(result.Radiance, visibility)
	return result, true
}

// IrradianceEstimator estimates indirect light arriving at a surface point
type IrradianceEstimator interface {
	Estimate(point, normal core.Vec3) core.Vec3
}

// PhotonMapDecorating adds a photon-map estimate of indirect light, filtered by the
// surface's diffuse color, to the wrapped model's result
type PhotonMapDecorating struct {
	Wrapped   world.LightingModel
	Estimator IrradianceEstimator
}

// DetermineRayColor implements world.LightingModel
func (p *PhotonMapDecorating) DetermineRayColor(w *world.World, ray core.Ray, hits []geometry.Intersection) (world.LightingResult, bool) {
	result, ok := p.Wrapped.DetermineRayColor(w, ray, hits)
	if !ok || len(hits) == 0 || p.Estimator == nil {
		return result, ok
	}
	hit := hits[0]
	indirect := p.Estimator.Estimate(hit.Point, hit.Normal)
	result.Radiance = result.Radiance.Add(indirect.MultiplyVec(hit.DiffuseColor()))
	return result, true
}
