package lights

import (
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
	"github.com/snowjak88/ray2/pkg/transform"
)

// PointLight radiates from its local origin in every direction
type PointLight struct {
	transform.Transformable

	AmbientIntensity  IntensityFunc
	DiffuseIntensity  IntensityFunc
	SpecularIntensity IntensityFunc
	ExposureFn        ExposureFunc
}

// NewPointLight creates a point light with constant intensities
func NewPointLight(ambient, diffuse, specular core.Vec3, transforms ...transform.Transform) *PointLight {
	return &PointLight{
		Transformable:     transform.NewTransformable(transforms...),
		AmbientIntensity:  ConstantIntensity(ambient),
		DiffuseIntensity:  ConstantIntensity(diffuse),
		SpecularIntensity: ConstantIntensity(specular),
		ExposureFn:        DefaultExposure,
	}
}

// Type returns the light type
func (p *PointLight) Type() LightType {
	return LightTypePoint
}

// Location returns the world image of the local origin
func (p *PointLight) Location() core.Vec3 {
	return p.LocalToWorldPoint(core.Vec3{})
}

// Sample returns the direction and distance from point to the light
func (p *PointLight) Sample(point core.Vec3) LightSample {
	toLight := p.Location().Subtract(point)
	return LightSample{Direction: toLight.Normalize(), Distance: toLight.Length()}
}

// localRay is the light-local ray from the light to point
func (p *PointLight) localRay(point core.Vec3) core.Ray {
	location := p.Location()
	return p.WorldToLocalRay(core.NewRay(location, point.Subtract(location)))
}

func evaluate(fn IntensityFunc, local core.Ray) core.Vec3 {
	if fn == nil {
		return core.Vec3{}
	}
	return fn(local)
}

// Ambient returns the ambient intensity arriving at point
func (p *PointLight) Ambient(point core.Vec3) core.Vec3 {
	return evaluate(p.AmbientIntensity, p.localRay(point))
}

// Diffuse returns the diffuse intensity arriving at point
func (p *PointLight) Diffuse(point core.Vec3) core.Vec3 {
	return evaluate(p.DiffuseIntensity, p.localRay(point))
}

// Specular returns the specular intensity arriving at point
func (p *PointLight) Specular(point core.Vec3) core.Vec3 {
	return evaluate(p.SpecularIntensity, p.localRay(point))
}

// Exposure evaluates the light's exposure function
func (p *PointLight) Exposure(hit geometry.Intersection) float64 {
	if p.ExposureFn == nil {
		return DefaultExposure(p, hit)
	}
	return p.ExposureFn(p, hit)
}

// Power returns the diffuse intensity one unit away
func (p *PointLight) Power() core.Vec3 {
	return evaluate(p.DiffuseIntensity, core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)))
}
