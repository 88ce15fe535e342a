package lights

import (
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
)

// DirectionalLight shines along a fixed direction with no falloff, like sunlight
type DirectionalLight struct {
	Direction     core.Vec3 // Unit direction the light travels
	AmbientColor  core.Vec3
	Radiance      core.Vec3
	SpecularColor core.Vec3
}

// NewDirectionalLight creates a directional light traveling along direction
func NewDirectionalLight(direction, ambient, radiance, specular core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		Direction:     direction.Normalize(),
		AmbientColor:  ambient,
		Radiance:      radiance,
		SpecularColor: specular,
	}
}

// Type returns the light type
func (d *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Location is WorldBound away, against the direction of travel
func (d *DirectionalLight) Location() core.Vec3 {
	return d.Direction.Multiply(-core.WorldBound)
}

// Sample points back along the light's direction from anywhere
func (d *DirectionalLight) Sample(core.Vec3) LightSample {
	return LightSample{Direction: d.Direction.Negate(), Distance: core.WorldBound}
}

// Ambient returns the ambient color
func (d *DirectionalLight) Ambient(core.Vec3) core.Vec3 {
	return d.AmbientColor
}

// Diffuse returns the radiance
func (d *DirectionalLight) Diffuse(core.Vec3) core.Vec3 {
	return d.Radiance
}

// Specular returns the specular color
func (d *DirectionalLight) Specular(core.Vec3) core.Vec3 {
	return d.SpecularColor
}

// Exposure is the cosine between the normal and the reversed light direction
func (d *DirectionalLight) Exposure(hit geometry.Intersection) float64 {
	return d.Direction.Negate().Dot(hit.Normal.Normalize())
}

// Power returns the radiance
func (d *DirectionalLight) Power() core.Vec3 {
	return d.Radiance
}
