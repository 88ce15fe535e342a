package lights

import (
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
)

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
)

// Light illuminates the scene from a location
type Light interface {
	Type() LightType

	// Location is where the light sits in world space
	Location() core.Vec3

	// Sample returns the direction from point toward the light and the distance to it
	Sample(point core.Vec3) LightSample

	// Ambient, Diffuse and Specular return the light's intensities arriving at point
	Ambient(point core.Vec3) core.Vec3
	Diffuse(point core.Vec3) core.Vec3
	Specular(point core.Vec3) core.Vec3

	// Exposure describes how directly the surface at hit faces the light
	Exposure(hit geometry.Intersection) float64

	// Power is the diffuse intensity one unit away, used to weight emitted photons
	Power() core.Vec3
}

// LightSample describes the path from a shading point to a light
type LightSample struct {
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
}

// IntensityFunc gives a light's intensity along a ray in the light's local frame.
// The ray starts at the light and its direction reaches the receiving point.
type IntensityFunc func(local core.Ray) core.Vec3

// ExposureFunc gives the exposure of an intersection to a light
type ExposureFunc func(light Light, hit geometry.Intersection) float64

// ConstantIntensity ignores distance entirely
func ConstantIntensity(color core.Vec3) IntensityFunc {
	return func(core.Ray) core.Vec3 {
		return color
	}
}

// NewFalloffIntensity attenuates color by 1 / (k0 + k1·d + k2·d²)
func NewFalloffIntensity(color core.Vec3, k0, k1, k2 float64) IntensityFunc {
	return func(local core.Ray) core.Vec3 {
		d := local.Direction.Length()
		denominator := k0 + k1*d + k2*d*d
		if denominator <= 0 {
			return color
		}
		return color.Multiply(1 / denominator)
	}
}

// DefaultExposure is the cosine between the surface normal and the direction to the light
func DefaultExposure(light Light, hit geometry.Intersection) float64 {
	toLight := light.Sample(hit.Point).Direction
	return toLight.Dot(hit.Normal.Normalize())
}
