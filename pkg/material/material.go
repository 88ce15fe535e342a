package material

import (
	"math"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/transform"
)

// ScalarFunc is a per-point scalar property
type ScalarFunc func(local core.Vec3) float64

// Constant returns a ScalarFunc with the same value everywhere
func Constant(value float64) ScalarFunc {
	return func(core.Vec3) float64 { return value }
}

// Material describes the optical properties of the volume on one side of a surface.
// Every property is a function of the point, evaluated in the material's local frame.
type Material struct {
	transform.Transformable

	Name string

	// SurfaceColor tints the lit surface contribution
	SurfaceColor ColorScheme
	// InternalColor tints light transmitted through the volume
	InternalColor ColorScheme
	// ReflectiveColor tints mirror reflections
	ReflectiveColor ColorScheme

	// Transparency is the fraction of light passing the surface, in [0, 1]
	Transparency ScalarFunc
	// Reflectivity is the mirror fraction of the opaque part, in [0, 1]
	Reflectivity ScalarFunc
	// RefractiveIndex of the volume
	RefractiveIndex ScalarFunc
}

var white = core.NewVec3(1, 1, 1)

var air = &Material{
	Name:            "air",
	SurfaceColor:    NewSimpleColorScheme(white),
	InternalColor:   NewSimpleColorScheme(white),
	ReflectiveColor: NewSimpleColorScheme(white),
	Transparency:    Constant(1),
	Reflectivity:    Constant(0),
	RefractiveIndex: Constant(1),
}

// Air returns the shared degenerate material: fully transparent with refractive index 1
func Air() *Material {
	return air
}

// NewOpaque creates a fully opaque, non-reflective material.
// color tints photons absorbed inside it; the lit appearance comes from the shape's surface.
func NewOpaque(color core.Vec3) *Material {
	return &Material{
		Name:            "opaque",
		SurfaceColor:    NewSimpleColorScheme(white),
		InternalColor:   NewSimpleColorScheme(color),
		ReflectiveColor: NewSimpleColorScheme(white),
		Transparency:    Constant(0),
		Reflectivity:    Constant(0),
		RefractiveIndex: Constant(1),
	}
}

// NewGlass creates a fully transparent material tinted by internal
func NewGlass(refractiveIndex float64, internal core.Vec3) *Material {
	return &Material{
		Name:            "glass",
		SurfaceColor:    NewSimpleColorScheme(white),
		InternalColor:   NewSimpleColorScheme(internal),
		ReflectiveColor: NewSimpleColorScheme(white),
		Transparency:    Constant(1),
		Reflectivity:    Constant(0),
		RefractiveIndex: Constant(refractiveIndex),
	}
}

// NewMirror creates an opaque material reflecting the given fraction of light
func NewMirror(reflectivity float64, tint core.Vec3) *Material {
	return &Material{
		Name:            "mirror",
		SurfaceColor:    NewSimpleColorScheme(white),
		InternalColor:   NewSimpleColorScheme(white),
		ReflectiveColor: NewSimpleColorScheme(tint),
		Transparency:    Constant(0),
		Reflectivity:    Constant(reflectivity),
		RefractiveIndex: Constant(1),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func colorOf(scheme ColorScheme, local core.Vec3) core.Vec3 {
	if scheme == nil {
		return white
	}
	return scheme.ColorAt(local)
}

// SurfaceColorAt returns the surface tint at point
func (m *Material) SurfaceColorAt(point core.Vec3) core.Vec3 {
	return colorOf(m.SurfaceColor, m.WorldToLocalPoint(point))
}

// InternalColorAt returns the volume tint at point
func (m *Material) InternalColorAt(point core.Vec3) core.Vec3 {
	return colorOf(m.InternalColor, m.WorldToLocalPoint(point))
}

// ReflectiveColorAt returns the reflection tint at point
func (m *Material) ReflectiveColorAt(point core.Vec3) core.Vec3 {
	return colorOf(m.ReflectiveColor, m.WorldToLocalPoint(point))
}

// TransparencyAt returns the transparency at point, clamped to [0, 1]
func (m *Material) TransparencyAt(point core.Vec3) float64 {
	if m.Transparency == nil {
		return 0
	}
	return clamp01(m.Transparency(m.WorldToLocalPoint(point)))
}

// ReflectivityAt returns the reflectivity at point, clamped to [0, 1]
func (m *Material) ReflectivityAt(point core.Vec3) float64 {
	if m.Reflectivity == nil {
		return 0
	}
	return clamp01(m.Reflectivity(m.WorldToLocalPoint(point)))
}

// RefractiveIndexAt returns the refractive index at point
func (m *Material) RefractiveIndexAt(point core.Vec3) float64 {
	if m.RefractiveIndex == nil {
		return 1
	}
	return m.RefractiveIndex(m.WorldToLocalPoint(point))
}

// IsSpecular reports whether the material reflects or transmits any light at point
func (m *Material) IsSpecular(point core.Vec3) bool {
	return m.TransparencyAt(point) > 0 || m.ReflectivityAt(point) > 0
}
