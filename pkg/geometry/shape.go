package geometry

import (
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// Shape is anything a ray can intersect.
// Rays and points are given in the shape's parent frame; results come back in that frame.
type Shape interface {
	// Intersections returns every boundary crossing along ray, nearest first.
	// Crossings behind the ray origin are only reported when includeBehindOrigin is set.
	Intersections(ray core.Ray, includeBehindOrigin bool) []Intersection
	// IsInside reports whether point lies strictly inside the shape
	IsInside(point core.Vec3) bool
	// NormalAt returns the outward unit normal of the surface nearest point
	NormalAt(point core.Vec3) core.Vec3
	// Location is the image of the shape's local origin
	Location() core.Vec3
	Surface() *Surface
	Material() *material.Material
}

// Surface holds the color schemes used to shade a shape
type Surface struct {
	Ambient   material.ColorScheme
	Diffuse   material.ColorScheme
	Specular  material.ColorScheme
	Emissive  material.ColorScheme // nil when the surface does not emit light
	Shininess float64
}

// NewSurface creates a surface with ambient and diffuse both set to color
func NewSurface(color core.Vec3) *Surface {
	scheme := material.NewSimpleColorScheme(color)
	return &Surface{
		Ambient:   scheme,
		Diffuse:   scheme,
		Specular:  material.NewSimpleColorScheme(core.NewVec3(1, 1, 1)),
		Shininess: 8,
	}
}

// NewSchemeSurface creates a surface whose ambient and diffuse colors follow scheme
func NewSchemeSurface(scheme material.ColorScheme) *Surface {
	return &Surface{
		Ambient:   scheme,
		Diffuse:   scheme,
		Specular:  material.NewSimpleColorScheme(core.NewVec3(1, 1, 1)),
		Shininess: 8,
	}
}

// NewEmissiveSurface creates a surface that glows with color
func NewEmissiveSurface(color core.Vec3) *Surface {
	s := NewSurface(color)
	s.Emissive = material.NewSimpleColorScheme(color)
	return s
}

// IsEmissive reports whether the surface emits light
func (s *Surface) IsEmissive() bool {
	return s != nil && s.Emissive != nil
}

func schemeAt(scheme material.ColorScheme, point core.Vec3) core.Vec3 {
	if scheme == nil {
		return core.Vec3{}
	}
	return scheme.ColorAt(point)
}

// AmbientAt returns the ambient color at a local point
func (s *Surface) AmbientAt(point core.Vec3) core.Vec3 {
	if s == nil {
		return core.Vec3{}
	}
	return schemeAt(s.Ambient, point)
}

// DiffuseAt returns the diffuse color at a local point
func (s *Surface) DiffuseAt(point core.Vec3) core.Vec3 {
	if s == nil {
		return core.Vec3{}
	}
	return schemeAt(s.Diffuse, point)
}

// SpecularAt returns the specular color at a local point
func (s *Surface) SpecularAt(point core.Vec3) core.Vec3 {
	if s == nil {
		return core.Vec3{}
	}
	return schemeAt(s.Specular, point)
}

// EmissiveAt returns the emitted radiance at a local point
func (s *Surface) EmissiveAt(point core.Vec3) core.Vec3 {
	if s == nil {
		return core.Vec3{}
	}
	return schemeAt(s.Emissive, point)
}

// BaseShape carries what every shape has: a transform sequence, a surface,
// the material filling it and the material surrounding it.
type BaseShape struct {
	transform.Transformable

	surface *Surface
	inside  *material.Material
	outside *material.Material
}

func newBaseShape(surface *Surface, inside *material.Material, transforms []transform.Transform) BaseShape {
	if inside == nil {
		inside = material.NewOpaque(core.NewVec3(1, 1, 1))
	}
	return BaseShape{
		Transformable: transform.NewTransformable(transforms...),
		surface:       surface,
		inside:        inside,
		outside:       material.Air(),
	}
}

// Surface returns the shape's color schemes
func (b *BaseShape) Surface() *Surface {
	return b.surface
}

// SetSurface replaces the shape's color schemes
func (b *BaseShape) SetSurface(surface *Surface) {
	b.surface = surface
}

// Material returns the material filling the shape
func (b *BaseShape) Material() *material.Material {
	return b.inside
}

// SetMaterial replaces the material filling the shape
func (b *BaseShape) SetMaterial(m *material.Material) {
	b.inside = m
}

// OutsideMaterial returns the material surrounding the shape, Air unless set
func (b *BaseShape) OutsideMaterial() *material.Material {
	return b.outside
}

// SetOutsideMaterial sets the material surrounding the shape
func (b *BaseShape) SetOutsideMaterial(m *material.Material) {
	b.outside = m
}

// Location returns the world image of the local origin
func (b *BaseShape) Location() core.Vec3 {
	return b.LocalToWorldPoint(core.Vec3{})
}

// NullShape has no geometry. It is useful as a placeholder or transform anchor.
type NullShape struct {
	BaseShape
}

// NewNullShape creates an empty shape
func NewNullShape(transforms ...transform.Transform) *NullShape {
	return &NullShape{BaseShape: newBaseShape(nil, nil, transforms)}
}

// Intersections never returns anything
func (n *NullShape) Intersections(core.Ray, bool) []Intersection {
	return nil
}

// IsInside is always false
func (n *NullShape) IsInside(core.Vec3) bool {
	return false
}

// NormalAt has no surface to report; it returns +Y in the parent frame
func (n *NullShape) NormalAt(core.Vec3) core.Vec3 {
	return n.LocalToWorldNormal(core.NewVec3(0, 1, 0))
}
