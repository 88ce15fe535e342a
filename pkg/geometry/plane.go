package geometry

import (
	"math"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// Plane is the local XZ plane. Its normal points along +Y.
// The half-space below it (y < 0) is its inside, filled with the minus material;
// the half-space above it is filled with the plus material.
type Plane struct {
	BaseShape
}

// NewPlane creates a plane separating minus (below) from plus (above)
func NewPlane(surface *Surface, minus, plus *material.Material, transforms ...transform.Transform) *Plane {
	p := &Plane{BaseShape: newBaseShape(surface, minus, transforms)}
	if plus != nil {
		p.outside = plus
	}
	return p
}

// MinusMaterial returns the material below the plane
func (p *Plane) MinusMaterial() *material.Material {
	return p.inside
}

// PlusMaterial returns the material above the plane
func (p *Plane) PlusMaterial() *material.Material {
	return p.outside
}

// Intersections solves origin.y + t·direction.y = 0 in local space
func (p *Plane) Intersections(ray core.Ray, includeBehindOrigin bool) []Intersection {
	local := p.WorldToLocalRay(ray)
	hit, ok := p.localIntersection(local, includeBehindOrigin)
	if !ok {
		return nil
	}
	return finalize([]Intersection{toParent(hit, ray, &p.Transformable)}, includeBehindOrigin)
}

// localIntersection finds the crossing in the plane's local frame.
// Rays parallel to the plane either lie in it or miss it; both report nothing.
func (p *Plane) localIntersection(local core.Ray, includeBehindOrigin bool) (Intersection, bool) {
	if math.Abs(local.Direction.Y) < core.NearlyZero {
		return Intersection{}, false
	}
	t := -local.Origin.Y / local.Direction.Y
	if !includeBehindOrigin && t < core.NearlyZero {
		return Intersection{}, false
	}
	return newLocalIntersection(p, p.surface, local, t, core.NewVec3(0, 1, 0), p.inside, p.outside), true
}

// IsInside reports whether point lies below the plane
func (p *Plane) IsInside(point core.Vec3) bool {
	return p.WorldToLocalPoint(point).Y < 0
}

// NormalAt is +Y everywhere
func (p *Plane) NormalAt(core.Vec3) core.Vec3 {
	return p.LocalToWorldNormal(core.NewVec3(0, 1, 0))
}
