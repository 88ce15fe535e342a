package geometry

import (
	"math"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// Cylinder has unit radius around the local Y axis and spans y in [-1, 1].
// When Capped, the ends are closed by planes.
type Cylinder struct {
	BaseShape
	Capped bool
	caps   [2]*Plane
}

// NewCylinder creates a new cylinder
func NewCylinder(surface *Surface, mat *material.Material, capped bool, transforms ...transform.Transform) *Cylinder {
	c := &Cylinder{BaseShape: newBaseShape(surface, mat, transforms), Capped: capped}
	c.caps[0] = NewPlane(surface, c.inside, c.outside, transform.NewTranslation(0, 1, 0))
	c.caps[1] = NewPlane(surface, c.inside, c.outside, transform.NewRotation(180, 0, 0), transform.NewTranslation(0, -1, 0))
	return c
}

// SetMaterial replaces the material filling the cylinder
func (c *Cylinder) SetMaterial(m *material.Material) {
	c.inside = m
	for _, end := range c.caps {
		end.inside = m
	}
}

// SetOutsideMaterial sets the material surrounding the cylinder
func (c *Cylinder) SetOutsideMaterial(m *material.Material) {
	c.outside = m
	for _, end := range c.caps {
		end.outside = m
	}
}

// Intersections intersects the circle in XZ, clips by height and adds cap hits
func (c *Cylinder) Intersections(ray core.Ray, includeBehindOrigin bool) []Intersection {
	local := c.WorldToLocalRay(ray)
	hits := make([]Intersection, 0, 2)

	// Side: (ox + t·dx)² + (oz + t·dz)² = 1
	a := local.Direction.X*local.Direction.X + local.Direction.Z*local.Direction.Z
	if a > core.NearlyZero {
		halfB := local.Origin.X*local.Direction.X + local.Origin.Z*local.Direction.Z
		cc := local.Origin.X*local.Origin.X + local.Origin.Z*local.Origin.Z - 1
		discriminant := halfB*halfB - a*cc
		if discriminant >= 0 {
			sqrtD := math.Sqrt(discriminant)
			for _, root := range [2]float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
				point := local.At(root)
				if math.Abs(point.Y) > 1 {
					continue
				}
				hit := newLocalIntersection(c, c.surface, local, root, core.NewVec3(point.X, 0, point.Z), c.inside, c.outside)
				hits = append(hits, toParent(hit, ray, &c.Transformable))
			}
		}
	}

	if c.Capped {
		for _, end := range c.caps {
			for _, hit := range end.Intersections(local, true) {
				if hit.Point.X*hit.Point.X+hit.Point.Z*hit.Point.Z > 1+boxTolerance {
					continue
				}
				hit.Shape = c
				hit.Surface = c.surface
				hit.LocalPoint, hit.primitive = hit.Point, nil
				hits = append(hits, toParent(hit, ray, &c.Transformable))
			}
		}
	}

	sortByDistance(hits)
	return finalize(dedupeEdges(hits), includeBehindOrigin)
}

// IsInside reports whether point lies strictly within the cylinder's volume
func (c *Cylinder) IsInside(point core.Vec3) bool {
	local := c.WorldToLocalPoint(point)
	return local.X*local.X+local.Z*local.Z < 1 && math.Abs(local.Y) < 1
}

// NormalAt projects the point onto the XZ plane, or returns the cap normal when a cap is nearer
func (c *Cylinder) NormalAt(point core.Vec3) core.Vec3 {
	local := c.WorldToLocalPoint(point)
	radial := math.Sqrt(local.X*local.X + local.Z*local.Z)
	if c.Capped && 1-math.Abs(local.Y) < math.Abs(1-radial) {
		return c.LocalToWorldNormal(core.NewVec3(0, math.Copysign(1, local.Y), 0))
	}
	if radial == 0 {
		return c.LocalToWorldNormal(core.NewVec3(1, 0, 0))
	}
	return c.LocalToWorldNormal(core.NewVec3(local.X, 0, local.Z))
}
