package geometry

import (
	"math"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// boxTolerance lets points that land on an edge through rounding still count as inside the box
const boxTolerance = 1e-9

// Cube spans [-1, 1] on every local axis. It is bounded by six planes, each facing outward.
type Cube struct {
	BaseShape
	faces [6]*Plane
}

// NewCube creates a new cube
func NewCube(surface *Surface, mat *material.Material, transforms ...transform.Transform) *Cube {
	c := &Cube{BaseShape: newBaseShape(surface, mat, transforms)}

	// Each face rotates the plane's +Y normal onto an axis, then moves it out to the box wall
	placements := [6][2]transform.Transform{
		{transform.NewRotation(0, 0, 0), transform.NewTranslation(0, 1, 0)},
		{transform.NewRotation(180, 0, 0), transform.NewTranslation(0, -1, 0)},
		{transform.NewRotation(0, 0, -90), transform.NewTranslation(1, 0, 0)},
		{transform.NewRotation(0, 0, 90), transform.NewTranslation(-1, 0, 0)},
		{transform.NewRotation(90, 0, 0), transform.NewTranslation(0, 0, 1)},
		{transform.NewRotation(-90, 0, 0), transform.NewTranslation(0, 0, -1)},
	}
	for i, placement := range placements {
		c.faces[i] = NewPlane(surface, c.inside, c.outside, placement[0], placement[1])
	}
	return c
}

// SetMaterial replaces the material filling the cube
func (c *Cube) SetMaterial(m *material.Material) {
	c.inside = m
	for _, face := range c.faces {
		face.inside = m
	}
}

// SetOutsideMaterial sets the material surrounding the cube
func (c *Cube) SetOutsideMaterial(m *material.Material) {
	c.outside = m
	for _, face := range c.faces {
		face.outside = m
	}
}

// Intersections intersects each face and keeps the hits that lie on the box
func (c *Cube) Intersections(ray core.Ray, includeBehindOrigin bool) []Intersection {
	local := c.WorldToLocalRay(ray)
	box := core.UnitBox().Expand(boxTolerance)

	hits := make([]Intersection, 0, 2)
	for _, face := range c.faces {
		for _, hit := range face.Intersections(local, true) {
			if !box.Contains(hit.Point) {
				continue
			}
			hit.Shape = c
			hit.Surface = c.surface
			hit.LocalPoint, hit.primitive = hit.Point, nil
			hits = append(hits, toParent(hit, ray, &c.Transformable))
		}
	}

	sortByDistance(hits)
	return finalize(dedupeEdges(hits), includeBehindOrigin)
}

// dedupeEdges drops the second of two hits at the same parameter crossing the same way,
// which happens when a ray passes exactly through an edge or corner.
func dedupeEdges(sorted []Intersection) []Intersection {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, hit := range sorted[1:] {
		prev := out[len(out)-1]
		if math.Abs(hit.T-prev.T) < boxTolerance && hit.FrontFace == prev.FrontFace {
			continue
		}
		out = append(out, hit)
	}
	return out
}

// IsInside reports whether point lies strictly within the box
func (c *Cube) IsInside(point core.Vec3) bool {
	local := c.WorldToLocalPoint(point)
	return math.Abs(local.X) < 1 && math.Abs(local.Y) < 1 && math.Abs(local.Z) < 1
}

// NormalAt returns the normal of the face nearest point
func (c *Cube) NormalAt(point core.Vec3) core.Vec3 {
	local := c.WorldToLocalPoint(point)
	axis := 0
	for a := 1; a < 3; a++ {
		if math.Abs(local.Axis(a)) > math.Abs(local.Axis(axis)) {
			axis = a
		}
	}
	var normal core.Vec3
	sign := math.Copysign(1, local.Axis(axis))
	switch axis {
	case 0:
		normal = core.NewVec3(sign, 0, 0)
	case 1:
		normal = core.NewVec3(0, sign, 0)
	default:
		normal = core.NewVec3(0, 0, sign)
	}
	return c.LocalToWorldNormal(normal)
}
