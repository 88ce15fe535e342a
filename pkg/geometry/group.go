package geometry

import (
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// Group places several shapes under one transform. Each child keeps its own boundaries.
type Group struct {
	BaseShape
	children []Shape
}

// NewGroup creates a group of shapes
func NewGroup(children []Shape, transforms ...transform.Transform) *Group {
	return &Group{
		BaseShape: newBaseShape(nil, nil, transforms),
		children:  children,
	}
}

// Add appends a child
func (g *Group) Add(child Shape) {
	g.children = append(g.children, child)
}

// Children returns the group's children
func (g *Group) Children() []Shape {
	return g.children
}

// Intersections concatenates every child's intersections
func (g *Group) Intersections(ray core.Ray, includeBehindOrigin bool) []Intersection {
	local := g.WorldToLocalRay(ray)
	var hits []Intersection
	for _, child := range g.children {
		for _, hit := range child.Intersections(local, includeBehindOrigin) {
			hits = append(hits, toParent(hit, ray, &g.Transformable))
		}
	}
	return finalize(hits, includeBehindOrigin)
}

// IsInside reports whether any child contains point
func (g *Group) IsInside(point core.Vec3) bool {
	local := g.WorldToLocalPoint(point)
	for _, child := range g.children {
		if child.IsInside(local) {
			return true
		}
	}
	return false
}

// NormalAt returns the normal of whichever child surface is nearest point
func (g *Group) NormalAt(point core.Vec3) core.Vec3 {
	local := g.WorldToLocalPoint(point)
	normal := probeNormal(local, func(probe core.Ray) []Intersection {
		var hits []Intersection
		for _, child := range g.children {
			hits = append(hits, child.Intersections(probe, true)...)
		}
		return hits
	})
	return g.LocalToWorldNormal(normal)
}

// Material returns the first child's material
func (g *Group) Material() *material.Material {
	if len(g.children) == 0 {
		return g.inside
	}
	return g.children[0].Material()
}

// probeNormal casts a ray from the local origin through point and returns
// the outward normal of the hit nearest point, in the same frame.
func probeNormal(point core.Vec3, intersect func(probe core.Ray) []Intersection) core.Vec3 {
	direction := point
	if direction.IsZero() {
		direction = core.NewVec3(0, 1, 0)
	}
	hits := intersect(core.NewRay(core.Vec3{}, direction))
	if len(hits) == 0 {
		return core.NewVec3(0, 1, 0)
	}

	best := hits[0]
	bestDistance := best.Point.Distance(point)
	for _, hit := range hits[1:] {
		if d := hit.Point.Distance(point); d < bestDistance {
			best, bestDistance = hit, d
		}
	}
	return best.OutwardNormal()
}
