package geometry

import (
	"math"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// PerturbFunc rewrites an outward normal given the primitive-local hit point
type PerturbFunc func(normal, localPoint core.Vec3) core.Vec3

// NormalPerturber wraps a shape and rewrites the normals it reports, leaving its geometry alone
type NormalPerturber struct {
	BaseShape
	Child   Shape
	Perturb PerturbFunc
}

// NewNormalPerturber wraps child
func NewNormalPerturber(child Shape, perturb PerturbFunc, transforms ...transform.Transform) *NormalPerturber {
	return &NormalPerturber{
		BaseShape: newBaseShape(nil, nil, transforms),
		Child:     child,
		Perturb:   perturb,
	}
}

// Ripple perturbs normals with a sine wave across the local XZ plane
func Ripple(amplitude, frequency float64) PerturbFunc {
	return func(normal, p core.Vec3) core.Vec3 {
		return normal.Add(core.NewVec3(
			amplitude*math.Sin(frequency*p.X),
			0,
			amplitude*math.Sin(frequency*p.Z),
		))
	}
}

// Intersections returns the child's intersections with rewritten normals
func (n *NormalPerturber) Intersections(ray core.Ray, includeBehindOrigin bool) []Intersection {
	local := n.WorldToLocalRay(ray)
	childHits := n.Child.Intersections(local, includeBehindOrigin)
	hits := make([]Intersection, 0, len(childHits))
	for _, hit := range childHits {
		normal := n.Perturb(hit.OutwardNormal(), hit.LocalPoint).Normalize()
		if normal.IsZero() {
			normal = hit.OutwardNormal()
		}
		if normal.Dot(local.Direction) > 0 {
			normal = normal.Negate()
		}
		hit.Normal = normal
		hit.Shape = n
		hits = append(hits, toParent(hit, ray, &n.Transformable))
	}
	return hits
}

// IsInside delegates to the child
func (n *NormalPerturber) IsInside(point core.Vec3) bool {
	return n.Child.IsInside(n.WorldToLocalPoint(point))
}

// NormalAt returns the child's normal, unperturbed
func (n *NormalPerturber) NormalAt(point core.Vec3) core.Vec3 {
	return n.LocalToWorldNormal(n.Child.NormalAt(n.WorldToLocalPoint(point)))
}

// Surface returns the child's surface
func (n *NormalPerturber) Surface() *Surface {
	return n.Child.Surface()
}

// Material returns the child's material
func (n *NormalPerturber) Material() *material.Material {
	return n.Child.Material()
}
