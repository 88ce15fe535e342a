package geometry

import (
	"math"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// Sphere is the unit sphere centered on its local origin.
// Position and size come from its transforms.
type Sphere struct {
	BaseShape
}

// NewSphere creates a new sphere
func NewSphere(surface *Surface, mat *material.Material, transforms ...transform.Transform) *Sphere {
	return &Sphere{BaseShape: newBaseShape(surface, mat, transforms)}
}

// Intersections solves the ray/sphere quadratic in local space
func (s *Sphere) Intersections(ray core.Ray, includeBehindOrigin bool) []Intersection {
	local := s.WorldToLocalRay(ray)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := local.Direction.Dot(local.Direction)
	if a == 0 {
		return nil
	}
	halfB := local.Origin.Dot(local.Direction)
	c := local.Origin.Dot(local.Origin) - 1

	discriminant := halfB*halfB - a*c
	// A tangent touch never crosses into the sphere
	if discriminant <= 0 {
		return nil
	}
	sqrtD := math.Sqrt(discriminant)

	hits := make([]Intersection, 0, 2)
	for _, root := range [2]float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		// Roots on the origin are self-intersections
		if !includeBehindOrigin && math.Abs(root) < core.NearlyZero {
			continue
		}
		point := local.At(root)
		hit := newLocalIntersection(s, s.surface, local, root, point, s.inside, s.outside)
		hits = append(hits, toParent(hit, ray, &s.Transformable))
	}
	return finalize(hits, includeBehindOrigin)
}

// IsInside reports whether point is within unit distance of the local origin
func (s *Sphere) IsInside(point core.Vec3) bool {
	return s.WorldToLocalPoint(point).LengthSquared() < 1
}

// NormalAt returns the outward normal through the local point
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	local := s.WorldToLocalPoint(point)
	if local.IsZero() {
		local = core.NewVec3(0, 1, 0)
	}
	return s.LocalToWorldNormal(local)
}
