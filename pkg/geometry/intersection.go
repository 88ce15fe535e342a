package geometry

import (
	"sort"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// Intersection describes one point where a ray crosses a shape boundary
type Intersection struct {
	T          float64   // Parameter t along Ray
	Point      core.Vec3 // Point of intersection, in Ray's frame
	LocalPoint core.Vec3 // Point of intersection, in the primitive's own frame
	Normal     core.Vec3 // Unit normal oriented against Ray
	Distance   float64   // Signed distance from the ray origin; negative behind it
	Ray        core.Ray
	Shape      Shape
	Surface    *Surface
	FrontFace  bool // Whether the ray crosses from the shape's outside to its inside
	Leaving    *material.Material
	Entering   *material.Material

	// primitive maps LocalPoint's frame into Ray's frame; nil when they coincide
	primitive *transform.Transform
}

// SurfaceMaterial returns the material on the shape's own side of the boundary
func (i Intersection) SurfaceMaterial() *material.Material {
	if i.FrontFace {
		return i.Entering
	}
	return i.Leaving
}

// OutwardNormal returns the normal pointing out of the shape
func (i Intersection) OutwardNormal() core.Vec3 {
	if i.FrontFace {
		return i.Normal
	}
	return i.Normal.Negate()
}

// AmbientColor returns the ambient color at the intersection
func (i Intersection) AmbientColor() core.Vec3 {
	return i.Surface.AmbientAt(i.LocalPoint)
}

// DiffuseColor returns the diffuse color at the intersection
func (i Intersection) DiffuseColor() core.Vec3 {
	return i.Surface.DiffuseAt(i.LocalPoint)
}

// SpecularColor returns the specular color at the intersection
func (i Intersection) SpecularColor() core.Vec3 {
	return i.Surface.SpecularAt(i.LocalPoint)
}

// EmissiveColor returns the emitted radiance at the intersection
func (i Intersection) EmissiveColor() core.Vec3 {
	return i.Surface.EmissiveAt(i.LocalPoint)
}

// newLocalIntersection builds an intersection in the frame of localRay from an outward normal
func newLocalIntersection(shape Shape, surface *Surface, localRay core.Ray, t float64, outwardNormal core.Vec3, inside, outside *material.Material) Intersection {
	point := localRay.At(t)
	normal := outwardNormal.Normalize()
	frontFace := localRay.Direction.Dot(normal) < 0
	if !frontFace {
		normal = normal.Negate()
	}

	leaving, entering := outside, inside
	if !frontFace {
		leaving, entering = inside, outside
	}

	return Intersection{
		T:          t,
		Point:      point,
		LocalPoint: point,
		Normal:     normal,
		Distance:   t * localRay.Direction.Length(),
		Ray:        localRay,
		Shape:      shape,
		Surface:    surface,
		FrontFace:  frontFace,
		Leaving:    leaving,
		Entering:   entering,
	}
}

// toParent re-expresses an intersection found along a local ray in the frame of parentRay.
// The inverse transpose preserves the sign of normal·direction, so orientation carries over.
func toParent(hit Intersection, parentRay core.Ray, frame *transform.Transformable) Intersection {
	hit.Point = parentRay.At(hit.T)
	hit.Normal = frame.LocalToWorldNormal(hit.Normal)
	hit.Distance = hit.T * parentRay.Direction.Length()
	hit.Ray = parentRay
	if composed, ok := frame.Composed(); ok {
		if hit.primitive != nil {
			composed = hit.primitive.Then(composed)
		}
		hit.primitive = &composed
	}
	return hit
}

// primitiveToRayFrame maps a point from LocalPoint's frame into Ray's frame
func (i Intersection) primitiveToRayFrame(p core.Vec3) core.Vec3 {
	if i.primitive == nil {
		return p
	}
	return i.primitive.Point(p)
}

// sortByDistance orders intersections nearest first
func sortByDistance(hits []Intersection) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
}

// finalize sorts hits and, unless includeBehind is set, drops those at or behind the ray origin
func finalize(hits []Intersection, includeBehind bool) []Intersection {
	if !includeBehind {
		kept := hits[:0]
		for _, hit := range hits {
			if hit.Distance > core.NearlyZero {
				kept = append(kept, hit)
			}
		}
		hits = kept
	}
	sortByDistance(hits)
	return hits
}
