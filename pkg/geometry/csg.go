package geometry

import (
	"sort"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// Operation selects how a CSG node combines its children
type Operation int

const (
	// OpUnion is inside when any child is
	OpUnion Operation = iota
	// OpIntersect is inside when every child is
	OpIntersect
	// OpMinus is inside the first child and outside all the others
	OpMinus
)

func (o Operation) String() string {
	switch o {
	case OpUnion:
		return "union"
	case OpIntersect:
		return "intersect"
	case OpMinus:
		return "minus"
	default:
		return "unknown"
	}
}

// CSG combines child solids with a boolean operation.
// Only crossings where the combined inside/outside state flips are reported.
type CSG struct {
	BaseShape
	Op       Operation
	children []Shape

	// Override fills the whole solid when set. Otherwise the interior material
	// is blended from the children bounding each interior span.
	Override *material.Material
	Blend    BlendProfile
}

func newCSG(op Operation, children []Shape, transforms []transform.Transform) *CSG {
	c := &CSG{
		BaseShape: newBaseShape(nil, nil, transforms),
		Op:        op,
		children:  children,
	}
	return c
}

// NewUnion creates the union of children
func NewUnion(children []Shape, transforms ...transform.Transform) *CSG {
	return newCSG(OpUnion, children, transforms)
}

// NewIntersect creates the intersection of children
func NewIntersect(children []Shape, transforms ...transform.Transform) *CSG {
	return newCSG(OpIntersect, children, transforms)
}

// NewMinus creates minuend with every subtrahend carved out of it
func NewMinus(minuend Shape, subtrahends []Shape, transforms ...transform.Transform) *CSG {
	children := append([]Shape{minuend}, subtrahends...)
	return newCSG(OpMinus, children, transforms)
}

// Children returns the combined shapes
func (c *CSG) Children() []Shape {
	return c.children
}

// Material returns the override material, or the first child's
func (c *CSG) Material() *material.Material {
	if c.Override != nil {
		return c.Override
	}
	if len(c.children) == 0 {
		return c.inside
	}
	return c.children[0].Material()
}

func (c *CSG) predicate(inside []bool) bool {
	switch c.Op {
	case OpUnion:
		for _, in := range inside {
			if in {
				return true
			}
		}
		return false
	case OpIntersect:
		for _, in := range inside {
			if !in {
				return false
			}
		}
		return len(inside) > 0
	case OpMinus:
		if len(inside) == 0 || !inside[0] {
			return false
		}
		for _, in := range inside[1:] {
			if in {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// membershipOffset is how far before its first crossing a child's containment is sampled
const membershipOffset = 1e-6

type childHit struct {
	Intersection
	child int
}

// boundaries sweeps the children's crossings along a local ray, including those behind
// its origin, and keeps those where the predicate flips.
func (c *CSG) boundaries(local core.Ray) []childHit {
	if len(c.children) == 0 {
		return nil
	}

	inside := make([]bool, len(c.children))
	var all []childHit
	for i, child := range c.children {
		hits := child.Intersections(local, true)
		if len(hits) == 0 {
			// Membership never changes along this line
			inside[i] = child.IsInside(local.Origin)
			continue
		}
		// Sample just before the first crossing; a tangent touch does not flip membership
		inside[i] = child.IsInside(local.At(hits[0].T - membershipOffset))
		for _, hit := range hits {
			all = append(all, childHit{Intersection: hit, child: i})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].T < all[j].T
	})

	state := c.predicate(inside)
	var out []childHit
	for _, hit := range all {
		inside[hit.child] = hit.FrontFace
		now := c.predicate(inside)
		if now == state {
			continue
		}
		state = now
		// The normal already faces the ray; leaving a subtrahend becomes entering the solid
		hit.FrontFace = now
		out = append(out, hit)
	}

	c.assignMaterials(out)
	for i := range out {
		out[i].Shape = c
		if c.surface != nil {
			out[i].Surface = c.surface
		}
	}
	return out
}

// interiorMaterial is the material of the child whose interior lies on the solid's side of hit
func (c *CSG) interiorMaterial(hit childHit) *material.Material {
	if c.Op == OpMinus && hit.child > 0 {
		return c.children[0].Material()
	}
	return c.children[hit.child].Material()
}

// assignMaterials pairs each entry boundary with the following exit boundary and
// blends the two bounding children's materials across that span.
func (c *CSG) assignMaterials(bounds []childHit) {
	for i := range bounds {
		var interior *material.Material
		switch {
		case c.Override != nil:
			interior = c.Override
		case bounds[i].FrontFace && i+1 < len(bounds) && !bounds[i+1].FrontFace:
			interior = c.spanMaterial(bounds[i], bounds[i+1], bounds[i])
		case !bounds[i].FrontFace && i > 0 && bounds[i-1].FrontFace:
			interior = c.spanMaterial(bounds[i-1], bounds[i], bounds[i])
		default:
			interior = c.interiorMaterial(bounds[i])
		}

		if bounds[i].FrontFace {
			bounds[i].Leaving, bounds[i].Entering = c.outside, interior
		} else {
			bounds[i].Leaving, bounds[i].Entering = interior, c.outside
		}
	}
}

// spanMaterial blends from the entry child's material to the exit child's following
// the blend profile. Points given to the result are in the frame of at's LocalPoint;
// their position is their projection onto the entry-exit segment.
func (c *CSG) spanMaterial(entry, exit, at childHit) *material.Material {
	from, to := entry.Point, exit.Point
	span := to.Subtract(from)
	length2 := span.Dot(span)
	profile := c.Blend
	return material.BlendMaterialsBy(c.interiorMaterial(entry), c.interiorMaterial(exit), func(p core.Vec3) float64 {
		if length2 < core.NearlyZero {
			return profile.Weight(0)
		}
		return profile.Weight(at.primitiveToRayFrame(p).Subtract(from).Dot(span) / length2)
	})
}

// Intersections returns the boundaries of the combined solid
func (c *CSG) Intersections(ray core.Ray, includeBehindOrigin bool) []Intersection {
	local := c.WorldToLocalRay(ray)
	bounds := c.boundaries(local)
	hits := make([]Intersection, 0, len(bounds))
	for _, b := range bounds {
		hits = append(hits, toParent(b.Intersection, ray, &c.Transformable))
	}
	return finalize(hits, includeBehindOrigin)
}

// IsInside evaluates the operation over the children's containment of point
func (c *CSG) IsInside(point core.Vec3) bool {
	local := c.WorldToLocalPoint(point)
	inside := make([]bool, len(c.children))
	for i, child := range c.children {
		inside[i] = child.IsInside(local)
	}
	return c.predicate(inside)
}

// NormalAt returns the normal of the combined surface nearest point
func (c *CSG) NormalAt(point core.Vec3) core.Vec3 {
	local := c.WorldToLocalPoint(point)
	normal := probeNormal(local, func(probe core.Ray) []Intersection {
		bounds := c.boundaries(probe)
		hits := make([]Intersection, len(bounds))
		for i, b := range bounds {
			hits[i] = b.Intersection
		}
		return hits
	})
	return c.LocalToWorldNormal(normal)
}
