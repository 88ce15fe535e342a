package transform

import (
	"gonum.org/v1/gonum/mat"

	"github.com/snowjak88/ray2/pkg/core"
)

// Transformable owns an ordered sequence of transforms.
// Local-to-world applies them in insertion order; world-to-local applies their inverses in reverse.
// The zero value is the identity.
type Transformable struct {
	transforms []Transform
	composed   *Transform
}

// NewTransformable creates a Transformable with the given sequence
func NewTransformable(transforms ...Transform) Transformable {
	var t Transformable
	for _, tr := range transforms {
		t.AddTransform(tr)
	}
	return t
}

// AddTransform appends a transform to the end of the sequence
func (t *Transformable) AddTransform(tr Transform) {
	// Copy on write so Transformables sharing a backing array never see each other's appends
	transforms := make([]Transform, len(t.transforms), len(t.transforms)+1)
	copy(transforms, t.transforms)
	t.transforms = append(transforms, tr)

	var composed Transform
	if t.composed == nil {
		composed = tr
	} else {
		composed = t.composed.Then(tr)
	}
	t.composed = &composed
}

// Transforms returns a copy of the sequence
func (t *Transformable) Transforms() []Transform {
	out := make([]Transform, len(t.transforms))
	copy(out, t.transforms)
	return out
}

// Composed returns the single transform equivalent to the whole sequence.
// It reports false for an empty sequence.
func (t *Transformable) Composed() (Transform, bool) {
	if t.composed == nil {
		return Transform{}, false
	}
	return *t.composed, true
}

// Matrix returns the composed local-to-world matrix
func (t *Transformable) Matrix() *mat.Dense {
	if t.composed == nil {
		return Identity().Matrix()
	}
	return t.composed.Matrix()
}

// LocalToWorldPoint maps a point from local to world coordinates
func (t *Transformable) LocalToWorldPoint(p core.Vec3) core.Vec3 {
	if t.composed == nil {
		return p
	}
	return t.composed.Point(p)
}

// WorldToLocalPoint maps a point from world to local coordinates
func (t *Transformable) WorldToLocalPoint(p core.Vec3) core.Vec3 {
	if t.composed == nil {
		return p
	}
	return t.composed.InversePoint(p)
}

// LocalToWorldVector maps a direction from local to world coordinates
func (t *Transformable) LocalToWorldVector(v core.Vec3) core.Vec3 {
	if t.composed == nil {
		return v
	}
	return t.composed.Vector(v)
}

// WorldToLocalVector maps a direction from world to local coordinates
func (t *Transformable) WorldToLocalVector(v core.Vec3) core.Vec3 {
	if t.composed == nil {
		return v
	}
	return t.composed.InverseVector(v)
}

// LocalToWorldNormal maps a surface normal into world coordinates and normalizes it
func (t *Transformable) LocalToWorldNormal(n core.Vec3) core.Vec3 {
	if t.composed == nil {
		return n.Normalize()
	}
	return t.composed.Normal(n).Normalize()
}

// WorldToLocalNormal maps a surface normal into local coordinates and normalizes it
func (t *Transformable) WorldToLocalNormal(n core.Vec3) core.Vec3 {
	if t.composed == nil {
		return n.Normalize()
	}
	return t.composed.InverseNormal(n).Normalize()
}

// LocalToWorldRay maps a ray's origin as a point and its direction as a vector.
// The direction is not renormalized, so ray parameters are preserved across frames.
func (t *Transformable) LocalToWorldRay(r core.Ray) core.Ray {
	r.Origin = t.LocalToWorldPoint(r.Origin)
	r.Direction = t.LocalToWorldVector(r.Direction)
	return r
}

// WorldToLocalRay maps a ray from world to local coordinates, preserving ray parameters
func (t *Transformable) WorldToLocalRay(r core.Ray) core.Ray {
	r.Origin = t.WorldToLocalPoint(r.Origin)
	r.Direction = t.WorldToLocalVector(r.Direction)
	return r
}
