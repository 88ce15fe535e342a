package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// overlappingSpheres returns unit spheres centered on the origin and on (1, 0, 0)
func overlappingSpheres() (*Sphere, *Sphere) {
	a := NewSphere(grey(), material.NewGlass(1.5, core.NewVec3(1, 1, 1)))
	b := NewSphere(grey(), material.NewOpaque(core.NewVec3(1, 0, 0)), transform.NewTranslation(1, 0, 0))
	return a, b
}

func xs(hits []Intersection) []float64 {
	out := make([]float64, len(hits))
	for i, hit := range hits {
		out[i] = hit.Point.X
	}
	return out
}

func TestCSG_Union(t *testing.T) {
	a, b := overlappingSpheres()
	union := NewUnion([]Shape{a, b})
	ray := core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0))

	hits := union.Intersections(ray, false)
	require.Len(t, hits, 2)
	assert.InDeltaSlice(t, []float64{-1, 2}, xs(hits), tolerance)
	assert.True(t, hits[0].FrontFace)
	assert.False(t, hits[1].FrontFace)
	assertOrientedAgainst(t, ray, hits)
	for _, hit := range hits {
		assert.Equal(t, Shape(union), hit.Shape)
	}

	// Linear blend: pure entry material at the entry, pure exit material at the exit
	assert.InDelta(t, 1, hits[0].Entering.TransparencyAt(hits[0].LocalPoint), tolerance)
	assert.InDelta(t, 1.5, hits[0].Entering.RefractiveIndexAt(hits[0].LocalPoint), tolerance)
	assert.InDelta(t, 0, hits[1].Leaving.TransparencyAt(hits[1].LocalPoint), tolerance)
	assert.InDelta(t, 1, hits[1].Leaving.RefractiveIndexAt(hits[1].LocalPoint), tolerance)
	assert.Same(t, material.Air(), hits[0].Leaving)
}

func TestCSG_Intersect(t *testing.T) {
	a, b := overlappingSpheres()
	lens := NewIntersect([]Shape{a, b})
	ray := core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0))

	hits := lens.Intersections(ray, false)
	require.Len(t, hits, 2)
	assert.InDeltaSlice(t, []float64{0, 1}, xs(hits), tolerance)
	for _, x := range xs(hits) {
		assert.GreaterOrEqual(t, x, -1.0)
		assert.LessOrEqual(t, x, 2.0)
	}
	assert.True(t, hits[0].FrontFace)
	assert.False(t, hits[1].FrontFace)
	assertOrientedAgainst(t, ray, hits)

	assert.True(t, lens.IsInside(core.NewVec3(0.5, 0, 0)))
	assert.False(t, lens.IsInside(core.NewVec3(-0.5, 0, 0)))
}

func TestCSG_Minus(t *testing.T) {
	a, b := overlappingSpheres()
	carved := NewMinus(a, []Shape{b})

	forward := core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0))
	hits := carved.Intersections(forward, false)
	require.Len(t, hits, 2)
	assert.InDeltaSlice(t, []float64{-1, 0}, xs(hits), tolerance)
	assert.True(t, hits[0].FrontFace)
	assert.False(t, hits[1].FrontFace)
	assertOrientedAgainst(t, forward, hits)

	// From the other side the first visible surface is the carved-out face of the subtrahend
	backward := core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0))
	hits = carved.Intersections(backward, false)
	require.Len(t, hits, 2)
	assert.InDeltaSlice(t, []float64{0, -1}, xs(hits), tolerance)
	assert.True(t, hits[0].FrontFace)
	assertVec(t, core.NewVec3(1, 0, 0), hits[0].Normal)
	assert.Same(t, a.Material(), hits[0].Entering, "carved region is filled by the minuend")
	assertOrientedAgainst(t, backward, hits)

	assert.True(t, carved.IsInside(core.NewVec3(-0.5, 0, 0)))
	assert.False(t, carved.IsInside(core.NewVec3(0.5, 0, 0)))
}

func TestCSG_MissesEntirely(t *testing.T) {
	a, b := overlappingSpheres()
	union := NewUnion([]Shape{a, b})
	assert.Empty(t, union.Intersections(core.NewRay(core.NewVec3(-5, 3, 0), core.NewVec3(1, 0, 0)), false))
	assert.Empty(t, NewIntersect(nil).Intersections(core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)), false))
}

func TestCSG_OriginInside(t *testing.T) {
	a, b := overlappingSpheres()
	union := NewUnion([]Shape{a, b})
	ray := core.NewRay(core.NewVec3(0.5, 0, 0), core.NewVec3(1, 0, 0))

	hits := union.Intersections(ray, false)
	require.Len(t, hits, 1)
	assert.InDelta(t, 2, hits[0].Point.X, tolerance)
	assert.False(t, hits[0].FrontFace)

	all := union.Intersections(ray, true)
	require.Len(t, all, 2)
	assert.Less(t, all[0].Distance, 0.0)
}

func TestCSG_Override(t *testing.T) {
	a, b := overlappingSpheres()
	union := NewUnion([]Shape{a, b}, transform.NewTranslation(0, 0, 4))
	override := material.NewMirror(0.9, core.NewVec3(1, 1, 1))
	union.Override = override
	surface := NewSurface(core.NewVec3(0, 0, 1))
	union.SetSurface(surface)

	ray := core.NewRay(core.NewVec3(-5, 0, 4), core.NewVec3(1, 0, 0))
	hits := union.Intersections(ray, false)
	require.Len(t, hits, 2)
	assert.Same(t, override, hits[0].Entering)
	assert.Same(t, override, hits[1].Leaving)
	assert.Same(t, surface, hits[0].Surface)
	assert.Same(t, override, union.Material())
	assertVec(t, core.NewVec3(-1, 0, 4), hits[0].Point)
}

func TestCSG_ConstantBlend(t *testing.T) {
	a, b := overlappingSpheres()
	union := NewUnion([]Shape{a, b})
	union.Blend = ConstantBlendProfile(0.5)

	hits := union.Intersections(core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)), false)
	require.Len(t, hits, 2)
	// Glass and opaque averaged
	assert.InDelta(t, 0.5, hits[0].Entering.TransparencyAt(core.Vec3{}), tolerance)
	assert.InDelta(t, 1.25, hits[1].Leaving.RefractiveIndexAt(core.Vec3{}), tolerance)
}

func TestCSG_BlendFollowsProfileAcrossSpan(t *testing.T) {
	peaked, err := NewBlendProfile([]float64{0, 0.5, 1}, []float64{0, 1, 0})
	require.NoError(t, err)

	tests := []struct {
		name     string
		profile  BlendProfile
		midpoint float64 // glass transparency halfway through the span
	}{
		{"linear", LinearBlendProfile(), 0.5},
		{"constant", ConstantBlendProfile(0), 1},
		{"peaked", peaked, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := overlappingSpheres()
			union := NewUnion([]Shape{a, b})
			union.Blend = tt.profile

			// The interior span runs from x=-1 (sphere a) to x=2 (sphere b)
			hits := union.Intersections(core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)), false)
			require.Len(t, hits, 2)
			entry, exit := hits[0].Entering, hits[1].Leaving

			// Entry material takes points in a's frame, exit material in b's (offset by 1 along X)
			assert.InDelta(t, tt.midpoint, entry.TransparencyAt(core.NewVec3(0.5, 0, 0)), tolerance)
			assert.InDelta(t, tt.midpoint, exit.TransparencyAt(core.NewVec3(-0.5, 0, 0)), tolerance)
			assert.InDelta(t, 1-tt.profile.Weight(0), entry.TransparencyAt(hits[0].LocalPoint), tolerance)
			assert.InDelta(t, 1-tt.profile.Weight(1), exit.TransparencyAt(hits[1].LocalPoint), tolerance)
		})
	}
}

func TestCSG_BlendPositionInCubeFrame(t *testing.T) {
	box := NewCube(grey(), material.NewGlass(1.5, core.NewVec3(1, 1, 1)), transform.NewTranslation(-1, 0, 0))
	ball := NewSphere(grey(), material.NewOpaque(core.NewVec3(1, 0, 0)), transform.NewTranslation(1, 0, 0))
	union := NewUnion([]Shape{box, ball})

	// Span runs from the cube's face at x=-2 to the sphere at x=2
	hits := union.Intersections(core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)), false)
	require.Len(t, hits, 2)
	assertVec(t, core.NewVec3(-1, 0, 0), hits[0].LocalPoint)

	// x=0 is the midpoint; in the cube's frame that is x=1
	assert.InDelta(t, 0.5, hits[0].Entering.TransparencyAt(core.NewVec3(1, 0, 0)), tolerance)
	assert.InDelta(t, 1, hits[0].Entering.TransparencyAt(hits[0].LocalPoint), tolerance)
}

func TestCSG_GrazingRayDoesNotOccupyChild(t *testing.T) {
	unit := NewSphere(grey(), nil)
	far := NewSphere(grey(), nil, transform.NewTranslation(-3, 1, 0))
	// Touches the unit sphere only at (0, 1, 0) after passing through the other sphere
	ray := core.NewRay(core.NewVec3(-10, 1, 0), core.NewVec3(1, 0, 0))

	assert.Empty(t, NewIntersect([]Shape{unit, far}).Intersections(ray, true))

	carved := NewMinus(far, []Shape{unit}).Intersections(ray, false)
	require.Len(t, carved, 2)
	assert.InDeltaSlice(t, []float64{-4, -2}, xs(carved), tolerance)

	union := NewUnion([]Shape{unit, far}).Intersections(ray, false)
	assert.InDeltaSlice(t, []float64{-4, -2}, xs(union), tolerance)
}

func TestCSG_NormalAt(t *testing.T) {
	a, b := overlappingSpheres()
	union := NewUnion([]Shape{a, b})
	assertVec(t, core.NewVec3(1, 0, 0), union.NormalAt(core.NewVec3(2, 0, 0)))
	assertVec(t, core.NewVec3(-1, 0, 0), union.NormalAt(core.NewVec3(-1, 0, 0)))

	carved := NewMinus(a, []Shape{b})
	assertVec(t, core.NewVec3(-1, 0, 0), carved.NormalAt(core.NewVec3(-1, 0, 0)))
}

func TestCSG_Nested(t *testing.T) {
	a, b := overlappingSpheres()
	lens := NewIntersect([]Shape{a, b})
	cube := NewCube(grey(), nil, transform.NewUniformScale(0.25), transform.NewTranslation(0.5, 0, 0))
	holed := NewMinus(lens, []Shape{cube})

	ray := core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0))
	hits := holed.Intersections(ray, false)
	require.Len(t, hits, 4)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.75, 1}, xs(hits), tolerance)
	assertOrientedAgainst(t, ray, hits)
}

func TestBlendProfile(t *testing.T) {
	var zero BlendProfile
	assert.InDelta(t, 0.3, zero.Weight(0.3), tolerance)
	assert.Equal(t, 1.0, zero.Weight(4))

	profile, err := NewBlendProfile([]float64{0, 0.5, 1}, []float64{0, 0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0, profile.Weight(0.25), tolerance)
	assert.InDelta(t, 0.5, profile.Weight(0.75), tolerance)
	assert.InDelta(t, 1, profile.Weight(2), tolerance)

	_, err = NewBlendProfile([]float64{0, 1}, []float64{0})
	assert.Error(t, err)
	_, err = NewBlendProfile([]float64{1, 0}, []float64{0, 1})
	assert.Error(t, err)
	_, err = NewBlendProfile([]float64{0, 1}, []float64{0, 2})
	assert.Error(t, err)
}
