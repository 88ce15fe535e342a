package material

import (
	"math"

	"github.com/snowjak88/ray2/pkg/core"
)

// BlendMaterials returns a material that linearly interpolates every property of a and b.
// A fraction of 0 yields a, 1 yields b. The fraction is clamped to [0, 1].
func BlendMaterials(a, b *Material, fraction float64) *Material {
	fraction = math.Max(0.0, math.Min(fraction, 1.0))
	if a == b || fraction == 0 {
		return a
	}
	if fraction == 1 {
		return b
	}
	return BlendMaterialsBy(a, b, func(core.Vec3) float64 { return fraction })
}

// BlendMaterialsBy interpolates every property of a and b point by point.
// fraction gives b's share at each point and is clamped to [0, 1].
func BlendMaterialsBy(a, b *Material, fraction func(point core.Vec3) float64) *Material {
	if a == b {
		return a
	}
	share := func(p core.Vec3) float64 {
		return math.Max(0.0, math.Min(fraction(p), 1.0))
	}

	blendColor := func(ca, cb func(core.Vec3) core.Vec3) ColorScheme {
		return NewFunctionalColorScheme(func(p core.Vec3) core.Vec3 {
			return ca(p).Lerp(cb(p), share(p))
		})
	}
	blendScalar := func(sa, sb func(core.Vec3) float64) ScalarFunc {
		return func(p core.Vec3) float64 {
			f := share(p)
			return sa(p)*(1.0-f) + sb(p)*f
		}
	}

	return &Material{
		Name:            a.Name + "+" + b.Name,
		SurfaceColor:    blendColor(a.SurfaceColorAt, b.SurfaceColorAt),
		InternalColor:   blendColor(a.InternalColorAt, b.InternalColorAt),
		ReflectiveColor: blendColor(a.ReflectiveColorAt, b.ReflectiveColorAt),
		Transparency:    blendScalar(a.TransparencyAt, b.TransparencyAt),
		Reflectivity:    blendScalar(a.ReflectivityAt, b.ReflectivityAt),
		RefractiveIndex: blendScalar(a.RefractiveIndexAt, b.RefractiveIndexAt),
	}
}
