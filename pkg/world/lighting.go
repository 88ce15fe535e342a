package world

import (
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
)

// LightingModel computes the radiance carried back along a ray.
// hits are every intersection along ray, nearest first. It returns false when
// the model has nothing to say about the ray, typically because hits is empty.
type LightingModel interface {
	DetermineRayColor(w *World, ray core.Ray, hits []geometry.Intersection) (LightingResult, bool)
}

// LightingResult is the outcome of shading one ray.
// Contributions break Radiance down into weighted sub-results, so photon paths
// can choose how to continue. A result with no contributions is a leaf.
type LightingResult struct {
	Eye      core.Ray
	Point    core.Vec3
	Normal   core.Vec3
	Radiance core.Vec3
	// Tint filters light passing from this result to its parent; nil means unfiltered
	Tint          *core.Vec3
	Contributions []Contribution
	// Missed is set when the ray left the scene without striking a surface
	Missed bool
}

// Contribution is a weighted sub-result
type Contribution struct {
	Result LightingResult
	Weight float64
}

// TintColor returns the tint, or white when there is none
func (r LightingResult) TintColor() core.Vec3 {
	if r.Tint == nil {
		return core.NewVec3(1, 1, 1)
	}
	return *r.Tint
}

// IsLeaf reports whether nothing carries light onward from this result
func (r LightingResult) IsLeaf() bool {
	for _, c := range r.Contributions {
		if c.Weight > 0 {
			return false
		}
	}
	return true
}

// Camera turns sensor coordinates into eye rays
type Camera interface {
	// GenerateRay returns the world-space eye ray through sensor point (x, y).
	// The sensor is centered on (0, 0) with +y up.
	GenerateRay(x, y float64) core.Ray
}
