package core

const (
	// NearlyZero is the distance below which an intersection is treated as
	// lying on the ray origin.
	NearlyZero = 1e-10

	// WorldBound is the "far away" distance. Nothing beyond it is part of the scene.
	WorldBound = 1e10

	// DefaultMaxRecursion is the deepest RecursionLevel that may invoke the
	// full lighting pipeline.
	DefaultMaxRecursion = 4

	// SurfaceOffset nudges spawned ray origins off the surface they leave
	SurfaceOffset = 1e-7
)
