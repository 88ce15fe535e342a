package core

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// UnitBox is the box spanning [-1, 1] on every axis
func UnitBox() AABB {
	return AABB{Min: NewVec3(-1, -1, -1), Max: NewVec3(1, 1, 1)}
}

// WorldBox is the box spanning [-WorldBound, WorldBound] on every axis
func WorldBox() AABB {
	return AABB{Min: NewVec3(-WorldBound, -WorldBound, -WorldBound), Max: NewVec3(WorldBound, WorldBound, WorldBound)}
}

// Contains reports whether point lies inside the box or on its boundary
func (aabb AABB) Contains(point Vec3) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}
