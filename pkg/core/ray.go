package core

// Ray represents a ray with an origin and direction.
//
// RecursionLevel starts at 1 for rays shot from the camera or a light and
// grows by one every time a reflected or refracted ray is spawned.
type Ray struct {
	Origin         Vec3
	Direction      Vec3
	RecursionLevel int
}

// NewRay creates a new first-generation ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, RecursionLevel: 1}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Spawn creates a child ray one recursion level deeper than r
func (r Ray) Spawn(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, RecursionLevel: r.RecursionLevel + 1}
}

// Normalized returns a copy of the ray with a unit-length direction
func (r Ray) Normalized() Ray {
	r.Direction = r.Direction.Normalize()
	return r
}
