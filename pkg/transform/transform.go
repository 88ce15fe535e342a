package transform

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/snowjak88/ray2/pkg/core"
)

var (
	// ErrSingularMatrix is returned when a general matrix has no inverse
	ErrSingularMatrix = errors.New("transform: matrix is singular")
	// ErrNotAffine is returned when a general matrix is not a 4x4 affine map
	ErrNotAffine = errors.New("transform: matrix is not a 4x4 affine map")
)

// affine holds the top three rows of a 4x4 homogeneous matrix whose bottom row is (0,0,0,1)
type affine [3][4]float64

func affineFrom(m mat.Matrix) affine {
	var a affine
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			a[r][c] = m.At(r, c)
		}
	}
	return a
}

func (a *affine) point(p core.Vec3) core.Vec3 {
	return core.Vec3{
		X: a[0][0]*p.X + a[0][1]*p.Y + a[0][2]*p.Z + a[0][3],
		Y: a[1][0]*p.X + a[1][1]*p.Y + a[1][2]*p.Z + a[1][3],
		Z: a[2][0]*p.X + a[2][1]*p.Y + a[2][2]*p.Z + a[2][3],
	}
}

func (a *affine) vector(v core.Vec3) core.Vec3 {
	return core.Vec3{
		X: a[0][0]*v.X + a[0][1]*v.Y + a[0][2]*v.Z,
		Y: a[1][0]*v.X + a[1][1]*v.Y + a[1][2]*v.Z,
		Z: a[2][0]*v.X + a[2][1]*v.Y + a[2][2]*v.Z,
	}
}

// transposedVector multiplies by the transpose of the linear part
func (a *affine) transposedVector(v core.Vec3) core.Vec3 {
	return core.Vec3{
		X: a[0][0]*v.X + a[1][0]*v.Y + a[2][0]*v.Z,
		Y: a[0][1]*v.X + a[1][1]*v.Y + a[2][1]*v.Z,
		Z: a[0][2]*v.X + a[1][2]*v.Y + a[2][2]*v.Z,
	}
}

// Transform maps coordinates from a local frame into its parent frame.
// It carries both the forward matrix and its inverse so neither direction needs a solve.
type Transform struct {
	forward *mat.Dense
	inverse *mat.Dense

	fwd affine
	inv affine
}

func newTransform(forward, inverse *mat.Dense) Transform {
	return Transform{
		forward: forward,
		inverse: inverse,
		fwd:     affineFrom(forward),
		inv:     affineFrom(inverse),
	}
}

func homogeneous(rows [3][4]float64) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		rows[0][0], rows[0][1], rows[0][2], rows[0][3],
		rows[1][0], rows[1][1], rows[1][2], rows[1][3],
		rows[2][0], rows[2][1], rows[2][2], rows[2][3],
		0, 0, 0, 1,
	})
}

// Identity returns the transform that leaves everything in place
func Identity() Transform {
	id := [3][4]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}}
	return newTransform(homogeneous(id), homogeneous(id))
}

// NewTranslation moves points by (dx, dy, dz). Vectors are unaffected.
func NewTranslation(dx, dy, dz float64) Transform {
	return newTransform(
		homogeneous([3][4]float64{{1, 0, 0, dx}, {0, 1, 0, dy}, {0, 0, 1, dz}}),
		homogeneous([3][4]float64{{1, 0, 0, -dx}, {0, 1, 0, -dy}, {0, 0, 1, -dz}}),
	)
}

// NewScale scales each axis independently. A zero factor has no inverse and panics.
func NewScale(sx, sy, sz float64) Transform {
	if sx == 0 || sy == 0 || sz == 0 {
		panic(fmt.Sprintf("scale factors must be non-zero, got (%g, %g, %g)", sx, sy, sz))
	}
	return newTransform(
		homogeneous([3][4]float64{{sx, 0, 0, 0}, {0, sy, 0, 0}, {0, 0, sz, 0}}),
		homogeneous([3][4]float64{{1 / sx, 0, 0, 0}, {0, 1 / sy, 0, 0}, {0, 0, 1 / sz, 0}}),
	)
}

// NewUniformScale scales all three axes by the same factor
func NewUniformScale(s float64) Transform {
	return NewScale(s, s, s)
}

// NewRotation rotates about the X, then Y, then Z axis by the given angles in degrees
func NewRotation(xDegrees, yDegrees, zDegrees float64) Transform {
	rx := rotationRows(core.NewVec3(1, 0, 0), xDegrees)
	ry := rotationRows(core.NewVec3(0, 1, 0), yDegrees)
	rz := rotationRows(core.NewVec3(0, 0, 1), zDegrees)

	var xy, xyz mat.Dense
	xy.Mul(homogeneous(ry), homogeneous(rx))
	xyz.Mul(homogeneous(rz), &xy)

	return fromRotation(&xyz)
}

// NewRotationAbout rotates counter-clockwise about an arbitrary axis through the origin
func NewRotationAbout(axis core.Vec3, degrees float64) Transform {
	return fromRotation(homogeneous(rotationRows(axis, degrees)))
}

// fromRotation builds a transform from an orthonormal matrix, using its transpose as the inverse
func fromRotation(forward *mat.Dense) Transform {
	inverse := mat.DenseCopyOf(forward.T())
	return newTransform(forward, inverse)
}

// rotationRows is Rodrigues' rotation formula for a unit axis
func rotationRows(axis core.Vec3, degrees float64) [3][4]float64 {
	a := axis.Normalize()
	theta := degrees * math.Pi / 180
	c, s := math.Cos(theta), math.Sin(theta)
	t := 1 - c
	return [3][4]float64{
		{t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y, 0},
		{t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X, 0},
		{t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c, 0},
	}
}

// NewMatrixTransform wraps a general 4x4 affine matrix, computing its inverse
func NewMatrixTransform(m mat.Matrix) (Transform, error) {
	r, c := m.Dims()
	if r != 4 || c != 4 {
		return Transform{}, fmt.Errorf("%w: got %dx%d", ErrNotAffine, r, c)
	}
	if m.At(3, 0) != 0 || m.At(3, 1) != 0 || m.At(3, 2) != 0 || m.At(3, 3) != 1 {
		return Transform{}, fmt.Errorf("%w: bottom row must be (0, 0, 0, 1)", ErrNotAffine)
	}

	forward := mat.DenseCopyOf(m)
	var inverse mat.Dense
	if err := inverse.Inverse(forward); err != nil {
		return Transform{}, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}
	return newTransform(forward, &inverse), nil
}

// Then returns the transform that applies t first and next second
func (t Transform) Then(next Transform) Transform {
	var forward, inverse mat.Dense
	forward.Mul(next.forward, t.forward)
	inverse.Mul(t.inverse, next.inverse)
	return newTransform(&forward, &inverse)
}

// Inverse returns the transform mapping the parent frame back into the local frame
func (t Transform) Inverse() Transform {
	return Transform{forward: t.inverse, inverse: t.forward, fwd: t.inv, inv: t.fwd}
}

// Matrix returns a copy of the forward 4x4 matrix
func (t Transform) Matrix() *mat.Dense {
	return mat.DenseCopyOf(t.forward)
}

// Point maps a point from local to parent coordinates
func (t Transform) Point(p core.Vec3) core.Vec3 {
	return t.fwd.point(p)
}

// Vector maps a direction from local to parent coordinates, ignoring translation
func (t Transform) Vector(v core.Vec3) core.Vec3 {
	return t.fwd.vector(v)
}

// Normal maps a surface normal from local to parent coordinates using the inverse transpose.
// The result is not normalized.
func (t Transform) Normal(n core.Vec3) core.Vec3 {
	return t.inv.transposedVector(n)
}

// InversePoint maps a point from parent to local coordinates
func (t Transform) InversePoint(p core.Vec3) core.Vec3 {
	return t.inv.point(p)
}

// InverseVector maps a direction from parent to local coordinates
func (t Transform) InverseVector(v core.Vec3) core.Vec3 {
	return t.inv.vector(v)
}

// InverseNormal maps a surface normal from parent to local coordinates
func (t Transform) InverseNormal(n core.Vec3) core.Vec3 {
	return t.fwd.transposedVector(n)
}
