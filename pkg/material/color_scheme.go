package material

import (
	"math"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/transform"
)

// ColorScheme provides spatially-varying colors.
// ColorAt receives a point in the scheme's parent frame (usually a shape's local frame).
type ColorScheme interface {
	ColorAt(point core.Vec3) core.Vec3
}

// SimpleColorScheme provides a uniform color
type SimpleColorScheme struct {
	transform.Transformable
	Color core.Vec3
}

// NewSimpleColorScheme creates a uniform color scheme
func NewSimpleColorScheme(color core.Vec3) *SimpleColorScheme {
	return &SimpleColorScheme{Color: color}
}

// ColorAt returns the color regardless of position
func (s *SimpleColorScheme) ColorAt(core.Vec3) core.Vec3 {
	return s.Color
}

// FunctionalColorScheme evaluates an arbitrary function of the local point
type FunctionalColorScheme struct {
	transform.Transformable
	Fn func(local core.Vec3) core.Vec3
}

// NewFunctionalColorScheme wraps fn as a color scheme
func NewFunctionalColorScheme(fn func(local core.Vec3) core.Vec3) *FunctionalColorScheme {
	return &FunctionalColorScheme{Fn: fn}
}

// ColorAt evaluates the function at the point in scheme-local coordinates
func (f *FunctionalColorScheme) ColorAt(point core.Vec3) core.Vec3 {
	return f.Fn(f.WorldToLocalPoint(point))
}

// BlendColorScheme mixes two schemes by a selector clamped to [0, 1].
// A selector of 0 yields First, 1 yields Second.
type BlendColorScheme struct {
	transform.Transformable
	First    ColorScheme
	Second   ColorScheme
	Selector func(local core.Vec3) float64
}

// NewBlendColorScheme creates a blend of two schemes
func NewBlendColorScheme(first, second ColorScheme, selector func(local core.Vec3) float64) *BlendColorScheme {
	return &BlendColorScheme{First: first, Second: second, Selector: selector}
}

// ColorAt blends the two schemes at the point
func (b *BlendColorScheme) ColorAt(point core.Vec3) core.Vec3 {
	local := b.WorldToLocalPoint(point)
	fraction := math.Max(0, math.Min(1, b.Selector(local)))
	return b.First.ColorAt(local).Lerp(b.Second.ColorAt(local), fraction)
}

// CheckerboardColorScheme alternates between schemes on a cubic lattice.
// The cell index of a coordinate is round(coord / CubeSize).
type CheckerboardColorScheme struct {
	transform.Transformable
	CubeSize float64
	Schemes  []ColorScheme
}

// NewCheckerboardColorScheme creates a checkerboard cycling through the given schemes
func NewCheckerboardColorScheme(cubeSize float64, schemes ...ColorScheme) *CheckerboardColorScheme {
	return &CheckerboardColorScheme{CubeSize: cubeSize, Schemes: schemes}
}

// ColorAt returns the scheme selected by the lattice parity of the point
func (c *CheckerboardColorScheme) ColorAt(point core.Vec3) core.Vec3 {
	if len(c.Schemes) == 0 {
		return core.Vec3{}
	}
	local := c.WorldToLocalPoint(point)
	cell := int64(math.Round(local.X/c.CubeSize)) +
		int64(math.Round(local.Y/c.CubeSize)) +
		int64(math.Round(local.Z/c.CubeSize))

	n := int64(len(c.Schemes))
	index := ((cell % n) + n) % n
	return c.Schemes[index].ColorAt(local)
}
