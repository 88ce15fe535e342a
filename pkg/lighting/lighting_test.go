package lighting

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
	"github.com/snowjak88/ray2/pkg/lights"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
	"github.com/snowjak88/ray2/pkg/world"
)

var (
	white = core.NewVec3(1, 1, 1)
	red   = core.NewVec3(1, 0, 0)
)

func assertColor(t *testing.T, expected, actual core.Vec3) {
	t.Helper()
	assert.True(t, expected.ApproxEqual(actual, 1e-9), "expected %v, got %v", expected, actual)
}

func shade(t *testing.T, w *world.World, model world.LightingModel, ray core.Ray) world.LightingResult {
	t.Helper()
	result, ok := model.DetermineRayColor(w, ray, w.Intersections(ray))
	require.True(t, ok)
	return result
}

// floorWorld is a white floor at y = 0 with a light straight above the origin
func floorWorld() *world.World {
	w := world.New()
	w.AddShape(geometry.NewPlane(geometry.NewSurface(white), material.NewOpaque(white), nil))
	w.AddLight(lights.NewPointLight(core.Vec3{}, core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.5, 0.5, 0.5), transform.NewTranslation(0, 10, 0)))
	return w
}

var down = core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

func TestFlat(t *testing.T) {
	w := world.New()
	w.AddShape(geometry.NewSphere(geometry.NewSurface(red), nil))

	result := shade(t, w, Flat{}, core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)))
	assertColor(t, red, result.Radiance)
	assert.True(t, result.IsLeaf())

	_, ok := Flat{}.DetermineRayColor(w, down, nil)
	assert.False(t, ok)
}

func TestAmbient(t *testing.T) {
	w := world.New()
	w.Ambient = core.NewVec3(0.5, 0.5, 0.5)
	glow := geometry.NewEmissiveSurface(core.NewVec3(0, 0.25, 0))
	glow.Diffuse = material.NewSimpleColorScheme(red)
	w.AddShape(geometry.NewSphere(glow, nil))

	result := shade(t, w, Ambient{}, core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)))
	assertColor(t, core.NewVec3(0.5, 0.25, 0), result.Radiance)
}

func TestLambertianDiffuse(t *testing.T) {
	w := floorWorld()
	result := shade(t, w, LambertianDiffuse{}, down)
	assertColor(t, core.NewVec3(0.8, 0.8, 0.8), result.Radiance)

	// At 45 degrees the exposure is cos(45)
	slanted := core.NewRay(core.NewVec3(10, 5, 0), core.NewVec3(0, -1, 0))
	result = shade(t, w, LambertianDiffuse{}, slanted)
	assertColor(t, core.NewVec3(0.8, 0.8, 0.8).Multiply(math.Sqrt2/2), result.Radiance)

	// A blocker between the floor and the light casts a shadow
	w.AddShape(geometry.NewSphere(geometry.NewSurface(white), nil, transform.NewTranslation(0, 7, 0)))
	result = shade(t, w, LambertianDiffuse{}, core.NewRay(core.NewVec3(0.1, 5, 0), core.NewVec3(0, -1, 0)))
	assertColor(t, core.Vec3{}, result.Radiance)
}

func TestLambertianDiffuse_LightBelowSurface(t *testing.T) {
	w := world.New()
	w.AddShape(geometry.NewPlane(geometry.NewSurface(white), nil, nil))
	w.AddLight(lights.NewPointLight(core.Vec3{}, white, white, transform.NewTranslation(0, -10, 0)))

	result := shade(t, w, LambertianDiffuse{}, down)
	assertColor(t, core.Vec3{}, result.Radiance)
}

func TestPhongSpecular(t *testing.T) {
	w := floorWorld()
	// Mirror angle: the reflection of the light points straight at the eye
	result := shade(t, w, PhongSpecular{}, down)
	assertColor(t, core.NewVec3(0.5, 0.5, 0.5), result.Radiance)

	// Far off the mirror angle the highlight vanishes
	result = shade(t, w, PhongSpecular{}, core.NewRay(core.NewVec3(-100, 1, 0), core.NewVec3(100, -1, 0)))
	assert.Less(t, result.Radiance.Length(), 1e-6)
}

func TestPhongSpecular_EmissiveShape(t *testing.T) {
	w := world.New()
	w.AddShape(geometry.NewPlane(geometry.NewSurface(white), nil, nil))
	w.AddShape(geometry.NewSphere(geometry.NewEmissiveSurface(core.NewVec3(0, 0, 2)), nil, transform.NewTranslation(0, 10, 0)))

	result := shade(t, w, PhongSpecular{}, down)
	assertColor(t, core.NewVec3(0, 0, 2), result.Radiance)
}

func TestAdditive(t *testing.T) {
	w := floorWorld()
	w.Ambient = core.NewVec3(0.1, 0.1, 0.1)
	model := NewAdditive(Ambient{}, LambertianDiffuse{}, PhongSpecular{})
	result := shade(t, w, model, down)
	assertColor(t, core.NewVec3(1.4, 1.4, 1.4), result.Radiance)
	assert.True(t, result.IsLeaf())

	_, ok := model.DetermineRayColor(w, down, nil)
	assert.False(t, ok)
}

func TestWeights(t *testing.T) {
	tests := []struct {
		name                          string
		transparency, reflectivity, r float64
		surface, reflected, refracted float64
	}{
		{"opaque", 0, 0, 0.3, 1, 0, 0},
		{"mirror", 0, 1, 0.3, 0, 1, 0},
		{"glass", 1, 0, 0.3, 0, 0.3, 0.7},
		{"mixed", 0.5, 0.5, 0.2, 0.25, 0.35, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rl, rr := Weights(tt.transparency, tt.reflectivity, tt.r)
			assert.InDelta(t, tt.surface, s, 1e-12)
			assert.InDelta(t, tt.reflected, rl, 1e-12)
			assert.InDelta(t, tt.refracted, rr, 1e-12)
			assert.InDelta(t, 1, s+rl+rr, 1e-12)
		})
	}
}

func TestFresnel_Opaque(t *testing.T) {
	w := world.New()
	w.AddShape(geometry.NewSphere(geometry.NewSurface(red), material.NewOpaque(red)))
	model := NewFresnel(Flat{})
	w.Model = model

	result := shade(t, w, model, core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)))
	assertColor(t, red, result.Radiance)
	require.Len(t, result.Contributions, 1)
	assert.Equal(t, 1.0, result.Contributions[0].Weight)
}

func TestFresnel_Mirror(t *testing.T) {
	w := world.New()
	w.AddShape(geometry.NewPlane(geometry.NewSurface(white), material.NewMirror(1, white), nil))
	w.AddShape(geometry.NewSphere(geometry.NewSurface(red), material.NewOpaque(red), transform.NewTranslation(0, 5, 0)))
	model := NewFresnel(Flat{})
	w.Model = model

	result := shade(t, w, model, core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0)))
	assertColor(t, red, result.Radiance)
	require.Len(t, result.Contributions, 1)
	reflected := result.Contributions[0].Result
	assert.InDelta(t, 4, reflected.Point.Y, 1e-6)
	assert.Equal(t, 2, reflected.Eye.RecursionLevel)
}

// levelRecorder shades with Flat while recording how deep each ray is
type levelRecorder struct {
	deepest int
}

func (l *levelRecorder) DetermineRayColor(w *world.World, ray core.Ray, hits []geometry.Intersection) (world.LightingResult, bool) {
	l.deepest = max(l.deepest, ray.RecursionLevel)
	return Flat{}.DetermineRayColor(w, ray, hits)
}

func TestFresnel_RecursionTerminates(t *testing.T) {
	// Two facing mirrors would reflect forever without the limit
	w := world.New()
	mirror := material.NewMirror(1, white)
	w.AddShape(geometry.NewPlane(geometry.NewSurface(red), mirror, nil))
	w.AddShape(geometry.NewPlane(geometry.NewSurface(red), mirror, nil, transform.NewRotation(180, 0, 0), transform.NewTranslation(0, 3, 0)))

	recorder := &levelRecorder{}
	model := NewFresnel(recorder)
	w.Model = model

	result := shade(t, w, model, core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)))
	assert.Equal(t, w.MaxRecursion+1, recorder.deepest)
	assertColor(t, red, result.Radiance)
}

func TestFresnel_Glass(t *testing.T) {
	w := world.New()
	w.AddShape(geometry.NewSphere(geometry.NewSurface(white), material.NewGlass(1.5, white)))
	model := NewFresnel(Flat{})
	w.Model = model

	result := shade(t, w, model, core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)))
	require.Len(t, result.Contributions, 2)
	reflected, refracted := result.Contributions[0], result.Contributions[1]
	r0 := material.Schlick(1, 1, 1.5)
	assert.InDelta(t, r0, reflected.Weight, 1e-9)
	assert.InDelta(t, 1-r0, refracted.Weight, 1e-9)

	// Straight through the center: the refracted ray exits the far side
	assert.InDelta(t, 1, refracted.Result.Point.Z, 1e-6)
	assert.True(t, reflected.Result.Missed)
}

func TestEnvironmentMap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	env := NewEnvironmentMap(img)

	tests := []struct {
		name      string
		direction core.Vec3
		u, v      float64
	}{
		{"+x", core.NewVec3(1, 0, 0), 0.5, 0.5},
		{"up", core.NewVec3(0, 1, 0), 0.5, 1},
		{"down", core.NewVec3(0, -2, 0), 0.5, 0},
		{"-z", core.NewVec3(0, 0, -1), 0.25, 0.5},
		{"+z", core.NewVec3(0, 0, 1), 0.75, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := UV(tt.direction)
			assert.InDelta(t, tt.u, u, 1e-12)
			assert.InDelta(t, tt.v, v, 1e-12)
		})
	}

	w := world.New()
	model := &EnvironmentMapDecorating{Wrapped: Flat{}, Map: env}
	result, ok := model.DetermineRayColor(w, down, nil)
	require.True(t, ok)
	assert.True(t, result.Missed)
	assert.True(t, white.ApproxEqual(result.Radiance, 1e-6))
}

func TestFogDecorating(t *testing.T) {
	w := floorWorld()
	fog := &FogDecorating{Wrapped: Flat{}, Color: core.NewVec3(0, 0, 1), HalfDistance: 5}

	// The floor is 5 away: half fog, half floor
	result := shade(t, w, fog, down)
	assertColor(t, core.NewVec3(0.5, 0.5, 1), result.Radiance)

	// No hit, no fog
	_, ok := fog.DetermineRayColor(w, core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), nil)
	assert.False(t, ok)
}

type constantEstimator core.Vec3

func (c constantEstimator) Estimate(core.Vec3, core.Vec3) core.Vec3 {
	return core.Vec3(c)
}

func TestPhotonMapDecorating(t *testing.T) {
	w := world.New()
	w.AddShape(geometry.NewPlane(geometry.NewSurface(core.NewVec3(0.5, 1, 1)), nil, nil))
	model := &PhotonMapDecorating{Wrapped: Ambient{}, Estimator: constantEstimator(core.NewVec3(0.2, 0.2, 0.2))}

	result := shade(t, w, model, down)
	assertColor(t, core.NewVec3(0.1, 0.2, 0.2), result.Radiance)
}

func TestStandardModel(t *testing.T) {
	w := floorWorld()
	w.Ambient = core.NewVec3(0.1, 0.1, 0.1)
	w.Model = NewStandardModel(PipelineConfig{Fog: &FogConfig{Color: core.Vec3{}, HalfDistance: 1000}})
	w.Camera = downCamera{}

	radiance, ok := w.ShootRay(0, 0)
	require.True(t, ok)
	assert.Greater(t, radiance.X, 0.0)
}

type downCamera struct{}

func (downCamera) GenerateRay(x, y float64) core.Ray {
	return core.NewRay(core.NewVec3(x, 5, y), core.NewVec3(0, -1, 0))
}
