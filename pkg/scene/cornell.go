package scene

import (
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
	"github.com/snowjak88/ray2/pkg/lighting"
	"github.com/snowjak88/ray2/pkg/lights"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// NewCornellScene creates an open-fronted room with red and green side walls,
// a mirror sphere and a glass sphere, seen through light fog
func NewCornellScene(width, height int) *Scene {
	s := newScene(sceneInfos["cornell"], width, height, 50,
		transform.NewTranslation(0, 5, -14),
	)
	s.Fog = &lighting.FogConfig{Color: core.NewVec3(0.5, 0.5, 0.55), HalfDistance: 60}

	const half = 5.0
	white := core.NewVec3(0.73, 0.73, 0.73)
	red := core.NewVec3(0.65, 0.05, 0.05)
	green := core.NewVec3(0.12, 0.45, 0.15)

	// Each wall is a plane whose solid side lies outside the room
	wall := func(color core.Vec3, transforms ...transform.Transform) {
		s.World.AddShape(geometry.NewPlane(geometry.NewSurface(color), material.NewOpaque(color), nil, transforms...))
	}
	wall(white)                                                                           // floor
	wall(white, transform.NewRotation(180, 0, 0), transform.NewTranslation(0, 2*half, 0)) // ceiling
	wall(red, transform.NewRotation(0, 0, -90), transform.NewTranslation(-half, 0, 0))    // left
	wall(green, transform.NewRotation(0, 0, 90), transform.NewTranslation(half, 0, 0))    // right
	wall(white, transform.NewRotation(-90, 0, 0), transform.NewTranslation(0, 0, half))   // back

	s.World.AddShape(geometry.NewSphere(geometry.NewSurface(core.NewVec3(0.9, 0.9, 0.9)), material.NewMirror(0.9, core.NewVec3(1, 1, 1)),
		transform.NewUniformScale(1.5), transform.NewTranslation(-2, 1.5, 2)))
	s.World.AddShape(geometry.NewSphere(geometry.NewSurface(core.NewVec3(1, 1, 1)), material.NewGlass(1.5, core.NewVec3(1, 1, 1)),
		transform.NewUniformScale(1.5), transform.NewTranslation(2, 1.5, -1)))

	// A short pillar with a spherical bite taken out of its top
	pillar := geometry.NewMinus(
		geometry.NewCube(geometry.NewSurface(white), material.NewOpaque(white), transform.NewScale(0.8, 1.5, 0.8)),
		[]geometry.Shape{geometry.NewSphere(geometry.NewSurface(red), nil, transform.NewTranslation(0, 1.6, 0))},
		transform.NewRotation(0, 20, 0), transform.NewTranslation(0, 1.5, 3.5),
	)
	s.addCSG(pillar)

	light := lights.NewPointLight(core.NewVec3(0.1, 0.1, 0.1), core.Vec3{}, core.NewVec3(1, 1, 1),
		transform.NewTranslation(0, 2*half-0.5, 0))
	light.DiffuseIntensity = lights.NewFalloffIntensity(core.NewVec3(1.5, 1.5, 1.5), 1, 0, 0.02)
	s.World.AddLight(light)

	return s
}
