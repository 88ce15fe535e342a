package scene

import (
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
	"github.com/snowjak88/ray2/pkg/lights"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// NewDefaultScene creates a CSG lens, a carved cube and a glass sphere on a checkerboard floor
func NewDefaultScene(width, height int) *Scene {
	s := newScene(sceneInfos["default"], width, height, 60,
		transform.NewRotation(15, 0, 0),
		transform.NewTranslation(0, 3, -10),
	)
	s.World.Ambient = core.NewVec3(0.05, 0.05, 0.05)

	white := core.NewVec3(1, 1, 1)
	checker := material.NewCheckerboardColorScheme(1,
		material.NewSimpleColorScheme(core.NewVec3(0.9, 0.9, 0.9)),
		material.NewSimpleColorScheme(core.NewVec3(0.2, 0.2, 0.25)),
	)
	s.World.AddShape(geometry.NewPlane(geometry.NewSchemeSurface(checker), material.NewOpaque(white), nil,
		transform.NewTranslation(0, -1, 0)))

	// Lens: the overlap of two offset spheres
	glass := material.NewGlass(1.5, core.NewVec3(0.9, 0.95, 1))
	lens := geometry.NewIntersect([]geometry.Shape{
		geometry.NewSphere(geometry.NewSurface(white), glass, transform.NewTranslation(0, 0, 1.6)),
		geometry.NewSphere(geometry.NewSurface(white), glass, transform.NewTranslation(0, 0, -1.6)),
	}, transform.NewUniformScale(1.2), transform.NewRotation(0, 30, 0), transform.NewTranslation(-3, 0.5, 2))
	s.addCSG(lens)

	// A blue cube with a sphere carved out of its corner
	blue := core.NewVec3(0.2, 0.3, 0.8)
	carved := geometry.NewMinus(
		geometry.NewCube(geometry.NewSurface(blue), material.NewOpaque(blue)),
		[]geometry.Shape{geometry.NewSphere(geometry.NewSurface(core.NewVec3(0.9, 0.8, 0.2)), material.NewOpaque(blue),
			transform.NewUniformScale(1.2), transform.NewTranslation(1, 1, -1))},
		transform.NewRotation(0, 25, 0), transform.NewTranslation(3, 0, 3),
	)
	s.addCSG(carved)

	s.World.AddShape(geometry.NewSphere(geometry.NewSurface(white), material.NewGlass(1.5, core.NewVec3(1, 0.9, 0.9)),
		transform.NewTranslation(0, 0, 0)))

	mirror := geometry.NewSphere(geometry.NewSurface(core.NewVec3(0.8, 0.8, 0.8)), material.NewMirror(0.8, white),
		transform.NewUniformScale(0.6), transform.NewTranslation(1.5, -0.4, -2))
	mirror.Surface().Shininess = 64
	s.World.AddShape(mirror)

	s.World.AddLight(lights.NewPointLight(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.9, 0.9, 0.9), white,
		transform.NewTranslation(-5, 10, -5)))
	s.World.AddLight(lights.NewDirectionalLight(core.NewVec3(1, -1, 1), core.Vec3{}, core.NewVec3(0.2, 0.2, 0.25), core.Vec3{}))

	return s
}
