package scene

import (
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
	"github.com/snowjak88/ray2/pkg/lights"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/transform"
)

// NewCSGScene shows each boolean operation side by side
func NewCSGScene(width, height int) *Scene {
	s := newScene(sceneInfos["csg"], width, height, 55,
		transform.NewRotation(20, 0, 0),
		transform.NewTranslation(0, 4, -11),
	)
	s.World.Ambient = core.NewVec3(0.08, 0.08, 0.08)

	white := core.NewVec3(1, 1, 1)
	red := core.NewVec3(0.8, 0.15, 0.1)
	green := core.NewVec3(0.2, 0.7, 0.25)
	gold := core.NewVec3(0.9, 0.7, 0.2)

	s.World.AddShape(geometry.NewPlane(geometry.NewSurface(core.NewVec3(0.6, 0.6, 0.6)), material.NewOpaque(white), nil,
		transform.NewTranslation(0, -1, 0)))

	// Union of a red sphere and a green cube; where they overlap the inside blends
	union := geometry.NewUnion([]geometry.Shape{
		geometry.NewSphere(geometry.NewSurface(red), material.NewOpaque(red), transform.NewTranslation(0.6, 0.6, 0)),
		geometry.NewCube(geometry.NewSurface(green), material.NewOpaque(green), transform.NewUniformScale(0.8)),
	}, transform.NewTranslation(-3.5, 0, 0))
	s.addCSG(union)

	// Intersection of a sphere and a capped cylinder, in rippled glass
	glass := material.NewGlass(1.4, core.NewVec3(0.85, 1, 0.9))
	intersect := geometry.NewIntersect([]geometry.Shape{
		geometry.NewSphere(geometry.NewSurface(white), glass, transform.NewUniformScale(1.2)),
		geometry.NewCylinder(geometry.NewSurface(white), glass, true, transform.NewScale(0.8, 2, 0.8)),
	}, transform.NewTranslation(0, 0.3, 0))
	s.addCSG(intersect)
	s.World.AddShape(geometry.NewNormalPerturber(geometry.NewSphere(geometry.NewSurface(gold), material.NewMirror(0.5, gold),
		transform.NewUniformScale(0.5)), geometry.Ripple(0.2, 12), transform.NewTranslation(0, -0.5, -2)))

	// A cube with cylindrical holes bored along two axes
	holes := geometry.NewMinus(
		geometry.NewCube(geometry.NewSurface(gold), material.NewOpaque(gold)),
		[]geometry.Shape{
			geometry.NewCylinder(geometry.NewSurface(white), nil, true, transform.NewScale(0.5, 2, 0.5)),
			geometry.NewCylinder(geometry.NewSurface(white), nil, true, transform.NewScale(0.5, 2, 0.5), transform.NewRotation(90, 0, 0)),
		},
		transform.NewRotation(0, 35, 0), transform.NewTranslation(3.5, 0, 0),
	)
	s.addCSG(holes)

	s.World.AddLight(lights.NewPointLight(core.NewVec3(0.05, 0.05, 0.05), white, white, transform.NewTranslation(2, 8, -6)))
	s.World.AddShape(geometry.NewSphere(geometry.NewEmissiveSurface(core.NewVec3(1, 0.9, 0.7)), nil,
		transform.NewUniformScale(0.2), transform.NewTranslation(-2, 4, 2)))

	return s
}
