// Package scene builds the in-code scenes and assembles their lighting pipelines.
package scene

import (
	"context"
	"fmt"

	"github.com/snowjak88/ray2/pkg/config"
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
	"github.com/snowjak88/ray2/pkg/lighting"
	"github.com/snowjak88/ray2/pkg/loaders"
	"github.com/snowjak88/ray2/pkg/photonmap"
	"github.com/snowjak88/ray2/pkg/renderer"
	"github.com/snowjak88/ray2/pkg/transform"
	"github.com/snowjak88/ray2/pkg/world"
)

// Scene contains everything needed for rendering
type Scene struct {
	Info      SceneInfo
	World     *world.World
	Camera    *renderer.PinholeCamera
	Fog       *lighting.FogConfig // Scene default, replaced by configured fog
	PhotonMap *photonmap.PhotonMap

	csg []*geometry.CSG
}

// newScene creates an empty world viewed through a camera whose sensor matches the image aspect
func newScene(info SceneInfo, width, height int, fieldOfView float64, cameraTransforms ...transform.Transform) *Scene {
	frameWidth := 4.0
	camera := renderer.NewPinholeCamera(renderer.CameraConfig{
		FrameWidth:  frameWidth,
		FrameHeight: frameWidth * float64(height) / float64(width),
		FieldOfView: fieldOfView,
	}, cameraTransforms...)

	w := world.New()
	w.Camera = camera
	w.Model = lighting.NewStandardModel(lighting.PipelineConfig{})
	return &Scene{Info: info, World: w, Camera: camera}
}

// addCSG adds a CSG shape to the world and remembers it for blend profile updates
func (s *Scene) addCSG(c *geometry.CSG) {
	s.csg = append(s.csg, c)
	s.World.AddShape(c)
}

// SetBlendProfile sets the interior material blend of every CSG shape in the scene
func (s *Scene) SetBlendProfile(profile geometry.BlendProfile) {
	for _, c := range s.csg {
		c.Blend = profile
	}
}

// Prepare applies cfg and installs the lighting pipeline. When the photon map is
// enabled it is built first, with a pipeline that does not consult it.
func (s *Scene) Prepare(ctx context.Context, cfg *config.RenderConfig, logger core.Logger) error {
	if logger == nil {
		logger = core.NopLogger{}
	}
	s.World.MaxRecursion = cfg.MaxRecursion

	profile, err := cfg.BlendProfile()
	if err != nil {
		return fmt.Errorf("csg blend profile: %w", err)
	}
	s.SetBlendProfile(profile)

	pipeline := lighting.PipelineConfig{Fog: s.Fog, ExactFresnel: cfg.ExactFresnel}
	if fog := cfg.FogConfig(); fog != nil {
		pipeline.Fog = fog
	}

	if cfg.EnvironmentMap != "" {
		env, err := loaders.LoadEnvironmentMap(cfg.EnvironmentMap)
		if err != nil {
			return fmt.Errorf("environment map: %w", err)
		}
		pipeline.Environment = env
	}

	if cfg.PhotonMap.Enabled {
		model := lighting.NewStandardModel(lighting.PipelineConfig{ExactFresnel: cfg.ExactFresnel})
		pm, err := photonmap.Build(ctx, s.World, model, cfg.PhotonMapConfig(), logger)
		if err != nil {
			return fmt.Errorf("building photon map: %w", err)
		}
		s.PhotonMap = pm
		pipeline.Estimator = pm
	}

	s.World.Model = lighting.NewStandardModel(pipeline)
	return nil
}
