package lighting

import (
	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/material"
	"github.com/snowjak88/ray2/pkg/world"
)

// FogConfig describes distance fog
type FogConfig struct {
	Color        core.Vec3
	HalfDistance float64
}

// PipelineConfig selects the optional stages of the standard pipeline
type PipelineConfig struct {
	Fog          *FogConfig
	Environment  *EnvironmentMap
	Estimator    IrradianceEstimator
	ExactFresnel bool
}

// NewSurfaceModel is the non-recursive local shading: ambient, diffuse and specular,
// plus the photon estimate when one is given
func NewSurfaceModel(estimator IrradianceEstimator) world.LightingModel {
	var surface world.LightingModel = NewAdditive(Ambient{}, LambertianDiffuse{}, PhongSpecular{})
	if estimator != nil {
		surface = &PhotonMapDecorating{Wrapped: surface, Estimator: estimator}
	}
	return surface
}

// NewStandardModel assembles Fresnel over the surface model, then the environment map
// and fog decorators when configured
func NewStandardModel(cfg PipelineConfig) world.LightingModel {
	fresnel := NewFresnel(NewSurfaceModel(cfg.Estimator))
	if cfg.ExactFresnel {
		fresnel.Reflectance = material.ExactFresnel
	}

	var model world.LightingModel = fresnel
	if cfg.Environment != nil {
		model = &EnvironmentMapDecorating{Wrapped: model, Map: cfg.Environment}
	}
	if cfg.Fog != nil && cfg.Fog.HalfDistance > 0 {
		model = &FogDecorating{Wrapped: model, Color: cfg.Fog.Color, HalfDistance: cfg.Fog.HalfDistance}
	}
	return model
}
