// Package config loads render settings from YAML.
package config

import (
	"runtime"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/geometry"
	"github.com/snowjak88/ray2/pkg/lighting"
	"github.com/snowjak88/ray2/pkg/photonmap"
	"github.com/snowjak88/ray2/pkg/renderer"
)

// RenderConfig is the complete configuration for one render
type RenderConfig struct {
	Scene          string         `yaml:"scene"`
	Output         string         `yaml:"output"`
	Width          int            `yaml:"width"`
	Height         int            `yaml:"height"`
	Workers        int            `yaml:"workers"`
	Columns        bool           `yaml:"columns"`
	TileSize       int            `yaml:"tile_size"`
	MaxRecursion   int            `yaml:"max_recursion"`
	ExactFresnel   bool           `yaml:"exact_fresnel"`
	Antialiasing   Antialiasing   `yaml:"antialiasing"`
	PhotonMap      PhotonMap      `yaml:"photon_map"`
	LightSourceMap LightSourceMap `yaml:"light_source_map"`
	Fog            *Fog           `yaml:"fog,omitempty"`
	EnvironmentMap string         `yaml:"environment_map,omitempty"`
	CSGBlend       []BlendPoint   `yaml:"csg_blend,omitempty"`
}

type Antialiasing struct {
	Grid     int  `yaml:"grid"` // Samples per pixel along each axis
	Jitter   bool `yaml:"jitter"`
	Parallel bool `yaml:"parallel"`
}

type PhotonMap struct {
	Enabled                bool    `yaml:"enabled"`
	PhotonsPerLight        int     `yaml:"photons_per_light"`
	CausticPhotonsPerLight int     `yaml:"caustic_photons_per_light"`
	NearestCount           int     `yaml:"nearest_count"`
	ConeFilter             float64 `yaml:"cone_filter"`
	Scale                  float64 `yaml:"scale"`
	Seed                   int64   `yaml:"seed"`
	RecordDirect           bool    `yaml:"record_direct"`
}

type LightSourceMap struct {
	ThetaSteps     int `yaml:"theta_steps"`
	PhiSteps       int `yaml:"phi_steps"`
	SamplesPerCell int `yaml:"samples_per_cell"`
}

type Fog struct {
	Color        [3]float64 `yaml:"color"`
	HalfDistance float64    `yaml:"half_distance"` // Distance over which the scene fades halfway to the fog color
}

// BlendPoint is one control point of the CSG material blend profile
type BlendPoint struct {
	Position float64 `yaml:"position"` // 0 at the entry boundary, 1 at the exit boundary
	Weight   float64 `yaml:"weight"`   // Weight of the exit side's material
}

// Default returns the configuration used when no file is given
func Default() *RenderConfig {
	pm := photonmap.DefaultConfig()
	lsm := photonmap.DefaultLightSourceMapConfig()
	return &RenderConfig{
		Scene:        "default",
		Output:       "render.png",
		Width:        640,
		Height:       480,
		Workers:      max(1, runtime.NumCPU()-1),
		TileSize:     renderer.DefaultConfig().TileSize,
		MaxRecursion: core.DefaultMaxRecursion,
		Antialiasing: Antialiasing{Grid: 1},
		PhotonMap: PhotonMap{
			Enabled:                false,
			PhotonsPerLight:        pm.PhotonsPerLight,
			CausticPhotonsPerLight: pm.CausticPhotonsPerLight,
			NearestCount:           pm.NearestCount,
			ConeFilter:             pm.ConeFilter,
			Scale:                  pm.Scale,
			Seed:                   pm.Seed,
		},
		LightSourceMap: LightSourceMap{
			ThetaSteps:     lsm.ThetaSteps,
			PhiSteps:       lsm.PhiSteps,
			SamplesPerCell: lsm.SamplesPerCell,
		},
	}
}

// RendererConfig converts to the renderer's settings
func (c *RenderConfig) RendererConfig() renderer.Config {
	return renderer.Config{
		Width:      c.Width,
		Height:     c.Height,
		TileSize:   c.TileSize,
		Columns:    c.Columns,
		NumWorkers: c.Workers,
		Antialiasing: renderer.AntialiasConfig{
			Grid:     c.Antialiasing.Grid,
			Jitter:   c.Antialiasing.Jitter,
			Parallel: c.Antialiasing.Parallel,
		},
	}
}

// PhotonMapConfig converts to the photon map's settings
func (c *RenderConfig) PhotonMapConfig() photonmap.Config {
	cfg := photonmap.DefaultConfig()
	cfg.PhotonsPerLight = c.PhotonMap.PhotonsPerLight
	cfg.CausticPhotonsPerLight = c.PhotonMap.CausticPhotonsPerLight
	cfg.NearestCount = c.PhotonMap.NearestCount
	cfg.ConeFilter = c.PhotonMap.ConeFilter
	cfg.Scale = c.PhotonMap.Scale
	cfg.Seed = c.PhotonMap.Seed
	cfg.RecordDirect = c.PhotonMap.RecordDirect
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	cfg.LightSourceMap = photonmap.LightSourceMapConfig{
		ThetaSteps:     c.LightSourceMap.ThetaSteps,
		PhiSteps:       c.LightSourceMap.PhiSteps,
		SamplesPerCell: c.LightSourceMap.SamplesPerCell,
	}
	return cfg
}

// FogConfig returns the fog settings, or nil when fog is off
func (c *RenderConfig) FogConfig() *lighting.FogConfig {
	if c.Fog == nil || c.Fog.HalfDistance <= 0 {
		return nil
	}
	return &lighting.FogConfig{
		Color:        core.NewVec3(c.Fog.Color[0], c.Fog.Color[1], c.Fog.Color[2]),
		HalfDistance: c.Fog.HalfDistance,
	}
}

// BlendProfile builds the CSG blend profile, defaulting to linear
func (c *RenderConfig) BlendProfile() (geometry.BlendProfile, error) {
	if len(c.CSGBlend) == 0 {
		return geometry.LinearBlendProfile(), nil
	}
	positions := make([]float64, len(c.CSGBlend))
	weights := make([]float64, len(c.CSGBlend))
	for i, p := range c.CSGBlend {
		positions[i], weights[i] = p.Position, p.Weight
	}
	return geometry.NewBlendProfile(positions, weights)
}
