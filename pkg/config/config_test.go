package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Validate())
	assert.Equal(t, 4, cfg.MaxRecursion)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Nil(t, cfg.FogConfig())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.yaml")
	data := `
scene: cornell
output: out/cornell.png
width: 320
height: 240
antialiasing:
  grid: 3
  parallel: true
photon_map:
  enabled: true
  photons_per_light: 5000
fog:
  color: [0.5, 0.5, 0.6]
  half_distance: 12
csg_blend:
  - {position: 0, weight: 0}
  - {position: 0.5, weight: 1}
  - {position: 1, weight: 1}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path, LoadOptions{ValidateImmediately: true, ResolvePaths: true})
	require.NoError(t, err)

	assert.Equal(t, "cornell", cfg.Scene)
	assert.Equal(t, filepath.Join(dir, "out/cornell.png"), cfg.Output)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 3, cfg.Antialiasing.Grid)
	assert.True(t, cfg.PhotonMap.Enabled)
	assert.Equal(t, 5000, cfg.PhotonMap.PhotonsPerLight)
	// Omitted fields keep their defaults
	assert.Equal(t, Default().PhotonMap.NearestCount, cfg.PhotonMap.NearestCount)
	assert.Equal(t, 4, cfg.MaxRecursion)

	fog := cfg.FogConfig()
	require.NotNil(t, fog)
	assert.Equal(t, 12.0, fog.HalfDistance)
	assert.Equal(t, 0.6, fog.Color.Z)

	profile, err := cfg.BlendProfile()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, profile.Weight(0.25), 1e-12)
	assert.InDelta(t, 1.0, profile.Weight(0.75), 1e-12)

	rc := cfg.RendererConfig()
	assert.Equal(t, 320, rc.Width)
	assert.True(t, rc.Antialiasing.Parallel)

	pm := cfg.PhotonMapConfig()
	assert.Equal(t, 5000, pm.PhotonsPerLight)
	assert.Equal(t, cfg.Workers, pm.Workers)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"), LoadOptions{})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: [1, 2"), 0644))
	_, err = LoadFromFile(path, LoadOptions{})
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("width: -1"), 0644))
	_, err = LoadFromFile(path, LoadOptions{ValidateImmediately: true})
	assert.ErrorContains(t, err, "width")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*RenderConfig)
		field  string
	}{
		{"zero height", func(c *RenderConfig) { c.Height = 0 }, "height"},
		{"no scene", func(c *RenderConfig) { c.Scene = "" }, "scene"},
		{"bad grid", func(c *RenderConfig) { c.Antialiasing.Grid = 0 }, "antialiasing.grid"},
		{"cone filter", func(c *RenderConfig) {
			c.PhotonMap.Enabled = true
			c.PhotonMap.ConeFilter = 0.5
		}, "photon_map.cone_filter"},
		{"light source map", func(c *RenderConfig) {
			c.PhotonMap.Enabled = true
			c.PhotonMap.CausticPhotonsPerLight = 100
			c.LightSourceMap.PhiSteps = 0
		}, "light_source_map.phi_steps"},
		{"fog", func(c *RenderConfig) { c.Fog = &Fog{HalfDistance: -1} }, "fog.half_distance"},
		{"blend weight", func(c *RenderConfig) {
			c.CSGBlend = []BlendPoint{{0, 0}, {1, 2}}
		}, "csg_blend[1].weight"},
		{"blend order", func(c *RenderConfig) {
			c.CSGBlend = []BlendPoint{{0.5, 0}, {0.2, 1}}
		}, "csg_blend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()
			require.NotEmpty(t, errs)
			fields := make([]string, len(errs))
			for i, e := range errs {
				fields[i] = e.Field
			}
			assert.Contains(t, fields, tt.field)
			assert.True(t, strings.HasPrefix(FormatValidationErrors(errs), "Validation Errors:"))
		})
	}
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := Default()
	cfg.Scene = "csg"
	cfg.Fog = &Fog{Color: [3]float64{1, 1, 1}, HalfDistance: 5}
	require.NoError(t, SaveToFile(cfg, path))

	loaded, err := LoadFromFile(path, LoadOptions{ValidateImmediately: true})
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
