package photonmap

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/lights"
	"github.com/snowjak88/ray2/pkg/world"
)

var (
	// ErrUninitializedCell is returned when a cell is read before it has been computed
	ErrUninitializedCell = errors.New("light source map cell not initialized")
	// ErrCellOutOfRange is returned for indices outside the map
	ErrCellOutOfRange = errors.New("light source map cell out of range")
)

// LightSourceMapConfig sets the resolution of a LightSourceMap
type LightSourceMapConfig struct {
	ThetaSteps     int // Divisions of the polar angle, measured from +Y
	PhiSteps       int // Divisions of the azimuth around +Y
	SamplesPerCell int
}

// DefaultLightSourceMapConfig returns a map of roughly 4.5 degree cells
func DefaultLightSourceMapConfig() LightSourceMapConfig {
	return LightSourceMapConfig{ThetaSteps: 40, PhiSteps: 80, SamplesPerCell: 16}
}

// Cell summarizes what a light sees through one patch of directions
type Cell struct {
	Theta, Phi       int
	SolidAngle       float64
	SpecularFraction float64 // Fraction of sample rays whose first hit is specular
}

// Specular reports whether any sample ray found a specular surface
func (c Cell) Specular() bool {
	return c.SpecularFraction > 0
}

// LightSourceMap divides the sphere of directions around a light into theta/phi
// cells and records which of them lead to specular surfaces. Cells are computed on
// first use and are safe to query concurrently.
type LightSourceMap struct {
	world  *world.World
	light  lights.Light
	config LightSourceMapConfig
	seed   int64

	cells []Cell
	once  []sync.Once
	ready []atomic.Bool

	coverageOnce sync.Once
	choice       *core.WeightedChoice[int]
	coverage     float64
}

// NewLightSourceMap creates an empty map for light. Nothing is traced until cells are requested.
func NewLightSourceMap(w *world.World, light lights.Light, cfg LightSourceMapConfig, seed int64) *LightSourceMap {
	cfg.ThetaSteps = max(1, cfg.ThetaSteps)
	cfg.PhiSteps = max(1, cfg.PhiSteps)
	cfg.SamplesPerCell = max(1, cfg.SamplesPerCell)

	n := cfg.ThetaSteps * cfg.PhiSteps
	return &LightSourceMap{
		world:  w,
		light:  light,
		config: cfg,
		seed:   seed,
		cells:  make([]Cell, n),
		once:   make([]sync.Once, n),
		ready:  make([]atomic.Bool, n),
	}
}

func (m *LightSourceMap) index(theta, phi int) (int, error) {
	if theta < 0 || theta >= m.config.ThetaSteps || phi < 0 || phi >= m.config.PhiSteps {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrCellOutOfRange, theta, phi)
	}
	return theta*m.config.PhiSteps + phi, nil
}

// Cell returns the cell at (theta, phi), computing it if this is the first request
func (m *LightSourceMap) Cell(theta, phi int) (Cell, error) {
	i, err := m.index(theta, phi)
	if err != nil {
		return Cell{}, err
	}
	m.once[i].Do(func() {
		m.cells[i] = m.compute(theta, phi)
		m.ready[i].Store(true)
	})
	return m.cells[i], nil
}

// Lookup returns the cell at (theta, phi) only if it has already been computed
func (m *LightSourceMap) Lookup(theta, phi int) (Cell, error) {
	i, err := m.index(theta, phi)
	if err != nil {
		return Cell{}, err
	}
	if !m.ready[i].Load() {
		return Cell{}, fmt.Errorf("%w: (%d, %d)", ErrUninitializedCell, theta, phi)
	}
	return m.cells[i], nil
}

// CellFor returns the indices of the cell containing direction
func (m *LightSourceMap) CellFor(direction core.Vec3) (theta, phi int) {
	d := direction.Normalize()
	polar := math.Acos(math.Max(-1, math.Min(1, d.Y)))
	azimuth := math.Atan2(d.Z, d.X)
	if azimuth < 0 {
		azimuth += 2 * math.Pi
	}
	theta = min(m.config.ThetaSteps-1, int(polar/math.Pi*float64(m.config.ThetaSteps)))
	phi = min(m.config.PhiSteps-1, int(azimuth/(2*math.Pi)*float64(m.config.PhiSteps)))
	return theta, phi
}

// Populate computes every cell, one errgroup task per theta row
func (m *LightSourceMap) Populate(ctx context.Context, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for theta := 0; theta < m.config.ThetaSteps; theta++ {
		theta := theta
		g.Go(func() error {
			for phi := 0; phi < m.config.PhiSteps; phi++ {
				if err := gctx.Err(); err != nil {
					return fmt.Errorf("%w: %v", ErrPopulationAborted, err)
				}
				if _, err := m.Cell(theta, phi); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// bounds returns the cosine range and azimuth range of a cell
func (m *LightSourceMap) bounds(theta, phi int) (cosHigh, cosLow, phi0, dPhi float64) {
	dTheta := math.Pi / float64(m.config.ThetaSteps)
	dPhi = 2 * math.Pi / float64(m.config.PhiSteps)
	cosHigh = math.Cos(float64(theta) * dTheta)
	cosLow = math.Cos(float64(theta+1) * dTheta)
	return cosHigh, cosLow, float64(phi) * dPhi, dPhi
}

// direction maps a 2D sample uniformly over the cell's solid angle
func (m *LightSourceMap) direction(theta, phi int, sample core.Vec2) core.Vec3 {
	cosHigh, cosLow, phi0, dPhi := m.bounds(theta, phi)
	cosTheta := cosHigh - sample.X*(cosHigh-cosLow)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	azimuth := phi0 + sample.Y*dPhi
	return core.NewVec3(sinTheta*math.Cos(azimuth), cosTheta, sinTheta*math.Sin(azimuth))
}

// compute fires sample rays through the cell and counts first hits on specular materials
func (m *LightSourceMap) compute(theta, phi int) Cell {
	i, _ := m.index(theta, phi)
	sampler := core.NewSeededSampler(m.seed + int64(i))
	origin := m.light.Location()

	specular := 0
	for s := 0; s < m.config.SamplesPerCell; s++ {
		ray := core.NewRay(origin, m.direction(theta, phi, sampler.Get2D()))
		hit, ok := m.world.Closest(ray)
		if ok && hit.SurfaceMaterial().IsSpecular(hit.LocalPoint) {
			specular++
		}
	}

	cosHigh, cosLow, _, dPhi := m.bounds(theta, phi)
	return Cell{
		Theta:            theta,
		Phi:              phi,
		SolidAngle:       (cosHigh - cosLow) * dPhi,
		SpecularFraction: float64(specular) / float64(m.config.SamplesPerCell),
	}
}

// prepare builds the cell chooser over every specular cell, computing cells as needed
func (m *LightSourceMap) prepare() {
	m.coverageOnce.Do(func() {
		var indices []int
		var weights []float64
		total := 0.0
		for theta := 0; theta < m.config.ThetaSteps; theta++ {
			for phi := 0; phi < m.config.PhiSteps; phi++ {
				cell, _ := m.Cell(theta, phi)
				if !cell.Specular() {
					continue
				}
				i, _ := m.index(theta, phi)
				indices = append(indices, i)
				weights = append(weights, cell.SolidAngle)
				total += cell.SolidAngle
			}
		}
		m.choice = core.NewWeightedChoice(indices, weights)
		m.coverage = total / (4 * math.Pi)
	})
}

// Coverage is the fraction of the light's sphere of directions covered by specular cells
func (m *LightSourceMap) Coverage() float64 {
	m.prepare()
	return m.coverage
}

// SampleDirection picks a direction uniformly over the specular cells.
// It returns false when the light sees nothing specular.
func (m *LightSourceMap) SampleDirection(sampler core.Sampler) (core.Vec3, bool) {
	m.prepare()
	i, _, ok := m.choice.Choose(sampler.Get1D())
	if !ok {
		return core.Vec3{}, false
	}
	return m.direction(i/m.config.PhiSteps, i%m.config.PhiSteps, sampler.Get2D()), true
}
