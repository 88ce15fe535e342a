// Package photonmap builds a map of photons absorbed throughout a world and estimates
// the indirect light they deposit at a shading point.
package photonmap

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/kdtree"
	"github.com/snowjak88/ray2/pkg/lighting"
	"github.com/snowjak88/ray2/pkg/lights"
	"github.com/snowjak88/ray2/pkg/world"
)

// ErrPopulationAborted is returned when a build is interrupted before it completes.
// No partial map is returned.
var ErrPopulationAborted = errors.New("photon map population aborted")

// Photon is a packet of light absorbed at a point
type Photon struct {
	Position  core.Vec3
	Direction core.Vec3 // Unit direction of travel on arrival
	Color     core.Vec3
}

// Coordinates implements kdtree.Point
func (p Photon) Coordinates() []float64 {
	return []float64{p.Position.X, p.Position.Y, p.Position.Z}
}

// Config controls photon map population and estimation
type Config struct {
	PhotonsPerLight        int
	CausticPhotonsPerLight int     // Extra photons aimed only where the LightSourceMap found specular surfaces
	NearestCount           int     // Photons gathered per estimate
	ConeFilter             float64 // Cone filter constant k >= 1; photons at distance d weigh 1 - d/(k·r)
	Scale                  float64 // Multiplies every estimate
	Seed                   int64
	Workers                int
	ChunkSize              int // Photons traced per task
	// RecordDirect also stores photons absorbed on their first hit. It is off by default,
	// so not every termination point is recorded: first-hit light duplicates the direct
	// diffuse and specular terms.
	RecordDirect   bool
	LightSourceMap LightSourceMapConfig
}

// DefaultConfig returns a modest photon map suitable for previews
func DefaultConfig() Config {
	return Config{
		PhotonsPerLight:        20000,
		CausticPhotonsPerLight: 0,
		NearestCount:           50,
		ConeFilter:             1.1,
		Scale:                  1,
		Seed:                   42,
		Workers:                runtime.NumCPU(),
		ChunkSize:              1000,
		LightSourceMap:         DefaultLightSourceMapConfig(),
	}
}

// PhotonMap holds absorbed photons indexed for nearest-N queries. It is read-only once built.
type PhotonMap struct {
	global  *kdtree.Tree[Photon, float64]
	caustic *kdtree.Tree[Photon, float64]
	config  Config
}

// New indexes already-traced photons
func New(global, caustic []Photon, cfg Config) (*PhotonMap, error) {
	globalTree, err := kdtree.New[Photon, float64](global)
	if err != nil {
		return nil, fmt.Errorf("indexing photons: %w", err)
	}
	causticTree, err := kdtree.New[Photon, float64](caustic)
	if err != nil {
		return nil, fmt.Errorf("indexing caustic photons: %w", err)
	}
	return &PhotonMap{global: globalTree, caustic: causticTree, config: cfg}, nil
}

// Len returns the number of stored global photons
func (m *PhotonMap) Len() int {
	return m.global.Len()
}

// CausticLen returns the number of stored caustic photons
func (m *PhotonMap) CausticLen() int {
	return m.caustic.Len()
}

// Estimate returns the radiance deposited around point by photons arriving on the
// side normal faces. It implements lighting.IrradianceEstimator.
func (m *PhotonMap) Estimate(point, normal core.Vec3) core.Vec3 {
	return m.estimate(m.global, point, normal).Add(m.estimate(m.caustic, point, normal))
}

// estimate applies a cone filter over the nearest photons and divides by the area they cover
func (m *PhotonMap) estimate(tree *kdtree.Tree[Photon, float64], point, normal core.Vec3) core.Vec3 {
	if tree.Len() == 0 || m.config.NearestCount <= 0 {
		return core.Vec3{}
	}
	neighbors, err := tree.NearestNeighbors([]float64{point.X, point.Y, point.Z}, m.config.NearestCount)
	if err != nil || len(neighbors) == 0 {
		return core.Vec3{}
	}

	radius := math.Sqrt(neighbors[len(neighbors)-1].DistanceSquared)
	if radius < core.NearlyZero {
		return core.Vec3{}
	}

	k := math.Max(1, m.config.ConeFilter)
	var total core.Vec3
	for _, nb := range neighbors {
		if nb.Point.Direction.Dot(normal) >= 0 {
			continue
		}
		weight := 1 - math.Sqrt(nb.DistanceSquared)/(k*radius)
		total = total.Add(nb.Point.Color.Multiply(weight))
	}

	area := (1 - 2/(3*k)) * math.Pi * radius * radius
	return total.Multiply(m.config.Scale / area)
}

// task is one chunk of photons from one light
type task struct {
	light   lights.Light
	count   int
	power   core.Vec3
	seed    int64
	caustic bool
	sources *LightSourceMap
}

// Build traces photons from every point light through w using model, which must not
// itself consult a photon map. A nil model uses Fresnel over the plain surface model.
// Tasks run on an errgroup and the first failure or cancellation aborts the whole build.
func Build(ctx context.Context, w *world.World, model world.LightingModel, cfg Config, logger core.Logger) (*PhotonMap, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if model == nil {
		model = lighting.NewFresnel(lighting.NewSurfaceModel(nil))
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	// A shallow copy shares the scene but shades with the photon model
	tracer := *w
	tracer.Model = model

	start := time.Now()
	var tasks []task
	for i, light := range w.Lights {
		if light.Type() != lights.LightTypePoint {
			logger.Printf("Photon map: skipping %s light %d\n", light.Type(), i)
			continue
		}
		seed := cfg.Seed + int64(i)*1_000_003
		tasks = append(tasks, chunk(light, cfg.PhotonsPerLight, light.Power().Multiply(1/float64(max(1, cfg.PhotonsPerLight))), seed, cfg.ChunkSize, nil)...)

		if cfg.CausticPhotonsPerLight <= 0 {
			continue
		}
		sources := NewLightSourceMap(&tracer, light, cfg.LightSourceMap, seed)
		if err := sources.Populate(ctx, cfg.Workers); err != nil {
			return nil, err
		}
		coverage := sources.Coverage()
		if coverage <= 0 {
			logger.Printf("Photon map: light %d sees no specular surfaces, no caustic photons\n", i)
			continue
		}
		power := light.Power().Multiply(coverage / float64(cfg.CausticPhotonsPerLight))
		tasks = append(tasks, chunk(light, cfg.CausticPhotonsPerLight, power, seed+500_000, cfg.ChunkSize, sources)...)
	}

	results := make([][]Photon, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			photons, err := trace(gctx, &tracer, t, cfg)
			if err != nil {
				return err
			}
			results[i] = photons
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Printf("Photon map: population aborted: %v\n", err)
		return nil, err
	}

	var global, caustic []Photon
	for i, photons := range results {
		if tasks[i].caustic {
			caustic = append(caustic, photons...)
		} else {
			global = append(global, photons...)
		}
	}

	m, err := New(global, caustic, cfg)
	if err != nil {
		return nil, err
	}
	logger.Printf("Photon map: stored %d photons and %d caustic photons in %v\n", m.Len(), m.CausticLen(), time.Since(start))
	return m, nil
}

// chunk splits count photons into tasks of at most size, each with its own seed
func chunk(light lights.Light, count int, power core.Vec3, seed int64, size int, sources *LightSourceMap) []task {
	var tasks []task
	for n := 0; count > 0; n++ {
		c := min(size, count)
		tasks = append(tasks, task{
			light:   light,
			count:   c,
			power:   power,
			seed:    seed + int64(n),
			caustic: sources != nil,
			sources: sources,
		})
		count -= c
	}
	return tasks
}

// trace emits one task's photons and keeps those its pass is responsible for
func trace(ctx context.Context, w *world.World, t task, cfg Config) ([]Photon, error) {
	sampler := core.NewSeededSampler(t.seed)
	origin := t.light.Location()
	causticsSeparate := cfg.CausticPhotonsPerLight > 0

	var photons []Photon
	for i := 0; i < t.count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPopulationAborted, err)
		}

		var direction core.Vec3
		if t.caustic {
			d, ok := t.sources.SampleDirection(sampler)
			if !ok {
				return nil, nil
			}
			direction = d
		} else {
			direction = core.RandomUnitVector(sampler)
		}

		photon, specular, ok := walk(w, core.NewRay(origin, direction), t.power, sampler)
		if !ok {
			continue
		}
		switch {
		case t.caustic && !specular:
			continue
		case !t.caustic && specular && causticsSeparate:
			continue
		case !specular && !cfg.RecordDirect:
			continue
		}
		photons = append(photons, photon)
	}
	return photons, nil
}

// walk follows a photon down the tree of lighting results, choosing one weighted
// contribution at each node, until it reaches a leaf where it is absorbed.
// specular reports whether it was reflected or refracted on the way.
func walk(w *world.World, ray core.Ray, color core.Vec3, sampler core.Sampler) (photon Photon, specular, ok bool) {
	result, found := w.Trace(ray, nil)
	if !found {
		return Photon{}, false, false
	}

	for {
		if result.Missed {
			return Photon{}, false, false
		}
		if result.IsLeaf() {
			if !core.WorldBox().Contains(result.Point) {
				return Photon{}, false, false
			}
			return Photon{
				Position:  result.Point,
				Direction: result.Eye.Direction.Normalize(),
				Color:     color,
			}, specular, true
		}

		weights := make([]float64, len(result.Contributions))
		for i, c := range result.Contributions {
			weights[i] = math.Max(0, c.Weight)
		}
		choice := core.NewWeightedChoice(result.Contributions, weights)
		next, _, chosen := choice.Choose(sampler.Get1D())
		if !chosen {
			return Photon{}, false, false
		}

		// Weights may sum below one when a branch could not be followed
		color = color.MultiplyVec(next.Result.TintColor()).Multiply(math.Min(1, choice.Total()))
		if next.Result.Eye.RecursionLevel > result.Eye.RecursionLevel {
			specular = true
		}
		result = next.Result
	}
}
