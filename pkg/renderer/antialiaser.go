package renderer

import (
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/snowjak88/ray2/pkg/core"
)

// SamplePoint is a position on the camera sensor
type SamplePoint struct {
	X, Y float64
}

// Sample is the outcome of sampling one point; Found is false when nothing was seen
type Sample struct {
	Point SamplePoint
	Color core.Vec3
	Found bool
}

// SampleFunc returns the color seen at a sensor point
type SampleFunc func(x, y float64) (core.Vec3, bool)

// AntialiasConfig controls supersampling
type AntialiasConfig struct {
	Grid     int  // Samples per pixel along each axis
	Jitter   bool // Randomize each sample within its stratum
	Parallel bool // Evaluate a pixel's samples concurrently
}

// DefaultAntialiasConfig takes one sample per pixel at its center
func DefaultAntialiasConfig() AntialiasConfig {
	return AntialiasConfig{Grid: 1}
}

// Antialiaser supersamples a pixel in three steps: choose sample points around it,
// sample each, and aggregate the results
type Antialiaser struct {
	config AntialiasConfig
}

// NewAntialiaser creates an antialiaser
func NewAntialiaser(config AntialiasConfig) *Antialiaser {
	config.Grid = max(1, config.Grid)
	return &Antialiaser{config: config}
}

// SelectAround returns a stratified grid of points covering the pixel of the given
// size centered on (x, y). random is only used when jitter is enabled.
func (a *Antialiaser) SelectAround(x, y, pixelWidth, pixelHeight float64, random *rand.Rand) []SamplePoint {
	n := a.config.Grid
	points := make([]SamplePoint, 0, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			u, v := 0.5, 0.5
			if a.config.Jitter && random != nil {
				u, v = random.Float64(), random.Float64()
			}
			points = append(points, SamplePoint{
				X: x + ((float64(i)+u)/float64(n)-0.5)*pixelWidth,
				Y: y + ((float64(j)+v)/float64(n)-0.5)*pixelHeight,
			})
		}
	}
	return points
}

// Sample evaluates fn at every point, concurrently when configured
func (a *Antialiaser) Sample(points []SamplePoint, fn SampleFunc) []Sample {
	samples := make([]Sample, len(points))
	evaluate := func(i int) {
		color, found := fn(points[i].X, points[i].Y)
		samples[i] = Sample{Point: points[i], Color: color, Found: found}
	}

	if !a.config.Parallel || len(points) < 2 {
		for i := range points {
			evaluate(i)
		}
		return samples
	}

	// Panics are carried back to the calling goroutine, where the worker pool can recover them
	panics := make([]any, len(points))
	var g errgroup.Group
	for i := range points {
		i := i
		g.Go(func() error {
			defer func() { panics[i] = recover() }()
			evaluate(i)
			return nil
		})
	}
	_ = g.Wait()
	for _, p := range panics {
		if p != nil {
			panic(p)
		}
	}
	return samples
}

// Aggregate averages the samples. Samples that saw nothing count as black; if no
// sample saw anything the pixel has no color.
func (a *Antialiaser) Aggregate(samples []Sample) (core.Vec3, PixelStats, bool) {
	var stats PixelStats
	found := false
	for _, s := range samples {
		if s.Found {
			found = true
			stats.AddSample(s.Color)
		} else {
			stats.AddSample(core.Vec3{})
		}
	}
	if !found {
		return core.Vec3{}, stats, false
	}
	return stats.GetColor(), stats, true
}

// Execute runs all three steps for one pixel
func (a *Antialiaser) Execute(x, y, pixelWidth, pixelHeight float64, random *rand.Rand, fn SampleFunc) (core.Vec3, PixelStats, bool) {
	return a.Aggregate(a.Sample(a.SelectAround(x, y, pixelWidth, pixelHeight, random), fn))
}
