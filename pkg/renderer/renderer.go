package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/world"
)

// Config contains configuration for a render
type Config struct {
	Width, Height int
	TileSize      int  // Size of each region task; ignored for column tasks
	Columns       bool // One task per image column instead of square regions
	NumWorkers    int  // Number of parallel workers (0 = DefaultWorkers)
	Antialiasing  AntialiasConfig
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:        640,
		Height:       480,
		TileSize:     32,
		NumWorkers:   0,
		Antialiasing: DefaultAntialiasConfig(),
	}
}

// Renderer draws a world through its camera into a pixel sink
type Renderer struct {
	world     *world.World
	sink      PixelSink
	config    Config
	logger    core.Logger
	cancelled atomic.Bool
}

// NewRenderer creates a renderer
func NewRenderer(w *world.World, sink PixelSink, config Config, logger core.Logger) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Renderer{world: w, sink: sink, config: config, logger: logger}
}

// Cancel asks running tasks to stop at their next row
func (r *Renderer) Cancel() {
	r.cancelled.Store(true)
}

func (r *Renderer) tiles() []*Tile {
	if r.config.Columns {
		return NewColumnTiles(r.config.Width, r.config.Height)
	}
	return NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize)
}

// Render draws every pixel and shuts the sink down. A task that panics is logged and
// counted in the stats without stopping the others. Cancelling ctx or calling Cancel
// stops the render early with ErrCancelled; the sink is still shut down.
func (r *Renderer) Render(ctx context.Context) (RenderStats, error) {
	if r.world.Camera == nil {
		return RenderStats{}, errors.New("world has no camera")
	}
	if r.config.Width <= 0 || r.config.Height <= 0 {
		return RenderStats{}, fmt.Errorf("invalid image size %dx%d", r.config.Width, r.config.Height)
	}

	start := time.Now()
	tiles := r.tiles()
	tileRenderer := NewTileRenderer(r.world, r.sink, NewAntialiaser(r.config.Antialiasing), r.config.Width, r.config.Height, &r.cancelled)
	pool := NewWorkerPool(tileRenderer.RenderTile, len(tiles), r.config.NumWorkers, r.logger)

	r.logger.Printf("Rendering %dx%d in %d tasks using %d workers...\n",
		r.config.Width, r.config.Height, len(tiles), pool.GetNumWorkers())

	if ctx.Err() != nil {
		r.Cancel()
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			r.Cancel()
		case <-done:
		}
	}()

	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	var stats RenderStats
	cancelled := false
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Merge(result.Stats)
		if errors.Is(result.Error, ErrCancelled) {
			cancelled = true
		}
	}
	pool.Stop()
	stats.Duration = time.Since(start)

	if err := r.sink.Shutdown(); err != nil {
		return stats, fmt.Errorf("shutting down pixel sink: %w", err)
	}

	if cancelled {
		r.logger.Printf("Render cancelled after %v (%d of %d pixels)\n", stats.Duration, stats.TotalPixels, r.config.Width*r.config.Height)
		return stats, ErrCancelled
	}

	r.logger.Printf("Render completed in %v (%d pixels drawn, %.1f samples/pixel, %d failed tasks)\n",
		stats.Duration, stats.DrawnPixels, stats.AverageSamples, stats.FailedTasks)
	if imaged, ok := r.sink.(interface{ Image() image.Image }); ok {
		r.logger.Printf("Average luminance %.3f\n", CalculateAverageLuminance(imaged.Image()))
	}
	return stats, nil
}
