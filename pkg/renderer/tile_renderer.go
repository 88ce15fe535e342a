package renderer

import (
	"errors"
	"sync/atomic"

	"github.com/snowjak88/ray2/pkg/world"
)

// ErrCancelled is returned when a render stops before every pixel is drawn
var ErrCancelled = errors.New("render cancelled")

// TileRenderer shades the pixels of a tile and hands them to a sink
type TileRenderer struct {
	world       *world.World
	sink        PixelSink
	antialiaser *Antialiaser
	width       int
	height      int
	cancelled   *atomic.Bool
}

// NewTileRenderer creates a tile renderer for an image of width x height pixels.
// cancelled is polled once per row.
func NewTileRenderer(w *world.World, sink PixelSink, antialiaser *Antialiaser, width, height int, cancelled *atomic.Bool) *TileRenderer {
	if cancelled == nil {
		cancelled = &atomic.Bool{}
	}
	return &TileRenderer{
		world:       w,
		sink:        sink,
		antialiaser: antialiaser,
		width:       width,
		height:      height,
		cancelled:   cancelled,
	}
}

// pixelSize is the sensor area covered by one pixel
func (tr *TileRenderer) pixelSize() (float64, float64) {
	frameWidth, frameHeight := tr.frameSize()
	return frameWidth / float64(tr.width), frameHeight / float64(tr.height)
}

func (tr *TileRenderer) frameSize() (float64, float64) {
	if sized, ok := tr.world.Camera.(interface{ FrameSize() (float64, float64) }); ok {
		return sized.FrameSize()
	}
	return float64(tr.width), float64(tr.height)
}

// SensorPoint maps the center of pixel (px, py) onto the sensor. Image rows run
// downward while sensor y runs upward.
func (tr *TileRenderer) SensorPoint(px, py int) (float64, float64) {
	frameWidth, frameHeight := tr.frameSize()
	pw, ph := tr.pixelSize()
	x := (float64(px)+0.5)*pw - frameWidth/2
	y := frameHeight/2 - (float64(py)+0.5)*ph
	return x, y
}

// RenderTile renders every pixel within the tile's bounds
func (tr *TileRenderer) RenderTile(tile *Tile) (RenderStats, error) {
	bounds := tile.Bounds
	stats := RenderStats{}
	pw, ph := tr.pixelSize()

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		if tr.cancelled.Load() {
			return stats, ErrCancelled
		}
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			x, y := tr.SensorPoint(i, j)
			color, pixel, ok := tr.antialiaser.Execute(x, y, pw, ph, tile.Random, tr.world.ShootRay)

			stats.TotalPixels++
			stats.TotalSamples += pixel.SampleCount
			if ok {
				stats.DrawnPixels++
				tr.sink.DrawPixel(i, j, color)
			}
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats, nil
}
