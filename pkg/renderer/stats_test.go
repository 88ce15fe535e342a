package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snowjak88/ray2/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red 0.2126, green 0.7152, blue 0.0722 and black average to 0.25
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	assert.InDelta(t, 0.25, CalculateAverageLuminance(img), 0.0001)
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	assert.InDelta(t, 1.0, CalculateAverageLuminance(img), 0.0001)
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	assert.Equal(t, core.Vec3{}, ps.GetColor())
	assert.Equal(t, 0.0, ps.Variance())

	ps.AddSample(core.NewVec3(1, 1, 1))
	ps.AddSample(core.NewVec3(0, 0, 0))
	assert.Equal(t, 2, ps.SampleCount)
	assertVec(t, core.NewVec3(0.5, 0.5, 0.5), ps.GetColor())
	assert.InDelta(t, 0.25, ps.Variance(), 1e-9)
}

func TestRenderStats_Merge(t *testing.T) {
	var total RenderStats
	total.Merge(RenderStats{TotalPixels: 10, DrawnPixels: 5, TotalSamples: 40})
	total.Merge(RenderStats{TotalPixels: 10, DrawnPixels: 10, TotalSamples: 40, FailedTasks: 1})

	assert.Equal(t, 20, total.TotalPixels)
	assert.Equal(t, 15, total.DrawnPixels)
	assert.Equal(t, 1, total.FailedTasks)
	assert.InDelta(t, 4.0, total.AverageSamples, 1e-12)
}
