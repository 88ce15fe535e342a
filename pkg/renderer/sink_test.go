package renderer

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowjak88/ray2/pkg/core"
)

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		name     string
		in       core.Vec3
		expected color.RGBA
	}{
		{"black", core.Vec3{}, color.RGBA{0, 0, 0, 255}},
		{"white", core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"gamma", core.NewVec3(0.25, 0.25, 0.25), color.RGBA{127, 127, 127, 255}},
		{"clamped", core.NewVec3(4, -1, 1), color.RGBA{255, 0, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Vec3ToColor(tt.in))
		})
	}
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink(3, 2)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, sink.Image().At(2, 1))

	sink.DrawPixel(1, 1, core.NewVec3(1, 0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, sink.Image().At(1, 1))
	assert.NoError(t, sink.Shutdown())
}

func TestPNGSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	sink := NewPNGSink(4, 4, path)
	sink.DrawPixel(2, 3, core.NewVec3(0, 1, 0))
	require.NoError(t, sink.Shutdown())

	img, err := gg.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	r, g, b, a := img.At(2, 3).RGBA()
	assert.Equal(t, []uint32{0, 255, 0, 255}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})
	r, g, b, _ = img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{r >> 8, g >> 8, b >> 8})
}
