package material

import (
	"image"
	"math"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/transform"
)

// ImageColorScheme projects an image onto the local XZ plane, repeating every TileSize units
type ImageColorScheme struct {
	transform.Transformable
	Width    int
	Height   int
	Pixels   []core.Vec3 // Row-major: Pixels[y*Width + x]
	TileSize float64
}

// NewImageColorScheme creates an image scheme from raw pixels
func NewImageColorScheme(width, height int, pixels []core.Vec3, tileSize float64) *ImageColorScheme {
	return &ImageColorScheme{
		Width:    width,
		Height:   height,
		Pixels:   pixels,
		TileSize: tileSize,
	}
}

// NewImageColorSchemeFromImage converts a decoded image to an image scheme
func NewImageColorSchemeFromImage(img image.Image, tileSize float64) *ImageColorScheme {
	width, height, pixels := PixelsFromImage(img)
	return NewImageColorScheme(width, height, pixels, tileSize)
}

// PixelsFromImage converts an image to row-major colors in [0, 1]
func PixelsFromImage(img image.Image) (int, int, []core.Vec3) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}
	return width, height, pixels
}

// ColorAt samples the image with nearest-neighbor filtering
func (t *ImageColorScheme) ColorAt(point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Vec3{}
	}
	local := t.WorldToLocalPoint(point)
	tile := t.TileSize
	if tile <= 0 {
		tile = 1
	}

	// Wrap to [0, 1)
	u := local.X / tile
	v := local.Z / tile
	u -= math.Floor(u)
	v -= math.Floor(v)

	// V=0 is bottom, V=1 is top; image rows run top-down
	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))

	x = max(0, min(t.Width-1, x))
	y = max(0, min(t.Height-1, y))

	return t.Pixels[y*t.Width+x]
}
