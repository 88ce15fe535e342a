package renderer

import (
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"

	"github.com/snowjak88/ray2/pkg/core"
)

// PixelSink receives finished pixels
type PixelSink interface {
	DrawPixel(x, y int, c core.Vec3)
	Shutdown() error
}

// Vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func Vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Clamp to valid color range, then apply gamma correction (gamma = 2.0)
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// MemorySink collects pixels in an RGBA image. Tasks never share pixels, so
// concurrent draws need no lock.
type MemorySink struct {
	img *image.RGBA
}

// NewMemorySink creates an opaque black image of the given size
func NewMemorySink(width, height int) *MemorySink {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return &MemorySink{img: img}
}

// DrawPixel sets one pixel
func (m *MemorySink) DrawPixel(x, y int, c core.Vec3) {
	m.img.SetRGBA(x, y, Vec3ToColor(c))
}

// Image returns the collected image
func (m *MemorySink) Image() image.Image {
	return m.img
}

// Shutdown does nothing
func (m *MemorySink) Shutdown() error {
	return nil
}

// PNGSink draws onto a gg context and writes it as a PNG on shutdown
type PNGSink struct {
	mu   sync.Mutex
	dc   *gg.Context
	path string
}

// NewPNGSink creates a black canvas that will be saved to path
func NewPNGSink(width, height int, path string) *PNGSink {
	dc := gg.NewContext(width, height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	return &PNGSink{dc: dc, path: path}
}

// DrawPixel sets one pixel
func (p *PNGSink) DrawPixel(x, y int, c core.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dc.SetColor(Vec3ToColor(c))
	p.dc.SetPixel(x, y)
}

// Image returns the canvas
func (p *PNGSink) Image() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dc.Image()
}

// Shutdown saves the canvas
func (p *PNGSink) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dc.SavePNG(p.path)
}
