// Package loaders reads images used by scenes: environment maps and image color schemes.
package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder

	"github.com/fogleman/gg"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/lighting"
	"github.com/snowjak88/ray2/pkg/material"
)

// ImageData contains a decoded image and its pixels as a Vec3 color array
type ImageData struct {
	Image  image.Image
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, channels in [0, 1]
}

// LoadImage loads a PNG or JPEG image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	img, err := gg.LoadImage(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
	}

	width, height, pixels := material.PixelsFromImage(img)
	return &ImageData{
		Image:  img,
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// LoadEnvironmentMap loads an equirectangular image as an environment map
func LoadEnvironmentMap(filename string) (*lighting.EnvironmentMap, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return lighting.NewEnvironmentMap(data.Image), nil
}

// LoadImageColorScheme loads an image as a color scheme repeating every tileSize units
func LoadImageColorScheme(filename string, tileSize float64) (*material.ImageColorScheme, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return material.NewImageColorScheme(data.Width, data.Height, data.Pixels, tileSize), nil
}
