package renderer

import (
	"math"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/transform"
)

// CameraConfig describes a pinhole camera's sensor
type CameraConfig struct {
	FrameWidth  float64 // Sensor width in world units
	FrameHeight float64 // Sensor height in world units
	FieldOfView float64 // Horizontal field of view in degrees
}

// DefaultCameraConfig returns a 4x3 sensor with a 60 degree field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{FrameWidth: 4, FrameHeight: 3, FieldOfView: 60}
}

// PinholeCamera looks down its local +Z axis from the local origin, with +Y up.
// Move and aim it with transforms.
type PinholeCamera struct {
	transform.Transformable

	config      CameraConfig
	eyeDistance float64
}

// NewPinholeCamera creates a camera. The eye sits far enough behind the sensor that
// the sensor's width spans the field of view.
func NewPinholeCamera(config CameraConfig, transforms ...transform.Transform) *PinholeCamera {
	if config.FieldOfView <= 0 || config.FieldOfView >= 180 {
		panic("field of view must be between 0 and 180 degrees")
	}
	halfAngle := config.FieldOfView * math.Pi / 360
	return &PinholeCamera{
		Transformable: transform.NewTransformable(transforms...),
		config:        config,
		eyeDistance:   (config.FrameWidth / 2) / math.Tan(halfAngle),
	}
}

// FrameSize returns the sensor's width and height
func (c *PinholeCamera) FrameSize() (width, height float64) {
	return c.config.FrameWidth, c.config.FrameHeight
}

// EyeDistance returns the distance from the eye to the sensor plane
func (c *PinholeCamera) EyeDistance() float64 {
	return c.eyeDistance
}

// GenerateRay returns the world-space ray from the eye through sensor point (x, y).
// It implements world.Camera.
func (c *PinholeCamera) GenerateRay(x, y float64) core.Ray {
	local := core.NewRay(core.Vec3{}, core.NewVec3(x, y, c.eyeDistance).Normalize())
	ray := c.LocalToWorldRay(local)
	ray.Direction = ray.Direction.Normalize()
	return ray
}
