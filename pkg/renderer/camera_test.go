package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snowjak88/ray2/pkg/core"
	"github.com/snowjak88/ray2/pkg/transform"
)

func assertVec(t *testing.T, expected, actual core.Vec3) {
	t.Helper()
	assert.True(t, expected.ApproxEqual(actual, 1e-9), "expected %v, got %v", expected, actual)
}

func TestPinholeCamera_EyeDistance(t *testing.T) {
	camera := NewPinholeCamera(CameraConfig{FrameWidth: 4, FrameHeight: 3, FieldOfView: 90})
	assert.InDelta(t, 2, camera.EyeDistance(), 1e-12)

	w, h := camera.FrameSize()
	assert.Equal(t, 4.0, w)
	assert.Equal(t, 3.0, h)
}

func TestPinholeCamera_GenerateRay(t *testing.T) {
	camera := NewPinholeCamera(CameraConfig{FrameWidth: 4, FrameHeight: 4, FieldOfView: 90})

	center := camera.GenerateRay(0, 0)
	assertVec(t, core.Vec3{}, center.Origin)
	assertVec(t, core.NewVec3(0, 0, 1), center.Direction)

	edge := camera.GenerateRay(2, 0)
	assertVec(t, core.NewVec3(1, 0, 1).Normalize(), edge.Direction)

	up := camera.GenerateRay(0, 2)
	assert.Greater(t, up.Direction.Y, 0.0)
}

func TestPinholeCamera_Transformed(t *testing.T) {
	moved := NewPinholeCamera(DefaultCameraConfig(), transform.NewTranslation(1, 2, -5))
	assertVec(t, core.NewVec3(1, 2, -5), moved.GenerateRay(0, 0).Origin)
	assertVec(t, core.NewVec3(0, 0, 1), moved.GenerateRay(0, 0).Direction)

	turned := NewPinholeCamera(DefaultCameraConfig(), transform.NewRotation(0, 180, 0))
	assertVec(t, core.NewVec3(0, 0, -1), turned.GenerateRay(0, 0).Direction)
}

func TestPinholeCamera_InvalidFieldOfView(t *testing.T) {
	assert.Panics(t, func() {
		NewPinholeCamera(CameraConfig{FrameWidth: 1, FrameHeight: 1, FieldOfView: 0})
	})
}
