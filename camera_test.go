package stage3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestCamera() *Camera {
	camera := NewCamera(640, 360)
	camera.SetLocalPosition(0, 0, 10)
	camera.LookAt(NewVectorZero(), WorldUp)
	return camera
}

func TestCameraProjection(t *testing.T) {

	camera := newTestCamera()

	center := camera.WorldToScreenPixels(NewVectorZero())
	assert.InDelta(t, 320, center.X, 1e-6)
	assert.InDelta(t, 180, center.Y, 1e-6)
	assert.Greater(t, center.W, 0.0)

	above := camera.WorldToScreenPixels(NewVector(0, 1, 0))
	assert.Less(t, above.Y, center.Y, "screen Y grows downwards")

	right := camera.WorldToScreen(NewVector(1, 0, 0))
	assert.Greater(t, right.X, 0.0)
	assert.InDelta(t, 0, right.Y, 1e-9)

	behind := camera.WorldToClip(NewVector(0, 0, 20))
	assert.LessOrEqual(t, behind.W, 0.0)

	assert.True(t, camera.PointInFrustum(NewVectorZero()))
	assert.False(t, camera.PointInFrustum(NewVector(0, 0, 20)))
	assert.False(t, camera.PointInFrustum(NewVector(0, 0, -200)), "beyond the far plane")
	assert.False(t, camera.PointInFrustum(NewVector(100, 0, 0)))

}

func TestCameraFieldOfView(t *testing.T) {

	camera := newTestCamera()

	// With a 60 degree vertical field of view, a point at tan(30) * distance sits on the top edge
	top := camera.WorldToScreenPixels(NewVector(0, 10*math.Tan(math.Pi/6), 0))
	assert.InDelta(t, 0, top.Y, 1e-6)

	camera.SetFieldOfView(90)
	top = camera.WorldToScreenPixels(NewVector(0, 10, 0))
	assert.InDelta(t, 0, top.Y, 1e-6)

}

func TestCameraResize(t *testing.T) {

	camera := NewCamera(0, -5)
	w, h := camera.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)

	camera.Resize(1920, 1080)
	assert.InDelta(t, 16.0/9.0, camera.AspectRatio(), 1e-9)

	center := camera.WorldToScreenPixels(NewVector(0, 0, -5))
	assert.InDelta(t, 960, center.X, 1e-6)
	assert.InDelta(t, 540, center.Y, 1e-6)

}

func TestCameraLookAtUnderRotatedParent(t *testing.T) {

	rig := NewNode("Rig")
	rig.SetLocalRotation(NewMatrix4Rotate(0, 1, 0, math.Pi/2))

	camera := NewCamera(640, 360)
	camera.SetLocalPosition(0, 0, 10)
	rig.AddChildren(camera)

	camera.LookAt(NewVector(0, 2, 0), WorldUp)

	expected := NewLookAtMatrix(camera.WorldPosition(), NewVector(0, 2, 0), WorldUp)
	assert.True(t, camera.WorldRotation().Equals(expected), "got\n%s", camera.WorldRotation())

	center := camera.WorldToScreenPixels(NewVector(0, 2, 0))
	assert.InDelta(t, 320, center.X, 1e-6)
	assert.InDelta(t, 180, center.Y, 1e-6)

}

func TestCameraClone(t *testing.T) {

	camera := newTestCamera()
	camera.SetFieldOfView(75)
	camera.AddChildren(NewNode("Attachment"))

	clone := camera.Clone().(*Camera)
	assert.Equal(t, 75.0, clone.FieldOfView())
	assert.Equal(t, camera.LocalPosition(), clone.LocalPosition())
	assert.Same(t, clone, clone.Children()[0].Parent())

}

func TestOrbitControlsFromCameraPosition(t *testing.T) {

	controls := NewOrbitControls(newTestCamera(), NewVectorZero())

	assert.InDelta(t, 10, controls.Radius(), 1e-9)
	assert.InDelta(t, 0, controls.Azimuth(), 1e-9)
	assert.InDelta(t, math.Pi/2, controls.PolarAngle(), 1e-9)

}

func TestOrbitControlsRotate(t *testing.T) {

	camera := newTestCamera()
	controls := NewOrbitControls(camera, NewVectorZero())

	controls.Rotate(math.Pi/2, 0)
	assert.True(t, controls.Update())

	pos := camera.LocalPosition()
	assert.InDelta(t, 10, pos.X, 1e-9)
	assert.InDelta(t, 0, pos.Y, 1e-9)
	assert.InDelta(t, 0, pos.Z, 1e-9)

	// The camera keeps looking at the target
	center := camera.WorldToScreenPixels(NewVectorZero())
	assert.InDelta(t, 320, center.X, 1e-6)
	assert.InDelta(t, 180, center.Y, 1e-6)

	assert.False(t, controls.Update(), "nothing pending")

}

func TestOrbitControlsClampsElevation(t *testing.T) {

	camera := newTestCamera()
	controls := NewOrbitControls(camera, NewVectorZero())

	controls.Rotate(0, 10)
	controls.Update()
	assert.InDelta(t, polarEpsilon, controls.PolarAngle(), 1e-12)
	assert.InDelta(t, 10, camera.LocalPosition().Y, 1e-6)

	controls.MaxPolarAngle = math.Pi / 2
	controls.Rotate(0, -10)
	controls.Update()
	assert.InDelta(t, math.Pi/2, controls.PolarAngle(), 1e-12)
	assert.InDelta(t, 0, camera.LocalPosition().Y, 1e-9)

}

func TestOrbitControlsZoom(t *testing.T) {

	camera := newTestCamera()
	controls := NewOrbitControls(camera, NewVectorZero())

	controls.Zoom(2)
	controls.Update()
	assert.InDelta(t, 5, controls.Radius(), 1e-9)
	assert.InDelta(t, 5, camera.LocalPosition().Z, 1e-9)

	controls.MinDistance = 8
	controls.Zoom(2)
	controls.Update()
	assert.InDelta(t, 8, controls.Radius(), 1e-9)

	controls.Zoom(0)
	controls.Update()
	assert.InDelta(t, 8, controls.Radius(), 1e-9, "non-positive factors are ignored")

}

func TestOrbitControlsPan(t *testing.T) {

	camera := newTestCamera()
	controls := NewOrbitControls(camera, NewVectorZero())

	controls.Pan(0.1, 0)
	controls.Update()

	viewHeight := 2 * 10 * math.Tan(math.Pi/6)
	assert.InDelta(t, 0.1*viewHeight, controls.Target.X, 1e-9)
	assert.InDelta(t, 0.1*viewHeight, camera.LocalPosition().X, 1e-9)
	assert.InDelta(t, 10, controls.Radius(), 1e-9)

}

func TestOrbitControlsDampingConverges(t *testing.T) {

	camera := newTestCamera()
	controls := NewOrbitControls(camera, NewVectorZero())
	controls.EnableDamping = true

	controls.Rotate(1, 0)

	controls.Update()
	assert.InDelta(t, 0.05, controls.Azimuth(), 1e-9, "the first update applies only the damping factor")

	for i := 0; i < 500; i++ {
		controls.Update()
	}
	assert.InDelta(t, 1, controls.Azimuth(), 1e-6)
	assert.False(t, controls.Update())

}

func TestOrbitControlsDisabled(t *testing.T) {

	camera := newTestCamera()
	controls := NewOrbitControls(camera, NewVectorZero())
	controls.Enabled = false

	controls.Rotate(1, 1)
	controls.Zoom(3)
	controls.Pan(1, 1)
	controls.Update()

	assert.InDelta(t, 10, camera.LocalPosition().Z, 1e-9)
	assert.InDelta(t, 0, controls.Azimuth(), 1e-9)

}
