package stage3d

import (
	"math"
)

// OrbitControls moves a Camera around a target point on a sphere. Rotation, zoom and pan requests accumulate until Update,
// which applies them (gradually, if damping is enabled) and aims the camera at the target.
type OrbitControls struct {
	Camera *Camera
	Target Vector // The point the camera orbits around and looks at.

	Enabled       bool
	EnableDamping bool    // If true, pending changes are applied a fraction at a time, giving the camera inertia.
	DampingFactor float64 // The fraction of pending changes applied per Update when damping; 0.05 by default.

	MinDistance, MaxDistance     float64 // Limits on the distance from the target; 0 and +Inf by default.
	MinPolarAngle, MaxPolarAngle float64 // Limits on the angle down from straight above the target, in radians; 0 and Pi by default.

	radius float64
	theta  float64 // Azimuth around +Y, measured from +Z
	phi    float64 // Polar angle down from +Y

	deltaTheta float64
	deltaPhi   float64
	scale      float64
	panOffset  Vector
}

// polarEpsilon keeps the camera from reaching the poles, where its up vector becomes degenerate.
const polarEpsilon = 1e-6

// NewOrbitControls returns new OrbitControls for the camera orbiting target, starting from the camera's current position.
func NewOrbitControls(camera *Camera, target Vector) *OrbitControls {
	controls := &OrbitControls{
		Camera:        camera,
		Target:        target,
		Enabled:       true,
		DampingFactor: 0.05,
		MaxDistance:   math.Inf(1),
		MaxPolarAngle: math.Pi,
		scale:         1,
	}
	controls.FromCameraPosition()
	return controls
}

// FromCameraPosition sets the controls' spherical coordinates from the camera's current position relative to the target,
// discarding any pending changes.
func (controls *OrbitControls) FromCameraPosition() {

	offset := controls.Camera.WorldPosition().Sub(controls.Target)

	controls.radius = offset.Magnitude()
	controls.theta = math.Atan2(offset.X, offset.Z)
	if controls.radius > 0 {
		controls.phi = math.Acos(math.Max(-1, math.Min(1, offset.Y/controls.radius)))
	} else {
		controls.phi = math.Pi / 2
	}

	controls.deltaTheta = 0
	controls.deltaPhi = 0
	controls.scale = 1
	controls.panOffset = Vector{}

}

// Rotate requests rotating the camera by dAzimuth radians around the target's +Y axis and raising it by dElevation radians.
func (controls *OrbitControls) Rotate(dAzimuth, dElevation float64) {
	if !controls.Enabled {
		return
	}
	controls.deltaTheta += dAzimuth
	controls.deltaPhi -= dElevation
}

// Zoom requests moving the camera towards the target by factor; values above 1 move closer and values between 0 and 1 move away.
func (controls *OrbitControls) Zoom(factor float64) {
	if !controls.Enabled || factor <= 0 {
		return
	}
	controls.scale /= factor
}

// Pan requests moving the target (and camera) across the view. dx and dy are fractions of the view's height at the target's
// distance; positive values move the view right and up.
func (controls *OrbitControls) Pan(dx, dy float64) {

	if !controls.Enabled {
		return
	}

	viewHeight := 2 * controls.radius * math.Tan(controls.Camera.FieldOfView()*math.Pi/360)
	rotation := controls.Camera.WorldRotation()

	controls.panOffset = controls.panOffset.
		Add(rotation.Right().Scale(dx * viewHeight)).
		Add(rotation.Up().Scale(dy * viewHeight))

}

// Radius returns the camera's distance from the target.
func (controls *OrbitControls) Radius() float64 {
	return controls.radius
}

// Azimuth returns the camera's angle around the target's +Y axis, measured from +Z, in radians.
func (controls *OrbitControls) Azimuth() float64 {
	return controls.theta
}

// PolarAngle returns the camera's angle down from straight above the target, in radians.
func (controls *OrbitControls) PolarAngle() float64 {
	return controls.phi
}

// Update applies pending changes, places the camera and aims it at the target. It returns whether the camera moved.
func (controls *OrbitControls) Update() bool {

	prev := controls.Camera.LocalPosition()

	f := 1.0
	if controls.EnableDamping {
		f = controls.DampingFactor
	}

	controls.theta += controls.deltaTheta * f
	controls.phi += controls.deltaPhi * f

	minPhi := math.Max(controls.MinPolarAngle, polarEpsilon)
	maxPhi := math.Min(controls.MaxPolarAngle, math.Pi-polarEpsilon)
	controls.phi = math.Max(minPhi, math.Min(maxPhi, controls.phi))

	controls.radius = math.Max(controls.MinDistance, math.Min(controls.MaxDistance, controls.radius*controls.scale))

	controls.Target = controls.Target.Add(controls.panOffset.Scale(f))

	sinPhi := math.Sin(controls.phi)
	position := controls.Target.Add(NewVector(
		controls.radius*sinPhi*math.Sin(controls.theta),
		controls.radius*math.Cos(controls.phi),
		controls.radius*sinPhi*math.Cos(controls.theta),
	))

	controls.Camera.SetLocalPositionVec(position)
	controls.Camera.LookAt(controls.Target, WorldUp)

	if controls.EnableDamping {
		controls.deltaTheta *= 1 - f
		controls.deltaPhi *= 1 - f
		controls.panOffset = controls.panOffset.Scale(1 - f)
	} else {
		controls.deltaTheta = 0
		controls.deltaPhi = 0
		controls.panOffset = Vector{}
	}

	controls.scale = 1

	return prev.Distance(position) > 1e-9

}
