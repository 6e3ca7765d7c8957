package stage3d

import "math"

// OrbitalBody moves a node along an ellipse in the XZ plane around its parent's origin. Every step the body's angle
// gives its position (cos(Angle) * SemiMajorAxis, sin(Angle) * SemiMinorAxis) and its yaw (YawFactor * Angle), and then
// the angle advances.
type OrbitalBody struct {
	Angle         float64 // Current angle along the ellipse in radians
	AngularSpeed  float64 // Radians per step, or per second if TimeScaled is set
	SemiMajorAxis float64 // Radius along X
	SemiMinorAxis float64 // Radius along Z
	YawFactor     float64 // Rotation about +Y is YawFactor * Angle
	Target        INode   // Optional node whose local X, Z and yaw are written each step
	TimeScaled    bool    // If true, Update advances by AngularSpeed * dt rather than AngularSpeed

	Position Vector  // Position computed by the last step; Y is always 0
	Yaw      float64 // Yaw computed by the last step
}

// NewOrbitalBody returns a new OrbitalBody moving target (which may be nil) along an ellipse with the given semi-axes.
func NewOrbitalBody(target INode, angularSpeed, semiMajorAxis, semiMinorAxis, yawFactor float64) *OrbitalBody {
	return &OrbitalBody{
		AngularSpeed:  angularSpeed,
		SemiMajorAxis: semiMajorAxis,
		SemiMinorAxis: semiMinorAxis,
		YawFactor:     yawFactor,
		Target:        target,
	}
}

// Step places the body from its current angle and then advances the angle by AngularSpeed.
func (body *OrbitalBody) Step() {
	body.advance(body.AngularSpeed)
}

// Update places the body from its current angle and advances it, by AngularSpeed * dt if TimeScaled is set and by a
// plain Step otherwise.
func (body *OrbitalBody) Update(dt float64) {
	if body.TimeScaled {
		body.advance(body.AngularSpeed * dt)
		return
	}
	body.Step()
}

func (body *OrbitalBody) advance(delta float64) {

	body.Position = NewVector(math.Cos(body.Angle)*body.SemiMajorAxis, 0, math.Sin(body.Angle)*body.SemiMinorAxis)
	body.Yaw = body.YawFactor * body.Angle

	if body.Target != nil {
		pos := body.Target.LocalPosition()
		body.Target.SetLocalPosition(body.Position.X, pos.Y, body.Position.Z)
		body.Target.SetLocalRotation(NewMatrix4Rotate(0, 1, 0, body.Yaw))
	}

	body.Angle += delta

}
