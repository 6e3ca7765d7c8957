package stage3d

import "math"

// Quaternion is a rotation stored as X, Y, Z (vector part) and W (scalar part), in the glTF component order.
type Quaternion struct {
	X, Y, Z, W float64
}

// NewQuaternion creates a new Quaternion.
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{x, y, z, w}
}

// NewQuaternionIdentity returns the identity rotation.
func NewQuaternionIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1}
}

// NewQuaternionFromAxisAngle returns a Quaternion rotating by angle radians around axis.
func NewQuaternionFromAxisAngle(axis Vector, angle float64) Quaternion {
	axis = axis.Unit()
	s := math.Sin(angle / 2)
	return Quaternion{axis.X * s, axis.Y * s, axis.Z * s, math.Cos(angle / 2)}
}

// Dot returns the dot product of the two Quaternions.
func (quat Quaternion) Dot(other Quaternion) float64 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// Magnitude returns the length of the Quaternion.
func (quat Quaternion) Magnitude() float64 {
	return math.Sqrt(quat.Dot(quat))
}

// Normalized returns the Quaternion scaled to unit length. A zero Quaternion becomes the identity.
func (quat Quaternion) Normalized() Quaternion {
	m := quat.Magnitude()
	if m < 1e-12 {
		return NewQuaternionIdentity()
	}
	return Quaternion{quat.X / m, quat.Y / m, quat.Z / m, quat.W / m}
}

// Negated returns the Quaternion with every component negated; it represents the same rotation.
func (quat Quaternion) Negated() Quaternion {
	return Quaternion{-quat.X, -quat.Y, -quat.Z, -quat.W}
}

// Slerp spherically interpolates between the calling Quaternion and other by percent, taking the shortest arc.
func (quat Quaternion) Slerp(other Quaternion, percent float64) Quaternion {

	if percent <= 0 {
		return quat
	} else if percent >= 1 {
		return other
	}

	cosHalfTheta := quat.Dot(other)

	if cosHalfTheta < 0 {
		other = other.Negated()
		cosHalfTheta = -cosHalfTheta
	}

	// Nearly identical rotations; a linear blend is accurate and avoids dividing by ~0.
	if cosHalfTheta > 0.9995 {
		return Quaternion{
			quat.X + (other.X-quat.X)*percent,
			quat.Y + (other.Y-quat.Y)*percent,
			quat.Z + (other.Z-quat.Z)*percent,
			quat.W + (other.W-quat.W)*percent,
		}.Normalized()
	}

	halfTheta := math.Acos(cosHalfTheta)
	sinHalfTheta := math.Sqrt(1 - cosHalfTheta*cosHalfTheta)

	ratioA := math.Sin((1-percent)*halfTheta) / sinHalfTheta
	ratioB := math.Sin(percent*halfTheta) / sinHalfTheta

	return Quaternion{
		quat.X*ratioA + other.X*ratioB,
		quat.Y*ratioA + other.Y*ratioB,
		quat.Z*ratioA + other.Z*ratioB,
		quat.W*ratioA + other.W*ratioB,
	}

}

// ToMatrix4 returns a rotation Matrix4 equivalent to the Quaternion.
func (quat Quaternion) ToMatrix4() Matrix4 {

	q := quat.Normalized()
	x, y, z, w := q.X, q.Y, q.Z, q.W

	mat := NewMatrix4()

	mat[0][0] = 1 - 2*(y*y+z*z)
	mat[0][1] = 2 * (x*y + z*w)
	mat[0][2] = 2 * (x*z - y*w)

	mat[1][0] = 2 * (x*y - z*w)
	mat[1][1] = 1 - 2*(x*x+z*z)
	mat[1][2] = 2 * (y*z + x*w)

	mat[2][0] = 2 * (x*z + y*w)
	mat[2][1] = 2 * (y*z - x*w)
	mat[2][2] = 1 - 2*(x*x+y*y)

	return mat

}

// Add returns the component-wise sum of the two Quaternions. Used for weighted blending, so the result is not normalized.
func (quat Quaternion) Add(other Quaternion) Quaternion {
	return Quaternion{quat.X + other.X, quat.Y + other.Y, quat.Z + other.Z, quat.W + other.W}
}

// Scale multiplies every component of the Quaternion by scalar.
func (quat Quaternion) Scale(scalar float64) Quaternion {
	return Quaternion{quat.X * scalar, quat.Y * scalar, quat.Z * scalar, quat.W * scalar}
}
