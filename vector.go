package stage3d

import (
	"fmt"
	"math"
)

// Unit axes on stage3d's right-handed, Y-up coordinate system.
var (
	WorldRight    = NewVector(1, 0, 0)
	WorldUp       = NewVector(0, 1, 0)
	WorldBackward = NewVector(0, 0, 1)
)

// Vector is a 3D vector used for positions, scales and directions. W is carried along for
// homogeneous coordinates when projecting and is ignored by every other operation.
// Vectors are values; methods return modified copies so calls can be chained.
type Vector struct {
	X float64
	Y float64
	Z float64
	W float64
}

// NewVector creates a new Vector with the given x, y and z components.
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// NewVectorZero returns a zeroed Vector.
func NewVectorZero() Vector {
	return Vector{}
}

// Add returns the component-wise sum of the two Vectors.
func (vec Vector) Add(other Vector) Vector {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns the calling Vector with other subtracted from it.
func (vec Vector) Sub(other Vector) Vector {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Cross returns the cross product of the calling Vector and other.
func (vec Vector) Cross(other Vector) Vector {
	return Vector{
		X: vec.Y*other.Z - vec.Z*other.Y,
		Y: vec.Z*other.X - vec.X*other.Z,
		Z: vec.X*other.Y - vec.Y*other.X,
	}
}

// Invert returns the Vector pointing the opposite way.
func (vec Vector) Invert() Vector {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Magnitude returns the length of the Vector.
func (vec Vector) Magnitude() float64 {
	return math.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z)
}

// MagnitudeSquared returns the squared length of the Vector, avoiding the square root.
func (vec Vector) MagnitudeSquared() float64 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

// Distance returns the distance between two points.
func (vec Vector) Distance(other Vector) float64 {
	return vec.Sub(other).Magnitude()
}

// Unit returns the Vector normalized to a length of 1. A zero-length Vector is returned unchanged.
func (vec Vector) Unit() Vector {
	l := vec.Magnitude()
	if l < 1e-8 {
		return vec
	}
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// Scale multiplies every component by scalar.
func (vec Vector) Scale(scalar float64) Vector {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// MultComp multiplies the Vectors component-wise.
func (vec Vector) MultComp(other Vector) Vector {
	vec.X *= other.X
	vec.Y *= other.Y
	vec.Z *= other.Z
	return vec
}

// Dot returns the dot product of the two Vectors.
func (vec Vector) Dot(other Vector) float64 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Lerp linearly interpolates from the calling Vector towards other by percent (0 to 1).
func (vec Vector) Lerp(other Vector, percent float64) Vector {
	return vec.Add(other.Sub(vec).Scale(percent))
}

// Equals returns true if the two Vectors are within a tiny epsilon of each other.
func (vec Vector) Equals(other Vector) bool {
	eps := 1e-8
	return math.Abs(vec.X-other.X) <= eps && math.Abs(vec.Y-other.Y) <= eps && math.Abs(vec.Z-other.Z) <= eps
}

// IsZero returns true if the Vector is extremely close to zero length.
func (vec Vector) IsZero() bool {
	return vec.Equals(Vector{})
}

func (vec Vector) String() string {
	return fmt.Sprintf("{%.2f, %.2f, %.2f}", vec.X, vec.Y, vec.Z)
}
