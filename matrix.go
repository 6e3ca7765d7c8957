package stage3d

import (
	"fmt"
	"math"
	"strconv"
)

// Matrix4 represents a 4x4 matrix for translation, scale, and rotation. A Matrix4 in stage3d is row-major and is applied to row vectors:
// the X axis of a rotation is matrix[0], and the translation lives in matrix[3]. Transforms therefore compose left-to-right
// (scale.Mult(rotation).Mult(translation).Mult(parent)).
type Matrix4 [4][4]float64

// NewMatrix4 returns a new identity Matrix4.
func NewMatrix4() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// NewMatrix4Translate returns a new identity Matrix4, but with the x, y, and z translation components set as provided.
func NewMatrix4Translate(x, y, z float64) Matrix4 {
	mat := NewMatrix4()
	mat[3][0] = x
	mat[3][1] = y
	mat[3][2] = z
	return mat
}

// NewMatrix4Scale returns a new identity Matrix4, but with the scale components set as provided. 1, 1, 1 is the default.
func NewMatrix4Scale(x, y, z float64) Matrix4 {
	mat := NewMatrix4()
	mat[0][0] = x
	mat[1][1] = y
	mat[2][2] = z
	return mat
}

// NewMatrix4Rotate returns a new Matrix4 designed to rotate by the angle given (in radians) along the axis given [x, y, z].
// This rotation works as though you pierced the object through by the axis, and then rotated it counter-clockwise by the angle.
func NewMatrix4Rotate(x, y, z, angle float64) Matrix4 {

	// Spin on +Y if there is no valid axis
	if x == 0 && y == 0 && z == 0 {
		y = 1
	}

	mat := NewMatrix4()
	axis := NewVector(x, y, z).Unit()
	s := math.Sin(angle)
	c := math.Cos(angle)
	m := 1 - c

	mat[0][0] = m*axis.X*axis.X + c
	mat[0][1] = m*axis.X*axis.Y + axis.Z*s
	mat[0][2] = m*axis.Z*axis.X - axis.Y*s

	mat[1][0] = m*axis.X*axis.Y - axis.Z*s
	mat[1][1] = m*axis.Y*axis.Y + c
	mat[1][2] = m*axis.Y*axis.Z + axis.X*s

	mat[2][0] = m*axis.Z*axis.X + axis.Y*s
	mat[2][1] = m*axis.Y*axis.Z - axis.X*s
	mat[2][2] = m*axis.Z*axis.Z + c

	return mat

}

// NewLookAtMatrix returns a rotation Matrix4 whose -Z axis points from the from position towards the to position, keeping
// up (usually +Y) as the upward reference. This is how Cameras are aimed, as they look down -Z.
func NewLookAtMatrix(from, to, up Vector) Matrix4 {

	if from.Equals(to) {
		return NewMatrix4()
	}

	z := from.Sub(to).Unit()
	up = up.Unit()

	// Looking straight along up leaves no horizon to build X from
	if z.Equals(up) || z.Equals(up.Invert()) {
		if !up.Equals(WorldRight) {
			up = WorldRight
		} else {
			up = WorldBackward
		}
	}

	x := up.Cross(z).Unit()
	y := z.Cross(x)

	return Matrix4{
		{x.X, x.Y, x.Z, 0},
		{y.X, y.Y, y.Z, 0},
		{z.X, z.Y, z.Z, 0},
		{0, 0, 0, 1},
	}

}

// NewProjectionPerspective generates a perspective frustum Matrix4 for row vectors. fovy is the vertical field of view in degrees,
// near and far are the clipping planes, and viewWidth / viewHeight give the aspect ratio.
func NewProjectionPerspective(fovy, near, far, viewWidth, viewHeight float64) Matrix4 {

	aspect := viewWidth / viewHeight
	f := 1 / math.Tan(fovy*math.Pi/360)

	return Matrix4{
		{f / aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, (far + near) / (near - far), -1},
		{0, 0, (2 * far * near) / (near - far), 0},
	}

}

// Mult multiplies a Matrix4 by another provided Matrix4 - this effectively combines them.
func (matrix Matrix4) Mult(other Matrix4) Matrix4 {
	var newMat Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			newMat[row][col] = matrix[row][0]*other[0][col] +
				matrix[row][1]*other[1][col] +
				matrix[row][2]*other[2][col] +
				matrix[row][3]*other[3][col]
		}
	}
	return newMat
}

// MultVec transforms the point provided by the Matrix4 (rotating, scaling, and translating it).
func (matrix Matrix4) MultVec(vect Vector) Vector {
	return Vector{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z + matrix[3][0],
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z + matrix[3][1],
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z + matrix[3][2],
	}
}

// MultVecW transforms the point provided (treated as having a W of 1), keeping the resulting W component; used for projection.
func (matrix Matrix4) MultVecW(vect Vector) Vector {
	return Vector{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z + matrix[3][0],
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z + matrix[3][1],
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z + matrix[3][2],
		W: matrix[0][3]*vect.X + matrix[1][3]*vect.Y + matrix[2][3]*vect.Z + matrix[3][3],
	}
}

// Transposed returns a transposed copy of the Matrix4. For a pure rotation, this is its inverse.
func (matrix Matrix4) Transposed() Matrix4 {
	var newMat Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			newMat[col][row] = matrix[row][col]
		}
	}
	return newMat
}

// Row returns the given row of the Matrix4 as a Vector (including W).
func (matrix Matrix4) Row(rowIndex int) Vector {
	r := matrix[rowIndex]
	return Vector{r[0], r[1], r[2], r[3]}
}

// SetRow sets the given row of the Matrix4 to the Vector provided (including W).
func (matrix *Matrix4) SetRow(rowIndex int, vec Vector) {
	matrix[rowIndex] = [4]float64{vec.X, vec.Y, vec.Z, vec.W}
}

// SetColumn sets the given column of the Matrix4 to the Vector provided (including W).
func (matrix *Matrix4) SetColumn(columnIndex int, vec Vector) {
	matrix[0][columnIndex] = vec.X
	matrix[1][columnIndex] = vec.Y
	matrix[2][columnIndex] = vec.Z
	matrix[3][columnIndex] = vec.W
}

// Right returns the X axis of the Matrix4's rotation.
func (matrix Matrix4) Right() Vector {
	return NewVector(matrix[0][0], matrix[0][1], matrix[0][2]).Unit()
}

// Up returns the Y axis of the Matrix4's rotation.
func (matrix Matrix4) Up() Vector {
	return NewVector(matrix[1][0], matrix[1][1], matrix[1][2]).Unit()
}

// Forward returns the Z axis of the Matrix4's rotation. Cameras look down the inverse of this vector.
func (matrix Matrix4) Forward() Vector {
	return NewVector(matrix[2][0], matrix[2][1], matrix[2][2]).Unit()
}

// Decompose splits the Matrix4 into its position, scale and rotation components.
func (matrix Matrix4) Decompose() (Vector, Vector, Matrix4) {

	position := NewVector(matrix[3][0], matrix[3][1], matrix[3][2])

	rotation := NewMatrix4()
	scale := NewVector(1, 1, 1)

	for i := 0; i < 3; i++ {
		axis := NewVector(matrix[i][0], matrix[i][1], matrix[i][2])
		length := axis.Magnitude()
		switch i {
		case 0:
			scale.X = length
		case 1:
			scale.Y = length
		case 2:
			scale.Z = length
		}
		if length > 0 {
			axis = axis.Scale(1 / length)
		}
		rotation[i][0], rotation[i][1], rotation[i][2] = axis.X, axis.Y, axis.Z
	}

	return position, scale, rotation

}

// ToQuaternion returns the Quaternion equivalent of the Matrix4's rotation (assuming it is purely rotational).
func (matrix Matrix4) ToQuaternion() Quaternion {

	m := matrix
	trace := m[0][0] + m[1][1] + m[2][2]

	var q Quaternion

	if trace > 0 {
		s := 0.5 / math.Sqrt(trace+1)
		q.W = 0.25 / s
		q.X = (m[1][2] - m[2][1]) * s
		q.Y = (m[2][0] - m[0][2]) * s
		q.Z = (m[0][1] - m[1][0]) * s
	} else if m[0][0] > m[1][1] && m[0][0] > m[2][2] {
		s := 2 * math.Sqrt(1+m[0][0]-m[1][1]-m[2][2])
		q.W = (m[1][2] - m[2][1]) / s
		q.X = 0.25 * s
		q.Y = (m[1][0] + m[0][1]) / s
		q.Z = (m[2][0] + m[0][2]) / s
	} else if m[1][1] > m[2][2] {
		s := 2 * math.Sqrt(1+m[1][1]-m[0][0]-m[2][2])
		q.W = (m[2][0] - m[0][2]) / s
		q.X = (m[1][0] + m[0][1]) / s
		q.Y = 0.25 * s
		q.Z = (m[2][1] + m[1][2]) / s
	} else {
		s := 2 * math.Sqrt(1+m[2][2]-m[0][0]-m[1][1])
		q.W = (m[0][1] - m[1][0]) / s
		q.X = (m[2][0] + m[0][2]) / s
		q.Y = (m[2][1] + m[1][2]) / s
		q.Z = 0.25 * s
	}

	return q.Normalized()

}

// Equals returns true if the two matrices are equal within a small epsilon.
func (matrix Matrix4) Equals(other Matrix4) bool {
	eps := 1e-6
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if math.Abs(matrix[row][col]-other[row][col]) > eps {
				return false
			}
		}
	}
	return true
}

// IsIdentity returns true if the Matrix4 is an identity matrix.
func (matrix Matrix4) IsIdentity() bool {
	return matrix.Equals(NewMatrix4())
}

func (matrix Matrix4) String() string {
	s := "{"
	for i, row := range matrix {
		for j, value := range row {
			s += strconv.FormatFloat(value, 'f', 2, 64)
			if j < 3 {
				s += ", "
			}
		}
		if i < 3 {
			s += "\n "
		}
	}
	return s + "}"
}

// Inverted returns the inverse of an affine (scale, rotation, translation) Matrix4.
func (matrix Matrix4) Inverted() Matrix4 {

	position, scale, rotation := matrix.Decompose()

	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		panic(fmt.Sprintf("stage3d: cannot invert matrix with zero scale %s", scale))
	}

	inv := NewMatrix4Translate(-position.X, -position.Y, -position.Z)
	inv = inv.Mult(rotation.Transposed())
	inv = inv.Mult(NewMatrix4Scale(1/scale.X, 1/scale.Y, 1/scale.Z))
	return inv

}
