package geom

import "math"

// Axis selects one of the three coordinate axes for Rotation.
type Axis int

// Axes for Rotation.
const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// Matrix is a 3x3 transformation matrix stored row-major. Rotations are
// orthonormal; placement matrices parsed from LDraw files may be general
// (they can encode mirroring or scaling).
//
// Composition order follows world = parent * local: A.Mul(B) applies B
// first, then A.
type Matrix struct {
	Rows [3][3]float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{Rows: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// NewMatrix builds a matrix from nine row-major values.
func NewMatrix(v [9]float64) Matrix {
	return Matrix{Rows: [3][3]float64{
		{v[0], v[1], v[2]},
		{v[3], v[4], v[5]},
		{v[6], v[7], v[8]},
	}}
}

// Values returns the nine matrix values in row-major order.
func (m Matrix) Values() [9]float64 {
	r := m.Rows
	return [9]float64{
		r[0][0], r[0][1], r[0][2],
		r[1][0], r[1][1], r[1][2],
		r[2][0], r[2][1], r[2][2],
	}
}

// Mul returns m * o.
func (m Matrix) Mul(o Matrix) Matrix {
	var out Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Rows[i][j] = m.Rows[i][0]*o.Rows[0][j] +
				m.Rows[i][1]*o.Rows[1][j] +
				m.Rows[i][2]*o.Rows[2][j]
		}
	}
	return out
}

// Apply returns m * v, treating v as a column vector.
func (m Matrix) Apply(v Vector) Vector {
	r := m.Rows
	return Vector{
		r[0][0]*v.X + r[0][1]*v.Y + r[0][2]*v.Z,
		r[1][0]*v.X + r[1][1]*v.Y + r[1][2]*v.Z,
		r[2][0]*v.X + r[2][1]*v.Y + r[2][2]*v.Z,
	}
}

// Transpose returns the transpose of m. For orthonormal rotation matrices
// this is the inverse, used to undo a rotation when lifting it off a placed
// object.
func (m Matrix) Transpose() Matrix {
	r := m.Rows
	return Matrix{Rows: [3][3]float64{
		{r[0][0], r[1][0], r[2][0]},
		{r[0][1], r[1][1], r[2][1]},
		{r[0][2], r[1][2], r[2][2]},
	}}
}

// Det returns the determinant of m.
func (m Matrix) Det() float64 {
	r := m.Rows
	return r[0][0]*(r[1][1]*r[2][2]-r[1][2]*r[2][1]) +
		r[0][1]*(r[1][2]*r[2][0]-r[1][0]*r[2][2]) +
		r[0][2]*(r[1][0]*r[2][1]-r[1][1]*r[2][0])
}

// AlmostEqual reports whether every entry of m is within Tolerance of o.
func (m Matrix) AlmostEqual(o Matrix) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m.Rows[i][j]-o.Rows[i][j]) > Tolerance {
				return false
			}
		}
	}
	return true
}

// Rotation returns the standard right-hand rotation matrix for angle degrees
// about the given axis.
func Rotation(angle float64, axis Axis) Matrix {
	c := math.Cos(angle / 180.0 * math.Pi)
	s := math.Sin(angle / 180.0 * math.Pi)
	switch axis {
	case XAxis:
		return Matrix{Rows: [3][3]float64{{1, 0, 0}, {0, c, -s}, {0, s, c}}}
	case YAxis:
		return Matrix{Rows: [3][3]float64{{c, 0, -s}, {0, 1, 0}, {s, 0, c}}}
	default:
		return Matrix{Rows: [3][3]float64{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}}
	}
}

// EulerToRotation converts Euler rotation angles (degrees) into a rotation
// matrix by composing Z * Y * X and transposing the result. The transpose
// matches the LDraw convention that stored per-object matrices carry the
// inverse (view-correction) transform applied when serializing.
func EulerToRotation(euler Vector) Matrix {
	ax := Rotation(euler.X, XAxis)
	ay := Rotation(euler.Y, YAxis)
	az := Rotation(euler.Z, ZAxis)
	return az.Mul(ay).Mul(ax).Transpose()
}
