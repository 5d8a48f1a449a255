package geom

import (
	"math"
	"testing"
)

func TestVectorOps(t *testing.T) {
	a := V(1, 2, 3)
	b := V(4, 5, 6)

	if got := a.Add(b); got != V(5, 7, 9) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V(-3, -3, -3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != V(2, 4, 6) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v", got)
	}
	if got := a.Cross(b); got != V(-3, 6, -3) {
		t.Errorf("Cross = %v", got)
	}
	if got := V(3, 4, 0).Abs(); got != 5 {
		t.Errorf("Abs = %v", got)
	}
	if got := V(0, 0, 7).Norm(); got != V(0, 0, 1) {
		t.Errorf("Norm = %v", got)
	}
	// Normalizing the zero vector must not divide by zero.
	if got := (Vector{}).Norm(); got != (Vector{}) {
		t.Errorf("Norm(zero) = %v", got)
	}
}

func TestVectorAlmostEqual(t *testing.T) {
	a := V(1, 2, 3)
	if !a.AlmostEqual(V(1.0005, 2, 3)) {
		t.Error("within tolerance should compare equal")
	}
	if a.AlmostEqual(V(1.002, 2, 3)) {
		t.Error("outside tolerance should not compare equal")
	}
}

func TestDirString(t *testing.T) {
	cases := []struct {
		v    Vector
		want string
	}{
		{V(5, 0, 0), "+x"},
		{V(-2, 0, 0), "-x"},
		{V(0, 1, 0), "+y"},
		{V(0, -3, 0), "-y"},
		{V(0, 0, 0.5), "+z"},
		{V(0, 0, -9), "-z"},
		{V(1, 1, 0), ""},
	}
	for _, c := range cases {
		if got := c.v.DirString(); got != c.want {
			t.Errorf("DirString(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestMatrixMulIdentity(t *testing.T) {
	m := NewMatrix([9]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	if got := Identity().Mul(m); got != m {
		t.Errorf("I*m = %v", got)
	}
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m*I = %v", got)
	}
}

func TestMatrixApply(t *testing.T) {
	// 90 degree rotation about Z maps +x to +y.
	rz := Rotation(90, ZAxis)
	got := rz.Apply(V(1, 0, 0))
	if !got.AlmostEqual(V(0, 1, 0)) {
		t.Errorf("Rz(90)*x = %v", got)
	}
}

func TestMatrixTransposeDet(t *testing.T) {
	m := Rotation(30, YAxis)
	if d := m.Det(); math.Abs(d-1) > 1e-9 {
		t.Errorf("rotation determinant = %v", d)
	}
	// For a rotation, transpose is the inverse.
	if got := m.Mul(m.Transpose()); !got.AlmostEqual(Identity()) {
		t.Errorf("m * m^T = %v", got)
	}
}

func TestEulerToRotationRoundTrip(t *testing.T) {
	// Applying a rotation and then the rotation of the negated angles about
	// a single axis must return to the start.
	r := EulerToRotation(V(0, 90, 0))
	inv := EulerToRotation(V(0, -90, 0))
	p := V(10, 20, 30)
	got := inv.Apply(r.Apply(p))
	if !got.AlmostEqual(p) {
		t.Errorf("round trip = %v, want %v", got, p)
	}
}

func TestEulerToRotationConvention(t *testing.T) {
	// The stored convention is (Rz*Ry*Rx)^T.
	want := Rotation(30, ZAxis).Mul(Rotation(20, YAxis)).Mul(Rotation(10, XAxis)).Transpose()
	got := EulerToRotation(V(10, 20, 30))
	if !got.AlmostEqual(want) {
		t.Errorf("EulerToRotation = %v, want %v", got, want)
	}
}

func TestBoundBox(t *testing.T) {
	var b BoundBox
	if !b.IsEmpty() {
		t.Fatal("zero box should be empty")
	}

	b = b.UnionPts([]Vector{V(-1, 2, -3), V(4, -5, 6)})
	if b.IsEmpty() {
		t.Fatal("box should not be empty after union")
	}
	if b.Min != V(-1, -5, -3) || b.Max != V(4, 2, 6) {
		t.Errorf("bounds = %v %v", b.Min, b.Max)
	}
	if b.XLen() != 5 || b.YLen() != 7 || b.ZLen() != 9 {
		t.Errorf("lengths = %v %v %v", b.XLen(), b.YLen(), b.ZLen())
	}
	if got := b.Center(); !got.AlmostEqual(V(1.5, -1.5, 1.5)) {
		t.Errorf("center = %v", got)
	}
	if axis, dim := b.BiggestDim(); axis != "z" || dim != 9 {
		t.Errorf("biggest dim = %s %v", axis, dim)
	}

	shifted := b.Translated(V(10, 10, 10))
	if shifted.Min != V(9, 5, 7) {
		t.Errorf("translated min = %v", shifted.Min)
	}

	// Union with an empty box is a no-op.
	var empty BoundBox
	if got := b.UnionBox(empty); got != b {
		t.Errorf("union with empty changed box")
	}
}
