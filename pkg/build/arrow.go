package build

import (
	"strconv"

	"github.com/brickforge/brickstep/pkg/geom"
	"github.com/brickforge/brickstep/pkg/ldraw"
)

// ArrowPath is the hierarchy path stamped on generated arrow geometry so
// downstream filters can address it.
const ArrowPath = "arrow"

// Arrow synthesizes annotation arrows out of LDraw drawing primitives: two
// tip triangles, a tail quad and optionally a border outline.
type Arrow struct {
	Colour       ldraw.Colour
	BorderColour *ldraw.Colour
	TipPos       geom.Vector
	TailPos      geom.Vector
	TipLength    float64
	TipWidth     float64
	TailWidth    float64
	TipTaper     float64
	// Tilt rotates the arrow about its own direction, in degrees.
	Tilt float64
	// FixedLength overrides the tip-to-tail distance when positive.
	FixedLength float64
	// Ratio shifts the rendered arrow along its direction by a fraction
	// of its length when positive.
	Ratio float64
}

// NewArrow returns an arrow with the default proportions and colour.
func NewArrow() *Arrow {
	return &Arrow{
		Colour:    ldraw.ColourFromCode(ldraw.ArrowRedColour),
		TipLength: 16,
		TipWidth:  10,
		TailWidth: 4,
		TipTaper:  3,
	}
}

// Length returns the arrow length from tip to tail.
func (a *Arrow) Length() float64 {
	if a.FixedLength > 0 {
		return a.FixedLength
	}
	return a.TipPos.Sub(a.TailPos).Abs()
}

// Direction returns the unit direction from tail to tip.
func (a *Arrow) Direction() geom.Vector {
	return a.TailPos.Sub(a.TipPos).Norm()
}

// Normal returns a default normal vector orthogonal to the arrow direction.
func (a *Arrow) Normal() geom.Vector {
	d := a.Direction().Scale(90)
	m := geom.V(d.Z, d.X, d.Y)
	r := geom.EulerToRotation(m).Transpose().Apply(a.Direction())
	return r.Cross(a.Direction())
}

// Objs returns the drawing primitives that render this arrow.
func (a *Arrow) Objs() []ldraw.Object {
	dir := a.Direction()
	n := a.Normal()
	tw2 := a.TipWidth / 2
	p2l := dir.Scale(a.TipLength).Sub(n.Scale(tw2))
	p2r := dir.Scale(a.TipLength).Add(n.Scale(tw2))
	p3 := dir.Scale(a.TipLength - a.TipTaper)

	leftTip := ldraw.NewTriangle(a.Colour, a.TipPos, p2l.Add(a.TipPos), p3.Add(a.TipPos))
	rightTip := ldraw.NewTriangle(a.Colour, a.TipPos, p2r.Add(a.TipPos), p3.Add(a.TipPos))

	tl := a.Length() - a.TipLength + a.TipTaper
	tail := ldraw.QuadFromSize(a.Colour, dir.Scale(tl), n.Scale(a.TailWidth))
	ts := tl/2 + a.TipLength - a.TipTaper
	tailObj := tail.Translated(dir.Scale(ts)).Translated(a.TipPos)

	objs := []ldraw.Object{leftTip, rightTip, tailObj}

	if a.BorderColour != nil {
		bc := *a.BorderColour
		tq := tailObj.(*ldraw.Quad)
		taper := a.TipTaper / tw2
		tw := tw2 - a.TailWidth/2
		ptw := dir.Scale(a.TipLength - taper*tw)
		pt2l := ptw.Sub(n.Scale(a.TailWidth / 2)).Add(a.TipPos)
		pt2r := ptw.Add(n.Scale(a.TailWidth / 2)).Add(a.TipPos)
		objs = append(objs,
			ldraw.NewLine(bc, a.TipPos, leftTip.P2),
			ldraw.NewLine(bc, a.TipPos, rightTip.P2),
			ldraw.NewLine(bc, leftTip.P2, pt2l),
			ldraw.NewLine(bc, rightTip.P2, pt2r),
			ldraw.NewLine(bc, pt2l, tq.P2),
			ldraw.NewLine(bc, pt2r, tq.P3),
			ldraw.NewLine(bc, tq.P2, tq.P3),
		)
	}

	if a.Ratio > 0 {
		offset := dir.Scale(a.Ratio * a.Length())
		for i, o := range objs {
			objs[i] = o.Translated(offset)
		}
	}

	if a.Tilt != 0 {
		angle := dir.Scale(a.Tilt)
		for i, o := range objs {
			o = o.Translated(a.TipPos.Neg())
			o = o.RotatedBy(angle)
			objs[i] = o.Translated(a.TipPos)
		}
	}

	return objs
}

// ArrowOffsets returns the displacement vectors declared by a
// "!PY ARROW BEGIN x y z [x y z ...]" meta: the three named slots followed
// by any surplus coordinate triples.
func ArrowOffsets(m *ldraw.Meta) []geom.Vector {
	x, _ := m.Params.Float("x")
	y, _ := m.Params.Float("y")
	z, _ := m.Params.Float("z")
	offsets := []geom.Vector{geom.V(x, y, z)}
	var vals []float64
	for _, e := range m.Params.Extra {
		if v, ok := parseFloat(e); ok {
			vals = append(vals, v)
		}
	}
	for i := 0; i+2 < len(vals); i += 3 {
		offsets = append(offsets, geom.V(vals[i], vals[i+1], vals[i+2]))
	}
	return offsets
}

// MeanArrowOffset collapses an offset list to one displacement: axes on
// which the offsets disagree contribute zero, axes on which they agree
// contribute the shared value.
func MeanArrowOffset(m *ldraw.Meta) geom.Vector {
	offsets := ArrowOffsets(m)
	var mean geom.Vector
	for axis := 0; axis < 3; axis++ {
		v, same := component(offsets[0], axis), true
		for _, o := range offsets[1:] {
			if component(o, axis) != v {
				same = false
				break
			}
		}
		if same {
			setComponent(&mean, axis, v)
		}
	}
	return mean
}

// ArrowsFromMeta builds the arrow primitives for every offset in the meta,
// tails anchored at origin (typically the bound-box centre of the shifted
// parts). Each generated object carries the "arrow" path.
func ArrowsFromMeta(m *ldraw.Meta, origin geom.Vector) []ldraw.Object {
	offsets := ArrowOffsets(m)

	// Axes on which the offsets differ spread the arrows out instead of
	// displacing them.
	var varies [3]bool
	for axis := 0; axis < 3; axis++ {
		v := component(offsets[0], axis)
		for _, o := range offsets[1:] {
			if component(o, axis) != v {
				varies[axis] = true
				break
			}
		}
	}

	var objs []ldraw.Object
	for _, o := range offsets {
		a := NewArrow()
		if c, ok := m.Params.Int("colour"); ok {
			a.Colour = ldraw.ColourFromCode(c)
		}
		if t, ok := m.Params.Float("tilt"); ok {
			a.Tilt = t
		}
		if l, ok := m.Params.Float("length"); ok {
			a.FixedLength = l
		}
		a.TailPos = origin
		for axis := 0; axis < 3; axis++ {
			if varies[axis] {
				setComponent(&a.TailPos, axis, component(a.TailPos, axis)-component(o, axis))
			}
		}
		a.TipPos = a.TailPos
		for axis := 0; axis < 3; axis++ {
			if !varies[axis] {
				setComponent(&a.TipPos, axis, component(a.TailPos, axis)-component(o, axis))
			}
		}
		for _, obj := range a.Objs() {
			objs = append(objs, obj.WithPath(ArrowPath))
		}
	}
	return objs
}

func component(v geom.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

func setComponent(v *geom.Vector, axis int, val float64) {
	switch axis {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
