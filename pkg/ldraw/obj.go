// Package ldraw implements the LDraw text object model: typed graphic
// objects parsed from the line-oriented format, a meta-command grammar,
// canonical serialization, object filters and set algebra, and the Step /
// Model / ModelTable containers consumed by the unwrap engine.
package ldraw

import (
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/brickforge/brickstep/pkg/geom"
)

// Filename suffixes that classify a placement. A placement naming a .dat
// file is a physical part; .ldr and .mpd name sub-models. A placement is
// one or the other, never both.
const (
	PartExt  = ".dat"
	ModelExt = ".ldr"
	MPDExt   = ".mpd"
)

// StripExt removes a recognized part or model extension from name.
func StripExt(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range []string{PartExt, ModelExt, MPDExt} {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// Object is the closed variant set of LDraw graphic objects: *Comment,
// *Meta, *Line, *Triangle, *Quad and *Part. All variants are immutable by
// convention; transforming operations return new objects.
//
// Path and Tags are assigned during unwrapping: Path identifies the
// hierarchy instance an object belongs to and Tags carries the sticky
// annotation tags active when it was emitted.
type Object interface {
	// Colour returns the object's colour. Comments and metas report the
	// default colour.
	Colour() Colour
	// Path returns the hierarchy instance path assigned during unwrap,
	// or "" before unwrapping.
	Path() string
	// Tags returns the annotation tags stamped on the object.
	Tags() []string
	// String returns the canonical serialized line for the object.
	String() string
	// Hash returns the SHA-1 of the canonical form, computed on first use.
	// Placements include their path so identical parts at different
	// hierarchy instances hash apart.
	Hash() string
	// Points returns the geometry points of the object (empty for
	// comments and metas).
	Points() []geom.Vector
	// Transformed returns the object with every point p replaced by
	// m*p + offset. A placement's own matrix becomes m*old so nested
	// rotations compose.
	Transformed(m geom.Matrix, offset geom.Vector) Object
	// Translated returns the object shifted by offset.
	Translated(offset geom.Vector) Object
	// RotatedBy returns the object rotated by the Euler angles (degrees),
	// used to apply a view aspect to world-placed geometry.
	RotatedBy(euler geom.Vector) Object
	// WithColour, WithPath and WithTags return copies with the given
	// attribute replaced.
	WithColour(c Colour) Object
	WithPath(path string) Object
	WithTags(tags []string) Object

	sealed()
}

// attrs carries the fields shared by every variant. The hash memo is safe
// without locking: unwrapping is a deterministic single-threaded pass and
// objects are never mutated after construction.
type attrs struct {
	colour Colour
	path   string
	tags   []string
	hash   string
}

func (a *attrs) Colour() Colour { return a.colour }
func (a *attrs) Path() string   { return a.path }
func (a *attrs) Tags() []string { return a.tags }

func (a *attrs) cleared() attrs {
	out := *a
	out.hash = ""
	return out
}

func hashOf(parts ...string) string {
	h := sha1.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Comment is a type-0 line that does not match any meta-command keyword.
type Comment struct {
	attrs
	Text string
}

// NewComment builds a comment object.
func NewComment(text string) *Comment {
	return &Comment{attrs: attrs{colour: Default()}, Text: text}
}

func (c *Comment) String() string {
	if c.Text == "" {
		return "0"
	}
	return "0 " + c.Text
}

func (c *Comment) Hash() string {
	if c.hash == "" {
		c.hash = hashOf(c.String())
	}
	return c.hash
}

func (c *Comment) Points() []geom.Vector { return nil }

func (c *Comment) Transformed(m geom.Matrix, offset geom.Vector) Object { return c }
func (c *Comment) Translated(offset geom.Vector) Object                { return c }
func (c *Comment) RotatedBy(euler geom.Vector) Object                  { return c }

func (c *Comment) WithColour(col Colour) Object { return c }

func (c *Comment) WithPath(path string) Object {
	out := *c
	out.attrs = c.cleared()
	out.path = path
	return &out
}

func (c *Comment) WithTags(tags []string) Object {
	out := *c
	out.attrs = c.cleared()
	out.tags = tags
	return &out
}

func (c *Comment) sealed() {}

// Meta is a type-0 line whose text matches a recognized command keyword.
// Params holds the parameter table parsed against the command grammar;
// unknown "!"-prefixed commands carry an empty table.
type Meta struct {
	attrs
	Command string
	Raw     string
	Params  Params
}

// NewMeta parses raw parameter text for command against the default grammar.
func NewMeta(command, raw string) *Meta {
	return &Meta{
		attrs:   attrs{colour: Default()},
		Command: command,
		Raw:     raw,
		Params:  DefaultGrammar().ParseParams(command, raw),
	}
}

func (m *Meta) String() string {
	if m.Raw == "" {
		return "0 " + m.Command
	}
	return "0 " + m.Command + " " + m.Raw
}

func (m *Meta) Hash() string {
	if m.hash == "" {
		m.hash = hashOf(m.String())
	}
	return m.hash
}

func (m *Meta) Points() []geom.Vector { return nil }

func (m *Meta) Transformed(mat geom.Matrix, offset geom.Vector) Object { return m }
func (m *Meta) Translated(offset geom.Vector) Object                  { return m }
func (m *Meta) RotatedBy(euler geom.Vector) Object                    { return m }

func (m *Meta) WithColour(col Colour) Object { return m }

func (m *Meta) WithPath(path string) Object {
	out := *m
	out.attrs = m.cleared()
	out.path = path
	return &out
}

func (m *Meta) WithTags(tags []string) Object {
	out := *m
	out.attrs = m.cleared()
	out.tags = tags
	return &out
}

func (m *Meta) sealed() {}

// Line is a type-2 edge primitive.
type Line struct {
	attrs
	P1, P2 geom.Vector
}

// NewLine builds a line primitive.
func NewLine(colour Colour, p1, p2 geom.Vector) *Line {
	return &Line{attrs: attrs{colour: colour}, P1: p1, P2: p2}
}

func (l *Line) String() string {
	return fmt.Sprintf("2 %d %s %s", l.colour.Code, FormatVector(l.P1), FormatVector(l.P2))
}

func (l *Line) Hash() string {
	if l.hash == "" {
		l.hash = hashOf(l.String())
	}
	return l.hash
}

func (l *Line) Points() []geom.Vector { return []geom.Vector{l.P1, l.P2} }

func (l *Line) Transformed(m geom.Matrix, offset geom.Vector) Object {
	out := *l
	out.attrs = l.cleared()
	out.P1 = m.Apply(l.P1).Add(offset)
	out.P2 = m.Apply(l.P2).Add(offset)
	return &out
}

func (l *Line) Translated(offset geom.Vector) Object {
	return l.Transformed(geom.Identity(), offset)
}

func (l *Line) RotatedBy(euler geom.Vector) Object {
	return l.Transformed(geom.EulerToRotation(euler), geom.Vector{})
}

func (l *Line) WithColour(col Colour) Object {
	out := *l
	out.attrs = l.cleared()
	out.colour = col
	return &out
}

func (l *Line) WithPath(path string) Object {
	out := *l
	out.attrs = l.cleared()
	out.path = path
	return &out
}

func (l *Line) WithTags(tags []string) Object {
	out := *l
	out.attrs = l.cleared()
	out.tags = tags
	return &out
}

func (l *Line) sealed() {}

// Triangle is a type-3 filled primitive.
type Triangle struct {
	attrs
	P1, P2, P3 geom.Vector
}

// NewTriangle builds a triangle primitive.
func NewTriangle(colour Colour, p1, p2, p3 geom.Vector) *Triangle {
	return &Triangle{attrs: attrs{colour: colour}, P1: p1, P2: p2, P3: p3}
}

func (t *Triangle) String() string {
	return fmt.Sprintf("3 %d %s %s %s",
		t.colour.Code, FormatVector(t.P1), FormatVector(t.P2), FormatVector(t.P3))
}

func (t *Triangle) Hash() string {
	if t.hash == "" {
		t.hash = hashOf(t.String())
	}
	return t.hash
}

func (t *Triangle) Points() []geom.Vector { return []geom.Vector{t.P1, t.P2, t.P3} }

func (t *Triangle) Transformed(m geom.Matrix, offset geom.Vector) Object {
	out := *t
	out.attrs = t.cleared()
	out.P1 = m.Apply(t.P1).Add(offset)
	out.P2 = m.Apply(t.P2).Add(offset)
	out.P3 = m.Apply(t.P3).Add(offset)
	return &out
}

func (t *Triangle) Translated(offset geom.Vector) Object {
	return t.Transformed(geom.Identity(), offset)
}

func (t *Triangle) RotatedBy(euler geom.Vector) Object {
	return t.Transformed(geom.EulerToRotation(euler), geom.Vector{})
}

func (t *Triangle) WithColour(col Colour) Object {
	out := *t
	out.attrs = t.cleared()
	out.colour = col
	return &out
}

func (t *Triangle) WithPath(path string) Object {
	out := *t
	out.attrs = t.cleared()
	out.path = path
	return &out
}

func (t *Triangle) WithTags(tags []string) Object {
	out := *t
	out.attrs = t.cleared()
	out.tags = tags
	return &out
}

func (t *Triangle) sealed() {}

// Quad is a type-4 filled primitive.
type Quad struct {
	attrs
	P1, P2, P3, P4 geom.Vector
}

// NewQuad builds a quad primitive.
func NewQuad(colour Colour, p1, p2, p3, p4 geom.Vector) *Quad {
	return &Quad{attrs: attrs{colour: colour}, P1: p1, P2: p2, P3: p3, P4: p4}
}

// QuadFromSize builds an axis-aligned quad centred at the origin spanning
// length l and width w.
func QuadFromSize(colour Colour, l, w geom.Vector) *Quad {
	hl, hw := l.Scale(0.5), w.Scale(0.5)
	return NewQuad(colour,
		hl.Neg().Add(hw.Neg()),
		hl.Neg().Add(hw),
		hl.Add(hw),
		hl.Add(hw.Neg()),
	)
}

func (q *Quad) String() string {
	return fmt.Sprintf("4 %d %s %s %s %s",
		q.colour.Code, FormatVector(q.P1), FormatVector(q.P2), FormatVector(q.P3), FormatVector(q.P4))
}

func (q *Quad) Hash() string {
	if q.hash == "" {
		q.hash = hashOf(q.String())
	}
	return q.hash
}

func (q *Quad) Points() []geom.Vector { return []geom.Vector{q.P1, q.P2, q.P3, q.P4} }

func (q *Quad) Transformed(m geom.Matrix, offset geom.Vector) Object {
	out := *q
	out.attrs = q.cleared()
	out.P1 = m.Apply(q.P1).Add(offset)
	out.P2 = m.Apply(q.P2).Add(offset)
	out.P3 = m.Apply(q.P3).Add(offset)
	out.P4 = m.Apply(q.P4).Add(offset)
	return &out
}

func (q *Quad) Translated(offset geom.Vector) Object {
	return q.Transformed(geom.Identity(), offset)
}

func (q *Quad) RotatedBy(euler geom.Vector) Object {
	return q.Transformed(geom.EulerToRotation(euler), geom.Vector{})
}

func (q *Quad) WithColour(col Colour) Object {
	out := *q
	out.attrs = q.cleared()
	out.colour = col
	return &out
}

func (q *Quad) WithPath(path string) Object {
	out := *q
	out.attrs = q.cleared()
	out.path = path
	return &out
}

func (q *Quad) WithTags(tags []string) Object {
	out := *q
	out.attrs = q.cleared()
	out.tags = tags
	return &out
}

func (q *Quad) sealed() {}

// Part is a type-1 placement of a named part or sub-model at a position and
// orientation.
type Part struct {
	attrs
	Name   string
	Pos    geom.Vector
	Matrix geom.Matrix
}

// NewPart builds a placement.
func NewPart(colour Colour, name string, pos geom.Vector, m geom.Matrix) *Part {
	return &Part{attrs: attrs{colour: colour}, Name: name, Pos: pos, Matrix: m}
}

// IsPart reports whether the placement names a physical part (.dat).
func (p *Part) IsPart() bool {
	return strings.HasSuffix(strings.ToLower(p.Name), PartExt)
}

// IsModel reports whether the placement references a sub-model (.ldr/.mpd).
func (p *Part) IsModel() bool {
	n := strings.ToLower(p.Name)
	return strings.HasSuffix(n, ModelExt) || strings.HasSuffix(n, MPDExt)
}

// Key returns the part quantity key, "name-colourcode", with the filename
// extension stripped from the name.
func (p *Part) Key() string {
	return fmt.Sprintf("%s-%d", StripExt(p.Name), p.colour.Code)
}

func (p *Part) String() string {
	return fmt.Sprintf("1 %d %s %s %s",
		p.colour.Code, FormatVector(p.Pos), FormatMatrix(p.Matrix), p.Name)
}

func (p *Part) Hash() string {
	if p.hash == "" {
		// Two textually identical placements at different hierarchy
		// instances must hash apart.
		p.hash = hashOf(p.String(), p.path)
	}
	return p.hash
}

func (p *Part) Points() []geom.Vector { return []geom.Vector{p.Pos} }

func (p *Part) Transformed(m geom.Matrix, offset geom.Vector) Object {
	out := *p
	out.attrs = p.cleared()
	out.Pos = m.Apply(p.Pos).Add(offset)
	out.Matrix = m.Mul(p.Matrix)
	return &out
}

func (p *Part) Translated(offset geom.Vector) Object {
	out := *p
	out.attrs = p.cleared()
	out.Pos = p.Pos.Add(offset)
	return &out
}

func (p *Part) RotatedBy(euler geom.Vector) Object {
	return p.Transformed(geom.EulerToRotation(euler), geom.Vector{})
}

// Equal reports placement equality: name, colour code, position and matrix
// all match, geometry within tolerance.
func (p *Part) Equal(o *Part) bool {
	return p.Name == o.Name &&
		p.colour.Code == o.colour.Code &&
		p.Pos.AlmostEqual(o.Pos) &&
		p.Matrix.AlmostEqual(o.Matrix)
}

func (p *Part) WithColour(col Colour) Object {
	out := *p
	out.attrs = p.cleared()
	out.colour = col
	return &out
}

func (p *Part) WithPath(path string) Object {
	out := *p
	out.attrs = p.cleared()
	out.path = path
	return &out
}

func (p *Part) WithTags(tags []string) Object {
	out := *p
	out.attrs = p.cleared()
	out.tags = tags
	return &out
}

// WithName returns the placement renamed.
func (p *Part) WithName(name string) *Part {
	out := *p
	out.attrs = p.cleared()
	out.Name = name
	return &out
}

// MovedTo returns the placement repositioned at pos.
func (p *Part) MovedTo(pos geom.Vector) *Part {
	out := *p
	out.attrs = p.cleared()
	out.Pos = pos
	return &out
}

func (p *Part) sealed() {}
