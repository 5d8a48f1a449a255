package ldraw

import (
	"strings"

	"github.com/brickforge/brickstep/pkg/geom"
)

// Filter selects a subset of an object sequence. All set predicates must
// hold for an object to pass (conjunction). The zero Filter passes
// everything.
type Filter struct {
	// Kind restricts to one variant when set.
	Kind Kind
	// MetaCommand restricts to metas with this command.
	MetaCommand string
	// ColourCode restricts to objects with this colour code (pointer so
	// code 0, black, remains expressible).
	ColourCode *int
	// PathContains restricts to objects whose path contains this text.
	PathContains string
	// PartsOnly restricts to placements naming physical parts.
	PartsOnly bool
	// PartKey restricts to placements with this "name-colour" key.
	PartKey string
	// Name restricts to placements with this name (case-insensitive).
	Name string
}

// Kind selects an object variant in a Filter.
type Kind int

// Filterable object kinds. KindAny matches every variant.
const (
	KindAny Kind = iota
	KindComment
	KindMeta
	KindLine
	KindTriangle
	KindQuad
	KindPart
)

func kindOf(o Object) Kind {
	switch o.(type) {
	case *Comment:
		return KindComment
	case *Meta:
		return KindMeta
	case *Line:
		return KindLine
	case *Triangle:
		return KindTriangle
	case *Quad:
		return KindQuad
	case *Part:
		return KindPart
	}
	return KindAny
}

func (f Filter) match(o Object) bool {
	if f.Kind != KindAny && kindOf(o) != f.Kind {
		return false
	}
	if f.MetaCommand != "" {
		m, ok := o.(*Meta)
		if !ok || !m.MatchesCommand(f.MetaCommand) {
			return false
		}
	}
	if f.ColourCode != nil && o.Colour().Code != *f.ColourCode {
		return false
	}
	if f.PathContains != "" && !strings.Contains(o.Path(), f.PathContains) {
		return false
	}
	p, isPart := o.(*Part)
	if f.PartsOnly && (!isPart || !p.IsPart()) {
		return false
	}
	if f.PartKey != "" && (!isPart || p.Key() != f.PartKey) {
		return false
	}
	if f.Name != "" {
		// "3010" matches "3010.dat"; extensions are ignored on both sides.
		if !isPart || !strings.EqualFold(StripExt(p.Name), StripExt(f.Name)) {
			return false
		}
	}
	return true
}

// FilterObjs returns the objects of a passing the filter.
func FilterObjs(a []Object, f Filter) []Object {
	out := make([]Object, 0, len(a))
	for _, o := range a {
		if f.match(o) {
			out = append(out, o)
		}
	}
	return out
}

// ChangeColour recolours the objects of a passing the filter.
func ChangeColour(a []Object, c Colour, f Filter) []Object {
	out := make([]Object, len(a))
	for i, o := range a {
		if f.match(o) {
			out[i] = o.WithColour(c)
		} else {
			out[i] = o
		}
	}
	return out
}

// Rename renames the placements of a passing the filter.
func Rename(a []Object, name string, f Filter) []Object {
	out := make([]Object, len(a))
	for i, o := range a {
		if p, ok := o.(*Part); ok && f.match(o) {
			out[i] = p.WithName(name)
		} else {
			out[i] = o
		}
	}
	return out
}

// MoveTo repositions the placements of a passing the filter at pos.
func MoveTo(a []Object, pos geom.Vector, f Filter) []Object {
	out := make([]Object, len(a))
	for i, o := range a {
		if p, ok := o.(*Part); ok && f.match(o) {
			out[i] = p.MovedTo(pos)
		} else {
			out[i] = o
		}
	}
	return out
}

// Translated shifts the objects of a passing the filter by offset.
func Translated(a []Object, offset geom.Vector, f Filter) []Object {
	out := make([]Object, len(a))
	for i, o := range a {
		if f.match(o) {
			out[i] = o.Translated(offset)
		} else {
			out[i] = o
		}
	}
	return out
}

// ObjEqual is the equality used by the set operations: placements compare by
// name, colour, position and matrix (geometry within tolerance); every other
// variant compares by its canonical serialized text.
func ObjEqual(a, b Object) bool {
	pa, aOK := a.(*Part)
	pb, bOK := b.(*Part)
	if aOK != bOK {
		return false
	}
	if aOK {
		return pa.Equal(pb)
	}
	return a.String() == b.String()
}

func contains(set []Object, o Object) bool {
	for _, e := range set {
		if ObjEqual(e, o) {
			return true
		}
	}
	return false
}

// Union returns a followed by the elements of b not already present in a.
func Union(a, b []Object) []Object {
	out := append([]Object{}, a...)
	for _, o := range b {
		if !contains(a, o) {
			out = append(out, o)
		}
	}
	return out
}

// Difference returns the elements of a not present in b.
func Difference(a, b []Object) []Object {
	out := make([]Object, 0, len(a))
	for _, o := range a {
		if !contains(b, o) {
			out = append(out, o)
		}
	}
	return out
}

// Intersect returns the elements of a also present in b.
func Intersect(a, b []Object) []Object {
	out := make([]Object, 0, len(a))
	for _, o := range a {
		if contains(b, o) {
			out = append(out, o)
		}
	}
	return out
}

// Exclusive returns the elements of a and b that are not common to both.
func Exclusive(a, b []Object) []Object {
	return Difference(Union(a, b), Intersect(a, b))
}
