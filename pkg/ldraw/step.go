package ldraw

import (
	"fmt"

	"github.com/brickforge/brickstep/pkg/geom"
)

// Step is an ordered run of objects between step-boundary directives within
// one model's local coordinate frame. The closing delimiter itself belongs
// to the step, so a step's rotation directives can be queried from its own
// object list.
//
// Steps are immutable after model parsing; the derived quantity maps are
// memoized on first access.
type Step struct {
	Objs []Object

	parts     map[string]int
	subModels map[string]int
}

// NewStep builds a step over objs.
func NewStep(objs []Object) *Step { return &Step{Objs: objs} }

func (s *Step) String() string {
	return fmt.Sprintf("Step: %d objects, %d parts, %d sub-models",
		len(s.Objs), s.PartQty(), s.SubModelQty())
}

// Parts returns quantities of distinct part references in this step,
// keyed "name-colourcode".
func (s *Step) Parts() map[string]int {
	if s.parts == nil {
		s.parts = map[string]int{}
		for _, o := range s.Objs {
			if p, ok := o.(*Part); ok && p.IsPart() {
				s.parts[p.Key()]++
			}
		}
	}
	return s.parts
}

// SubModels returns quantities of distinct sub-model references in this
// step, keyed by model name.
func (s *Step) SubModels() map[string]int {
	if s.subModels == nil {
		s.subModels = map[string]int{}
		for _, o := range s.Objs {
			if p, ok := o.(*Part); ok && p.IsModel() {
				s.subModels[p.Name]++
			}
		}
	}
	return s.subModels
}

// PartQty returns the total count of part references in this step.
func (s *Step) PartQty() int {
	n := 0
	for _, q := range s.Parts() {
		n += q
	}
	return n
}

// SubModelQty returns the total count of sub-model references in this step.
func (s *Step) SubModelQty() int {
	n := 0
	for _, q := range s.SubModels() {
		n += q
	}
	return n
}

// Metas returns the meta objects of the step in order.
func (s *Step) Metas() []*Meta {
	var out []*Meta
	for _, o := range s.Objs {
		if m, ok := o.(*Meta); ok {
			out = append(out, m)
		}
	}
	return out
}

// HasMeta reports whether the step contains a meta with the given command.
func (s *Step) HasMeta(cmd string) bool {
	for _, m := range s.Metas() {
		if m.MatchesCommand(cmd) {
			return true
		}
	}
	return false
}

// RotationAbsolute returns the absolute view rotation set in this step.
func (s *Step) RotationAbsolute() (geom.Vector, bool) {
	for _, m := range s.Metas() {
		if v, ok := m.RotationAbsolute(); ok {
			return v, true
		}
	}
	return geom.Vector{}, false
}

// RotationRelative returns the relative view rotation added in this step.
func (s *Step) RotationRelative() (geom.Vector, bool) {
	for _, m := range s.Metas() {
		if v, ok := m.RotationRelative(); ok {
			return v, true
		}
	}
	return geom.Vector{}, false
}

// RotationEnd reports whether this step resets the view rotation.
func (s *Step) RotationEnd() bool {
	for _, m := range s.Metas() {
		if m.RotationEnd() {
			return true
		}
	}
	return false
}

// NewScale returns the view scale set in this step.
func (s *Step) NewScale() (float64, bool) {
	for _, m := range s.Metas() {
		if v, ok := m.NewScale(); ok {
			return v, true
		}
	}
	return 0, false
}

// StartOfModel reports whether this step opens a model section (FILE).
func (s *Step) StartOfModel() bool {
	for _, m := range s.Metas() {
		if m.IsModelName() {
			return true
		}
	}
	return false
}

// EndOfModel reports whether this step closes a model section (NOFILE).
func (s *Step) EndOfModel() bool {
	for _, m := range s.Metas() {
		if m.IsModelEnd() {
			return true
		}
	}
	return false
}

// Presentation flags read from the step's metas.
func (s *Step) PageBreak() bool        { return s.HasMeta("!PY PAGE_BREAK") }
func (s *Step) ColumnBreak() bool      { return s.HasMeta("!PY COL_BREAK") }
func (s *Step) HidePLI() bool          { return s.HasMeta("!PY HIDE_PLI") }
func (s *Step) HideFullscale() bool    { return s.HasMeta("!PY HIDE_FULLSCALE") }
func (s *Step) HidePreview() bool      { return s.HasMeta("!PY HIDE_PREVIEW") }
func (s *Step) HideRotationIcon() bool { return s.HasMeta("!PY HIDE_ROTICON") }
func (s *Step) HidePageNum() bool      { return s.HasMeta("!PY HIDE_PAGE_NUM") }
func (s *Step) ShowPageNum() bool      { return s.HasMeta("!PY SHOW_PAGE_NUM") }
func (s *Step) NoCallout() bool        { return s.HasMeta("!PY NO_CALLOUT") }

// NewPageNum returns the page number override set in this step.
func (s *Step) NewPageNum() (int, bool) {
	for _, m := range s.Metas() {
		if v, ok := m.NewPageNum(); ok {
			return v, true
		}
	}
	return 0, false
}
