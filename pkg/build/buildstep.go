package build

import (
	"crypto/sha1"
	"fmt"
	"sort"
	"strings"

	"github.com/brickforge/brickstep/pkg/geom"
	"github.com/brickforge/brickstep/pkg/ldraw"
)

// BuildStep is one entry in the flattened construction sequence: the
// objects contributed at this step and the cumulative model through it,
// both in absolute coordinates with the step's view rotation applied,
// together with the view state and counters in force.
//
// BuildSteps are immutable once returned by Unwrap; the derived views,
// bound boxes and the content hash are memoized on first access.
type BuildStep struct {
	// Objs are the objects newly contributed at this step.
	Objs []ldraw.Object
	// Model is the running total of objects in the containing model
	// through this step.
	Model []ldraw.Object
	// Groups are the capture groups closed within this step.
	Groups []*CaptureGroup

	// ModelName names the model this step belongs to.
	ModelName string
	// Idx is the position in the flattened sequence.
	Idx int
	// Num is the visible build number; steps that add no parts keep the
	// previous number.
	Num int
	// Level is the hierarchy depth (root = 0).
	Level int
	// Qty is how many instances of the containing sub-model the parent
	// step places (1 for the root).
	Qty int

	Scale  float64
	DPI    int
	Aspect geom.Vector

	resolver PartResolver

	hash       string
	stepParts  []ldraw.Object
	modelParts []ldraw.Object
	stepBB     *geom.BoundBox
	modelBB    *geom.BoundBox
}

func (b *BuildStep) String() string {
	indent := strings.Repeat(" ", b.Level+1)
	postdent := ""
	if b.Level < 4 {
		postdent = strings.Repeat(" ", 4-b.Level)
	}
	state := " "
	switch {
	case b.StartOfModel() && b.EndOfModel():
		state = "="
	case b.StartOfModel():
		state = ">"
	case b.EndOfModel():
		state = "<"
	}
	return fmt.Sprintf(
		"Step: %3d %3d%slevel %1d%s%s step-parts: %3d model-parts: %4d scale %.2f aspect %-11s qty: %d '%s'",
		b.Idx, b.Num, indent, b.Level, postdent, state,
		len(b.StepParts()), len(b.ModelParts()),
		b.Scale, ldraw.FormatVector(b.Aspect), b.Qty, ldraw.StripExt(b.ModelName))
}

// Hash returns the SHA-1 change-detection hash of this step. It covers the
// view state (aspect, scale, resolution), the objects added this step and
// the cumulative model view, each group sorted so incidental reordering of
// geometrically identical content does not change the hash.
func (b *BuildStep) Hash() string {
	if b.hash == "" {
		h := sha1.New()
		h.Write([]byte(ldraw.FormatVector(b.Aspect)))
		fmt.Fprintf(h, "%.3f", b.Scale)
		fmt.Fprintf(h, "%3d", b.DPI)
		step := canonicalStrings(b.Objs)
		sort.Strings(step)
		model := canonicalStrings(b.ModelParts())
		sort.Strings(model)
		for _, s := range step {
			h.Write([]byte(s))
		}
		for _, s := range model {
			h.Write([]byte(s))
		}
		b.hash = fmt.Sprintf("%x", h.Sum(nil))
	}
	return b.hash
}

func canonicalStrings(objs []ldraw.Object) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.String()
	}
	return out
}

// Virtual reports whether this step adds no parts to the model, such as a
// step that only changes the view rotation.
func (b *BuildStep) Virtual() bool {
	for _, o := range b.StepParts() {
		if _, ok := o.(*ldraw.Part); ok {
			return false
		}
	}
	return true
}

// StartOfModel reports whether this step opens a model section.
func (b *BuildStep) StartOfModel() bool {
	for _, o := range b.Objs {
		if m, ok := o.(*ldraw.Meta); ok && m.IsModelName() {
			return true
		}
	}
	return false
}

// EndOfModel reports whether this step closes a model section.
func (b *BuildStep) EndOfModel() bool {
	for _, o := range b.Objs {
		if m, ok := o.(*ldraw.Meta); ok && m.IsModelEnd() {
			return true
		}
	}
	return false
}

// StepParts returns the drawable view of the objects added this step,
// after capture-group processing.
func (b *BuildStep) StepParts() []ldraw.Object {
	if b.stepParts == nil {
		b.stepParts = b.viewObjs(b.Objs)
	}
	return b.stepParts
}

// ModelParts returns the drawable view of the cumulative model at this
// step, after capture-group processing.
func (b *BuildStep) ModelParts() []ldraw.Object {
	if b.modelParts == nil {
		b.modelParts = b.viewObjs(b.Model)
	}
	return b.modelParts
}

// viewObjs applies the step's capture groups to a drawable stream: every
// captured object is removed; arrow groups re-emit their objects shifted by
// the arrow displacement together with generated arrow geometry. Sub-model
// placements are matched by path so the whole flattened sub-assembly is
// removed; everything else is matched by content hash.
func (b *BuildStep) viewObjs(src []ldraw.Object) []ldraw.Object {
	objs := drawables(src)
	var mod []ldraw.Object
	for _, g := range b.Groups {
		for _, obj := range g.Objs {
			var del []ldraw.Object
			if p, ok := obj.(*ldraw.Part); ok && p.IsModel() {
				del = ldraw.FilterObjs(objs, ldraw.Filter{PathContains: obj.Path()})
			} else {
				del = objsWithHash(objs, obj.Hash())
			}
			if g.Kind == CaptureArrow {
				offset := geom.EulerToRotation(b.Aspect).Apply(g.Offset)
				sh := make([]ldraw.Object, len(del))
				for i, d := range del {
					sh[i] = d.Translated(offset)
				}
				mod = append(mod, b.arrowsFor(g.Trigger, sh)...)
				mod = append(mod, sh...)
			}
			objs = ldraw.Difference(objs, del)
		}
	}
	return ldraw.Union(objs, mod)
}

func drawables(objs []ldraw.Object) []ldraw.Object {
	var out []ldraw.Object
	for _, o := range objs {
		if isDrawable(o) {
			out = append(out, o)
		}
	}
	return out
}

func objsWithHash(objs []ldraw.Object, hash string) []ldraw.Object {
	var out []ldraw.Object
	for _, o := range objs {
		if o.Hash() == hash {
			out = append(out, o)
		}
	}
	return out
}

// arrowsFor synthesizes the annotation arrows for an arrow capture group,
// anchored at the centre of the shifted objects and rotated into the
// step's view.
func (b *BuildStep) arrowsFor(trigger *ldraw.Meta, objs []ldraw.Object) []ldraw.Object {
	if len(objs) == 0 {
		return nil
	}
	bb := b.boundBoxOf(objs)
	return rotateObjs(ArrowsFromMeta(trigger, bb.Center()), b.Aspect)
}

// PLI returns the part quantities to show in this step's parts-list image,
// keyed "name-colourcode". Parts bracketed by a hide-PLI capture are
// omitted entirely.
func (b *BuildStep) PLI() map[string]int {
	pli := map[string]int{}
	for _, o := range b.StepParts() {
		if p, ok := o.(*ldraw.Part); ok && p.IsPart() {
			pli[p.Key()]++
		}
	}
	for _, g := range b.Groups {
		if g.Kind != CaptureHidePLI {
			continue
		}
		for _, o := range g.Objs {
			if p, ok := o.(*ldraw.Part); ok && p.IsPart() {
				delete(pli, p.Key())
			}
		}
	}
	return pli
}

// boundBoxOf accumulates the extent of objs in unrotated model space,
// undoing the step's view rotation. Part extents come from the resolver;
// an unresolvable part contributes only its position.
func (b *BuildStep) boundBoxOf(objs []ldraw.Object) geom.BoundBox {
	unrot := geom.EulerToRotation(b.Aspect).Transpose()
	var bb geom.BoundBox
	for _, o := range objs {
		if p, ok := o.(*ldraw.Part); ok {
			pos := unrot.Apply(p.Pos)
			if b.resolver != nil {
				if ext, found := b.resolver.PartBoundBox(p.Name); found {
					bb = bb.UnionBox(ext.Translated(pos))
					continue
				}
			}
			bb = bb.Union(pos)
			continue
		}
		for _, pt := range o.Points() {
			bb = bb.Union(unrot.Apply(pt))
		}
	}
	return bb
}

// StepBoundBox returns the extent of the parts added this step.
func (b *BuildStep) StepBoundBox() geom.BoundBox {
	if b.stepBB == nil {
		bb := b.boundBoxOf(b.StepParts())
		b.stepBB = &bb
	}
	return *b.stepBB
}

// ModelBoundBox returns the extent of the whole model at this step.
func (b *BuildStep) ModelBoundBox() geom.BoundBox {
	if b.modelBB == nil {
		bb := b.boundBoxOf(b.ModelParts())
		b.modelBB = &bb
	}
	return *b.modelBB
}

// ImageName returns a render filename unique to this step's appearance:
// renders are cached under it and a content change produces a new name.
func (b *BuildStep) ImageName(suffix string) string {
	return fmt.Sprintf("%d%s_%d_%d_%.2f_%s.png",
		b.Idx, suffix, b.Level, b.DPI, b.Scale, b.Hash())
}
