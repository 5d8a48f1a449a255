package build

import (
	"strconv"
	"strings"

	"github.com/brickforge/brickstep/pkg/errors"
	"github.com/brickforge/brickstep/pkg/geom"
	"github.com/brickforge/brickstep/pkg/ldraw"
)

// DefaultDPI is the render resolution assumed when none is configured. It
// participates in step hashing so renders at different resolutions cache
// independently.
const DefaultDPI = 300

// PartResolver looks up the physical extent of a named part in a parts
// library. A miss is a normal outcome: the part contributes only its
// position to bounding boxes.
type PartResolver interface {
	PartBoundBox(name string) (geom.BoundBox, bool)
}

// Options configures an unwrap run.
type Options struct {
	// InitialAspect is the view rotation in force before the first step
	// and the value a rotation-end directive resets to.
	InitialAspect geom.Vector
	// Scale is the initial view scale (default 1).
	Scale float64
	// DPI is the render resolution recorded on every step (default 300).
	DPI int
	// Resolver supplies part extents for bounding boxes. May be nil.
	Resolver PartResolver
}

// Result is the outcome of unwrapping a model table.
type Result struct {
	Steps []*BuildStep
	// Warnings collects recoverable anomalies encountered during the
	// traversal, such as unterminated capture groups.
	Warnings []string
}

// PieceCount returns the number of parts in the completed model.
func (r *Result) PieceCount() int {
	if len(r.Steps) == 0 {
		return 0
	}
	n := 0
	for _, o := range r.Steps[len(r.Steps)-1].ModelParts() {
		if p, ok := o.(*ldraw.Part); ok && p.IsPart() {
			n++
		}
	}
	return n
}

// ElementCount returns the number of distinct part/colour combinations in
// the completed model.
func (r *Result) ElementCount() int {
	return len(r.BOM())
}

// BOM returns part quantities for the completed model, keyed
// "name-colourcode".
func (r *Result) BOM() map[string]int {
	bom := map[string]int{}
	if len(r.Steps) == 0 {
		return bom
	}
	for _, o := range r.Steps[len(r.Steps)-1].ModelParts() {
		if p, ok := o.(*ldraw.Part); ok && p.IsPart() {
			bom[p.Key()]++
		}
	}
	return bom
}

// Unwrap flattens the model hierarchy rooted at rootName into a linear
// sequence of build steps. Sub-model references are resolved depth-first:
// the steps that assemble a sub-model are emitted before the step of the
// parent model that places it. A reference cycle in the model table is
// reported as a CyclicModelReference error rather than followed.
func Unwrap(table ldraw.ModelTable, rootName string, opts Options) (*Result, error) {
	root, ok := table[rootName]
	if !ok {
		return nil, errors.New(errors.ErrCodeModelNotFound, "model %q not in table", rootName)
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	if opts.DPI == 0 {
		opts.DPI = DefaultDPI
	}
	e := &engine{
		table:    table,
		opts:     opts,
		counts:   map[string]int{},
		visiting: map[string]bool{},
	}
	e.visiting[rootName] = true
	e.stack = append(e.stack, rootName)
	err := e.walk(&unwrapCtx{
		name:      rootName,
		model:     root,
		transform: geom.Identity(),
		aspect:    opts.InitialAspect,
		scale:     opts.Scale,
		qty:       1,
		path:      ldraw.StripExt(rootName),
	})
	if err != nil {
		return nil, err
	}
	return &Result{Steps: e.out, Warnings: e.warnings}, nil
}

// unwrapCtx is one recursion frame: the accumulated placement transform,
// the view state inherited from the parent, and the per-model accumulator
// of everything placed so far. Child frames copy the view state on entry;
// their mutations do not flow back. Only the step counters thread through
// the whole traversal via the engine.
type unwrapCtx struct {
	name      string
	model     *ldraw.Model
	transform geom.Matrix
	offset    geom.Vector
	aspect    geom.Vector
	scale     float64
	level     int
	qty       int
	path      string
	tags      []string
	modelObjs []ldraw.Object
}

type engine struct {
	table    ldraw.ModelTable
	opts     Options
	out      []*BuildStep
	warnings []string
	idx      int
	num      int
	// counts allocates instance indices per parent path and sub-model stem.
	counts map[string]int
	// visiting and stack guard against reference cycles.
	visiting map[string]bool
	stack    []string
}

// instancePath allocates the next unused instance path for a reference to
// name below parent.
func (e *engine) instancePath(parent, name string) string {
	return nextInstancePath(e.counts, parent, name)
}

// nextInstancePath draws the next zero-based instance index for name below
// parent from counts.
func nextInstancePath(counts map[string]int, parent, name string) string {
	stem := ldraw.StripExt(name)
	key := parent + "|" + stem
	i := counts[key]
	counts[key]++
	return parent + "/" + stem + ":" + strconv.Itoa(i)
}

type subRef struct {
	first     *ldraw.Part
	firstPath string
	qty       int
}

func (e *engine) walk(c *unwrapCtx) error {
	for _, step := range c.model.Steps {
		// Assign instance paths to every resolvable sub-model placement
		// up front so the recursion below and the flattening agree on the
		// first instance's path.
		assigned := map[*ldraw.Part]string{}
		refs := map[string]*subRef{}
		var order []string
		for _, o := range step.Objs {
			p, ok := o.(*ldraw.Part)
			if !ok || !p.IsModel() {
				continue
			}
			if _, ok := e.table[p.Name]; !ok {
				// Unknown references stay leaf placements.
				continue
			}
			ip := e.instancePath(c.path, p.Name)
			assigned[p] = ip
			r := refs[p.Name]
			if r == nil {
				r = &subRef{first: p, firstPath: ip}
				refs[p.Name] = r
				order = append(order, p.Name)
			}
			r.qty++
		}

		// Emit the sub-assembly construction steps before the parent step
		// that places them.
		for _, name := range order {
			if e.visiting[name] {
				cycle := append(append([]string{}, e.stack...), name)
				return errors.New(errors.ErrCodeCyclicModel,
					"cyclic model reference: %s", strings.Join(cycle, " -> "))
			}
			r := refs[name]
			child := &unwrapCtx{
				name:      name,
				model:     e.table[name],
				transform: c.transform.Mul(r.first.Matrix),
				offset:    c.transform.Apply(r.first.Pos).Add(c.offset),
				aspect:    c.aspect,
				scale:     c.scale,
				level:     c.level + 1,
				qty:       r.qty,
				path:      r.firstPath,
				tags:      c.tags,
			}
			e.visiting[name] = true
			e.stack = append(e.stack, name)
			err := e.walk(child)
			delete(e.visiting, name)
			e.stack = e.stack[:len(e.stack)-1]
			if err != nil {
				return err
			}
		}

		// View state mutations declared in this step take effect for the
		// step itself and everything after it.
		if v, ok := step.RotationRelative(); ok {
			c.aspect = c.aspect.Add(v)
		} else if v, ok := step.RotationAbsolute(); ok {
			c.aspect = v
		} else if step.RotationEnd() {
			c.aspect = e.opts.InitialAspect
		}
		if sc, ok := step.NewScale(); ok {
			c.scale = sc
		}

		// Place this step's objects in world coordinates, run the capture
		// machine, then apply the view rotation last.
		world := e.flatten(step.Objs, c.transform, c.offset, c.path, assigned, map[string]int{}, map[string]bool{})
		res := ProcessStep(world, c.tags)
		c.tags = res.Tags
		e.warnings = append(e.warnings, res.Warnings...)
		c.modelObjs = append(c.modelObjs, res.Objs...)

		b := &BuildStep{
			Objs:      rotateObjs(res.Objs, c.aspect),
			Model:     rotateObjs(c.modelObjs, c.aspect),
			Groups:    rotateGroups(res.Groups, c.aspect),
			ModelName: c.name,
			Idx:       e.idx,
			Level:     c.level,
			Qty:       c.qty,
			Scale:     c.scale,
			DPI:       e.opts.DPI,
			Aspect:    c.aspect,
			resolver:  e.opts.Resolver,
		}
		e.idx++
		if !b.Virtual() {
			e.num++
		}
		b.Num = e.num
		e.out = append(e.out, b)
	}
	return nil
}

// flatten substitutes resolvable sub-model placements with their contents
// transformed into the caller's frame and stamps every emitted object with
// its hierarchy path. assigned carries the instance paths allocated for the
// current step's own placements. Deeper placements draw zero-based indices
// from a counter local to each descent: a sub-model's contents are visited
// in the same document order here as when its own steps were walked, so
// both views assign every instance the identical path. visiting keeps a
// malformed self-reference from looping; such placements stay leaves.
func (e *engine) flatten(objs []ldraw.Object, m geom.Matrix, off geom.Vector, path string, assigned map[*ldraw.Part]string, counts map[string]int, visiting map[string]bool) []ldraw.Object {
	var out []ldraw.Object
	for _, o := range objs {
		p, ok := o.(*ldraw.Part)
		if ok && p.IsModel() && !visiting[p.Name] {
			if sub, found := e.table[p.Name]; found {
				ip, pre := assigned[p]
				if !pre {
					ip = nextInstancePath(counts, path, p.Name)
				}
				visiting[p.Name] = true
				out = append(out, e.flatten(
					sub.Objs(),
					m.Mul(p.Matrix),
					m.Apply(p.Pos).Add(off),
					ip, nil, map[string]int{}, visiting)...)
				delete(visiting, p.Name)
				continue
			}
		}
		out = append(out, o.Transformed(m, off).WithPath(path))
	}
	return out
}

func rotateObjs(objs []ldraw.Object, aspect geom.Vector) []ldraw.Object {
	out := make([]ldraw.Object, len(objs))
	for i, o := range objs {
		out[i] = o.RotatedBy(aspect)
	}
	return out
}

func rotateGroups(groups []*CaptureGroup, aspect geom.Vector) []*CaptureGroup {
	out := make([]*CaptureGroup, len(groups))
	for i, g := range groups {
		out[i] = &CaptureGroup{
			Trigger: g.Trigger,
			Kind:    g.Kind,
			Objs:    rotateObjs(g.Objs, aspect),
			Offset:  g.Offset,
		}
	}
	return out
}
