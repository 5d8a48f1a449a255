// Package build implements the unwrap engine: recursive traversal of a
// parsed model table producing a flat, world-space sequence of build steps,
// together with the capture state machine for delimiter-bracketed content,
// arrow annotation synthesis, and per-step content hashing.
package build

import (
	"fmt"
	"sort"

	"github.com/brickforge/brickstep/pkg/geom"
	"github.com/brickforge/brickstep/pkg/ldraw"
)

// CaptureKind classifies what a BEGIN/END marker pair sets its content
// aside for.
type CaptureKind int

// Capture kinds.
const (
	// CapturePLIIgnore excludes content from the step's part list.
	CapturePLIIgnore CaptureKind = iota
	// CaptureBuffer is an MLCAD buffer exchange (STORE ... RETRIEVE).
	CaptureBuffer
	// CaptureHideParts hides the bracketed parts from the model views.
	CaptureHideParts
	// CaptureHidePLI removes the bracketed parts from the PLI only.
	CaptureHidePLI
	// CaptureArrow re-emits the bracketed parts offset by the arrow
	// displacement together with generated arrow geometry.
	CaptureArrow
)

func (k CaptureKind) String() string {
	switch k {
	case CapturePLIIgnore:
		return "pli-ignore"
	case CaptureBuffer:
		return "buffer-exchange"
	case CaptureHideParts:
		return "hide-parts"
	case CaptureHidePLI:
		return "hide-pli"
	case CaptureArrow:
		return "arrow"
	}
	return "unknown"
}

// CaptureGroup is a run of drawable objects bracketed by a recognized
// BEGIN/END marker pair, recorded under its triggering directive.
type CaptureGroup struct {
	Trigger *ldraw.Meta
	Kind    CaptureKind
	Objs    []ldraw.Object
	// Offset is the mean arrow displacement for arrow groups.
	Offset geom.Vector
}

// CaptureResult is the outcome of processing one step's object stream.
type CaptureResult struct {
	// Objs is the stream with BEGIN/END and tag markers removed and
	// active tags stamped onto every remaining object. Captured drawables
	// stay in the stream; the per-view exclusions are applied when a
	// build step materializes its parts views.
	Objs []ldraw.Object
	// Groups are the capture groups closed within the step, in order.
	Groups []*CaptureGroup
	// Tags is the active-tag set after the step, carried into the next.
	Tags []string
	// Warnings records recoverable anomalies, currently unterminated
	// capture groups closed at the step boundary.
	Warnings []string
}

// beginKind classifies a meta as a capture BEGIN marker.
func beginKind(m *ldraw.Meta) (CaptureKind, bool) {
	switch m.Command {
	case "PLI BEGIN IGN":
		return CapturePLIIgnore, true
	case "BUFEXCHG":
		if m.Params.HasFlag("STORE") {
			return CaptureBuffer, true
		}
	case "MLCAD SKIP_BEGIN":
		return CaptureHideParts, true
	case "!PY HIDE_PLI BEGIN":
		return CaptureHidePLI, true
	case "!PY ARROW BEGIN":
		return CaptureArrow, true
	}
	return 0, false
}

// endKind classifies a meta as a capture END marker.
func endKind(m *ldraw.Meta) (CaptureKind, bool) {
	switch m.Command {
	case "PLI END":
		return CapturePLIIgnore, true
	case "BUFEXCHG":
		if m.Params.HasFlag("RETRIEVE") {
			return CaptureBuffer, true
		}
	case "MLCAD SKIP_END":
		return CaptureHideParts, true
	case "!PY HIDE_PLI END":
		return CaptureHidePLI, true
	case "!PY ARROW END":
		return CaptureArrow, true
	}
	return 0, false
}

func isDrawable(o ldraw.Object) bool {
	switch o.(type) {
	case *ldraw.Line, *ldraw.Triangle, *ldraw.Quad, *ldraw.Part:
		return true
	}
	return false
}

// ProcessStep runs the capture state machine over one step's objects.
// tags is the active-tag set inherited from the preceding step.
//
// The machine has two states, idle and capturing. A BEGIN marker opens a
// group recording its triggering directive; drawables seen while capturing
// are collected into the group; the matching END marker closes it.
// Sequential groups within one step are independent. Markers themselves
// never appear in the output stream. A group still open at the end of the
// step is closed at the boundary and reported as a warning rather than
// silently discarded.
//
// Tag capture is separate from grouping: "!PY TAG BEGIN name" adds to the
// active set, "!PY TAG END name" removes (a no-op when absent), and every
// object passed through while the set is non-empty is stamped with the
// current tags.
func ProcessStep(objs []ldraw.Object, tags []string) CaptureResult {
	res := CaptureResult{Tags: append([]string{}, tags...)}
	var open *CaptureGroup

	for _, o := range objs {
		if m, ok := o.(*ldraw.Meta); ok {
			if name, ok := m.TagBegin(); ok {
				res.Tags = tagsWith(res.Tags, name)
				continue
			}
			if name, ok := m.TagEnd(); ok {
				res.Tags = tagsWithout(res.Tags, name)
				continue
			}
			if kind, ok := beginKind(m); ok && open == nil {
				open = &CaptureGroup{Trigger: m, Kind: kind}
				if kind == CaptureArrow {
					open.Offset = MeanArrowOffset(m)
				}
				continue
			}
			if _, ok := endKind(m); ok && open != nil {
				res.Groups = append(res.Groups, open)
				open = nil
				continue
			}
		}
		if len(res.Tags) > 0 {
			o = o.WithTags(append([]string{}, res.Tags...))
		}
		if open != nil && isDrawable(o) {
			open.Objs = append(open.Objs, o)
		}
		res.Objs = append(res.Objs, o)
	}

	if open != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"unterminated %s capture (%s) closed at step boundary",
			open.Kind, open.Trigger.String()))
		res.Groups = append(res.Groups, open)
	}
	return res
}

// tagsWith returns tags with name added, deduplicated and sorted so the
// stamped sets serialize deterministically.
func tagsWith(tags []string, name string) []string {
	for _, t := range tags {
		if t == name {
			return tags
		}
	}
	out := append(append([]string{}, tags...), name)
	sort.Strings(out)
	return out
}

// tagsWithout returns tags with name removed.
func tagsWithout(tags []string, name string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != name {
			out = append(out, t)
		}
	}
	return out
}
