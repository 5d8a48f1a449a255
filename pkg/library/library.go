// Package library resolves named parts against local LDraw part
// directories and derives their physical extents for bounding-box
// computation during unwrapping.
package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/brickforge/brickstep/pkg/errors"
	"github.com/brickforge/brickstep/pkg/geom"
	"github.com/brickforge/brickstep/pkg/ldraw"
)

// subDirs are the conventional sub-directories of an LDraw library root
// searched for part files, in priority order.
var subDirs = []string{"", "parts", "p", "models", "parts/s"}

// Library is a filesystem part resolver over one or more LDraw library
// roots. Lookups and derived bound boxes are memoized; a part that cannot
// be found is remembered as a miss so repeated lookups stay cheap.
//
// Library is not safe for concurrent use; the unwrap engine drives it from
// a single goroutine.
type Library struct {
	dirs   []string
	parser *ldraw.Parser

	files map[string]string
	boxes map[string]geom.BoundBox
	miss  map[string]bool
}

// New creates a library searching the given root directories in order.
func New(dirs ...string) *Library {
	return &Library{
		dirs:   dirs,
		parser: ldraw.NewParser(ldraw.DefaultGrammar()),
		files:  map[string]string{},
		boxes:  map[string]geom.BoundBox{},
		miss:   map[string]bool{},
	}
}

// Dirs returns the configured library roots.
func (l *Library) Dirs() []string { return l.dirs }

// Find locates the file for a part name, trying each root and its
// conventional sub-directories, with a lowercase fallback since LDraw
// references are case-insensitive.
func (l *Library) Find(name string) (string, bool) {
	if p, ok := l.files[name]; ok {
		return p, p != ""
	}
	// Sub-part references use backslash separators on every platform.
	rel := strings.ReplaceAll(name, "\\", string(filepath.Separator))
	for _, dir := range l.dirs {
		for _, sub := range subDirs {
			for _, candidate := range []string{rel, strings.ToLower(rel)} {
				p := filepath.Join(dir, sub, candidate)
				if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
					l.files[name] = p
					return p, true
				}
			}
		}
	}
	l.files[name] = ""
	return "", false
}

// Source reads the raw text of a named part or model file. A missing file
// is a hard error, unlike extent lookups.
func (l *Library) Source(name string) (string, error) {
	p, ok := l.Find(name)
	if !ok {
		return "", errors.New(errors.ErrCodeFileNotFound, "part file not found: %s", name)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read part file %s", p)
	}
	return string(data), nil
}

// PartBoundBox derives the axis-aligned extent of a part by walking its
// file and, recursively, every sub-file it places. A part that cannot be
// located reports ok=false; the engine treats that as zero extent.
func (l *Library) PartBoundBox(name string) (geom.BoundBox, bool) {
	if bb, ok := l.boxes[name]; ok {
		return bb, true
	}
	if l.miss[name] {
		return geom.BoundBox{}, false
	}
	bb, ok := l.boundBox(name, geom.Identity(), geom.Vector{}, map[string]bool{})
	if !ok {
		l.miss[name] = true
		return geom.BoundBox{}, false
	}
	l.boxes[name] = bb
	return bb, true
}

func (l *Library) boundBox(name string, m geom.Matrix, off geom.Vector, visiting map[string]bool) (geom.BoundBox, bool) {
	if visiting[name] {
		return geom.BoundBox{}, false
	}
	text, err := l.Source(name)
	if err != nil {
		return geom.BoundBox{}, false
	}
	visiting[name] = true
	defer delete(visiting, name)

	var bb geom.BoundBox
	for _, line := range strings.Split(text, "\n") {
		o := l.parser.ParseLine(line)
		if o == nil {
			continue
		}
		if p, ok := o.(*ldraw.Part); ok {
			sub, found := l.boundBox(p.Name,
				m.Mul(p.Matrix), m.Apply(p.Pos).Add(off), visiting)
			if found {
				bb = bb.UnionBox(sub)
			}
			continue
		}
		for _, pt := range o.Points() {
			bb = bb.Union(m.Apply(pt).Add(off))
		}
	}
	return bb, !bb.IsEmpty()
}
