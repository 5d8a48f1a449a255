package ldraw

import (
	"strings"

	"github.com/brickforge/brickstep/pkg/geom"
)

// Reserved commands with structural roles.
const (
	CmdFile    = "FILE"
	CmdNoFile  = "NOFILE"
	CmdStep    = "STEP"
	CmdRotStep = "ROTSTEP"
	CmdRot     = "!PY ROT"
	CmdScale   = "!PY SCALE"
)

// IsStepDelimiter reports whether the meta ends a build step.
func (m *Meta) IsStepDelimiter() bool {
	return m.Command == CmdStep || m.Command == CmdRotStep
}

// IsModelName reports whether the meta opens a named sub-model section.
func (m *Meta) IsModelName() bool { return m.Command == CmdFile }

// IsModelEnd reports whether the meta closes a sub-model section.
func (m *Meta) IsModelEnd() bool { return m.Command == CmdNoFile }

// ModelName returns the model name opened by a FILE meta, or "".
func (m *Meta) ModelName() string {
	if !m.IsModelName() {
		return ""
	}
	return m.Params.Values["name"]
}

// rotVector reads the x/y/z parameter slots, defaulting absent ones to 0.
func (m *Meta) rotVector() geom.Vector {
	x, _ := m.Params.Float("x")
	y, _ := m.Params.Float("y")
	z, _ := m.Params.Float("z")
	return geom.V(x, y, z)
}

// RotationAbsolute returns the absolute view rotation set by this meta
// (ROTSTEP ... ABS or !PY ROT ... ABS).
func (m *Meta) RotationAbsolute() (geom.Vector, bool) {
	switch m.Command {
	case CmdRotStep, CmdRot:
		if m.Params.HasFlag("ABS") {
			return m.rotVector(), true
		}
	}
	return geom.Vector{}, false
}

// RotationRelative returns the relative view rotation added by this meta.
// ROTSTEP angles are relative with the REL or ADD flag (REL is the default
// when no mode flag is given); !PY ROT axis-flip flags add a fixed 180
// degrees on their axis.
func (m *Meta) RotationRelative() (geom.Vector, bool) {
	switch m.Command {
	case CmdRotStep:
		if m.Params.HasFlag("ABS") || m.Params.HasFlag("END") {
			return geom.Vector{}, false
		}
		return m.rotVector(), true
	case CmdRot:
		if m.Params.HasFlag("ABS") {
			return geom.Vector{}, false
		}
		v := m.rotVector()
		if m.Params.HasFlag("FLIPX") {
			v.X += 180
		}
		if m.Params.HasFlag("FLIPY") {
			v.Y += 180
		}
		if m.Params.HasFlag("FLIPZ") {
			v.Z += 180
		}
		return v, true
	}
	return geom.Vector{}, false
}

// RotationEnd reports whether this meta resets the view rotation to the
// initial aspect (ROTSTEP END).
func (m *Meta) RotationEnd() bool {
	return m.Command == CmdRotStep && m.Params.HasFlag("END")
}

// NewScale returns the view scale set by a !PY SCALE meta.
func (m *Meta) NewScale() (float64, bool) {
	if m.Command != CmdScale {
		return 0, false
	}
	return m.Params.Float("scale")
}

// NewPageNum returns the page number set by a !PY NEW_PAGE_NUM meta.
func (m *Meta) NewPageNum() (int, bool) {
	if m.Command != "!PY NEW_PAGE_NUM" {
		return 0, false
	}
	return m.Params.Int("number")
}

// TagBegin returns the tag name activated by a !PY TAG BEGIN meta.
func (m *Meta) TagBegin() (string, bool) {
	if m.Command != "!PY TAG BEGIN" {
		return "", false
	}
	return m.Params.Values["name"], m.Params.Values["name"] != ""
}

// TagEnd returns the tag name deactivated by a !PY TAG END meta.
func (m *Meta) TagEnd() (string, bool) {
	if m.Command != "!PY TAG END" {
		return "", false
	}
	return m.Params.Values["name"], m.Params.Values["name"] != ""
}

// MatchesCommand reports whether the meta's command equals cmd,
// case-insensitively.
func (m *Meta) MatchesCommand(cmd string) bool {
	return strings.EqualFold(m.Command, cmd)
}
