package ldraw

import (
	"sort"
	"strconv"
	"strings"
)

// Grammar is an immutable table of recognized meta-command keywords and their
// parameter specs. A type-0 line whose text matches a command prefix
// (longest-prefix-first, case-insensitive on the keyword) parses as a Meta
// object; everything else is a comment. The table is passed to the parser
// explicitly so that vendor extensions can be layered on without touching
// package state.
type Grammar struct {
	specs    map[string]paramSpec
	commands []string
}

// Param spec syntax, matching the conventions of the documented meta grammar:
//
//	<name>      required value
//	[name]      optional value
//	( A | B )   mutually exclusive flag group
//
// Surplus tokens beyond the spec are retained under Extra, and key=value
// tokens anywhere in the parameter list become named values.
type paramSpec struct {
	values []valueSlot
	flags  []string
}

type valueSlot struct {
	name     string
	optional bool
}

// defaultSpecs is the canonical LDraw + MLCAD + "!PY" vendor command table.
var defaultSpecs = map[string]string{
	"FILE":   "<name>",
	"NOFILE": "",
	"STEP":   "",
	"WRITE":  "",
	"PRINT":  "",
	"CLEAR":  "",
	"PAUSE":  "",
	"SAVE":   "",
	"BFC":    "( CERTIFY ( CCW | CW ) | NOCERTIFY )",

	"!LDRAW_ORG": "",
	"!LICENSE":   "",
	"!HELP":      "",
	"!CATEGORY":  "",
	"!KEYWORDS":  "",
	"!CMDLINE":   "",
	"!HISTORY":   "",

	"ROTSTEP":    "<x> <y> <z> ( REL | ADD | ABS | END )",
	"BACKGROUND": "<filename>",
	"BUFEXCHG":   "<buffer> ( STORE | RETRIEVE )",

	"PLI BEGIN IGN": "",
	"PLI END":       "",

	"GHOST":             "<line>",
	"GROUP":             "<n> <name>",
	"MLCAD BGT":         "<groupname>",
	"MLCAD HIDE":        "",
	"MLCAD SKIP_BEGIN":  "",
	"MLCAD SKIP_END":    "",
	"ROTATION CENTER":   "<x> <y> <z> <name>",
	"ROTATION CONFIG":   "<rotationid> <visibleflag>",
	"ROTATION AXLE":     "",
	"MLCAD SPRING":      "",
	"MLCAD FLEXHOSE":    "",
	"MLCAD RUBBER_BELT": "",

	"SYNTH BEGIN": `( RIBBED_TUBE | FLEXIBLE_TUBE | FLEX_CABLE | RIGID_TUBE |
		ELECTRIC_CABLE | PNEUMATIC_TUBE | FLEXIBLE_AXLE | FIBER_OPTIC_CABLE |
		RUBBER_BAND | CHAIN | PLASTIC_TREAD | RUBBER_TREAD )`,
	"SYNTH END":         "",
	"SYNTH INSIDE":      "",
	"SYNTH OUTSIDE":     "",
	"SYNTH CROSS":       "",
	"SYNTH SHOW":        "",
	"SYNTH HIDE":        "",
	"SYNTHESIZED BEGIN": "",
	"SYNTHESIZED END":   "",

	"!PY ARROW BEGIN":    "<x> <y> <z>",
	"!PY ARROW END":      "",
	"!PY TAG BEGIN":      "<name>",
	"!PY TAG END":        "<name>",
	"!PY COLUMNS":        "<columns>",
	"!PY SCALE":          "<scale>",
	"!PY ROT":            "[x] [y] [z] ( REL | ABS | FLIPX | FLIPY | FLIPZ )",
	"!PY COL_BREAK":      "",
	"!PY PAGE_BREAK":     "",
	"!PY HIDE_PLI":       "",
	"!PY HIDE_PLI BEGIN": "",
	"!PY HIDE_PLI END":   "",
	"!PY HIDE_FULLSCALE": "",
	"!PY HIDE_PREVIEW":   "",
	"!PY HIDE_ROTICON":   "",
	"!PY HIDE_PAGE_NUM":  "",
	"!PY SHOW_PAGE_NUM":  "",
	"!PY NO_CALLOUT":     "",
	"!PY INSERT_FILE":    "<filename>",
	"!PY INSERT_BOM":     "( COL_WISE | ROW_WISE | SHOW_LEGO_ID | SHOW_TITLE )",
	"!PY NEW_PAGE_NUM":   "<number>",
}

var defaultGrammar = newGrammar(defaultSpecs)

// DefaultGrammar returns the built-in command table.
func DefaultGrammar() *Grammar { return defaultGrammar }

func newGrammar(specs map[string]string) *Grammar {
	g := &Grammar{specs: make(map[string]paramSpec, len(specs))}
	for cmd, spec := range specs {
		g.specs[cmd] = compileSpec(spec)
		g.commands = append(g.commands, cmd)
	}
	// Longest first so "PLI BEGIN IGN" wins over any shorter prefix.
	sort.Slice(g.commands, func(i, j int) bool {
		if len(g.commands[i]) != len(g.commands[j]) {
			return len(g.commands[i]) > len(g.commands[j])
		}
		return g.commands[i] < g.commands[j]
	})
	return g
}

func compileSpec(spec string) paramSpec {
	var ps paramSpec
	for _, tok := range strings.Fields(spec) {
		switch {
		case strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">"):
			ps.values = append(ps.values, valueSlot{name: tok[1 : len(tok)-1]})
		case strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]"):
			ps.values = append(ps.values, valueSlot{name: tok[1 : len(tok)-1], optional: true})
		case tok == "(" || tok == ")" || tok == "|":
			// group punctuation
		default:
			ps.flags = append(ps.flags, strings.Trim(tok, "()|"))
		}
	}
	return ps
}

// Match tests whether text (the body of a type-0 line, leading "0" removed)
// starts with a known command. It returns the canonical command keyword and
// the remaining parameter text. Matching is token-wise and case-insensitive
// on the keyword so multi-token commands cannot match inside a longer word.
func (g *Grammar) Match(text string) (cmd, rest string, ok bool) {
	fields := strings.Fields(text)
	upper := make([]string, len(fields))
	for i, f := range fields {
		upper[i] = strings.ToUpper(f)
	}
	for _, c := range g.commands {
		ctoks := strings.Fields(c)
		if len(ctoks) > len(upper) {
			continue
		}
		match := true
		for i, ct := range ctoks {
			if upper[i] != ct {
				match = false
				break
			}
		}
		if match {
			return c, strings.Join(fields[len(ctoks):], " "), true
		}
	}
	return "", "", false
}

// Params holds the parsed parameter table of a Meta object.
type Params struct {
	// Values maps spec slot names (and key=value tokens) to their raw text.
	Values map[string]string
	// Flags are the exclusive-group keywords present, in input order.
	Flags []string
	// Extra retains surplus tokens beyond the declared slots.
	Extra []string
}

// HasFlag reports whether name appeared as a flag (case-insensitive).
func (p Params) HasFlag(name string) bool {
	for _, f := range p.Flags {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

// Float returns the named value parsed as a float.
func (p Params) Float(name string) (float64, bool) {
	s, ok := p.Values[name]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Int returns the named value parsed as an int.
func (p Params) Int(name string) (int, bool) {
	s, ok := p.Values[name]
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseParams parses the raw parameter text of cmd against the grammar.
// Unknown commands yield an empty table rather than an error. Tokens that
// match a declared flag keyword become flags; key=value tokens become named
// values; remaining tokens fill the declared value slots in order, with the
// final slot absorbing any leftover text (filenames may contain spaces);
// tokens beyond the slots land in Extra.
func (g *Grammar) ParseParams(cmd, raw string) Params {
	p := Params{Values: map[string]string{}}
	spec, known := g.specs[cmd]
	tokens := strings.Fields(raw)
	if !known {
		p.Extra = tokens
		return p
	}

	var plain []string
	for _, tok := range tokens {
		if k, v, found := strings.Cut(tok, "="); found && k != "" {
			p.Values[strings.ToLower(k)] = v
			continue
		}
		if isFlag(spec.flags, tok) {
			p.Flags = append(p.Flags, strings.ToUpper(tok))
			continue
		}
		plain = append(plain, tok)
	}

	slot := 0
	for i := 0; i < len(plain); i++ {
		if slot >= len(spec.values) {
			p.Extra = append(p.Extra, plain[i])
			continue
		}
		name := spec.values[slot].name
		if slot == len(spec.values)-1 && textSlot(name) {
			// Last text-valued slot keeps the rest of the line intact.
			p.Values[name] = strings.Join(plain[i:], " ")
			return p
		}
		p.Values[name] = plain[i]
		slot++
	}
	return p
}

// textSlot reports whether a slot holds free text such as a filename, which
// may itself contain spaces.
func textSlot(name string) bool {
	switch name {
	case "name", "filename", "groupname", "line":
		return true
	}
	return false
}

func isFlag(flags []string, tok string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, tok) {
			return true
		}
	}
	return false
}
