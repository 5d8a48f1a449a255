package ldraw

import (
	"strconv"
	"strings"

	"github.com/brickforge/brickstep/pkg/geom"
)

// Parser turns raw LDraw lines into Objects against an explicit grammar
// table.
type Parser struct {
	grammar *Grammar
}

// NewParser builds a parser over the given grammar.
func NewParser(g *Grammar) *Parser { return &Parser{grammar: g} }

// ParseLine parses a single raw line with the default grammar. See
// Parser.ParseLine.
func ParseLine(s string) Object { return NewParser(DefaultGrammar()).ParseLine(s) }

// ParseLine parses one raw LDraw line into an Object, dispatching on the
// leading line-type code: 0 comment or meta, 1 placement, 2 line,
// 3 triangle, 4 quad. Parsing is best-effort: malformed lines (wrong token
// count, non-numeric fields) return nil and are expected to be skipped by
// the caller, because real files carry vendor extensions this grammar does
// not cover.
func (p *Parser) ParseLine(s string) Object {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	lineType, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil
	}
	switch lineType {
	case 0:
		return p.parseType0(fields[1:])
	case 1:
		return parsePart(fields[1:])
	case 2:
		return parseLinePrimitive(fields[1:])
	case 3:
		return parseTriangle(fields[1:])
	case 4:
		return parseQuad(fields[1:])
	}
	return nil
}

// parseType0 classifies the body of a type-0 line. Text matching a known
// command keyword becomes a Meta with parsed parameters. "!"-prefixed
// commands outside the grammar are still Metas, carrying an empty parameter
// table, since the "!" namespace is reserved for directives by convention.
// Everything else is a comment.
func (p *Parser) parseType0(fields []string) Object {
	text := strings.Join(fields, " ")
	if len(fields) == 0 {
		return NewComment("")
	}
	if cmd, rest, ok := p.grammar.Match(text); ok {
		return &Meta{
			attrs:   attrs{colour: Default()},
			Command: cmd,
			Raw:     rest,
			Params:  p.grammar.ParseParams(cmd, rest),
		}
	}
	if strings.HasPrefix(fields[0], "!") {
		cmd := strings.ToUpper(fields[0])
		rest := strings.Join(fields[1:], " ")
		return &Meta{
			attrs:   attrs{colour: Default()},
			Command: cmd,
			Raw:     rest,
			Params:  Params{Values: map[string]string{}},
		}
	}
	return NewComment(text)
}

// parseFloats parses exactly len(out) consecutive numeric fields.
func parseFloats(fields []string, out []float64) bool {
	if len(fields) < len(out) {
		return false
	}
	for i := range out {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return false
		}
		out[i] = Quantize(v)
	}
	return true
}

func parseColour(field string) (Colour, bool) {
	code, err := strconv.Atoi(field)
	if err != nil {
		return Colour{}, false
	}
	return ColourFromCode(code), true
}

func parsePart(fields []string) Object {
	if len(fields) < 14 {
		return nil
	}
	colour, ok := parseColour(fields[0])
	if !ok {
		return nil
	}
	var v [12]float64
	if !parseFloats(fields[1:13], v[:]) {
		return nil
	}
	name := strings.Join(fields[13:], " ")
	pos := geom.V(v[0], v[1], v[2])
	m := geom.NewMatrix([9]float64{v[3], v[4], v[5], v[6], v[7], v[8], v[9], v[10], v[11]})
	return NewPart(colour, name, pos, m)
}

func parseLinePrimitive(fields []string) Object {
	if len(fields) != 7 {
		return nil
	}
	colour, ok := parseColour(fields[0])
	if !ok {
		return nil
	}
	var v [6]float64
	if !parseFloats(fields[1:], v[:]) {
		return nil
	}
	return NewLine(colour, geom.V(v[0], v[1], v[2]), geom.V(v[3], v[4], v[5]))
}

func parseTriangle(fields []string) Object {
	if len(fields) != 10 {
		return nil
	}
	colour, ok := parseColour(fields[0])
	if !ok {
		return nil
	}
	var v [9]float64
	if !parseFloats(fields[1:], v[:]) {
		return nil
	}
	return NewTriangle(colour,
		geom.V(v[0], v[1], v[2]), geom.V(v[3], v[4], v[5]), geom.V(v[6], v[7], v[8]))
}

func parseQuad(fields []string) Object {
	if len(fields) != 13 {
		return nil
	}
	colour, ok := parseColour(fields[0])
	if !ok {
		return nil
	}
	var v [12]float64
	if !parseFloats(fields[1:], v[:]) {
		return nil
	}
	return NewQuad(colour,
		geom.V(v[0], v[1], v[2]), geom.V(v[3], v[4], v[5]),
		geom.V(v[6], v[7], v[8]), geom.V(v[9], v[10], v[11]))
}
