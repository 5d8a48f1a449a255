package ldraw

import (
	"strings"

	"github.com/brickforge/brickstep/pkg/errors"
)

// RootName keys the root model in a ModelTable.
const RootName = "root"

// Model is a named, ordered sequence of Steps: either the root model or one
// reusable sub-model of a multi-part document.
type Model struct {
	Name  string
	Steps []*Step
}

// ModelTable maps sub-model names to their models. The root model is keyed
// RootName. Sub-models are stored flat rather than nested so repeated
// references share one definition and traversal can guard against cycles.
type ModelTable map[string]*Model

// Objs returns all objects of the model across steps, in order.
func (m *Model) Objs() []Object {
	var out []Object
	for _, s := range m.Steps {
		out = append(out, s.Objs...)
	}
	return out
}

// StepCount returns the number of steps in the model.
func (m *Model) StepCount() int { return len(m.Steps) }

// ObjCount returns the number of objects in the model.
func (m *Model) ObjCount() int {
	n := 0
	for _, s := range m.Steps {
		n += len(s.Objs)
	}
	return n
}

// PartCount returns the number of distinct part references in the model.
func (m *Model) PartCount() int {
	keys := map[string]struct{}{}
	for _, s := range m.Steps {
		for k := range s.Parts() {
			keys[k] = struct{}{}
		}
	}
	return len(keys)
}

// SubModelCount returns the number of distinct sub-model references.
func (m *Model) SubModelCount() int {
	names := map[string]struct{}{}
	for _, s := range m.Steps {
		for n := range s.SubModels() {
			names[n] = struct{}{}
		}
	}
	return len(names)
}

// PartQty returns the total count of part references in the model.
func (m *Model) PartQty() int {
	n := 0
	for _, s := range m.Steps {
		n += s.PartQty()
	}
	return n
}

// SubModelQty returns the total count of sub-model references.
func (m *Model) SubModelQty() int {
	n := 0
	for _, s := range m.Steps {
		n += s.SubModelQty()
	}
	return n
}

// ParseModel parses the text of a single model (root or sub-model section)
// into steps. Objects accumulate until a step-boundary directive closes the
// step; the boundary belongs to the step it closes. Trailing objects after
// the last boundary fold into a final step. Unparseable lines are skipped.
func (p *Parser) ParseModel(text, name string) (*Model, error) {
	var steps []*Step
	var objs []Object
	for _, line := range strings.Split(text, "\n") {
		o := p.ParseLine(line)
		if o == nil {
			continue
		}
		objs = append(objs, o)
		if m, ok := o.(*Meta); ok && m.IsStepDelimiter() {
			steps = append(steps, NewStep(objs))
			objs = nil
		}
	}
	if len(objs) > 0 {
		if len(steps) > 0 {
			last := steps[len(steps)-1]
			last.Objs = append(last.Objs, objs...)
		} else {
			steps = append(steps, NewStep(objs))
		}
	}
	if len(steps) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "model %q contains no objects", name)
	}
	if name == "" {
		if m, ok := steps[0].Objs[0].(*Meta); ok {
			name = m.ModelName()
		}
	}
	return &Model{Name: name, Steps: steps}, nil
}

// ParseModelTable splits a multi-part document into its root and named
// sub-model sections and parses each into a Model. A document without FILE
// sections is a bare root model. The first FILE section of an MPD is the
// root; later sections are keyed by their declared name.
func (p *Parser) ParseModelTable(text string) (ModelTable, error) {
	table := ModelTable{}
	sections := splitMPD(text)
	if len(sections) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "document is empty")
	}
	for i, sec := range sections {
		name := sec.name
		if i == 0 {
			name = RootName
		}
		m, err := p.ParseModel(sec.text, name)
		if err != nil {
			return nil, err
		}
		table[name] = m
	}
	return table, nil
}

// ParseModelTable parses a multi-part document with the default grammar.
func ParseModelTable(text string) (ModelTable, error) {
	return NewParser(DefaultGrammar()).ParseModelTable(text)
}

type mpdSection struct {
	name string
	text string
}

// splitMPD splits raw document text on FILE boundaries. Everything before
// the first FILE line belongs to the root only when no FILE sections exist
// at all; an MPD's leading comments outside any section are dropped, the
// way multi-part documents are conventionally read.
func splitMPD(text string) []mpdSection {
	var sections []mpdSection
	var current *mpdSection
	var prefix []string

	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 3 && fields[0] == "0" && strings.EqualFold(fields[1], "FILE") {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &mpdSection{
				name: strings.Join(fields[2:], " "),
				text: line,
			}
			continue
		}
		if current != nil {
			current.text += "\n" + line
		} else {
			prefix = append(prefix, line)
		}
	}
	if current != nil {
		sections = append(sections, *current)
		return sections
	}

	// No FILE sections: the whole document is the root model.
	body := strings.Join(prefix, "\n")
	if strings.TrimSpace(body) == "" {
		return nil
	}
	return []mpdSection{{text: body}}
}
