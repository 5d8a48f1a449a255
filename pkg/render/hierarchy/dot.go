// Package hierarchy renders the sub-model reference structure of a
// multi-part document as a Graphviz diagram.
package hierarchy

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/brickforge/brickstep/pkg/ldraw"
	"github.com/brickforge/brickstep/pkg/render"
)

// Options configures hierarchy diagram rendering.
type Options struct {
	// Detailed includes step and part counts in node labels.
	// When false, only the model name is shown.
	Detailed bool
}

// ToDOT converts a model table to Graphviz DOT format, walking model
// references from the root. Each reachable model becomes a node; an edge
// carries the total placement quantity across the referencing model's
// steps. References to models missing from the table are rendered with
// dashed outlines and grey fill.
//
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF],
// or [RenderPNG].
func ToDOT(table ldraw.ModelTable, rootName string, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	type edge struct {
		from, to string
		qty      int
	}
	var nodes []string
	var edges []edge
	seen := map[string]bool{}

	var walk func(name string)
	walk = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		nodes = append(nodes, name)
		m, ok := table[name]
		if !ok {
			return
		}
		refs := map[string]int{}
		for _, s := range m.Steps {
			for sub, qty := range s.SubModels() {
				refs[sub] += qty
			}
		}
		subs := make([]string, 0, len(refs))
		for sub := range refs {
			subs = append(subs, sub)
		}
		sort.Strings(subs)
		for _, sub := range subs {
			edges = append(edges, edge{from: name, to: sub, qty: refs[sub]})
			walk(sub)
		}
	}
	walk(rootName)

	for _, name := range nodes {
		label := fmtLabel(table, name, opts.Detailed)
		attrs := fmtAttrs(table, name, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", name, attrs)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		if e.qty > 1 {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"x%d\"];\n", e.from, e.to, e.qty)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(table ldraw.ModelTable, name string, detailed bool) string {
	m, ok := table[name]
	if !ok || !detailed {
		return name
	}
	return fmt.Sprintf("%s\nsteps: %d\nparts: %d", name, m.StepCount(), m.PartQty())
}

func fmtAttrs(table ldraw.ModelTable, name, label string) string {
	attrs := fmt.Sprintf("label=%q", label)
	if _, ok := table[name]; !ok {
		attrs += ", style=\"rounded,filled,dashed\", fillcolor=lightgrey, fontcolor=black"
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
