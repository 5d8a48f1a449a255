// Package render provides visual outputs derived from parsed models.
//
// # Overview
//
// This package contains:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Sub-model hierarchy diagrams (in [hierarchy] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := hierarchy.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Hierarchy Diagrams
//
// The [hierarchy] subpackage renders the sub-model reference structure of
// a multi-part document as a directed graph using Graphviz. Each model is
// a box; edges carry the placement quantity.
//
//	dot := hierarchy.ToDOT(table, ldraw.RootName, hierarchy.Options{})
//	svg, err := hierarchy.RenderSVG(dot)
//
// [hierarchy]: github.com/brickforge/brickstep/pkg/render/hierarchy
package render
