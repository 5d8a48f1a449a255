// Package pkg provides the core libraries for Brickstep model unwrapping.
//
// # Overview
//
// Brickstep reads LDraw model files and flattens their nested sub-models
// into the linear sequence of build steps an instruction booklet would
// show. The pkg directory is organized into four main areas:
//
//  1. [ldraw] - Parsing (line types, steps, meta commands, MPD documents)
//  2. [build] - The unwrap engine (flattening, step ordering, view state)
//  3. [render] - Output (hierarchy diagrams, format conversion)
//  4. [pipeline] - Orchestration (parse → unwrap) shared by CLI and HTTP
//
// # Architecture
//
// The typical data flow through Brickstep:
//
//	LDraw source text (.ldr / .mpd)
//	         ↓
//	    [ldraw] package (parse into a model table)
//	         ↓
//	    [build] package (unwrap into linear build steps)
//	         ↓
//	    [pipeline] package (summaries, caching, export)
//	         ↓
//	    step listings, BOM, flattened files, diagrams
//
// # Quick Start
//
// Parse a model and unwrap it:
//
//	import (
//	    "github.com/brickforge/brickstep/pkg/build"
//	    "github.com/brickforge/brickstep/pkg/ldraw"
//	)
//
//	table, _ := ldraw.ParseModelTable(source)
//	res, _ := build.Unwrap(table, ldraw.RootName, build.Options{})
//	for _, step := range res.Steps {
//	    fmt.Println(step)
//	}
//
// # Main Packages
//
// [ldraw] - LDraw text parsing: line types 0-5, STEP and ROTSTEP handling,
// meta commands, and multi-part (MPD) document splitting.
//
// [geom] - Vectors, 3x3 matrices and bounding boxes used by the parser and
// the unwrap engine.
//
// [build] - The unwrap engine. Expands nested sub-models in place, numbers
// and levels the resulting steps, tracks view rotations and scale, and
// computes part lists and content hashes per step.
//
// [library] - LDraw part library access for part extents, with recursive
// bounding box resolution across primitive references.
//
// [render] - SVG to PDF/PNG conversion; [render/hierarchy] draws the
// sub-model reference structure as a Graphviz diagram.
//
// [pipeline] - The parse → unwrap pipeline with summary caching, used by
// both the CLI and the HTTP service.
//
// [cache] - Pluggable caching (file, Redis, null) with a shared key scheme.
//
// [store] - Persisted unwrap runs (memory, MongoDB) for the HTTP service.
//
// [httputil] - Cached HTTP fetching of remote model sources.
//
// [errors] - Coded errors shared across packages.
//
// [observability] - Optional hooks for metrics and tracing backends.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/build/...      # Specific package
//	go test -run Example         # Examples only
package pkg
