// Package pipeline provides the parse → unwrap pipeline shared by the
// CLI and the HTTP service.
//
// A pipeline run takes raw LDraw source text, parses it into a model
// table and unwraps the root model into linear build steps. Centralizing
// this here keeps option defaults, caching and timing consistent across
// every entry point.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{RootName: "root.ldr"}
//	result, err := runner.Run(ctx, source, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, step := range result.Build.Steps {
//	    fmt.Println(step)
//	}
//
// Summaries (step metadata without geometry) are cached by source hash:
//
//	summary, hit, err := runner.SummaryWithCacheInfo(ctx, source, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/brickforge/brickstep/pkg/build"
	"github.com/brickforge/brickstep/pkg/geom"
	"github.com/brickforge/brickstep/pkg/ldraw"
)

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// RootName selects the model to unwrap. Defaults to the root name
	// assigned by the parser.
	RootName string `json:"root_name,omitempty"`

	// InitialAspect is the view rotation in force before the first step.
	InitialAspect geom.Vector `json:"initial_aspect,omitempty"`

	// Scale is the initial view scale (default 1).
	Scale float64 `json:"scale,omitempty"`

	// DPI is the render resolution (default build.DefaultDPI).
	DPI int `json:"dpi,omitempty"`

	// Refresh bypasses the summary cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger        `json:"-"`
	Resolver build.PartResolver `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults applies defaults for the full pipeline.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.RootName == "" {
		o.RootName = ldraw.RootName
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.DPI == 0 {
		o.DPI = build.DefaultDPI
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// buildOptions converts pipeline options into unwrap options.
func (o *Options) buildOptions() build.Options {
	return build.Options{
		InitialAspect: o.InitialAspect,
		Scale:         o.Scale,
		DPI:           o.DPI,
		Resolver:      o.Resolver,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Table is the parsed model table.
	Table ldraw.ModelTable

	// Build is the unwrapped step sequence.
	Build *build.Result

	// SourceHash is the content hash of the input text.
	SourceHash string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ModelCount int
	StepCount  int
	PieceCount int
	ParseTime  time.Duration
	UnwrapTime time.Duration
}

// StepSummary is the geometry-free description of one step, suitable for
// caching and API responses.
type StepSummary struct {
	Idx     int     `json:"idx"`
	Num     int     `json:"num"`
	Level   int     `json:"level"`
	Qty     int     `json:"qty"`
	Model   string  `json:"model"`
	Scale   float64 `json:"scale"`
	Aspect  string  `json:"aspect"`
	Hash    string  `json:"hash"`
	Parts   int     `json:"parts"`
	Virtual bool    `json:"virtual"`
}

// Summary describes an unwrap run without its geometry.
type Summary struct {
	SourceHash string         `json:"source_hash"`
	RootName   string         `json:"root_name"`
	Pieces     int            `json:"pieces"`
	Elements   int            `json:"elements"`
	BOM        map[string]int `json:"bom"`
	Steps      []StepSummary  `json:"steps"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// Summarize strips a pipeline result down to its cacheable summary.
func Summarize(res *Result, rootName string) *Summary {
	s := &Summary{
		SourceHash: res.SourceHash,
		RootName:   rootName,
		Pieces:     res.Build.PieceCount(),
		Elements:   res.Build.ElementCount(),
		BOM:        res.Build.BOM(),
		Steps:      make([]StepSummary, 0, len(res.Build.Steps)),
		Warnings:   res.Build.Warnings,
	}
	for _, step := range res.Build.Steps {
		s.Steps = append(s.Steps, StepSummary{
			Idx:     step.Idx,
			Num:     step.Num,
			Level:   step.Level,
			Qty:     step.Qty,
			Model:   step.ModelName,
			Scale:   step.Scale,
			Aspect:  ldraw.FormatVector(step.Aspect),
			Hash:    step.Hash(),
			Parts:   len(step.StepParts()),
			Virtual: step.Virtual(),
		})
	}
	return s
}
