package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/brickforge/brickstep/pkg/build"
	"github.com/brickforge/brickstep/pkg/cache"
	"github.com/brickforge/brickstep/pkg/ldraw"
	"github.com/brickforge/brickstep/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Run executes the complete parse → unwrap pipeline.
//
// The full result carries every step's geometry and is never cached;
// use SummaryWithCacheInfo when only step metadata is needed.
func (r *Runner) Run(ctx context.Context, source string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		SourceHash: cache.Hash([]byte(source)),
	}

	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx)
	table, err := ldraw.ParseModelTable(source)
	observability.Pipeline().OnParseComplete(ctx, len(table), time.Since(parseStart), err)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Table = table
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.ModelCount = len(table)

	r.Logger.Info("parsed model source",
		"models", len(table),
		"duration", result.Stats.ParseTime)

	unwrapStart := time.Now()
	observability.Pipeline().OnUnwrapStart(ctx, opts.RootName)
	res, err := build.Unwrap(table, opts.RootName, opts.buildOptions())
	if err != nil {
		observability.Pipeline().OnUnwrapComplete(ctx, opts.RootName, 0, time.Since(unwrapStart), err)
		return nil, fmt.Errorf("unwrap: %w", err)
	}
	observability.Pipeline().OnUnwrapComplete(ctx, opts.RootName, len(res.Steps), time.Since(unwrapStart), nil)
	result.Build = res
	result.Stats.UnwrapTime = time.Since(unwrapStart)
	result.Stats.StepCount = len(res.Steps)
	result.Stats.PieceCount = res.PieceCount()

	r.Logger.Info("unwrapped build steps",
		"steps", len(res.Steps),
		"pieces", res.PieceCount(),
		"duration", result.Stats.UnwrapTime)

	for _, w := range res.Warnings {
		r.Logger.Warn("unwrap warning", "detail", w)
	}

	return result, nil
}

// SummaryWithCacheInfo returns the step summary for a source, consulting
// the cache first and reporting whether it hit.
func (r *Runner) SummaryWithCacheInfo(ctx context.Context, source string, opts Options) (*Summary, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	sourceHash := cache.Hash([]byte(source))
	cacheKey := r.Keyer.UnwrapKey(sourceHash, cache.UnwrapKeyOpts{
		RootName: opts.RootName,
		Aspect:   ldraw.FormatVector(opts.InitialAspect),
		Scale:    opts.Scale,
		DPI:      opts.DPI,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Summary
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "unwrap")
				return &cached, true, nil
			}
			// Corrupt entry falls through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "unwrap")
	}

	result, err := r.Run(ctx, source, opts)
	if err != nil {
		return nil, false, err
	}
	summary := Summarize(result, opts.RootName)

	if data, err := json.Marshal(summary); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLUnwrap) == nil {
			observability.Cache().OnCacheSet(ctx, "unwrap", len(data))
		}
	}

	return summary, false, nil
}

// Summary is a convenience wrapper that discards the cache hit info.
func (r *Runner) Summary(ctx context.Context, source string, opts Options) (*Summary, error) {
	summary, _, err := r.SummaryWithCacheInfo(ctx, source, opts)
	return summary, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
