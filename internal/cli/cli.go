// Package cli implements the brickstep command-line interface.
//
// This package provides commands for inspecting LDraw models, unwrapping
// them into linear build steps, exporting flattened models and serving the
// unwrap pipeline over HTTP. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - info: Show the structure of a model file
//   - steps: Unwrap a model into its build step sequence
//   - bom: Print the bill of materials
//   - write: Export the flattened single-model file
//   - render: Draw the sub-model hierarchy with Graphviz
//   - serve: Run the HTTP unwrap service
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brickforge/brickstep/internal/config"
	"github.com/brickforge/brickstep/pkg/cache"
	"github.com/brickforge/brickstep/pkg/geom"
	"github.com/brickforge/brickstep/pkg/httputil"
	"github.com/brickforge/brickstep/pkg/library"
	"github.com/brickforge/brickstep/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "brickstep"

// cacheDir returns the cache directory using XDG standard (~/.cache/brickstep/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// newCacheBackend builds the configured cache backend. Failures to set up
// a backend degrade to the null cache instead of failing the command.
func newCacheBackend(ctx context.Context, cfg *config.Config, noCache bool) cache.Cache {
	if noCache || cfg.Cache.Backend == "none" {
		return cache.NewNullCache()
	}
	if cfg.Cache.Backend == "redis" && cfg.Cache.RedisAddr != "" {
		if c, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr); err == nil {
			return c
		}
		return cache.NewNullCache()
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache()
		}
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}

// loadSource reads model text from a file path, an http(s) URL, or stdin
// when path is "-". Remote sources go through the cached fetcher.
func loadSource(ctx context.Context, cfg *config.Config, path string) (string, error) {
	if httputil.IsURL(path) {
		fetcher := httputil.NewFetcher(newCacheBackend(ctx, cfg, false))
		fetcher.TTL = cfg.Cache.ParseTTL(cache.TTLSource)
		defer fetcher.Cache.Close()
		return fetcher.FetchText(ctx, path)
	}
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read model file: %w", err)
	}
	return string(data), nil
}

// unwrapFlags holds the command-line flags shared by every command that
// runs the unwrap pipeline.
type unwrapFlags struct {
	root    string    // sub-model to unwrap (default: document root)
	aspect  []float64 // initial view rotation x,y,z
	scale   float64
	dpi     int
	libDirs []string // LDraw library roots for part extents
	noCache bool
	refresh bool
}

// register adds the shared unwrap flags to cmd.
func (f *unwrapFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.root, "root", "", "sub-model to unwrap (default: document root)")
	cmd.Flags().Float64SliceVar(&f.aspect, "aspect", nil, "initial view rotation as x,y,z degrees")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "initial view scale")
	cmd.Flags().IntVar(&f.dpi, "dpi", 0, "render resolution")
	cmd.Flags().StringSliceVar(&f.libDirs, "lib", nil, "LDraw library directory (repeatable)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass cached results")
}

// pipelineOptions merges flags over config values into pipeline options.
func (f *unwrapFlags) pipelineOptions(cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{
		RootName: f.root,
		InitialAspect: geom.V(
			cfg.View.Aspect[0], cfg.View.Aspect[1], cfg.View.Aspect[2]),
		Scale:   cfg.View.Scale,
		DPI:     cfg.View.DPI,
		Refresh: f.refresh,
	}
	if len(f.aspect) == 3 {
		opts.InitialAspect = geom.V(f.aspect[0], f.aspect[1], f.aspect[2])
	}
	if f.scale != 0 {
		opts.Scale = f.scale
	}
	if f.dpi != 0 {
		opts.DPI = f.dpi
	}

	dirs := cfg.Library.Dirs
	if len(f.libDirs) > 0 {
		dirs = f.libDirs
	}
	if len(dirs) > 0 {
		opts.Resolver = library.New(dirs...)
	}
	return opts
}

// newRunner creates a pipeline runner for CLI use.
func newRunner(ctx context.Context, cfg *config.Config, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(newCacheBackend(ctx, cfg, noCache), nil, loggerFromContext(ctx))
}
