// Package cache provides pluggable caching for expensive unwrap and
// render work.
//
// Two backends are provided: a file cache for CLI usage (persists between
// invocations under the user cache directory) and a Redis cache for the
// HTTP service. A null cache disables caching entirely.
//
// Keys are produced through the Keyer interface so that every component
// agrees on what identifies a cached artifact: an unwrap run is keyed by
// the hash of its source text plus the view options, a rendered step by
// the step's own content hash.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
//
// Get reports a miss with (nil, false, nil); errors are reserved for
// backend failures. A ttl of zero on Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// UnwrapKeyOpts are the options that change the outcome of an unwrap run
// and therefore participate in its cache key.
type UnwrapKeyOpts struct {
	RootName string
	Aspect   string
	Scale    float64
	DPI      int
}

// StepKeyOpts identify a rendered artifact derived from a single step.
type StepKeyOpts struct {
	Format string
	Suffix string
}

// Keyer generates cache keys for the artifacts brickstep produces.
type Keyer interface {
	// SourceKey keys raw part or model file content by name.
	SourceKey(namespace, name string) string

	// UnwrapKey keys the serialized result of an unwrap run.
	UnwrapKey(sourceHash string, opts UnwrapKeyOpts) string

	// StepKey keys a rendered artifact for a step content hash.
	StepKey(stepHash string, opts StepKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SourceKey generates a key for raw file content.
func (k *DefaultKeyer) SourceKey(namespace, name string) string {
	return "source:" + namespace + ":" + name
}

// UnwrapKey generates a key for an unwrap result.
func (k *DefaultKeyer) UnwrapKey(sourceHash string, opts UnwrapKeyOpts) string {
	return hashKey("unwrap", sourceHash, opts)
}

// StepKey generates a key for a rendered step artifact.
func (k *DefaultKeyer) StepKey(stepHash string, opts StepKeyOpts) string {
	return hashKey("step", stepHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
