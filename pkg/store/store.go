// Package store persists unwrap runs so the HTTP service can serve step
// listings without re-unwrapping on every request.
//
// Two backends are provided:
//   - memory: in-memory storage for development and testing
//   - mongo: MongoDB-backed storage for deployments
//
// A Run records one unwrap of one model source: the source fingerprint,
// the root model name, aggregate counts and the per-step summaries. The
// full geometry is not persisted; step content hashes are enough to locate
// rendered artifacts in the cache.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/brickforge/brickstep/pkg/build"
	"github.com/brickforge/brickstep/pkg/ldraw"
)

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = errors.New("run not found")

// StepDoc is the persisted summary of one build step.
type StepDoc struct {
	Idx     int     `bson:"idx" json:"idx"`
	Num     int     `bson:"num" json:"num"`
	Level   int     `bson:"level" json:"level"`
	Qty     int     `bson:"qty" json:"qty"`
	Model   string  `bson:"model" json:"model"`
	Scale   float64 `bson:"scale" json:"scale"`
	Aspect  string  `bson:"aspect" json:"aspect"`
	Hash    string  `bson:"hash" json:"hash"`
	Parts   int     `bson:"parts" json:"parts"`
	Virtual bool    `bson:"virtual" json:"virtual"`
}

// Run is the persisted record of one unwrap run.
type Run struct {
	ID         string    `bson:"_id" json:"id"`
	SourceHash string    `bson:"source_hash" json:"source_hash"`
	RootName   string    `bson:"root_name" json:"root_name"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	Pieces     int       `bson:"pieces" json:"pieces"`
	Elements   int       `bson:"elements" json:"elements"`
	Steps      []StepDoc `bson:"steps" json:"steps"`
}

// BuildRun converts an unwrap result into a persistable run record with a
// fresh identifier.
func BuildRun(res *build.Result, sourceHash, rootName string) *Run {
	run := &Run{
		ID:         uuid.NewString(),
		SourceHash: sourceHash,
		RootName:   rootName,
		CreatedAt:  time.Now().UTC(),
		Pieces:     res.PieceCount(),
		Elements:   res.ElementCount(),
		Steps:      make([]StepDoc, 0, len(res.Steps)),
	}
	for _, s := range res.Steps {
		run.Steps = append(run.Steps, StepDoc{
			Idx:     s.Idx,
			Num:     s.Num,
			Level:   s.Level,
			Qty:     s.Qty,
			Model:   s.ModelName,
			Scale:   s.Scale,
			Aspect:  ldraw.FormatVector(s.Aspect),
			Hash:    s.Hash(),
			Parts:   len(s.StepParts()),
			Virtual: s.Virtual(),
		})
	}
	return run
}

// Store is the interface for run storage backends.
type Store interface {
	// SaveRun persists a run.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by ID.
	// Returns ErrNotFound if no such run exists.
	GetRun(ctx context.Context, id string) (*Run, error)

	// LatestBySourceHash retrieves the most recent run for a source
	// fingerprint. Returns ErrNotFound if the source was never unwrapped.
	LatestBySourceHash(ctx context.Context, sourceHash string) (*Run, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// DeleteRun removes a run.
	DeleteRun(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
