package cache

import "time"

// Default TTLs per artifact class. Source files change rarely but the
// library they come from can be updated in place, so they expire fastest.
// Unwrap results and rendered steps are content-addressed and only grow
// stale when the code that produces them changes.
const (
	// TTLSource is the lifetime of cached part and model file content.
	TTLSource = 24 * time.Hour

	// TTLUnwrap is the lifetime of cached unwrap summaries.
	TTLUnwrap = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered step artifacts.
	TTLArtifact = 30 * 24 * time.Hour
)
