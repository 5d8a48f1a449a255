package cache

// ScopedKeyer wraps a Keyer with a prefix so distinct part libraries or
// service tenants get separate cache namespaces. Two libraries can contain
// different files under the same name; scoping the keys keeps their
// entries from colliding.
//
// Example usage:
//
//	// Keys scoped to one library snapshot
//	libKeyer := NewScopedKeyer(NewDefaultKeyer(), "lib:2024-01:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SourceKey generates a prefixed key for raw file content.
func (k *ScopedKeyer) SourceKey(namespace, name string) string {
	return k.prefix + k.inner.SourceKey(namespace, name)
}

// UnwrapKey generates a prefixed key for an unwrap result.
func (k *ScopedKeyer) UnwrapKey(sourceHash string, opts UnwrapKeyOpts) string {
	return k.prefix + k.inner.UnwrapKey(sourceHash, opts)
}

// StepKey generates a prefixed key for a rendered step artifact.
func (k *ScopedKeyer) StepKey(stepHash string, opts StepKeyOpts) string {
	return k.prefix + k.inner.StepKey(stepHash, opts)
}
