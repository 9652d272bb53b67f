package cache

// ScopedKeyer wraps a Keyer with a prefix so that several projects can
// share one backend, typically a Redis instance:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "site-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ScheduleKey generates a prefixed schedule key.
func (k *ScopedKeyer) ScheduleKey(catalogHash string, opts ScheduleKeyOpts) string {
	return k.prefix + k.inner.ScheduleKey(catalogHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dotHash, opts)
}
