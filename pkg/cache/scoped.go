package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "stitchkit:")
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

// RenderKey generates a prefixed key for rendered images.
func (k *ScopedKeyer) RenderKey(patternHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(patternHash, opts)
}

// PatternKey generates a prefixed key for decoded patterns.
func (k *ScopedKeyer) PatternKey(format, dataHash string) string {
	return k.prefix + k.inner.PatternKey(format, dataHash)
}
