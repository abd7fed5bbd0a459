package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or users can
// share one backend.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "fanchart:v1:")
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

// ChartKey generates a prefixed chart key.
func (k *ScopedKeyer) ChartKey(gedcomHash string, opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(gedcomHash, opts)
}

// IndividualsKey generates a prefixed individuals key.
func (k *ScopedKeyer) IndividualsKey(gedcomHash string) string {
	return k.prefix + k.inner.IndividualsKey(gedcomHash)
}
