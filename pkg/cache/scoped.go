package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several deployments can
// share one redis database without reading each other's results.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "school-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// AssignmentKey returns the prefixed assignment key.
func (k *ScopedKeyer) AssignmentKey(id string) string {
	return k.prefix + k.inner.AssignmentKey(id)
}

// ChartKey returns the prefixed chart key.
func (k *ScopedKeyer) ChartKey(chartID, contentHash string) string {
	return k.prefix + k.inner.ChartKey(chartID, contentHash)
}
