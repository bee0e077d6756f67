package cache

// ScopedKeyer prefixes every key of an inner Keyer. The CLI scopes keys by
// build version so a new release never reads layouts of an older one.
//
//	keyer := cache.NewScopedKeyer(nil, "v1.4.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(dayHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(dayHash, opts)
}

// GraphKey implements Keyer.
func (k *ScopedKeyer) GraphKey(dayHash string, format string) string {
	return k.prefix + k.inner.GraphKey(dayHash, format)
}
