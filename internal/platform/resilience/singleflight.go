package resilience

import "golang.org/x/sync/singleflight"

// Group is a typed singleflight.Group: concurrent loads of one key share a
// single call.
type Group[V any] struct {
	inner singleflight.Group
}

// Do runs fn once per in-flight key. shared reports whether the result was
// handed to more than one caller.
func (g *Group[V]) Do(key string, fn func() (V, error)) (V, error, bool) {
	raw, err, shared := g.inner.Do(key, func() (any, error) {
		return fn()
	})
	value, _ := raw.(V)
	return value, err, shared
}

// Forget drops key so the next Do starts a fresh call.
func (g *Group[V]) Forget(key string) {
	g.inner.Forget(key)
}
