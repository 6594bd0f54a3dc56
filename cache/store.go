// Package cache is the per-run memoization store. Keys live for the whole
// process; there is no expiry. The underlying store is concurrency safe, so
// callers may resolve from multiple goroutines without extra locking.
package cache

import (
	gcache "github.com/Code-Hex/go-generics-cache"
)

var store = gcache.New[string, any]()

func Get[T any](key string) *T {
	v, ok := store.Get(key)
	if !ok {
		return nil
	}
	return v.(*T)
}

func Set[T any](key string, value *T) {
	store.Set(key, value)
}

// GetOrSet returns the cached value for key, invoking factory on a miss.
// Factory errors are returned as-is and nothing is cached, so a later call
// retries.
func GetOrSet[T any](key string, factory func() (*T, error)) (*T, error) {
	v := Get[T](key)
	if v != nil {
		return v, nil
	}
	v, err := factory()
	if err != nil {
		return nil, err
	}
	Set(key, v)
	return v, nil
}
