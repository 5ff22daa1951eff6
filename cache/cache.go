/*
Package cache provides optional memoization for plan previews.

Plan generation is a pure function, so identical requests against an
unchanged holiday calendar always produce identical plans. The API layer
exploits that by caching serialized preview responses keyed by a request
hash. The interface is deliberately tiny: a string key-value store with a
presence flag, backed by Redis in production and an in-process map in tests
and single-node deployments.
*/
package cache

// Cache is a minimal string key-value store for memoized responses.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
