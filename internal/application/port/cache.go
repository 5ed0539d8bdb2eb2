package port

// Cache is a bounded key-value cache. Implementations must be safe for
// concurrent use.
type Cache[K comparable, V any] interface {
	// Get returns the value and true when key is present.
	Get(key K) (V, bool)
	// Set stores value, possibly evicting the least recently used key.
	Set(key K, value V)
	Remove(key K)
	Len() int
}
