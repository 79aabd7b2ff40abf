package pagecache

// Cache defines the port interface for page memoization.
// Keys are absolute, origin-qualified URLs; values are the full HTML text
// of the page, either fetched from the network or serialized from the live
// document.
//
// There is no eviction or expiration: an entry lives as long as the
// instance that owns the cache.
type Cache interface {
	// Get retrieves the page stored under url.
	// Returns the HTML text and true if found, or empty string and false if not found.
	// This method is read-only and should not modify cache state.
	Get(url string) (string, bool)

	// Put stores html under url, overwriting any existing entry.
	Put(url string, html string)
}

// Inspector exposes the full cache content for introspection.
type Inspector interface {
	Dump() map[string]string
}
