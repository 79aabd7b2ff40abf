package carpool

// Route describes a navigation the host has decided to perform.
type Route struct {
	// Pathname of the target page, relative to the configured origin
	Pathname string
	// IsInitial marks the page the host loaded natively, before any
	// partial navigation happened
	IsInitial bool
}

// RouteData is the outcome of resolving a Route.
type RouteData struct {
	url     string
	html    string
	initial bool
}

// URL is the absolute URL the route resolved to; it is also the cache key.
func (r RouteData) URL() string {
	return r.url
}

// HTML is the page markup, empty for the initial route.
func (r RouteData) HTML() string {
	return r.html
}

// HasContent reports whether there is markup to swap in. The initial route
// never has: that page is already on screen.
func (r RouteData) HasContent() bool {
	return !r.initial
}
