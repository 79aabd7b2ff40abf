package metadata

import "time"

/*
Events Collected
- Cache lookups (hit or miss)
- Network fetches (duration and body size)
- Snapshots of the live page
- Content swaps

Events are observational only. No component may read them back to decide
whether to fetch, cache or swap, and errors are never recorded here: they
are returned to the caller, who owns presentation of failures.
*/

// EventKind names a recorded event. Stable values, safe to index logs by.
type EventKind string

const (
	EventCacheLookup EventKind = "cache_lookup"
	EventFetch       EventKind = "fetch"
	EventSnapshot    EventKind = "snapshot"
	EventSwap        EventKind = "swap"
)

// Event is a single recorded observation.
type Event struct {
	Kind     EventKind
	URL      string
	Hit      bool
	Duration time.Duration
	SizeByte int
	Title    string
	Selector string
}

type AttributeKey string

const (
	AttrURL      AttributeKey = "url"
	AttrHit      AttributeKey = "hit"
	AttrDuration AttributeKey = "duration"
	AttrSize     AttributeKey = "size_byte"
	AttrTitle    AttributeKey = "title"
	AttrSelector AttributeKey = "selector"
)
