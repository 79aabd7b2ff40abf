package metadata

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type MetadataSink interface {
	RecordCacheLookup(url string, hit bool)
	RecordFetch(url string, duration time.Duration, sizeByte int)
	RecordSnapshot(url string, sizeByte int)
	RecordSwap(title string, contentSelector string)
}

// LogRecorder writes every event as a structured debug line.
// It imposes no ordering beyond the order calls arrive in.
type LogRecorder struct {
	log zerolog.Logger
}

func NewLogRecorder(logger zerolog.Logger) *LogRecorder {
	return &LogRecorder{
		log: logger.With().Str("component", "carpool").Logger(),
	}
}

func (r *LogRecorder) RecordCacheLookup(url string, hit bool) {
	r.log.Debug().
		Str("event", string(EventCacheLookup)).
		Str(string(AttrURL), url).
		Bool(string(AttrHit), hit).
		Msg("cache lookup")
}

func (r *LogRecorder) RecordFetch(url string, duration time.Duration, sizeByte int) {
	r.log.Debug().
		Str("event", string(EventFetch)).
		Str(string(AttrURL), url).
		Dur(string(AttrDuration), duration).
		Int(string(AttrSize), sizeByte).
		Msg("page fetched")
}

func (r *LogRecorder) RecordSnapshot(url string, sizeByte int) {
	r.log.Debug().
		Str("event", string(EventSnapshot)).
		Str(string(AttrURL), url).
		Int(string(AttrSize), sizeByte).
		Msg("current page cached")
}

func (r *LogRecorder) RecordSwap(title string, contentSelector string) {
	r.log.Debug().
		Str("event", string(EventSwap)).
		Str(string(AttrTitle), title).
		Str(string(AttrSelector), contentSelector).
		Msg("content swapped")
}

// MemoryRecorder keeps events in memory in arrival order.
// Tests use it to assert on what the pipeline observed.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (m *MemoryRecorder) RecordCacheLookup(url string, hit bool) {
	m.append(Event{Kind: EventCacheLookup, URL: url, Hit: hit})
}

func (m *MemoryRecorder) RecordFetch(url string, duration time.Duration, sizeByte int) {
	m.append(Event{Kind: EventFetch, URL: url, Duration: duration, SizeByte: sizeByte})
}

func (m *MemoryRecorder) RecordSnapshot(url string, sizeByte int) {
	m.append(Event{Kind: EventSnapshot, URL: url, SizeByte: sizeByte})
}

func (m *MemoryRecorder) RecordSwap(title string, contentSelector string) {
	m.append(Event{Kind: EventSwap, Title: title, Selector: contentSelector})
}

// Events returns a copy of the recorded events.
func (m *MemoryRecorder) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Count returns how many events of the given kind were recorded.
func (m *MemoryRecorder) Count(kind EventKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, e := range m.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (m *MemoryRecorder) append(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, e)
}

// NoopSink, struct that implements metadata.MetadataSink but does nothing.
// Hosts (or tests) decide whether to inject a recorder or NoopSink.
type NoopSink struct{}

func (n *NoopSink) RecordCacheLookup(url string, hit bool) {}

func (n *NoopSink) RecordFetch(url string, duration time.Duration, sizeByte int) {}

func (n *NoopSink) RecordSnapshot(url string, sizeByte int) {}

func (n *NoopSink) RecordSwap(title string, contentSelector string) {}
