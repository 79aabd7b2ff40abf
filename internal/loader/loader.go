package loader

import (
	"context"
	"time"

	"github.com/rohmanhakim/carpool/internal/fetcher"
	"github.com/rohmanhakim/carpool/internal/metadata"
	"github.com/rohmanhakim/carpool/internal/pagecache"
	"golang.org/x/sync/singleflight"
)

/*
Responsibilities

- Resolve a URL to page HTML
- Prefer the cache over the network
- Populate the cache after a successful fetch

Load Semantics

- A cached URL never reaches the fetcher
- A missing fetcher is reported before anything else happens
- Fetch and body errors are returned as they are: no wrapping, no retry
- With coalescing on, concurrent loads of one uncached URL share one
  fetch; with it off, each load fetches and the last write wins
- A shared fetch outlives any single caller: a caller's context only ends
  its own wait, never the fetch the others are waiting on
*/

type Loader struct {
	metadataSink metadata.MetadataSink
	cache        pagecache.Cache
	fetcher      fetcher.Fetcher
	coalesce     bool
	fetchTimeout time.Duration
	inFlight     singleflight.Group
}

func NewLoader(
	metadataSink metadata.MetadataSink,
	cache pagecache.Cache,
	pageFetcher fetcher.Fetcher,
	coalesce bool,
) *Loader {
	return &Loader{
		metadataSink: metadataSink,
		cache:        cache,
		fetcher:      pageFetcher,
		coalesce:     coalesce,
	}
}

// WithFetchTimeout bounds every shared fetch. Zero leaves it unbounded.
func (l *Loader) WithFetchTimeout(timeout time.Duration) *Loader {
	l.fetchTimeout = timeout
	return l
}

func (l *Loader) Load(ctx context.Context, url string) (string, error) {
	if html, ok := l.cache.Get(url); ok {
		l.metadataSink.RecordCacheLookup(url, true)
		return html, nil
	}
	l.metadataSink.RecordCacheLookup(url, false)

	if l.fetcher == nil {
		return "", &ConfigurationError{
			Message: "cannot load " + url + " without a fetcher",
			Cause:   ErrCauseFetcherMissing,
		}
	}

	if !l.coalesce {
		return l.fetchAndStore(ctx, url)
	}

	shared := context.WithoutCancel(ctx)
	ch := l.inFlight.DoChan(url, func() (any, error) {
		// a flight that finished between the lookup above and this one
		// has already stored the page
		if html, ok := l.cache.Get(url); ok {
			return html, nil
		}
		fetchCtx := shared
		if l.fetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(shared, l.fetchTimeout)
			defer cancel()
		}
		return l.fetchAndStore(fetchCtx, url)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (l *Loader) fetchAndStore(ctx context.Context, url string) (string, error) {
	startTime := time.Now()

	resp, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	body, err := resp.Text(ctx)
	if err != nil {
		return "", err
	}

	l.cache.Put(url, body)
	l.metadataSink.RecordFetch(url, time.Since(startTime), len(body))
	return body, nil
}
