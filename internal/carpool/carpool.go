package carpool

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/carpool/internal/config"
	"github.com/rohmanhakim/carpool/internal/dom"
	"github.com/rohmanhakim/carpool/internal/fetcher"
	"github.com/rohmanhakim/carpool/internal/loader"
	"github.com/rohmanhakim/carpool/internal/metadata"
	"github.com/rohmanhakim/carpool/internal/pagecache"
	"github.com/rohmanhakim/carpool/pkg/urlutil"
)

/*
Carpool is one partial-navigation instance bound to one live document.

Flow

- The host resolves a Route
- The initial route snapshots the live document into the cache
- Any other route is loaded from the cache, or fetched and then cached
- The host swaps the resulting HTML into the live document when it is ready

Each instance owns its cache, so instances never share pages.
*/
type Carpool struct {
	cfg          config.Config
	document     *dom.Document
	cache        *pagecache.MemoryCache
	loader       *loader.Loader
	swapper      dom.Swapper
	metadataSink metadata.MetadataSink
}

// New builds an instance. pageFetcher may be nil; loads that miss the cache
// then fail with a *loader.ConfigurationError.
func New(
	cfg config.Config,
	document *dom.Document,
	pageFetcher fetcher.Fetcher,
	metadataSink metadata.MetadataSink,
) *Carpool {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	cache := pagecache.NewMemoryCache()
	return &Carpool{
		cfg:          cfg,
		document:     document,
		cache:        cache,
		loader:       loader.NewLoader(metadataSink, cache, pageFetcher, cfg.CoalesceInFlight()).
			WithFetchTimeout(cfg.Timeout()),
		swapper:      dom.NewSwapper(metadataSink, cfg.ContentSelector()),
		metadataSink: metadataSink,
	}
}

// ResolveRoute turns a route into page HTML.
func (c *Carpool) ResolveRoute(ctx context.Context, route Route) (RouteData, error) {
	url := c.URLFor(route.Pathname)

	if route.IsInitial {
		if err := c.SnapshotCurrentPage(url); err != nil {
			return RouteData{}, err
		}
		return RouteData{url: url, initial: true}, nil
	}

	html, err := c.Load(ctx, url)
	if err != nil {
		return RouteData{}, err
	}
	return RouteData{url: url, html: html}, nil
}

// Load resolves an absolute URL, from the cache when possible.
func (c *Carpool) Load(ctx context.Context, url string) (string, error) {
	return c.loader.Load(ctx, url)
}

// Swap puts the title and content region of html into the live document.
// A nil target means the live element matching the content selector.
func (c *Carpool) Swap(html string, target *goquery.Selection) error {
	return c.swapper.Swap(c.document, html, target)
}

// SnapshotCurrentPage stores the live document's current markup under url.
func (c *Carpool) SnapshotCurrentPage(url string) error {
	markup, err := c.document.HTML()
	if err != nil {
		return err
	}
	c.cache.Put(url, markup)
	c.metadataSink.RecordSnapshot(url, len(markup))
	return nil
}

// InspectCache returns a copy of every cached page keyed by URL.
func (c *Carpool) InspectCache() map[string]string {
	return c.cache.Dump()
}

// URLFor builds the absolute URL, and cache key, of a route pathname.
func (c *Carpool) URLFor(pathname string) string {
	return urlutil.JoinOrigin(c.cfg.Origin(), pathname)
}

func (c *Carpool) Document() *dom.Document {
	return c.document
}

func (c *Carpool) Config() config.Config {
	return c.cfg
}
