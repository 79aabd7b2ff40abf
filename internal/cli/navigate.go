package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/rohmanhakim/carpool/internal/carpool"
	"github.com/rohmanhakim/carpool/internal/config"
	"github.com/rohmanhakim/carpool/internal/dom"
	"github.com/rohmanhakim/carpool/internal/fetcher"
	"github.com/rohmanhakim/carpool/internal/metadata"
	"github.com/rohmanhakim/carpool/pkg/hashutil"
	"github.com/rohmanhakim/carpool/pkg/urlutil"
	"github.com/rs/zerolog"
)

type NavigateParam struct {
	Config      config.Config
	InitialPath string
	Paths       []string
	Output      io.Writer
	Logger      zerolog.Logger
	// Fetcher overrides the HTTP transport built from Config
	Fetcher fetcher.Fetcher
}

// RunNavigate plays the part of the host application: it renders the initial
// page, then resolves and swaps each path in order, and finally writes the
// resulting document to Output.
func RunNavigate(ctx context.Context, param NavigateParam) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := param.Logger

	pageFetcher := param.Fetcher
	if pageFetcher == nil {
		htmlFetcher := fetcher.NewHtmlFetcher()
		htmlFetcher.Init(&http.Client{Timeout: param.Config.Timeout()}, param.Config.UserAgent())
		pageFetcher = &htmlFetcher
	}

	// the host renders the first page natively, outside carpool
	initialURL := urlutil.JoinOrigin(param.Config.Origin(), param.InitialPath)
	live, err := renderInitialPage(ctx, pageFetcher, initialURL)
	if err != nil {
		return err
	}
	logger.Info().Str("url", initialURL).Str("title", live.Title()).Msg("Initial page loaded")

	cp := carpool.New(param.Config, live, pageFetcher, metadata.NewLogRecorder(logger))

	if _, err := cp.ResolveRoute(ctx, carpool.Route{Pathname: param.InitialPath, IsInitial: true}); err != nil {
		return err
	}

	for _, path := range param.Paths {
		data, err := cp.ResolveRoute(ctx, carpool.Route{Pathname: path})
		if err != nil {
			return err
		}
		if err := cp.Swap(data.HTML(), nil); err != nil {
			return err
		}
		logger.Info().Str("url", data.URL()).Str("title", live.Title()).Msg("Navigated")
	}

	logCacheInventory(logger, cp.InspectCache())

	markup, err := live.HTML()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(param.Output, markup); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func renderInitialPage(ctx context.Context, pageFetcher fetcher.Fetcher, url string) (*dom.Document, error) {
	resp, err := pageFetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	body, err := resp.Text(ctx)
	if err != nil {
		return nil, err
	}
	return dom.Parse(body)
}

func logCacheInventory(logger zerolog.Logger, entries map[string]string) {
	urls := make([]string, 0, len(entries))
	for url := range entries {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	for _, url := range urls {
		logger.Info().
			Str("url", url).
			Int("size_byte", len(entries[url])).
			Str("blake3", hashutil.ShortDigest(entries[url], 16)).
			Msg("Cached page")
	}
}
