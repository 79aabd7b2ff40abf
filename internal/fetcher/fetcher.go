package fetcher

import (
	"context"
)

// Response is the result of a fetch whose body has not necessarily been read.
type Response interface {
	// Text returns the full response body as a string.
	Text(ctx context.Context) (string, error)
}

// Fetcher is the network transport used to load pages that are not cached.
// Implementations must not retry on their own behalf.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Response, error)
}

// FetchFunc adapts a plain function to the Fetcher interface.
type FetchFunc func(ctx context.Context, url string) (Response, error)

func (f FetchFunc) Fetch(ctx context.Context, url string) (Response, error) {
	return f(ctx, url)
}
