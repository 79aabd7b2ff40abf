package loader_test

import (
	"context"
	"errors"

	"github.com/rohmanhakim/carpool/internal/fetcher"
	"github.com/stretchr/testify/mock"
)

// fetcherMock is a testify mock for the Fetcher
type fetcherMock struct {
	mock.Mock
}

func (f *fetcherMock) Fetch(ctx context.Context, url string) (fetcher.Response, error) {
	args := f.Called(ctx, url)
	var resp fetcher.Response
	if args.Get(0) != nil {
		resp = args.Get(0).(fetcher.Response)
	}
	return resp, args.Error(1)
}

// failingResponse is a Response whose body cannot be read.
type failingResponse struct {
	err error
}

func (r failingResponse) Text(ctx context.Context) (string, error) {
	return "", r.err
}

var errBodyRead = errors.New("body read failed")

const testPage = `<!doctype html><html lang=en><head><meta charset=utf-8><title>New Title</title></head>` +
	`<body><div class="js-content"><p>new content</p></div></body></html>`
