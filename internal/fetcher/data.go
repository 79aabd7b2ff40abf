package fetcher

import "context"

// TextResponse is a Response whose body is already in memory.
type TextResponse struct {
	body       string
	statusCode int
	headers    map[string]string
}

// NewTextResponse wraps an in-memory body. Stubs and tests use it to stand in
// for a network response.
func NewTextResponse(body string) TextResponse {
	return TextResponse{
		body:       body,
		statusCode: 200,
		headers:    map[string]string{},
	}
}

func (r TextResponse) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return r.body, nil
}

func (r TextResponse) Code() int {
	return r.statusCode
}

func (r TextResponse) SizeByte() uint64 {
	return uint64(len(r.body))
}

func (r TextResponse) Headers() map[string]string {
	return r.headers
}
