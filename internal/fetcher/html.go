package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

/*
Responsibilities

- Perform HTTP GET requests for pages
- Apply headers
- Classify responses

Fetch Semantics

- Only successful HTML responses are returned
- Non-HTML content is rejected
- Redirects are followed by the http.Client; leftover 3xx are errors
- No retries

The fetcher never parses content; it only returns the body.
*/

type HtmlFetcher struct {
	httpClient *http.Client
	userAgent  string
}

func NewHtmlFetcher() HtmlFetcher {
	return HtmlFetcher{
		httpClient: &http.Client{},
	}
}

// Init replaces the HTTP client and user agent. A nil client keeps the current one.
func (h *HtmlFetcher) Init(httpClient *http.Client, userAgent string) {
	if httpClient != nil {
		h.httpClient = httpClient
	}
	h.userAgent = userAgent
}

func (h *HtmlFetcher) Fetch(ctx context.Context, fetchUrl string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchUrl, nil)
	if err != nil {
		return nil, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseNetworkFailure,
		}
	}

	for key, value := range requestHeaders(h.userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
	}
	defer resp.Body.Close()

	if fetchErr := classifyStatus(resp.StatusCode); fetchErr != nil {
		return nil, fetchErr
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContent(contentType) {
		return nil, &FetchError{
			Message:    fmt.Sprintf("non-HTML content type: %s", contentType),
			Retryable:  false,
			Cause:      ErrCauseContentTypeInvalid,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{
			Message:    fmt.Sprintf("failed to read response body: %v", err),
			Retryable:  true,
			Cause:      ErrCauseReadResponseBodyError,
			StatusCode: resp.StatusCode,
		}
	}

	responseHeaders := make(map[string]string)
	for key, values := range resp.Header {
		if len(values) > 0 {
			responseHeaders[key] = values[0]
		}
	}

	return TextResponse{
		body:       string(body),
		statusCode: resp.StatusCode,
		headers:    responseHeaders,
	}, nil
}

func classifyStatus(statusCode int) *FetchError {
	switch {
	case statusCode >= 500:
		return &FetchError{
			Message:    fmt.Sprintf("server error: %d", statusCode),
			Retryable:  true,
			Cause:      ErrCauseRequest5xx,
			StatusCode: statusCode,
		}
	case statusCode == http.StatusTooManyRequests:
		return &FetchError{
			Message:    "rate limited (429)",
			Retryable:  true,
			Cause:      ErrCauseRequestTooMany,
			StatusCode: statusCode,
		}
	case statusCode == http.StatusForbidden || statusCode == http.StatusUnauthorized:
		return &FetchError{
			Message:    fmt.Sprintf("access forbidden (%d)", statusCode),
			Retryable:  false,
			Cause:      ErrCauseRequestPageForbidden,
			StatusCode: statusCode,
		}
	case statusCode >= 400:
		return &FetchError{
			Message:    fmt.Sprintf("client error: %d", statusCode),
			Retryable:  false,
			Cause:      ErrCauseRequest4xx,
			StatusCode: statusCode,
		}
	case statusCode >= 300:
		// http.Client follows redirects; reaching here means it gave up
		return &FetchError{
			Message:    fmt.Sprintf("redirect error: %d", statusCode),
			Retryable:  false,
			Cause:      ErrCauseRedirectLimitExceeded,
			StatusCode: statusCode,
		}
	}
	return nil
}

func isHTMLContent(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "text/html") ||
		strings.Contains(contentType, "application/xhtml")
}

func requestHeaders(userAgent string) map[string]string {
	headers := map[string]string{
		"Accept":          "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		// marks the request as a partial navigation, servers may key on it
		"X-Requested-With": "carpool",
	}
	if userAgent != "" {
		headers["User-Agent"] = userAgent
	}
	return headers
}
