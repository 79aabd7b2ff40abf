package dom

import (
	"fmt"

	"github.com/rohmanhakim/carpool/pkg/failure"
)

type ExtractionErrorCause string

const (
	ErrCauseNotHTML         = "not html"
	ErrCauseContentNotFound = "content region not found"
	ErrCauseTitleNotFound   = "title not found"
	ErrCauseTargetNotFound  = "target container not found"
	ErrCauseForeignTarget   = "target container not in document"
	ErrCauseRenderFailure   = "failed to render document"
)

// ExtractionError is returned when a page lacks a region the swap needs,
// or when the live document cannot receive it.
type ExtractionError struct {
	Message   string
	Retryable bool
	Cause     ExtractionErrorCause
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error: %s: %s", e.Cause, e.Message)
}

// Severity is recoverable: the host can still fall back to full navigation.
func (e *ExtractionError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func (e *ExtractionError) IsRetryable() bool {
	return e.Retryable
}
