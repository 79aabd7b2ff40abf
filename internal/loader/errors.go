package loader

import (
	"fmt"

	"github.com/rohmanhakim/carpool/pkg/failure"
)

type ConfigurationErrorCause string

const (
	ErrCauseFetcherMissing = "fetcher not configured"
)

// ConfigurationError reports a capability the instance needs but was not
// given. It is returned before any network activity starts.
type ConfigurationError struct {
	Message string
	Cause   ConfigurationErrorCause
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Cause, e.Message)
}

func (e *ConfigurationError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *ConfigurationError) IsRetryable() bool {
	return false
}
