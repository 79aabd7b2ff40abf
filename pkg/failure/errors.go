package failure

type Severity int

// host-facing classification
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

// ClassifiedError is implemented by every typed error the navigation
// pipeline returns. Recoverable errors are ones a host may reasonably
// answer with a full page load; fatal ones indicate a misconfigured instance.
type ClassifiedError interface {
	error
	Severity() Severity
}
