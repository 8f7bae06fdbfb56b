package message

import "fmt"

// Validation failure reasons.
const (
	ReasonMissing = "missing"
	ReasonTooLong = "too long"
)

// ValidationError reports a request field that fails schema rules.
// It is always recoverable by the caller correcting its input; nothing in
// this package retries.
type ValidationError struct {
	// Field is the logical name of the offending field.
	Field string
	// Reason describes the failed rule.
	Reason string
	// Limit is the configured maximum length, set when Reason is "too long".
	Limit int
}

func (e *ValidationError) Error() string {
	if e.Reason == ReasonTooLong {
		return fmt.Sprintf("field %s exceeds maximum length of %d", e.Field, e.Limit)
	}
	return fmt.Sprintf("field %s is %s", e.Field, e.Reason)
}
