package sentiment

import "fmt"

// ExternalServiceError reports a generative-service call that failed or
// returned unusable content. It is fatal to the run; there is no retry
// policy in the pipeline. The lexical strategy never produces it.
type ExternalServiceError struct {
	Op      string // "score aspects" or "summarize driver"
	Message string
	Cause   error
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("external service error (%s): %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("external service error (%s): %s", e.Op, e.Message)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Cause
}
