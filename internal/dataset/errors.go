package dataset

import "fmt"

// LoadError reports an input dataset that could not be read or parsed as
// tabular data. It is fatal to the run.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("loading dataset %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("loading dataset %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
