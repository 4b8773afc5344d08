package catalog

import "fmt"

// LoadError reports a catalog that could not be loaded or failed validation.
// A process must not serve recommendations from a partially loaded catalog,
// so loaders return this instead of a partial snapshot.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog load error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog load error for %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
