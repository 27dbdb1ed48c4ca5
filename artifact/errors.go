package artifact

import "fmt"

// NotFoundError reports that an artifact file does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("artifact not found at %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// LoadError reports an artifact that exists but could not be deserialized.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load artifact %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
