package backend

import (
	"fmt"
)

// NetworkError is returned when a request never produced an HTTP response
type NetworkError struct {
	Op  string // resource or procedure name
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend %s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// BackendError is returned for any non-2xx response
type BackendError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s error: %d - %s", e.Op, e.StatusCode, e.Body)
}
