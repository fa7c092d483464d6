package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport marks every failed TMDB call: network errors, undecodable
	// bodies and non-200 responses alike.
	ErrTransport = errors.New("tmdb: transport failure")
	// ErrNotFound is matched by a 404 HTTPError.
	ErrNotFound = errors.New("tmdb: resource not found")
	// ErrInvalidPage is returned before any request for page numbers below 1.
	ErrInvalidPage = errors.New("tmdb: page must be a positive integer")
)

// HTTPError is returned when TMDB answers with a status other than 200.
type HTTPError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("tmdb: %s returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Is lets errors.Is match ErrTransport for any status and ErrNotFound for 404.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// StatusCode extracts the upstream status from err, or 0 if err carries none.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
