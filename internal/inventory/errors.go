package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// StatusError reports a non-200 response from the inventory API. Body holds
// the response text for write operations and is empty for reads.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: api returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: api returned status %d: %s", e.Op, e.StatusCode, body)
}

// IsStatus reports whether err carries a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.StatusCode == code
}

// ResponseBody returns the body text carried by a StatusError, if any.
func ResponseBody(err error) string {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return ""
	}
	return statusErr.Body
}
