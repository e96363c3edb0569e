package calcom

import "fmt"

// APIError is returned for any non-2xx response from the scheduling
// provider. It carries the provider's response body verbatim; calls are
// single-attempt and never retried.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("calcom: provider returned status %d: %s", e.StatusCode, e.Body)
}
