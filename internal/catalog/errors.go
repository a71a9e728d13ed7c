package catalog

import "fmt"

// AuthError means the application credentials were rejected during the
// client-credentials exchange.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("catalog auth failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// UpstreamError is a delivered non-2xx catalog response. Callers decide
// whether to retry.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog returned status %d: %s", e.Status, e.Body)
}
