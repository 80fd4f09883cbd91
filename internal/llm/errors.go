package llm

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for completion failures. All are propagated to the caller
// unmodified; clients in this package never retry.
var (
	// ErrRateLimited indicates the completion service reported throttling.
	ErrRateLimited = errors.New("completion service rate limited")

	// ErrMalformedResponse indicates a success payload without a parsable
	// text field.
	ErrMalformedResponse = errors.New("malformed completion response")
)

// ServiceError is a non-success, non-throttling response from the
// completion service.
type ServiceError struct {
	Status int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("completion service error: status %d", e.Status)
}

// rateLimitMarkers are substrings that identify throttling in provider
// error messages. Providers report this inconsistently, so match broadly.
var rateLimitMarkers = []string{
	"rate limit",
	"quota exceeded",
	"too many requests",
	"429",
	"throttl",
}

// mapProviderError normalizes direct-provider errors into the package's
// error taxonomy. Rate limiting is surfaced as ErrRateLimited so callers
// can distinguish it; everything else passes through.
func mapProviderError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}
	return err
}
