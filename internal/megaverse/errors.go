package megaverse

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnknownToken is returned by ParseCell for tokens that name no
	// known object kind.
	ErrUnknownToken = errors.New("unknown cell token")

	// ErrInvalidAttribute matches every *InvalidAttributeError via errors.Is.
	ErrInvalidAttribute = errors.New("invalid attribute")
)

// InvalidAttributeError reports a soloon color or cometh direction that is
// not in the fixed enumeration.
type InvalidAttributeError struct {
	// Attribute is "color" or "direction".
	Attribute string
	// Value is the offending input as received.
	Value string
	// Allowed lists the accepted values.
	Allowed []string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid %s %q (allowed: %s)", e.Attribute, e.Value, strings.Join(e.Allowed, ", "))
}

// Is makes errors.Is(err, ErrInvalidAttribute) succeed.
func (e *InvalidAttributeError) Is(target error) bool {
	return target == ErrInvalidAttribute
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// transientStatuses are the response codes retried by the client.
var transientStatuses = map[int]struct{}{
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusNotImplemented:      {},
	http.StatusServiceUnavailable:  {},
}

// IsTransient reports whether err is an *APIError whose status is retried.
func IsTransient(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	_, ok := transientStatuses[apiErr.StatusCode]
	return ok
}

// IsNotFound reports whether err is an *APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
