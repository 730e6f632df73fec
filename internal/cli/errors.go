package cli

import (
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/esanchezm/megaverse/internal/megaverse"
	"github.com/esanchezm/megaverse/internal/reconciler"
)

// ConnectionErrorType categorizes the type of connection error.
type ConnectionErrorType int

const (
	// ConnectionErrorUnknown indicates an unclassified connection error.
	ConnectionErrorUnknown ConnectionErrorType = iota
	// ConnectionErrorTLS indicates a TLS/certificate verification error.
	ConnectionErrorTLS
	// ConnectionErrorNetwork indicates a network connectivity error (e.g., refused, unreachable).
	ConnectionErrorNetwork
	// ConnectionErrorTimeout indicates a connection timeout.
	ConnectionErrorTimeout
	// ConnectionErrorDNS indicates a DNS resolution failure.
	ConnectionErrorDNS
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorTLS:
		return "TLS certificate error"
	case ConnectionErrorNetwork:
		return "Network error"
	case ConnectionErrorTimeout:
		return "Connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	default:
		return "Connection error"
	}
}

// ConnectionError indicates the API could not be reached at all.
type ConnectionError struct {
	// Endpoint is the base URL that could not be reached.
	Endpoint string
	// Type categorizes the connection error.
	Type ConnectionErrorType
	// Reason is the underlying error.
	Reason error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s reaching %s: %v", e.Type, e.Endpoint, e.Reason)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// ClassifyConnectionError returns a *ConnectionError for transport
// failures. API errors (the server answered) and nil yield nil.
func ClassifyConnectionError(err error, endpoint string) *ConnectionError {
	if err == nil {
		return nil
	}

	var apiErr *megaverse.APIError
	if errors.As(err, &apiErr) {
		return nil
	}

	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return nil
	}

	connErr := &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorUnknown, Reason: err}

	var dnsErr *net.DNSError
	switch {
	case isTLSError(err):
		connErr.Type = ConnectionErrorTLS
	case errors.As(err, &dnsErr):
		connErr.Type = ConnectionErrorDNS
	case isTimeoutError(err):
		connErr.Type = ConnectionErrorTimeout
	case isNetworkError(err.Error()):
		connErr.Type = ConnectionErrorNetwork
	}
	return connErr
}

// isTLSError checks if the error is related to TLS/certificate issues.
func isTLSError(err error) bool {
	var certErr *x509.CertificateInvalidError
	var hostErr x509.HostnameError
	var unknownAuthErr x509.UnknownAuthorityError

	if errors.As(err, &certErr) || errors.As(err, &hostErr) || errors.As(err, &unknownAuthErr) {
		return true
	}

	errStr := err.Error()
	for _, keyword := range []string{"x509:", "certificate", "tls:", "TLS handshake"} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// isTimeoutError checks if the error is a timeout.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isNetworkError checks if the error string indicates a network connectivity issue.
func isNetworkError(errStr string) bool {
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"dial tcp",
		"connect:",
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// Describe turns a run failure into a message with a hint for the user.
func Describe(err error, endpoint string) string {
	if connErr := ClassifyConnectionError(err, endpoint); connErr != nil {
		return fmt.Sprintf("%s: could not reach %s\n\nCheck the --url flag or the %s environment variable.\n\nCause: %v",
			connErr.Type, endpoint, EnvURL, err)
	}

	var apiErr *megaverse.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return fmt.Sprintf("The API rejected the candidate id (%d)\n\nCheck the candidate id argument.\n\nCause: %v",
				apiErr.StatusCode, err)
		case megaverse.IsTransient(err):
			return fmt.Sprintf("The API kept failing with %d after all retries\n\nCalls made so far are kept; run the command again to continue.\n\nCause: %v",
				apiErr.StatusCode, err)
		}
	}

	if errors.Is(err, reconciler.ErrDimensionMismatch) {
		return fmt.Sprintf("The current map and the goal map do not have the same size; nothing was changed.\n\nCause: %v", err)
	}

	if errors.Is(err, megaverse.ErrInvalidAttribute) {
		return fmt.Sprintf("The goal map contains an invalid value; nothing was changed.\n\nCause: %v", err)
	}

	return FormatError(err)
}
