package megaverse

import (
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

const (
	// DefaultMaxAttempts is the number of times a request is tried before
	// the last transient error is returned.
	DefaultMaxAttempts = 5

	// DefaultRetryInterval is the fixed wait between attempts.
	DefaultRetryInterval = 2 * time.Second
)

// RetryConfig bounds how transient failures are retried.
type RetryConfig struct {
	// MaxAttempts counts the first try, so 1 disables retrying.
	MaxAttempts int
	// Interval is the fixed delay between attempts.
	Interval time.Duration
}

// DefaultRetryConfig returns 5 attempts spaced 2 seconds apart.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: DefaultMaxAttempts,
		Interval:    DefaultRetryInterval,
	}
}

// Validate rejects envelopes that would never issue a request.
func (r RetryConfig) Validate() error {
	if r.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", r.MaxAttempts)
	}
	if r.Interval < 0 {
		return fmt.Errorf("retry interval must not be negative, got %s", r.Interval)
	}
	return nil
}

// backoff converts the config to a fixed-interval wait.Backoff; with
// Factor 1 and no jitter every step sleeps exactly Interval.
func (r RetryConfig) backoff() wait.Backoff {
	return wait.Backoff{
		Duration: r.Interval,
		Factor:   1.0,
		Jitter:   0,
		Steps:    r.MaxAttempts,
	}
}
