package config

import (
	"time"

	"github.com/esanchezm/megaverse/internal/megaverse"
)

const (
	// DefaultLogLevel is used when neither the file nor a flag sets one.
	DefaultLogLevel = "info"
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() MegaverseConfig {
	return MegaverseConfig{
		BaseURL:     megaverse.DefaultBaseURL,
		HTTPTimeout: megaverse.DefaultHTTPTimeout,
		Retry: RetryConfig{
			MaxAttempts: megaverse.DefaultMaxAttempts,
			Interval:    megaverse.DefaultRetryInterval,
		},
		LogLevel: DefaultLogLevel,
	}
}

// ClientRetry converts the retry settings for the API client.
func (c MegaverseConfig) ClientRetry() megaverse.RetryConfig {
	return megaverse.RetryConfig{
		MaxAttempts: c.Retry.MaxAttempts,
		Interval:    c.Retry.Interval,
	}
}

// Timeout returns HTTPTimeout, falling back to the client default.
func (c MegaverseConfig) Timeout() time.Duration {
	if c.HTTPTimeout <= 0 {
		return megaverse.DefaultHTTPTimeout
	}
	return c.HTTPTimeout
}
