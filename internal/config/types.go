package config

import "time"

// MegaverseConfig is the top-level configuration structure for megaverse.
type MegaverseConfig struct {
	// CandidateID identifies the caller to the API. Usually given on the
	// command line instead.
	CandidateID string `yaml:"candidateId,omitempty"`

	// BaseURL is the API root (default: https://challenge.crossmint.io).
	BaseURL string `yaml:"baseURL,omitempty"`

	// HTTPTimeout bounds a single HTTP attempt.
	HTTPTimeout time.Duration `yaml:"httpTimeout,omitempty"`

	// Retry bounds how transient API failures are retried.
	Retry RetryConfig `yaml:"retry,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel,omitempty"`
}

// RetryConfig is the retry envelope applied to every API call.
type RetryConfig struct {
	MaxAttempts int           `yaml:"maxAttempts,omitempty"` // Attempts including the first one (default: 5)
	Interval    time.Duration `yaml:"interval,omitempty"`    // Fixed wait between attempts (default: 2s)
}
