// Package config provides configuration management for megaverse.
//
// Configuration is read from a single directory. The default is
// ~/.config/megaverse; commands accept --config-path to use another one.
//
// # Configuration File
//
// The directory may contain a config.yaml:
//
//	candidateId: 0f6e1d2c-...
//	baseURL: https://challenge.crossmint.io
//	httpTimeout: 30s
//	logLevel: info
//	retry:
//	  maxAttempts: 5
//	  interval: 2s
//
// Every field is optional. Missing fields keep the defaults from
// GetDefaultConfig, and a missing file means all defaults. Command line
// flags and environment variables override the file.
//
// # Validation
//
// LoadConfig validates the merged result and reports every invalid field
// at once as ValidationErrors.
package config
