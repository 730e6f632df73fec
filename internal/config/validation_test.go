package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MegaverseConfig)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*MegaverseConfig) {}},
		{name: "empty base url is allowed", mutate: func(c *MegaverseConfig) { c.BaseURL = "" }},
		{name: "relative base url", mutate: func(c *MegaverseConfig) { c.BaseURL = "/api" }, wantErr: "baseURL"},
		{name: "negative timeout", mutate: func(c *MegaverseConfig) { c.HTTPTimeout = -time.Second }, wantErr: "httpTimeout"},
		{name: "zero attempts", mutate: func(c *MegaverseConfig) { c.Retry.MaxAttempts = 0 }, wantErr: "retry.maxAttempts"},
		{name: "negative interval", mutate: func(c *MegaverseConfig) { c.Retry.Interval = -time.Second }, wantErr: "retry.interval"},
		{name: "unknown log level", mutate: func(c *MegaverseConfig) { c.LogLevel = "verbose" }, wantErr: "logLevel"},
		{name: "log level is case insensitive", mutate: func(c *MegaverseConfig) { c.LogLevel = "DEBUG" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "no validation errors", errs.Error())

	errs.Add("a", "is wrong")
	assert.Equal(t, "field 'a': is wrong", errs.Error())

	errs.Add("b", "is also wrong", 3)
	assert.Equal(t, "validation failed: field 'a': is wrong; field 'b': is also wrong", errs.Error())
	assert.Equal(t, 3, errs[1].Value)
}
