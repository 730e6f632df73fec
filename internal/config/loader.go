package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/esanchezm/megaverse/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/megaverse"
	configFileName = "config.yaml"
)

// osUserHomeDir is swapped out in tests.
var osUserHomeDir = os.UserHomeDir

// GetDefaultConfigPath returns ~/.config/megaverse, or an empty string
// when the home directory cannot be determined.
func GetDefaultConfigPath() string {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads config.yaml from configPath over the defaults. A missing
// file or an empty configPath yields the defaults.
func LoadConfig(configPath string) (MegaverseConfig, error) {
	config := GetDefaultConfig()
	if configPath == "" {
		return config, nil
	}

	configFilePath := filepath.Join(configPath, configFileName)
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return MegaverseConfig{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		// config malformed
		return MegaverseConfig{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}

	if err := config.Validate(); err != nil {
		return MegaverseConfig{}, fmt.Errorf("invalid config in %s: %w", configFilePath, err)
	}

	logging.Debug("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}
