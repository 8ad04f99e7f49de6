package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"informers/pkg/logging"
)

const (
	userConfigDir  = ".config/informers"
	configFileName = "config.yaml"
)

// osUserHomeDir is replaced in tests.
var osUserHomeDir = os.UserHomeDir

// DefaultConfigPath returns ~/.config/informers/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// LoadConfig reads the configuration file at path, or the default path when
// path is empty. Values missing from the file keep their defaults; a missing
// file yields the defaults. The result is validated.
func LoadConfig(path string) (InformerConfig, error) {
	config := GetDefaultConfig()

	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return InformerConfig{}, err
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config file found at %s, using defaults", path)
			return config, nil
		}
		return InformerConfig{}, &ConfigurationError{
			FilePath:  path,
			ErrorType: "io",
			Message:   "failed to read configuration",
			Details:   err.Error(),
			Err:       err,
		}
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return InformerConfig{}, &ConfigurationError{
			FilePath:  path,
			ErrorType: "parse",
			Message:   "malformed YAML",
			Details:   err.Error(),
			Suggestions: []string{
				"durations are written like 30s or 5m",
				"labels and fields are maps of strings",
			},
			Err: err,
		}
	}

	if err := Validate(config); err != nil {
		return InformerConfig{}, &ConfigurationError{
			FilePath:  path,
			ErrorType: "validation",
			Message:   err.Error(),
			Err:       err,
		}
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s", path)
	return config, nil
}
