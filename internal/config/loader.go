package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the user and local config directories.
const ConfigFile = "dogdash.yaml"

// LoadDogDash returns the Dog Dash configuration.
//
// An explicit path must exist and parse. Otherwise the first readable and
// valid file among ~/.dogdash/configs/dogdash.yaml and ./configs/dogdash.yaml
// wins, falling back to the embedded defaults. Files only need the keys they
// override.
func LoadDogDash(path string) (DogDashConfig, error) {
	if path != "" {
		cfg, err := loadFile(path)
		if err != nil {
			return DogDashConfig{}, fmt.Errorf("config: %w", err)
		}
		return cfg, nil
	}

	for _, candidate := range searchPaths() {
		if cfg, err := loadFile(candidate); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := Parse(defaultDogDashYAML); err == nil {
		return cfg, nil
	}
	return DefaultDogDashConfig(), nil
}

func loadFile(path string) (DogDashConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DogDashConfig{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return DogDashConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func searchPaths() []string {
	paths := make([]string, 0, 2)
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".dogdash", "configs", ConfigFile))
	}
	return append(paths, filepath.Join("configs", ConfigFile))
}

// Parse decodes YAML over the built-in defaults and validates the result.
func Parse(data []byte) (DogDashConfig, error) {
	cfg := DefaultDogDashConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DogDashConfig{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DogDashConfig{}, err
	}
	return cfg, nil
}
