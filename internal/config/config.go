// Package config loads API credentials for the metadata sources.
//
// Precedence: environment variables win over the config file. A .env file in
// the working directory is loaded into the environment at process start (see
// cmd/refcheck). The config value is passed explicitly into each client
// constructor; there is no process-wide singleton.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds credentials and identification for the metadata sources.
// All fields are optional; every source works unauthenticated at reduced
// rate limits.
type Config struct {
	S2APIKey   string `yaml:"s2_api_key,omitempty"`
	NCBIAPIKey string `yaml:"ncbi_api_key,omitempty"`
	// Mailto is sent to Crossref for polite-pool access.
	Mailto string `yaml:"mailto,omitempty"`
}

const (
	configDir  = "refcheck"
	configFile = "config.yml"
)

// Path returns the config file location. Respects XDG_CONFIG_HOME, defaults
// to ~/.config/refcheck/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, configDir, configFile)
}

// Load reads the config file and overlays environment variables. A missing
// file is not an error; the zero Config is fully usable.
func Load() (Config, error) {
	var cfg Config

	if path := Path(); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	if key := os.Getenv("SEMANTIC_SCHOLAR_API_KEY"); key != "" {
		cfg.S2APIKey = key
	}
	if key := os.Getenv("NCBI_API_KEY"); key != "" {
		cfg.NCBIAPIKey = key
	}
	if mailto := os.Getenv("REFCHECK_MAILTO"); mailto != "" {
		cfg.Mailto = mailto
	}

	return cfg, nil
}
