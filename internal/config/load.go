package config

import (
	"encoding/json"
	"os"

	"github.com/Hemifuture/terragen/internal/apperr"
)

// LoadFile reads and JSON-decodes a GenerationConfig from path, applying
// Default() first so an omitted field falls back to the spec default
// rather than its zero value.
func LoadFile(path string) (GenerationConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, apperr.Wrap(apperr.InvalidConfig("config_path", "could not read config file"), err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, apperr.Wrap(apperr.InvalidConfig("config_path", "config file is not valid JSON"), err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
