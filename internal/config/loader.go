package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/1broseidon/termtile/internal/wmerr"
)

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "termtile", "config.toml"), nil
}

// Load reads and builds the configuration from the standard location. A
// missing file is not an error: it yields the all-defaults Config a
// fresh install should start with.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and builds the configuration from path.
func LoadFromPath(path string) (*Config, error) {
	raw, err := decode(path)
	if err != nil {
		return nil, err
	}
	return Build(raw)
}

func decode(path string) (RawConfig, error) {
	var raw RawConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return raw, nil
	}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return RawConfig{}, wmerr.Wrap(wmerr.ConfigInvalid, path+": failed to parse", err)
	}
	return raw, nil
}
