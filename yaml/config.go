// Package yaml loads diffutils configuration from YAML files.
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/diffutils"
	yamllib "gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file location.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/diffutils/config.yaml,
// or a path in the system temp directory if home is unavailable.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "diffutils", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "diffutils", "config.yaml")
	}
	return filepath.Join(home, ".config", "diffutils", "config.yaml")
}

// Load reads the config file at path over diffutils.DefaultConfig.
// A missing file is not an error and yields the defaults.
func Load(path string) (diffutils.Config, error) {
	cfg := diffutils.DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yamllib.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func validate(cfg diffutils.Config) error {
	switch cfg.Engine {
	case diffutils.EngineNative, diffutils.EngineGitDiff:
	default:
		return fmt.Errorf("unknown engine %q", cfg.Engine)
	}
	switch cfg.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("unknown theme %q", cfg.Theme)
	}
	return nil
}

// Global returns the process-wide config, loaded from DefaultPath on first
// use. The returned value must not be modified.
var Global = sync.OnceValues(func() (diffutils.Config, error) {
	return Load(DefaultPath())
})
