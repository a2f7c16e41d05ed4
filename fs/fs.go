// Package fs provides file system backed caching of parsed patches.
package fs

import (
	"os"
	"path/filepath"
)

// DefaultCacheDir returns the default cache directory for diffutils.
// Uses XDG_CACHE_HOME if set, otherwise falls back to ~/.cache/diffutils,
// or system temp directory if home is unavailable.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "diffutils")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "diffutils")
	}
	return filepath.Join(home, ".cache", "diffutils")
}
