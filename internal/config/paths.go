package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the directory holding config.toml and bundled trait sources.
func Dir() string {
	if dir := os.Getenv("NOUNS_CONFIG_DIR"); dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Application Support", "nouns")
		}
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "nouns")
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "nouns")
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "nouns")
		}
	}

	return filepath.Join(os.TempDir(), "nouns")
}

// DefaultPath returns the config file consulted when no --config is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
