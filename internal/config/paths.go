package config

import (
	"os"
	"path/filepath"
)

// Environment variables read by patchctl.
const (
	EnvConfig            = "PATCHCTL_CONFIG"
	EnvStore             = "PATCHCTL_STORE"
	EnvStoreDir          = "PATCHCTL_STORE_DIR"
	EnvTimestamps        = "PATCHCTL_LOG_TIMESTAMPS"
	EnvReportUnsatisfied = "PATCHCTL_REPORT_UNSATISFIED"
)

// Paths contains standard filesystem paths for patchctl.
type Paths struct {
	// ConfigFile is the path to the config file (~/.patchctl/config.yaml).
	ConfigFile string

	// StoreDir is the default package store directory (~/.patchctl/store).
	StoreDir string

	// HomeDir is the patchctl home directory (~/.patchctl).
	HomeDir string
}

// DefaultPaths returns the default paths for patchctl.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".patchctl")

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		StoreDir:   filepath.Join(home, "store"),
		HomeDir:    home,
	}, nil
}

// GetConfigFile returns the config file path.
// If PATCHCTL_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// EnsureDir creates dir and its parents if they don't exist.
func EnsureDir(dir string) error {
	expanded, err := ExpandPath(dir)
	if err != nil {
		return err
	}
	return os.MkdirAll(expanded, 0o755)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
