package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "HGDB_CONFIG"
	// ConfigFileName is looked up in the working directory
	ConfigFileName = "hgdb.yaml"
	// ConfigDirName is the directory under the XDG and system config roots
	ConfigDirName = "hgdb"
)

// SearchPaths lists config file candidates, highest priority first:
//  1. $HGDB_CONFIG
//  2. ./hgdb.yaml
//  3. $XDG_CONFIG_HOME/hgdb/config.yaml
//  4. ~/.config/hgdb/config.yaml
//  5. /etc/hgdb/config.yaml
//
// Unset variables contribute no candidate.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, ConfigFileName)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, ConfigDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the first existing candidate from SearchPaths, made
// absolute when relative, or "" when there is none.
func FindConfigPath() string {
	for _, p := range SearchPaths() {
		if !isFile(p) {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	return ""
}

// DefaultConfigPath is where `hgdb config init` writes when no path is given
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, ConfigDirName, "config.yaml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	}
	return ConfigFileName
}

// EnsureConfigDir creates the parent directory of configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
