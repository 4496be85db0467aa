package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/beatgraph/config.yml.
type GlobalConfig struct {
	WorkspacePath string `yaml:"workspace_path,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty"`
	LogFile       string `yaml:"log_file,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "beatgraph"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/beatgraph/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.WorkspacePath != "" {
		cfg.WorkspacePath = ExpandPath(cfg.WorkspacePath)
	}
	if cfg.LogFile != "" {
		cfg.LogFile = ExpandPath(cfg.LogFile)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetWorkspacePath returns the default workspace from global config.
func GetWorkspacePath() string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.WorkspacePath
}

// HelpfulConfigMessage explains how to create or point at a workspace.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No beatgraph workspace found.

Run 'beatgraph init' in the directory that should hold the season cache,
or create %s to set a default workspace:
  mkdir -p %s
  echo 'workspace_path: /path/to/workspace' > %s`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
