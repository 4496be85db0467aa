// Package config handles workspace configuration and on-disk layout.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Config represents workspace configuration stored in .beatgraph/config.json.
type Config struct {
	BaseURL           string   `json:"base_url"`             // Site root, e.g. http://espn.go.com
	UserAgent         string   `json:"user_agent,omitempty"` // Sent with every scrape request
	FBSCount          int      `json:"fbs_count"`            // Leading roster links that are FBS
	Workers           int      `json:"workers"`              // Concurrent schedule fetches
	RequestsPerSecond float64  `json:"requests_per_second"`  // Fetch rate limit
	TimeoutSeconds    int      `json:"timeout_seconds"`      // Per-request timeout
	Browser           bool     `json:"browser,omitempty"`    // Fetch through headless Chrome
	DefaultFormat     string   `json:"default_format"`       // png, svg, dot or html
	PowerFive         []string `json:"power_five,omitempty"` // Overrides the built-in list
}

const (
	WorkspaceDir = ".beatgraph"
	ConfigFile   = "config.json"
	CacheDir     = "cache"
	DBFile       = "teams.db"
	LogosDir     = "logos"
	ChartsDir    = "charts"

	snapshotPrefix = "teams"
	snapshotExt    = ".jsonl"
)

// Defaults for a fresh workspace.
const (
	DefaultBaseURL           = "http://espn.go.com"
	DefaultUserAgent         = "Mozilla/5.0 (compatible; beatgraph/1.0)"
	DefaultFBSCount          = 128
	DefaultWorkers           = 4
	DefaultRequestsPerSecond = 2.0
	DefaultTimeoutSeconds    = 30
	DefaultFormat            = "png"
)

// Environment overrides, read after .env is loaded.
const (
	EnvBaseURL   = "BEATGRAPH_BASE_URL"
	EnvUserAgent = "BEATGRAPH_USER_AGENT"
)

// ValidFormats lists the supported chart output formats.
var ValidFormats = []string{"png", "svg", "dot", "html"}

// Default returns the configuration written by `beatgraph init`.
func Default() *Config {
	return &Config{
		BaseURL:           DefaultBaseURL,
		UserAgent:         DefaultUserAgent,
		FBSCount:          DefaultFBSCount,
		Workers:           DefaultWorkers,
		RequestsPerSecond: DefaultRequestsPerSecond,
		TimeoutSeconds:    DefaultTimeoutSeconds,
		DefaultFormat:     DefaultFormat,
	}
}

// WorkspacePath returns the path to the .beatgraph directory from a root path.
func WorkspacePath(root string) string {
	return filepath.Join(root, WorkspaceDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, WorkspaceDir, ConfigFile)
}

// SnapshotPath returns the cached season file for a year.
func SnapshotPath(root string, year int) string {
	return filepath.Join(root, WorkspaceDir, snapshotPrefix+strconv.Itoa(year)+snapshotExt)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, WorkspaceDir, CacheDir)
}

// DBPath returns the path to teams.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, WorkspaceDir, CacheDir, DBFile)
}

// LogosPath returns the directory logos are downloaded to.
func LogosPath(root string) string {
	return filepath.Join(root, LogosDir)
}

// ChartsPath returns the directory charts are written to.
func ChartsPath(root string) string {
	return filepath.Join(root, ChartsDir)
}

// SnapshotYears lists the years with a cached snapshot, ascending.
func SnapshotYears(root string) ([]int, error) {
	matches, err := filepath.Glob(filepath.Join(root, WorkspaceDir, snapshotPrefix+"*"+snapshotExt))
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}

	var years []int
	for _, m := range matches {
		base := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), snapshotPrefix), snapshotExt)
		year, err := strconv.Atoi(base)
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

// IsWorkspace checks if the given path contains a beatgraph workspace.
func IsWorkspace(root string) bool {
	info, err := os.Stat(WorkspacePath(root))
	return err == nil && info.IsDir()
}

// FindWorkspace walks up from the given path to find a beatgraph workspace.
// Returns the workspace root path or an error if not found.
func FindWorkspace(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsWorkspace(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a beatgraph workspace (no .beatgraph directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the workspace at the given root. Zero-valued
// fields take their defaults.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.FBSCount <= 0 {
		c.FBSCount = d.FBSCount
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = d.RequestsPerSecond
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = d.TimeoutSeconds
	}
	if c.DefaultFormat == "" {
		c.DefaultFormat = d.DefaultFormat
	}
}

// ApplyEnv lets BEATGRAPH_BASE_URL and BEATGRAPH_USER_AGENT override the file.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		c.UserAgent = v
	}
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidateFormat checks that the chart format is supported.
func ValidateFormat(format string) error {
	for _, valid := range ValidFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s (valid: %v)", format, ValidFormats)
}

// ValidatePositive parses a strictly positive integer setting.
func ValidatePositive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q (must be a positive integer)", key, value)
	}
	return n, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
