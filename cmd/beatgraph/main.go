// Package main provides the beatgraph CLI entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/beatgraph/internal/conference"
	"github.com/matsen/beatgraph/internal/config"
	"github.com/matsen/beatgraph/internal/logging"
	"github.com/matsen/beatgraph/internal/storage"
	"github.com/matsen/beatgraph/internal/team"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	logLevel    string

	logger    = zap.NewNop()
	logCloser io.Closer
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closeLogger()
	if err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beatgraph",
	Short: "Who-beat-whom graphs for college football seasons",
	Long: `beatgraph scrapes a college football season's schedules, caches them,
and draws directed "who beat whom" graphs.

A school's chart is the shortest chain of wins from that school to every
team it can reach, restricted to a division: All, FBS, P5, G5 or FCS.

Seasons are cached as JSONL under .beatgraph/ with an ephemeral SQLite
query layer. All commands output JSON by default; use --human for text.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogger,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from global config, else info)")
	rootCmd.Version = Version
}

// setupLogger builds the logger from --log-level and the global config.
// Console logs go to stderr; a log_file in the global config adds a
// rotating JSON log.
func setupLogger(cmd *cobra.Command, args []string) error {
	global, err := config.LoadGlobalConfig()
	if err != nil {
		global = &config.GlobalConfig{}
	}

	levelName := logLevel
	if levelName == "" {
		levelName = global.LogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	plugins := []logging.Plugin{logging.NewStdoutPlugin(level)}
	if global.LogFile != "" {
		filePlugin, closer := logging.NewFilePlugin(global.LogFile, level)
		plugins = append(plugins, filePlugin)
		logCloser = closer
	}

	logger = logging.NewLogger(plugins...)
	return nil
}

func closeLogger() {
	_ = logger.Sync()
	if logCloser != nil {
		logCloser.Close()
	}
}

// getStartingDirectory returns the directory to start searching for a workspace.
// Checks global config workspace_path first, then current working directory.
func getStartingDirectory() (string, int) {
	if root := config.GetWorkspacePath(); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindWorkspace finds the workspace root, exits on error.
func mustFindWorkspace() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	root, err := config.FindWorkspace(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return root
}

// mustOpenDatabase opens the SQLite database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(root string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadConfig loads configuration with environment overrides, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	cfg.ApplyEnv()
	return cfg
}

// mustLoadSeason reads a cached season, exits with the data code if it was
// never scraped.
func mustLoadSeason(root string, year int) *team.Season {
	season, err := storage.ReadSeason(config.SnapshotPath(root, year), year)
	if err != nil {
		exitOnError(err, "loading %d season", year)
	}
	return season
}

// mustParseYear parses a season argument.
func mustParseYear(arg string) int {
	year, err := strconv.Atoi(arg)
	if err != nil || year < 1869 || year > 9999 {
		exitWithError(ExitError, "invalid year %q", arg)
	}
	return year
}

// mustParseFilter parses a division argument.
func mustParseFilter(arg string) conference.Filter {
	f, err := conference.ParseFilter(arg)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return f
}
