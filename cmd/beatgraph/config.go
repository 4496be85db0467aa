package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/beatgraph/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set workspace configuration values.

Usage:
  beatgraph config                       # Show all config
  beatgraph config workers               # Get specific value
  beatgraph config workers 8             # Set value

Keys:
  base-url             Site root to scrape (env BEATGRAPH_BASE_URL overrides)
  user-agent           User-Agent header (env BEATGRAPH_USER_AGENT overrides)
  fbs-count            Leading roster links that are FBS schools
  workers              Schedules fetched concurrently
  requests-per-second  Fetch rate limit
  timeout-seconds      Per-request timeout
  browser              Fetch through headless Chrome (true/false)
  default-format       Chart format: png, svg, dot, html`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// configKeys lists the settable keys in display order.
var configKeys = []string{
	"base-url", "user-agent", "fbs-count", "workers",
	"requests-per-second", "timeout-seconds", "browser", "default-format",
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			for _, key := range configKeys {
				v, _ := getConfigValue(cfg, key)
				fmt.Printf("%-20s %s\n", key+":", v)
			}
		} else {
			outputJSON(cfg)
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		v, ok := getConfigValue(cfg, key)
		if !ok {
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if humanOutput {
			fmt.Println(v)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): v})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if err := setConfigValue(cfg, key, value); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}
	return nil
}

// normalizeKey accepts snake_case and kebab-case spellings.
func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", "-"))
}

func getConfigValue(cfg *config.Config, key string) (string, bool) {
	switch key {
	case "base-url":
		return cfg.BaseURL, true
	case "user-agent":
		return cfg.UserAgent, true
	case "fbs-count":
		return strconv.Itoa(cfg.FBSCount), true
	case "workers":
		return strconv.Itoa(cfg.Workers), true
	case "requests-per-second":
		return strconv.FormatFloat(cfg.RequestsPerSecond, 'g', -1, 64), true
	case "timeout-seconds":
		return strconv.Itoa(cfg.TimeoutSeconds), true
	case "browser":
		return strconv.FormatBool(cfg.Browser), true
	case "default-format":
		return cfg.DefaultFormat, true
	default:
		return "", false
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	var err error
	switch key {
	case "base-url":
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("invalid base-url %q: must start with http:// or https://", value)
		}
		cfg.BaseURL = strings.TrimRight(value, "/")
	case "user-agent":
		cfg.UserAgent = value
	case "fbs-count":
		cfg.FBSCount, err = config.ValidatePositive(key, value)
	case "workers":
		cfg.Workers, err = config.ValidatePositive(key, value)
	case "requests-per-second":
		var rps float64
		rps, err = strconv.ParseFloat(value, 64)
		if err != nil || rps <= 0 {
			return fmt.Errorf("invalid %s: %q (must be a positive number)", key, value)
		}
		cfg.RequestsPerSecond = rps
	case "timeout-seconds":
		cfg.TimeoutSeconds, err = config.ValidatePositive(key, value)
	case "browser":
		cfg.Browser, err = strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %q (must be true or false)", key, value)
		}
	case "default-format":
		if err := config.ValidateFormat(value); err != nil {
			return err
		}
		cfg.DefaultFormat = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return err
}
