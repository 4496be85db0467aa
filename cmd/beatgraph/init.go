package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/beatgraph/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new beatgraph workspace",
	Long: `Initialize a new beatgraph workspace in the current directory.

Creates:
  .beatgraph/
  ├── config.json     # Default config
  └── cache/          # Query database (rebuildable)

Season snapshots (teams<year>.jsonl) are written to .beatgraph/ by scrape.
Logos and charts are written to logos/ and charts/ beside it.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsWorkspace(root) {
		exitWithError(ExitError, "directory already contains a beatgraph workspace")
	}

	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .beatgraph directory: %v", err)
	}

	if err := config.Default().Save(root); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized beatgraph workspace in %s\n", config.WorkspacePath(root))
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   config.WorkspacePath(root),
		})
	}
	return nil
}
