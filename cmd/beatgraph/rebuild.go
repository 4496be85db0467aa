package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/beatgraph/internal/config"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query layer from season snapshots",
	Long: `Rebuild the SQLite query database from every teams<year>.jsonl snapshot.

Use this after copying snapshots in or if the database becomes corrupted.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// SeasonCount is the number of teams loaded for one season.
type SeasonCount struct {
	Year  int `json:"year"`
	Teams int `json:"teams"`
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status  string        `json:"status"`
	Seasons []SeasonCount `json:"seasons"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()

	years, err := config.SnapshotYears(root)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	db := mustOpenDatabase(root)
	defer db.Close()

	seasons := make([]SeasonCount, 0, len(years))
	for _, year := range years {
		n, err := db.RebuildFromJSONL(config.SnapshotPath(root, year), year)
		if err != nil {
			exitOnError(err, "rebuilding %d season", year)
		}
		seasons = append(seasons, SeasonCount{Year: year, Teams: n})
	}

	if humanOutput {
		if len(seasons) == 0 {
			fmt.Println("No season snapshots found; run 'beatgraph scrape <year>' first")
			return nil
		}
		for _, s := range seasons {
			fmt.Printf("Rebuilt %d season with %d teams\n", s.Year, s.Teams)
		}
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Seasons: seasons})
	}
	return nil
}
