package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/beatgraph/internal/conference"
	"github.com/matsen/beatgraph/internal/config"
	"github.com/matsen/beatgraph/internal/render"
	"github.com/matsen/beatgraph/internal/storage"
	"github.com/matsen/beatgraph/internal/team"
)

const (
	modeReuse  = "reuse"
	modeScrape = "scrape"
)

var runStrict bool

func init() {
	rootCmd.AddCommand(runCmd)
	addChartFlags(runCmd)
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "Fail if any team's schedule cannot be read")
}

var runCmd = &cobra.Command{
	Use:   "run <reuse|scrape> <year> <school|all> <division>",
	Short: "Scrape or reuse a season, then draw charts",
	Long: `Run the whole pipeline in one shot.

'reuse' loads the cached season and fails if it was never scraped.
'scrape' fetches the season first and replaces the cache.

Examples:
  beatgraph run scrape 2013 Auburn FBS
  beatgraph run reuse 2013 all All`,
	Args: cobra.ExactArgs(4),
	RunE: runRun,
}

// RunResult is the response for the run command.
type RunResult struct {
	Mode    string           `json:"mode"`
	Year    int              `json:"year"`
	Skipped []string         `json:"skipped,omitempty"`
	Charts  []*render.Result `json:"charts"`
	Elapsed float64          `json:"elapsed_seconds"`
}

func runRun(cmd *cobra.Command, args []string) error {
	start := time.Now()

	mode := args[0]
	if mode != modeReuse && mode != modeScrape {
		exitWithError(ExitError, "invalid mode %q: must be %s or %s", mode, modeReuse, modeScrape)
	}
	year := mustParseYear(args[1])
	school := args[2]
	filter := mustParseFilter(args[3])

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	var season *team.Season
	var skipped []string
	if mode == modeScrape {
		result := mustScrapeSeason(cmd.Context(), root, cfg, year, runStrict, false)
		season, skipped = result.Season, result.Skipped
	} else {
		if !storage.SnapshotExists(config.SnapshotPath(root, year)) {
			exitWithError(ExitDataError, "no cached %d season, scrape first", year)
		}
		season = mustLoadSeason(root, year)
	}

	conf := conference.New(cfg.PowerFive)
	jobs := mustPlan(season, conf, school, filter)
	results := mustRenderCharts(cmd.Context(), root, cfg, season, conf, jobs)
	elapsed := time.Since(start)

	if humanOutput {
		printCharts(results)
		fmt.Printf("Finished in %.1fs\n", elapsed.Seconds())
	} else {
		outputJSON(RunResult{
			Mode:    mode,
			Year:    year,
			Skipped: skipped,
			Charts:  results,
			Elapsed: elapsed.Seconds(),
		})
	}
	return nil
}
