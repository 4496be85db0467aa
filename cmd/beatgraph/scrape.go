package main

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/beatgraph/internal/config"
	"github.com/matsen/beatgraph/internal/scrape"
	"github.com/matsen/beatgraph/internal/storage"
	"github.com/matsen/beatgraph/internal/team"
)

var (
	scrapeStrict  bool
	scrapeBrowser bool
)

func init() {
	// .env may set BEATGRAPH_BASE_URL / BEATGRAPH_USER_AGENT
	_ = godotenv.Load()

	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.Flags().BoolVar(&scrapeStrict, "strict", false, "Fail if any team's schedule cannot be read")
	scrapeCmd.Flags().BoolVar(&scrapeBrowser, "browser", false, "Render pages with headless Chrome")
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <year>",
	Short: "Scrape a season and cache it",
	Long: `Fetch the team roster, then every team's schedule for the season, and
write the result to .beatgraph/teams<year>.jsonl.

Teams whose schedule cannot be read are logged and kept without games,
unless --strict is given. The query database is refreshed for the year.`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

// ScrapeResult is the response for the scrape command.
type ScrapeResult struct {
	Year    int      `json:"year"`
	Teams   int      `json:"teams"`
	FBS     int      `json:"fbs"`
	FCS     int      `json:"fcs"`
	Skipped []string `json:"skipped,omitempty"`
	Path    string   `json:"path"`
}

func runScrape(cmd *cobra.Command, args []string) error {
	year := mustParseYear(args[0])
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	result := mustScrapeSeason(cmd.Context(), root, cfg, year, scrapeStrict, scrapeBrowser)
	season := result.Season

	out := ScrapeResult{
		Year:    year,
		Teams:   season.Len(),
		FBS:     len(season.InDivision(team.FBS)),
		FCS:     len(season.InDivision(team.FCS)),
		Skipped: result.Skipped,
		Path:    config.SnapshotPath(root, year),
	}

	if humanOutput {
		fmt.Printf("Scraped %d teams (%d FBS, %d FCS) for %d\n", out.Teams, out.FBS, out.FCS, year)
		if len(out.Skipped) > 0 {
			fmt.Printf("Skipped: %v\n", out.Skipped)
		}
		fmt.Printf("Saved to %s\n", out.Path)
	} else {
		outputJSON(out)
	}
	return nil
}

// newFetcher builds the page fetcher the config asks for. The returned
// cleanup must be called when scraping is done.
func newFetcher(ctx context.Context, cfg *config.Config, browser bool) (scrape.Fetcher, func(), error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if browser || cfg.Browser {
		b, err := scrape.NewBrowserFetcher(ctx, cfg.UserAgent, timeout, cfg.RequestsPerSecond)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { b.Close() }, nil
	}
	return scrape.NewHTTPFetcher(
		scrape.WithUserAgent(cfg.UserAgent),
		scrape.WithTimeout(timeout),
		scrape.WithRateLimit(cfg.RequestsPerSecond),
	), func() {}, nil
}

// mustScrapeSeason scrapes a season, writes its snapshot and refreshes the
// query database.
func mustScrapeSeason(ctx context.Context, root string, cfg *config.Config, year int, strict, browser bool) *scrape.Result {
	fetcher, cleanup, err := newFetcher(ctx, cfg, browser)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer cleanup()

	s := scrape.New(fetcher,
		scrape.WithBaseURL(cfg.BaseURL),
		scrape.WithLogger(logger),
		scrape.WithFBSCount(cfg.FBSCount),
		scrape.WithWorkers(cfg.Workers),
		scrape.WithStrict(strict),
	)

	result, err := s.Season(ctx, year)
	if err != nil {
		exitOnError(err, "scraping %d", year)
	}

	path := config.SnapshotPath(root, year)
	if err := storage.WriteSeason(path, result.Season); err != nil {
		exitWithError(ExitError, "saving snapshot: %v", err)
	}
	logger.Info("snapshot saved", zap.String("path", path), zap.Int("teams", result.Season.Len()))

	db := mustOpenDatabase(root)
	defer db.Close()
	if _, err := db.RebuildFromJSONL(path, year); err != nil {
		exitOnError(err, "refreshing query database")
	}

	return result
}
