package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/beatgraph/internal/conference"
	"github.com/matsen/beatgraph/internal/config"
	"github.com/matsen/beatgraph/internal/logo"
	"github.com/matsen/beatgraph/internal/render"
	"github.com/matsen/beatgraph/internal/team"
)

var (
	graphFull    bool
	graphFormat  string
	graphLayout  string
	graphNoLogos bool
)

func init() {
	rootCmd.AddCommand(graphCmd)
	addChartFlags(graphCmd)
	graphCmd.Flags().BoolVar(&graphFull, "full", false, "Draw the whole division graph instead of school trees (school must be 'all')")
}

// addChartFlags registers the flags shared by graph and run.
func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&graphFormat, "format", "f", "", "Chart format: png, svg, dot, html (default from config)")
	cmd.Flags().StringVar(&graphLayout, "layout", "", "HTML layout: breadthfirst, force, circle, grid")
	cmd.Flags().BoolVar(&graphNoLogos, "no-logos", false, "Draw text labels instead of downloading logos")
}

var graphCmd = &cobra.Command{
	Use:   "graph <year> <school|all> <division>",
	Short: "Draw who-beat-whom charts from a cached season",
	Long: `Draw the shortest chain of wins from a school to every team it can reach.

Division is one of All, FBS, P5, G5, FCS. With school 'all', a chart is drawn
for every school the division applies to; 'all All' draws FBS, P5 and G5
charts for every FBS school and FCS charts for every FCS school.

Charts are written to charts/<tier> <DIV>/<school> <DIV>.<format>.

Examples:
  beatgraph graph 2013 Auburn FBS
  beatgraph graph 2013 all FCS --format svg
  beatgraph graph 2013 all P5 --full --format html`,
	Args: cobra.ExactArgs(3),
	RunE: runGraph,
}

// GraphResult is the response for the graph command.
type GraphResult struct {
	Year   int              `json:"year"`
	Charts []*render.Result `json:"charts"`
}

func runGraph(cmd *cobra.Command, args []string) error {
	year := mustParseYear(args[0])
	school := args[1]
	filter := mustParseFilter(args[2])

	if graphFull && !strings.EqualFold(school, render.AllSchools) {
		exitWithError(ExitError, "--full draws every school; pass 'all' as the school")
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	season := mustLoadSeason(root, year)
	conf := conference.New(cfg.PowerFive)

	var jobs []render.Job
	if graphFull {
		jobs = []render.Job{render.FullJob(filter)}
	} else {
		jobs = mustPlan(season, conf, school, filter)
	}

	results := mustRenderCharts(cmd.Context(), root, cfg, season, conf, jobs)

	if humanOutput {
		printCharts(results)
	} else {
		outputJSON(GraphResult{Year: year, Charts: results})
	}
	return nil
}

func mustPlan(season *team.Season, conf *conference.Conferences, school string, filter conference.Filter) []render.Job {
	jobs, err := render.Plan(season, conf, school, filter)
	if err != nil {
		exitOnError(err, "planning charts")
	}
	return jobs
}

// mustRenderCharts draws every job with the format chosen by flag or config.
func mustRenderCharts(ctx context.Context, root string, cfg *config.Config, season *team.Season, conf *conference.Conferences, jobs []render.Job) []*render.Result {
	format := graphFormat
	if format == "" {
		format = cfg.DefaultFormat
	}
	if err := config.ValidateFormat(format); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	r := &render.Renderer{
		Season:      season,
		Conferences: conf,
		ChartsDir:   config.ChartsPath(root),
		Format:      format,
		Layout:      graphLayout,
		Logger:      logger,
	}
	if !graphNoLogos {
		r.Logos = logo.NewStore(config.LogosPath(root), logger)
	}
	if format == render.FormatPNG || format == render.FormatSVG {
		gv, err := render.LookGraphviz()
		if err != nil {
			exitOnError(err, "rendering %s", format)
		}
		r.Graphviz = gv
	}

	results, err := r.RenderAll(ctx, jobs)
	if err != nil {
		exitOnError(err, "rendering charts")
	}
	return results
}
