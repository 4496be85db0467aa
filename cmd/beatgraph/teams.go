package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/matsen/beatgraph/internal/conference"
	"github.com/matsen/beatgraph/internal/config"
	"github.com/matsen/beatgraph/internal/storage"
	"github.com/matsen/beatgraph/internal/team"
)

var (
	teamsDivision string
	teamsSchool   string
)

func init() {
	rootCmd.AddCommand(teamsCmd)
	teamsCmd.Flags().StringVarP(&teamsDivision, "division", "d", "", "Only list FBS or FCS teams")
	teamsCmd.Flags().StringVarP(&teamsSchool, "school", "s", "", "Show one school's results instead of standings")
}

var teamsCmd = &cobra.Command{
	Use:   "teams <year>",
	Short: "List a cached season's standings",
	Long: `List every team of a cached season, best record first.

With --school, show that school's record, who it beat and who beat it.`,
	Args: cobra.ExactArgs(1),
	RunE: runTeams,
}

// StandingRow is one team in the teams listing.
type StandingRow struct {
	Rank     int    `json:"rank"`
	Name     string `json:"name"`
	Division string `json:"division"`
	Tier     string `json:"tier,omitempty"`
	Record   string `json:"record"`
}

// SchoolDetail is the response for teams --school.
type SchoolDetail struct {
	Name     string      `json:"name"`
	Division string      `json:"division"`
	Record   string      `json:"record"`
	Beat     []string    `json:"beat"`
	LostTo   []string    `json:"lost_to"`
	Games    []team.Game `json:"games"`
}

func runTeams(cmd *cobra.Command, args []string) error {
	year := mustParseYear(args[0])

	var division team.Division
	if teamsDivision != "" {
		division = team.Division(strings.ToUpper(teamsDivision))
		if !division.Valid() {
			exitWithError(ExitError, "invalid division %q: must be FBS or FCS", teamsDivision)
		}
	}

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	mustEnsureYearCached(root, db, year)

	if teamsSchool != "" {
		showSchool(db, year, teamsSchool)
		return nil
	}

	teams, err := db.ListTeams(year, division)
	if err != nil {
		exitWithError(ExitError, "listing teams: %v", err)
	}

	conf := conference.New(cfg.PowerFive)
	rows := make([]StandingRow, len(teams))
	for i, t := range teams {
		rows[i] = StandingRow{
			Rank:     i + 1,
			Name:     t.Name,
			Division: string(t.Division),
			Record:   t.Record(),
		}
		if t.Division == team.FBS {
			rows[i].Tier = conf.Tier(t.Name)
		}
	}

	if !humanOutput {
		outputJSON(rows)
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetTitle("%d season", year)
	tw.AppendHeader(table.Row{"#", "Team", "Division", "Tier", "Record"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.Rank, r.Name, r.Division, r.Tier, r.Record})
	}
	tw.SetStyle(table.StyleRounded)
	tw.Render()
	return nil
}

// mustEnsureYearCached loads a year's snapshot into the query database
// when it is missing there.
func mustEnsureYearCached(root string, db *storage.DB, year int) {
	count, err := db.Count(year)
	if err != nil {
		exitWithError(ExitError, "counting teams: %v", err)
	}
	if count > 0 {
		return
	}
	if _, err := db.RebuildFromJSONL(config.SnapshotPath(root, year), year); err != nil {
		exitOnError(err, "loading %d season", year)
	}
}

func showSchool(db *storage.DB, year int, name string) {
	t, err := db.GetTeam(year, name)
	if err != nil {
		exitOnError(err, "looking up school")
	}
	beat, err := db.Beaten(year, t.Name)
	if err != nil {
		exitWithError(ExitError, "listing wins: %v", err)
	}
	lostTo, err := db.BeatenBy(year, t.Name)
	if err != nil {
		exitWithError(ExitError, "listing losses: %v", err)
	}

	detail := SchoolDetail{
		Name:     t.Name,
		Division: string(t.Division),
		Record:   t.Record(),
		Beat:     beat,
		LostTo:   lostTo,
		Games:    t.Games,
	}

	if !humanOutput {
		outputJSON(detail)
		return
	}

	fmt.Printf("%s (%s) %s\n", detail.Name, detail.Division, detail.Record)
	fmt.Printf("Beat:    %s\n", strings.Join(detail.Beat, ", "))
	fmt.Printf("Lost to: %s\n", strings.Join(detail.LostTo, ", "))

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"#", "Opponent", "Result"})
	for i, g := range detail.Games {
		result := string(g.Outcome)
		if result == "" {
			result = "-"
		}
		tw.AppendRow(table.Row{i + 1, g.Opponent, result})
	}
	tw.SetStyle(table.StyleRounded)
	tw.Render()
}
