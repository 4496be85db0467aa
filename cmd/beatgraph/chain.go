package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/beatgraph/internal/conference"
	"github.com/matsen/beatgraph/internal/graph"
	"github.com/matsen/beatgraph/internal/render"
)

var chainDivision string

func init() {
	rootCmd.AddCommand(chainCmd)
	chainCmd.Flags().StringVarP(&chainDivision, "division", "d", "All", "Only follow wins over teams in this division")
}

var chainCmd = &cobra.Command{
	Use:   "chain <year> <from> <to>",
	Short: "Show the shortest chain of wins from one school to another",
	Long: `Show the shortest chain of wins from one school to another.

Example:
  beatgraph chain 2013 Auburn Montana
  Auburn beat Alabama, Alabama beat Montana`,
	Args: cobra.ExactArgs(3),
	RunE: runChain,
}

// ChainResult is the response for the chain command.
type ChainResult struct {
	Year int      `json:"year"`
	From string   `json:"from"`
	To   string   `json:"to"`
	Path []string `json:"path"`
	Wins int      `json:"wins"`
}

func runChain(cmd *cobra.Command, args []string) error {
	year := mustParseYear(args[0])
	filter := mustParseFilter(chainDivision)

	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	season := mustLoadSeason(root, year)

	from, err := render.ResolveSchool(season, args[1])
	if err != nil {
		exitOnError(err, "resolving school")
	}
	to, err := render.ResolveSchool(season, args[2])
	if err != nil {
		exitOnError(err, "resolving school")
	}

	g := graph.Build(season, conference.New(cfg.PowerFive), filter, from)
	tree, err := graph.ShortestPathTree(g, from)
	if err != nil {
		exitOnError(err, "building tree")
	}
	path, err := tree.PathTo(to)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		if len(path) == 1 {
			fmt.Printf("%s is %s\n", from, to)
			return nil
		}
		links := make([]string, 0, len(path)-1)
		for i := 1; i < len(path); i++ {
			links = append(links, fmt.Sprintf("%s beat %s", path[i-1], path[i]))
		}
		fmt.Println(strings.Join(links, ", "))
	} else {
		outputJSON(ChainResult{
			Year: year,
			From: from,
			To:   to,
			Path: path,
			Wins: len(path) - 1,
		})
	}
	return nil
}
