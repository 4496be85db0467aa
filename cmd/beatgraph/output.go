package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/matsen/beatgraph/internal/graph"
	"github.com/matsen/beatgraph/internal/render"
	"github.com/matsen/beatgraph/internal/storage"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	closeLogger()
	os.Exit(code)
}

// exitOnError reports err with context and exits with the code its kind maps to.
func exitOnError(err error, format string, args ...interface{}) {
	exitWithError(exitCodeFor(err), "%s: %v", fmt.Sprintf(format, args...), err)
}

// exitCodeFor maps domain errors to exit codes.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNoSnapshot), errors.Is(err, storage.ErrMalformedSnapshot):
		return ExitDataError
	case errors.Is(err, render.ErrUnknownSchool), errors.Is(err, graph.ErrUnknownRoot),
		errors.Is(err, storage.ErrTeamNotFound):
		return ExitUnknownSchool
	case errors.Is(err, render.ErrGraphvizMissing):
		return ExitGraphvizMissing
	default:
		return ExitError
	}
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// printCharts lists written charts and the schools each tree left out.
func printCharts(results []*render.Result) {
	for _, res := range results {
		outputHuman("%s (%d schools, %d wins)\n", res.Path, res.Nodes, res.Edges)
		if len(res.Excluded) > 0 {
			outputHuman("  Schools not in graph: %v\n", res.Excluded)
		}
	}
}
