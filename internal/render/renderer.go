package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matsen/beatgraph/internal/conference"
	"github.com/matsen/beatgraph/internal/graph"
	"github.com/matsen/beatgraph/internal/logo"
	"github.com/matsen/beatgraph/internal/team"
)

// Chart formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatHTML = "html"
)

// renderWorkers bounds concurrent graphviz processes.
const renderWorkers = 4

// Result describes one written chart.
type Result struct {
	Job      Job      `json:"job"`
	Path     string   `json:"path"`
	Nodes    int      `json:"nodes"`
	Edges    int      `json:"edges"`
	Excluded []string `json:"excluded,omitempty"`
}

// Renderer draws charts for one season.
type Renderer struct {
	Season      *team.Season
	Conferences *conference.Conferences
	ChartsDir   string
	Format      string
	Layout      string

	// Logos is optional; without it every node is a text label.
	Logos *logo.Store

	// Graphviz is required for png and svg.
	Graphviz *Graphviz

	Logger *zap.Logger
}

func (r *Renderer) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Render builds, reduces and writes the chart for one job.
func (r *Renderer) Render(ctx context.Context, job Job) (*Result, error) {
	root := job.School
	if job.Full {
		root = ""
	}

	full := graph.Build(r.Season, r.Conferences, job.Filter, root)
	out := full
	var depth map[string]int
	var excluded []string

	if !job.Full {
		tree, err := graph.ShortestPathTree(full, root)
		if err != nil {
			return nil, err
		}
		out = tree.Graph
		depth = tree.Depth
		excluded = graph.Excluded(full, out)
		if len(excluded) > 0 {
			r.logger().Info("schools not in graph",
				zap.String("school", job.School),
				zap.String("division", string(job.Filter)),
				zap.Strings("excluded", excluded))
		}
	}

	path := OutputPath(r.ChartsDir, job, r.Conferences, r.Format)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating chart dir: %w", err)
	}

	logos := r.logos(ctx, out, filepath.Dir(path))
	title := fmt.Sprintf("%s %s %d", job.Name(), job.Filter.Upper(), r.Season.Year)
	data := NewGraphData(title, root, out, r.Season, logos, depth)

	if err := r.write(ctx, data, path); err != nil {
		return nil, err
	}

	r.logger().Info("chart written",
		zap.String("path", path),
		zap.Int("nodes", out.Len()),
		zap.Int("edges", out.EdgeCount()))

	return &Result{
		Job:      job,
		Path:     path,
		Nodes:    out.Len(),
		Edges:    out.EdgeCount(),
		Excluded: excluded,
	}, nil
}

// RenderAll renders jobs concurrently and returns results in job order.
func (r *Renderer) RenderAll(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(renderWorkers)

	for i, job := range jobs {
		g.Go(func() error {
			res, err := r.Render(gctx, job)
			if err != nil {
				return fmt.Errorf("rendering %s %s: %w", job.Name(), job.Filter, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// logos fetches logos for every node. HTML charts reference images
// relative to the chart, graphviz needs them as given.
func (r *Renderer) logos(ctx context.Context, g *graph.WinGraph, chartDir string) map[string]string {
	if r.Logos == nil {
		return nil
	}

	var teams []*team.Team
	for _, name := range g.Nodes() {
		if t, ok := r.Season.Get(name); ok {
			teams = append(teams, t)
		}
	}
	paths := r.Logos.EnsureAll(ctx, teams)

	if r.Format == FormatHTML {
		for name, p := range paths {
			if rel, err := filepath.Rel(chartDir, p); err == nil {
				paths[name] = filepath.ToSlash(rel)
			}
		}
	}
	return paths
}

func (r *Renderer) write(ctx context.Context, data *GraphData, path string) error {
	switch r.Format {
	case FormatDOT:
		return os.WriteFile(path, []byte(ToDOT(data)), 0644)
	case FormatHTML:
		page, err := GenerateHTML(data, HTMLOptions{Layout: r.Layout})
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(page), 0644)
	case FormatPNG, FormatSVG:
		if r.Graphviz == nil {
			return ErrGraphvizMissing
		}
		return r.Graphviz.Render(ctx, ToDOT(data), r.Format, path)
	default:
		return fmt.Errorf("unsupported format %q", r.Format)
	}
}
