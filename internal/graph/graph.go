// Package graph builds "who beat whom" graphs from a season and reduces
// them to shortest-path trees.
package graph

import (
	"sort"

	"github.com/matsen/beatgraph/internal/conference"
	"github.com/matsen/beatgraph/internal/team"
)

// Edge is a win: From beat To.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WinGraph is a directed graph with at most one edge per ordered pair.
type WinGraph struct {
	adj   map[string]map[string]struct{}
	edges int
}

// New creates an empty graph.
func New() *WinGraph {
	return &WinGraph{adj: make(map[string]map[string]struct{})}
}

// AddNode adds n if it is not already present.
func (g *WinGraph) AddNode(n string) {
	if _, ok := g.adj[n]; !ok {
		g.adj[n] = make(map[string]struct{})
	}
}

// AddEdge adds from -> to, creating either node as needed. It reports
// whether the edge was new. Self loops are ignored.
func (g *WinGraph) AddEdge(from, to string) bool {
	if from == to {
		return false
	}
	g.AddNode(from)
	g.AddNode(to)
	if _, ok := g.adj[from][to]; ok {
		return false
	}
	g.adj[from][to] = struct{}{}
	g.edges++
	return true
}

// HasNode reports whether n is in the graph.
func (g *WinGraph) HasNode(n string) bool {
	_, ok := g.adj[n]
	return ok
}

// HasEdge reports whether from -> to is in the graph.
func (g *WinGraph) HasEdge(from, to string) bool {
	_, ok := g.adj[from][to]
	return ok
}

// Len returns the number of nodes.
func (g *WinGraph) Len() int {
	return len(g.adj)
}

// EdgeCount returns the number of edges.
func (g *WinGraph) EdgeCount() int {
	return g.edges
}

// Nodes returns every node in name order.
func (g *WinGraph) Nodes() []string {
	nodes := make([]string, 0, len(g.adj))
	for n := range g.adj {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}

// Successors returns the teams n beat, in name order.
func (g *WinGraph) Successors(n string) []string {
	out := make([]string, 0, len(g.adj[n]))
	for m := range g.adj[n] {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Edges returns every edge ordered by From, then To.
func (g *WinGraph) Edges() []Edge {
	edges := make([]Edge, 0, g.edges)
	for _, from := range g.Nodes() {
		for _, to := range g.Successors(from) {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// Build creates the win graph for one filter. Nodes are every team the
// filter includes plus root (which may be empty). A win adds an edge only
// when the opponent is a team of the season that is itself a node.
func Build(season *team.Season, conf *conference.Conferences, f conference.Filter, root string) *WinGraph {
	included := func(name string) bool {
		if root != "" && name == root {
			return true
		}
		t, ok := season.Get(name)
		return ok && conf.Includes(f, name, t.Division)
	}

	g := New()
	if root != "" {
		g.AddNode(root)
	}

	for _, t := range season.Teams() {
		if !included(t.Name) {
			continue
		}
		g.AddNode(t.Name)
		for _, game := range t.Games {
			if game.Outcome != team.Win {
				continue
			}
			if _, ok := season.Get(game.Opponent); !ok || !included(game.Opponent) {
				continue
			}
			g.AddEdge(t.Name, game.Opponent)
		}
	}

	return g
}
