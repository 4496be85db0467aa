package render

import (
	"github.com/matsen/beatgraph/internal/graph"
	"github.com/matsen/beatgraph/internal/team"
)

// GraphData contains all data needed to draw a chart.
type GraphData struct {
	Title string `json:"title"`
	Root  string `json:"root,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a school in the chart. Depth is the distance from the root and is
// nil when the chart is not a tree.
type Node struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Logo     string `json:"logo,omitempty"`
	Record   string `json:"record,omitempty"`
	Division string `json:"division,omitempty"`
	Depth    *int   `json:"depth,omitempty"`
}

// Edge is a win from Source over Target.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// IsEmpty returns true if the chart has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// NewGraphData collects chart data for g. logos maps team name to image
// path; depth may be nil for full graphs.
func NewGraphData(title, root string, g *graph.WinGraph, season *team.Season, logos map[string]string, depth map[string]int) *GraphData {
	data := &GraphData{
		Title: title,
		Root:  root,
		Nodes: make([]Node, 0, g.Len()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}

	for _, name := range g.Nodes() {
		n := Node{ID: name, Label: name, Logo: logos[name]}
		if d, ok := depth[name]; ok {
			n.Depth = &d
		}
		if t, ok := season.Get(name); ok {
			n.Record = t.Record()
			n.Division = string(t.Division)
		}
		data.Nodes = append(data.Nodes, n)
	}
	for _, e := range g.Edges() {
		data.Edges = append(data.Edges, Edge{Source: e.From, Target: e.To})
	}

	return data
}
