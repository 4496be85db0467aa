package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/beatgraph/internal/conference"
	"github.com/matsen/beatgraph/internal/team"
)

func win(opp string) team.Game { return team.Game{Opponent: opp, Outcome: team.Win} }
func loss(opp string) team.Game { return team.Game{Opponent: opp, Outcome: team.Loss} }

// testSeason: Auburn and Alabama are Power Five, Boise State and Toledo are
// Group of Five, Montana is FCS. Toledo's upset of Auburn closes a cycle.
func testSeason() *team.Season {
	s := team.NewSeason(2013)
	add := func(name string, d team.Division, games ...team.Game) {
		s.Add(&team.Team{Name: name, ID: name, Division: d, Games: games})
	}
	add("Auburn", team.FBS,
		win("Alabama"), win("Boise State"), win("Washington State"),
		loss("Toledo"), win("Alabama"))
	add("Alabama", team.FBS, loss("Auburn"), win("Montana"), win("Boise State"), loss("Auburn"))
	add("Boise State", team.FBS, loss("Auburn"), loss("Alabama"), win("Toledo"))
	add("Toledo", team.FBS, loss("Boise State"), win("Auburn"))
	add("Montana", team.FCS, loss("Alabama"), team.Game{Opponent: "Idaho"})
	return s
}

func TestWinGraph_Basics(t *testing.T) {
	g := New()
	assert.True(t, g.AddEdge("A", "B"))
	assert.False(t, g.AddEdge("A", "B"), "duplicate edge")
	assert.False(t, g.AddEdge("A", "A"), "self loop")
	g.AddNode("C")
	g.AddNode("C")
	assert.True(t, g.AddEdge("A", "C"))

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 2, g.EdgeCount())
	assert.True(t, g.HasEdge("A", "B"))
	assert.False(t, g.HasEdge("B", "A"))
	assert.False(t, g.HasNode("D"))
	assert.Equal(t, []string{"A", "B", "C"}, g.Nodes())
	assert.Equal(t, []string{"B", "C"}, g.Successors("A"))
	assert.Empty(t, g.Successors("missing"))
}

func TestBuild(t *testing.T) {
	season := testSeason()
	conf := conference.Default()

	tests := []struct {
		name      string
		filter    conference.Filter
		root      string
		wantNodes []string
		wantEdges []Edge
	}{
		{
			name:      "all",
			filter:    conference.All,
			root:      "Auburn",
			wantNodes: []string{"Alabama", "Auburn", "Boise State", "Montana", "Toledo"},
			wantEdges: []Edge{
				{"Alabama", "Boise State"}, {"Alabama", "Montana"},
				{"Auburn", "Alabama"}, {"Auburn", "Boise State"},
				{"Boise State", "Toledo"},
				{"Toledo", "Auburn"},
			},
		},
		{
			name:      "power five",
			filter:    conference.P5,
			root:      "Auburn",
			wantNodes: []string{"Alabama", "Auburn"},
			wantEdges: []Edge{{"Auburn", "Alabama"}},
		},
		{
			name:      "group of five keeps the root",
			filter:    conference.G5,
			root:      "Auburn",
			wantNodes: []string{"Auburn", "Boise State", "Toledo"},
			wantEdges: []Edge{
				{"Auburn", "Boise State"},
				{"Boise State", "Toledo"},
				{"Toledo", "Auburn"},
			},
		},
		{
			name:      "fcs",
			filter:    conference.FCS,
			root:      "Montana",
			wantNodes: []string{"Montana"},
			wantEdges: []Edge{},
		},
		{
			name:      "fbs without root",
			filter:    conference.FBS,
			root:      "",
			wantNodes: []string{"Alabama", "Auburn", "Boise State", "Toledo"},
			wantEdges: []Edge{
				{"Alabama", "Boise State"},
				{"Auburn", "Alabama"}, {"Auburn", "Boise State"},
				{"Boise State", "Toledo"},
				{"Toledo", "Auburn"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(season, conf, tt.filter, tt.root)
			if diff := cmp.Diff(tt.wantNodes, g.Nodes()); diff != "" {
				t.Errorf("nodes mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantEdges, g.Edges()); diff != "" {
				t.Errorf("edges mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShortestPathTree(t *testing.T) {
	g := Build(testSeason(), conference.Default(), conference.All, "Auburn")

	tree, err := ShortestPathTree(g, "Auburn")
	require.NoError(t, err)

	wantEdges := []Edge{
		{"Alabama", "Montana"},
		{"Auburn", "Alabama"}, {"Auburn", "Boise State"},
		{"Boise State", "Toledo"},
	}
	if diff := cmp.Diff(wantEdges, tree.Graph.Edges()); diff != "" {
		t.Errorf("tree edges mismatch (-want +got):\n%s", diff)
	}

	wantDepth := map[string]int{"Auburn": 0, "Alabama": 1, "Boise State": 1, "Montana": 2, "Toledo": 2}
	if diff := cmp.Diff(wantDepth, tree.Depth); diff != "" {
		t.Errorf("depth mismatch (-want +got):\n%s", diff)
	}

	// Every tree edge is an edge of the source graph and points to a deeper node.
	for _, e := range tree.Graph.Edges() {
		assert.True(t, g.HasEdge(e.From, e.To), "%v not in graph", e)
		assert.Equal(t, tree.Depth[e.From]+1, tree.Depth[e.To])
	}
	assert.Empty(t, Excluded(g, tree.Graph))
}

func TestShortestPathTree_TieBreakIsByName(t *testing.T) {
	g := New()
	g.AddEdge("root", "b")
	g.AddEdge("root", "a")
	g.AddEdge("b", "z")
	g.AddEdge("a", "z")

	tree, err := ShortestPathTree(g, "root")
	require.NoError(t, err)
	assert.Equal(t, "a", tree.Parent["z"])
}

func TestShortestPathTree_Unreachable(t *testing.T) {
	g := Build(testSeason(), conference.Default(), conference.FBS, "Montana")

	tree, err := ShortestPathTree(g, "Montana")
	require.NoError(t, err)
	assert.Equal(t, []string{"Montana"}, tree.Graph.Nodes())
	assert.Equal(t, []string{"Alabama", "Auburn", "Boise State", "Toledo"}, Excluded(g, tree.Graph))

	_, err = tree.PathTo("Toledo")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestShortestPathTree_UnknownRoot(t *testing.T) {
	_, err := ShortestPathTree(New(), "Nowhere")
	assert.ErrorIs(t, err, ErrUnknownRoot)
}

func TestPathTo(t *testing.T) {
	g := Build(testSeason(), conference.Default(), conference.All, "Auburn")
	tree, err := ShortestPathTree(g, "Auburn")
	require.NoError(t, err)

	tests := []struct {
		to   string
		want []string
	}{
		{"Auburn", []string{"Auburn"}},
		{"Alabama", []string{"Auburn", "Alabama"}},
		{"Toledo", []string{"Auburn", "Boise State", "Toledo"}},
		{"Montana", []string{"Auburn", "Alabama", "Montana"}},
	}

	for _, tt := range tests {
		t.Run(tt.to, func(t *testing.T) {
			got, err := tree.PathTo(tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
