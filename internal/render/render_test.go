package render

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/beatgraph/internal/conference"
	"github.com/matsen/beatgraph/internal/graph"
	"github.com/matsen/beatgraph/internal/logo"
	"github.com/matsen/beatgraph/internal/team"
)

func win(opp string) team.Game { return team.Game{Opponent: opp, Outcome: team.Win} }

func testSeason() *team.Season {
	s := team.NewSeason(2013)
	add := func(name string, d team.Division, games ...team.Game) {
		s.Add(&team.Team{Name: name, ID: name, Division: d, Wins: len(games), Games: games})
	}
	add("Auburn", team.FBS, win("Alabama"), win("Boise State"))
	add("Alabama", team.FBS, win("Montana"))
	add("Boise State", team.FBS, win("Toledo"))
	add("Toledo", team.FBS)
	add("Montana", team.FCS, win("Idaho State"))
	add("Idaho State", team.FCS)
	return s
}

func TestPlan(t *testing.T) {
	season := testSeason()
	conf := conference.Default()

	tests := []struct {
		name   string
		school string
		filter conference.Filter
		want   []Job
	}{
		{
			name:   "single school",
			school: "Auburn",
			filter: conference.P5,
			want:   []Job{{School: "Auburn", Filter: conference.P5}},
		},
		{
			name:   "single school ignores case",
			school: "boise state",
			filter: conference.G5,
			want:   []Job{{School: "Boise State", Filter: conference.G5}},
		},
		{
			name:   "all fcs",
			school: "all",
			filter: conference.FCS,
			want: []Job{
				{School: "Idaho State", Filter: conference.FCS},
				{School: "Montana", Filter: conference.FCS},
			},
		},
		{
			name:   "all g5 charts every fbs school",
			school: "ALL",
			filter: conference.G5,
			want: []Job{
				{School: "Alabama", Filter: conference.G5},
				{School: "Auburn", Filter: conference.G5},
				{School: "Boise State", Filter: conference.G5},
				{School: "Toledo", Filter: conference.G5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plan(season, conf, tt.school, tt.filter)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlan_AllAll(t *testing.T) {
	jobs, err := Plan(testSeason(), conference.Default(), "all", conference.All)
	require.NoError(t, err)

	// Four FBS schools three ways each plus two FCS schools.
	assert.Len(t, jobs, 4*3+2)
	assert.Contains(t, jobs, Job{School: "Toledo", Filter: conference.P5})
	assert.Contains(t, jobs, Job{School: "Montana", Filter: conference.FCS})
	assert.NotContains(t, jobs, Job{School: "Montana", Filter: conference.FBS})
}

func TestPlan_UnknownSchool(t *testing.T) {
	_, err := Plan(testSeason(), conference.Default(), "Nowhere State", conference.FBS)
	assert.ErrorIs(t, err, ErrUnknownSchool)
}

func TestOutputPath(t *testing.T) {
	conf := conference.Default()

	tests := []struct {
		name   string
		job    Job
		format string
		want   string
	}{
		{"power five", Job{School: "Auburn", Filter: conference.FBS}, "png", "charts/P5 FBS/Auburn FBS.png"},
		{"group of five", Job{School: "Toledo", Filter: conference.G5}, "svg", "charts/G5 G5/Toledo G5.svg"},
		{"fcs", Job{School: "Montana", Filter: conference.FCS}, "png", "charts/FCS FCS/Montana FCS.png"},
		{"all filter", Job{School: "Montana", Filter: conference.All}, "dot", "charts/G5 ALL/Montana ALL.dot"},
		{"full graph", FullJob(conference.P5), "html", "charts/All P5.html"},
		{"separator in name", Job{School: "Texas A&M/Commerce", Filter: conference.FCS}, "png", "charts/FCS FCS/Texas A&M-Commerce FCS.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputPath("charts", tt.job, conf, tt.format)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestToDOT(t *testing.T) {
	data := &GraphData{
		Title: "Auburn FBS 2013",
		Nodes: []Node{
			{ID: "Auburn", Label: "Auburn", Logo: "logos/Auburn.png", Record: "2-0"},
			{ID: "Alabama", Label: "Alabama"},
		},
		Edges: []Edge{{Source: "Auburn", Target: "Alabama"}},
	}

	out := ToDOT(data)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "digraph"))
	assert.Contains(t, out, "logos/Auburn.png")
	assert.Contains(t, out, "imagescale")
	assert.Contains(t, out, "fixedsize")
	assert.Contains(t, out, "Auburn (2-0)")
	assert.Contains(t, out, "Alabama")
	assert.Equal(t, 1, strings.Count(out, "->"))
}

func TestGenerateHTML(t *testing.T) {
	data := &GraphData{
		Title: "Auburn FBS 2013",
		Root:  "Auburn",
		Nodes: []Node{{ID: "Auburn", Label: "Auburn"}, {ID: "Alabama", Label: "Alabama", Depth: intPtr(1)}},
		Edges: []Edge{{Source: "Auburn", Target: "Alabama"}},
	}

	page, err := GenerateHTML(data, HTMLOptions{})
	require.NoError(t, err)
	assert.Contains(t, page, "cytoscape")
	assert.Contains(t, page, `"breadthfirst"`)
	assert.Contains(t, page, `"source":"Auburn"`)
	assert.Contains(t, page, "node[?root]")

	_, err = GenerateHTML(data, HTMLOptions{Layout: "spiral"})
	assert.Error(t, err)

	_, err = GenerateHTML(nil, HTMLOptions{})
	assert.Error(t, err)

	empty, err := GenerateHTML(&GraphData{Title: "Empty"}, HTMLOptions{})
	require.NoError(t, err)
	assert.Contains(t, empty, "No schools in this chart")
}

func intPtr(n int) *int { return &n }

func TestNewGraphData_FullGraphHasNoDepth(t *testing.T) {
	season := testSeason()
	g := graph.Build(season, conference.Default(), conference.FBS, "")

	data := NewGraphData("All FBS", "", g, season, nil, nil)
	require.NotEmpty(t, data.Nodes)
	for _, n := range data.Nodes {
		assert.Nil(t, n.Depth, n.ID)
	}

	out, err := data.ToCytoscapeJSON()
	require.NoError(t, err)
	assert.NotContains(t, out, `"depth"`)
	assert.NotContains(t, out, `"root"`)
}

func TestToCytoscapeJSON(t *testing.T) {
	data := &GraphData{
		Title: "Auburn FBS 2013",
		Root:  "Auburn",
		Nodes: []Node{
			{ID: "Auburn", Label: "Auburn", Record: "2-0", Depth: intPtr(0)},
			{ID: "Alabama", Label: "Alabama", Logo: "logos/Alabama.png", Depth: intPtr(1)},
		},
		Edges: []Edge{{Source: "Auburn", Target: "Alabama"}},
	}

	out, err := data.ToCytoscapeJSON()
	require.NoError(t, err)

	var elements CytoscapeElements
	require.NoError(t, json.Unmarshal([]byte(out), &elements))

	want := []CytoscapeNodeData{
		{ID: "Auburn", Caption: "Auburn\n2-0", Tooltip: "Auburn (2-0)", Depth: intPtr(0), Root: true},
		{ID: "Alabama", Caption: "Alabama", Tooltip: "Alabama", Logo: "logos/Alabama.png", Depth: intPtr(1)},
	}
	got := make([]CytoscapeNodeData, 0, len(elements.Nodes))
	for _, n := range elements.Nodes {
		got = append(got, n.Data)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, elements.Edges, 1)
	assert.Equal(t, "Auburn beat Alabama", elements.Edges[0].Data.ID)
}

func newRenderer(t *testing.T, format string) *Renderer {
	t.Helper()
	dir := t.TempDir()
	return &Renderer{
		Season:      testSeason(),
		Conferences: conference.Default(),
		ChartsDir:   filepath.Join(dir, "charts"),
		Format:      format,
	}
}

func TestRender_TreeDOT(t *testing.T) {
	r := newRenderer(t, FormatDOT)

	res, err := r.Render(context.Background(), Job{School: "Auburn", Filter: conference.FBS})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(r.ChartsDir, "P5 FBS", "Auburn FBS.dot"), res.Path)
	assert.Equal(t, 4, res.Nodes)
	assert.Equal(t, 3, res.Edges)
	assert.Empty(t, res.Excluded)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "->"))
}

func TestRender_ReportsExcluded(t *testing.T) {
	r := newRenderer(t, FormatDOT)

	res, err := r.Render(context.Background(), Job{School: "Toledo", Filter: conference.FBS})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Nodes)
	assert.Equal(t, []string{"Alabama", "Auburn", "Boise State"}, res.Excluded)
}

func TestRender_FullHTMLWithLogos(t *testing.T) {
	r := newRenderer(t, FormatHTML)
	r.Logos = logo.NewStore(filepath.Join(filepath.Dir(r.ChartsDir), "logos"), nil)
	require.NoError(t, r.Logos.Store("Auburn", strings.NewReader("png")))

	res, err := r.Render(context.Background(), FullJob(conference.FCS))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.ChartsDir, "All FCS.html"), res.Path)
	assert.Equal(t, 2, res.Nodes)
	assert.Equal(t, 1, res.Edges)

	res, err = r.Render(context.Background(), FullJob(conference.P5))
	require.NoError(t, err)

	page, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(page), `"logo":"../logos/Auburn.png"`)
}

func TestRender_PNGNeedsGraphviz(t *testing.T) {
	r := newRenderer(t, FormatPNG)
	_, err := r.Render(context.Background(), Job{School: "Auburn", Filter: conference.FBS})
	assert.ErrorIs(t, err, ErrGraphvizMissing)
}

func TestRender_PNGWithGraphviz(t *testing.T) {
	gv, err := LookGraphviz()
	if err != nil {
		t.Skip("graphviz not installed")
	}

	r := newRenderer(t, FormatSVG)
	r.Graphviz = gv
	res, err := r.Render(context.Background(), Job{School: "Auburn", Filter: conference.FBS})
	require.NoError(t, err)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestRenderAll(t *testing.T) {
	r := newRenderer(t, FormatDOT)
	jobs, err := Plan(r.Season, r.Conferences, "all", conference.FCS)
	require.NoError(t, err)

	results, err := r.RenderAll(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Idaho State", results[0].Job.School)
	assert.Equal(t, "Montana", results[1].Job.School)
	for _, res := range results {
		assert.FileExists(t, res.Path)
	}
}
