package render

import (
	"encoding/json"
	"fmt"
)

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode represents a school in Cytoscape.js format.
type CytoscapeNode struct {
	Data CytoscapeNodeData `json:"data"`
}

// CytoscapeNodeData holds what the page styles and shows for a school.
// Caption is the text drawn when there is no logo; Tooltip is shown on hover.
type CytoscapeNodeData struct {
	ID       string `json:"id"`
	Caption  string `json:"caption"`
	Tooltip  string `json:"tooltip"`
	Logo     string `json:"logo,omitempty"`
	Division string `json:"division,omitempty"`
	Depth    *int   `json:"depth,omitempty"`
	Root     bool   `json:"root,omitempty"`
}

// CytoscapeEdge represents a win in Cytoscape.js format.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains the edge data fields.
type CytoscapeEdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// ToCytoscapeJSON converts GraphData to Cytoscape.js JSON format.
func (g *GraphData) ToCytoscapeJSON() (string, error) {
	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(g.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		elements.Nodes = append(elements.Nodes, CytoscapeNode{Data: schoolData(n, g.Root)})
	}
	for _, e := range g.Edges {
		elements.Edges = append(elements.Edges, CytoscapeEdge{
			Data: CytoscapeEdgeData{
				ID:     e.Source + " beat " + e.Target,
				Source: e.Source,
				Target: e.Target,
			},
		})
	}

	jsonBytes, err := json.Marshal(elements)
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

func schoolData(n Node, root string) CytoscapeNodeData {
	d := CytoscapeNodeData{
		ID:       n.ID,
		Caption:  n.Label,
		Tooltip:  tooltip(n),
		Logo:     n.Logo,
		Division: n.Division,
		Depth:    n.Depth,
		Root:     root != "" && n.ID == root,
	}
	if n.Record != "" {
		d.Caption = fmt.Sprintf("%s\n%s", n.Label, n.Record)
	}
	return d
}
