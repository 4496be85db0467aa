package render

import (
	"github.com/emicklei/dot"
)

// logoSize is the node width and height in inches.
const logoSize = "1.5"

// ToDOT writes the chart as a Graphviz digraph. Schools with a logo are
// drawn as the image alone; the rest fall back to a labelled box.
func ToDOT(data *GraphData) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("layout", "dot")
	if data.Title != "" {
		g.Attr("label", data.Title)
		g.Attr("labelloc", "t")
	}

	nodes := make(map[string]dot.Node, len(data.Nodes))
	for _, n := range data.Nodes {
		node := g.Node(n.ID).Attr("tooltip", tooltip(n))
		if n.Logo != "" {
			node.Attr("shape", "none").
				Attr("label", " ").
				Attr("height", logoSize).
				Attr("width", logoSize).
				Attr("fixedsize", "true").
				Attr("image", n.Logo).
				Attr("imagescale", "true")
		} else {
			node.Attr("shape", "box").Attr("label", n.Label)
		}
		nodes[n.ID] = node
	}

	for _, e := range data.Edges {
		g.Edge(nodes[e.Source], nodes[e.Target])
	}

	return g.String()
}

func tooltip(n Node) string {
	if n.Record == "" {
		return n.Label
	}
	return n.Label + " (" + n.Record + ")"
}
