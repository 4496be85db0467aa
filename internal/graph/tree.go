package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRoot is returned when the tree root is not a node of the graph.
	ErrUnknownRoot = errors.New("root is not in graph")

	// ErrUnreachable is returned when no chain of wins leads to a team.
	ErrUnreachable = errors.New("no chain of wins reaches team")
)

// Tree is a shortest-path spanning tree over a WinGraph.
type Tree struct {
	Root   string
	Parent map[string]string
	Depth  map[string]int
	Graph  *WinGraph
}

// ShortestPathTree runs a breadth-first search from root. Every edge costs
// one, so BFS order yields shortest paths. Successors are visited in name
// order, which makes the parent of each node deterministic.
func ShortestPathTree(g *WinGraph, root string) (*Tree, error) {
	if !g.HasNode(root) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoot, root)
	}

	t := &Tree{
		Root:   root,
		Parent: make(map[string]string),
		Depth:  map[string]int{root: 0},
		Graph:  New(),
	}
	t.Graph.AddNode(root)

	queue := []string{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, m := range g.Successors(n) {
			if _, seen := t.Depth[m]; seen {
				continue
			}
			t.Depth[m] = t.Depth[n] + 1
			t.Parent[m] = n
			t.Graph.AddEdge(n, m)
			queue = append(queue, m)
		}
	}

	return t, nil
}

// Contains reports whether team is reachable from the root.
func (t *Tree) Contains(team string) bool {
	_, ok := t.Depth[team]
	return ok
}

// PathTo returns the chain of wins from the root to team, both included.
func (t *Tree) PathTo(team string) ([]string, error) {
	if !t.Contains(team) {
		return nil, fmt.Errorf("%w: %s from %s", ErrUnreachable, team, t.Root)
	}

	path := []string{team}
	for n := team; n != t.Root; {
		n = t.Parent[n]
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Excluded lists the nodes of full that sub does not contain, in name order.
func Excluded(full, sub *WinGraph) []string {
	var out []string
	for _, n := range full.Nodes() {
		if !sub.HasNode(n) {
			out = append(out, n)
		}
	}
	return out
}
