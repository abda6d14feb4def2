// Package depgraph turns the raw import relationships produced by the
// scanner into a renderable directed graph: edges are deduplicated, oriented
// by the configured direction policy, and modules are grouped into clusters
// by longest-matching path prefix.
package depgraph

import (
	"sort"
	"strings"
)

// Node is a module rendered as a graph vertex.
type Node struct {
	ID      string // dotted module identifier, unique within a run
	Label   string // display label
	Cluster string // cluster label, empty when unclustered
}

// Edge is a directed, deduplicated import relationship.
type Edge struct {
	From    string
	To      string
	Label   string // short label built from imported names (at most three)
	Tooltip string // full imported-name list
}

// Graph is the renderable dependency graph. Node and edge iteration order is
// deterministic (sorted) so identical inputs produce identical output.
type Graph struct {
	nodes map[string]Node
	edges map[[2]string][]string // (from,to) → union of imported names
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]Node),
		edges: make(map[[2]string][]string),
	}
}

// AddNode inserts a node, replacing any previous node with the same ID.
func (g *Graph) AddNode(n Node) {
	if n.Label == "" {
		n.Label = n.ID
	}
	g.nodes[n.ID] = n
}

// AddEdge inserts a directed edge. Duplicate (from, to) pairs collapse into
// one edge whose imported-name list is the union of all occurrences.
// Self-edges are discarded.
func (g *Graph) AddEdge(from, to string, names []string) {
	if from == to {
		return
	}
	key := [2]string{from, to}
	g.edges[key] = append(g.edges[key], names...)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns all nodes sorted by ID.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns all edges sorted by (from, to).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for key, names := range g.edges {
		e := Edge{From: key[0], To: key[1]}
		e.Label, e.Tooltip = nameLabel(names)
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Clusters returns the distinct cluster labels in sorted order.
func (g *Graph) Clusters() []string {
	seen := make(map[string]bool)
	for _, n := range g.nodes {
		if n.Cluster != "" {
			seen[n.Cluster] = true
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// nameLabel builds the short edge label and full tooltip from the union of
// imported names. Names are deduplicated and sorted; labels list at most
// three.
func nameLabel(names []string) (label, tooltip string) {
	if len(names) == 0 {
		return "", ""
	}
	seen := make(map[string]bool, len(names))
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" && !seen[n] {
			seen[n] = true
			uniq = append(uniq, n)
		}
	}
	if len(uniq) == 0 {
		return "", ""
	}
	sort.Strings(uniq)

	tooltip = strings.Join(uniq, ", ")
	if len(uniq) > 3 {
		return strings.Join(uniq[:3], ", ") + "...", tooltip
	}
	return tooltip, tooltip
}
