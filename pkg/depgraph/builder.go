package depgraph

import (
	"sort"
	"strings"

	"github.com/pydepviz/pydepviz/pkg/scan"
)

// Options controls graph construction.
type Options struct {
	// NormalArrows orients edges importer → imported. The default (false)
	// reverses them so arrows point from a dependency to its dependents.
	NormalArrows bool

	// ClusterMappings maps path prefixes (relative to the root package
	// directory, slash-separated) to display labels. The empty prefix ""
	// groups files directly inside the root package.
	ClusterMappings map[string]string
}

// Build assembles the renderable graph from a scan result. Every scanned
// module becomes a node even when it has no edges; edges are deduplicated
// and self-imports dropped by the graph itself.
func Build(res *scan.Result, opts Options) *Graph {
	g := NewGraph()

	for _, m := range res.Modules {
		g.AddNode(Node{
			ID:      m.Name,
			Label:   m.Name,
			Cluster: clusterFor(m.SubPath, opts.ClusterMappings),
		})
	}

	for _, d := range res.Deps {
		from, to := d.From, d.To
		if !opts.NormalArrows {
			from, to = to, from
		}
		g.AddEdge(from, to, d.Names)
	}

	return g
}

// clusterFor assigns a module to the cluster whose path prefix is the
// longest match against the module's location inside the root package.
// The empty prefix matches only top-level files; no match leaves the module
// unclustered.
func clusterFor(subPath string, mappings map[string]string) string {
	if len(mappings) == 0 {
		return ""
	}

	prefixes := make([]string, 0, len(mappings))
	for p := range mappings {
		prefixes = append(prefixes, p)
	}
	// Longest first so the most specific prefix wins; lexicographic
	// tie-break keeps assignment deterministic.
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})

	for _, p := range prefixes {
		if p == "" {
			if !strings.Contains(subPath, "/") {
				return mappings[p]
			}
			continue
		}
		if subPath == p || strings.HasPrefix(subPath, p+"/") {
			return mappings[p]
		}
	}
	return ""
}
