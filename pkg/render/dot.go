// Package render translates a dependency graph into Graphviz DOT and renders
// it to an image file. All geometric layout is delegated to the graphviz
// engines; this package only emits the node/edge/cluster description and
// picks the output format from the file extension.
package render

import (
	"bytes"
	"fmt"

	"github.com/pydepviz/pydepviz/pkg/depgraph"
)

// clusterColors are the translucent fill colors cycled through by clusters,
// assigned in sorted label order.
var clusterColors = []string{
	"#e41a1c30", // red
	"#4daf4a30", // green
	"#377eb830", // blue
	"#ff7f0030", // orange
	"#984ea330", // purple
	"#ffff3330", // yellow
	"#a6562830", // brown
	"#f781bf30", // pink
}

// placeholderDOT is rendered when the project yields no modules at all.
const placeholderDOT = `digraph imports {
  rankdir=%s;
  fontsize=16;
  "placeholder" [label="no modules found", shape=box, style="filled,rounded", fillcolor="#f5f5f5"];
}
`

// ToDOT converts a graph to Graphviz DOT. Output is deterministic: nodes,
// edges, and clusters appear in sorted order, so identical graphs produce
// byte-identical DOT.
func ToDOT(g *depgraph.Graph, direction string) string {
	if g.NodeCount() == 0 {
		return fmt.Sprintf(placeholderDOT, direction)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph imports {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", direction)
	buf.WriteString("  splines=curved;\n")
	buf.WriteString("  fontsize=12;\n")
	buf.WriteString("  fontname=\"Arial\";\n")
	buf.WriteString("  nodesep=1.0;\n")
	buf.WriteString("  ranksep=2.0;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  bgcolor=white;\n")
	buf.WriteString("  pad=1.5;\n")
	buf.WriteString("  concentrate=true;\n")
	buf.WriteString("  node [shape=box, style=\"filled,rounded\", fillcolor=white, fontcolor=\"#333333\", fontsize=11, fontname=\"Arial\", height=0.4, margin=\"0.15,0.1\", penwidth=1.0];\n")
	buf.WriteString("  edge [fontsize=9, fontname=\"Arial\", fontcolor=\"#555555\", penwidth=0.7, arrowsize=0.6, color=\"#55555570\", arrowhead=vee];\n")
	buf.WriteString("\n")

	writeClusters(&buf, g)
	writeStandaloneNodes(&buf, g)

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := ""
		if e.Label != "" {
			attrs = fmt.Sprintf(" [label=%q, labeltooltip=%q]", e.Label, e.Tooltip)
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.From, e.To, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeClusters emits one subgraph per cluster label, each holding the
// sorted nodes assigned to it.
func writeClusters(buf *bytes.Buffer, g *depgraph.Graph) {
	clusters := g.Clusters()
	for i, label := range clusters {
		color := clusterColors[i%len(clusterColors)]
		fmt.Fprintf(buf, "  subgraph \"cluster_%s\" {\n", label)
		fmt.Fprintf(buf, "    label=%q;\n", label)
		buf.WriteString("    style=\"filled,rounded\";\n")
		fmt.Fprintf(buf, "    fillcolor=%q;\n", color)
		buf.WriteString("    fontcolor=\"#333333\";\n")
		buf.WriteString("    fontsize=16;\n")
		buf.WriteString("    color=\"#88888860\";\n")
		buf.WriteString("    penwidth=1.5;\n")
		buf.WriteString("    margin=20;\n")
		buf.WriteString("    labeljust=l;\n")
		for _, n := range g.Nodes() {
			if n.Cluster == label {
				fmt.Fprintf(buf, "    %q [label=%q];\n", n.ID, n.Label)
			}
		}
		buf.WriteString("  }\n")
	}
}

// writeStandaloneNodes emits nodes that belong to no cluster, including
// modules with no edges at all.
func writeStandaloneNodes(buf *bytes.Buffer, g *depgraph.Graph) {
	for _, n := range g.Nodes() {
		if n.Cluster == "" {
			fmt.Fprintf(buf, "  %q [label=%q];\n", n.ID, n.Label)
		}
	}
}
