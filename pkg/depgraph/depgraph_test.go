package depgraph

import (
	"reflect"
	"testing"

	"github.com/pydepviz/pydepviz/pkg/scan"
)

func modules(names ...string) []scan.Module {
	out := make([]scan.Module, len(names))
	for i, n := range names {
		out[i] = scan.Module{Name: n}
	}
	return out
}

func TestBuildDefaultDirectionReversesArrows(t *testing.T) {
	res := &scan.Result{
		Modules: modules("pkg.a", "pkg.b"),
		Deps:    []scan.Dependency{{From: "pkg.a", To: "pkg.b"}},
	}

	g := Build(res, Options{})
	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("EdgeCount = %d, want 1", len(edges))
	}
	// pkg.a imports pkg.b → arrow pkg.b → pkg.a by default.
	if edges[0].From != "pkg.b" || edges[0].To != "pkg.a" {
		t.Errorf("edge = %s → %s, want pkg.b → pkg.a", edges[0].From, edges[0].To)
	}
}

func TestBuildNormalArrowsIsExactReverse(t *testing.T) {
	res := &scan.Result{
		Modules: modules("pkg.a", "pkg.b", "pkg.c"),
		Deps: []scan.Dependency{
			{From: "pkg.a", To: "pkg.b"},
			{From: "pkg.b", To: "pkg.c"},
		},
	}

	def := Build(res, Options{}).Edges()
	norm := Build(res, Options{NormalArrows: true}).Edges()

	if len(def) != len(norm) {
		t.Fatalf("edge counts differ: %d vs %d", len(def), len(norm))
	}
	reversed := make(map[[2]string]bool)
	for _, e := range def {
		reversed[[2]string{e.To, e.From}] = true
	}
	for _, e := range norm {
		if !reversed[[2]string{e.From, e.To}] {
			t.Errorf("normal edge %s → %s has no reversed counterpart", e.From, e.To)
		}
	}
}

func TestBuildDeduplicatesEdges(t *testing.T) {
	res := &scan.Result{
		Modules: modules("pkg.a", "pkg.b"),
		Deps: []scan.Dependency{
			{From: "pkg.a", To: "pkg.b", Names: []string{"x"}},
			{From: "pkg.a", To: "pkg.b", Names: []string{"y"}},
			{From: "pkg.a", To: "pkg.b", Names: []string{"x"}},
		},
	}

	g := Build(res, Options{NormalArrows: true})
	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	e := g.Edges()[0]
	if e.Label != "x, y" {
		t.Errorf("Label = %q, want union of names", e.Label)
	}
}

func TestBuildDiscardsSelfEdges(t *testing.T) {
	res := &scan.Result{
		Modules: modules("pkg.a"),
		Deps:    []scan.Dependency{{From: "pkg.a", To: "pkg.a"}},
	}
	g := Build(res, Options{})
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0 (self-edges discarded)", g.EdgeCount())
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", g.NodeCount())
	}
}

func TestBuildCycleKept(t *testing.T) {
	res := &scan.Result{
		Modules: modules("pkg.a", "pkg.b"),
		Deps: []scan.Dependency{
			{From: "pkg.a", To: "pkg.b"},
			{From: "pkg.b", To: "pkg.a"},
		},
	}
	g := Build(res, Options{})
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2 (cycles are valid)", g.EdgeCount())
	}
}

func TestBuildIsolatedNodesKept(t *testing.T) {
	res := &scan.Result{Modules: modules("pkg.a", "pkg.b", "pkg.lonely")}
	g := Build(res, Options{})
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0", g.EdgeCount())
	}
}

func TestClusterFor(t *testing.T) {
	mappings := map[string]string{
		"":          "Root",
		"core":      "Core",
		"core/deep": "Deep Core",
		"services":  "Services",
	}

	tests := []struct {
		subPath string
		want    string
	}{
		{"a.py", "Root"},
		{"core/utils.py", "Core"},
		{"core/deep/engine.py", "Deep Core"}, // longer prefix wins
		{"core/deepish/x.py", "Core"},        // segment boundary respected
		{"services/api/handlers.py", "Services"},
		{"unmapped/x.py", ""}, // no match → unclustered
	}
	for _, tt := range tests {
		if got := clusterFor(tt.subPath, mappings); got != tt.want {
			t.Errorf("clusterFor(%q) = %q, want %q", tt.subPath, got, tt.want)
		}
	}
}

func TestClusterForNoMappings(t *testing.T) {
	if got := clusterFor("core/utils.py", nil); got != "" {
		t.Errorf("clusterFor with no mappings = %q, want empty", got)
	}
}

func TestGraphDeterministicOrder(t *testing.T) {
	build := func() *Graph {
		g := NewGraph()
		g.AddNode(Node{ID: "pkg.c"})
		g.AddNode(Node{ID: "pkg.a"})
		g.AddNode(Node{ID: "pkg.b"})
		g.AddEdge("pkg.c", "pkg.a", nil)
		g.AddEdge("pkg.a", "pkg.b", nil)
		return g
	}
	g1, g2 := build(), build()
	if !reflect.DeepEqual(g1.Nodes(), g2.Nodes()) {
		t.Error("Nodes() order should be deterministic")
	}
	if !reflect.DeepEqual(g1.Edges(), g2.Edges()) {
		t.Error("Edges() order should be deterministic")
	}
	if g1.Nodes()[0].ID != "pkg.a" {
		t.Errorf("Nodes() should be sorted by ID, got %v first", g1.Nodes()[0].ID)
	}
}

func TestNameLabelTruncation(t *testing.T) {
	label, tooltip := nameLabel([]string{"d", "a", "c", "b"})
	if label != "a, b, c..." {
		t.Errorf("label = %q, want truncated to three names", label)
	}
	if tooltip != "a, b, c, d" {
		t.Errorf("tooltip = %q, want full list", tooltip)
	}
}
