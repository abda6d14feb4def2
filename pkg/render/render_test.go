package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pydepviz/pydepviz/pkg/depgraph"
	"github.com/pydepviz/pydepviz/pkg/errors"
	"github.com/pydepviz/pydepviz/pkg/scan"
)

func sampleGraph() *depgraph.Graph {
	return depgraph.Build(&scan.Result{
		Modules: []scan.Module{
			{Name: "pkg.a", SubPath: "a.py"},
			{Name: "pkg.core.b", SubPath: "core/b.py"},
			{Name: "pkg.lonely", SubPath: "lonely.py"},
		},
		Deps: []scan.Dependency{
			{From: "pkg.a", To: "pkg.core.b", Names: []string{"B"}},
		},
	}, depgraph.Options{
		ClusterMappings: map[string]string{"core": "Core"},
	})
}

func TestToDOTStructure(t *testing.T) {
	dot := ToDOT(sampleGraph(), "LR")

	for _, want := range []string{
		"digraph imports {",
		"rankdir=LR;",
		`subgraph "cluster_Core"`,
		`label="Core";`,
		`"pkg.core.b"`,
		`"pkg.lonely"`,
		// Default direction: imported → importer.
		`"pkg.core.b" -> "pkg.a"`,
		`label="B"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDeterministic(t *testing.T) {
	a := ToDOT(sampleGraph(), "TB")
	b := ToDOT(sampleGraph(), "TB")
	if a != b {
		t.Error("ToDOT should be byte-identical across runs on the same graph")
	}
}

func TestToDOTEmptyGraphPlaceholder(t *testing.T) {
	dot := ToDOT(depgraph.NewGraph(), "TB")
	if !strings.Contains(dot, "placeholder") {
		t.Errorf("empty graph should render a placeholder node:\n%s", dot)
	}
	if !strings.Contains(dot, "rankdir=TB") {
		t.Errorf("placeholder should honor direction:\n%s", dot)
	}
}

func TestValidateDirection(t *testing.T) {
	for _, dir := range []string{"TB", "LR", "BT", "RL"} {
		if err := ValidateDirection(dir); err != nil {
			t.Errorf("ValidateDirection(%q) = %v", dir, err)
		}
	}
	err := ValidateDirection("UP")
	if err == nil {
		t.Fatal("ValidateDirection(UP) should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidDirection) {
		t.Errorf("error code = %v, want INVALID_DIRECTION", errors.GetCode(err))
	}
}

func TestValidateEngine(t *testing.T) {
	for _, e := range []string{"dot", "neato", "fdp", "twopi", "circo"} {
		if err := ValidateEngine(e); err != nil {
			t.Errorf("ValidateEngine(%q) = %v", e, err)
		}
	}
	err := ValidateEngine("sketch")
	if err == nil {
		t.Fatal("ValidateEngine(sketch) should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidEngine) {
		t.Errorf("error code = %v, want INVALID_ENGINE", errors.GetCode(err))
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"graph", "graph.svg", false},
		{"graph.svg", "graph.svg", false},
		{"out/graph.png", "out/graph.png", false},
		{"graph.gv", "graph.gv", false},
		{"graph.dot", "graph.dot", false},
		{"graph.bmp", "", true},
	}
	for _, tt := range tests {
		got, err := OutputPath(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("OutputPath(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderDOTFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "graph.gv")
	dot := ToDOT(sampleGraph(), "TB")

	if err := Render(t.Context(), dot, out, Options{Engine: "dot"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != dot {
		t.Error(".gv output should be the DOT text itself")
	}
}

func TestRenderSVG(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "graph.svg")
	dot := ToDOT(sampleGraph(), "TB")

	if err := Render(t.Context(), dot, out, Options{Engine: "dot"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output should be SVG")
	}

	// No stray temp files left behind.
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".pydepviz-") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

func TestRenderCyclicGraph(t *testing.T) {
	// Mutual imports are legal in the diagram; layout must not reject them.
	g := depgraph.Build(&scan.Result{
		Modules: []scan.Module{
			{Name: "pkg.a", SubPath: "a.py"},
			{Name: "pkg.b", SubPath: "b.py"},
		},
		Deps: []scan.Dependency{
			{From: "pkg.a", To: "pkg.b"},
			{From: "pkg.b", To: "pkg.a"},
		},
	}, depgraph.Options{})

	dot := ToDOT(g, "TB")
	for _, want := range []string{`"pkg.a" -> "pkg.b"`, `"pkg.b" -> "pkg.a"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing cycle edge %q:\n%s", want, dot)
		}
	}

	out := filepath.Join(t.TempDir(), "cycle.svg")
	if err := Render(t.Context(), dot, out, Options{Engine: "dot"}); err != nil {
		t.Fatalf("Render() of a cyclic graph failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("cyclic graph should still produce SVG output")
	}
}

func TestRenderKeepDot(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "graph.svg")
	dot := ToDOT(sampleGraph(), "TB")

	if err := Render(t.Context(), dot, out, Options{Engine: "dot", KeepDot: true}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "graph.gv")); err != nil {
		t.Errorf("DOT sidecar not written: %v", err)
	}
}

func TestRenderInvalidEngineLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "graph.svg")

	err := Render(t.Context(), ToDOT(sampleGraph(), "TB"), out, Options{Engine: "bogus"})
	if err == nil {
		t.Fatal("Render() with invalid engine should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidEngine) {
		t.Errorf("error code = %v, want INVALID_ENGINE", errors.GetCode(err))
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("failed render must not leave an output file")
	}
}

func TestRenderUnwritableDirLeavesNoFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "graph.gv")
	err := Render(t.Context(), "digraph g {}\n", out, Options{Engine: "dot"})
	if err == nil {
		t.Fatal("Render() into a missing directory should fail")
	}
	if !errors.Is(err, errors.ErrCodeRender) {
		t.Errorf("error code = %v, want RENDER_ERROR", errors.GetCode(err))
	}
}
