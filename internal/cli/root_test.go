package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"myapp/__init__.py": "",
		"myapp/main.py":     "from myapp.helpers import greet\n",
		"myapp/helpers.py":  "import os\n",
	}
	for name, content := range files {
		p := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRootCommandRun(t *testing.T) {
	root := writeProject(t)
	out := filepath.Join(t.TempDir(), "graph.gv")

	var logBuf bytes.Buffer
	c := New(&logBuf, log.InfoLevel)
	cmd := c.RootCommand()
	cmd.SetArgs([]string{
		"--project-root", root,
		"--root-package", "myapp",
		"--output", out,
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(string(data), `"myapp.helpers" -> "myapp.main"`) {
		t.Errorf("output missing expected edge:\n%s", data)
	}
}

func TestRootCommandNormalArrows(t *testing.T) {
	root := writeProject(t)
	out := filepath.Join(t.TempDir(), "graph.gv")

	c := New(&bytes.Buffer{}, log.InfoLevel)
	cmd := c.RootCommand()
	cmd.SetArgs([]string{
		"--project-root", root,
		"--root-package", "myapp",
		"--output", out,
		"--normal-arrows",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"myapp.main" -> "myapp.helpers"`) {
		t.Errorf("output missing importer-to-imported edge:\n%s", data)
	}
}

func TestRootCommandInvalidDirection(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	cmd := c.RootCommand()
	cmd.SetArgs([]string{
		"--project-root", writeProject(t),
		"--direction", "UP",
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute() with an invalid direction should fail")
	}
}

func TestRootCommandMissingProjectRoot(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	cmd := c.RootCommand()
	cmd.SetArgs([]string{"--project-root", "/does/not/exist"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute() with a missing project root should fail")
	}
}
