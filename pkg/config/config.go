// Package config builds the single immutable Settings value the pipeline
// consumes. Values merge with precedence CLI flag > YAML config file >
// built-in default, and the root package is auto-detected from the project
// layout when neither flag nor file supplies it.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pydepviz/pydepviz/pkg/errors"
	"github.com/pydepviz/pydepviz/pkg/render"
)

// Built-in defaults.
const (
	DefaultOutput    = "import_diagram"
	DefaultDirection = "TB"
	DefaultEngine    = "dot"
)

// defaultConfigNames are probed in the working directory when --config is
// not given.
var defaultConfigNames = []string{
	"deps.yml",
	"deps.yaml",
	"import_analyzer.yml",
	"import_analyzer.yaml",
}

// Settings is the effective configuration for one run. It is constructed
// once by Load and passed by value; nothing mutates it afterwards.
type Settings struct {
	ProjectRoot     string            // absolute project root directory
	Output          string            // output file path, extension selects the format
	RootPackage     string            // first path segment of project-local imports
	Direction       string            // rankdir token: TB, LR, BT, RL
	Engine          string            // layout engine: dot, neato, fdp, twopi, circo
	NormalArrows    bool              // orient edges importer → imported
	KeepDot         bool              // also write the DOT source
	ClusterMappings map[string]string // path prefix → cluster label
	Verbose         bool
}

// Flags carries the raw CLI flag values into Load. Empty strings mean the
// flag was not set (cobra defaults are applied here, not in the flag
// definitions, so file values can take precedence over defaults).
type Flags struct {
	ProjectRoot  string
	Output       string
	RootPackage  string
	Direction    string
	Engine       string
	NormalArrows bool
	KeepDot      bool
	ConfigPath   string
	Verbose      bool
}

// fileConfig is the recognized YAML schema. Unrecognized keys are ignored.
type fileConfig struct {
	RootPackage     string            `yaml:"root_package"`
	ClusterMappings map[string]string `yaml:"cluster_mappings"`
}

// Load produces the effective Settings. It fails fast on a malformed config
// file, a missing project root, or invalid direction/engine tokens, before
// any scanning happens.
func Load(flags Flags) (Settings, error) {
	fc, err := loadFile(flags.ConfigPath)
	if err != nil {
		return Settings{}, err
	}

	root, err := resolveProjectRoot(flags.ProjectRoot)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		ProjectRoot:     root,
		Output:          firstNonEmpty(flags.Output, DefaultOutput),
		RootPackage:     firstNonEmpty(flags.RootPackage, fc.RootPackage),
		Direction:       firstNonEmpty(flags.Direction, DefaultDirection),
		Engine:          firstNonEmpty(flags.Engine, DefaultEngine),
		NormalArrows:    flags.NormalArrows,
		KeepDot:         flags.KeepDot,
		ClusterMappings: fc.ClusterMappings,
		Verbose:         flags.Verbose,
	}

	if s.RootPackage == "" {
		s.RootPackage = DetectRootPackage(s.ProjectRoot)
	}

	if err := render.ValidateDirection(s.Direction); err != nil {
		return Settings{}, err
	}
	if err := render.ValidateEngine(s.Engine); err != nil {
		return Settings{}, err
	}
	if _, err := render.OutputPath(s.Output); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// loadFile reads the YAML config. An explicit path must exist and parse;
// without one, the default names are probed and absence is fine.
func loadFile(path string) (fileConfig, error) {
	if path != "" {
		return parseFile(path)
	}
	for _, name := range defaultConfigNames {
		if _, err := os.Stat(name); err == nil {
			return parseFile(name)
		}
	}
	return fileConfig{}, nil
}

func parseFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return fc, nil
}

// resolveProjectRoot returns the absolute project root. An explicit path
// must exist; otherwise the root is discovered from the working directory.
func resolveProjectRoot(specified string) (string, error) {
	if specified != "" {
		info, err := os.Stat(specified)
		if err != nil || !info.IsDir() {
			return "", errors.New(errors.ErrCodeInvalidPath, "project root does not exist: %s", specified)
		}
		abs, err := filepath.Abs(specified)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", specified)
		}
		return abs, nil
	}
	return FindProjectRoot()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
