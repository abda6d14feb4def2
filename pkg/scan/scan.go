// Package scan walks a Python project tree, maps every source file to a
// dotted module identifier, and extracts the import relationships between
// project-local modules. Imports of anything outside the project (standard
// library, third-party packages) are discarded.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pydepviz/pydepviz/pkg/errors"
	"github.com/pydepviz/pydepviz/pkg/pyast"
)

// skipDirs are directory names excluded from the walk in addition to
// dot-prefixed and dunder-prefixed directories.
var skipDirs = map[string]bool{
	"venv":          true,
	"env":           true,
	"node_modules":  true,
	"site-packages": true,
}

// Dependency is one resolved project-local import relationship, always
// oriented importer → imported. Direction policy is applied later by the
// graph builder.
type Dependency struct {
	From  string   // importing module
	To    string   // imported module
	Names []string // names pulled in by a from-import, if any
}

// Result holds everything produced by a project scan.
type Result struct {
	Modules []Module
	Deps    []Dependency

	// FileCount is the number of source files visited.
	FileCount int

	// ParseFailures counts files that could not be read or parsed at all.
	// Files with recoverable syntax errors are not counted here.
	ParseFailures int
}

// Scanner extracts module-level import relationships from a project tree.
type Scanner struct {
	Root        string // absolute project root
	RootPackage string // first path segment distinguishing local imports
	Logger      *log.Logger
}

// New creates a Scanner for the given project root and root package.
func New(root, rootPackage string, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{Root: root, RootPackage: rootPackage, Logger: logger}
}

// Scan walks the project tree and returns all modules and the import
// dependencies between them. A file that fails to parse is logged and
// skipped; an unreadable project root is fatal.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	files, err := s.findSourceFiles()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeScan, err, "walk %s", s.Root)
	}
	s.Logger.Debugf("found %d Python files under %s", len(files), s.Root)

	res := &Result{FileCount: len(files)}

	byName := make(map[string]Module, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(s.Root, f)
		if err != nil {
			continue
		}
		m := newModule(f, filepath.ToSlash(rel), s.RootPackage)
		res.Modules = append(res.Modules, m)
		byName[m.Name] = m
	}

	for _, m := range res.Modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		deps, ok := s.analyzeFile(ctx, m, byName)
		if !ok {
			res.ParseFailures++
			continue
		}
		res.Deps = append(res.Deps, deps...)
	}

	s.Logger.Debugf("resolved %d import dependencies", len(res.Deps))
	return res, nil
}

// findSourceFiles collects every .py file under the root, skipping version
// control, virtualenv, and cache directories. Results are sorted so repeated
// runs on an unchanged tree see files in the same order.
func (s *Scanner) findSourceFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != s.Root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), sourceExt) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__") || skipDirs[name]
}

// analyzeFile parses one source file and resolves its imports against the
// module index. Returns ok=false when the file could not be processed at all.
func (s *Scanner) analyzeFile(ctx context.Context, m Module, byName map[string]Module) ([]Dependency, bool) {
	content, err := os.ReadFile(m.Path)
	if err != nil {
		s.Logger.Warnf("skipping %s: %v", m.RelPath, err)
		return nil, false
	}

	parsed, err := pyast.Parse(ctx, content)
	if err != nil {
		s.Logger.Warnf("skipping %s: %v", m.RelPath, err)
		return nil, false
	}
	if parsed.HasSyntaxErrors {
		s.Logger.Warnf("%s contains syntax errors, extracting what parsed", m.RelPath)
	}

	var deps []Dependency
	for _, imp := range parsed.Imports {
		for _, target := range s.resolve(imp, m, byName) {
			s.Logger.Debugf("%s imports %s (line %d)", m.Name, target.Name, imp.Line)
			deps = append(deps, Dependency{From: m.Name, To: target.Name, Names: imp.Names})
		}
	}
	return deps, true
}
