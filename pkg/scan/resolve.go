package scan

import (
	"sort"
	"strings"

	"github.com/pydepviz/pydepviz/pkg/pyast"
)

// resolve maps one import statement onto the project modules it refers to.
// Absolute imports are local only when their first segment is the root
// package; relative imports are resolved against the importer's own dotted
// location. Anything that does not land on a known module is dropped.
func (s *Scanner) resolve(imp pyast.Import, importer Module, byName map[string]Module) []Module {
	if imp.Level > 0 {
		return s.resolveRelative(imp, importer, byName)
	}

	first, _, _ := strings.Cut(imp.Module, ".")
	if first != s.RootPackage {
		return nil // external import
	}
	if m, ok := lookup(imp.Module, byName); ok {
		return []Module{m}
	}
	return nil
}

// resolveRelative handles leading-dot imports. Each dot strips one segment
// from the importer's dotted name; "from . import x" treats each imported
// name as a sibling module candidate.
func (s *Scanner) resolveRelative(imp pyast.Import, importer Module, byName map[string]Module) []Module {
	parts := strings.Split(importer.Name, ".")
	if imp.Level > len(parts) {
		s.Logger.Warnf("%s: relative import escapes the project (level %d)", importer.RelPath, imp.Level)
		return nil
	}
	base := strings.Join(parts[:len(parts)-imp.Level], ".")

	if imp.Module != "" {
		if m, ok := lookup(joinDotted(base, imp.Module), byName); ok {
			return []Module{m}
		}
		return nil
	}

	if imp.Wildcard {
		s.Logger.Debugf("%s: skipping wildcard relative import", importer.RelPath)
		return nil
	}

	var out []Module
	for _, name := range imp.Names {
		if m, ok := lookup(joinDotted(base, name), byName); ok {
			out = append(out, m)
		}
	}
	return out
}

// lookup finds the module a dotted import name refers to. An exact match
// wins; otherwise the most specific module related by package prefix is
// chosen (ties broken lexicographically for determinism), matching how
// "from pkg import sub" lands on pkg/sub.py and "import pkg.mod.attr" lands
// on pkg/mod.py.
func lookup(name string, byName map[string]Module) (Module, bool) {
	if m, ok := byName[name]; ok {
		return m, true
	}

	var candidates []string
	for known := range byName {
		if strings.HasPrefix(known, name+".") || strings.HasPrefix(name, known+".") {
			candidates = append(candidates, known)
		}
	}
	if len(candidates) == 0 {
		return Module{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) > len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})
	return byName[candidates[0]], true
}

func joinDotted(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
