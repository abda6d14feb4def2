package scan

import (
	"path"
	"strings"
)

const (
	sourceExt = ".py"
	initFile  = "__init__.py"
)

// Module is a single Python source file mapped to its dotted identifier.
type Module struct {
	// Name is the unique dotted identifier, e.g. "pkg.core.utils".
	Name string

	// Path is the absolute filesystem path of the source file.
	Path string

	// RelPath is the slash-separated path relative to the project root,
	// e.g. "pkg/core/utils.py".
	RelPath string

	// SubPath is RelPath with the leading root-package segment stripped,
	// e.g. "core/utils.py". Cluster prefixes are matched against it.
	SubPath string
}

// moduleName derives the dotted module identifier from a slash-separated
// path relative to the project root. A package initializer maps to its
// containing directory; a file directly at the root of the root package maps
// to the root package itself.
func moduleName(relPath, rootPackage string) string {
	rel := normalizeRelPath(relPath, rootPackage)

	if path.Base(rel) == initFile {
		dir := path.Dir(rel)
		if dir == "." {
			return rootPackage
		}
		return strings.ReplaceAll(dir, "/", ".")
	}

	rel = strings.TrimSuffix(rel, sourceExt)
	return strings.ReplaceAll(rel, "/", ".")
}

// normalizeRelPath collapses a duplicated leading root-package segment
// (root/root/... layouts) so module identifiers stay unique.
func normalizeRelPath(relPath, rootPackage string) string {
	parts := strings.Split(relPath, "/")
	if len(parts) >= 2 && parts[0] == rootPackage && parts[1] == rootPackage {
		return strings.Join(parts[1:], "/")
	}
	return relPath
}

// subPath strips the leading root-package directory from a normalized
// relative path. Files outside the root package keep their full path.
func subPath(relPath, rootPackage string) string {
	rel := normalizeRelPath(relPath, rootPackage)
	if rest, ok := strings.CutPrefix(rel, rootPackage+"/"); ok {
		return rest
	}
	return rel
}

// newModule builds the Module record for a source file.
func newModule(absPath, relPath, rootPackage string) Module {
	return Module{
		Name:    moduleName(relPath, rootPackage),
		Path:    absPath,
		RelPath: relPath,
		SubPath: subPath(relPath, rootPackage),
	}
}
