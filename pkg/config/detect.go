package config

import (
	"os"
	"path/filepath"
)

// projectMarkers identify a directory as a project root during discovery.
var projectMarkers = []string{"setup.py", "pyproject.toml", "requirements.txt", ".git", "src"}

// maxLevelsUp bounds the parent-directory search during root discovery.
const maxLevelsUp = 4

// DetectRootPackage inspects the project root for exactly one top-level
// directory containing a package initializer and returns its name. With
// zero or multiple candidates the project root's own directory name is the
// root package.
func DetectRootPackage(projectRoot string) string {
	entries, err := os.ReadDir(projectRoot)
	if err != nil {
		return filepath.Base(projectRoot)
	}

	var candidates []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		init := filepath.Join(projectRoot, e.Name(), "__init__.py")
		if _, err := os.Stat(init); err == nil {
			candidates = append(candidates, e.Name())
		}
	}

	if len(candidates) == 1 {
		return candidates[0]
	}
	return filepath.Base(projectRoot)
}

// FindProjectRoot discovers the project root when --project-root is absent:
// the working directory and up to four parents are probed for project
// markers; the first directory containing any marker wins, falling back to
// the working directory itself.
func FindProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := wd
	for i := 0; i <= maxLevelsUp; i++ {
		if hasProjectMarker(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return wd, nil
}

func hasProjectMarker(dir string) bool {
	for _, marker := range projectMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
