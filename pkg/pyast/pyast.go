// Package pyast extracts import statements from Python source using
// tree-sitter. Parsing is purely syntactic: no Python code is executed, and
// files with syntax errors still yield the imports that did parse.
package pyast

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Tree-sitter node types used for import extraction.
// Reference: https://github.com/tree-sitter/tree-sitter-python/blob/master/src/grammar.json
const (
	nodeImportStatement     = "import_statement"
	nodeImportFromStatement = "import_from_statement"
	nodeDottedName          = "dotted_name"
	nodeAliasedImport       = "aliased_import"
	nodeRelativeImport      = "relative_import"
	nodeImportPrefix        = "import_prefix"
	nodeWildcardImport      = "wildcard_import"
	nodeIdentifier          = "identifier"
	nodeKeywordImport       = "import"
	nodeString              = "string"
	nodeComment             = "comment"
)

// Import is a single import statement found in a source file.
type Import struct {
	// Module is the dotted module path as written, without leading dots.
	// Empty for "from . import x" style imports where only the dots carry
	// the target.
	Module string

	// Names holds the imported names of a from-import ("from x import a, b").
	// Nil for plain "import x" statements and wildcard imports.
	Names []string

	// Level is the number of leading dots of a relative import.
	// Zero means absolute.
	Level int

	// Wildcard marks "from x import *".
	Wildcard bool

	// Line is the 1-based source line of the statement.
	Line int
}

// Result holds the imports extracted from one file.
type Result struct {
	Imports []Import

	// HasSyntaxErrors is true when the parse tree contains error nodes.
	// Extraction still returns whatever imports were parseable.
	HasSyntaxErrors bool
}

// Parse extracts all import statements from content, including those nested
// inside functions, classes, and conditional blocks.
func Parse(ctx context.Context, content []byte) (*Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	res := &Result{HasSyntaxErrors: root.HasError()}
	collectImports(root, content, res)
	return res, nil
}

// collectImports walks the tree depth-first and records every import
// statement. Strings and comments are not descended into.
func collectImports(n *sitter.Node, src []byte, res *Result) {
	switch n.Type() {
	case nodeImportStatement:
		res.Imports = append(res.Imports, plainImports(n, src)...)
		return
	case nodeImportFromStatement:
		if imp, ok := fromImport(n, src); ok {
			res.Imports = append(res.Imports, imp)
		}
		return
	case nodeString, nodeComment:
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collectImports(n.Child(i), src, res)
	}
}

// plainImports handles "import a.b" and "import a.b as c", which may list
// several targets in one statement.
func plainImports(n *sitter.Node, src []byte) []Import {
	var out []Import
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case nodeDottedName:
			out = append(out, Import{
				Module: text(child, src),
				Line:   line(n),
			})
		case nodeAliasedImport:
			// aliased_import wraps dotted_name (target) and identifier (alias).
			// Only the target matters for dependency extraction.
			for j := 0; j < int(child.ChildCount()); j++ {
				if gc := child.Child(j); gc.Type() == nodeDottedName {
					out = append(out, Import{
						Module: text(gc, src),
						Line:   line(n),
					})
					break
				}
			}
		}
	}
	return out
}

// fromImport handles "from x import a, b", "from .x import a", and
// "from . import a". The grammar places the module path before the "import"
// keyword and the imported names after it.
func fromImport(n *sitter.Node, src []byte) (Import, bool) {
	imp := Import{Line: line(n)}
	sawImport := false

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case nodeKeywordImport:
			sawImport = true
		case nodeRelativeImport:
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				switch gc.Type() {
				case nodeImportPrefix:
					imp.Level = strings.Count(text(gc, src), ".")
				case nodeDottedName:
					imp.Module = text(gc, src)
				}
			}
		case nodeDottedName:
			if sawImport {
				imp.Names = append(imp.Names, text(child, src))
			} else {
				imp.Module = text(child, src)
			}
		case nodeIdentifier:
			if sawImport {
				imp.Names = append(imp.Names, text(child, src))
			}
		case nodeAliasedImport:
			// "from x import y as z": the imported name is y.
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				if gc.Type() == nodeDottedName || gc.Type() == nodeIdentifier {
					imp.Names = append(imp.Names, text(gc, src))
					break
				}
			}
		case nodeWildcardImport:
			imp.Wildcard = true
		}
	}

	if imp.Module == "" && imp.Level == 0 {
		return Import{}, false
	}
	return imp, true
}

func text(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}
