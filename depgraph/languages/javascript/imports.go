package javascript

import (
	"strings"

	"github.com/LegacyCodeHQ/includedeps/depgraph/npm"
)

// ImportKind classifies what an import specifier points at.
type ImportKind int

const (
	// ExternalImport is an installed package ("express", "@scope/pkg/sub").
	ExternalImport ImportKind = iota
	// InternalImport is a project file addressed relatively ("./", "../").
	InternalImport
	// NodeBuiltinImport is a runtime-provided module ("fs", "node:fs").
	NodeBuiltinImport
)

func (k ImportKind) String() string {
	switch k {
	case InternalImport:
		return "internal"
	case NodeBuiltinImport:
		return "builtin"
	default:
		return "external"
	}
}

// Import is one module specifier found in a source file.
type Import struct {
	Path       string
	Kind       ImportKind
	IsTypeOnly bool
	IsDynamic  bool
}

// classifyImport classifies an import path
func classifyImport(importPath string) ImportKind {
	if npm.IsBuiltin(importPath) {
		return NodeBuiltinImport
	}
	if strings.HasPrefix(importPath, "./") || strings.HasPrefix(importPath, "../") ||
		importPath == "." || importPath == ".." {
		return InternalImport
	}
	return ExternalImport
}

// RuntimeSpecifiers returns the distinct specifiers that load code at
// runtime, in source order. Builtins and type-only imports are dropped.
func RuntimeSpecifiers(imports []Import) []string {
	seen := make(map[string]bool, len(imports))
	specifiers := make([]string, 0, len(imports))
	for _, imp := range imports {
		if imp.Kind == NodeBuiltinImport || imp.IsTypeOnly || seen[imp.Path] {
			continue
		}
		seen[imp.Path] = true
		specifiers = append(specifiers, imp.Path)
	}
	return specifiers
}
