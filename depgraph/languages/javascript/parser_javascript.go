package javascript

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// importQueries capture every string literal that names a module.
// Capture names end in ".source"; other captures only feed predicates.
var importQueries = []string{
	// import x from 'module' / import 'module'
	`(import_statement source: (string) @import.source)`,
	// export ... from 'module'
	`(export_statement source: (string) @export.source)`,
	// require('module')
	`(call_expression
  function: (identifier) @require.fn
  arguments: (arguments (string) @require.source)
  (#eq? @require.fn "require"))`,
	// import('module')
	`(call_expression
  function: (import)
  arguments: (arguments (string) @dynamic.source))`,
}

// JavaScriptImports parses a JavaScript/JSX file and returns its imports
func JavaScriptImports(filePath string) ([]Import, error) {
	sourceCode, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseJavaScriptImports(sourceCode)
}

// ParseJavaScriptImports parses JavaScript source code and extracts imports.
// tree-sitter-javascript parses JSX with the same grammar.
func ParseJavaScriptImports(sourceCode []byte) ([]Import, error) {
	return ParseImports(sourceCode, javascript.GetLanguage())
}

// ParseImports extracts imports using any grammar derived from JavaScript.
func ParseImports(sourceCode []byte, lang *sitter.Language) ([]Import, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	defer tree.Close()

	return extractImportsFromTree(tree.RootNode(), sourceCode, lang), nil
}

// extractImportsFromTree walks the AST and extracts imports
func extractImportsFromTree(rootNode *sitter.Node, sourceCode []byte, lang *sitter.Language) []Import {
	var imports []Import

	for _, pattern := range importQueries {
		results, err := executeQuery(rootNode, sourceCode, lang, pattern)
		if err == nil {
			imports = append(imports, results...)
		}
	}

	// If queries fail, fall back to manual tree traversal
	if len(imports) == 0 {
		imports = extractImportsManually(rootNode, sourceCode)
	}

	return imports
}

// executeQuery runs a tree-sitter query and extracts imports
func executeQuery(rootNode *sitter.Node, sourceCode []byte, lang *sitter.Language, pattern string) ([]Import, error) {
	query, err := sitter.NewQuery([]byte(pattern), lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	cursor.Exec(query, rootNode)

	var imports []Import

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}

		match = cursor.FilterPredicates(match, sourceCode)

		for _, capture := range match.Captures {
			captureName := query.CaptureNameForId(capture.Index)
			if !strings.HasSuffix(captureName, ".source") {
				continue
			}

			importPath := cleanImportPath(capture.Node.Content(sourceCode))
			if importPath == "" {
				continue
			}

			imports = append(imports, Import{
				Path:       importPath,
				Kind:       classifyImport(importPath),
				IsTypeOnly: isTypeOnlyImport(capture.Node, sourceCode),
				IsDynamic:  captureName == "dynamic.source",
			})
		}
	}

	return imports, nil
}

// extractImportsManually walks the AST manually to extract imports
func extractImportsManually(node *sitter.Node, sourceCode []byte) []Import {
	var imports []Import

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		nodeType := n.Type()

		if nodeType == "import_statement" || nodeType == "export_statement" {
			typeOnly := hasTypeKeyword(n, sourceCode)

			for i := 0; i < int(n.ChildCount()); i++ {
				child := n.Child(i)
				if child != nil && child.Type() == "string" {
					importPath := cleanImportPath(child.Content(sourceCode))
					if importPath != "" {
						imports = append(imports, Import{
							Path:       importPath,
							Kind:       classifyImport(importPath),
							IsTypeOnly: typeOnly,
						})
					}
					break
				}
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(node)
	return imports
}

// isTypeOnlyImport checks whether the statement owning a source string is
// "import type" or "export type". Only TypeScript produces those.
func isTypeOnlyImport(node *sitter.Node, sourceCode []byte) bool {
	parent := node.Parent()
	for parent != nil {
		switch parent.Type() {
		case "import_statement", "export_statement":
			return hasTypeKeyword(parent, sourceCode)
		case "call_expression":
			return false
		}
		parent = parent.Parent()
	}
	return false
}

func hasTypeKeyword(statement *sitter.Node, sourceCode []byte) bool {
	for i := 0; i < int(statement.ChildCount()); i++ {
		child := statement.Child(i)
		if child != nil && child.Content(sourceCode) == "type" {
			return true
		}
	}
	return false
}

// cleanImportPath removes quotes from import path strings
func cleanImportPath(raw string) string {
	cleaned := strings.Trim(raw, "'\"`")
	return strings.TrimSpace(cleaned)
}
