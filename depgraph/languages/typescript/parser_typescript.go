package typescript

import (
	"fmt"
	"os"
	"strings"

	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/LegacyCodeHQ/includedeps/depgraph/languages/javascript"
)

// TypeScriptImports parses a TypeScript/TSX file and returns its imports
func TypeScriptImports(filePath string) ([]javascript.Import, error) {
	sourceCode, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseTypeScriptImports(sourceCode, strings.HasSuffix(filePath, ".tsx"))
}

// ParseTypeScriptImports parses TypeScript source code and extracts imports.
// "import type" and "export type" statements are reported with IsTypeOnly set.
func ParseTypeScriptImports(sourceCode []byte, isTSX bool) ([]javascript.Import, error) {
	lang := typescript.GetLanguage()
	if isTSX {
		lang = tsx.GetLanguage()
	}

	imports, err := javascript.ParseImports(sourceCode, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TypeScript code: %w", err)
	}
	return imports, nil
}
