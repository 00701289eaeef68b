package typescript

import (
	"github.com/LegacyCodeHQ/includedeps/depgraph/langsupport"
	"github.com/LegacyCodeHQ/includedeps/depgraph/languages/javascript"
)

type Module struct{}

func (Module) Name() string {
	return "TypeScript"
}

func (Module) Extensions() []string {
	return []string{".ts", ".tsx", ".mts", ".cts"}
}

func (Module) Maturity() langsupport.MaturityLevel {
	return langsupport.MaturityBasicTests
}

// Specifiers drops type-only imports; they are erased at compile time.
func (Module) Specifiers(content []byte, ext string) ([]string, error) {
	imports, err := ParseTypeScriptImports(content, ext == ".tsx")
	if err != nil {
		return nil, err
	}
	return javascript.RuntimeSpecifiers(imports), nil
}
