package javascript

import (
	"github.com/LegacyCodeHQ/includedeps/depgraph/langsupport"
)

type Module struct{}

func (Module) Name() string {
	return "JavaScript"
}

func (Module) Extensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs"}
}

func (Module) Maturity() langsupport.MaturityLevel {
	return langsupport.MaturityActivelyTested
}

func (Module) Specifiers(content []byte, _ string) ([]string, error) {
	imports, err := ParseJavaScriptImports(content)
	if err != nil {
		return nil, err
	}
	return RuntimeSpecifiers(imports), nil
}
