package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/LegacyCodeHQ/includedeps/depgraph/langsupport"
	"github.com/LegacyCodeHQ/includedeps/depgraph/languages/javascript"
	"github.com/LegacyCodeHQ/includedeps/depgraph/languages/typescript"
)

var modules = []langsupport.Module{
	javascript.Module{},
	typescript.Module{},
}

// Modules returns supported language modules in deterministic order.
func Modules() []langsupport.Module {
	return append([]langsupport.Module(nil), modules...)
}

// ModuleForExtension returns the module registered for the provided extension.
func ModuleForExtension(ext string) (langsupport.Module, bool) {
	for _, module := range modules {
		for _, moduleExt := range module.Extensions() {
			if moduleExt == ext {
				return module, true
			}
		}
	}

	return nil, false
}

// LanguageSupport describes one supported language and the file extensions
// that map to it.
type LanguageSupport struct {
	Name       string
	Extensions []string
	Maturity   langsupport.MaturityLevel
}

// SupportedLanguages returns a copy of all supported languages.
func SupportedLanguages() []LanguageSupport {
	languages := make([]LanguageSupport, len(modules))
	for i, module := range modules {
		languages[i] = LanguageSupport{
			Name:       module.Name(),
			Extensions: append([]string(nil), module.Extensions()...),
			Maturity:   module.Maturity(),
		}
	}
	return languages
}

// SupportedExtensions returns all scannable extensions in sorted order.
func SupportedExtensions() []string {
	var extensions []string
	for _, module := range modules {
		extensions = append(extensions, module.Extensions()...)
	}
	sort.Strings(extensions)
	return extensions
}

// ContentReader loads the bytes of a file.
type ContentReader func(path string) ([]byte, error)

// Extractor finds the module specifiers of a source file using the module
// registered for its extension. Files without a registered module (.json,
// .node, assets) load nothing and yield no specifiers.
type Extractor struct {
	read ContentReader
}

// NewExtractor returns an Extractor reading from the filesystem.
func NewExtractor() *Extractor {
	return &Extractor{read: os.ReadFile}
}

// NewExtractorWithReader returns an Extractor that reads through reader.
func NewExtractorWithReader(reader ContentReader) *Extractor {
	return &Extractor{read: reader}
}

func (e *Extractor) Specifiers(path string) ([]string, error) {
	ext := filepath.Ext(path)
	module, ok := ModuleForExtension(ext)
	if !ok {
		return nil, nil
	}

	content, err := e.read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	specifiers, err := module.Specifiers(content, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to parse imports in %s: %w", path, err)
	}
	return specifiers, nil
}
