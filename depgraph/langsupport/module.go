package langsupport

// Module describes pluggable source language support.
type Module interface {
	Name() string
	Extensions() []string
	Maturity() MaturityLevel
	// Specifiers returns the module specifiers a source file loads at
	// runtime, excluding runtime-provided builtins.
	Specifiers(content []byte, ext string) ([]string, error)
}
