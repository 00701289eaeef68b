// Package testhelpers holds shared golden-file setup for command tests.
package testhelpers

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// DotGoldie stores Graphviz fixtures as testdata/<name>.gv.golden.
func DotGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return newGoldie(t, ".gv.golden")
}

// MermaidGoldie stores Mermaid fixtures as testdata/<name>.mmd.golden.
func MermaidGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return newGoldie(t, ".mmd.golden")
}

// TextGoldie stores plain command output as testdata/<name>.golden.
func TextGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return newGoldie(t, ".golden")
}

func newGoldie(t *testing.T, suffix string) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(suffix),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)
}
