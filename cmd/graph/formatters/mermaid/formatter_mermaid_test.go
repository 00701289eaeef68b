package mermaid_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/includedeps/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/includedeps/cmd/graph/formatters/mermaid"
	"github.com/LegacyCodeHQ/includedeps/depgraph"
	"github.com/LegacyCodeHQ/includedeps/internal/testhelpers"
)

func serviceView() formatters.GraphView {
	paths := map[string]string{
		"/svc/handler.js":       "handler.js",
		"/svc/lib/db.js":        "lib/db.js",
		"/svc/node_modules/jwa": "node_modules/jwa",
	}
	return formatters.GraphView{
		Entry: "/svc/handler.js",
		Adjacency: depgraph.DependencyGraph{
			"/svc/handler.js":       {"/svc/lib/db.js", "/svc/node_modules/jwa"},
			"/svc/lib/db.js":        {},
			"/svc/node_modules/jwa": {},
		},
		Kinds: map[string]string{
			"/svc/handler.js":       depgraph.VertexFile,
			"/svc/lib/db.js":        depgraph.VertexFile,
			"/svc/node_modules/jwa": depgraph.VertexPackage,
		},
		Paths:  paths,
		Labels: formatters.BuildNodeLabels(paths, map[string]string{"/svc/node_modules/jwa": "jwa"}),
	}
}

func TestFormatter_ServiceGraph(t *testing.T) {
	output, err := (&mermaid.Formatter{}).Format(serviceView(), formatters.RenderOptions{})
	require.NoError(t, err)

	g := testhelpers.MermaidGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestFormatter_Title(t *testing.T) {
	output, err := (&mermaid.Formatter{}).Format(serviceView(), formatters.RenderOptions{Label: "svc"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(output, "---\ntitle: svc\n---\nflowchart LR\n"))
}

func TestFormatter_Cycles(t *testing.T) {
	view := serviceView()
	view.Adjacency["/svc/lib/db.js"] = []string{"/svc/handler.js"}
	view.Cycles = [][]string{{"/svc/handler.js", "/svc/lib/db.js"}}

	output, err := (&mermaid.Formatter{}).Format(view, formatters.RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "%% C1: handler.js -> db.js -> handler.js")
	assert.Contains(t, output, "style n0 stroke:#d62728,stroke-width:3px")
	assert.Contains(t, output, "linkStyle 0 stroke:#d62728")
	assert.Contains(t, output, "linkStyle 2 stroke:#d62728")
	assert.NotContains(t, output, "linkStyle 1 ")
}

func TestFormatter_GenerateURL(t *testing.T) {
	u, ok := (&mermaid.Formatter{}).GenerateURL("flowchart LR")

	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(u, "https://mermaid.live/edit#base64:"))
}
