package dot_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/includedeps/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/includedeps/cmd/graph/formatters/dot"
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
	output, err := (&dot.Formatter{}).Format(serviceView(), formatters.RenderOptions{})
	require.NoError(t, err)

	g := testhelpers.DotGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestFormatter_Label(t *testing.T) {
	output, err := (&dot.Formatter{}).Format(serviceView(), formatters.RenderOptions{Label: "svc • handler.js"})
	require.NoError(t, err)

	assert.Contains(t, output, `label="svc • handler.js";`)
	assert.Contains(t, output, "labelloc=t;")
}

func TestFormatter_CycleEdgesAreHighlighted(t *testing.T) {
	view := serviceView()
	view.Adjacency["/svc/lib/db.js"] = []string{"/svc/handler.js"}
	view.Cycles = [][]string{{"/svc/handler.js", "/svc/lib/db.js"}}

	output, err := (&dot.Formatter{}).Format(view, formatters.RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, `"lib/db.js" -> "handler.js" [color=red, style=dashed];`)
	assert.Contains(t, output, `"handler.js" -> "node_modules/jwa";`)
	assert.Equal(t, 2, strings.Count(output, "penwidth=2"))
}

func TestFormatter_GenerateURL(t *testing.T) {
	u, ok := (&dot.Formatter{}).GenerateURL("digraph {}")

	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(u, "https://dreampuf.github.io/GraphvizOnline/?engine=dot#"))
}
