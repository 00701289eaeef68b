package formatters

import (
	"strings"

	"github.com/LegacyCodeHQ/includedeps/depgraph"
)

// testView builds a view rooted at /svc. Vertices under node_modules without
// an extension are treated as package roots.
func testView(entry string, adjacency map[string][]string) GraphView {
	view := GraphView{
		Entry:     entry,
		Adjacency: depgraph.DependencyGraph(adjacency),
		Kinds:     make(map[string]string),
		Paths:     make(map[string]string),
	}
	names := make(map[string]string)
	for vertex := range adjacency {
		rel := strings.TrimPrefix(vertex, "/svc/")
		view.Paths[vertex] = rel
		view.Kinds[vertex] = depgraph.VertexFile
		if strings.HasPrefix(rel, "node_modules/") && !strings.Contains(rel[len("node_modules/"):], ".") {
			view.Kinds[vertex] = depgraph.VertexPackage
			names[vertex] = strings.TrimPrefix(rel, "node_modules/")
		}
	}
	view.Labels = BuildNodeLabels(view.Paths, names)
	return view
}
