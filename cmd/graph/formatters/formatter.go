package formatters

import (
	"github.com/LegacyCodeHQ/includedeps/depgraph"
)

// RenderOptions contains optional parameters for rendering inclusion graphs.
type RenderOptions struct {
	// Label is an optional title or label for the graph
	Label string
}

// Formatter is the interface that all graph formatters must implement.
type Formatter interface {
	// Format converts an inclusion graph to a formatted string representation.
	Format(view GraphView, opts RenderOptions) (string, error)
	// GenerateURL returns an online viewer link for output, when the format has one.
	GenerateURL(output string) (string, bool)
}

// GraphView is an inclusion graph prepared for rendering. Vertices are the
// absolute keys used by depgraph.Result.Graph.
type GraphView struct {
	Entry     string
	Adjacency depgraph.DependencyGraph
	// Kinds maps each vertex to depgraph.VertexFile or depgraph.VertexPackage.
	Kinds map[string]string
	// Paths maps each vertex to its path relative to the service.
	Paths map[string]string
	// Labels maps each vertex to a short, distinct display name.
	Labels map[string]string
	Cycles [][]string
}

// NewGraphView projects adjacency, a subgraph of result.Graph, for rendering.
// relative turns absolute paths into service-relative display paths.
func NewGraphView(result *depgraph.Result, adjacency depgraph.DependencyGraph, relative func(string) string) (GraphView, error) {
	view := GraphView{
		Entry:     result.EntryFile,
		Adjacency: adjacency,
		Kinds:     make(map[string]string, len(adjacency)),
		Paths:     make(map[string]string, len(adjacency)),
	}

	names := make(map[string]string)
	for _, vertex := range depgraph.SortedVertices(adjacency) {
		attrs := depgraph.VertexAttributes(result.Graph, vertex)
		kind := attrs[depgraph.KindAttribute]
		if kind == "" {
			kind = depgraph.VertexFile
		}
		view.Kinds[vertex] = kind
		view.Paths[vertex] = relative(vertex)
		if kind == depgraph.VertexPackage {
			names[vertex] = attrs[depgraph.NameAttribute]
		}
	}
	view.Labels = BuildNodeLabels(view.Paths, names)

	cycles, err := result.Cycles()
	if err != nil {
		return GraphView{}, err
	}
	for _, cycle := range cycles {
		if view.containsAll(cycle) {
			view.Cycles = append(view.Cycles, cycle)
		}
	}
	return view, nil
}

// Vertices returns every vertex in sorted order.
func (v GraphView) Vertices() []string {
	return depgraph.SortedVertices(v.Adjacency)
}

// IsPackage reports whether vertex is a package root.
func (v GraphView) IsPackage(vertex string) bool {
	return v.Kinds[vertex] == depgraph.VertexPackage
}

// CycleMembers returns the set of vertices that sit on a cycle.
func (v GraphView) CycleMembers() map[string]bool {
	members := make(map[string]bool)
	for _, cycle := range v.Cycles {
		for _, vertex := range cycle {
			members[vertex] = true
		}
	}
	return members
}

// InCycle reports whether from and to belong to the same cycle.
func (v GraphView) InCycle(from, to string) bool {
	for _, cycle := range v.Cycles {
		hasFrom, hasTo := false, false
		for _, vertex := range cycle {
			hasFrom = hasFrom || vertex == from
			hasTo = hasTo || vertex == to
		}
		if hasFrom && hasTo {
			return true
		}
	}
	return false
}

func (v GraphView) containsAll(vertices []string) bool {
	for _, vertex := range vertices {
		if _, ok := v.Adjacency[vertex]; !ok {
			return false
		}
	}
	return true
}
