package depgraph

import (
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// DependencyGraph represents a mapping from each included file or package
// root to what it pulled in.
type DependencyGraph map[string][]string

// Vertex attributes recorded on Result.Graph.
const (
	KindAttribute = "kind"
	NameAttribute = "name"

	VertexFile    = "file"
	VertexPackage = "package"
)

func (res *resolution) addFileVertex(path string) {
	_ = res.graph.AddVertex(path, graphlib.VertexAttribute(KindAttribute, VertexFile))
}

func (res *resolution) addPackageVertex(pkg ResolvedPackage) {
	_ = res.graph.AddVertex(pkg.Root,
		graphlib.VertexAttribute(KindAttribute, VertexPackage),
		graphlib.VertexAttribute(NameAttribute, pkg.Name()),
	)
}

// addEdge expects both vertices to exist. Duplicate edges and self edges
// are dropped.
func (res *resolution) addEdge(from, to string) {
	if from == to {
		return
	}
	_ = res.graph.AddEdge(from, to)
}

// AdjacencyList flattens g into a DependencyGraph with sorted neighbours.
func AdjacencyList(g graphlib.Graph[string, string]) (DependencyGraph, error) {
	adjacencyMap, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	adjacency := make(DependencyGraph, len(adjacencyMap))
	for vertex, edges := range adjacencyMap {
		deps := make([]string, 0, len(edges))
		for dep := range edges {
			deps = append(deps, dep)
		}
		sort.Strings(deps)
		adjacency[vertex] = deps
	}
	return adjacency, nil
}

// VertexAttributes returns the attributes recorded for vertex, or nil.
func VertexAttributes(g graphlib.Graph[string, string], vertex string) map[string]string {
	_, props, err := g.VertexWithProperties(vertex)
	if err != nil {
		return nil
	}
	return props.Attributes
}

// SortedVertices returns the keys of adjacency in sorted order.
func SortedVertices(adjacency DependencyGraph) []string {
	vertices := make([]string, 0, len(adjacency))
	for vertex := range adjacency {
		vertices = append(vertices, vertex)
	}
	sort.Strings(vertices)
	return vertices
}
