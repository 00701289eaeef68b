package formatters

import (
	"encoding/json"
)

// JSONFormatter formats inclusion graphs as JSON.
type JSONFormatter struct{}

type jsonNode struct {
	Path    string   `json:"path"`
	Kind    string   `json:"kind"`
	Label   string   `json:"label"`
	Entry   bool     `json:"entry,omitempty"`
	Imports []string `json:"imports"`
}

type jsonGraph struct {
	Nodes  []jsonNode `json:"nodes"`
	Cycles [][]string `json:"cycles,omitempty"`
}

// Format converts the view to JSON with service-relative paths.
// The opts parameter is accepted for interface compatibility but not used.
func (f *JSONFormatter) Format(view GraphView, _ RenderOptions) (string, error) {
	out := jsonGraph{Nodes: make([]jsonNode, 0, len(view.Adjacency))}
	for _, vertex := range view.Vertices() {
		deps := view.Adjacency[vertex]
		imports := make([]string, len(deps))
		for i, dep := range deps {
			imports[i] = view.Paths[dep]
		}
		out.Nodes = append(out.Nodes, jsonNode{
			Path:    view.Paths[vertex],
			Kind:    view.Kinds[vertex],
			Label:   view.Labels[vertex],
			Entry:   vertex == view.Entry,
			Imports: imports,
		})
	}
	for _, cycle := range view.Cycles {
		members := make([]string, len(cycle))
		for i, vertex := range cycle {
			members[i] = view.Paths[vertex]
		}
		out.Cycles = append(out.Cycles, members)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GenerateURL returns false as JSON format does not support URL generation.
func (f *JSONFormatter) GenerateURL(string) (string, bool) {
	return "", false
}
