package dot

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/includedeps/cmd/graph/formatters"
)

// Formatter formats inclusion graphs as Graphviz DOT.
type Formatter struct{}

// Format converts the view to Graphviz DOT format. Nodes are keyed by their
// service-relative path; package roots are drawn as 3D boxes.
func (f *Formatter) Format(view formatters.GraphView, opts formatters.RenderOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("digraph dependencies {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	vertices := view.Vertices()
	colors := formatters.NodeColors(view)
	cycleMembers := view.CycleMembers()

	for _, vertex := range vertices {
		attrs := fmt.Sprintf("label=%q, style=filled, fillcolor=%s", view.Labels[vertex], colors[vertex])
		if view.IsPackage(vertex) {
			attrs += ", shape=box3d"
		}
		if cycleMembers[vertex] {
			attrs += ", color=red, penwidth=2"
		}
		sb.WriteString(fmt.Sprintf("  %q [%s];\n", view.Paths[vertex], attrs))
	}
	if len(vertices) > 0 {
		sb.WriteString("\n")
	}

	for _, source := range vertices {
		for _, dep := range view.Adjacency[source] {
			if view.InCycle(source, dep) {
				sb.WriteString(fmt.Sprintf("  %q -> %q [color=red, style=dashed];\n", view.Paths[source], view.Paths[dep]))
				continue
			}
			sb.WriteString(fmt.Sprintf("  %q -> %q;\n", view.Paths[source], view.Paths[dep]))
		}
	}

	sb.WriteString("}")
	return sb.String(), nil
}

// GenerateURL creates a GraphvizOnline URL with the DOT graph embedded.
func (f *Formatter) GenerateURL(output string) (string, bool) {
	encoded := url.PathEscape(output)
	return fmt.Sprintf("https://dreampuf.github.io/GraphvizOnline/?engine=dot#%s", encoded), true
}
