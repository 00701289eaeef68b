package mermaid

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/includedeps/cmd/graph/formatters"
)

// Formatter formats inclusion graphs as Mermaid.js flowcharts.
type Formatter struct{}

// Format converts the view to Mermaid.js flowchart format.
func (f *Formatter) Format(view formatters.GraphView, opts formatters.RenderOptions) (string, error) {
	var sb strings.Builder

	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	for i, cycle := range view.Cycles {
		parts := make([]string, 0, len(cycle)+1)
		for _, vertex := range cycle {
			parts = append(parts, view.Labels[vertex])
		}
		parts = append(parts, view.Labels[cycle[0]])
		sb.WriteString(fmt.Sprintf("%%%% C%d: %s\n", i+1, strings.Join(parts, " -> ")))
	}

	// Mermaid node IDs can't have dots or special characters.
	vertices := view.Vertices()
	nodeIDs := make(map[string]string, len(vertices))
	for i, vertex := range vertices {
		nodeIDs[vertex] = fmt.Sprintf("n%d", i)
	}

	for _, vertex := range vertices {
		label := strings.ReplaceAll(view.Labels[vertex], "\"", "#quot;")
		if view.IsPackage(vertex) {
			sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", nodeIDs[vertex], label))
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeIDs[vertex], label))
	}

	var edgesSB strings.Builder
	edgeIndex := 0
	var cycleEdgeIndices []int
	for _, source := range vertices {
		for _, dep := range view.Adjacency[source] {
			edgesSB.WriteString(fmt.Sprintf("    %s --> %s\n", nodeIDs[source], nodeIDs[dep]))
			if view.InCycle(source, dep) {
				cycleEdgeIndices = append(cycleEdgeIndices, edgeIndex)
			}
			edgeIndex++
		}
	}

	var entryNodes, packageNodes []string
	for _, vertex := range vertices {
		switch {
		case vertex == view.Entry:
			entryNodes = append(entryNodes, nodeIDs[vertex])
		case view.IsPackage(vertex):
			packageNodes = append(packageNodes, nodeIDs[vertex])
		}
	}

	var stylesSB strings.Builder
	if len(entryNodes) > 0 {
		stylesSB.WriteString("    classDef entryFile fill:#90EE90,stroke:#228B22,color:#000000\n")
	}
	if len(packageNodes) > 0 {
		stylesSB.WriteString("    classDef package fill:#D3D3D3,stroke:#666666,color:#000000\n")
	}
	if len(entryNodes) > 0 {
		stylesSB.WriteString(fmt.Sprintf("    class %s entryFile\n", strings.Join(entryNodes, ",")))
	}
	if len(packageNodes) > 0 {
		stylesSB.WriteString(fmt.Sprintf("    class %s package\n", strings.Join(packageNodes, ",")))
	}
	cycleMembers := view.CycleMembers()
	for _, vertex := range vertices {
		if cycleMembers[vertex] {
			stylesSB.WriteString(fmt.Sprintf("    style %s stroke:#d62728,stroke-width:3px\n", nodeIDs[vertex]))
		}
	}
	for _, idx := range cycleEdgeIndices {
		stylesSB.WriteString(fmt.Sprintf("    linkStyle %d stroke:#d62728,stroke-width:3px,stroke-dasharray: 5 5\n", idx))
	}

	if edgeIndex > 0 {
		sb.WriteString("\n")
		sb.WriteString(edgesSB.String())
	}
	if stylesSB.Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(stylesSB.String())
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// GenerateURL creates a mermaid.live URL with the diagram embedded.
func (f *Formatter) GenerateURL(output string) (string, bool) {
	payload := map[string]interface{}{
		"code": output,
		"mermaid": map[string]interface{}{
			"theme": "default",
		},
		"autoSync":      true,
		"updateDiagram": true,
	}

	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("https://mermaid.live/edit#%s", url.PathEscape(output)), true
	}

	encoded := base64.URLEncoding.EncodeToString(jsonBytes)
	return fmt.Sprintf("https://mermaid.live/edit#base64:%s", encoded), true
}
