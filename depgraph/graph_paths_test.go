package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathNodes_Linear(t *testing.T) {
	// A → B → C
	graph := DependencyGraph{
		"A": {"B"},
		"B": {"C"},
		"C": {},
	}

	result := PathNodes(graph, "A", "C")

	assert.ElementsMatch(t, []string{"A", "B", "C"}, SortedVertices(result))
	assert.Equal(t, []string{"B"}, result["A"])
}

func TestPathNodes_Diamond(t *testing.T) {
	// A → B, A → C, B → D, C → D, A → E
	graph := DependencyGraph{
		"A": {"B", "C", "E"},
		"B": {"D"},
		"C": {"D"},
		"D": {},
		"E": {},
	}

	result := PathNodes(graph, "A", "D")

	assert.Equal(t, []string{"A", "B", "C", "D"}, SortedVertices(result))
	assert.ElementsMatch(t, []string{"B", "C"}, result["A"])
}

func TestPathNodes_Unreachable(t *testing.T) {
	graph := DependencyGraph{
		"A": {"B"},
		"B": {},
		"C": {"D"},
		"D": {},
	}

	result := PathNodes(graph, "A", "D")

	assert.Empty(t, result)
}

func TestPathNodes_Cycle(t *testing.T) {
	// A → B → C → B, C → D
	graph := DependencyGraph{
		"A": {"B"},
		"B": {"C"},
		"C": {"B", "D"},
		"D": {},
	}

	result := PathNodes(graph, "A", "D")

	assert.Equal(t, []string{"A", "B", "C", "D"}, SortedVertices(result))
}

func TestPathNodes_SourceIsTarget(t *testing.T) {
	graph := DependencyGraph{"A": {"B"}, "B": {}}

	result := PathNodes(graph, "A", "A")

	assert.Equal(t, DependencyGraph{"A": {}}, result)
}
