package depgraph

// PathNodes returns the subgraph of every vertex lying on some directed path
// from source to target. It is empty when target is unreachable.
func PathNodes(graph DependencyGraph, source, target string) DependencyGraph {
	forward, reverse := buildAdjacencyLists(graph)

	fromSource := bfsReachable(forward, source)
	toTarget := bfsReachable(reverse, target)
	if !fromSource[target] {
		return DependencyGraph{}
	}

	onPath := make(map[string]bool)
	for node := range fromSource {
		if toTarget[node] {
			onPath[node] = true
		}
	}

	return extractSubgraph(graph, onPath)
}

// buildAdjacencyLists creates forward and reverse adjacency lists.
// A→B means forward[A] contains B and reverse[B] contains A.
func buildAdjacencyLists(graph DependencyGraph) (forward, reverse map[string][]string) {
	forward = make(map[string][]string, len(graph))
	reverse = make(map[string][]string, len(graph))

	for node, deps := range graph {
		forward[node] = append(forward[node], deps...)
		for _, dep := range deps {
			reverse[dep] = append(reverse[dep], node)
		}
	}

	return forward, reverse
}

// bfsReachable returns all nodes reachable from source.
func bfsReachable(adjacency map[string][]string, source string) map[string]bool {
	reachable := map[string]bool{source: true}

	queue := []string{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range adjacency[current] {
			if !reachable[neighbor] {
				reachable[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return reachable
}

// extractSubgraph keeps the listed nodes and the edges between them.
func extractSubgraph(original DependencyGraph, nodesToKeep map[string]bool) DependencyGraph {
	result := make(DependencyGraph, len(nodesToKeep))

	for node := range nodesToKeep {
		filtered := []string{}
		for _, dep := range original[node] {
			if nodesToKeep[dep] {
				filtered = append(filtered, dep)
			}
		}
		result[node] = filtered
	}

	return result
}
