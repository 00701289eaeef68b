package formatters

import (
	"path/filepath"
	"sort"
	"strings"
)

// BuildNodeLabels returns display labels for every vertex in paths. Vertices
// listed in packageNames are labelled by package name; a name shared by
// several installed copies gets its relative root appended. File vertices go
// through BuildNodeNames.
func BuildNodeLabels(paths map[string]string, packageNames map[string]string) map[string]string {
	labels := make(map[string]string, len(paths))

	byName := make(map[string][]string)
	var files []string
	for vertex, path := range paths {
		if name, ok := packageNames[vertex]; ok && name != "" {
			byName[name] = append(byName[name], vertex)
			continue
		}
		files = append(files, path)
	}

	for name, vertices := range byName {
		if len(vertices) == 1 {
			labels[vertices[0]] = name
			continue
		}
		for _, vertex := range vertices {
			labels[vertex] = name + " (" + paths[vertex] + ")"
		}
	}

	fileNames := BuildNodeNames(files)
	for vertex, path := range paths {
		if _, ok := labels[vertex]; !ok {
			labels[vertex] = fileNames[path]
		}
	}
	return labels
}

// BuildNodeNames returns stable, distinct display names for file paths.
// Paths that share the same base name are disambiguated by increasing path suffix depth.
func BuildNodeNames(paths []string) map[string]string {
	names := make(map[string]string, len(paths))
	groupedByBase := make(map[string][]string, len(paths))
	for _, path := range paths {
		base := filepath.Base(path)
		groupedByBase[base] = append(groupedByBase[base], path)
	}

	for base, groupedPaths := range groupedByBase {
		if len(groupedPaths) == 1 {
			names[groupedPaths[0]] = base
			continue
		}
		sort.Strings(groupedPaths)

		for depth := 2; ; depth++ {
			suffixes := make(map[string]bool, len(groupedPaths))
			exhausted := true
			for _, path := range groupedPaths {
				suffix := pathSuffix(path, depth)
				suffixes[suffix] = true
				if depth < pathDepth(path) {
					exhausted = false
				}
			}

			if len(suffixes) != len(groupedPaths) && !exhausted {
				continue
			}

			for _, path := range groupedPaths {
				names[path] = pathSuffix(path, depth)
			}
			break
		}
	}

	return names
}

func pathDepth(path string) int {
	normalized := filepath.ToSlash(filepath.Clean(path))
	return len(strings.Split(strings.TrimPrefix(normalized, "/"), "/"))
}

func pathSuffix(path string, depth int) string {
	normalized := filepath.ToSlash(filepath.Clean(path))
	parts := strings.Split(strings.TrimPrefix(normalized, "/"), "/")
	if depth > len(parts) {
		depth = len(parts)
	}
	return strings.Join(parts[len(parts)-depth:], "/")
}
