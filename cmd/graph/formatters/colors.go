package formatters

import (
	"path/filepath"
	"sort"
)

// Fill colors shared by the DOT and Mermaid renderers.
const (
	EntryColor   = "lightgreen"
	PackageColor = "lightgrey"
	DefaultColor = "white"
)

var availableColors = []string{
	"lightblue", "lightyellow", "mistyrose", "lightsalmon",
	"lightpink", "lavender", "peachpuff", "plum", "powderblue", "khaki",
	"palegoldenrod", "thistle",
}

// NodeColors assigns a fill color to every vertex. The entry file and package
// roots have fixed colors. Local files are white unless the view mixes
// extensions, in which case files outside the most common extension are
// colored per extension.
func NodeColors(view GraphView) map[string]string {
	var files []string
	for _, vertex := range view.Vertices() {
		if !view.IsPackage(vertex) && vertex != view.Entry {
			files = append(files, vertex)
		}
	}

	extensionCounts := make(map[string]int)
	for _, file := range files {
		extensionCounts[filepath.Ext(file)]++
	}
	extensions := make([]string, 0, len(extensionCounts))
	for ext := range extensionCounts {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)

	majority := ""
	maxCount := 0
	for _, ext := range extensions {
		if extensionCounts[ext] > maxCount {
			maxCount = extensionCounts[ext]
			majority = ext
		}
	}

	extensionColors := make(map[string]string, len(extensions))
	i := 0
	for _, ext := range extensions {
		if ext == majority || ext == "" {
			continue
		}
		extensionColors[ext] = availableColors[i%len(availableColors)]
		i++
	}

	colors := make(map[string]string, len(view.Adjacency))
	for _, vertex := range view.Vertices() {
		switch {
		case vertex == view.Entry:
			colors[vertex] = EntryColor
		case view.IsPackage(vertex):
			colors[vertex] = PackageColor
		default:
			color, ok := extensionColors[filepath.Ext(vertex)]
			if !ok {
				color = DefaultColor
			}
			colors[vertex] = color
		}
	}
	return colors
}
