package depgraph

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	graphlib "github.com/dominikbraun/graph"
)

// ErrTargetNotIncluded is returned by Why when the target is not part of the
// closure.
var ErrTargetNotIncluded = errors.New("target is not included")

// Result is the closure of one entry file.
type Result struct {
	EntryFile string
	// LocalFiles lists local source files in discovery order.
	LocalFiles []string
	// Packages lists expanded package instances in expansion order.
	Packages []ResolvedPackage
	// Files is the sorted union of local files and package files.
	Files []string
	// Warnings has one entry per tolerated missing optional dependency.
	Warnings []Warning
	// Graph links files and package roots to what they pulled in.
	Graph graphlib.Graph[string, string]
}

// PackageRoots returns the expanded package roots, sorted.
func (r *Result) PackageRoots() []string {
	roots := make([]string, len(r.Packages))
	for i, pkg := range r.Packages {
		roots[i] = pkg.Root
	}
	sort.Strings(roots)
	return roots
}

// Why returns the shortest inclusion chain from the entry file to target.
// target may be a local file, a package root, a file inside a package, or a
// package name; a name shared by several instances picks the first root in
// sorted order.
func (r *Result) Why(target string) ([]string, error) {
	vertex, err := r.vertexFor(target)
	if err != nil {
		return nil, err
	}

	path, err := graphlib.ShortestPath(r.Graph, r.EntryFile, vertex)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTargetNotIncluded, target, err)
	}
	return path, nil
}

func (r *Result) vertexFor(target string) (string, error) {
	if _, err := r.Graph.Vertex(target); err == nil {
		return target, nil
	}

	if abs, err := filepath.Abs(target); err == nil {
		if _, err := r.Graph.Vertex(abs); err == nil {
			return abs, nil
		}
		if root, ok := r.owningRoot(abs); ok {
			return root, nil
		}
	}

	var roots []string
	for _, pkg := range r.Packages {
		if pkg.Name() == target {
			roots = append(roots, pkg.Root)
		}
	}
	if len(roots) == 0 {
		return "", fmt.Errorf("%w: %s", ErrTargetNotIncluded, target)
	}
	sort.Strings(roots)
	return roots[0], nil
}

// owningRoot returns the deepest package root containing path.
func (r *Result) owningRoot(path string) (string, bool) {
	best := ""
	for _, pkg := range r.Packages {
		rel, err := filepath.Rel(pkg.Root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if len(pkg.Root) > len(best) {
			best = pkg.Root
		}
	}
	return best, best != ""
}

// Cycles returns every group of files or packages that reach each other,
// each group and the list sorted.
func (r *Result) Cycles() ([][]string, error) {
	components, err := graphlib.StronglyConnectedComponents(r.Graph)
	if err != nil {
		return nil, fmt.Errorf("failed to compute cycles: %w", err)
	}

	var cycles [][]string
	for _, component := range components {
		if len(component) < 2 {
			continue
		}
		cycle := append([]string(nil), component...)
		sort.Strings(cycle)
		cycles = append(cycles, cycle)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles, nil
}
