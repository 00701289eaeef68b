package graph

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/includedeps/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/includedeps/cmd/resolve"
	"github.com/LegacyCodeHQ/includedeps/depgraph"
)

type graphOptions struct {
	resolve.Flags
	outputFormat string
	generateURL  bool
	packagesOnly bool
}

// Cmd represents the graph command
var Cmd = NewCommand()

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	opts := &graphOptions{
		outputFormat: formatters.OutputFormatDOT.String(),
	}

	cmd := &cobra.Command{
		Use:   "graph <entry>",
		Short: "Render the inclusion graph of an entry file",
		Long: `Render how an entry file pulls in local files and packages.

Files and package roots are nodes; an edge means the source imported or
declared the target. Groups that reach each other are highlighted as cycles.

Examples:
  includedeps graph handler.js                 # Graphviz DOT
  includedeps graph handler.js -f mermaid      # Mermaid flowchart
  includedeps graph handler.js --packages-only # package roots only
  includedeps graph handler.js -u              # generate visualization URL`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, opts, args[0])
		},
	}

	opts.Register(cmd)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().BoolVarP(&opts.generateURL, "url", "u", false, "Generate visualization URL (supported formats: dot, mermaid)")
	cmd.Flags().BoolVar(&opts.packagesOnly, "packages-only", false, "Keep only the entry file and package roots")

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOptions, entryArg string) error {
	formatter, err := NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}

	result, pathResolver, err := opts.ResolveEntry(cmd, entryArg)
	if err != nil {
		return err
	}

	adjacency, err := depgraph.AdjacencyList(result.Graph)
	if err != nil {
		return fmt.Errorf("failed to read inclusion graph: %w", err)
	}
	if opts.packagesOnly {
		adjacency = PackagesOnly(result, adjacency)
	}

	view, err := formatters.NewGraphView(result, adjacency, pathResolver.Relative)
	if err != nil {
		return err
	}

	label := buildLabel(pathResolver.BaseDir(), pathResolver.Relative(result.EntryFile), result)
	output, err := formatter.Format(view, formatters.RenderOptions{Label: label})
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}

	return Print(cmd, formatter, output, opts.generateURL)
}

// Print writes output or, when generateURL is set and supported, a viewer link.
func Print(cmd *cobra.Command, formatter formatters.Formatter, output string, generateURL bool) error {
	if generateURL {
		if urlStr, ok := formatter.GenerateURL(output); ok {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), urlStr)
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: URL generation is not supported for this format\n\n")
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}

func buildLabel(serviceDir, entry string, result *depgraph.Result) string {
	files := len(result.Files)
	noun := "files"
	if files == 1 {
		noun = "file"
	}
	return fmt.Sprintf("%s • %s • %d %s • %d packages", filepath.Base(serviceDir), entry, files, noun, len(result.Packages))
}

// PackagesOnly collapses local files out of adjacency. The entry file keeps
// an edge to every package reachable through local files only.
func PackagesOnly(result *depgraph.Result, adjacency depgraph.DependencyGraph) depgraph.DependencyGraph {
	isPackage := func(vertex string) bool {
		return depgraph.VertexAttributes(result.Graph, vertex)[depgraph.KindAttribute] == depgraph.VertexPackage
	}

	collapsed := make(depgraph.DependencyGraph)
	for _, vertex := range depgraph.SortedVertices(adjacency) {
		if vertex != result.EntryFile && !isPackage(vertex) {
			continue
		}

		seen := map[string]bool{vertex: true}
		queue := append([]string(nil), adjacency[vertex]...)
		deps := []string{}
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			if seen[next] {
				continue
			}
			seen[next] = true
			if isPackage(next) {
				deps = append(deps, next)
				continue
			}
			queue = append(queue, adjacency[next]...)
		}
		collapsed[vertex] = depgraph.SortedVertices(toSet(deps))
	}
	return collapsed
}

func toSet(values []string) depgraph.DependencyGraph {
	set := make(depgraph.DependencyGraph, len(values))
	for _, v := range values {
		set[v] = nil
	}
	return set
}
