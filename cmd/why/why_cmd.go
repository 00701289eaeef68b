package why

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/includedeps/cmd/graph"
	"github.com/LegacyCodeHQ/includedeps/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/includedeps/cmd/resolve"
	"github.com/LegacyCodeHQ/includedeps/depgraph"
)

const (
	formatText    = "text"
	formatDOT     = "dot"
	formatMermaid = "mermaid"
)

type whyOptions struct {
	resolve.Flags
	outputFormat string
	allPaths     bool
}

// Cmd represents the why command.
var Cmd = NewCommand()

// NewCommand returns a new why command instance.
func NewCommand() *cobra.Command {
	opts := &whyOptions{
		outputFormat: formatText,
	}

	cmd := &cobra.Command{
		Use:   "why <entry> <target>",
		Short: "Explain why a file or package ships with an entry file",
		Long: `Show the shortest chain of imports and declared dependencies that pulls
target into the closure of entry. target may be a local file, a file inside
a package, a package directory, or a package name.

Examples:
  includedeps why handler.js jwa
  includedeps why handler.js node_modules/jwa/index.js
  includedeps why handler.js lib/db.js --all -f mermaid`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhy(cmd, opts, args[0], args[1])
		},
	}

	opts.Register(cmd)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", supportedFormats()))
	cmd.Flags().BoolVar(&opts.allPaths, "all", false, "Render every path to the target instead of the shortest (dot, mermaid)")

	return cmd
}

func runWhy(cmd *cobra.Command, opts *whyOptions, entryArg, targetArg string) error {
	if !isSupportedFormat(opts.outputFormat) {
		return fmt.Errorf("unknown format: %s (valid options: %s)", opts.outputFormat, supportedFormats())
	}

	result, pathResolver, err := opts.ResolveEntry(cmd, entryArg)
	if err != nil {
		return err
	}

	target := targetArg
	if strings.ContainsAny(targetArg, `/\`) || strings.HasPrefix(targetArg, ".") {
		abs, err := pathResolver.Resolve(resolve.RawPath(targetArg))
		if err == nil {
			target = abs.String()
		}
	}

	chain, err := result.Why(target)
	if errors.Is(err, depgraph.ErrTargetNotIncluded) {
		return fmt.Errorf("%s is not included by %s", targetArg, entryArg)
	}
	if err != nil {
		return err
	}

	if opts.outputFormat == formatText {
		return writeChain(cmd, result, chain, pathResolver.Relative)
	}

	adjacency, err := chainGraph(result, chain, opts.allPaths)
	if err != nil {
		return err
	}
	view, err := formatters.NewGraphView(result, adjacency, pathResolver.Relative)
	if err != nil {
		return err
	}
	formatter, err := graph.NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}

	label := fmt.Sprintf("why %s • %s", pathResolver.Relative(result.EntryFile), targetArg)
	output, err := formatter.Format(view, formatters.RenderOptions{Label: label})
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}
	return graph.Print(cmd, formatter, output, false)
}

// writeChain prints one step per line, indenting each hop.
func writeChain(cmd *cobra.Command, result *depgraph.Result, chain []string, relative func(string) string) error {
	var sb strings.Builder
	for i, vertex := range chain {
		if i > 0 {
			sb.WriteString(strings.Repeat("  ", i-1))
			sb.WriteString("└─ ")
		}
		sb.WriteString(describe(result, vertex, relative))
		sb.WriteString("\n")
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), sb.String())
	return err
}

func describe(result *depgraph.Result, vertex string, relative func(string) string) string {
	attrs := depgraph.VertexAttributes(result.Graph, vertex)
	if attrs[depgraph.KindAttribute] == depgraph.VertexPackage {
		return fmt.Sprintf("%s (%s)", attrs[depgraph.NameAttribute], relative(vertex))
	}
	return relative(vertex)
}

// chainGraph returns the subgraph to render: just the chain, or every path
// from the entry to the chain's last vertex.
func chainGraph(result *depgraph.Result, chain []string, allPaths bool) (depgraph.DependencyGraph, error) {
	if allPaths {
		adjacency, err := depgraph.AdjacencyList(result.Graph)
		if err != nil {
			return nil, fmt.Errorf("failed to read inclusion graph: %w", err)
		}
		return depgraph.PathNodes(adjacency, chain[0], chain[len(chain)-1]), nil
	}

	adjacency := make(depgraph.DependencyGraph, len(chain))
	for i, vertex := range chain {
		if i+1 < len(chain) {
			adjacency[vertex] = []string{chain[i+1]}
			continue
		}
		adjacency[vertex] = []string{}
	}
	return adjacency, nil
}

func isSupportedFormat(format string) bool {
	switch format {
	case formatText, formatDOT, formatMermaid:
		return true
	default:
		return false
	}
}

func supportedFormats() string {
	return strings.Join([]string{formatText, formatDOT, formatMermaid}, ", ")
}
