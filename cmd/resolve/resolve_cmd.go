package resolve

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/includedeps/depgraph"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type resolveOptions struct {
	Flags
	outputFormat string
	absolute     bool
}

type jsonPackage struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Root    string `json:"root"`
}

type jsonWarning struct {
	Package     string `json:"package"`
	RequestedBy string `json:"requestedBy"`
}

type jsonResult struct {
	Entry    string        `json:"entry"`
	Files    []string      `json:"files"`
	Packages []jsonPackage `json:"packages"`
	Warnings []jsonWarning `json:"warnings,omitempty"`
}

// Cmd represents the resolve command.
var Cmd = NewCommand()

// NewCommand returns a new resolve command instance.
func NewCommand() *cobra.Command {
	opts := &resolveOptions{outputFormat: formatText}

	cmd := &cobra.Command{
		Use:   "resolve <entry>",
		Short: "List every file an entry file needs at runtime",
		Long: `Follow the relative imports of an entry file and the installed packages it
loads, then list every local file and package file that must ship with it.

Examples:
  includedeps resolve src/handler.js
  includedeps resolve -s ./service handler.js --format json
  includedeps resolve handler.js --ignore aws-sdk --local-node-modules`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, args[0])
		},
	}

	opts.Register(cmd)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat, "Output format (text, json)")
	cmd.Flags().BoolVar(&opts.absolute, "absolute", false, "Print absolute paths")

	return cmd
}

func runResolve(cmd *cobra.Command, opts *resolveOptions, entryArg string) error {
	if opts.outputFormat != formatText && opts.outputFormat != formatJSON {
		return fmt.Errorf("unknown format: %s (valid options: %s, %s)", opts.outputFormat, formatText, formatJSON)
	}

	result, pathResolver, err := opts.ResolveEntry(cmd, entryArg)
	if err != nil {
		return err
	}

	display := pathResolver.Relative
	if opts.absolute {
		display = func(path string) string { return path }
	}

	if opts.outputFormat == formatJSON {
		return writeJSON(cmd, result, display)
	}

	var sb strings.Builder
	for _, file := range result.Files {
		sb.WriteString(display(file))
		sb.WriteString("\n")
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
	return err
}

func writeJSON(cmd *cobra.Command, result *depgraph.Result, display func(string) string) error {
	out := jsonResult{
		Entry:    display(result.EntryFile),
		Files:    make([]string, len(result.Files)),
		Packages: make([]jsonPackage, 0, len(result.Packages)),
	}
	for i, file := range result.Files {
		out.Files[i] = display(file)
	}
	for _, root := range result.PackageRoots() {
		for _, pkg := range result.Packages {
			if pkg.Root != root {
				continue
			}
			p := jsonPackage{Name: pkg.Name(), Root: display(pkg.Root)}
			if pkg.Manifest != nil {
				p.Version = pkg.Manifest.Version
			}
			out.Packages = append(out.Packages, p)
		}
	}
	for _, w := range result.Warnings {
		out.Warnings = append(out.Warnings, jsonWarning{Package: w.Package, RequestedBy: display(w.RequestedBy)})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
