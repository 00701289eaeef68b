package resolve

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/includedeps/depgraph"
	"github.com/LegacyCodeHQ/includedeps/internal/clilog"
)

// NodePathEnv lists extra module directories, like Node's NODE_PATH.
const NodePathEnv = "NODE_PATH"

// Flags are the resolution settings shared by every command that resolves
// an entry file.
type Flags struct {
	ServicePath                   string
	UseLocalNodeModules           bool
	IgnorePackageJSONDependencies bool
	IgnoredPackages               []string
	ModulePaths                   []string
	AllowOutside                  bool
}

// Register adds the resolution flags to cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.ServicePath, "service", "s", "", "Service directory (default: current directory)")
	cmd.Flags().BoolVar(&f.UseLocalNodeModules, "local-node-modules", false, "Read every package from <service>/node_modules")
	cmd.Flags().BoolVar(&f.IgnorePackageJSONDependencies, "ignore-package-json", false, "Leave out packages declared in the service package.json")
	cmd.Flags().StringSliceVar(&f.IgnoredPackages, "ignore", nil, "Package names never to include")
	cmd.Flags().StringSliceVar(&f.ModulePaths, "module-path", nil, "Extra module directories (default: $NODE_PATH)")
	cmd.Flags().BoolVar(&f.AllowOutside, "allow-outside-service", false, "Allow entry files outside the service directory")
}

// PathResolver returns the resolver for entry arguments.
func (f *Flags) PathResolver() (PathResolver, error) {
	resolver, err := NewPathResolver(f.ServicePath, f.AllowOutside)
	if err != nil {
		return PathResolver{}, fmt.Errorf("failed to create path resolver: %w", err)
	}
	return resolver, nil
}

// Options builds resolution options rooted at serviceDir.
func (f *Flags) Options(serviceDir string, cmd *cobra.Command) depgraph.Options {
	modulePaths := f.ModulePaths
	if len(modulePaths) == 0 {
		modulePaths = filepath.SplitList(os.Getenv(NodePathEnv))
	}

	return depgraph.Options{
		ServicePath:                   serviceDir,
		UseLocalNodeModules:           f.UseLocalNodeModules,
		IgnorePackageJSONDependencies: f.IgnorePackageJSONDependencies,
		IgnoredPackages:               f.IgnoredPackages,
		ModulePaths:                   modulePaths,
		Logger:                        clilog.FromContext(cmd.Context()),
	}
}

// ResolveEntry resolves the closure of entryArg with the flag settings.
func (f *Flags) ResolveEntry(cmd *cobra.Command, entryArg string) (*depgraph.Result, PathResolver, error) {
	pathResolver, err := f.PathResolver()
	if err != nil {
		return nil, PathResolver{}, err
	}

	entry, err := pathResolver.Resolve(RawPath(entryArg))
	if err != nil {
		return nil, PathResolver{}, fmt.Errorf("failed to resolve entry file %q: %w", entryArg, err)
	}

	resolver, err := depgraph.NewResolver(f.Options(pathResolver.BaseDir(), cmd))
	if err != nil {
		return nil, PathResolver{}, err
	}

	result, err := resolver.Resolve(entry.String())
	if err != nil {
		return nil, PathResolver{}, err
	}
	return result, pathResolver, nil
}
