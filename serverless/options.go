package serverless

import (
	"github.com/charmbracelet/log"

	"github.com/LegacyCodeHQ/includedeps/depgraph"
)

// PluginOptions are the defaulted plugin settings of a service.
type PluginOptions struct {
	UseLocalNodeModules           bool
	IgnorePackageJSONDependencies bool
	PackagesToBeIgnored           []string
	EnableCaching                 bool
}

// PluginOptions extracts the plugin settings; absent sections read as
// false or empty.
func (s *Service) PluginOptions() PluginOptions {
	var opts PluginOptions
	if plugin := s.Config.Custom.IncludeDependencies; plugin != nil {
		opts.UseLocalNodeModules = plugin.ShouldUseLocalNodeModules
		opts.IgnorePackageJSONDependencies = plugin.ShouldIgnorePackageJSONDependencies
		opts.PackagesToBeIgnored = append([]string(nil), plugin.PackagesToBeIgnored...)
	}
	if caching := s.Config.Custom.Caching; caching != nil {
		opts.EnableCaching = caching.EnableCaching
	}
	return opts
}

// ResolveOptions builds the resolution options for this service.
func (s *Service) ResolveOptions(logger *log.Logger, modulePaths []string) depgraph.Options {
	plugin := s.PluginOptions()
	return depgraph.Options{
		ServicePath:                   s.Path,
		UseLocalNodeModules:           plugin.UseLocalNodeModules,
		IgnorePackageJSONDependencies: plugin.IgnorePackageJSONDependencies,
		IgnoredPackages:               plugin.PackagesToBeIgnored,
		ModulePaths:                   modulePaths,
		Logger:                        logger,
	}
}
