package serverless

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/LegacyCodeHQ/includedeps/depgraph"
	"github.com/LegacyCodeHQ/includedeps/depgraph/fileset"
	"github.com/LegacyCodeHQ/includedeps/depgraph/npm"
)

// ExcludeNodeModules keeps node_modules out of the artifact unless a
// dependency pattern adds files back.
const ExcludeNodeModules = "!node_modules/**"

var nodeRuntime = regexp.MustCompile(`(provided|nodejs)+`)

// Packager adds the dependency closure of each function handler to the
// package patterns of a service.
type Packager struct {
	service  *Service
	resolver *depgraph.Resolver
	handlers *npm.Resolver
	logger   *log.Logger
}

// PackagerOption customizes a Packager.
type PackagerOption func(*packagerConfig)

type packagerConfig struct {
	frameworkVersion string
	modulePaths      []string
	logger           *log.Logger
	resolverOptions  []depgraph.ResolverOption
}

// WithFrameworkVersion sets the framework version checked on creation.
func WithFrameworkVersion(version string) PackagerOption {
	return func(c *packagerConfig) { c.frameworkVersion = version }
}

// WithModulePaths sets extra directories searched for bare specifiers.
func WithModulePaths(paths ...string) PackagerOption {
	return func(c *packagerConfig) { c.modulePaths = paths }
}

func WithLogger(logger *log.Logger) PackagerOption {
	return func(c *packagerConfig) { c.logger = logger }
}

// WithResolverOptions passes options through to the dependency resolver.
func WithResolverOptions(options ...depgraph.ResolverOption) PackagerOption {
	return func(c *packagerConfig) { c.resolverOptions = append(c.resolverOptions, options...) }
}

// NewPackager checks the framework version and prepares a resolver for the
// service. Results are cached per handler file when the service enables
// caching and functions are not packaged individually.
func NewPackager(service *Service, options ...PackagerOption) (*Packager, error) {
	if service == nil || service.Config == nil {
		return nil, &depgraph.ResolveError{Kind: depgraph.KindHostMisconfiguration, Name: "service is required"}
	}

	cfg := packagerConfig{frameworkVersion: MinimumFrameworkVersion}
	for _, option := range options {
		option(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	if err := CheckFrameworkVersion(cfg.frameworkVersion); err != nil {
		return nil, err
	}

	resolverOptions := cfg.resolverOptions
	if service.PluginOptions().EnableCaching && !service.Individually() {
		cache, err := depgraph.NewResultCache(depgraph.DefaultCacheSize)
		if err != nil {
			return nil, err
		}
		resolverOptions = append(resolverOptions, depgraph.WithCache(cache))
	}

	resolver, err := depgraph.NewResolver(service.ResolveOptions(cfg.logger, cfg.modulePaths), resolverOptions...)
	if err != nil {
		return nil, err
	}

	handlers := npm.NewResolver(cfg.modulePaths...)
	handlers.Extensions = depgraph.SourceExtensions()

	cfg.logger.Info("starting work", "service", service.Config.Service)
	return &Packager{
		service:  service,
		resolver: resolver,
		handlers: handlers,
		logger:   cfg.logger,
	}, nil
}

// ProcessAll processes every function in name order.
func (p *Packager) ProcessAll() error {
	for _, name := range p.service.FunctionNames() {
		if err := p.ProcessFunction(name); err != nil {
			return err
		}
	}
	return nil
}

// ProcessFunction adds the dependencies of one function. Functions on
// runtimes other than Node.js or custom runtimes are left untouched.
func (p *Packager) ProcessFunction(name string) error {
	cfg := p.service.Config
	if cfg.Package == nil {
		cfg.Package = &PackageConfig{}
	}
	cfg.Package.Patterns = Union([]string{ExcludeNodeModules}, cfg.Package.Patterns)

	fn, ok := cfg.Functions[name]
	if !ok || fn == nil {
		return fmt.Errorf("function %s is not defined", name)
	}

	runtime := p.service.Runtime(fn)
	if !nodeRuntime.MatchString(runtime) {
		p.logger.Debug("skipping function", "function", name, "runtime", runtime)
		return nil
	}

	if fn.Package == nil {
		fn.Package = &PackageConfig{}
	}

	fileName, err := p.HandlerFilename(fn.Handler)
	if err != nil {
		return fmt.Errorf("function %s: %w", name, err)
	}

	dependencies, err := p.Dependencies(fileName, cfg.Package.Patterns)
	if err != nil {
		return fmt.Errorf("function %s: %w", name, err)
	}

	target := cfg.Package
	if p.service.Individually() {
		target = fn.Package
	}
	target.Patterns = Union(target.Patterns, dependencies)

	p.logger.Info("included dependencies", "function", name, "count", len(dependencies))
	return nil
}

// HandlerFilename resolves a handler such as "src/handler.main" to its
// source file. A handler without a dot names the index file.
func (p *Packager) HandlerFilename(handler string) (string, error) {
	handlerPath := "index"
	if i := strings.LastIndex(handler, "."); i != -1 {
		handlerPath = handler[:i]
	}

	fileName, err := p.handlers.Resolve(filepath.Join(p.service.Path, filepath.FromSlash(handlerPath)), p.service.Path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve handler %s: %w", handler, err)
	}
	return fileName, nil
}

// Dependencies returns the closure of fileName as service-relative slash
// paths, filtered by the "!node_modules/..." exclusions among patterns.
func (p *Packager) Dependencies(fileName string, patterns []string) ([]string, error) {
	result, err := p.resolver.Resolve(fileName)
	if err != nil {
		return nil, err
	}

	relative := make([]string, 0, len(result.Files))
	for _, file := range result.Files {
		rel, err := filepath.Rel(p.service.Path, file)
		if err != nil {
			return nil, fmt.Errorf("failed to relativize %s: %w", file, err)
		}
		relative = append(relative, filepath.ToSlash(rel))
	}

	exclusions := NodeModulesExclusions(patterns)
	p.logger.Debug("resolved dependencies", "file", fileName, "count", len(relative), "exclusions", exclusions)
	if len(exclusions) == 0 {
		return relative, nil
	}
	return fileset.MatchPatterns(relative, exclusions)
}

// NodeModulesExclusions picks the patterns that exclude specific paths under
// node_modules. The blanket "!node_modules" forms are not exclusions of
// dependencies and are skipped.
func NodeModulesExclusions(patterns []string) []string {
	var exclusions []string
	for _, pattern := range patterns {
		if !strings.HasPrefix(pattern, "!node_modules") || pattern == "!node_modules" || pattern == ExcludeNodeModules {
			continue
		}
		exclusions = append(exclusions, pattern)
	}
	return exclusions
}

// Union appends the entries of b missing from a, keeping order.
func Union(a, b []string) []string {
	result := append([]string(nil), a...)
	seen := make(map[string]bool, len(result)+len(b))
	for _, p := range result {
		seen[p] = true
	}
	for _, p := range b {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	return result
}
