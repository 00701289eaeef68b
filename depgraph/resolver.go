package depgraph

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"

	graphlib "github.com/dominikbraun/graph"

	"github.com/LegacyCodeHQ/includedeps/depgraph/fileset"
	"github.com/LegacyCodeHQ/includedeps/depgraph/npm"
	"github.com/LegacyCodeHQ/includedeps/depgraph/registry"
)

// SpecifierExtractor returns the module specifiers a source file loads,
// excluding runtime builtins.
type SpecifierExtractor interface {
	Specifiers(path string) ([]string, error)
}

// ModuleResolver resolves a specifier to an absolute file path from a base
// directory. A miss must wrap npm.ErrModuleNotFound.
type ModuleResolver interface {
	Resolve(specifier, baseDir string) (string, error)
}

// ManifestReader loads package manifests.
type ManifestReader interface {
	ReadManifest(path string) (*npm.Manifest, error)
	ReadNearestManifest(path string) (*npm.PackageInfo, error)
}

// Globber lists the regular files under root, pruning directories that
// match an exclude pattern.
type Globber func(root string, exclude ...string) ([]string, error)

type manifestFiles struct{}

func (manifestFiles) ReadManifest(path string) (*npm.Manifest, error) {
	return npm.ReadManifest(path)
}

func (manifestFiles) ReadNearestManifest(path string) (*npm.PackageInfo, error) {
	return npm.ReadNearestManifest(path)
}

// Resolver computes dependency closures for entry files.
type Resolver struct {
	opts      Options
	extractor SpecifierExtractor
	modules   ModuleResolver
	manifests ManifestReader
	glob      Globber
	cache     *ResultCache
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithSpecifierExtractor replaces the tree-sitter based extractor.
func WithSpecifierExtractor(extractor SpecifierExtractor) ResolverOption {
	return func(r *Resolver) { r.extractor = extractor }
}

// WithModuleResolver replaces the node_modules resolver.
func WithModuleResolver(modules ModuleResolver) ResolverOption {
	return func(r *Resolver) { r.modules = modules }
}

// WithManifestReader replaces the package.json reader.
func WithManifestReader(manifests ManifestReader) ResolverOption {
	return func(r *Resolver) { r.manifests = manifests }
}

// WithGlobber replaces the package file lister.
func WithGlobber(glob Globber) ResolverOption {
	return func(r *Resolver) { r.glob = glob }
}

// WithCache shares results between calls for the same entry file.
func WithCache(cache *ResultCache) ResolverOption {
	return func(r *Resolver) { r.cache = cache }
}

// NewResolver validates opts and returns a Resolver using the filesystem
// collaborators unless overridden.
func NewResolver(opts Options, options ...ResolverOption) (*Resolver, error) {
	validated, err := opts.Validate()
	if err != nil {
		return nil, err
	}

	modules := npm.NewResolver(validated.ModulePaths...)
	modules.Extensions = SourceExtensions()

	r := &Resolver{
		opts:      validated,
		extractor: registry.NewExtractor(),
		modules:   modules,
		manifests: manifestFiles{},
		glob:      fileset.GlobFiles,
	}
	for _, option := range options {
		option(r)
	}
	return r, nil
}

// SourceExtensions lists Node's extensions first, then the remaining
// scannable source extensions so TypeScript sources resolve locally.
func SourceExtensions() []string {
	extensions := append([]string(nil), npm.DefaultExtensions...)
	for _, ext := range registry.SupportedExtensions() {
		if !slices.Contains(extensions, ext) {
			extensions = append(extensions, ext)
		}
	}
	return extensions
}

// Resolve returns every file that must ship with entryFile, sorted.
func Resolve(entryFile string, opts Options) ([]string, error) {
	r, err := NewResolver(opts)
	if err != nil {
		return nil, err
	}

	result, err := r.Resolve(entryFile)
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

// Resolve computes the closure of entryFile. Any fatal condition aborts the
// whole resolution and no partial result is returned.
func (r *Resolver) Resolve(entryFile string) (*Result, error) {
	absEntry, err := filepath.Abs(entryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", entryFile, err)
	}

	if r.cache != nil {
		if cached, ok := r.cache.Get(absEntry); ok {
			r.opts.Logger.Debug("using cached dependency list", "entry", absEntry)
			return cached, nil
		}
	}

	res, err := r.newResolution(absEntry)
	if err != nil {
		return nil, err
	}

	for len(res.pendingLocal) > 0 || len(res.pendingPackages) > 0 {
		if err := res.walk(); err != nil {
			return nil, err
		}
		if err := res.expand(); err != nil {
			return nil, err
		}
	}

	packageFiles, err := res.materialize()
	if err != nil {
		return nil, err
	}

	result := res.result(packageFiles)
	if r.cache != nil {
		r.cache.Add(absEntry, result)
	}
	return result, nil
}

// resolution owns all mutable state of one Resolve call.
type resolution struct {
	*Resolver

	entry string

	localFiles   map[string]bool
	localOrder   []string
	pendingLocal []string

	pendingPackages []ResolvedPackage
	visitedRoots    map[string]bool
	packages        []ResolvedPackage

	serviceManifest *npm.Manifest
	warnings        []Warning
	graph           graphlib.Graph[string, string]
}

func (r *Resolver) newResolution(entry string) (*resolution, error) {
	res := &resolution{
		Resolver:     r,
		entry:        entry,
		localFiles:   make(map[string]bool),
		pendingLocal: []string{entry},
		visitedRoots: make(map[string]bool),
		graph:        graphlib.New(graphlib.StringHash, graphlib.Directed()),
	}

	if r.opts.IgnorePackageJSONDependencies {
		path := filepath.Join(r.opts.ServicePath, npm.ManifestFileName)
		manifest, err := r.manifests.ReadManifest(path)
		if err != nil {
			return nil, &ResolveError{Kind: KindFilesystem, Name: path, Err: err}
		}
		res.serviceManifest = manifest
	}

	return res, nil
}

func (res *resolution) result(packageFiles []string) *Result {
	seen := make(map[string]bool, len(res.localOrder)+len(packageFiles))
	files := make([]string, 0, len(res.localOrder)+len(packageFiles))
	for _, group := range [][]string{res.localOrder, packageFiles} {
		for _, file := range group {
			if !seen[file] {
				seen[file] = true
				files = append(files, file)
			}
		}
	}
	sort.Strings(files)

	return &Result{
		EntryFile:  res.entry,
		LocalFiles: append([]string(nil), res.localOrder...),
		Packages:   res.packages,
		Files:      files,
		Warnings:   res.warnings,
		Graph:      res.graph,
	}
}
