package depgraph

import (
	"errors"
	"path"
	"path/filepath"

	"github.com/LegacyCodeHQ/includedeps/depgraph/npm"
)

// ResolvedPackage is one installed package instance. Two values denote the
// same instance only when Root is identical.
type ResolvedPackage struct {
	Manifest *npm.Manifest
	Root     string
}

// Name returns the manifest name, or the root directory name when the
// manifest has none.
func (p ResolvedPackage) Name() string {
	if p.Manifest != nil && p.Manifest.Name != "" {
		return p.Manifest.Name
	}
	return filepath.Base(p.Root)
}

// Warning records a missing dependency that its requester declared optional.
type Warning struct {
	Package     string
	RequestedBy string
}

func (w Warning) String() string {
	return "missing optional dependency " + w.Package + " of " + w.RequestedBy
}

// handle routes a package specifier. The tolerance maps belong to the
// requester and decide whether a miss is fatal; from is the graph vertex
// that requested it.
func (res *resolution) handle(
	specifier, baseDir, from string,
	optional map[string]string,
	peerMeta map[string]npm.PeerDependencyMeta,
) error {
	name := npm.PackageName(specifier)
	logger := res.opts.Logger

	if res.opts.isIgnored(name) {
		logger.Info("module should be globally ignored", "module", name)
		return nil
	}

	if res.opts.IgnorePackageJSONDependencies {
		logger.Info("checking whether module is in package.json so it can be ignored", "module", name)
		if res.serviceManifest.Declares(name) {
			return nil
		}
		return &ResolveError{Kind: KindMisconfiguredIgnore, Name: name, From: from}
	}

	pkg, err := res.lookupPackage(name, baseDir)
	if err == nil {
		if pkg == nil {
			logger.Warn("no package.json found for resolved module", "module", name)
			return nil
		}
		res.addPackageVertex(*pkg)
		res.addEdge(from, pkg.Root)
		res.pendingPackages = append(res.pendingPackages, *pkg)
		return nil
	}

	if res.opts.UseLocalNodeModules || !errors.Is(err, npm.ErrModuleNotFound) {
		return &ResolveError{Kind: KindFilesystem, Name: name, From: from, Err: err}
	}

	if npm.IsTolerableMissing(name, optional, peerMeta) {
		logger.Warn("missing optional dependency", "module", name, "from", from)
		res.warnings = append(res.warnings, Warning{Package: name, RequestedBy: from})
		return nil
	}

	resolved, fallbackErr := res.modules.Resolve(specifier, baseDir)
	if fallbackErr != nil {
		return &ResolveError{Kind: KindUnresolvablePackage, Name: name, From: from, Err: fallbackErr}
	}

	logger.Debug("resolved module as a local file", "module", specifier, "path", resolved)
	res.pendingLocal = append(res.pendingLocal, resolved)
	res.addFileVertex(resolved)
	res.addEdge(from, resolved)
	return nil
}

// lookupPackage finds the installed instance of name visible from baseDir.
// A nil package with a nil error means the manifest path resolved but no
// manifest could be read above it.
func (res *resolution) lookupPackage(name, baseDir string) (*ResolvedPackage, error) {
	if res.opts.UseLocalNodeModules {
		manifestPath := filepath.Join(res.opts.ServicePath, "node_modules", filepath.FromSlash(name), npm.ManifestFileName)
		manifest, err := res.manifests.ReadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		return &ResolvedPackage{Manifest: manifest, Root: filepath.Dir(manifestPath)}, nil
	}

	manifestPath, err := res.modules.Resolve(path.Join(name, npm.ManifestFileName), baseDir)
	if err != nil {
		return nil, err
	}

	info, err := res.manifests.ReadNearestManifest(manifestPath)
	if err != nil || info == nil {
		return nil, err
	}
	return &ResolvedPackage{Manifest: info.Manifest, Root: info.RootDir()}, nil
}
