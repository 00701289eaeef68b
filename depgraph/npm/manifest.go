package npm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ManifestFileName is the file every installed package carries at its root.
const ManifestFileName = "package.json"

// PeerDependencyMeta holds the per-peer metadata a manifest may declare.
type PeerDependencyMeta struct {
	Optional bool `json:"optional"`
}

// Manifest is the subset of package.json the resolver reads.
type Manifest struct {
	Name                 string                        `json:"name"`
	Version              string                        `json:"version"`
	Main                 string                        `json:"main"`
	Exports              json.RawMessage               `json:"exports,omitempty"`
	Dependencies         map[string]string             `json:"dependencies"`
	PeerDependencies     map[string]string             `json:"peerDependencies"`
	PeerDependenciesMeta map[string]PeerDependencyMeta `json:"peerDependenciesMeta"`
	OptionalDependencies map[string]string             `json:"optionalDependencies"`
}

// DependencySections returns the edge sections in the order they are followed.
func (m *Manifest) DependencySections() []map[string]string {
	return []map[string]string{m.Dependencies, m.PeerDependencies, m.OptionalDependencies}
}

// Declares reports whether name is listed under dependencies,
// peerDependencies or optionalDependencies.
func (m *Manifest) Declares(name string) bool {
	if m == nil {
		return false
	}
	for _, section := range m.DependencySections() {
		if _, ok := section[name]; ok {
			return true
		}
	}
	return false
}

// PackageInfo is a parsed manifest together with the path it was read from.
type PackageInfo struct {
	Manifest *Manifest
	Path     string
}

// RootDir returns the directory containing the manifest.
func (p *PackageInfo) RootDir() string {
	return filepath.Dir(p.Path)
}

// ParseManifest decodes package.json content.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadManifest reads and decodes the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

// ReadNearestManifest finds the closest package.json at or above path.
// path may name a file or a directory. It returns (nil, nil) when no
// ancestor carries a manifest.
func ReadNearestManifest(path string) (*PackageInfo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	dir := absPath
	if info, statErr := os.Stat(absPath); statErr != nil || !info.IsDir() {
		dir = filepath.Dir(absPath)
	}

	for {
		candidate := filepath.Join(dir, ManifestFileName)
		m, err := ReadManifest(candidate)
		if err == nil {
			return &PackageInfo{Manifest: m, Path: candidate}, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// IsTolerableMissing reports whether a missing dependency is declared
// optional by its requester, either in optionalDependencies or as an
// optional peer in peerDependenciesMeta.
func IsTolerableMissing(name string, optional map[string]string, peerMeta map[string]PeerDependencyMeta) bool {
	if _, ok := optional[name]; ok {
		return true
	}
	meta, ok := peerMeta[name]
	return ok && meta.Optional
}
