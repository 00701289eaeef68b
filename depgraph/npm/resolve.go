package npm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// ErrModuleNotFound is returned when no resolution strategy locates a module.
// Callers treat it as an expected miss rather than a failure.
var ErrModuleNotFound = errors.New("module not found")

// DefaultExtensions is the lookup order for extensionless specifiers.
var DefaultExtensions = []string{".js", ".json", ".node", ".mjs", ".cjs"}

// exportConditions are checked, in order, when exports is a condition map.
var exportConditions = []string{"require", "node", "default"}

// Resolver implements Node-style module resolution on the local filesystem.
type Resolver struct {
	// Extensions are appended to extensionless paths. Nil means DefaultExtensions.
	Extensions []string
	// ModulePaths are searched after every ancestor node_modules directory,
	// like NODE_PATH.
	ModulePaths []string
}

// NewResolver creates a Resolver that also searches modulePaths.
func NewResolver(modulePaths ...string) *Resolver {
	return &Resolver{ModulePaths: modulePaths}
}

// Resolve returns the absolute file a specifier refers to when required from
// baseDir. A miss wraps ErrModuleNotFound.
func (r *Resolver) Resolve(specifier, baseDir string) (string, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory %s: %w", baseDir, err)
	}

	if isPathSpecifier(specifier) {
		candidate := specifier
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(absBase, specifier)
		}
		resolved, err := r.loadAsFileOrDirectory(candidate)
		if err != nil {
			return "", err
		}
		if resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: cannot find %q from %s", ErrModuleNotFound, specifier, absBase)
	}

	for _, dir := range r.searchPaths(absBase) {
		resolved, err := r.loadAsFileOrDirectory(filepath.Join(dir, filepath.FromSlash(specifier)))
		if err != nil {
			return "", err
		}
		if resolved != "" {
			return resolved, nil
		}
	}

	return "", fmt.Errorf("%w: cannot find %q from %s", ErrModuleNotFound, specifier, absBase)
}

// NodeModulesPaths lists the node_modules directories searched from start,
// nearest first. Directories already named node_modules are not nested.
func NodeModulesPaths(start string) []string {
	var dirs []string
	dir := filepath.Clean(start)
	for {
		if filepath.Base(dir) != "node_modules" {
			dirs = append(dirs, filepath.Join(dir, "node_modules"))
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dirs
		}
		dir = parent
	}
}

func (r *Resolver) searchPaths(baseDir string) []string {
	dirs := NodeModulesPaths(baseDir)
	for _, p := range r.ModulePaths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			dirs = append(dirs, abs)
		}
	}
	return dirs
}

func (r *Resolver) extensions() []string {
	if r.Extensions == nil {
		return DefaultExtensions
	}
	return r.Extensions
}

func (r *Resolver) loadAsFileOrDirectory(candidate string) (string, error) {
	if resolved, err := r.loadAsFile(candidate); err != nil || resolved != "" {
		return resolved, err
	}
	return r.loadAsDirectory(candidate)
}

func (r *Resolver) loadAsFile(candidate string) (string, error) {
	ok, err := isFile(candidate)
	if err != nil {
		return "", err
	}
	if ok {
		return candidate, nil
	}
	for _, ext := range r.extensions() {
		ok, err := isFile(candidate + ext)
		if err != nil {
			return "", err
		}
		if ok {
			return candidate + ext, nil
		}
	}
	return "", nil
}

func (r *Resolver) loadAsDirectory(dir string) (string, error) {
	manifestPath := filepath.Join(dir, ManifestFileName)
	hasManifest, err := isFile(manifestPath)
	if err != nil {
		return "", err
	}

	if hasManifest {
		m, err := ReadManifest(manifestPath)
		if err != nil {
			return "", err
		}
		for _, entry := range entryPoints(m) {
			target := filepath.Join(dir, filepath.FromSlash(entry))
			if resolved, err := r.loadAsFile(target); err != nil || resolved != "" {
				return resolved, err
			}
			if resolved, err := r.loadIndex(target); err != nil || resolved != "" {
				return resolved, err
			}
		}
	}

	return r.loadIndex(dir)
}

func (r *Resolver) loadIndex(dir string) (string, error) {
	for _, ext := range r.extensions() {
		candidate := filepath.Join(dir, "index"+ext)
		ok, err := isFile(candidate)
		if err != nil {
			return "", err
		}
		if ok {
			return candidate, nil
		}
	}
	return "", nil
}

// entryPoints returns the manifest entries to try, main first.
func entryPoints(m *Manifest) []string {
	var entries []string
	if m.Main != "" {
		entries = append(entries, m.Main)
	}
	if entry := rootExport(m.Exports); entry != "" {
		entries = append(entries, entry)
	}
	return entries
}

// rootExport extracts the "." target of an exports field.
func rootExport(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var target string
	if err := json.Unmarshal(raw, &target); err == nil {
		return target
	}

	var conditions map[string]json.RawMessage
	if err := json.Unmarshal(raw, &conditions); err != nil {
		return ""
	}
	if dot, ok := conditions["."]; ok {
		return rootExport(dot)
	}
	for _, condition := range exportConditions {
		if value, ok := conditions[condition]; ok {
			if entry := rootExport(value); entry != "" {
				return entry
			}
		}
	}
	return ""
}

func isPathSpecifier(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") ||
		filepath.IsAbs(specifier)
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
