package resolve

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RawPath is a user-provided file path from CLI arguments.
type RawPath string

// AbsolutePath is a normalized absolute filesystem path.
type AbsolutePath string

func (p AbsolutePath) String() string {
	return string(p)
}

// PathResolver resolves raw user paths relative to the service directory.
type PathResolver struct {
	baseDir      AbsolutePath
	allowOutside bool
}

func NewPathResolver(baseDir string, allowOutside bool) (PathResolver, error) {
	if baseDir == "" {
		baseDir = "."
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return PathResolver{}, fmt.Errorf("failed to resolve base path: %w", err)
	}

	absBaseDir = resolveSymlinks(absBaseDir)
	return PathResolver{
		baseDir:      AbsolutePath(filepath.Clean(absBaseDir)),
		allowOutside: allowOutside,
	}, nil
}

// BaseDir returns the symlink-free service directory.
func (r PathResolver) BaseDir() string {
	return r.baseDir.String()
}

func (r PathResolver) Resolve(path RawPath) (AbsolutePath, error) {
	pathStr := string(path)
	if pathStr == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	absPath := pathStr
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(r.baseDir.String(), pathStr)
	}
	absPath = resolveSymlinks(filepath.Clean(absPath))

	if !r.allowOutside {
		within, err := isWithinBase(r.baseDir.String(), absPath)
		if err != nil {
			return "", err
		}
		if !within {
			return "", fmt.Errorf("path must be within the service directory: %q", pathStr)
		}
	}
	return AbsolutePath(absPath), nil
}

// Relative renders path relative to the service directory with forward
// slashes. Paths outside the service keep a ../ prefix.
func (r PathResolver) Relative(path string) string {
	rel, err := filepath.Rel(r.baseDir.String(), path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func isWithinBase(baseDir, targetPath string) (bool, error) {
	rel, err := filepath.Rel(baseDir, targetPath)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate path %q: %w", targetPath, err)
	}
	if rel == "." {
		return true, nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}
	return !filepath.IsAbs(rel), nil
}

func resolveSymlinks(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
