// Package fileset expands package directories into file lists and filters
// path lists with glob patterns.
package fileset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// NestedModulesPattern matches a package's own node_modules directory.
const NestedModulesPattern = "node_modules"

// GlobFiles returns every regular file under root as an absolute path.
// Directories whose root-relative slash path matches one of the exclude
// patterns are skipped along with their contents. A symlinked root is
// followed and symlinks to regular files are listed under their link path.
// Symlinked directories inside root are not descended into.
func GlobFiles(root string, exclude ...string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", root, err)
	}

	if err := validatePatterns(exclude); err != nil {
		return nil, err
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to list files under %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to list files under %s: not a directory", absRoot)
	}

	fsys := os.DirFS(absRoot)
	var files []string
	err = doublestar.GlobWalk(fsys, "**", func(p string, d fs.DirEntry) error {
		if p == "." {
			return nil
		}
		if d.IsDir() {
			if matchesAny(exclude, p) {
				return doublestar.SkipDir
			}
			return nil
		}
		if matchesAny(exclude, p) {
			return nil
		}

		regular := d.Type().IsRegular()
		if d.Type()&fs.ModeSymlink != 0 {
			target, err := fs.Stat(fsys, p)
			if err != nil {
				// dangling link
				return nil
			}
			regular = target.Mode().IsRegular()
		}
		if regular {
			files = append(files, filepath.Join(absRoot, filepath.FromSlash(p)))
		}
		return nil
	}, doublestar.WithNoFollow(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("failed to list files under %s: %w", absRoot, err)
	}

	return files, nil
}

// MatchPatterns filters paths the way micromatch does: when positive
// patterns are present a path must match one of them; a path matching any
// "!"-prefixed pattern is dropped. Input order is preserved.
func MatchPatterns(paths []string, patterns []string) ([]string, error) {
	var include, exclude []string
	for _, p := range patterns {
		if negated, ok := strings.CutPrefix(p, "!"); ok {
			exclude = append(exclude, negated)
			continue
		}
		include = append(include, p)
	}

	if err := validatePatterns(include); err != nil {
		return nil, err
	}
	if err := validatePatterns(exclude); err != nil {
		return nil, err
	}

	matched := make([]string, 0, len(paths))
	for _, path := range paths {
		slashPath := filepath.ToSlash(path)
		if len(include) > 0 && !matchesAny(include, slashPath) {
			continue
		}
		if matchesAny(exclude, slashPath) {
			continue
		}
		matched = append(matched, path)
	}

	return matched, nil
}

func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

// matchesAny assumes the patterns were validated.
func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}
