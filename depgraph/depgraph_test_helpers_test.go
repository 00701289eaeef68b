package depgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files under root from a relative-path -> content map.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// relPaths converts absolute paths under root to slash paths.
func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()

	rel := make([]string, len(paths))
	for i, path := range paths {
		r, err := filepath.Rel(root, path)
		require.NoError(t, err)
		rel[i] = filepath.ToSlash(r)
	}
	return rel
}

func resolveFixture(t *testing.T, root, entry string, opts Options, options ...ResolverOption) (*Result, error) {
	t.Helper()

	opts.ServicePath = root
	r, err := NewResolver(opts, options...)
	require.NoError(t, err)
	return r.Resolve(filepath.Join(root, filepath.FromSlash(entry)))
}
