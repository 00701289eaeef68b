package resolve

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/includedeps/internal/testhelpers"
)

func writeService(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func serviceFiles() map[string]string {
	return map[string]string{
		"package.json":                  `{"name": "svc", "dependencies": {"jwa": "^1.0.0", "bufferutil": "^4.0.0"}}`,
		"handler.js":                    "const db = require('./lib/db');\n",
		"lib/db.js":                     "module.exports = require('jwa');\n",
		"lib/unused.js":                 "",
		"node_modules/jwa/package.json": `{"name": "jwa", "version": "1.4.1", "optionalDependencies": {"bufferutil": "^4.0.0"}}`,
		"node_modules/jwa/index.js":     "",
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewCommand()
	cmd.SetArgs(args)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	return stdout.String(), err
}

func TestResolve_TextOutput(t *testing.T) {
	root := writeService(t, serviceFiles())

	output, err := execute(t, "handler.js", "-s", root)
	require.NoError(t, err)

	g := testhelpers.TextGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestResolve_AbsolutePaths(t *testing.T) {
	root := writeService(t, serviceFiles())
	pathResolver, err := NewPathResolver(root, false)
	require.NoError(t, err)

	output, err := execute(t, "handler.js", "-s", root, "--absolute")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, filepath.Join(pathResolver.BaseDir(), "handler.js"), lines[0])
}

func TestResolve_JSONOutput(t *testing.T) {
	root := writeService(t, serviceFiles())

	output, err := execute(t, "handler.js", "-s", root, "-f", "json")
	require.NoError(t, err)

	var decoded jsonResult
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))

	assert.Equal(t, "handler.js", decoded.Entry)
	assert.Equal(t, []string{
		"handler.js",
		"lib/db.js",
		"node_modules/jwa/index.js",
		"node_modules/jwa/package.json",
	}, decoded.Files)
	assert.Equal(t, []jsonPackage{{Name: "jwa", Version: "1.4.1", Root: "node_modules/jwa"}}, decoded.Packages)
	assert.Equal(t, []jsonWarning{{Package: "bufferutil", RequestedBy: "node_modules/jwa"}}, decoded.Warnings)
}

func TestResolve_IgnoreFlag(t *testing.T) {
	root := writeService(t, serviceFiles())

	output, err := execute(t, "handler.js", "-s", root, "--ignore", "jwa")
	require.NoError(t, err)

	assert.Equal(t, "handler.js\nlib/db.js\n", output)
}

func TestResolve_UnknownFormat(t *testing.T) {
	root := writeService(t, serviceFiles())

	_, err := execute(t, "handler.js", "-s", root, "-f", "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format: xml")
}

func TestResolve_RequiresEntry(t *testing.T) {
	_, err := execute(t)

	assert.Error(t, err)
}

func TestFlags_OptionsFallsBackToNodePath(t *testing.T) {
	t.Setenv(NodePathEnv, strings.Join([]string{"/opt/a", "/opt/b"}, string(os.PathListSeparator)))

	cmd := NewCommand()
	flags := &Flags{}
	opts := flags.Options("/svc", cmd)

	assert.Equal(t, []string{"/opt/a", "/opt/b"}, opts.ModulePaths)
	assert.Equal(t, "/svc", opts.ServicePath)
	assert.NotNil(t, opts.Logger)

	flags.ModulePaths = []string{"/explicit"}
	assert.Equal(t, []string{"/explicit"}, flags.Options("/svc", cmd).ModulePaths)
}
