package why

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LegacyCodeHQ/includedeps/internal/testhelpers"
)

func writeService(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("os.MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("os.WriteFile() error = %v", err)
		}
	}
	return root
}

func serviceFiles() map[string]string {
	return map[string]string{
		"package.json":                  `{"name": "svc"}`,
		"handler.js":                    "require('./lib/db');\nrequire('./lib/auth');\n",
		"lib/db.js":                     "require('jws');\n",
		"lib/auth.js":                   "require('jwa');\n",
		"node_modules/jws/package.json": `{"name": "jws", "dependencies": {"jwa": "^1.0.0"}}`,
		"node_modules/jws/index.js":     "",
		"node_modules/jwa/package.json": `{"name": "jwa"}`,
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

func TestWhy_TextChainToPackage(t *testing.T) {
	root := writeService(t, serviceFiles())

	output, err := execute(t, "handler.js", "jws", "-s", root)
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	g := testhelpers.TextGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestWhy_FileInsidePackage(t *testing.T) {
	root := writeService(t, serviceFiles())

	output, err := execute(t, "handler.js", "node_modules/jws/index.js", "-s", root)
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if !strings.Contains(output, "jws (node_modules/jws)") {
		t.Fatalf("expected chain to end at the owning package, got:\n%s", output)
	}
}

func TestWhy_LocalFile(t *testing.T) {
	root := writeService(t, serviceFiles())

	output, err := execute(t, "handler.js", "./lib/auth.js", "-s", root)
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if output != "handler.js\n└─ lib/auth.js\n" {
		t.Fatalf("unexpected chain:\n%s", output)
	}
}

func TestWhy_AllPathsDOT(t *testing.T) {
	root := writeService(t, serviceFiles())

	output, err := execute(t, "handler.js", "jwa", "-s", root, "-f", "dot", "--all")
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	for _, want := range []string{
		`"handler.js" -> "lib/auth.js";`,
		`"handler.js" -> "lib/db.js";`,
		`"lib/db.js" -> "node_modules/jws";`,
		`"node_modules/jws" -> "node_modules/jwa";`,
		`"lib/auth.js" -> "node_modules/jwa";`,
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestWhy_ShortestPathMermaid(t *testing.T) {
	root := writeService(t, serviceFiles())

	output, err := execute(t, "handler.js", "jwa", "-s", root, "-f", "mermaid")
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if strings.Contains(output, "jws") {
		t.Fatalf("expected only the shortest chain, got:\n%s", output)
	}
	if !strings.Contains(output, `[["jwa"]]`) {
		t.Fatalf("expected package node for jwa, got:\n%s", output)
	}
}

func TestWhy_NotIncluded(t *testing.T) {
	root := writeService(t, serviceFiles())

	_, err := execute(t, "handler.js", "left-pad", "-s", root)
	if err == nil || !strings.Contains(err.Error(), "left-pad is not included by handler.js") {
		t.Fatalf("expected not-included error, got %v", err)
	}
}

func TestWhy_UnknownFormat(t *testing.T) {
	root := writeService(t, serviceFiles())

	_, err := execute(t, "handler.js", "jwa", "-s", root, "-f", "json")
	if err == nil || !strings.Contains(err.Error(), "unknown format: json") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}
