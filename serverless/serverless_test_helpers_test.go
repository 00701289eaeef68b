package serverless

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

const serviceFixtureYAML = `service: orders
provider:
  name: aws
  runtime: nodejs18.x
package:
  patterns:
    - "!node_modules/aws-sdk/**"
functions:
  create:
    handler: src/create.handler
  report:
    handler: report.main
    runtime: python3.11
  health:
    handler: health
`

func serviceFixture(t *testing.T, yml string) string {
	t.Helper()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"serverless.yml":                    yml,
		"package.json":                      `{"name": "orders", "dependencies": {"jws": "1", "aws-sdk": "2"}}`,
		"src/create.js":                     "const jws = require('jws');\nconst aws = require('aws-sdk');\nrequire('./lib/db');\n",
		"src/lib/db.js":                     "",
		"index.js":                          "module.exports.health = () => 'ok';\n",
		"report.py":                         "",
		"node_modules/jws/package.json":     `{"name": "jws", "dependencies": {"jwa": "1"}}`,
		"node_modules/jws/index.js":         "",
		"node_modules/jwa/package.json":     `{"name": "jwa"}`,
		"node_modules/jwa/index.js":         "",
		"node_modules/aws-sdk/package.json": `{"name": "aws-sdk"}`,
		"node_modules/aws-sdk/index.js":     "",
	})
	return root
}
