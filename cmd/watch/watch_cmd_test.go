package watch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/LegacyCodeHQ/includedeps/depgraph"
)

func TestDiffFiles(t *testing.T) {
	added, removed := diffFiles(
		[]string{"/svc/a.js", "/svc/b.js", "/svc/d.js"},
		[]string{"/svc/b.js", "/svc/c.js", "/svc/d.js", "/svc/e.js"},
	)

	assert.Equal(t, []string{"/svc/c.js", "/svc/e.js"}, added)
	assert.Equal(t, []string{"/svc/a.js"}, removed)
}

func TestDiffFiles_Unchanged(t *testing.T) {
	added, removed := diffFiles([]string{"/svc/a.js"}, []string{"/svc/a.js"})

	assert.Empty(t, added)
	assert.Empty(t, removed)
}

func newTestTracker(out *bytes.Buffer, logs *bytes.Buffer, results ...*depgraph.Result) *tracker {
	calls := 0
	return &tracker{
		resolve: func() (*depgraph.Result, error) {
			if calls >= len(results) {
				return nil, errors.New("boom")
			}
			result := results[calls]
			calls++
			return result, nil
		},
		relative: func(path string) string { return path[len("/svc/"):] },
		out:      out,
		logger:   log.New(logs),
		files:    []string{"/svc/handler.js", "/svc/lib/a.js"},
	}
}

func TestTracker_RefreshPrintsChanges(t *testing.T) {
	var out, logs bytes.Buffer
	tr := newTestTracker(&out, &logs, &depgraph.Result{
		Files:    []string{"/svc/handler.js", "/svc/lib/b.js"},
		Packages: []depgraph.ResolvedPackage{{Root: "/svc/node_modules/jwa"}},
	})

	tr.refresh()

	assert.Equal(t, "+ lib/b.js\n- lib/a.js\n2 files, 1 packages, 0 warnings\n", out.String())
	assert.Equal(t, []string{"/svc/handler.js", "/svc/lib/b.js"}, tr.files)
}

func TestTracker_RefreshQuietWhenUnchanged(t *testing.T) {
	var out, logs bytes.Buffer
	tr := newTestTracker(&out, &logs, &depgraph.Result{
		Files: []string{"/svc/handler.js", "/svc/lib/a.js"},
	})

	tr.refresh()

	assert.Empty(t, out.String())
}

func TestTracker_RefreshLogsFailures(t *testing.T) {
	var out, logs bytes.Buffer
	tr := newTestTracker(&out, &logs)

	tr.refresh()

	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "resolution failed")
	assert.Equal(t, []string{"/svc/handler.js", "/svc/lib/a.js"}, tr.files)
}

func TestWatch_RequiresEntry(t *testing.T) {
	cmd := NewCommand()
	cmd.SetArgs(nil)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
