package watch

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/LegacyCodeHQ/includedeps/depgraph"
)

// tracker re-resolves the entry file and reports how its closure changed.
// refresh may be called from timer goroutines.
type tracker struct {
	mu       sync.Mutex
	resolve  func() (*depgraph.Result, error)
	relative func(string) string
	out      io.Writer
	logger   *log.Logger
	files    []string
}

func (t *tracker) refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()

	result, err := t.resolve()
	if err != nil {
		t.logger.Error("resolution failed", "err", err)
		return
	}

	added, removed := diffFiles(t.files, result.Files)
	t.files = result.Files
	if len(added) == 0 && len(removed) == 0 {
		t.logger.Debug("closure unchanged", "files", len(result.Files))
		return
	}

	var sb strings.Builder
	for _, file := range added {
		sb.WriteString("+ " + t.relative(file) + "\n")
	}
	for _, file := range removed {
		sb.WriteString("- " + t.relative(file) + "\n")
	}
	sb.WriteString(summary(result))
	_, _ = fmt.Fprint(t.out, sb.String())
}

func summary(result *depgraph.Result) string {
	return fmt.Sprintf("%d files, %d packages, %d warnings\n", len(result.Files), len(result.Packages), len(result.Warnings))
}

// diffFiles compares two sorted file lists.
func diffFiles(before, after []string) (added, removed []string) {
	i, j := 0, 0
	for i < len(before) && j < len(after) {
		switch {
		case before[i] == after[j]:
			i++
			j++
		case before[i] < after[j]:
			removed = append(removed, before[i])
			i++
		default:
			added = append(added, after[j])
			j++
		}
	}
	removed = append(removed, before[i:]...)
	added = append(added, after[j:]...)
	return added, removed
}
