package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/includedeps/cmd/resolve"
	"github.com/LegacyCodeHQ/includedeps/depgraph"
	"github.com/LegacyCodeHQ/includedeps/internal/clilog"
)

type watchOptions struct {
	resolve.Flags
	debounce time.Duration
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{
		debounce: debounceInterval,
	}

	cmd := &cobra.Command{
		Use:   "watch <entry>",
		Short: "Re-resolve an entry file whenever the service changes",
		Long: `Watch the service directory and re-resolve the entry file after source or
package.json changes, printing files that joined (+) or left (-) the closure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args[0])
		},
	}

	opts.Register(cmd)
	cmd.Flags().DurationVar(&opts.debounce, "debounce", opts.debounce, "Quiet period before re-resolving")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions, entryArg string) error {
	logger := clilog.FromContext(cmd.Context())

	result, pathResolver, err := opts.ResolveEntry(cmd, entryArg)
	if err != nil {
		return fmt.Errorf("initial resolution failed: %w", err)
	}

	t := &tracker{
		resolve: func() (*depgraph.Result, error) {
			result, _, err := opts.ResolveEntry(cmd, entryArg)
			return result, err
		},
		relative: pathResolver.Relative,
		out:      cmd.OutOrStdout(),
		logger:   logger,
		files:    result.Files,
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s\n", pathResolver.BaseDir())
	fmt.Fprint(out, summary(result))
	fmt.Fprintf(out, "Press Ctrl+C to stop\n")

	return watchAndRebuild(ctx, pathResolver.BaseDir(), opts.debounce, t.refresh, logger)
}
