package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/includedeps/cmd/graph"
	"github.com/LegacyCodeHQ/includedeps/cmd/languages"
	"github.com/LegacyCodeHQ/includedeps/cmd/packaging"
	"github.com/LegacyCodeHQ/includedeps/cmd/resolve"
	"github.com/LegacyCodeHQ/includedeps/cmd/watch"
	"github.com/LegacyCodeHQ/includedeps/cmd/why"
	"github.com/LegacyCodeHQ/includedeps/internal/clilog"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// logLevel and verbose are persistent logging flags
var logLevel string
var verbose bool

// envFile is the dotenv file loaded before any command runs
var envFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "includedeps",
		Short: "Find every file a Node.js function needs at runtime",
		Long: `includedeps follows the imports of a function's handler through local files
and installed npm packages and lists exactly what must ship in its
deployment package.

Use 'includedeps --help' to see all available commands, or
'includedeps <command> --help' for detailed information about a specific command.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: setupCommand,
	}

	cmd.AddCommand(resolve.NewCommand())
	cmd.AddCommand(graph.NewCommand())
	cmd.AddCommand(why.NewCommand())
	cmd.AddCommand(watch.NewCommand())
	cmd.AddCommand(packaging.NewCommand())
	cmd.AddCommand(languages.NewCommand())

	// Initialize annotations for version template
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations["buildDate"] = buildDate
	cmd.Annotations["commit"] = commit

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error; default: $"+clilog.LevelEnv+" or warn)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Shorthand for --log-level=info")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "Environment file loaded before running")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func setupCommand(cmd *cobra.Command, _ []string) error {
	if err := loadEnvFile(envFile); err != nil {
		return err
	}

	logger, err := clilog.New(cmd.ErrOrStderr(), effectiveLogLevel(logLevel, verbose, os.Getenv(clilog.LevelEnv)))
	if err != nil {
		return err
	}
	cmd.SetContext(clilog.WithLogger(cmd.Context(), logger))
	return nil
}

// effectiveLogLevel picks the flag, then --verbose, then the environment.
func effectiveLogLevel(flag string, verbose bool, env string) string {
	switch {
	case flag != "":
		return flag
	case verbose:
		return "info"
	default:
		return env
	}
}
