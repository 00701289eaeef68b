package packaging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/includedeps/cmd/resolve"
	"github.com/LegacyCodeHQ/includedeps/internal/clilog"
	"github.com/LegacyCodeHQ/includedeps/serverless"
)

// FrameworkVersionEnv overrides the assumed Serverless Framework version.
const FrameworkVersionEnv = "INCLUDEDEPS_FRAMEWORK_VERSION"

type packageOptions struct {
	servicePath      string
	frameworkVersion string
	modulePaths      []string
}

// Cmd represents the package command.
var Cmd = NewCommand()

// NewCommand returns a new package command instance.
func NewCommand() *cobra.Command {
	opts := &packageOptions{}

	cmd := &cobra.Command{
		Use:   "package [function]",
		Short: "Compute the package patterns of a Serverless service",
		Long: `Read serverless.yml, resolve the handler of every Node.js function (or only
the named one) and print the resulting package section as YAML. Service-wide
patterns are used unless package.individually is set.

Plugin settings are read from custom.serverless-plugin-include-dependencies
and custom.includeDependencies.

Examples:
  includedeps package
  includedeps package createUser -s ./services/users
  INCLUDEDEPS_FRAMEWORK_VERSION=3.38.0 includedeps package`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackage(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.servicePath, "service", "s", ".", "Service directory containing serverless.yml")
	cmd.Flags().StringVar(&opts.frameworkVersion, "framework-version", "", "Serverless Framework version (default: $"+FrameworkVersionEnv+", frameworkVersion in serverless.yml, or "+serverless.MinimumFrameworkVersion+")")
	cmd.Flags().StringSliceVar(&opts.modulePaths, "module-path", nil, "Extra module directories (default: $"+resolve.NodePathEnv+")")

	return cmd
}

func runPackage(cmd *cobra.Command, opts *packageOptions, args []string) error {
	logger := clilog.FromContext(cmd.Context())

	service, err := serverless.LoadService(opts.servicePath)
	if err != nil {
		return err
	}

	packager, err := serverless.NewPackager(service,
		serverless.WithFrameworkVersion(opts.version(service)),
		serverless.WithModulePaths(opts.paths()...),
		serverless.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		err = packager.ProcessFunction(args[0])
	} else {
		err = packager.ProcessAll()
	}
	if err != nil {
		return err
	}

	data, err := service.MarshalSummary()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}

func (o *packageOptions) version(service *serverless.Service) string {
	if o.frameworkVersion != "" {
		return o.frameworkVersion
	}
	if v := os.Getenv(FrameworkVersionEnv); v != "" {
		return v
	}
	if v := serverless.DeclaredFrameworkVersion(service.Config.FrameworkVersion); v != "" {
		return v
	}
	return serverless.MinimumFrameworkVersion
}

func (o *packageOptions) paths() []string {
	if len(o.modulePaths) > 0 {
		return o.modulePaths
	}
	return filepath.SplitList(os.Getenv(resolve.NodePathEnv))
}
