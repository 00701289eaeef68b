package languages

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/includedeps/depgraph/langsupport"
	"github.com/LegacyCodeHQ/includedeps/depgraph/registry"
)

// Cmd represents the languages command.
var Cmd = NewCommand()

// NewCommand returns a new languages command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List source languages whose imports are followed",
		Long: `List the source languages whose imports are followed when resolving an
entry file, their file extensions, and how well tested each parser is.

Examples:
  includedeps languages`,
		RunE: runLanguages,
	}

	return cmd
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	var sb strings.Builder
	for _, language := range registry.SupportedLanguages() {
		sb.WriteString(fmt.Sprintf("%s %s (%s)\n",
			language.Maturity.Symbol(), language.Name, strings.Join(language.Extensions, ", ")))
	}

	sb.WriteString("\n")
	for _, level := range langsupport.MaturityLevels() {
		sb.WriteString(fmt.Sprintf("%s %s\n", level.Symbol(), level.DisplayName()))
	}

	_, err := fmt.Fprint(cmd.OutOrStdout(), sb.String())
	return err
}
