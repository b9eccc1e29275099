// Package root provides the root command for the blk CLI.
package root

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/open-cli-collective/blocks-cli/internal/cmd/completion"
	"github.com/open-cli-collective/blocks-cli/internal/cmd/configcmd"
	"github.com/open-cli-collective/blocks-cli/internal/cmd/doc"
	initcmd "github.com/open-cli-collective/blocks-cli/internal/cmd/init"
	"github.com/open-cli-collective/blocks-cli/internal/cmd/lspcmd"
	"github.com/open-cli-collective/blocks-cli/internal/cmd/post"
	"github.com/open-cli-collective/blocks-cli/internal/version"
	"github.com/open-cli-collective/blocks-cli/internal/view"
)

// logVerbosity maps the -v count to a commonlog verbosity. Without -v
// only errors are logged.
func logVerbosity(count int) int {
	switch {
	case count <= 0:
		return -2
	case count == 1:
		return 1
	default:
		return 2
	}
}

// NewCmdRoot creates the root command for blk.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blk",
		Short: "Inspect and process block-delimited documents",
		Long: `blk reads documents whose blocks are marked with HTML comment
delimiters such as <!-- wp:paragraph -->, <!-- wp:image {"id":7} /--> and
<!-- /wp:paragraph -->.

It lists delimiter tokens, prints block trees, reports structural problems,
normalizes delimiters and converts between blocks and markdown. Documents
can be local files, stdin or posts fetched from a WordPress site.

Get started by running: blk tree post.html`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetCount("verbose")
			commonlog.Configure(logVerbosity(verbose), nil)

			output, _ := cmd.Flags().GetString("output")
			return view.ValidateFormat(output)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/blk/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().CountP("verbose", "v", "log to stderr (-v info, -vv debug)")

	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return view.ValidFormats(), cobra.ShellCompDirectiveNoFileComp
	})

	cmd.SetVersionTemplate("blk version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Document commands
	cmd.AddCommand(doc.NewCmdScan())
	cmd.AddCommand(doc.NewCmdTree())
	cmd.AddCommand(doc.NewCmdCheck())
	cmd.AddCommand(doc.NewCmdFormat())
	cmd.AddCommand(doc.NewCmdConvert())

	// Site and tooling commands
	cmd.AddCommand(post.NewCmdPost())
	cmd.AddCommand(lspcmd.NewCmdLSP())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
