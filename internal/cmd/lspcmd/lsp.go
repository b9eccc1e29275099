// Package lspcmd provides the language server command.
package lspcmd

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/internal/lsp"
	"github.com/open-cli-collective/blocks-cli/internal/version"
)

// NewCmdLSP creates the lsp command.
func NewCmdLSP() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the block document language server",
		Long: `Run a language server over stdio. Open documents are checked on every
change and the problems reported by 'blk check' are published as
diagnostics. Document symbols expose the block outline.

Logs go to stderr; raise verbosity with -v or -vv.`,
		Example: `  # Editor configuration command
  blk lsp`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return lsp.NewServer(version.Version).RunStdio()
		},
	}
}
