package doc

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/internal/view"
)

type scanOptions struct {
	filter  string
	html    bool
	output  string
	noColor bool
	stdin   io.Reader
	out     io.Writer
}

// NewCmdScan creates the scan command.
func NewCmdScan() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "List the block delimiters in a document",
		Long: `List the block delimiters of a document in order, with their byte spans,
block types and nesting depth. Freeform content between delimiters is hidden
unless --html is given.

Reads stdin when no file (or "-") is given.`,
		Example: `  # List every delimiter
  blk scan post.html

  # Only paragraph delimiters
  blk scan post.html --filter paragraph

  # Include freeform runs, as JSON
  blk scan post.html --html -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runScan(argOrEmpty(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", `Only show this block type ("paragraph", "acme/card", "freeform" or "*")`)
	cmd.Flags().BoolVar(&opts.html, "html", false, "Include freeform content between delimiters")

	return cmd
}

func runScan(path string, opts *scanOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	text, name, err := readInput(path, opts.stdin)
	if err != nil {
		return err
	}

	rows, scanErr := ScanTokens(text, opts.filter, opts.html)

	renderer := newRenderer(opts.output, opts.noColor, opts.out)
	if err := RenderTokens(renderer, rows); err != nil {
		return err
	}

	if scanErr != nil {
		return fmt.Errorf("%s: %w", name, scanErr)
	}
	return nil
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
