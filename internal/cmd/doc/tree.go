package doc

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/internal/view"
	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

type treeOptions struct {
	output  string
	noColor bool
	stdin   io.Reader
	out     io.Writer
}

// NewCmdTree creates the tree command.
func NewCmdTree() *cobra.Command {
	opts := &treeOptions{}

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Show the block tree of a document",
		Long: `Parse a document into its block tree. JSON output uses the classic
blockName/attrs/innerBlocks/innerHTML/innerContent layout; other formats
print an indented outline.`,
		Example: `  # Outline
  blk tree post.html

  # Full tree as JSON
  blk tree post.html -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runTree(argOrEmpty(args), opts)
		},
	}

	return cmd
}

func runTree(path string, opts *treeOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	text, name, err := readInput(path, opts.stdin)
	if err != nil {
		return err
	}

	doc, err := blocks.Parse(text)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	renderer := newRenderer(opts.output, opts.noColor, opts.out)
	if err := RenderTree(renderer, doc.Blocks); err != nil {
		return err
	}

	if renderer.Format() == view.FormatTable {
		for _, w := range doc.Warnings {
			renderer.Warning(w)
		}
	}
	return nil
}
