package doc

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
	"github.com/open-cli-collective/blocks-cli/pkg/convert"
)

type convertOptions struct {
	from  string
	to    string
	stdin io.Reader
	out   io.Writer
}

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert between markdown and block documents",
		Long: `Convert markdown into a block document (--from markdown), or a block
document into markdown (--to markdown).`,
		Example: `  # Markdown to blocks
  blk convert README.md --from markdown

  # Blocks to markdown
  blk convert post.html --to markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runConvert(argOrEmpty(args), opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "Source format of the input (markdown)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Target format of the output (markdown)")
	cmd.MarkFlagsMutuallyExclusive("from", "to")

	return cmd
}

func runConvert(path string, opts *convertOptions) error {
	if opts.from == "" && opts.to == "" {
		return fmt.Errorf("one of --from or --to is required")
	}
	for _, format := range []string{opts.from, opts.to} {
		if format != "" && format != "markdown" {
			return fmt.Errorf("unsupported format %q (supported: markdown)", format)
		}
	}

	text, name, err := readInput(path, opts.stdin)
	if err != nil {
		return err
	}

	var result string
	if opts.from != "" {
		nodes, err := convert.FromMarkdown([]byte(text))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		result = blocks.Serialize(nodes)
	} else {
		doc, err := blocks.Parse(text)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		result, err = convert.ToMarkdown(doc.Blocks)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	_, err = fmt.Fprintln(outputOrStdout(opts.out), result)
	return err
}
