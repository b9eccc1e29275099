package doc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/renameio"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

// ErrNotFormatted is returned by fmt --check when a document would change.
var ErrNotFormatted = errors.New("document is not formatted")

type formatOptions struct {
	write bool
	check bool
	stdin io.Reader
	out   io.Writer
}

// NewCmdFormat creates the fmt command.
func NewCmdFormat() *cobra.Command {
	opts := &formatOptions{}

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a document with normalized delimiters",
		Long: `Parse a document and serialize it again. Delimiters are rewritten with
single spaces, the core namespace is dropped from block names and attribute
JSON is compacted. Content between delimiters is left untouched.

Documents with truncated delimiters are refused.`,
		Example: `  # Print the formatted document
  blk fmt post.html

  # Rewrite in place
  blk fmt --write post.html

  # Fail if formatting would change anything
  blk fmt --check post.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runFormat(argOrEmpty(args), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Write the result back to the file")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Only report whether the document is formatted")

	return cmd
}

func runFormat(path string, opts *formatOptions) error {
	if opts.write && (path == "" || path == "-") {
		return fmt.Errorf("--write requires a file argument")
	}

	text, name, err := readInput(path, opts.stdin)
	if err != nil {
		return err
	}

	doc, err := blocks.Parse(text)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	formatted := blocks.Serialize(doc.Blocks)

	out := outputOrStdout(opts.out)
	switch {
	case opts.check:
		if formatted != text {
			fmt.Fprintln(out, name)
			return fmt.Errorf("%s: %w", name, ErrNotFormatted)
		}
		return nil

	case opts.write:
		if formatted == text {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat file: %w", err)
		}
		if err := renameio.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		return nil

	default:
		_, err := io.WriteString(out, formatted)
		return err
	}
}
