package doc

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/internal/view"
	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

type checkOptions struct {
	strict  bool
	output  string
	noColor bool
	stdin   io.Reader
	out     io.Writer
}

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Report structural problems in documents",
		Long: `Check documents for truncated delimiters, undecodable attributes,
unbalanced or mismatched closers and unclosed blocks.

Exits non-zero when an error is found, or any warning with --strict.`,
		Example: `  # Check a few files
  blk check a.html b.html

  # Fail on warnings too
  cat post.html | blk check --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runCheck(args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat warnings as failures")

	return cmd
}

func runCheck(paths []string, opts *checkOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	rows := []DiagnosticRow{}
	for _, path := range paths {
		text, name, err := readInput(path, opts.stdin)
		if err != nil {
			return err
		}
		rows = append(rows, DiagnosticRows(name, text, blocks.Diagnose(text))...)
	}

	renderer := newRenderer(opts.output, opts.noColor, opts.out)
	if err := RenderDiagnostics(renderer, rows); err != nil {
		return err
	}

	return checkResult(rows, opts.strict)
}

// checkResult turns diagnostic counts into the command's exit error.
func checkResult(rows []DiagnosticRow, strict bool) error {
	errs := CountSeverity(rows, blocks.SeverityError)
	warns := CountSeverity(rows, blocks.SeverityWarning)

	if errs > 0 || (strict && warns > 0) {
		return fmt.Errorf("check failed: %d error(s), %d warning(s)", errs, warns)
	}
	return nil
}
