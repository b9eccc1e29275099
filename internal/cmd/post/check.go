package post

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/api"
	"github.com/open-cli-collective/blocks-cli/internal/cmd/doc"
	"github.com/open-cli-collective/blocks-cli/internal/view"
	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

type checkOptions struct {
	commonOptions
	strict bool
}

// NewCmdCheck creates the post check command.
func NewCmdCheck() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <post-id>...",
		Short: "Report structural problems in posts",
		Long: `Fetch posts and check their raw content for truncated delimiters,
undecodable attributes, unbalanced closers and unclosed blocks.`,
		Example: `  # Check two posts
  blk post check 42 43

  # Fail on warnings too
  blk post check 42 --strict`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.load(cmd)
			return runCheck(args, opts, nil)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat warnings as failures")

	return cmd
}

func runCheck(args []string, opts *checkOptions, client *api.Client) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	if client == nil {
		var err error
		if client, err = opts.newClient(); err != nil {
			return err
		}
	}

	rows := []doc.DiagnosticRow{}
	for _, id := range ids {
		post, err := client.GetPost(context.Background(), id, &api.GetPostOptions{Type: opts.postType, Edit: true})
		if err != nil {
			return fmt.Errorf("failed to get post %d: %w", id, err)
		}
		text := post.Content.Raw
		rows = append(rows, doc.DiagnosticRows(fmt.Sprintf("post/%d", id), text, blocks.Diagnose(text))...)
	}

	renderer := opts.renderer()
	if err := doc.RenderDiagnostics(renderer, rows); err != nil {
		return err
	}

	errs := doc.CountSeverity(rows, blocks.SeverityError)
	warns := doc.CountSeverity(rows, blocks.SeverityWarning)
	if errs > 0 || (opts.strict && warns > 0) {
		return fmt.Errorf("check failed: %d error(s), %d warning(s)", errs, warns)
	}

	if opts.output != "json" && len(rows) == 0 {
		renderer.Success(fmt.Sprintf("%d post(s) checked, no problems found", len(ids)))
	}
	return nil
}
