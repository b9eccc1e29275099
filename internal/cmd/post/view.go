package post

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/api"
	"github.com/open-cli-collective/blocks-cli/internal/cmd/doc"
	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
	"github.com/open-cli-collective/blocks-cli/pkg/convert"
)

type viewOptions struct {
	commonOptions
	raw      bool
	tokens   bool
	markdown bool
}

// NewCmdView creates the post view command.
func NewCmdView() *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view <post-id>",
		Short: "View the blocks of a post",
		Long: `Fetch a post's raw content and show its block tree. JSON output prints
the tree in the classic blockName/attrs/innerBlocks layout.`,
		Example: `  # Block outline
  blk post view 42

  # Raw stored content
  blk post view 42 --raw

  # Content as markdown
  blk post view 42 --markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.load(cmd)
			return runView(args[0], opts, nil)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the raw stored content")
	cmd.Flags().BoolVar(&opts.tokens, "tokens", false, "List delimiter tokens instead of the tree")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Convert the content to markdown")
	cmd.MarkFlagsMutuallyExclusive("raw", "tokens", "markdown")

	return cmd
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post ID %q", arg)
	}
	return id, nil
}

func runView(arg string, opts *viewOptions, client *api.Client) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	if client == nil {
		if client, err = opts.newClient(); err != nil {
			return err
		}
	}

	post, err := client.GetPost(context.Background(), id, &api.GetPostOptions{Type: opts.postType, Edit: true})
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	content := post.Content.Raw

	out := opts.writer()
	renderer := opts.renderer()

	switch {
	case opts.raw:
		_, err := fmt.Fprintln(out, content)
		return err

	case opts.markdown:
		parsed, err := blocks.Parse(content)
		if err != nil {
			return fmt.Errorf("post %d: %w", id, err)
		}
		markdown, err := convert.ToMarkdown(parsed.Blocks)
		if err != nil {
			return fmt.Errorf("post %d: %w", id, err)
		}
		_, err = fmt.Fprintln(out, markdown)
		return err

	case opts.tokens:
		rows, scanErr := doc.ScanTokens(content, "", false)
		if err := doc.RenderTokens(renderer, rows); err != nil {
			return err
		}
		if scanErr != nil {
			return fmt.Errorf("post %d: %w", id, scanErr)
		}
		return nil
	}

	parsed, err := blocks.Parse(content)
	if err != nil {
		return fmt.Errorf("post %d: %w", id, err)
	}

	if opts.output != "json" {
		renderer.RenderKeyValue("Title", post.Title.Rendered)
		renderer.RenderKeyValue("ID", strconv.Itoa(post.ID))
		renderer.RenderKeyValue("Status", post.Status)
		if post.Link != "" {
			renderer.RenderKeyValue("Link", post.Link)
		}
		fmt.Fprintln(out)
	}

	if len(parsed.Blocks) == 0 {
		renderer.RenderText("(No content)")
		return nil
	}
	return doc.RenderTree(renderer, parsed.Blocks)
}
