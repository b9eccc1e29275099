package post

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/api"
	"github.com/open-cli-collective/blocks-cli/internal/view"
	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

type listOptions struct {
	commonOptions
	limit  int
	page   int
	status string
	search string
}

// NewCmdList creates the post list command.
func NewCmdList() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List posts",
		Long:    `List posts with the number of blocks each one contains.`,
		Example: `  # List recent posts
  blk post list

  # List draft pages
  blk post list --type pages --status draft

  # Output as JSON
  blk post list -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.load(cmd)
			return runList(opts, nil)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 10, "Maximum number of posts to return (1-100)")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "Page of results")
	cmd.Flags().StringVar(&opts.status, "status", "", "Post status (publish, draft, pending, private, any)")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Only posts matching this search term")

	return cmd
}

func runList(opts *listOptions, client *api.Client) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if opts.limit < 1 || opts.limit > 100 {
		return fmt.Errorf("invalid limit %d: must be between 1 and 100", opts.limit)
	}

	if client == nil {
		var err error
		if client, err = opts.newClient(); err != nil {
			return err
		}
	}

	result, err := client.ListPosts(context.Background(), &api.ListPostsOptions{
		Type:    opts.postType,
		PerPage: opts.limit,
		Page:    opts.page,
		Status:  opts.status,
		Search:  opts.search,
		Edit:    true,
	})
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	renderer := opts.renderer()

	if opts.output == "json" {
		return renderer.RenderJSON(result.Posts)
	}

	if len(result.Posts) == 0 {
		renderer.RenderText("No posts found.")
		return nil
	}

	headers := []string{"ID", "TITLE", "STATUS", "MODIFIED", "BLOCKS"}
	var rows [][]string
	for _, p := range result.Posts {
		modified := ""
		if !p.Modified.IsZero() {
			modified = p.Modified.Format("2006-01-02")
		}
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			view.Truncate(p.Title.Rendered, 50),
			p.Status,
			modified,
			fmt.Sprint(countBlocks(p.Content.Raw)),
		})
	}

	renderer.RenderTable(headers, rows)

	if result.HasMore(opts.page) {
		fmt.Fprintf(opts.writer(), "\n(page %d of %d, use --page to see more)\n", opts.page, result.TotalPages)
	}

	return nil
}

// countBlocks counts every non-freeform block in content, nested ones included.
func countBlocks(content string) int {
	doc, _ := blocks.Parse(content)
	if doc == nil {
		return 0
	}
	n := 0
	blocks.Walk(doc.Blocks, func(node *blocks.BlockNode, _ int) {
		if !node.IsFreeform() {
			n++
		}
	})
	return n
}
