package post

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/api"
	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

type formatOptions struct {
	commonOptions
	dryRun bool
}

// NewCmdFormat creates the post fmt command.
func NewCmdFormat() *cobra.Command {
	opts := &formatOptions{}

	cmd := &cobra.Command{
		Use:   "fmt <post-id>",
		Short: "Normalize the block delimiters of a post",
		Long: `Parse a post's raw content, re-serialize it with canonical delimiter
spacing and compact attributes, and save the result when it changed.

Posts with a truncated delimiter are left untouched.`,
		Example: `  # Normalize a post
  blk post fmt 42

  # Only report whether it would change
  blk post fmt 42 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.load(cmd)
			return runFormat(args[0], opts, nil)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report changes without saving")

	return cmd
}

func runFormat(arg string, opts *formatOptions, client *api.Client) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	if client == nil {
		if client, err = opts.newClient(); err != nil {
			return err
		}
	}

	ctx := context.Background()
	post, err := client.GetPost(ctx, id, &api.GetPostOptions{Type: opts.postType, Edit: true})
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}

	parsed, err := blocks.Parse(post.Content.Raw)
	if errors.Is(err, blocks.ErrIncompleteInput) {
		return fmt.Errorf("post %d has a truncated block delimiter, not formatting: %w", id, err)
	}
	if err != nil {
		return fmt.Errorf("post %d: %w", id, err)
	}

	renderer := opts.renderer()
	formatted := blocks.Serialize(parsed.Blocks)
	if formatted == post.Content.Raw {
		renderer.Success(fmt.Sprintf("Post %d is already formatted", id))
		return nil
	}

	if opts.dryRun {
		renderer.Warning(fmt.Sprintf("Post %d would be reformatted", id))
		return nil
	}

	postType := opts.postType
	if postType == "" {
		postType = post.Type
	}
	if _, err := client.UpdatePost(ctx, restBase(postType), id, &api.UpdatePostRequest{Content: formatted}); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	renderer.Success(fmt.Sprintf("Post %d reformatted", id))
	return nil
}

// restBase maps a post object's type to its REST collection.
func restBase(postType string) string {
	switch postType {
	case "", "post":
		return api.DefaultPostType
	case "page":
		return "pages"
	default:
		return postType
	}
}
