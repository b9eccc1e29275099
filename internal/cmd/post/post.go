// Package post provides commands that fetch WordPress posts and inspect
// their block content.
package post

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/api"
	"github.com/open-cli-collective/blocks-cli/internal/config"
	"github.com/open-cli-collective/blocks-cli/internal/view"
)

// NewCmdPost creates the post command.
func NewCmdPost() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "post",
		Aliases: []string{"posts"},
		Short:   "Inspect WordPress posts",
		Long:    `Commands for listing WordPress posts and inspecting their block content.`,
	}

	cmd.PersistentFlags().StringP("type", "t", "", "Post type REST base (posts, pages, ...); defaults to post_type from config")

	cmd.AddCommand(NewCmdList())
	cmd.AddCommand(NewCmdView())
	cmd.AddCommand(NewCmdCheck())
	cmd.AddCommand(NewCmdFormat())

	return cmd
}

// commonOptions are the flags every post subcommand reads.
type commonOptions struct {
	configPath string
	postType   string
	output     string
	noColor    bool
	out        io.Writer
}

func (o *commonOptions) load(cmd *cobra.Command) {
	o.configPath, _ = cmd.Flags().GetString("config")
	o.postType, _ = cmd.Flags().GetString("type")
	o.output, _ = cmd.Flags().GetString("output")
	o.noColor, _ = cmd.Flags().GetBool("no-color")
}

func (o *commonOptions) renderer() *view.Renderer {
	r := view.NewRenderer(view.Format(o.output), o.noColor)
	if o.out != nil {
		r.SetWriter(o.out)
	}
	return r
}

func (o *commonOptions) writer() io.Writer {
	if o.out == nil {
		return os.Stdout
	}
	return o.out
}

// newClient builds an API client from the configuration and fills in the
// post type when none was given.
func (o *commonOptions) newClient() (*api.Client, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'blk init' to configure)", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'blk init' to configure)", err)
	}

	if o.postType == "" {
		o.postType = cfg.PostType
	}
	return api.NewClient(cfg.URL, cfg.Username, cfg.AppPassword), nil
}
