// Package init provides the init command for blk.
package init

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/api"
	"github.com/open-cli-collective/blocks-cli/internal/config"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		url      string
		username string
		noVerify bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize blk configuration",
		Long: `Initialize blk with the credentials of a WordPress site.

The post commands read content through the WordPress REST API and
authenticate with an application password. The configuration is saved to
~/.config/blk/config.yml.

To create an application password:
  1. Open Users > Profile in wp-admin
  2. Under "Application Passwords", enter a name and click "Add New"
  3. Copy the password (it won't be shown again)`,
		Example: `  # Interactive setup
  blk init

  # Pre-populate the site
  blk init --url https://blog.example.com`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(url, username, noVerify)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "WordPress site URL (e.g., https://blog.example.com)")
	cmd.Flags().StringVar(&username, "username", "", "WordPress username")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip connection verification")

	return cmd
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func runInit(prefillURL, prefillUsername string, noVerify bool) error {
	configPath := config.DefaultConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		URL:      prefillURL,
		Username: prefillUsername,
		PostType: api.DefaultPostType,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Site URL").
				Description("The WordPress site root, served over https").
				Placeholder("https://blog.example.com").
				Value(&cfg.URL).
				Validate(required("URL")),

			huh.NewInput().
				Title("Username").
				Description("The account the application password belongs to").
				Value(&cfg.Username).
				Validate(required("username")),

			huh.NewInput().
				Title("Application Password").
				Description("Create one under Users > Profile in wp-admin").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.AppPassword).
				Validate(required("application password")),

			huh.NewSelect[string]().
				Title("Default post type").
				Description("REST collection used by the post commands").
				Options(
					huh.NewOption("Posts", "posts"),
					huh.NewOption("Pages", "pages"),
				).
				Value(&cfg.PostType),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.NormalizeURL()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !noVerify {
		fmt.Print("Verifying connection... ")
		user, err := verifyConnection(cfg, nil)
		if err != nil {
			fmt.Println("failed!")
			return fmt.Errorf("connection verification failed: %w", err)
		}
		fmt.Printf("success! (signed in as %s)\n", user.Name)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  blk post list")
	fmt.Println("  blk post check <post-id>")

	return nil
}

// verifyConnection fetches the current user with cfg's credentials.
func verifyConnection(cfg *config.Config, httpClient *http.Client) (*api.User, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	client := api.NewClient(cfg.URL, cfg.Username, cfg.AppPassword).WithHTTPClient(httpClient)

	user, err := client.CurrentUser(context.Background())
	switch code := api.StatusCode(err); {
	case err == nil:
		return user, nil
	case code == http.StatusUnauthorized:
		return nil, fmt.Errorf("authentication failed - check your username and application password")
	case code == http.StatusForbidden:
		return nil, fmt.Errorf("access denied - check your permissions")
	case code == http.StatusNotFound:
		return nil, fmt.Errorf("REST API not found at %s/wp-json - check the site URL", cfg.URL)
	case code != 0:
		return nil, fmt.Errorf("unexpected status code: %d", code)
	default:
		return nil, err
	}
}
