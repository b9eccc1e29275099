package configcmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/api"
	"github.com/open-cli-collective/blocks-cli/internal/config"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test connectivity with configured credentials",
		Long: `Test that blk can reach the WordPress REST API and that the application
password is accepted, by fetching the current user.`,
		Example: `  # Test connection
  blk config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			cfg, err := loadValidConfig(configPath(cmd))
			if err != nil {
				return err
			}
			return runTest(cfg, noColor, cmd.OutOrStdout(), nil)
		},
	}

	return cmd
}

func loadValidConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'blk init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'blk init' to configure)", err)
	}
	return cfg, nil
}

func runTest(cfg *config.Config, noColor bool, out io.Writer, httpClient *http.Client) error {
	if noColor {
		color.NoColor = true
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Fprintf(out, "Testing connection to %s...\n", cfg.URL)

	client := api.NewClient(cfg.URL, cfg.Username, cfg.AppPassword).WithHTTPClient(httpClient)
	user, err := client.CurrentUser(context.Background())

	switch code := api.StatusCode(err); {
	case err == nil:
	case code == http.StatusUnauthorized:
		_, _ = red.Fprintln(out, "✗ Authentication failed: 401 Unauthorized")
		fmt.Fprintln(out, "\nCheck your credentials with: blk config show")
		fmt.Fprintln(out, "Reconfigure with: blk init")
		return fmt.Errorf("authentication failed")
	case code == http.StatusForbidden:
		_, _ = red.Fprintln(out, "✗ Access denied: 403 Forbidden")
		fmt.Fprintln(out, "\nCheck the account's role and permissions.")
		return fmt.Errorf("access denied")
	case code != 0:
		_, _ = red.Fprintf(out, "✗ Unexpected response: %d\n", code)
		return fmt.Errorf("unexpected status code: %d", code)
	default:
		_, _ = red.Fprintln(out, "✗ Connection failed:", err)
		fmt.Fprintln(out, "\nCheck your URL with: blk config show")
		return fmt.Errorf("connection failed: %w", err)
	}

	_, _ = green.Fprintln(out, "✓ Authentication successful")
	_, _ = green.Fprintln(out, "✓ REST API access verified")
	fmt.Fprintf(out, "\nAuthenticated as: %s (%s)\n", user.Name, user.Slug)

	return nil
}
