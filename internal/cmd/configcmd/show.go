package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/blocks-cli/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current blk configuration with the source of each value.`,
		Example: `  # Show current config
  blk config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(configPath(cmd), noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

// maskSecret keeps the first and last four characters of long secrets.
func maskSecret(s string) string {
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}

// valueSource names where value came from: the first env var holding it,
// the config file, or "-" when neither matches.
func valueSource(value, fileValue string, fileFound bool, envVars ...string) string {
	for _, v := range envVars {
		if env := os.Getenv(v); env != "" && env == value {
			return v
		}
	}
	if fileFound && fileValue == value {
		return "config"
	}
	return "-"
}

func runShow(path string, noColor bool, out io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	fileCfg, fileErr := config.Load(path)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}
	cfg, _ := config.LoadWithEnv(path)

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue string, secret bool, envVars ...string) {
		_, _ = bold.Fprintf(out, "%-14s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(out, "-")
			return
		}

		display := value
		if secret {
			display = maskSecret(value)
		}
		fmt.Fprint(out, display)
		_, _ = dim.Fprintf(out, "  (source: %s)\n", valueSource(value, fileValue, fileErr == nil, envVars...))
	}

	printField("URL", cfg.URL, fileCfg.URL, false, "BLK_URL", "WP_URL")
	printField("Username", cfg.Username, fileCfg.Username, false, "BLK_USERNAME", "WP_USERNAME")
	printField("App Password", cfg.AppPassword, fileCfg.AppPassword, true, "BLK_APP_PASSWORD", "WP_APP_PASSWORD")
	printField("Post Type", cfg.PostType, fileCfg.PostType, false, "BLK_POST_TYPE")

	fmt.Fprintln(out)
	_, _ = dim.Fprintf(out, "Config file: %s\n", path)
	if fileErr != nil {
		_, _ = dim.Fprintln(out, "(file not found)")
	}

	return nil
}
