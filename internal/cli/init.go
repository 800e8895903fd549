package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/huimingz/prbuddy/internal/config"
)

const defaultConfigTemplate = `# PRBuddy Configuration File
# Every value can be overridden with PRBUDDY_<SECTION>_<KEY>,
# e.g. PRBUDDY_ANALYSIS_BASE_BRANCH=develop

server:
  # Name reported to MCP clients
  name: pr-agent
  # How long to wait for the client to answer a roots request
  roots_timeout: 5s

analysis:
  # Branch compared against when the caller names none
  base_branch: main
  # Diff lines returned before truncating (agents cap tool output at ~25k tokens)
  max_diff_lines: 500
  # Timeout for each git query
  git_timeout: 30s

templates:
  # Directory holding bug.md, feature.md, docs.md, refactor.md, test.md,
  # performance.md and security.md. Leave empty to use the bundled templates.
  # dir: ~/.prbuddy/templates

log:
  debug: false
`

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize PRBuddy configuration",
	Long: `Create a default configuration file (~/.prbuddy.yaml).

The defaults work without a config file; create one to change the base
branch, the diff budget or the template directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		configPath := filepath.Join(homeDir, config.FileName)
		return writeDefaultConfig(cmd, configPath, initForce)
	},
}

func writeDefaultConfig(cmd *cobra.Command, configPath string, force bool) error {
	// Check if file exists
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", configPath)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ Configuration file created: %s\n", configPath)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Adjust the base branch and diff budget if needed")
	fmt.Fprintln(out, "  2. Add 'prbuddy serve' as a stdio server in your MCP client")
	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
