package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huimingz/prbuddy/internal/log"
	"github.com/huimingz/prbuddy/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Run the MCP server, speaking the protocol on stdin/stdout.

Tools:
  analyze_file_changes  Diff the current branch against a base branch
  get_pr_templates      List PR templates with their content
  suggest_template      Recommend a template for a change type

Logs are written to stderr so they never corrupt protocol frames.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log.SetOutput(os.Stderr)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	s, err := server.New(server.Options{
		Version: version,
		Config:  cfg,
		Catalog: catalog,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Debug("Serving %s %s on stdio", cfg.GetServerConfig().Name, version)
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
