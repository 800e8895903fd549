package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huimingz/prbuddy/internal/config"
	"github.com/huimingz/prbuddy/internal/log"
	"github.com/huimingz/prbuddy/internal/templates"
)

var (
	// Global flags
	debugMode  bool
	configFile string

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prbuddy",
	Short: "MCP server that helps agents describe pull requests",
	Long: `PRBuddy is a Model Context Protocol server that lets an agent:
  - Analyze the changes on the current branch relative to a base branch
  - List the available PR description templates
  - Pick the template that matches a classified change

Run "prbuddy serve" from your MCP client configuration.
Use "prbuddy [command] --help" for more information about a command.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set debug mode before any command runs
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

// loadConfig loads the configuration and applies its log settings
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.IsDebug() {
		log.SetDebugMode(true)
	}
	log.DebugConfig("Configuration", cfg)
	return cfg, nil
}

// loadCatalog loads the template catalog named by cfg; a missing file is fatal
func loadCatalog(cfg *config.Config) (*templates.Catalog, error) {
	tmplCfg, err := cfg.GetTemplatesConfig()
	if err != nil {
		return nil, err
	}
	catalog, err := templates.LoadDir(tmplCfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return catalog, nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output (written to stderr)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ./.prbuddy.yaml, then ~/.prbuddy.yaml)")
}
