package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huimingz/prbuddy/internal/analysis"
	"github.com/huimingz/prbuddy/internal/tools"
	"github.com/huimingz/prbuddy/internal/workdir"
)

var (
	analyzeBaseBranch   string
	analyzeNoDiff       bool
	analyzeMaxDiffLines int
	analyzeDir          string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze branch changes and print the report",
	Long: `Run analyze_file_changes locally and print the JSON report.

Compares HEAD against the merge base with the base branch. When the current
branch is the base branch, HEAD is compared with origin/<base> instead.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeBaseBranch, "base", "b", "", "Base branch to compare against (default from config, else main)")
	analyzeCmd.Flags().BoolVar(&analyzeNoDiff, "no-diff", false, "Omit the full diff")
	analyzeCmd.Flags().IntVar(&analyzeMaxDiffLines, "max-diff-lines", 0, "Maximum diff lines to print (default from config, else 500)")
	analyzeCmd.Flags().StringVarP(&analyzeDir, "dir", "C", "", "Repository directory (default: current directory)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	analysisCfg := cfg.GetAnalysisConfig()

	service := analysis.NewService(analysis.ServiceOptions{
		Resolver:     workdir.ProcessResolver{},
		BaseBranch:   analysisCfg.BaseBranch,
		MaxDiffLines: analysisCfg.MaxDiffLines,
		GitTimeout:   analysisCfg.GitTimeout,
	})

	includeDiff := !analyzeNoDiff
	params := &tools.AnalyzeFileChangesParams{
		BaseBranch:       analyzeBaseBranch,
		IncludeDiff:      &includeDiff,
		WorkingDirectory: analyzeDir,
	}
	if cmd.Flags().Changed("max-diff-lines") {
		params.MaxDiffLines = &analyzeMaxDiffLines
	}

	out, err := tools.NewAnalyzeFileChangesTool(service).Execute(context.Background(), params)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
