package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huimingz/prbuddy/internal/tools"
)

var (
	suggestSummary string
	suggestType    string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List PR templates",
	Long:  `Print the PR template catalog as JSON, in the same form get_pr_templates returns.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		out, err := tools.NewGetPRTemplatesTool(catalog).Execute(context.Background())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Recommend a PR template for a change type",
	Long: `Print the template recommendation suggest_template would return.

Change types are matched case-insensitively against known synonyms
(fix, enhancement, cleanup, optimization, ...). Anything unrecognized
gets the feature template.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		out, err := tools.NewSuggestTemplateTool(catalog).Execute(context.Background(), &tools.SuggestTemplateParams{
			ChangesSummary: &suggestSummary,
			ChangeType:     &suggestType,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestSummary, "summary", "s", "", "Summary of what the changes do (required)")
	suggestCmd.Flags().StringVarP(&suggestType, "type", "t", "", "Change type, e.g. bug, feature, docs (required)")
	_ = suggestCmd.MarkFlagRequired("summary")
	_ = suggestCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(suggestCmd)
}
