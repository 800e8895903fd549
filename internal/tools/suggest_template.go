package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/huimingz/prbuddy/internal/templates"
)

// SuggestTemplateParams represents the parameters for the suggest_template tool
type SuggestTemplateParams struct {
	// ChangesSummary is the caller's own analysis of what the changes do
	ChangesSummary *string `json:"changes_summary"`
	// ChangeType is the caller's classification (bug, feature, docs, ...)
	ChangeType *string `json:"change_type"`
}

// SuggestTemplateTool recommends the PR template matching a classified change
type SuggestTemplateTool struct {
	catalog *templates.Catalog
}

// NewSuggestTemplateTool creates a new SuggestTemplateTool
func NewSuggestTemplateTool(catalog *templates.Catalog) *SuggestTemplateTool {
	return &SuggestTemplateTool{catalog: catalog}
}

// Name returns the tool name
func (t *SuggestTemplateTool) Name() string {
	return "suggest_template"
}

// Description returns the tool description
func (t *SuggestTemplateTool) Description() string {
	return `Analyze the changes yourself, then ask for the most appropriate PR template.
Parameters:
- changes_summary: Your analysis of what the changes do
- change_type: The type of change you've identified (bug, feature, docs, refactor, test, performance, security, ...)
Unrecognized change types get the feature template.`
}

// Info returns the tool schema
func (t *SuggestTemplateTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: t.Name(),
		Desc: t.Description(),
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"changes_summary": {Type: schema.String, Desc: "Your analysis of what the changes do", Required: true},
			"change_type":     {Type: schema.String, Desc: "The type of change you've identified (bug, feature, docs, refactor, test, etc.)", Required: true},
		}),
	}, nil
}

// InvokableRun decodes the arguments and runs the tool
func (t *SuggestTemplateTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var params SuggestTemplateParams
	if err := decodeArgs(argumentsInJSON, &params); err != nil {
		return "", err
	}
	return t.Execute(ctx, &params)
}

// Execute runs the tool with decoded parameters
func (t *SuggestTemplateTool) Execute(ctx context.Context, params *SuggestTemplateParams) (string, error) {
	if params == nil || params.ChangesSummary == nil {
		return "", fmt.Errorf("changes_summary is required")
	}
	if params.ChangeType == nil {
		return "", fmt.Errorf("change_type is required")
	}

	return traced(ctx, t.Name(), params, func(ctx context.Context, requestID string) (string, error) {
		return encode(t.catalog.Recommend(*params.ChangesSummary, *params.ChangeType))
	})
}
