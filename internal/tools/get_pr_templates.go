package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/huimingz/prbuddy/internal/templates"
)

// GetPRTemplatesTool lists the available PR templates with their content
type GetPRTemplatesTool struct {
	catalog *templates.Catalog
}

// NewGetPRTemplatesTool creates a new GetPRTemplatesTool
func NewGetPRTemplatesTool(catalog *templates.Catalog) *GetPRTemplatesTool {
	return &GetPRTemplatesTool{catalog: catalog}
}

// Name returns the tool name
func (t *GetPRTemplatesTool) Name() string {
	return "get_pr_templates"
}

// Description returns the tool description
func (t *GetPRTemplatesTool) Description() string {
	return "List available PR templates with their content."
}

// Info returns the tool schema
func (t *GetPRTemplatesTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        t.Name(),
		Desc:        t.Description(),
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}, nil
}

// InvokableRun returns the catalog as a JSON array; arguments are ignored
func (t *GetPRTemplatesTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	return t.Execute(ctx)
}

// Execute runs the tool
func (t *GetPRTemplatesTool) Execute(ctx context.Context) (string, error) {
	return traced(ctx, t.Name(), nil, func(ctx context.Context, requestID string) (string, error) {
		return encode(t.catalog.List())
	})
}
