package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/huimingz/prbuddy/internal/analysis"
)

// AnalyzeFileChangesParams represents the parameters for the analyze_file_changes tool
type AnalyzeFileChangesParams struct {
	// BaseBranch is the branch to compare against
	BaseBranch string `json:"base_branch,omitempty"`
	// IncludeDiff includes the full diff (defaults to true)
	IncludeDiff *bool `json:"include_diff,omitempty"`
	// MaxDiffLines bounds the returned diff (defaults to the configured budget)
	MaxDiffLines *int `json:"max_diff_lines,omitempty"`
	// WorkingDirectory overrides working tree discovery
	WorkingDirectory string `json:"working_directory,omitempty"`
}

// AnalyzeFileChangesTool reports the changes on the current branch relative to a base branch
type AnalyzeFileChangesTool struct {
	service *analysis.Service
}

// NewAnalyzeFileChangesTool creates a new AnalyzeFileChangesTool
func NewAnalyzeFileChangesTool(service *analysis.Service) *AnalyzeFileChangesTool {
	return &AnalyzeFileChangesTool{service: service}
}

// Name returns the tool name
func (t *AnalyzeFileChangesTool) Name() string {
	return "analyze_file_changes"
}

// Description returns the tool description
func (t *AnalyzeFileChangesTool) Description() string {
	return `Get the full diff and list of changed files in the current git repository.
Changes are compared against the merge base with the base branch (git diff base...HEAD).
When the current branch is the base branch itself, HEAD is compared with origin/<base>.
Large diffs are truncated to max_diff_lines lines with a note saying how to see more.
Parameters:
- base_branch: Base branch to compare against (default: main)
- include_diff: Include the full diff content (default: true)
- max_diff_lines: Maximum diff lines to return (default: 500)
- working_directory: Repository directory (default: the client's root, else the server's directory)`
}

// Info returns the tool schema
func (t *AnalyzeFileChangesTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: t.Name(),
		Desc: t.Description(),
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"base_branch":       {Type: schema.String, Desc: "Base branch to compare against (default: main)"},
			"include_diff":      {Type: schema.Boolean, Desc: "Include the full diff content (default: true)"},
			"max_diff_lines":    {Type: schema.Integer, Desc: "Maximum number of diff lines to return (default: 500)"},
			"working_directory": {Type: schema.String, Desc: "Absolute path of the repository to analyze"},
		}),
	}, nil
}

// InvokableRun runs the analysis. Failures are reported as an {"error": ...}
// document rather than an error so the caller always gets a payload.
func (t *AnalyzeFileChangesTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var params AnalyzeFileChangesParams
	if err := decodeArgs(argumentsInJSON, &params); err != nil {
		return errorPayload(err.Error()), nil
	}
	return t.Execute(ctx, &params)
}

// Execute runs the tool with decoded parameters
func (t *AnalyzeFileChangesTool) Execute(ctx context.Context, params *AnalyzeFileChangesParams) (string, error) {
	if params == nil {
		params = &AnalyzeFileChangesParams{}
	}

	return traced(ctx, t.Name(), params, func(ctx context.Context, requestID string) (string, error) {
		req := analysis.Request{
			BaseBranch:       params.BaseBranch,
			IncludeDiff:      true,
			MaxDiffLines:     t.service.MaxDiffLines(),
			WorkingDirectory: params.WorkingDirectory,
			RequestID:        requestID,
		}
		if params.IncludeDiff != nil {
			req.IncludeDiff = *params.IncludeDiff
		}
		if params.MaxDiffLines != nil {
			req.MaxDiffLines = *params.MaxDiffLines
		}

		report, err := t.service.Analyze(ctx, req)
		if err != nil {
			return errorPayload(analysis.ErrorMessage(err)), nil
		}

		out, err := encode(report)
		if err != nil {
			return errorPayload(err.Error()), nil
		}
		return out, nil
	})
}
