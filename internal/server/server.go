// Package server exposes the tools over the Model Context Protocol.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huimingz/prbuddy/internal/analysis"
	"github.com/huimingz/prbuddy/internal/config"
	"github.com/huimingz/prbuddy/internal/templates"
	"github.com/huimingz/prbuddy/internal/tools"
	"github.com/huimingz/prbuddy/internal/workdir"
)

// emptyObjectSchema is used for tools without parameters
var emptyObjectSchema = json.RawMessage(`{"type":"object","properties":{}}`)

// Options holds the dependencies of the MCP server
type Options struct {
	Version  string
	Config   *config.Config
	Catalog  *templates.Catalog
	Executor analysis.ExecutorFactory // nil uses git on disk
}

// New creates the MCP server with all tools registered
func New(opts Options) (*server.MCPServer, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("template catalog is required")
	}
	serverCfg := opts.Config.GetServerConfig()
	analysisCfg := opts.Config.GetAnalysisConfig()

	s := server.NewMCPServer(
		serverCfg.Name,
		opts.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	resolver := workdir.Chain{
		workdir.NewRootsResolver(rootsLister{s: s}, serverCfg.RootsTimeout),
		workdir.ProcessResolver{},
	}

	service := analysis.NewService(analysis.ServiceOptions{
		Resolver:     resolver,
		Executors:    opts.Executor,
		BaseBranch:   analysisCfg.BaseBranch,
		MaxDiffLines: analysisCfg.MaxDiffLines,
		GitTimeout:   analysisCfg.GitTimeout,
	})

	for _, t := range []tools.Tool{
		tools.NewAnalyzeFileChangesTool(service),
		tools.NewGetPRTemplatesTool(opts.Catalog),
		tools.NewSuggestTemplateTool(opts.Catalog),
	} {
		if err := Register(s, t); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Register adds t to s, deriving the MCP input schema from the tool's eino schema
func Register(s *server.MCPServer, t tools.Tool) error {
	def, err := Definition(context.Background(), t)
	if err != nil {
		return err
	}
	s.AddTool(def, Handler(t))
	return nil
}

// Definition converts the tool's eino schema into an MCP tool definition
func Definition(ctx context.Context, t tools.Tool) (mcp.Tool, error) {
	info, err := t.Info(ctx)
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("failed to get tool info for %s: %w", t.Name(), err)
	}

	raw := emptyObjectSchema
	if info.ParamsOneOf != nil {
		js, err := info.ParamsOneOf.ToJSONSchema()
		if err != nil {
			return mcp.Tool{}, fmt.Errorf("failed to build schema for %s: %w", info.Name, err)
		}
		if js != nil {
			data, err := json.Marshal(js)
			if err != nil {
				return mcp.Tool{}, fmt.Errorf("failed to encode schema for %s: %w", info.Name, err)
			}
			raw = data
		}
	}

	return mcp.NewToolWithRawSchema(info.Name, info.Desc, raw), nil
}

// Handler adapts an eino tool to an MCP tool handler. Tool errors become
// error results, never protocol faults.
func Handler(t tools.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if args == nil {
			args = map[string]any{}
		}
		data, err := json.Marshal(args)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		out, err := t.InvokableRun(ctx, string(data))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// rootsLister asks the client in the current request context for its roots
type rootsLister struct {
	s *server.MCPServer
}

func (r rootsLister) ListRoots(ctx context.Context) ([]string, error) {
	result, err := r.s.RequestRoots(ctx, mcp.ListRootsRequest{})
	if err != nil {
		return nil, err
	}
	uris := make([]string, 0, len(result.Roots))
	for _, root := range result.Roots {
		uris = append(uris, root.URI)
	}
	return uris, nil
}

// ServeStdio serves s on stdin/stdout until the client disconnects
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
