// Package tools implements the agent-facing tools. Each tool is an eino
// InvokableTool taking JSON arguments and returning a JSON document.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/google/uuid"

	"github.com/huimingz/prbuddy/internal/log"
)

// Tool is the surface shared by every tool in this package
type Tool interface {
	tool.InvokableTool
	Name() string
	Description() string
}

// ErrorPayload is returned in place of a result when a tool fails
type ErrorPayload struct {
	Error string `json:"error"`
}

// newRequestID tags one invocation in debug logs
func newRequestID() string {
	return uuid.NewString()[:8]
}

// decodeArgs unmarshals JSON arguments into params. Empty input leaves params untouched.
func decodeArgs(argumentsInJSON string, params interface{}) error {
	if strings.TrimSpace(argumentsInJSON) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(argumentsInJSON), params); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

// encode renders v as indented JSON
func encode(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}

// errorPayload renders msg as {"error": msg}
func errorPayload(msg string) string {
	data, err := json.Marshal(ErrorPayload{Error: msg})
	if err != nil {
		return `{"error":"internal error"}`
	}
	return string(data)
}

// traced wraps a tool body with request-scoped debug logging
func traced(ctx context.Context, name string, params interface{}, run func(ctx context.Context, requestID string) (string, error)) (string, error) {
	requestID := newRequestID()
	log.DebugToolCall(requestID, name, params)

	result, err := run(ctx, requestID)

	log.DebugToolResult(requestID, name, result, err)
	return result, err
}
