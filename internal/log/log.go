package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

var (
	mu                  sync.Mutex
	debugMode           = false
	output    io.Writer = os.Stderr
)

// SetDebugMode enables or disables debug mode
func SetDebugMode(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled
func IsDebugMode() bool {
	mu.Lock()
	defer mu.Unlock()
	return debugMode
}

// SetOutput sets the output writer for log messages.
// Stdout carries MCP frames when serving, so keep this on stderr there.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// printf serializes writes so concurrent tool calls don't interleave lines
func printf(c *color.Color, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if c == nil {
		fmt.Fprintf(output, format, args...)
		return
	}
	c.Fprintf(output, format, args...)
}

// Debug prints debug messages (only in debug mode)
func Debug(format string, args ...interface{}) {
	if IsDebugMode() {
		printf(color.New(color.FgHiBlack), "[DEBUG] "+format+"\n", args...)
	}
}

// DebugConfig prints configuration details in debug mode
func DebugConfig(label string, config interface{}) {
	if !IsDebugMode() {
		return
	}
	gray := color.New(color.FgHiBlack)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		printf(gray, "[DEBUG] %s: (failed to serialize: %v)\n", label, err)
		return
	}
	printf(gray, "[DEBUG] %s:\n%s\n", label, string(data))
}

// DebugGitCommand logs a git invocation and where it ran
func DebugGitCommand(dir string, args []string) {
	if IsDebugMode() {
		printf(color.New(color.FgCyan), "[DEBUG] git %s (in %s)\n", strings.Join(args, " "), dir)
	}
}

// DebugToolCall logs tool call information in debug mode
func DebugToolCall(requestID, toolName string, params interface{}) {
	if !IsDebugMode() {
		return
	}
	printf(color.New(color.FgYellow), "[DEBUG] [%s] Tool Call: %s\n", requestID, toolName)
	if params != nil {
		data, _ := json.MarshalIndent(params, "", "  ")
		printf(nil, "[DEBUG] [%s] Parameters:\n%s\n", requestID, string(data))
	}
}

// DebugToolResult logs tool result in debug mode
func DebugToolResult(requestID, toolName string, result string, err error) {
	if !IsDebugMode() {
		return
	}
	if err != nil {
		printf(color.New(color.FgRed), "[DEBUG] [%s] Tool %s Error: %v\n", requestID, toolName, err)
		return
	}
	printf(color.New(color.FgGreen), "[DEBUG] [%s] Tool %s Result: %s\n", requestID, toolName, truncate(result, 200))
}

// DebugDuration logs execution duration in debug mode
func DebugDuration(operation string, duration time.Duration) {
	if IsDebugMode() {
		printf(color.New(color.FgBlue), "[DEBUG] %s took %v\n", operation, duration)
	}
}

// Info prints informational messages
func Info(format string, args ...interface{}) {
	printf(nil, format+"\n", args...)
}

// Error prints error messages
func Error(format string, args ...interface{}) {
	printf(color.New(color.FgRed), "Error: "+format+"\n", args...)
}

// Warn prints warning messages
func Warn(format string, args ...interface{}) {
	printf(color.New(color.FgYellow), "Warning: "+format+"\n", args...)
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
