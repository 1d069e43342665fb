// Package tool implements the deterministic capabilities handlers invoke
// while processing a turn, with schema validated arguments and consistent
// error handling, plus the registry that records every invocation as a
// tool_call / tool_result event pair.
package tool

import (
	"fmt"

	"github.com/skydeskhq/skydesk/core"
)

// Tool defines one invokable capability.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions (snake_case names)
//   - Define a proper JSON schema for parameters
//   - Be deterministic given the same arguments and context
//   - Be thread-safe if used concurrently
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool
	// does.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool. The ToolContext gives access to the shared
	// conversation context and the call correlation id.
	Call(toolCtx *core.ToolContext, args map[string]any) (string, error)
}

// Error codes for categorizing tool failures.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
)

// ToolError represents errors that occur during tool execution. Validation
// and execution failures are recoverable: the registry turns them into a
// failure result the handler can phrase a reply around instead of aborting
// the turn.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
