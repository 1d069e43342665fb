package tool

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/skydeskhq/skydesk/core"
)

// FunctionTool is a generic adapter that exposes a plain Go function as a
// tool.
//
// Responsibilities:
//   - Holds the JSON Schema describing accepted arguments
//   - Validates supplied arguments against that schema before execution
//   - Invokes the wrapped function with a *core.ToolContext giving access
//     to the shared context and call correlation id
//   - Normalizes error handling so callers receive *ToolError with
//     consistent codes: VALIDATION_ERROR for schema mismatches,
//     EXECUTION_ERROR for other failures (custom codes are preserved when
//     the function returns *ToolError directly)
//
// A FunctionTool has no internal mutable state after construction and is
// safe for concurrent use by multiple goroutines.
type FunctionTool struct {
	name        string
	description string
	parameters  map[string]any
	fn          func(toolCtx *core.ToolContext, args map[string]any) (string, error)
}

// NewFunctionTool constructs a FunctionTool from an explicit schema and
// function.
func NewFunctionTool(
	name, description string,
	parameters map[string]any,
	fn func(toolCtx *core.ToolContext, args map[string]any) (string, error),
) *FunctionTool {
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// Name returns the unique tool name.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the short natural language description of the tool.
func (t *FunctionTool) Description() string { return t.description }

// Parameters returns the JSON schema describing expected arguments.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// Call validates the provided args against the declared schema then invokes
// the underlying function.
//
// Error semantics:
//
//	*ToolError (returned directly)  -> forwarded unchanged
//	validation failure              -> *ToolError{Code: VALIDATION_ERROR}
//	other error                     -> *ToolError{Code: EXECUTION_ERROR}
func (t *FunctionTool) Call(toolCtx *core.ToolContext, args map[string]any) (string, error) {
	logger := toolCtx.Logger()

	if err := t.validate(args); err != nil {
		logger.Warn("tool.call.validation_failed", "tool", t.name, "error", err.Error())
		return "", &ToolError{
			Tool:    t.name,
			Message: fmt.Sprintf("parameter validation failed: %v", err),
			Code:    CodeValidation,
			Details: err.Error(),
		}
	}

	result, err := t.fn(toolCtx, args)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok {
			logger.Error("tool.call.error", "tool", t.name, "error", toolErr.Message)
			return "", toolErr
		}
		logger.Error("tool.call.error", "tool", t.name, "error", err.Error())
		return "", &ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    CodeExecution,
		}
	}

	return result, nil
}

func (t *FunctionTool) validate(args map[string]any) error {
	if t.parameters == nil {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(t.parameters),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
