package tool

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/skydeskhq/skydesk/core"
)

// Registry holds the tools available to handlers and executes them on
// request, recording every invocation as a tool_call / tool_result event
// pair sharing a correlation id. It implements core.ToolInvoker.
//
// Registration happens during setup; Invoke is safe for concurrent use
// afterwards.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates a registry holding the given tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.tools[t.Name()] = t
	}
	return r
}

// Register adds or replaces a tool.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Get returns a registered tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke executes a tool on behalf of the handler driving the turn.
//
// An unknown tool name is a fatal error (core.ErrUnknownTool). Recoverable
// tool failures (validation, execution) are recorded on the tool_result
// event and returned as a failure message with a nil error so the handler
// can phrase a reply around them instead of aborting the turn.
func (r *Registry) Invoke(tc *core.TurnContext, name string, args map[string]any) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", core.ErrUnknownTool, name)
	}

	correlationID := core.NewID()
	argsJSON, err := json.Marshal(args)
	if err != nil {
		argsJSON = []byte("{}")
	}
	tc.RecordEvent(core.NewToolCallEvent(tc.Handler, correlationID, name, string(argsJSON)))

	toolCtx := core.NewToolContext(tc, correlationID)
	start := time.Now()
	result, callErr := t.Call(toolCtx, args)
	if callErr != nil {
		var toolErr *ToolError
		if errors.As(callErr, &toolErr) {
			failure := fmt.Sprintf("Tool %s failed: %s", name, toolErr.Message)
			tc.RecordEvent(core.NewToolResultEvent(tc.Handler, correlationID, name, failure, toolErr.Message, toolCtx.Delta()))
			tc.Logger.Warn("tool invocation failed", "tool", name, "code", toolErr.Code, "duration", time.Since(start))
			return failure, nil
		}
		tc.RecordEvent(core.NewToolResultEvent(tc.Handler, correlationID, name, "", callErr.Error(), toolCtx.Delta()))
		return "", fmt.Errorf("tool %s: %w", name, callErr)
	}

	tc.RecordEvent(core.NewToolResultEvent(tc.Handler, correlationID, name, result, "", toolCtx.Delta()))
	tc.Logger.Debug("tool invocation completed", "tool", name, "duration", time.Since(start))
	return result, nil
}
