package core

import (
	"context"

	"github.com/skydeskhq/skydesk/logging"
)

// ToolInvoker executes a named tool on behalf of a handler, recording the
// tool_call / tool_result event pair on the conversation as it goes.
type ToolInvoker interface {
	Invoke(tc *TurnContext, name string, args map[string]any) (string, error)
}

// TurnContext carries everything a handler needs while processing one turn:
// the conversation, the incoming message, the tool invoker, and a staging
// area for context mutations. The staged delta is drained into the turn's
// routing_decision event so that mutations are replayable from the log.
type TurnContext struct {
	Ctx     context.Context
	Conv    *Conversation
	Message string
	Handler HandlerID
	Tools   ToolInvoker
	Logger  logging.Logger

	delta map[string]string
}

// NewTurnContext creates a turn context for a single incoming message.
func NewTurnContext(ctx context.Context, conv *Conversation, message string, tools ToolInvoker, logger logging.Logger) *TurnContext {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &TurnContext{
		Ctx:     ctx,
		Conv:    conv,
		Message: message,
		Handler: conv.CurrentHandler,
		Tools:   tools,
		Logger:  logger,
	}
}

// Context returns the conversation's shared context.
func (tc *TurnContext) Context() *Context {
	return tc.Conv.Context
}

// History returns a copy of the conversation transcript.
func (tc *TurnContext) History() []Message {
	return tc.Conv.History()
}

// RoutingHistory returns the handlers the conversation has visited, in
// order.
func (tc *TurnContext) RoutingHistory() []HandlerID {
	out := make([]HandlerID, len(tc.Conv.RoutingHistory))
	copy(out, tc.Conv.RoutingHistory)
	return out
}

// SetContextField writes a context field and stages the mutation for the
// turn's routing_decision event.
func (tc *TurnContext) SetContextField(field, value string) error {
	if err := tc.Conv.Context.Set(field, value); err != nil {
		return err
	}
	if tc.delta == nil {
		tc.delta = make(map[string]string)
	}
	tc.delta[field] = value
	return nil
}

// DrainDelta returns the staged context mutations and resets the staging
// area. Called once per handler invocation when its routing_decision event
// is recorded.
func (tc *TurnContext) DrainDelta() map[string]string {
	d := tc.delta
	tc.delta = nil
	return d
}

// InvokeTool executes a registered tool through the turn's invoker.
func (tc *TurnContext) InvokeTool(name string, args map[string]any) (string, error) {
	return tc.Tools.Invoke(tc, name, args)
}

// RecordEvent appends an event to the conversation log.
func (tc *TurnContext) RecordEvent(e Event) {
	tc.Conv.AppendEvent(e)
}

// ToolContext is the view of a turn handed to an executing tool. Context
// writes made through it are kept in a call-local delta so the invoker can
// attach them to the tool_result event.
type ToolContext struct {
	turn   *TurnContext
	callID string
	delta  map[string]string
}

// NewToolContext creates the execution context for one tool call.
func NewToolContext(turn *TurnContext, callID string) *ToolContext {
	return &ToolContext{turn: turn, callID: callID}
}

// Context returns the conversation's shared context.
func (tc *ToolContext) Context() *Context {
	return tc.turn.Conv.Context
}

// CallID returns the correlation id linking this call's events.
func (tc *ToolContext) CallID() string {
	return tc.callID
}

// Logger returns the turn's logger.
func (tc *ToolContext) Logger() logging.Logger {
	return tc.turn.Logger
}

// SetContextField writes a context field, recording the mutation in the
// call-local delta.
func (tc *ToolContext) SetContextField(field, value string) error {
	if err := tc.turn.Conv.Context.Set(field, value); err != nil {
		return err
	}
	if tc.delta == nil {
		tc.delta = make(map[string]string)
	}
	tc.delta[field] = value
	return nil
}

// Delta returns the context mutations made during this call.
func (tc *ToolContext) Delta() map[string]string {
	return tc.delta
}
