package core

import "time"

// EventType discriminates the variant payload carried in Event.Metadata.
type EventType string

// Event types recorded during a turn.
const (
	EventMessage         EventType = "message"
	EventGuardrailCheck  EventType = "guardrail_check"
	EventRoutingDecision EventType = "routing_decision"
	EventHandoff         EventType = "handoff"
	EventToolCall        EventType = "tool_call"
	EventToolResult      EventType = "tool_result"
)

// Metadata keys shared across event constructors.
const (
	MetaRole          = "role"
	MetaCheck         = "check"
	MetaPassed        = "passed"
	MetaReasoning     = "reasoning"
	MetaOutcome       = "outcome"
	MetaSource        = "source"
	MetaTarget        = "target"
	MetaReason        = "reason"
	MetaTool          = "tool"
	MetaArguments     = "arguments"
	MetaError         = "error"
	MetaCorrelationID = "correlation_id"
	MetaContextDelta  = "context_delta"
)

// Event is one entry of the append-only log describing every decision made
// while processing a turn. After emission it should be treated as immutable.
// Ordering in the conversation log is the causal order of occurrence.
//
// tool_call / tool_result events are recorded as a linked pair sharing a
// correlation id so the request/response pairing can be reconstructed.
// Context mutations ride along in metadata under MetaContextDelta, which is
// what makes Replay possible.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Handler   HandlerID      `json:"handler"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewEvent creates a bare event owned by a handler.
func NewEvent(eventType EventType, handler HandlerID, content string) Event {
	return Event{
		ID:        NewID(),
		Type:      eventType,
		Handler:   handler,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewMessageEvent records a user or assistant message owned by a handler.
func NewMessageEvent(handler HandlerID, role Role, text string) Event {
	e := NewEvent(EventMessage, handler, text)
	e.Metadata = map[string]any{MetaRole: string(role)}
	return e
}

// NewGuardrailEvent records the verdict of a single guardrail check.
func NewGuardrailEvent(handler HandlerID, check string, verdict Verdict) Event {
	e := NewEvent(EventGuardrailCheck, handler, verdict.Reasoning)
	e.Metadata = map[string]any{
		MetaCheck:     check,
		MetaPassed:    verdict.Passed,
		MetaReasoning: verdict.Reasoning,
	}
	return e
}

// NewRoutingEvent records a handler invocation outcome. Any context mutations
// the handler staged during the invocation (handoff hooks included) are
// attached as a delta.
func NewRoutingEvent(handler HandlerID, outcome string, delta map[string]string) Event {
	e := NewEvent(EventRoutingDecision, handler, outcome)
	e.Metadata = map[string]any{MetaOutcome: outcome}
	if len(delta) > 0 {
		e.Metadata[MetaContextDelta] = delta
	}
	return e
}

// NewHandoffEvent records control passing from one handler to another.
func NewHandoffEvent(source, target HandlerID, reason string) Event {
	e := NewEvent(EventHandoff, target, "Handoff from "+string(source)+" to "+string(target))
	e.Metadata = map[string]any{
		MetaSource: string(source),
		MetaTarget: string(target),
		MetaReason: reason,
	}
	return e
}

// NewToolCallEvent records a handler requesting execution of a named tool.
func NewToolCallEvent(handler HandlerID, correlationID, toolName, args string) Event {
	e := NewEvent(EventToolCall, handler, toolName)
	e.Metadata = map[string]any{
		MetaTool:          toolName,
		MetaArguments:     args,
		MetaCorrelationID: correlationID,
	}
	return e
}

// NewToolResultEvent records the completion result (or failure) of a tool
// invocation, correlated to its tool_call event. A non-empty errText marks a
// recoverable failure surfaced back to the handler.
func NewToolResultEvent(handler HandlerID, correlationID, toolName, result, errText string, delta map[string]string) Event {
	e := NewEvent(EventToolResult, handler, result)
	e.Metadata = map[string]any{
		MetaTool:          toolName,
		MetaCorrelationID: correlationID,
	}
	if errText != "" {
		e.Metadata[MetaError] = errText
	}
	if len(delta) > 0 {
		e.Metadata[MetaContextDelta] = delta
	}
	return e
}

// CorrelationID returns the tool call correlation id, if present.
func (e Event) CorrelationID() string {
	if s, ok := e.Metadata[MetaCorrelationID].(string); ok {
		return s
	}
	return ""
}

// ToolName returns the tool name for tool_call / tool_result events.
func (e Event) ToolName() string {
	if s, ok := e.Metadata[MetaTool].(string); ok {
		return s
	}
	return ""
}

// ContextDelta returns the context mutations attached to the event, if any.
// It tolerates both the in-memory map[string]string shape and the
// map[string]any shape produced by a JSON round trip.
func (e Event) ContextDelta() map[string]string {
	switch d := e.Metadata[MetaContextDelta].(type) {
	case map[string]string:
		return d
	case map[string]any:
		out := make(map[string]string, len(d))
		for k, v := range d {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
		return out
	default:
		return nil
	}
}
