// Package testutil provides small helpers shared by tests: conversation
// builders and event log filters.
package testutil

import (
	"github.com/skydeskhq/skydesk/core"
)

// NewConversation creates a conversation with a fixed id for tests.
func NewConversation() *core.Conversation {
	return core.NewConversation("conv-test")
}

// EventsOfType filters an event log by type, preserving order.
func EventsOfType(events []core.Event, t core.EventType) []core.Event {
	var out []core.Event
	for _, e := range events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// ToolEvents filters tool_call and tool_result events for a named tool.
func ToolEvents(events []core.Event, tool string) []core.Event {
	var out []core.Event
	for _, e := range events {
		if (e.Type == core.EventToolCall || e.Type == core.EventToolResult) && e.ToolName() == tool {
			out = append(out, e)
		}
	}
	return out
}
