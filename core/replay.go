package core

// Replay reconstructs context state and routing history by applying the
// event log in order on top of a base context. Events carry their context
// mutations as deltas, so replaying the same log over the same base is
// deterministic and yields the state the conversation held after the last
// event.
func Replay(base *Context, history []HandlerID, events []Event) (*Context, []HandlerID) {
	ctx := base.Clone()
	routing := make([]HandlerID, len(history))
	copy(routing, history)

	for _, e := range events {
		switch e.Type {
		case EventRoutingDecision, EventToolResult:
			for field, value := range e.ContextDelta() {
				// Unknown fields in old logs are skipped rather than
				// aborting the replay.
				_ = ctx.Set(field, value)
			}
		case EventHandoff:
			if target, ok := e.Metadata[MetaTarget].(string); ok {
				routing = append(routing, HandlerID(target))
			}
		}
	}
	return ctx, routing
}
