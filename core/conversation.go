package core

// Message is a single user or assistant utterance. Handler records which
// handler produced an assistant message, or which handler was active when a
// user message arrived.
type Message struct {
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	Handler HandlerID `json:"handler,omitempty"`
}

// Conversation is the durable state of one customer dialogue: the message
// transcript, the shared context, the routing history, and the append-only
// event log. A conversation always has exactly one current handler; new
// conversations start at triage.
//
// Conversation is not safe for concurrent use. Turns on the same
// conversation must be processed one at a time; the store guards concurrent
// access across conversations.
type Conversation struct {
	ID             string      `json:"id"`
	CurrentHandler HandlerID   `json:"current_handler"`
	RoutingHistory []HandlerID `json:"routing_history"`
	Context        *Context    `json:"context"`
	Messages       []Message   `json:"messages"`
	Events         []Event     `json:"events"`
}

// NewConversation creates a conversation positioned at the triage handler
// with freshly initialized context.
func NewConversation(id string) *Conversation {
	return &Conversation{
		ID:             id,
		CurrentHandler: HandlerTriage,
		RoutingHistory: []HandlerID{HandlerTriage},
		Context:        NewContext(),
	}
}

// AddMessage appends a message to the transcript.
func (c *Conversation) AddMessage(role Role, content string, handler HandlerID) {
	c.Messages = append(c.Messages, Message{Role: role, Content: content, Handler: handler})
}

// AppendEvent appends an event to the log. Events are never modified or
// removed after this point.
func (c *Conversation) AppendEvent(e Event) {
	c.Events = append(c.Events, e)
}

// AppendRouting records a handoff target in the routing history. It does not
// move CurrentHandler: that only happens when a handler produces a reply, so
// a turn that fails mid-handoff leaves the conversation re-entrant at the
// pre-turn handler.
func (c *Conversation) AppendRouting(target HandlerID) {
	c.RoutingHistory = append(c.RoutingHistory, target)
}

// History returns a copy of the transcript.
func (c *Conversation) History() []Message {
	out := make([]Message, len(c.Messages))
	copy(out, c.Messages)
	return out
}
