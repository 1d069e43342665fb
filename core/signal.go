package core

// HandlerID identifies a conversation handler.
type HandlerID string

// Built-in handler identifiers.
const (
	HandlerTriage       HandlerID = "triage"
	HandlerSeatBooking  HandlerID = "seat_booking"
	HandlerFlightStatus HandlerID = "flight_status"
	HandlerCancellation HandlerID = "cancellation"
	HandlerFAQ          HandlerID = "faq"
)

// Role identifies the author of a conversation message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Signal is the outcome of a handler invocation. Exactly one concrete type
// is returned per invocation: Respond ends the turn with a reply, RouteTo
// transfers control to another handler within the same turn.
type Signal interface {
	isSignal()
}

// Respond ends the turn with the given reply text.
type Respond struct {
	Text string
}

func (Respond) isSignal() {}

// RouteTo transfers control of the turn to the target handler.
type RouteTo struct {
	Target HandlerID
	Reason string
}

func (RouteTo) isSignal() {}

// Verdict is the outcome of a guardrail check.
type Verdict struct {
	Passed    bool   `json:"passed"`
	Reasoning string `json:"reasoning"`
}
