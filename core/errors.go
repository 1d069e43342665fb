package core

import "errors"

// Fatal errors abort the turn; callers should surface them to the operator.
var (
	// ErrUnknownHandler indicates a route or lookup named a handler that is
	// not registered.
	ErrUnknownHandler = errors.New("unknown handler")

	// ErrUnknownTool indicates a handler invoked a tool that is not
	// registered.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrHopLimit indicates a turn exceeded the maximum number of handoffs
	// without producing a reply.
	ErrHopLimit = errors.New("handoff hop limit exceeded")
)

// ErrOracleUnavailable marks a transient oracle failure. The conversation
// remains valid and the turn can be retried.
var ErrOracleUnavailable = errors.New("oracle unavailable")
