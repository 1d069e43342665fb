// Package oracle defines the language-model abstraction handlers consult for
// free-form classification and reply generation, plus the routing-code
// protocol their responses follow. Provider adapters live in subpackages;
// Scripted offers a deterministic in-memory implementation for tests.
package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/skydeskhq/skydesk/core"
)

// Request is a single completion request: the handler's instructions plus
// the conversation transcript, ending with the current user message.
type Request struct {
	Instructions string
	History      []core.Message
}

// Oracle produces one completion for a request. Implementations must be safe
// for concurrent use.
type Oracle interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Decision is the parsed form of an oracle response. Route means the
// response was exactly a routing code, Text means anything else.
type Decision interface {
	isDecision()
}

// Route directs the turn to the named handler.
type Route struct {
	Target core.HandlerID
}

func (Route) isDecision() {}

// Text is a free-form reply to surface to the customer.
type Text struct {
	Text string
}

func (Text) isDecision() {}

// Routing codes the instructions ask the oracle to answer with when a
// request belongs to another handler.
var routeCodes = map[string]core.HandlerID{
	"ROUTE_TO_SEAT_BOOKING":  core.HandlerSeatBooking,
	"ROUTE_TO_FLIGHT_STATUS": core.HandlerFlightStatus,
	"ROUTE_TO_CANCELLATION":  core.HandlerCancellation,
	"ROUTE_TO_FAQ":           core.HandlerFAQ,
	"HANDOFF_TO_TRIAGE":      core.HandlerTriage,
}

// ParseDecision interprets an oracle response. A response that is exactly a
// routing code (after trimming whitespace) becomes a Route; everything else
// is passed through verbatim as Text, including responses that merely
// mention a code.
func ParseDecision(response string) Decision {
	if target, ok := routeCodes[strings.TrimSpace(response)]; ok {
		return Route{Target: target}
	}
	return Text{Text: response}
}

// Decide runs one completion and parses it. Transport failures are wrapped
// as core.ErrOracleUnavailable so callers can distinguish transient oracle
// trouble from conversation errors.
func Decide(ctx context.Context, o Oracle, req Request) (Decision, error) {
	response, err := o.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrOracleUnavailable, err)
	}
	return ParseDecision(response), nil
}
