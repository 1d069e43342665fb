package handler

import (
	"strings"

	"github.com/skydeskhq/skydesk/core"
)

// defaultFlightNumber stands in when the conversation has no flight number
// on file yet.
const defaultFlightNumber = "FLT-100"

var policyKeywords = []string{"bag", "baggage", "policy", "wifi", "carry-on"}

var offTopicKeywords = []string{"cancel", "refund", "change my seat", "different seat"}

// FlightStatus reports flight status. It is fully deterministic: keyword
// screens route policy questions to FAQ and out-of-scope requests back to
// triage, everything else goes to the flight_status tool. No oracle is
// consulted.
type FlightStatus struct{}

// NewFlightStatus creates the flight status handler.
func NewFlightStatus() *FlightStatus {
	return &FlightStatus{}
}

// ID implements Handler.
func (*FlightStatus) ID() core.HandlerID { return core.HandlerFlightStatus }

// Handle implements Handler.
func (h *FlightStatus) Handle(tc *core.TurnContext) (core.Signal, error) {
	lowered := strings.ToLower(tc.Message)

	for _, kw := range policyKeywords {
		if strings.Contains(lowered, kw) {
			return core.RouteTo{Target: core.HandlerFAQ, Reason: "general policy question"}, nil
		}
	}
	for _, kw := range offTopicKeywords {
		if strings.Contains(lowered, kw) {
			return core.RouteTo{Target: core.HandlerTriage, Reason: "outside flight status scope"}, nil
		}
	}

	flight := tc.Context().FlightNumber
	if flight == "" {
		flight = defaultFlightNumber
	}
	result, err := tc.InvokeTool("flight_status", map[string]any{"flight_number": flight})
	if err != nil {
		return nil, err
	}
	return core.Respond{Text: result}, nil
}
