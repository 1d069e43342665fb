package handler

import (
	"github.com/skydeskhq/skydesk/core"
	"github.com/skydeskhq/skydesk/oracle"
)

// Triage is the entry handler for every conversation. It never answers
// requests itself and never calls tools: it classifies the customer's
// intent through the oracle and routes to the right specialist, or asks a
// clarifying question when the intent is unclear.
type Triage struct {
	oracle oracle.Oracle
}

// NewTriage creates the triage handler.
func NewTriage(o oracle.Oracle) *Triage {
	return &Triage{oracle: o}
}

// ID implements Handler.
func (*Triage) ID() core.HandlerID { return core.HandlerTriage }

// Handle implements Handler.
func (h *Triage) Handle(tc *core.TurnContext) (core.Signal, error) {
	decision, err := oracle.Decide(tc.Ctx, h.oracle, oracle.Request{
		Instructions: triageInstructions(),
		History:      tc.History(),
	})
	if err != nil {
		return nil, err
	}
	switch d := decision.(type) {
	case oracle.Route:
		if d.Target == core.HandlerTriage {
			// Self-routes degrade to a clarifying question.
			return core.Respond{Text: "Could you tell me a bit more about what you need help with?"}, nil
		}
		return core.RouteTo{Target: d.Target, Reason: "intent classified by triage"}, nil
	case oracle.Text:
		return core.Respond{Text: d.Text}, nil
	default:
		return core.Respond{Text: "Could you tell me a bit more about what you need help with?"}, nil
	}
}
