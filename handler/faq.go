package handler

import (
	"strings"

	"github.com/skydeskhq/skydesk/core"
	"github.com/skydeskhq/skydesk/oracle"
)

// FAQ answers general airline questions from the canned knowledge base. It
// is stateless and never mutates the shared context. Questions outside the
// known categories fall back to the oracle.
type FAQ struct {
	oracle oracle.Oracle
}

// NewFAQ creates the FAQ handler.
func NewFAQ(o oracle.Oracle) *FAQ {
	return &FAQ{oracle: o}
}

// ID implements Handler.
func (*FAQ) ID() core.HandlerID { return core.HandlerFAQ }

// Handle implements Handler.
func (h *FAQ) Handle(tc *core.TurnContext) (core.Signal, error) {
	lowered := strings.ToLower(tc.Message)

	// Fee and allowance questions get the baggage policy answer rather than
	// the generic baggage FAQ.
	if strings.Contains(lowered, "fee") || strings.Contains(lowered, "allowance") {
		result, err := tc.InvokeTool("baggage_policy", map[string]any{"query": tc.Message})
		if err != nil {
			return nil, err
		}
		return core.Respond{Text: result}, nil
	}

	if category := classify(lowered); category != "" {
		result, err := tc.InvokeTool("faq_lookup", map[string]any{"category": category})
		if err != nil {
			return nil, err
		}
		return core.Respond{Text: result}, nil
	}

	decision, err := oracle.Decide(tc.Ctx, h.oracle, oracle.Request{
		Instructions: faqInstructions(),
		History:      tc.History(),
	})
	if err != nil {
		return nil, err
	}
	switch d := decision.(type) {
	case oracle.Route:
		return core.RouteTo{Target: d.Target, Reason: "outside faq scope"}, nil
	case oracle.Text:
		return core.Respond{Text: d.Text}, nil
	default:
		return core.Respond{Text: "I'm sorry, I don't know the answer to that question."}, nil
	}
}

func classify(lowered string) string {
	// wifi is checked before the generic plane keyword so "wifi on the
	// plane" resolves to the wifi answer.
	switch {
	case strings.Contains(lowered, "bag"):
		return "baggage"
	case strings.Contains(lowered, "wifi"):
		return "wifi"
	case strings.Contains(lowered, "seat"), strings.Contains(lowered, "plane"):
		return "seating"
	default:
		return ""
	}
}
