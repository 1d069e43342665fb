package handler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/skydeskhq/skydesk/core"
	"github.com/skydeskhq/skydesk/oracle"
)

// Confirmation numbers are six characters of uppercase letters and digits.
// Matches are filtered to those containing at least one digit so ordinary
// six-letter words do not qualify.
var confirmationRe = regexp.MustCompile(`\b[A-Z0-9]{6}\b`)

var affirmationKeywords = []string{"yes", "confirm", "go ahead", "correct"}

// Cancellation cancels bookings. The side-effecting cancel_flight tool runs
// only after two gates have passed: the conversation has a confirmation
// number on file, and the customer has affirmed a cancellation question this
// handler asked. An initial "cancel my flight" always gets the question,
// never the tool, regardless of how the confirmation number got on file.
type Cancellation struct {
	oracle oracle.Oracle
}

// NewCancellation creates the cancellation handler.
func NewCancellation(o oracle.Oracle) *Cancellation {
	return &Cancellation{oracle: o}
}

// ID implements Handler.
func (*Cancellation) ID() core.HandlerID { return core.HandlerCancellation }

// Handle implements Handler.
func (h *Cancellation) Handle(tc *core.TurnContext) (core.Signal, error) {
	ctx := tc.Context()

	if ctx.ConfirmationNumber == "" {
		if token := findConfirmation(tc.Message); token != "" {
			if err := tc.SetContextField(core.FieldConfirmationNumber, token); err != nil {
				return nil, err
			}
			return core.Respond{Text: "Thanks. " + confirmQuestion(token)}, nil
		}
		return core.Respond{Text: "I can help with that. Could you give me your confirmation number?"}, nil
	}

	lowered := strings.ToLower(tc.Message)

	if awaitingConfirmation(tc.Conv) {
		for _, kw := range affirmationKeywords {
			if strings.Contains(lowered, kw) {
				result, err := tc.InvokeTool("cancel_flight", map[string]any{})
				if err != nil {
					return nil, err
				}
				return core.Respond{Text: result}, nil
			}
		}
	}

	if strings.Contains(lowered, "cancel") {
		return core.Respond{Text: confirmQuestion(ctx.ConfirmationNumber)}, nil
	}

	decision, err := oracle.Decide(tc.Ctx, h.oracle, oracle.Request{
		Instructions: cancellationInstructions(ctx),
		History:      tc.History(),
	})
	if err != nil {
		return nil, err
	}
	switch d := decision.(type) {
	case oracle.Route:
		return core.RouteTo{Target: d.Target, Reason: "outside cancellation scope"}, nil
	case oracle.Text:
		return core.Respond{Text: d.Text}, nil
	default:
		return core.Respond{Text: confirmQuestion(ctx.ConfirmationNumber)}, nil
	}
}

func confirmQuestion(confirmation string) string {
	return fmt.Sprintf("Just to confirm: you'd like to cancel booking %s?", confirmation)
}

// awaitingConfirmation reports whether this handler's most recent reply was
// the cancellation question, meaning an affirmation in the current message
// answers it.
func awaitingConfirmation(conv *core.Conversation) bool {
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		m := conv.Messages[i]
		if m.Role != core.RoleAssistant {
			continue
		}
		return m.Handler == core.HandlerCancellation && strings.Contains(m.Content, "Just to confirm")
	}
	return false
}

// findConfirmation extracts a confirmation-shaped token from a message.
func findConfirmation(message string) string {
	for _, m := range confirmationRe.FindAllString(strings.ToUpper(message), -1) {
		if strings.ContainsAny(m, "0123456789") {
			return m
		}
	}
	return ""
}
