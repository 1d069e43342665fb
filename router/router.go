// Package router drives turn processing: it screens the incoming message
// through guardrails, dispatches to the current handler, follows handoffs
// up to a hop limit, and appends the resulting events to the conversation
// log.
package router

import (
	"context"
	"fmt"

	"github.com/skydeskhq/skydesk/core"
	"github.com/skydeskhq/skydesk/guardrail"
	"github.com/skydeskhq/skydesk/handler"
	"github.com/skydeskhq/skydesk/logging"
)

// RefusalText is the reply surfaced when a guardrail check fails.
const RefusalText = "Sorry, I can only help with questions about your airline travel."

// DefaultHopLimit bounds the number of handler invocations per turn.
const DefaultHopLimit = 5

// Options configure the router.
type Options struct {
	HopLimit int
	Logger   logging.Logger
	// HandlerChecks run after a handler produces a reply, keyed by
	// handler id.
	HandlerChecks map[core.HandlerID][]guardrail.Check
}

// Router dispatches turns to handlers.
type Router struct {
	handlers      map[core.HandlerID]handler.Handler
	stage         *guardrail.Stage
	tools         core.ToolInvoker
	hopLimit      int
	logger        logging.Logger
	handlerChecks map[core.HandlerID][]guardrail.Check
}

// TurnResult is what one processed turn produced.
type TurnResult struct {
	Reply          string            `json:"reply"`
	Handler        core.HandlerID    `json:"handler"`
	RoutingHistory []core.HandlerID  `json:"routing_history"`
	Context        map[string]string `json:"context"`
	Events         []core.Event      `json:"events"`
}

// New creates a router over the given handlers, guardrail stage and tool
// invoker.
func New(handlers map[core.HandlerID]handler.Handler, stage *guardrail.Stage, tools core.ToolInvoker, optFns ...func(o *Options)) *Router {
	opts := Options{
		HopLimit: DefaultHopLimit,
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HopLimit <= 0 {
		opts.HopLimit = DefaultHopLimit
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Router{
		handlers:      handlers,
		stage:         stage,
		tools:         tools,
		hopLimit:      opts.HopLimit,
		logger:        opts.Logger,
		handlerChecks: opts.HandlerChecks,
	}
}

// ProcessTurn runs one user message through guardrails and handlers,
// mutating the conversation in place. A failed guardrail produces a refusal
// reply, not an error; errors mean the turn could not complete and the
// message should be retried or escalated.
func (r *Router) ProcessTurn(ctx context.Context, conv *core.Conversation, message string) (*TurnResult, error) {
	turnStart := len(conv.Events)

	conv.AddMessage(core.RoleUser, message, conv.CurrentHandler)
	conv.AppendEvent(core.NewMessageEvent(conv.CurrentHandler, core.RoleUser, message))

	tc := core.NewTurnContext(ctx, conv, message, r.tools, r.logger)

	if r.stage != nil {
		if verdict, check := r.stage.Run(tc); !verdict.Passed {
			r.logger.Info("turn refused by guardrail", "conversation", conv.ID, "check", check)
			return r.refuse(conv, turnStart), nil
		}
	}

	active := conv.CurrentHandler
	for hops := 0; hops < r.hopLimit; hops++ {
		h, ok := r.handlers[active]
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrUnknownHandler, active)
		}
		tc.Handler = active

		signal, err := h.Handle(tc)
		if err != nil {
			return nil, fmt.Errorf("handler %s: %w", active, err)
		}

		switch s := signal.(type) {
		case core.Respond:
			if verdict, check := r.runHandlerChecks(tc, active); !verdict.Passed {
				r.logger.Info("reply refused by guardrail", "conversation", conv.ID, "handler", active, "check", check)
				return r.refuse(conv, turnStart), nil
			}
			conv.AppendEvent(core.NewRoutingEvent(active, "respond", tc.DrainDelta()))
			conv.CurrentHandler = active
			conv.AddMessage(core.RoleAssistant, s.Text, active)
			conv.AppendEvent(core.NewMessageEvent(active, core.RoleAssistant, s.Text))
			return r.result(conv, active, s.Text, turnStart), nil

		case core.RouteTo:
			if _, ok := r.handlers[s.Target]; !ok {
				return nil, fmt.Errorf("%w: %s", core.ErrUnknownHandler, s.Target)
			}
			conv.AppendEvent(core.NewRoutingEvent(active, "route_to:"+string(s.Target), tc.DrainDelta()))
			conv.AppendEvent(core.NewHandoffEvent(active, s.Target, s.Reason))
			conv.AppendRouting(s.Target)
			r.logger.Info("handler handoff", "conversation", conv.ID, "source", active, "target", s.Target, "reason", s.Reason)
			active = s.Target

		default:
			return nil, fmt.Errorf("handler %s returned no signal", active)
		}
	}

	return nil, fmt.Errorf("%w after %d hops", core.ErrHopLimit, r.hopLimit)
}

func (r *Router) runHandlerChecks(tc *core.TurnContext, id core.HandlerID) (core.Verdict, string) {
	checks := r.handlerChecks[id]
	if len(checks) == 0 {
		return core.Verdict{Passed: true}, ""
	}
	stage := &guardrail.Stage{Checks: checks, Logger: r.logger}
	return stage.Run(tc)
}

func (r *Router) refuse(conv *core.Conversation, turnStart int) *TurnResult {
	conv.AddMessage(core.RoleAssistant, RefusalText, conv.CurrentHandler)
	conv.AppendEvent(core.NewMessageEvent(conv.CurrentHandler, core.RoleAssistant, RefusalText))
	return r.result(conv, conv.CurrentHandler, RefusalText, turnStart)
}

func (r *Router) result(conv *core.Conversation, h core.HandlerID, reply string, turnStart int) *TurnResult {
	events := make([]core.Event, len(conv.Events)-turnStart)
	copy(events, conv.Events[turnStart:])
	routing := make([]core.HandlerID, len(conv.RoutingHistory))
	copy(routing, conv.RoutingHistory)
	return &TurnResult{
		Reply:          reply,
		Handler:        h,
		RoutingHistory: routing,
		Context:        conv.Context.Snapshot(),
		Events:         events,
	}
}
