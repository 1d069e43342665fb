// Package skydesk provides a high-level façade over the router, handlers,
// guardrails and tool registry enabling rapid construction of an airline
// customer service desk. Most applications interact with this package by:
//  1. Creating a Desk via New() with an oracle implementation
//  2. Processing customer turns with ProcessTurn
//  3. Inspecting conversations and their event logs afterwards
//
// The façade delegates turn orchestration to router.Router while keeping
// setup ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable store and a
// structured logger.
package skydesk

import (
	"context"

	"github.com/skydeskhq/skydesk/core"
	"github.com/skydeskhq/skydesk/guardrail"
	"github.com/skydeskhq/skydesk/handler"
	"github.com/skydeskhq/skydesk/logging"
	"github.com/skydeskhq/skydesk/oracle"
	"github.com/skydeskhq/skydesk/router"
	"github.com/skydeskhq/skydesk/store"
	"github.com/skydeskhq/skydesk/tool"
)

// Options configures the Desk instance.
type Options struct {
	// HopLimit bounds handler handoffs per turn.
	HopLimit int

	// Store persists conversations (defaults to in-memory if not provided).
	Store store.Store

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Desk is the high-level façade aggregating the router, handlers, guardrail
// stage and tool registry.
type Desk struct {
	opts     Options
	router   *router.Router
	store    store.Store
	registry *tool.Registry
}

// New creates a Desk wired with the built-in airline handlers, tools and
// guardrails, backed by the given oracle.
func New(o oracle.Oracle, optFns ...func(o *Options)) *Desk {
	opts := Options{
		HopLimit: router.DefaultHopLimit,
		Store:    store.NewInMemory(),
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	registry := tool.NewRegistry(tool.DefaultTools()...)

	stage := guardrail.NewStage(
		guardrail.Relevance{Oracle: o},
		guardrail.Jailbreak{Oracle: o},
	)
	stage.Logger = opts.Logger

	r := router.New(handler.All(o), stage, registry, func(ro *router.Options) {
		ro.HopLimit = opts.HopLimit
		ro.Logger = opts.Logger
	})

	return &Desk{opts: opts, router: r, store: opts.Store, registry: registry}
}

// ProcessTurn runs one customer message through the desk. An empty
// conversationID starts a new conversation; the (possibly generated) id is
// returned alongside the result.
func (d *Desk) ProcessTurn(ctx context.Context, conversationID, message string) (string, *router.TurnResult, error) {
	if conversationID == "" {
		conversationID = core.NewID()
	}
	conv := d.store.GetOrCreate(conversationID)
	result, err := d.router.ProcessTurn(ctx, conv, message)
	if err != nil {
		return conversationID, nil, err
	}
	return conversationID, result, nil
}

// Conversation returns a stored conversation by id.
func (d *Desk) Conversation(id string) (*core.Conversation, bool) {
	return d.store.Get(id)
}

// Conversations returns all known conversation ids.
func (d *Desk) Conversations() []string {
	return d.store.List()
}

// Handlers returns the catalog of built-in handlers.
func (d *Desk) Handlers() []handler.Info {
	return handler.Infos()
}

// Tools returns the registered tool names.
func (d *Desk) Tools() []string {
	return d.registry.Names()
}
