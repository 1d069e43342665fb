// Package core provides the foundational domain types and execution contexts
// used by Skydesk. It defines the core abstractions for:
//
//   - Conversations (stateful containers with routing history, messages and
//     an append-only event log)
//   - Context (the shared record of known customer facts)
//   - Events (immutable records of every guardrail check, routing decision,
//     tool call and message within a turn)
//   - Signals (the tagged outcome of a handler invocation: respond or route)
//   - TurnContext / ToolContext (scoped execution & tool sandboxing)
//
// The package intentionally keeps implementation concerns (handlers, routing,
// concrete tools, oracle providers) out of scope, exposing small interfaces to
// enable custom backends and test doubles.
package core
