// Package command provides a hierarchical command dispatch engine.
//
// Hosts register commands declaratively: a name, aliases, a visibility
// policy, one or more accepted argument shapes and optional nested
// sub-commands. The engine routes raw input to the right node, validates the
// argument count, gates on permission, invokes the command's handler and
// contains any fault it raises. Command authors never parse input by hand.
//
// # Nodes
//
// A Node is the unit of dispatch. Every node owns at least one Syntax (a node
// starts with a single empty one), an ordered list of children and a Gate.
// Children are routed to by their name or any alias, case-insensitively:
//
//	perm := command.New("perm", nil,
//		command.WithChildren(
//			command.New("grant", grantHandler,
//				command.WithSyntax(command.NewSyntax().
//					Required("user", "who receives the node").
//					Required("node", "the permission node")),
//			),
//		),
//	)
//
// # Syntax
//
// A Syntax is an ordered list of Arguments. Required and optional arguments
// may be interleaved; the rendered usage keeps declaration order. A call is
// accepted when any syntax's required count is at most the number of
// supplied tokens. Otherwise the closest syntax is reported with its missing
// required arguments.
//
// # Dispatch order
//
//  1. Routing: the first token is tried as a child key, recursing on match.
//  2. Sender kind: player-only nodes reject non-player senders.
//  3. Syntax validation.
//  4. Permission gate.
//  5. Handler invocation. Returned errors and panics become an
//     ExecutionFault that is logged once and replied once.
//
// Stages 2-4 return rejections (UsageError, SenderKindError,
// PermissionError) which the Dispatcher replies to the sender and never
// logs above debug level.
//
// # Per-call state
//
// Nothing is stored on a Node while it executes. Each invocation gets a
// fresh Call carrying the sender, the resolved sender kind and the argument
// slice, so nodes can be dispatched concurrently and re-entrantly.
//
// # Usage
//
// Renderer produces usage lines ("/perm grant <user> <node>") and fancy help
// messages with hover text and click-to-suggest payloads. Rendering is pure
// and works for nodes that were never executed.
package command
