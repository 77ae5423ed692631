package command

import (
	"fmt"
	"strings"
)

// Handler is a node's business logic.
type Handler func(c *Call) error

// Node is a command: identity, accepted syntaxes, children, gate and
// handler. Nodes are built once at registration and never mutated by
// dispatch.
type Node struct {
	name        string
	aliases     []string
	description string
	syntaxes    []Syntax
	children    []*Node
	parent      *Node
	gate        Gate
	playerOnly  bool
	usesPrefix  bool
	handler     Handler
}

// Option configures a Node.
type Option func(*Node)

// New creates a node with a single empty syntax. A nil handler makes the
// node a pure group that lists its children when invoked directly.
func New(name string, handler Handler, opts ...Option) *Node {
	n := &Node{
		name:     name,
		syntaxes: []Syntax{{}},
		handler:  handler,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// WithAliases adds alternative names.
func WithAliases(aliases ...string) Option {
	return func(n *Node) {
		n.aliases = append(n.aliases, aliases...)
	}
}

// WithDescription sets the free-text description. Extra lines show up in
// hover help only.
func WithDescription(description string) Option {
	return func(n *Node) {
		n.description = description
	}
}

// WithPermission sets the permission token and switches visibility to
// VisibilityPermission.
func WithPermission(permission string) Option {
	return func(n *Node) {
		n.gate.Permission = permission
		n.gate.Visibility = VisibilityPermission
	}
}

// WithVisibility sets the visibility, keeping any permission token.
func WithVisibility(v Visibility) Option {
	return func(n *Node) {
		n.gate.Visibility = v
	}
}

// PlayerOnly restricts the node to interactive players.
func PlayerOnly() Option {
	return func(n *Node) {
		n.playerOnly = true
	}
}

// UsesPrefix makes usage lines include the global command prefix.
func UsesPrefix() Option {
	return func(n *Node) {
		n.usesPrefix = true
	}
}

// WithSyntax replaces the node's syntaxes with the builder's alternatives.
func WithSyntax(b *SyntaxBuilder) Option {
	return func(n *Node) {
		if alts := b.Build(); len(alts) > 0 {
			n.syntaxes = alts
		}
	}
}

// WithChildren attaches sub-commands. It panics on a name clash, which is a
// registration bug.
func WithChildren(children ...*Node) Option {
	return func(n *Node) {
		for _, c := range children {
			if err := n.AddChild(c); err != nil {
				panic("command: " + err.Error())
			}
		}
	}
}

// AddChild attaches child as the last sub-command of n.
func (n *Node) AddChild(child *Node) error {
	if child.parent != nil {
		return fmt.Errorf("%q already belongs to %q", child.name, child.parent.name)
	}
	for _, id := range child.identifiers() {
		if existing := n.Child(id); existing != nil {
			return fmt.Errorf("%q clashes with sub-command %q of %q", id, existing.name, n.name)
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// Name returns the primary name.
func (n *Node) Name() string { return n.name }

// Aliases returns a copy of the aliases.
func (n *Node) Aliases() []string {
	return append([]string(nil), n.aliases...)
}

// Description returns the full description.
func (n *Node) Description() string { return n.description }

// Syntaxes returns a copy of the accepted syntaxes, in declaration order.
func (n *Node) Syntaxes() []Syntax {
	return append([]Syntax(nil), n.syntaxes...)
}

// Children returns the sub-commands in registration order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Parent returns the enclosing node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Gate returns the node's permission gate.
func (n *Node) Gate() Gate { return n.gate }

// IsPlayerOnly reports whether only players may run n.
func (n *Node) IsPlayerOnly() bool { return n.playerOnly }

// Root returns the top of n's chain.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Path returns the names from the root down to n.
func (n *Node) Path() []string {
	var path []string
	for c := n; c != nil; c = c.parent {
		path = append([]string{c.name}, path...)
	}
	return path
}

// Label is the space-joined Path.
func (n *Node) Label() string {
	return strings.Join(n.Path(), " ")
}

// Matches reports whether token equals the name or an alias,
// case-insensitively.
func (n *Node) Matches(token string) bool {
	for _, id := range n.identifiers() {
		if strings.EqualFold(id, token) {
			return true
		}
	}
	return false
}

// Child returns the first child matching token, or nil.
func (n *Node) Child(token string) *Node {
	for _, c := range n.children {
		if c.Matches(token) {
			return c
		}
	}
	return nil
}

func (n *Node) identifiers() []string {
	return append([]string{n.name}, n.aliases...)
}
