package command

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// Registry holds the root nodes a host exposes, keyed by name and alias.
type Registry struct {
	mu    sync.RWMutex
	d     *Dispatcher
	roots []*Node
	index map[string]*Node
}

// NewRegistry creates an empty registry dispatching through d.
func NewRegistry(d *Dispatcher) *Registry {
	return &Registry{
		d:     d,
		index: make(map[string]*Node),
	}
}

// Dispatcher returns the registry's dispatcher.
func (r *Registry) Dispatcher() *Dispatcher { return r.d }

// Register adds a root node. Names and aliases are case-insensitive and must
// be unique across roots.
func (r *Registry) Register(n *Node) error {
	if !n.IsRoot() {
		return fmt.Errorf("command %q is a sub-command of %q", n.name, n.parent.name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, 1+len(n.aliases))
	for _, id := range n.identifiers() {
		key := strings.ToLower(id)
		if existing, ok := r.index[key]; ok {
			return fmt.Errorf("command %q: %q is already taken by %q", n.name, id, existing.name)
		}
		keys = append(keys, key)
	}
	for _, key := range keys {
		r.index[key] = n
	}
	r.roots = append(r.roots, n)
	return nil
}

// MustRegister registers every node and panics on the first failure, which
// indicates a programming error.
func (r *Registry) MustRegister(nodes ...*Node) {
	for _, n := range nodes {
		if err := r.Register(n); err != nil {
			panic("failed to register command " + n.name + ": " + err.Error())
		}
	}
}

// Lookup returns the root registered under label.
func (r *Registry) Lookup(label string) (*Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.index[strings.ToLower(label)]
	return n, ok
}

// Commands returns the roots in registration order.
func (r *Registry) Commands() []*Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Node(nil), r.roots...)
}

// Visible returns the roots whose gate admits sender.
func (r *Registry) Visible(sender Sender) []*Node {
	var out []*Node
	for _, n := range r.Commands() {
		if r.d.VisibleTo(n, sender) {
			out = append(out, n)
		}
	}
	return out
}

// Dispatch executes the root registered under label with args. It returns
// ErrUnknownCommand when no root matches; every other outcome is replied to
// the sender.
func (r *Registry) Dispatch(ctx context.Context, sender Sender, label string, args []string) error {
	n, ok := r.Lookup(label)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, label)
	}
	r.d.Execute(ctx, n, sender, args)
	return nil
}

// Suggest returns the visible name closest to label by edit distance, when
// it is within maxDist edits.
func (r *Registry) Suggest(sender Sender, label string, maxDist int) (string, bool) {
	label = strings.ToLower(label)
	best, bestDist := "", maxDist+1
	for _, n := range r.Visible(sender) {
		for _, id := range n.identifiers() {
			dist := levenshtein.ComputeDistance(label, strings.ToLower(id))
			if dist < bestDist {
				best, bestDist = n.name, dist
			}
		}
	}
	return best, best != ""
}
