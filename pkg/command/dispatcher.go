package command

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/telnet2/cmdtree/internal/logging"
	"github.com/telnet2/cmdtree/pkg/chat"
)

// Outcome summarises one Execute for observers.
type Outcome struct {
	CallID   string
	Command  string
	Sender   string
	Args     []string
	Err      error
	Duration time.Duration
}

// Observer is notified synchronously after every Execute.
type Observer interface {
	Observe(Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Outcome)

// Observe calls f.
func (f ObserverFunc) Observe(o Outcome) { f(o) }

// Dispatcher runs the execute algorithm against nodes. It holds only
// read-mostly collaborators and is safe for concurrent use.
type Dispatcher struct {
	policy        Policy
	logger        zerolog.Logger
	observers     []Observer
	prefix        string
	commandPrefix string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithPolicy sets the permission policy.
func WithPolicy(p Policy) DispatcherOption {
	return func(d *Dispatcher) { d.policy = p }
}

// WithLogger sets the logger faults are reported to.
func WithLogger(l zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// WithObserver adds an outcome observer.
func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) { d.observers = append(d.observers, o) }
}

// WithReplyPrefix sets the prefix used by Call.PrefixedReply.
func WithReplyPrefix(prefix string) DispatcherOption {
	return func(d *Dispatcher) { d.prefix = prefix }
}

// WithCommandPrefix sets the global token shown in usage lines of nodes
// registered with UsesPrefix.
func WithCommandPrefix(prefix string) DispatcherOption {
	return func(d *Dispatcher) { d.commandPrefix = prefix }
}

// NewDispatcher creates a dispatcher. Without WithLogger it reports to the
// global logger.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{logger: logging.Logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Policy returns the configured policy, possibly nil.
func (d *Dispatcher) Policy() Policy { return d.policy }

// Renderer returns a usage renderer sharing the dispatcher's policy and
// command prefix.
func (d *Dispatcher) Renderer() *Renderer {
	return &Renderer{CommandPrefix: d.commandPrefix, Policy: d.policy}
}

// VisibleTo reports whether n's gate admits sender.
func (d *Dispatcher) VisibleTo(n *Node, sender Sender) bool {
	return n.gate.VisibleTo(sender, d.policy)
}

// Route follows child keys from n. It returns the selected node and the
// tokens left for it.
func Route(n *Node, args []string) (*Node, []string) {
	for len(n.children) > 0 && len(args) > 0 {
		child := n.Child(args[0])
		if child == nil {
			break
		}
		n, args = child, args[1:]
	}
	return n, args
}

// Execute routes args from n and runs the selected node for sender. Every
// outcome is replied to the sender; nothing is returned or propagated.
func (d *Dispatcher) Execute(ctx context.Context, n *Node, sender Sender, args []string) {
	_ = d.execute(ctx, n, sender, args)
}

// execute is Execute returning the replied outcome, for tests.
func (d *Dispatcher) execute(ctx context.Context, n *Node, sender Sender, args []string) error {
	target, rest := Route(n, args)
	c := &Call{
		ID:      ulid.Make().String(),
		Sender:  sender,
		Node:    target,
		Args:    rest,
		ctx:     ctx,
		player:  sender.Kind() == KindPlayer,
		started: time.Now(),
		d:       d,
	}

	err := d.validate(c)
	if err == nil {
		err = d.invoke(c)
	}
	d.report(c, err)
	return err
}

// stage is one validation step. A nil return means continue.
type stage func(d *Dispatcher, c *Call) error

var stages = []stage{
	checkSenderKind,
	checkSyntax,
	checkGate,
}

func (d *Dispatcher) validate(c *Call) error {
	for _, s := range stages {
		if err := s(d, c); err != nil {
			return err
		}
	}
	return nil
}

func checkSenderKind(_ *Dispatcher, c *Call) error {
	if c.Node.playerOnly && !c.player {
		return &SenderKindError{Node: c.Node, Kind: c.Sender.Kind()}
	}
	return nil
}

func checkSyntax(d *Dispatcher, c *Call) error {
	supplied := len(c.Args)
	for _, s := range c.Node.syntaxes {
		if s.Accepts(supplied) {
			return nil
		}
	}
	closest := closestSyntax(c.Node.syntaxes, supplied)
	return &UsageError{
		Node:     c.Node,
		Syntax:   closest,
		Supplied: supplied,
		Missing:  closest.Missing(supplied),
		Usage:    d.Renderer().Line(c.Node, closest, false),
	}
}

func checkGate(d *Dispatcher, c *Call) error {
	g := c.Node.gate
	if g.VisibleTo(c.Sender, d.policy) {
		return nil
	}
	err := &PermissionError{Node: c.Node, Visibility: g.Visibility}
	if g.Visibility == VisibilityPermission {
		err.Permission = g.Describe(d.policy)
	}
	return err
}

// invoke is the single fault boundary around business logic.
func (d *Dispatcher) invoke(c *Call) (err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok {
				perr = fmt.Errorf("%v", r)
			}
			err = &ExecutionFault{Node: c.Node, Err: perr, Panicked: true, Stack: string(debug.Stack())}
		}
	}()

	h := c.Node.handler
	if h == nil {
		h = listChildren
	}
	if herr := h(c); herr != nil {
		return &ExecutionFault{Node: c.Node, Err: herr}
	}
	return nil
}

// report replies the outcome, logs it and notifies observers.
func (d *Dispatcher) report(c *Call, err error) {
	var fault *ExecutionFault
	switch {
	case err == nil:
	case errors.As(err, &fault):
		ev := d.logger.Warn().
			Str("command", c.Node.Label()).
			Str("call", c.ID).
			Str("sender", DisplayName(c.Sender)).
			Err(fault.Err)
		if fault.Panicked {
			ev = ev.Str("stack", fault.Stack)
		}
		ev.Msg("executing command " + c.Node.name)
		c.Sender.SendMessage(errorLine(fault.reply()))
	default:
		d.logger.Debug().
			Str("command", c.Node.Label()).
			Str("call", c.ID).
			Str("sender", DisplayName(c.Sender)).
			Err(err).
			Msg("command rejected")
		if r, ok := err.(replier); ok {
			c.Sender.SendMessage(errorLine(r.reply()))
		}
	}

	if len(d.observers) == 0 {
		return
	}
	o := Outcome{
		CallID:   c.ID,
		Command:  c.Node.Label(),
		Sender:   c.Sender.Name(),
		Args:     append([]string(nil), c.Args...),
		Err:      err,
		Duration: time.Since(c.started),
	}
	for _, obs := range d.observers {
		obs.Observe(o)
	}
}

// listChildren is the handler of group nodes: it lists the usage of every
// child visible to the sender.
func listChildren(c *Call) error {
	r := c.d.Renderer()
	var shown int
	for _, child := range c.Node.children {
		if !c.d.VisibleTo(child, c.Sender) {
			continue
		}
		for _, line := range r.Lines(child, true) {
			c.Sender.SendMessage(line)
			shown++
		}
	}
	if shown == 0 {
		c.Sender.SendMessage(errorLine(chat.Format("No sub-commands of &c{0}&4 are available to you.", c.Node.name)))
	}
	return nil
}
