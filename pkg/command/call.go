package command

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/telnet2/cmdtree/pkg/chat"
)

// Call is the per-invocation context handed to a Handler. It is built once
// per Execute and never shared.
type Call struct {
	// ID identifies the invocation in logs and events.
	ID string
	// Sender is the invoking actor.
	Sender Sender
	// Node is the node selected by routing.
	Node *Node
	// Args are the tokens left after routing.
	Args []string

	ctx     context.Context
	player  bool
	started time.Time
	d       *Dispatcher
}

// Context returns the invocation's context.
func (c *Call) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// IsPlayer reports whether the sender is an interactive player.
func (c *Call) IsPlayer() bool { return c.player }

// Dispatcher returns the dispatcher running the call.
func (c *Call) Dispatcher() *Dispatcher { return c.d }

// Reply sends a formatted message to the sender.
func (c *Call) Reply(format string, args ...any) {
	c.Sender.SendMessage(chat.Format(chat.Yellow+format, args...))
}

// PrefixedReply is Reply with the dispatcher's reply prefix. The prefix is
// taken verbatim.
func (c *Call) PrefixedReply(format string, args ...any) {
	c.Sender.SendMessage(chat.Yellow + c.d.prefix + chat.Format(format, args...))
}

// Err sends a formatted error message to the sender.
func (c *Call) Err(format string, args ...any) {
	c.Sender.SendMessage(errorLine(chat.Format(format, args...)))
}

// SendTo sends a formatted message to another sender, without the default
// colour.
func (c *Call) SendTo(s Sender, format string, args ...any) {
	s.SendMessage(chat.Format(format, args...))
}

// Structured sends a rich message to the sender.
func (c *Call) Structured(msg chat.Message) {
	c.Sender.SendStructured(msg)
}

// HasPermission resolves permission for the sender through the
// dispatcher's policy.
func (c *Call) HasPermission(permission string) bool {
	return Gate{Visibility: VisibilityPermission, Permission: permission}.VisibleTo(c.Sender, c.d.policy)
}

// PermissionString returns the display form of permission.
func (c *Call) PermissionString(permission string) string {
	return Gate{Permission: permission}.Describe(c.d.policy)
}

// Arg returns the i-th argument, or "" when absent.
func (c *Call) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// ArgAsInt parses the i-th argument as an integer.
func (c *Call) ArgAsInt(i int) (int, error) {
	v := c.Arg(i)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ArgumentError{Index: i, Value: v, Expected: "number"}
	}
	return n, nil
}

// ArgAsFloat parses the i-th argument as a decimal number.
func (c *Call) ArgAsFloat(i int) (float64, error) {
	v := c.Arg(i)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ArgumentError{Index: i, Value: v, Expected: "number"}
	}
	return f, nil
}

// ArgAsBool parses the i-th argument as a boolean. Besides the strconv
// forms it accepts yes/no, y/n and on/off.
func (c *Call) ArgAsBool(i int) (bool, error) {
	v := c.Arg(i)
	switch strings.ToLower(v) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, &ArgumentError{Index: i, Value: v, Expected: "boolean"}
	}
	return b, nil
}

// FinalArg joins the arguments from start onward with single spaces.
func (c *Call) FinalArg(start int) string {
	if start < 0 {
		start = 0
	}
	if start >= len(c.Args) {
		return ""
	}
	return strings.Join(c.Args[start:], " ")
}

// ArgMatchesAlias reports whether arg equals any alias, case-insensitively.
func ArgMatchesAlias(arg string, aliases ...string) bool {
	for _, a := range aliases {
		if strings.EqualFold(arg, a) {
			return true
		}
	}
	return false
}

func errorLine(text string) string { return chat.ErrorLine(text) }
