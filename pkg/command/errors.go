package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/telnet2/cmdtree/pkg/chat"
)

// ErrUnknownCommand is returned by Registry.Dispatch when no root matches.
var ErrUnknownCommand = errors.New("unknown command")

// UsageError reports that the supplied argument count matches no syntax.
type UsageError struct {
	Node     *Node
	Syntax   Syntax
	Supplied int
	Missing  []Argument
	Usage    string
}

func (e *UsageError) Error() string {
	names := make([]string, len(e.Missing))
	for i, a := range e.Missing {
		names[i] = a.Name
	}
	return fmt.Sprintf("%s: missing required arguments: %s", e.Node.Label(), strings.Join(names, ", "))
}

func (e *UsageError) reply() string {
	var sb strings.Builder
	sb.WriteString(chat.Format("Invalid arguments! Try: {0}", e.Usage))
	for _, a := range e.Missing {
		sb.WriteString("\n")
		sb.WriteString(chat.Format("&4Missing &c{0}", a.Usage()))
		if a.Explanation != "" {
			sb.WriteString(chat.Format("&4: &e{0}", a.Explanation))
		}
	}
	return sb.String()
}

// PermissionError reports a closed gate.
type PermissionError struct {
	Node       *Node
	Visibility Visibility
	// Permission is the resolved display string; only set for
	// VisibilityPermission.
	Permission string
}

func (e *PermissionError) Error() string {
	if e.Visibility == VisibilityPermission {
		return fmt.Sprintf("%s: missing permission %s", e.Node.Label(), e.Permission)
	}
	return fmt.Sprintf("%s: not visible (%s)", e.Node.Label(), e.Visibility)
}

func (e *PermissionError) reply() string {
	if e.Visibility == VisibilityPermission {
		return chat.Format("You must have the permission \"&c{0}&4\" to perform this command!", e.Permission)
	}
	return "You do not have permission to perform this command!"
}

// SenderKindError reports a player-only node invoked by a non-player.
type SenderKindError struct {
	Node *Node
	Kind Kind
}

func (e *SenderKindError) Error() string {
	return fmt.Sprintf("%s: requires a player, got %s", e.Node.Label(), e.Kind)
}

func (e *SenderKindError) reply() string {
	return "You must be a player to perform this command!"
}

// ExecutionFault wraps an error returned or a panic raised by a handler.
type ExecutionFault struct {
	Node *Node
	Err  error
	// Panicked is true when Err was recovered from a panic.
	Panicked bool
	Stack    string
}

func (e *ExecutionFault) Error() string {
	return fmt.Sprintf("executing command %s: %v", e.Node.Label(), e.Err)
}

func (e *ExecutionFault) Unwrap() error {
	return e.Err
}

func (e *ExecutionFault) reply() string {
	var argErr *ArgumentError
	if errors.As(e.Err, &argErr) {
		return argErr.reply()
	}
	return chat.Format("Encountered an error executing this command: &c{0}", e.Err.Error())
}

// ArgumentError reports an argument that could not be coerced.
type ArgumentError struct {
	Index    int
	Value    string
	Expected string
}

func (e *ArgumentError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("argument %d: missing %s", e.Index, e.Expected)
	}
	return fmt.Sprintf("argument %d: %q is not a %s", e.Index, e.Value, e.Expected)
}

func (e *ArgumentError) reply() string {
	if e.Value == "" {
		return chat.Format("Expected a {0} at position &c{1}", e.Expected, e.Index+1)
	}
	return chat.Format("&c{0} &4is not a {1}.", e.Value, e.Expected)
}

// IsRejection reports whether err is a validation rejection rather than a
// handler fault.
func IsRejection(err error) bool {
	var (
		usage  *UsageError
		perm   *PermissionError
		sender *SenderKindError
	)
	return errors.As(err, &usage) || errors.As(err, &perm) || errors.As(err, &sender)
}

// IsFault reports whether err is an ExecutionFault.
func IsFault(err error) bool {
	var fault *ExecutionFault
	return errors.As(err, &fault)
}

type replier interface {
	reply() string
}
