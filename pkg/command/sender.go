package command

import "github.com/telnet2/cmdtree/pkg/chat"

// Kind discriminates the actor behind a Sender.
type Kind int

const (
	// KindPlayer is an interactive player.
	KindPlayer Kind = iota
	// KindConsole is the automated host console.
	KindConsole
	// KindScripted is a scripted source such as a command file or block.
	KindScripted
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindConsole:
		return "console"
	case KindScripted:
		return "scripted"
	default:
		return "unknown"
	}
}

// Sender is the actor invoking a command.
type Sender interface {
	Name() string
	Kind() Kind
	IsOperator() bool
	SendMessage(text string)
	SendStructured(msg chat.Message)
}

// DisplayName returns a human-readable name for s.
func DisplayName(s Sender) string {
	switch s.Kind() {
	case KindConsole:
		return "Console"
	case KindScripted:
		return "Script (" + s.Name() + ")"
	default:
		return s.Name()
	}
}
