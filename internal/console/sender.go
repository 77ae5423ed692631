package console

import (
	"github.com/telnet2/cmdtree/pkg/chat"
	"github.com/telnet2/cmdtree/pkg/command"
)

// ConsoleName is the name of the console sender.
const ConsoleName = "CONSOLE"

// Sender is a command.Sender replying through a Renderer.
type Sender struct {
	name     string
	kind     command.Kind
	operator bool
	r        *Renderer
}

var _ command.Sender = (*Sender)(nil)

// NewConsole returns the host console. It is always an operator.
func NewConsole(r *Renderer) *Sender {
	return &Sender{name: ConsoleName, kind: command.KindConsole, operator: true, r: r}
}

// NewPlayer returns an interactive player named name.
func NewPlayer(name string, operator bool, r *Renderer) *Sender {
	return &Sender{name: name, kind: command.KindPlayer, operator: operator, r: r}
}

// NewScript returns a scripted sender, used for one-shot execution.
func NewScript(name string, r *Renderer) *Sender {
	return &Sender{name: name, kind: command.KindScripted, r: r}
}

func (s *Sender) Name() string       { return s.name }
func (s *Sender) Kind() command.Kind { return s.kind }
func (s *Sender) IsOperator() bool   { return s.operator }

func (s *Sender) SendMessage(text string) {
	s.r.Line(text)
}

func (s *Sender) SendStructured(msg chat.Message) {
	s.r.Message(msg)
}
