package command

import (
	"bytes"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/telnet2/cmdtree/pkg/chat"
)

// recorder is a Sender that keeps every reply.
type recorder struct {
	name string
	kind Kind
	op   bool

	mu         sync.Mutex
	messages   []string
	structured []chat.Message
}

func player(name string) *recorder  { return &recorder{name: name, kind: KindPlayer} }
func operator(name string) *recorder { return &recorder{name: name, kind: KindPlayer, op: true} }
func consoleSender() *recorder       { return &recorder{name: "CONSOLE", kind: KindConsole, op: true} }

func (r *recorder) Name() string     { return r.name }
func (r *recorder) Kind() Kind       { return r.kind }
func (r *recorder) IsOperator() bool { return r.op }

func (r *recorder) SendMessage(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, text)
}

func (r *recorder) SendStructured(msg chat.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.structured = append(r.structured, msg)
}

// plain returns the replies with markup stripped.
func (r *recorder) plain() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	for i, m := range r.messages {
		out[i] = chat.Strip(m)
	}
	return out
}

// fakePolicy grants the listed tokens to the listed sender names.
type fakePolicy struct {
	grants map[string][]string
}

func (p fakePolicy) Resolve(sender Sender, permission string) bool {
	for _, g := range p.grants[sender.Name()] {
		if g == permission {
			return true
		}
	}
	return false
}

func (p fakePolicy) Describe(permission string) string {
	return "test." + permission
}

// logBuffer collects JSON log lines.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := strings.TrimSpace(b.buf.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func newTestDispatcher(opts ...DispatcherOption) (*Dispatcher, *logBuffer) {
	logs := &logBuffer{}
	opts = append([]DispatcherOption{WithLogger(zerolog.New(logs).Level(zerolog.WarnLevel))}, opts...)
	return NewDispatcher(opts...), logs
}
