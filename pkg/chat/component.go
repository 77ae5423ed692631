package chat

import "strings"

// ClickAction is what a client does when a component is clicked.
type ClickAction string

const (
	// SuggestCommand pre-fills the sender's input with the click value.
	SuggestCommand ClickAction = "suggest_command"
	// RunCommand runs the click value as if the sender typed it.
	RunCommand ClickAction = "run_command"
)

// ClickEvent attaches a click behaviour to a component.
type ClickEvent struct {
	Action ClickAction `json:"action"`
	Value  string      `json:"value"`
}

// Component is a run of marked-up text with optional hover text and click
// behaviour.
type Component struct {
	Text  string      `json:"text"`
	Hover string      `json:"hover,omitempty"`
	Click *ClickEvent `json:"click,omitempty"`
}

// Message is an ordered list of components sent as a single reply.
type Message []Component

// Plain concatenates the component texts, markup included.
func (m Message) Plain() string {
	var sb strings.Builder
	for _, c := range m {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// Builder assembles a Message. Events apply to the most recently appended
// component.
type Builder struct {
	parts Message
}

// NewBuilder starts a message with text as its first component.
func NewBuilder(text string) *Builder {
	return &Builder{parts: Message{{Text: text}}}
}

// Append starts a new component.
func (b *Builder) Append(text string) *Builder {
	b.parts = append(b.parts, Component{Text: text})
	return b
}

// ShowText sets the hover text of the current component.
func (b *Builder) ShowText(hover string) *Builder {
	b.parts[len(b.parts)-1].Hover = hover
	return b
}

// OnClick sets the click behaviour of the current component.
func (b *Builder) OnClick(action ClickAction, value string) *Builder {
	b.parts[len(b.parts)-1].Click = &ClickEvent{Action: action, Value: value}
	return b
}

// Create returns the assembled message.
func (b *Builder) Create() Message {
	out := make(Message, len(b.parts))
	copy(out, b.parts)
	return out
}
