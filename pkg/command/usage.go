package command

import (
	"strings"

	"github.com/telnet2/cmdtree/pkg/chat"
)

// Renderer turns nodes into usage lines and help messages. It is pure.
type Renderer struct {
	// CommandPrefix is the global token prepended for UsesPrefix nodes.
	CommandPrefix string
	// Policy describes permission tokens in hover text. May be nil.
	Policy Policy
}

// Line renders one syntax of n:
//
//	&b/[prefix ]parent... name &3<required> &3[optional][ &edescription]
//
// The description is the first line of n's description and is only added
// when withDescription is set.
func (r *Renderer) Line(n *Node, s Syntax, withDescription bool) string {
	var sb strings.Builder
	sb.WriteString(chat.Aqua + "/")

	if r.CommandPrefix != "" && n.Root().usesPrefix {
		sb.WriteString(r.CommandPrefix)
		sb.WriteString(" ")
	}
	sb.WriteString(strings.Join(n.Path(), " "))

	for _, a := range s.args {
		sb.WriteString(" " + chat.DarkAqua)
		sb.WriteString(a.Usage())
	}

	if withDescription {
		if lines := chat.Lines(n.description); len(lines) > 0 {
			sb.WriteString(" " + chat.Yellow)
			sb.WriteString(lines[0])
		}
	}
	return sb.String()
}

// Lines renders every syntax of n; only the first line carries the
// description.
func (r *Renderer) Lines(n *Node, withDescription bool) []string {
	lines := make([]string, len(n.syntaxes))
	for i, s := range n.syntaxes {
		lines[i] = r.Line(n, s, withDescription && i == 0)
	}
	return lines
}

// Help is the structured help payload of one syntax.
type Help struct {
	// Line is the plain usage line, markup included.
	Line string
	// Hover collects argument explanations, the description and the
	// permission.
	Hover string
	// Suggest is Line without markup, meant to pre-fill the next input.
	Suggest string
}

// Help renders the structured payload for every syntax of n.
func (r *Renderer) Help(n *Node) []Help {
	out := make([]Help, len(n.syntaxes))
	for i, s := range n.syntaxes {
		line := r.Line(n, s, false)
		out[i] = Help{
			Line:    line,
			Hover:   r.hover(n, s, line),
			Suggest: chat.Strip(line),
		}
	}
	return out
}

// Fancy renders one message per syntax of n with hover text and a
// click-to-suggest payload. With list set each line gets a "- " bullet.
func (r *Renderer) Fancy(n *Node, list bool) []chat.Message {
	bullet := ""
	if list {
		bullet = "- "
	}
	helps := r.Help(n)
	out := make([]chat.Message, len(helps))
	for i, h := range helps {
		out[i] = chat.NewBuilder(chat.Aqua + bullet + h.Line).
			ShowText(h.Hover).
			OnClick(chat.SuggestCommand, h.Suggest).
			Create()
	}
	return out
}

func (r *Renderer) hover(n *Node, s Syntax, line string) string {
	var parts []string
	for _, a := range s.args {
		if a.Explanation == "" {
			continue
		}
		parts = append(parts, chat.DarkAqua+a.Usage()+chat.Yellow+": "+a.Explanation)
	}
	for _, l := range chat.Lines(n.description) {
		parts = append(parts, chat.Yellow+l)
	}

	var sb strings.Builder
	sb.WriteString(line)
	sb.WriteString(":")
	if len(parts) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(parts, "\n"))
	}
	if perm := n.gate.Describe(r.Policy); perm != "" {
		sb.WriteString("\n\n" + chat.DarkRed + "Permission:\n" + chat.Reset)
		sb.WriteString(perm)
	}
	return sb.String()
}
