package commands

import (
	"strconv"

	"github.com/telnet2/cmdtree/pkg/chat"
	"github.com/telnet2/cmdtree/pkg/command"
)

func helpCommand(reg *command.Registry, pageSize int) *command.Node {
	return command.New("help", func(c *command.Call) error {
		arg := c.Arg(0)
		if arg == "" {
			showPage(c, reg, 1, pageSize)
			return nil
		}
		if page, err := strconv.Atoi(arg); err == nil {
			showPage(c, reg, page, pageSize)
			return nil
		}
		showCommand(c, reg)
		return nil
	},
		command.WithAliases("?"),
		command.WithDescription("Shows the commands available to you"),
		command.WithSyntax(command.NewSyntax().
			Optional("page|command", "Page number, or a command to describe")),
	)
}

func showPage(c *command.Call, reg *command.Registry, page, pageSize int) {
	r := c.Dispatcher().Renderer()
	var lines []chat.Message
	for _, n := range reg.Visible(c.Sender) {
		lines = append(lines, r.Fancy(n, true)...)
	}
	if len(lines) == 0 {
		c.Err("There are no commands available to you.")
		return
	}

	pages := (len(lines) + pageSize - 1) / pageSize
	if page < 1 || page > pages {
		c.Err("Page &c{0} &4does not exist. There are &c{1} &4pages.", page, pages)
		return
	}

	c.Reply("&3====[ &eHelp &3(&e{0}&3/&e{1}&3) ]====", page, pages)
	end := min(page*pageSize, len(lines))
	for _, msg := range lines[(page-1)*pageSize : end] {
		c.Structured(msg)
	}
}

// showCommand describes the command named by the arguments, following
// sub-command names as far as they are visible to the sender.
func showCommand(c *command.Call, reg *command.Registry) {
	d := c.Dispatcher()
	root, ok := reg.Lookup(c.Arg(0))
	if !ok || !d.VisibleTo(root, c.Sender) {
		c.Err("Unknown command &c{0}&4.", c.Arg(0))
		return
	}

	n := root
	for _, token := range c.Args[1:] {
		child := n.Child(token)
		if child == nil || !d.VisibleTo(child, c.Sender) {
			break
		}
		n = child
	}
	r := d.Renderer()
	for _, msg := range r.Fancy(n, false) {
		c.Structured(msg)
	}
	for _, child := range n.Children() {
		if !d.VisibleTo(child, c.Sender) {
			continue
		}
		for _, msg := range r.Fancy(child, true) {
			c.Structured(msg)
		}
	}
}
