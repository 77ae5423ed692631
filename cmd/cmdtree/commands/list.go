package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/telnet2/cmdtree/pkg/command"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Print the command tree",
	Long:  `Print the usage of every registered command and sub-command, including those hidden from players.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newHost(cmd.OutOrStdout(), nil)
		if err != nil {
			return err
		}
		defer h.Close()

		r := h.registry.Dispatcher().Renderer()
		for _, n := range h.registry.Commands() {
			printTree(h, r, n, 0)
		}
		return nil
	},
}

func printTree(h *host, r *command.Renderer, n *command.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, line := range r.Lines(n, true) {
		suffix := ""
		if g := n.Gate(); g.Visibility != command.VisibilityAll {
			suffix = " &8(" + g.Visibility.String()
			if perm := g.Describe(r.Policy); perm != "" {
				suffix += " " + perm
			}
			suffix += ")"
		}
		h.renderer.Line(indent + line + suffix)
	}
	for _, child := range n.Children() {
		printTree(h, r, child, depth+1)
	}
}
