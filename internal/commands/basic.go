package commands

import (
	"strconv"
	"strings"

	"github.com/telnet2/cmdtree/internal/permission"
	"github.com/telnet2/cmdtree/pkg/command"
)

const (
	maxSides = 1000
	maxDice  = 100
)

func versionCommand(version string) *command.Node {
	return command.New("version", func(c *command.Call) error {
		c.Reply("cmdtree version &6{0}", version)
		return nil
	}, command.WithAliases("ver"), command.WithDescription("Shows the host version"))
}

func whoamiCommand(store *permission.Store) *command.Node {
	return command.New("whoami", func(c *command.Call) error {
		role := ""
		if c.Sender.IsOperator() || (store != nil && store.IsOperator(c.Sender.Name())) {
			role = " &c(operator)"
		}
		c.Reply("You are &6{0}&e, a {1}{2}&e.", command.DisplayName(c.Sender), c.Sender.Kind(), role)

		if store == nil {
			return nil
		}
		if nodes := store.Nodes(c.Sender.Name()); len(nodes) > 0 {
			c.Reply("Permissions: &6{0}", strings.Join(nodes, "&e, &6"))
		}
		return nil
	}, command.WithDescription("Shows who you are to the host"))
}

func sayCommand() *command.Node {
	return command.New("say", func(c *command.Call) error {
		c.PrefixedReply("&f<{0}&f> {1}", command.DisplayName(c.Sender), c.FinalArg(0))
		return nil
	},
		command.WithDescription("Repeats a message"),
		command.WithSyntax(command.NewSyntax().Required("message", "Text to repeat")),
	)
}

func rollCommand(roll func(int) int) *command.Node {
	return command.New("roll", func(c *command.Call) error {
		sides, count := 6, 1
		var err error
		if c.Arg(0) != "" {
			if sides, err = c.ArgAsInt(0); err != nil {
				return err
			}
		}
		if c.Arg(1) != "" {
			if count, err = c.ArgAsInt(1); err != nil {
				return err
			}
		}
		if sides < 2 || sides > maxSides {
			c.Err("A die needs between &c2 &4and &c{0} &4sides.", maxSides)
			return nil
		}
		if count < 1 || count > maxDice {
			c.Err("You can roll between &c1 &4and &c{0} &4dice.", maxDice)
			return nil
		}

		results := make([]string, count)
		total := 0
		for i := range results {
			n := roll(sides)
			total += n
			results[i] = strconv.Itoa(n)
		}
		c.Reply("Rolled &6{0}d{1}&e: {2} (total &6{3}&e)", count, sides, strings.Join(results, ", "), total)
		return nil
	},
		command.WithAliases("dice"),
		command.WithDescription("Rolls dice"),
		command.WithSyntax(command.NewSyntax().
			Optional("sides", "Sides per die, 6 by default").
			Optional("count", "Number of dice, 1 by default")),
	)
}
