package commands

import (
	"errors"
	"strings"

	"github.com/telnet2/cmdtree/internal/permission"
	"github.com/telnet2/cmdtree/pkg/command"
)

func permCommand(store *permission.Store) *command.Node {
	return command.New("perm", nil,
		command.WithAliases("perms"),
		command.WithDescription("Manages permissions"),
		command.WithChildren(
			permCheck(store),
			permGrant(store),
			permRevoke(store),
			permList(store),
			permGroup(store),
		),
	)
}

func permCheck(store *permission.Store) *command.Node {
	return command.New("check", func(c *command.Call) error {
		node := c.Arg(0)
		target := c.Arg(1)

		var has bool
		if target == "" || strings.EqualFold(target, c.Sender.Name()) {
			target = c.Sender.Name()
			has = store.Resolve(c.Sender, node)
		} else {
			has = store.Check(target, node)
		}

		verdict := "&clacks"
		if has {
			verdict = "&ahas"
		}
		c.Reply("&6{0} {1} &6{2}&e.", target, verdict, store.Describe(node))
		return nil
	},
		command.WithDescription("Checks a permission node"),
		command.WithPermission("perm.check"),
		command.WithSyntax(command.NewSyntax().
			Required("node", "Permission node to check").
			Optional("user", "User to check, yourself by default")),
	)
}

func permGrant(store *permission.Store) *command.Node {
	return command.New("grant", func(c *command.Call) error {
		user, node := c.Arg(0), c.Arg(1)
		if err := store.Grant(user, node); err != nil {
			return storeError(c, err)
		}
		c.PrefixedReply("Granted &6{0} &eto &6{1}&e.", store.Describe(node), user)
		return nil
	},
		command.WithDescription("Grants a permission pattern"),
		command.WithVisibility(command.VisibilityOps),
		command.WithSyntax(command.NewSyntax().
			Required("user", "User to grant to").
			Required("node", "Permission pattern, * and ** allowed")),
	)
}

func permRevoke(store *permission.Store) *command.Node {
	return command.New("revoke", func(c *command.Call) error {
		user, node := c.Arg(0), c.Arg(1)
		if err := store.Revoke(user, node); err != nil {
			return storeError(c, err)
		}
		c.PrefixedReply("Revoked &6{0} &efrom &6{1}&e.", store.Describe(node), user)
		return nil
	},
		command.WithDescription("Revokes a permission pattern"),
		command.WithVisibility(command.VisibilityOps),
		command.WithSyntax(command.NewSyntax().
			Required("user", "User to revoke from").
			Required("node", "Permission pattern, * and ** allowed")),
	)
}

func permList(store *permission.Store) *command.Node {
	return command.New("list", func(c *command.Call) error {
		user := c.Arg(0)
		if user == "" {
			users := store.Users()
			if len(users) == 0 {
				c.Reply("No users have explicit permissions.")
				return nil
			}
			c.Reply("Users: &6{0}", strings.Join(users, "&e, &6"))
			return nil
		}

		nodes := store.Nodes(user)
		if len(nodes) == 0 {
			c.Reply("&6{0} &ehas no permissions.", user)
			return nil
		}
		c.Reply("Permissions of &6{0}&e:", user)
		for _, n := range nodes {
			c.Reply("- &6{0}", n)
		}
		return nil
	},
		command.WithDescription("Lists users, or the permissions of a user"),
		command.WithPermission("perm.list"),
		command.WithSyntax(command.NewSyntax().Optional("user", "User to list")),
	)
}

func permGroup(store *permission.Store) *command.Node {
	return command.New("group", nil,
		command.WithDescription("Manages permission groups"),
		command.WithVisibility(command.VisibilityOps),
		command.WithChildren(
			command.New("set", func(c *command.Call) error {
				group, patterns := c.Arg(0), c.Args[1:]
				if err := store.SetGroup(group, patterns...); err != nil {
					return storeError(c, err)
				}
				c.PrefixedReply("Group &6{0} &enow has &6{1}&e.", strings.ToLower(group), strings.Join(patterns, "&e, &6"))
				return nil
			},
				command.WithDescription("Replaces the patterns of a group\nPrefix a pattern with - to deny it"),
				command.WithVisibility(command.VisibilityOps),
				command.WithSyntax(command.NewSyntax().
					Required("group", "Group to define").
					Required("patterns...", "Permission patterns, * and ** allowed")),
			),
			command.New("join", func(c *command.Call) error {
				user, group := c.Arg(0), c.Arg(1)
				if err := store.JoinGroup(user, group); err != nil {
					return storeError(c, err)
				}
				c.PrefixedReply("Added &6{0} &eto group &6{1}&e.", user, strings.ToLower(group))
				return nil
			},
				command.WithDescription("Adds a user to a group"),
				command.WithVisibility(command.VisibilityOps),
				command.WithSyntax(command.NewSyntax().
					Required("user", "User to add").
					Required("group", "Existing group")),
			),
		),
	)
}

// storeError replies invalid patterns and unknown groups to the sender and
// passes other failures on as faults.
func storeError(c *command.Call, err error) error {
	if errors.Is(err, permission.ErrInvalidPattern) || errors.Is(err, permission.ErrUnknownGroup) {
		c.Err("{0}", err)
		return nil
	}
	return err
}
