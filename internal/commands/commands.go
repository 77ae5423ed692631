package commands

import (
	"math/rand"

	"github.com/telnet2/cmdtree/internal/permission"
	"github.com/telnet2/cmdtree/pkg/command"
)

// DefaultPageSize is the number of help lines per page.
const DefaultPageSize = 8

// Options configures the built-in commands.
type Options struct {
	// Version is reported by the version command.
	Version string
	// PageSize is the number of help lines per page.
	PageSize int
	// Store backs the perm group and whoami. Without it perm is not
	// registered.
	Store *permission.Store
	// Roll returns a number in [1, sides]. Defaults to math/rand.
	Roll func(sides int) int
	// Macros are registered after the built-ins.
	Macros []Macro
}

// Register adds every built-in command to reg.
func Register(reg *command.Registry, opts Options) error {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Roll == nil {
		opts.Roll = func(sides int) int { return rand.Intn(sides) + 1 }
	}

	nodes := []*command.Node{
		helpCommand(reg, opts.PageSize),
		versionCommand(opts.Version),
		whoamiCommand(opts.Store),
		sayCommand(),
		rollCommand(opts.Roll),
	}
	if opts.Store != nil {
		nodes = append(nodes, permCommand(opts.Store))
	}
	for _, m := range opts.Macros {
		nodes = append(nodes, m.Node(reg))
	}

	for _, n := range nodes {
		if err := reg.Register(n); err != nil {
			return err
		}
	}
	return nil
}
